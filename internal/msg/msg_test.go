package msg

import (
	"testing"
	"time"
)

func TestShowToast(t *testing.T) {
	got, ok := ShowToast("copied", time.Second)().(ToastMsg)
	if !ok || got.Message != "copied" || got.Duration != time.Second || got.IsError {
		t.Errorf("ShowToast = %+v", got)
	}
	e, ok := ShowError("failed", 0)().(ToastMsg)
	if !ok || !e.IsError {
		t.Errorf("ShowError = %+v", e)
	}
}
