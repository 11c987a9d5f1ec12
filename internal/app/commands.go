package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reviewer/internal/msg"
)

// showToast replaces the current toast and schedules its expiry.
func (m *Model) showToast(t msg.ToastMsg) tea.Cmd {
	d := t.Duration
	if d <= 0 {
		d = msg.DefaultToastDuration
	}
	m.toastSeq++
	seq := m.toastSeq
	m.toast = &toast{message: t.Message, isError: t.IsError, seq: seq}
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg.ToastExpiredMsg{Seq: seq}
	})
}

// clearToast drops the toast if it is still the one that expired.
func (m *Model) clearToast(seq uint64) {
	if m.toast != nil && m.toast.seq == seq {
		m.toast = nil
	}
}
