package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/reviewer/internal/config"
	"github.com/marcus/reviewer/internal/folder"
)

func TestResolveCurPath(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}
	f := filepath.Join(sub, "notes.txt")
	if err := os.WriteFile(f, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no args uses cwd", nil, cwd},
		{"empty arg uses cwd", []string{""}, cwd},
		{"directory", []string{sub}, sub},
		{"file resolves to parent", []string{f}, sub},
		{"extra args ignored", []string{root, sub}, root},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveCurPath(tt.args)
			if err != nil {
				t.Fatalf("ResolveCurPath(%v) error: %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("ResolveCurPath(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestResolveCurPath_Missing(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")
	_, err := ResolveCurPath([]string{missing})
	if err == nil {
		t.Fatal("expected an error for a missing path")
	}
	if n := strings.Count(err.Error(), missing); n != 1 {
		t.Errorf("path appears %d times in %q", n, err)
	}
}

func TestNew(t *testing.T) {
	cfg := config.Default()
	cfg.Tree.PageSize = 200
	cfg.Tree.FullPagination = true

	s := New(cfg, "/srv", nil)
	tc := s.TreeConfig()
	if tc.PageSize != 200 || !tc.FullPagination {
		t.Errorf("tree config = %+v", tc)
	}
	if tc.Cache != folder.TreeCache || tc.Meta != folder.TreeMeta {
		t.Errorf("tree request shape = %+v", tc)
	}
	if !tc.Order.Equal(folder.DefaultOrder) {
		t.Errorf("order = %s", tc.Order)
	}
	if s.ContentMeta != folder.ContentMeta || s.ContentCache != folder.ContentCache {
		t.Errorf("content request shape = %+v", s)
	}
}
