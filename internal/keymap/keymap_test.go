package keymap

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newDefaults() *Registry {
	r := NewRegistry()
	RegisterDefaults(r)
	return r
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		key     tea.KeyMsg
		context string
		want    string
	}{
		{"tree down arrow", tea.KeyMsg{Type: tea.KeyDown}, ContextTree, CmdDown},
		{"tree vim down", runes("j"), ContextTree, CmdDown},
		{"tree enter activates", tea.KeyMsg{Type: tea.KeyEnter}, ContextTree, CmdActivate},
		{"tree space activates", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, ContextTree, CmdActivate},
		{"global falls through", runes("q"), ContextTree, CmdQuit},
		{"preview markdown", runes("m"), ContextPreview, CmdMarkdown},
		{"markdown not in tree", runes("m"), ContextTree, ""},
		{"unbound", runes("x"), ContextTree, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newDefaults()
			if got := r.Resolve(tt.key, tt.context); got != tt.want {
				t.Errorf("Resolve(%q, %s) = %q, want %q", tt.key.String(), tt.context, got, tt.want)
			}
		})
	}
}

func TestResolve_Sequence(t *testing.T) {
	r := newDefaults()
	clock := time.Unix(0, 0)
	r.now = func() time.Time { return clock }

	if got := r.Resolve(runes("g"), ContextTree); got != "" {
		t.Fatalf("first key of a sequence resolved to %q", got)
	}
	clock = clock.Add(100 * time.Millisecond)
	if got := r.Resolve(runes("g"), ContextTree); got != CmdTop {
		t.Errorf("sequence = %q, want %q", got, CmdTop)
	}

	r.Resolve(runes("g"), ContextTree)
	clock = clock.Add(time.Second)
	if got := r.Resolve(runes("g"), ContextTree); got != "" {
		t.Errorf("expired sequence resolved to %q", got)
	}
}

func TestSetUserOverride(t *testing.T) {
	r := newDefaults()
	r.SetUserOverride("x", CmdYank)
	r.SetUserOverride("y", CmdReload)

	if got := r.Resolve(runes("x"), ContextTree); got != CmdYank {
		t.Errorf("override x = %q", got)
	}
	if got := r.Resolve(runes("y"), ContextTree); got != CmdReload {
		t.Errorf("override y = %q", got)
	}
	if got := r.Resolve(runes("x"), ContextGlobal); got != "" {
		t.Errorf("override leaked into a context without the command: %q", got)
	}
}

func TestHandle(t *testing.T) {
	r := newDefaults()
	called := false
	r.RegisterCommand(Command{ID: CmdReload, Handler: func() tea.Cmd {
		called = true
		return nil
	}})

	r.Handle(runes("r"), ContextTree)
	if !called {
		t.Error("handler not invoked")
	}
	if cmd := r.Handle(runes("j"), ContextTree); cmd != nil {
		t.Error("command without a handler should return nil")
	}
}

func TestKeysFor(t *testing.T) {
	r := newDefaults()
	keys := r.KeysFor(CmdActivate, ContextTree)
	if len(keys) != 2 || keys[0] != "enter" || keys[1] != " " {
		t.Errorf("KeysFor(activate) = %q", keys)
	}
}

func TestCommandNamesCoverBindings(t *testing.T) {
	for _, b := range DefaultBindings() {
		if CommandNames[b.Command] == "" {
			t.Errorf("command %q has no display name", b.Command)
		}
	}
}
