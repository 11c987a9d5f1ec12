package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/reviewer/internal/mouse"
)

func TestConfirmDialog_Defaults(t *testing.T) {
	d := NewConfirmDialog("Quit?", "Leave the explorer")
	if d.ConfirmLabel != " Confirm " || d.CancelLabel != " Cancel " {
		t.Errorf("labels = %q/%q", d.ConfirmLabel, d.CancelLabel)
	}
	if d.Width != ModalWidthMedium {
		t.Errorf("width = %d", d.Width)
	}
	if d.Focused() != ActionConfirm {
		t.Errorf("initial focus = %q", d.Focused())
	}
}

func TestConfirmDialog_Render(t *testing.T) {
	d := NewConfirmDialog("Quit?", "Leave the explorer")
	out := ansi.Strip(d.Render(80, 24, nil))
	for _, want := range []string{"Quit?", "Leave the explorer", "Confirm", "Cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestConfirmDialog_HandleKey(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want string
	}{
		{"y confirms", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'y'}}}, ActionConfirm},
		{"n cancels", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'n'}}}, ActionCancel},
		{"esc cancels", []tea.KeyMsg{{Type: tea.KeyEsc}}, ActionCancel},
		{"enter uses focus", []tea.KeyMsg{{Type: tea.KeyEnter}}, ActionConfirm},
		{"tab then enter cancels", []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}}, ActionCancel},
		{"other keys ignored", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune{'x'}}}, ActionNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewConfirmDialog("Quit?", "")
			var got string
			for _, k := range tt.keys {
				got = d.HandleKey(k)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConfirmDialog_HandleMouse(t *testing.T) {
	d := NewConfirmDialog("Quit?", "Leave")
	h := mouse.NewHandler()
	d.Render(80, 24, h)

	regions := h.HitMap.Regions()
	var confirm, cancel mouse.Rect
	for _, r := range regions {
		switch r.ID {
		case RegionConfirm:
			confirm = r.Rect
		case RegionCancel:
			cancel = r.Rect
		}
	}
	if confirm.W == 0 || cancel.W == 0 {
		t.Fatalf("button regions not registered: %+v", regions)
	}

	click := func(x, y int) string {
		return d.HandleMouse(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, h)
	}
	if got := click(cancel.X, cancel.Y); got != ActionCancel {
		t.Errorf("cancel click = %q", got)
	}
	if got := click(confirm.X, confirm.Y); got != ActionConfirm {
		t.Errorf("confirm click = %q", got)
	}
	if got := click(0, 0); got != ActionCancel {
		t.Errorf("backdrop click = %q", got)
	}
}

func TestRenderHelp(t *testing.T) {
	out := ansi.Strip(RenderHelp([]HelpSection{
		{Title: "Tree", Rows: []HelpRow{{"↑/↓", "move"}, {"enter", "open"}}},
	}, 40))
	for _, want := range []string{"Keys", "Tree", "enter", "open"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q", want)
		}
	}
	if lipgloss.Width(out) > 48 {
		t.Errorf("help too wide: %d", lipgloss.Width(out))
	}
}
