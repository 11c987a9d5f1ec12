package app

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reviewer/internal/config"
	"github.com/marcus/reviewer/internal/keymap"
	"github.com/marcus/reviewer/internal/msg"
	"github.com/marcus/reviewer/internal/plugin"
)

type fakePlugin struct {
	context  string
	commands []plugin.Command
	received []tea.Msg
	started  bool
	stopped  bool
	focused  bool
}

func (f *fakePlugin) ID() string { return "fake" }
func (f *fakePlugin) Name() string { return "fake" }
func (f *fakePlugin) Icon() string { return "F" }
func (f *fakePlugin) Init(*plugin.Context) error { return nil }
func (f *fakePlugin) Start() tea.Cmd { f.started = true; return nil }
func (f *fakePlugin) Stop() { f.stopped = true }
func (f *fakePlugin) View(width, height int) string { return "plugin body" }
func (f *fakePlugin) IsFocused() bool { return f.focused }
func (f *fakePlugin) SetFocused(v bool) { f.focused = v }
func (f *fakePlugin) Commands() []plugin.Command { return f.commands }
func (f *fakePlugin) FocusContext() string { return f.context }

func (f *fakePlugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	f.received = append(f.received, m)
	return f, nil
}

func (f *fakePlugin) last() tea.Msg {
	if len(f.received) == 0 {
		return nil
	}
	return f.received[len(f.received)-1]
}

func newTestModel(t *testing.T) (Model, *fakePlugin, *keymap.Registry) {
	t.Helper()
	fp := &fakePlugin{context: keymap.ContextTree}
	reg := plugin.NewRegistry(&plugin.Context{})
	if err := reg.Register(fp); err != nil {
		t.Fatalf("register: %v", err)
	}
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	m := New(reg, km, config.Default(), "v1.2.3", "/home/me")
	return m, fp, km
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m Model, message tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(message)
	return next.(Model), cmd
}

func TestNewFocusesAndInitStarts(t *testing.T) {
	m, fp, _ := newTestModel(t)
	if !fp.focused {
		t.Error("plugin not focused")
	}
	if m.ActiveContext() != keymap.ContextTree {
		t.Errorf("context = %q, want %q", m.ActiveContext(), keymap.ContextTree)
	}
	m.Init()
	if !fp.started {
		t.Error("plugin not started")
	}
}

func TestKeyResolvesToCommand(t *testing.T) {
	m, fp, _ := newTestModel(t)
	update(t, m, runes("j"))

	c, ok := fp.last().(plugin.CommandMsg)
	if !ok {
		t.Fatalf("got %T, want plugin.CommandMsg", fp.last())
	}
	if c.ID != keymap.CmdDown {
		t.Errorf("command = %q, want %q", c.ID, keymap.CmdDown)
	}
	if c.Key.String() != "j" {
		t.Errorf("key = %q", c.Key.String())
	}
}

func TestSequenceResolvesOnSecondKey(t *testing.T) {
	m, fp, _ := newTestModel(t)
	m, _ = update(t, m, runes("g"))
	if _, ok := fp.last().(tea.KeyMsg); !ok {
		t.Fatalf("first key: got %T, want raw tea.KeyMsg", fp.last())
	}
	update(t, m, runes("g"))
	c, ok := fp.last().(plugin.CommandMsg)
	if !ok || c.ID != keymap.CmdTop {
		t.Fatalf("second key: got %#v, want %s", fp.last(), keymap.CmdTop)
	}
}

func TestUnboundKeyForwardedRaw(t *testing.T) {
	m, fp, _ := newTestModel(t)
	update(t, m, runes("x"))
	k, ok := fp.last().(tea.KeyMsg)
	if !ok || k.String() != "x" {
		t.Fatalf("got %#v, want raw x", fp.last())
	}
}

func TestCommandHandlerRuns(t *testing.T) {
	m, fp, km := newTestModel(t)
	ran := false
	km.RegisterCommand(keymap.Command{ID: "custom", Handler: func() tea.Cmd {
		ran = true
		return nil
	}})
	km.Bind(keymap.Binding{Key: "z", Command: "custom", Context: keymap.ContextGlobal})

	update(t, m, runes("z"))
	if !ran {
		t.Error("handler not run")
	}
	if len(fp.received) != 0 {
		t.Errorf("plugin received %d messages, want 0", len(fp.received))
	}
}

func TestQuitConfirm(t *testing.T) {
	m, fp, _ := newTestModel(t)

	m, _ = update(t, m, runes("q"))
	if m.activeModal() != ModalQuitConfirm {
		t.Fatal("quit confirm not shown")
	}
	m, cmd := update(t, m, runes("n"))
	if m.hasModal() || cmd != nil {
		t.Fatal("n should cancel")
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if !m.showQuitConfirm {
		t.Fatal("ctrl+c should ask first")
	}
	_, cmd = update(t, m, runes("y"))
	if cmd == nil {
		t.Fatal("y should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
	if !fp.stopped {
		t.Error("plugins not stopped")
	}
}

func TestHelpOverlay(t *testing.T) {
	m, fp, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	before := len(fp.received)

	m, _ = update(t, m, runes("?"))
	if m.activeModal() != ModalHelp {
		t.Fatal("help not shown")
	}
	view := m.View()
	if !strings.Contains(view, "Global") || !strings.Contains(view, "sort by size") {
		t.Errorf("help missing sections:\n%s", view)
	}

	// Keys are swallowed while help is open.
	m, _ = update(t, m, runes("j"))
	if len(fp.received) != before {
		t.Error("key leaked to plugin while help open")
	}
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.hasModal() {
		t.Error("esc should close help")
	}
}

func TestWindowSizeForwardsContentArea(t *testing.T) {
	tests := []struct {
		name       string
		header     bool
		footer     bool
		wantHeight int
	}{
		{"header and footer", true, true, 28},
		{"footer only", false, true, 29},
		{"bare", false, false, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, fp, _ := newTestModel(t)
			m.showHeader, m.showFooter = tt.header, tt.footer
			update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
			ws, ok := fp.last().(tea.WindowSizeMsg)
			if !ok {
				t.Fatalf("got %T", fp.last())
			}
			if ws.Width != 100 || ws.Height != tt.wantHeight {
				t.Errorf("size = %dx%d, want 100x%d", ws.Width, ws.Height, tt.wantHeight)
			}
		})
	}
}

func TestMouseShiftedBelowHeader(t *testing.T) {
	m, fp, _ := newTestModel(t)

	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 5, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	mm, ok := fp.last().(tea.MouseMsg)
	if !ok || mm.Y != 4 || mm.X != 3 {
		t.Fatalf("got %#v, want X=3 Y=4", fp.last())
	}

	n := len(fp.received)
	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if len(fp.received) != n {
		t.Error("press on the title row should not reach the plugin")
	}

	update(t, m, tea.MouseMsg{X: 3, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	mm, ok = fp.last().(tea.MouseMsg)
	if !ok || mm.Action != tea.MouseActionRelease || mm.Y != 0 {
		t.Errorf("release not forwarded: %#v", fp.last())
	}
}

func TestToastExpiresBySequence(t *testing.T) {
	m, _, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})

	m, cmd := update(t, m, msg.ToastMsg{Message: "Copied: /tmp"})
	if cmd == nil || m.toast == nil {
		t.Fatal("toast not shown")
	}
	if !strings.Contains(m.View(), "Copied: /tmp") {
		t.Error("toast not rendered")
	}

	m, _ = update(t, m, msg.ToastMsg{Message: "second", IsError: true})
	m, _ = update(t, m, msg.ToastExpiredMsg{Seq: 1})
	if m.toast == nil || m.toast.message != "second" {
		t.Fatal("stale expiry cleared the newer toast")
	}
	m, _ = update(t, m, msg.ToastExpiredMsg{Seq: 2})
	if m.toast != nil {
		t.Error("toast not cleared")
	}
}

func TestFooterHintsFollowPriority(t *testing.T) {
	m, fp, _ := newTestModel(t)
	fp.commands = []plugin.Command{
		{ID: keymap.CmdReload, Name: "Reload", Context: keymap.ContextTree, Priority: 3},
		{ID: keymap.CmdActivate, Name: "Open", Context: keymap.ContextTree, Priority: 1},
		{ID: keymap.CmdBack, Name: "Back", Context: keymap.ContextPreview, Priority: 1},
		{ID: "unbound", Name: "Nothing", Context: keymap.ContextTree, Priority: 1},
	}

	hints := m.footerHints()
	var labels []string
	for _, h := range hints {
		labels = append(labels, h.label)
	}
	got := strings.Join(labels, ",")
	want := "Open,Reload,pane,help,quit"
	if got != want {
		t.Errorf("labels = %s, want %s", got, want)
	}
	if hints[0].keys != "enter, space" {
		t.Errorf("open keys = %q", hints[0].keys)
	}
}

func TestRenderHintLineTruncated(t *testing.T) {
	hints := []footerHint{{"a", "alpha"}, {"b", "beta"}, {"c", "gamma"}}
	full := renderHintLineTruncated(hints, 200)
	short := renderHintLineTruncated(hints, 12)
	if !strings.Contains(full, "gamma") {
		t.Errorf("full line missing hint: %q", full)
	}
	if strings.Contains(short, "beta") || !strings.Contains(short, "alpha") {
		t.Errorf("short line = %q", short)
	}
	if renderHintLineTruncated(hints, 0) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestFormatBindingKeys(t *testing.T) {
	tests := []struct {
		keys []string
		want string
	}{
		{nil, ""},
		{[]string{"j"}, "j"},
		{[]string{"enter", " "}, "enter, space"},
		{[]string{"up", "k", "ctrl+p"}, "up, k"},
	}
	for _, tt := range tests {
		if got := formatBindingKeys(tt.keys); got != tt.want {
			t.Errorf("formatBindingKeys(%q) = %q, want %q", tt.keys, got, tt.want)
		}
	}
}

func TestViewTooSmall(t *testing.T) {
	m, _, _ := newTestModel(t)
	if m.View() != "Loading..." {
		t.Error("expected loading view before the first size")
	}
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 20, Height: 5})
	if !strings.Contains(m.View(), "Terminal too small") {
		t.Error("expected size warning")
	}
}
