package layout

import (
	"strings"
	"testing"
)

// fakePane is a scroll source that counts writes.
type fakePane struct {
	top, client, content int
	writes               int
}

func (p *fakePane) ScrollTop() int { return p.top }
func (p *fakePane) SetScrollTop(v int) {
	p.writes++
	p.top = min(max(v, 0), max(p.content-p.client, 0))
}
func (p *fakePane) ClientHeight() int { return p.client }
func (p *fakePane) ScrollHeight() int { return p.content }

func newSplit(width, client, content int) (*Split, *fakePane) {
	pane := &fakePane{client: client, content: content}
	s := New(DefaultOptions(), pane)
	s.SetViewport(width, client)
	return s, pane
}

func TestResizeLayout_Geometry(t *testing.T) {
	tests := []struct {
		name      string
		width     int
		left      int
		wantLeft  int
		wantRight int
	}{
		{"explicit", 100, 40, 40, 59},
		{"zero uses default", 100, 0, DefaultLeft, 100 - DefaultLeft - 1},
		{"negative clamps to zero", 100, -5, 0, 99},
		{"beyond viewport clamps", 100, 500, 99, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newSplit(tt.width, 20, 50)
			s.ResizeLayout(tt.left)
			st := s.State()
			if st.Left != tt.wantLeft || st.HandlePos != tt.wantLeft {
				t.Errorf("left = %d handle = %d, want %d", st.Left, st.HandlePos, tt.wantLeft)
			}
			if st.RightOffset != tt.wantLeft+1 || st.RightWidth != tt.wantRight {
				t.Errorf("right offset/width = %d/%d, want %d/%d", st.RightOffset, st.RightWidth, tt.wantLeft+1, tt.wantRight)
			}
			if st.RightOffset+st.RightWidth > tt.width && st.RightWidth > 0 {
				t.Errorf("right pane overflows viewport")
			}
		})
	}
}

func TestResizeLayout_OmittedUsesHandle(t *testing.T) {
	s, _ := newSplit(120, 20, 50)
	s.ResizeLayout(45)
	s.Relayout()
	if s.State().Left != 45 {
		t.Errorf("Relayout moved the handle to %d", s.State().Left)
	}

	fresh, _ := newSplit(120, 20, 50)
	fresh.Relayout()
	if fresh.State().Left != DefaultLeft {
		t.Errorf("first relayout should fall back to the default, got %d", fresh.State().Left)
	}
}

func TestResizeLayout_ScrollbarGeometry(t *testing.T) {
	s, pane := newSplit(100, 20, 50)
	s.ResizeLayout(30)
	st := s.State()
	if st.ScrollbarOffset != 29 || st.ScrollbarWidth != 1 {
		t.Errorf("scrollbar offset/width = %d/%d", st.ScrollbarOffset, st.ScrollbarWidth)
	}
	if st.ScrollbarHeight != 20 || st.ScrollbarInner != 50 || !st.ScrollbarVisible {
		t.Errorf("scrollbar = %+v", st)
	}

	pane.content = 20
	s.Relayout()
	if s.State().ScrollbarVisible {
		t.Error("scrollbar should hide when content fits")
	}
	pane.content = 5
	s.Relayout()
	if s.State().ScrollbarVisible {
		t.Error("scrollbar should hide when content is shorter than the viewport")
	}
}

func TestDragLifecycle(t *testing.T) {
	s, _ := newSplit(100, 20, 50)
	s.ResizeLayout(30)

	s.Drag(60)
	if s.State().Left != 30 {
		t.Error("motion without a drag must not move the handle")
	}

	s.StartDrag()
	if !s.Dragging() || !s.State().OverlayActive {
		t.Fatal("drag should activate the overlay")
	}
	s.Drag(50)
	if s.State().Left != 50 {
		t.Errorf("left = %d, want 50", s.State().Left)
	}
	s.Drag(1000)
	if s.State().Left != 99 {
		t.Errorf("drag beyond viewport should clamp, got %d", s.State().Left)
	}

	if got := s.EndDrag(); got != 99 {
		t.Errorf("EndDrag = %d", got)
	}
	if s.Dragging() || s.State().OverlayActive {
		t.Error("drag state should clear")
	}
}

func TestScrollSync(t *testing.T) {
	s, pane := newSplit(100, 10, 100)
	s.ResizeLayout(30)

	// Source moves by N, bar follows by N.
	pane.top = 7
	s.OnScrollTarget()
	if s.Scrollbar().ScrollTop() != 7 {
		t.Errorf("bar top = %d, want 7", s.Scrollbar().ScrollTop())
	}

	// Bar moves by N, source follows by N.
	before := pane.writes
	s.ScrollbarBy(5)
	if pane.top != 12 || s.Scrollbar().ScrollTop() != 12 {
		t.Errorf("pane/bar = %d/%d, want 12", pane.top, s.Scrollbar().ScrollTop())
	}
	if pane.writes != before+1 {
		t.Errorf("expected one write, got %d", pane.writes-before)
	}

	// Equal values: no writes in either direction.
	before = pane.writes
	s.OnScroll()
	s.OnScrollTarget()
	s.OnScroll()
	if pane.writes != before {
		t.Errorf("sync wrote %d times with equal values", pane.writes-before)
	}
}

func TestScrollbarJump(t *testing.T) {
	s, pane := newSplit(100, 10, 100)
	s.ResizeLayout(30)

	s.ScrollbarJump(5)
	if pane.top != 50 {
		t.Errorf("pane top = %d, want 50", pane.top)
	}
	s.ScrollbarJump(9)
	if pane.top != 90 {
		t.Errorf("pane top = %d, want 90 (clamped)", pane.top)
	}
}

func TestScrollbarThumb(t *testing.T) {
	b := &Scrollbar{}
	b.resize(10, 100)

	if pos, size := b.Thumb(); pos != 0 || size != 1 {
		t.Errorf("top thumb = %d,%d", pos, size)
	}
	b.setTop(90)
	if pos, size := b.Thumb(); pos != 9 || size != 1 {
		t.Errorf("bottom thumb = %d,%d", pos, size)
	}

	b.resize(10, 20)
	b.setTop(0)
	if _, size := b.Thumb(); size != 5 {
		t.Errorf("half-visible thumb size = %d, want 5", size)
	}

	out := b.Render(false)
	if got := strings.Count(out, "\n"); got != 9 {
		t.Errorf("rendered %d lines, want 10", got+1)
	}
}

func TestResizeDebounce(t *testing.T) {
	s, _ := newSplit(100, 20, 50)
	s.ResizeLayout(30)

	first := s.WindowResized(80, 20)
	second := s.WindowResized(140, 30)
	if first == nil || second == nil {
		t.Fatal("expected tick commands")
	}

	if ran, _ := s.HandleResizeTick(ResizeTickMsg{Seq: 1}, false); ran {
		t.Error("superseded tick should be ignored")
	}

	ran, cmd := s.HandleResizeTick(ResizeTickMsg{Seq: 2}, true)
	if ran || cmd == nil {
		t.Error("busy tree should defer the relayout")
	}
	if w, _ := s.Size(); w != 100 {
		t.Errorf("deferred resize applied early: width %d", w)
	}

	ran, _ = s.HandleResizeTick(ResizeTickMsg{Seq: 2}, false)
	if !ran {
		t.Fatal("expected relayout")
	}
	if w, h := s.Size(); w != 140 || h != 30 {
		t.Errorf("size = %dx%d", w, h)
	}
	if s.State().Left != 30 || s.State().RightWidth != 109 {
		t.Errorf("relayout = %+v", s.State())
	}
}
