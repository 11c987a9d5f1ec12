// Package layout manages the explorer's two resizable panes, the drag
// handle between them and the synthetic scrollbar mirroring the tree.
package layout

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Defaults, in cells.
const (
	DefaultLeft           = 32
	DefaultHandleWidth    = 1
	DefaultScrollbarWidth = 1
	DefaultDebounce       = 50 * time.Millisecond
)

// ScrollPane is a scrollable region measured in rows.
type ScrollPane interface {
	ScrollTop() int
	SetScrollTop(int)
	ClientHeight() int
	ScrollHeight() int
}

// Options configure a Split.
type Options struct {
	DefaultLeft    int
	HandleWidth    int
	ScrollbarWidth int
	Debounce       time.Duration
}

// DefaultOptions returns the standard geometry.
func DefaultOptions() Options {
	return Options{
		DefaultLeft:    DefaultLeft,
		HandleWidth:    DefaultHandleWidth,
		ScrollbarWidth: DefaultScrollbarWidth,
		Debounce:       DefaultDebounce,
	}
}

// State is the computed geometry.
type State struct {
	Left        int
	HandlePos   int
	RightOffset int
	RightWidth  int

	ScrollbarOffset  int
	ScrollbarWidth   int
	ScrollbarHeight  int
	ScrollbarInner   int
	ScrollbarVisible bool

	Dragging      bool
	OverlayActive bool
}

// ResizeTickMsg fires after a debounced window resize.
type ResizeTickMsg struct {
	Seq uint64
}

// Split is the two-pane layout. It is driven from the Bubble Tea update
// loop only.
type Split struct {
	opts   Options
	source ScrollPane
	bar    Scrollbar

	width  int
	height int
	state  State

	resizeSeq     uint64
	pendingWidth  int
	pendingHeight int
}

// New creates a split whose scrollbar mirrors source.
func New(opts Options, source ScrollPane) *Split {
	if opts.DefaultLeft <= 0 {
		opts.DefaultLeft = DefaultLeft
	}
	if opts.HandleWidth <= 0 {
		opts.HandleWidth = DefaultHandleWidth
	}
	if opts.ScrollbarWidth <= 0 {
		opts.ScrollbarWidth = DefaultScrollbarWidth
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	return &Split{opts: opts, source: source}
}

// State returns the current geometry.
func (s *Split) State() State { return s.state }

// Scrollbar exposes the synthetic scrollbar.
func (s *Split) Scrollbar() *Scrollbar { return &s.bar }

// Size returns the viewport size.
func (s *Split) Size() (int, int) { return s.width, s.height }

// SetViewport sets the viewport size without relayout.
func (s *Split) SetViewport(width, height int) {
	s.width = max(width, 0)
	s.height = max(height, 0)
}

// Relayout recomputes geometry from the handle's current position.
func (s *Split) Relayout() {
	s.ResizeLayout(s.state.HandlePos)
}

// ResizeLayout places the handle at left and recomputes everything else.
// A width of 0 is replaced by the configured default.
func (s *Split) ResizeLayout(left int) {
	if left == 0 {
		left = s.opts.DefaultLeft
	}
	left = min(max(left, 0), max(s.width-s.opts.HandleWidth, 0))

	st := &s.state
	st.Left = left
	st.HandlePos = left
	st.RightOffset = left + s.opts.HandleWidth
	st.RightWidth = max(s.width-st.RightOffset, 0)

	st.ScrollbarWidth = s.opts.ScrollbarWidth
	st.ScrollbarOffset = max(left-s.opts.ScrollbarWidth, 0)
	if s.source != nil {
		st.ScrollbarHeight = s.source.ClientHeight()
		st.ScrollbarInner = s.source.ScrollHeight()
	}
	st.ScrollbarVisible = st.ScrollbarInner > st.ScrollbarHeight

	s.bar.resize(st.ScrollbarHeight, st.ScrollbarInner)
	s.OnScrollTarget()
}

// StartDrag begins a handle drag. While dragging the overlay is active and
// callers must not route pointer events to the panes.
func (s *Split) StartDrag() {
	s.state.Dragging = true
	s.state.OverlayActive = true
}

// Drag moves the handle to pointer column x, clamped to the viewport.
func (s *Split) Drag(x int) {
	if !s.state.Dragging {
		return
	}
	s.ResizeLayout(min(max(x, 0), s.width))
}

// EndDrag finishes a drag and returns the final left width.
func (s *Split) EndDrag() int {
	s.state.Dragging = false
	s.state.OverlayActive = false
	return s.state.Left
}

// Dragging reports whether a drag is in progress.
func (s *Split) Dragging() bool { return s.state.Dragging }

// OnScroll copies the scrollbar position to the source pane.
func (s *Split) OnScroll() {
	if s.source == nil {
		return
	}
	if s.source.ScrollTop() != s.bar.top {
		s.source.SetScrollTop(s.bar.top)
	}
}

// OnScrollTarget copies the source pane position to the scrollbar.
func (s *Split) OnScrollTarget() {
	if s.source == nil {
		return
	}
	if top := s.source.ScrollTop(); s.bar.top != top {
		s.bar.setTop(top)
	}
}

// ScrollbarBy moves the synthetic scrollbar and follows with the source.
func (s *Split) ScrollbarBy(delta int) {
	s.bar.setTop(s.bar.top + delta)
	s.OnScroll()
}

// ScrollbarJump moves the scrollbar so row y of its track is the thumb
// position, as when clicking the track.
func (s *Split) ScrollbarJump(y int) {
	if s.bar.height <= 0 {
		return
	}
	s.bar.setTop(y * s.bar.inner / s.bar.height)
	s.OnScroll()
}

// WindowResized schedules a debounced relayout for the new size.
func (s *Split) WindowResized(width, height int) tea.Cmd {
	s.pendingWidth, s.pendingHeight = width, height
	s.resizeSeq++
	return s.tick(s.resizeSeq)
}

func (s *Split) tick(seq uint64) tea.Cmd {
	return tea.Tick(s.opts.Debounce, func(time.Time) tea.Msg {
		return ResizeTickMsg{Seq: seq}
	})
}

// HandleResizeTick applies the latest pending resize. While busy the
// relayout is deferred by another tick. It reports whether a relayout ran.
func (s *Split) HandleResizeTick(msg ResizeTickMsg, busy bool) (bool, tea.Cmd) {
	if msg.Seq != s.resizeSeq {
		return false, nil
	}
	if busy {
		return false, s.tick(msg.Seq)
	}
	s.SetViewport(s.pendingWidth, s.pendingHeight)
	s.Relayout()
	return true, nil
}
