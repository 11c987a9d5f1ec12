// Package mouse provides hit testing and click/drag tracking for terminal
// mouse events.
package mouse

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// doubleClickWindow is the maximum gap between two presses on the same
// region that still counts as a double click.
const doubleClickWindow = 400 * time.Millisecond

// scrollStep is the number of rows a single wheel notch scrolls.
const scrollStep = 3

// Rect is a cell-aligned rectangle. The right and bottom edges are exclusive.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether (x, y) falls inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Region is a named, hit-testable area with an optional payload.
type Region struct {
	ID   string
	Rect Rect
	Data any
}

// HitMap holds regions in z-order. Later regions sit on top.
type HitMap struct {
	regions []Region
}

// NewHitMap creates an empty hit map.
func NewHitMap() *HitMap {
	return &HitMap{}
}

// Add registers a region.
func (h *HitMap) Add(id string, rect Rect, data any) {
	h.regions = append(h.regions, Region{ID: id, Rect: rect, Data: data})
}

// AddRect is Add with the rectangle given as coordinates.
func (h *HitMap) AddRect(id string, x, y, w, hgt int, data any) {
	h.Add(id, Rect{X: x, Y: y, W: w, H: hgt}, data)
}

// Test returns the topmost region containing (x, y), or nil.
func (h *HitMap) Test(x, y int) *Region {
	for i := len(h.regions) - 1; i >= 0; i-- {
		if h.regions[i].Rect.Contains(x, y) {
			r := h.regions[i]
			return &r
		}
	}
	return nil
}

// Clear removes all regions.
func (h *HitMap) Clear() {
	h.regions = h.regions[:0]
}

// Regions returns a copy of the registered regions.
func (h *HitMap) Regions() []Region {
	out := make([]Region, len(h.regions))
	copy(out, h.regions)
	return out
}

// ActionType classifies a mouse event after hit testing.
type ActionType int

const (
	ActionNone ActionType = iota
	ActionClick
	ActionDoubleClick
	ActionScrollUp
	ActionScrollDown
	ActionScrollLeft
	ActionScrollRight
	ActionDrag
	ActionDragEnd
	ActionHover
)

// MouseAction is the result of HandleMouse.
type MouseAction struct {
	Type   ActionType
	Region *Region
	X, Y   int
	Delta  int // scroll rows, negative is up/left

	DragDX, DragDY int
}

// ClickResult is the result of HandleClick.
type ClickResult struct {
	Region        *Region
	IsDoubleClick bool
}

// Handler tracks click timing and drag state on top of a HitMap.
type Handler struct {
	HitMap *HitMap

	lastClickID   string
	lastClickTime time.Time

	dragging       bool
	dragRegion     string
	dragStartX     int
	dragStartY     int
	dragStartValue int
}

// NewHandler creates a handler with an empty hit map.
func NewHandler() *Handler {
	return &Handler{HitMap: NewHitMap()}
}

// Clear resets the hit map. Drag state survives so a drag can continue
// across re-renders.
func (h *Handler) Clear() {
	h.HitMap.Clear()
}

// HandleClick hit-tests a press and detects double clicks.
func (h *Handler) HandleClick(x, y int) ClickResult {
	region := h.HitMap.Test(x, y)
	if region == nil {
		h.lastClickID = ""
		return ClickResult{}
	}

	now := time.Now()
	double := region.ID == h.lastClickID && now.Sub(h.lastClickTime) <= doubleClickWindow
	if double {
		h.lastClickID = ""
		h.lastClickTime = time.Time{}
	} else {
		h.lastClickID = region.ID
		h.lastClickTime = now
	}
	return ClickResult{Region: region, IsDoubleClick: double}
}

// StartDrag begins tracking a drag that started at (x, y) on region.
// startValue is an opaque value (usually a width) the caller wants back.
func (h *Handler) StartDrag(x, y int, region string, startValue int) {
	h.dragging = true
	h.dragRegion = region
	h.dragStartX = x
	h.dragStartY = y
	h.dragStartValue = startValue
}

// DragDelta returns the offset of (x, y) from the drag start.
func (h *Handler) DragDelta(x, y int) (int, int) {
	return x - h.dragStartX, y - h.dragStartY
}

// EndDrag stops drag tracking.
func (h *Handler) EndDrag() {
	h.dragging = false
	h.dragRegion = ""
}

// IsDragging reports whether a drag is in progress.
func (h *Handler) IsDragging() bool { return h.dragging }

// DragRegion returns the region ID the drag started on.
func (h *Handler) DragRegion() string { return h.dragRegion }

// DragStartValue returns the value passed to StartDrag.
func (h *Handler) DragStartValue() int { return h.dragStartValue }

// HandleMouse converts a bubbletea mouse message into a MouseAction.
func (h *Handler) HandleMouse(m tea.MouseMsg) MouseAction {
	action := MouseAction{X: m.X, Y: m.Y}

	switch m.Action {
	case tea.MouseActionPress:
		switch m.Button {
		case tea.MouseButtonWheelUp:
			action.Region = h.HitMap.Test(m.X, m.Y)
			if m.Shift {
				action.Type = ActionScrollLeft
			} else {
				action.Type = ActionScrollUp
			}
			action.Delta = -scrollStep
		case tea.MouseButtonWheelDown:
			action.Region = h.HitMap.Test(m.X, m.Y)
			if m.Shift {
				action.Type = ActionScrollRight
			} else {
				action.Type = ActionScrollDown
			}
			action.Delta = scrollStep
		// Natural scrolling reports the opposite wheel direction.
		case tea.MouseButtonWheelLeft:
			action.Region = h.HitMap.Test(m.X, m.Y)
			action.Type = ActionScrollRight
			action.Delta = scrollStep
		case tea.MouseButtonWheelRight:
			action.Region = h.HitMap.Test(m.X, m.Y)
			action.Type = ActionScrollLeft
			action.Delta = -scrollStep
		case tea.MouseButtonLeft:
			res := h.HandleClick(m.X, m.Y)
			if res.Region == nil {
				return action
			}
			action.Region = res.Region
			if res.IsDoubleClick {
				action.Type = ActionDoubleClick
			} else {
				action.Type = ActionClick
			}
		}

	case tea.MouseActionMotion:
		if h.dragging {
			action.Type = ActionDrag
			action.DragDX, action.DragDY = h.DragDelta(m.X, m.Y)
			return action
		}
		action.Type = ActionHover
		action.Region = h.HitMap.Test(m.X, m.Y)

	case tea.MouseActionRelease:
		if h.dragging {
			action.Type = ActionDragEnd
			action.DragDX, action.DragDY = h.DragDelta(m.X, m.Y)
			h.EndDrag()
		}
	}

	return action
}
