package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/reviewer/internal/mouse"
	"github.com/marcus/reviewer/internal/styles"
)

// Dialog widths, in cells.
const (
	ModalWidthSmall  = 36
	ModalWidthMedium = 50
	ModalWidthLarge  = 70
)

// Hit region IDs registered by ConfirmDialog.
const (
	RegionConfirm  = "confirm-yes"
	RegionCancel   = "confirm-no"
	RegionModal    = "confirm-body"
	RegionBackdrop = "confirm-backdrop"
)

// Confirm dialog results.
const (
	ActionNone    = ""
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// ConfirmDialog is a yes/no modal with clickable buttons.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string
	CancelLabel  string
	Width        int

	focus int // 0 confirm, 1 cancel
}

// NewConfirmDialog creates a dialog with default labels.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        ModalWidthMedium,
	}
}

// Focused returns the focused button's action.
func (d *ConfirmDialog) Focused() string {
	if d.focus == 0 {
		return ActionConfirm
	}
	return ActionCancel
}

func (d *ConfirmDialog) buttons() string {
	confirm := styles.KeyHint
	cancel := styles.KeyHint
	if d.focus == 0 {
		confirm = confirm.Background(styles.Primary).Foreground(styles.TextPrimary)
	} else {
		cancel = cancel.Background(styles.Primary).Foreground(styles.TextPrimary)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		confirm.Render(d.ConfirmLabel), "  ", cancel.Render(d.CancelLabel))
}

// Render returns the dialog box. When handler is non-nil the buttons and
// body are registered assuming the box is centered on a screen of the
// given size.
func (d *ConfirmDialog) Render(screenW, screenH int, handler *mouse.Handler) string {
	body := d.Message + "\n\n" + d.buttons()
	box := Box(d.Title, body, d.Width)
	if handler == nil {
		return box
	}

	bw, bh := lipgloss.Width(box), lipgloss.Height(box)
	x := max((screenW-bw)/2, 0)
	y := max((screenH-bh)/2, 0)
	handler.HitMap.AddRect(RegionBackdrop, 0, 0, screenW, screenH, nil)
	handler.HitMap.AddRect(RegionModal, x, y, bw, bh, nil)

	// Buttons sit on the last content row, inside border and padding.
	by := y + bh - 3
	bx := x + 3
	cw := lipgloss.Width(styles.KeyHint.Render(d.ConfirmLabel))
	handler.HitMap.AddRect(RegionConfirm, bx, by, cw, 1, nil)
	handler.HitMap.AddRect(RegionCancel, bx+cw+2, by, lipgloss.Width(styles.KeyHint.Render(d.CancelLabel)), 1, nil)
	return box
}

// HandleKey maps a key to a dialog action.
func (d *ConfirmDialog) HandleKey(msg tea.KeyMsg) string {
	switch msg.String() {
	case "y", "Y":
		return ActionConfirm
	case "n", "N", "esc":
		return ActionCancel
	case "tab", "left", "right", "h", "l", "shift+tab":
		d.focus = 1 - d.focus
	case "enter":
		return d.Focused()
	}
	return ActionNone
}

// HandleMouse maps a click to a dialog action. Clicks outside the box cancel.
func (d *ConfirmDialog) HandleMouse(msg tea.MouseMsg, handler *mouse.Handler) string {
	action := handler.HandleMouse(msg)
	if action.Type != mouse.ActionClick && action.Type != mouse.ActionDoubleClick {
		return ActionNone
	}
	switch action.Region.ID {
	case RegionConfirm:
		return ActionConfirm
	case RegionCancel, RegionBackdrop:
		return ActionCancel
	}
	return ActionNone
}
