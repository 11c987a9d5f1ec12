// Package msg holds messages any component may send to the app shell.
package msg

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultToastDuration is used when a toast has no duration.
const DefaultToastDuration = 2 * time.Second

// ToastMsg displays a temporary message.
type ToastMsg struct {
	Message  string
	Duration time.Duration
	IsError  bool // red instead of green
}

// ToastExpiredMsg clears a toast once its duration has passed.
type ToastExpiredMsg struct {
	Seq uint64
}

// ShowToast returns a command to show a toast message.
func ShowToast(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: message, Duration: duration}
	}
}

// ShowError returns a command to show an error toast.
func ShowError(message string, duration time.Duration) tea.Cmd {
	return func() tea.Msg {
		return ToastMsg{Message: message, Duration: duration, IsError: true}
	}
}
