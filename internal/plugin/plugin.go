// Package plugin defines the contract between the app shell and the views
// it hosts.
package plugin

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reviewer/internal/config"
	"github.com/marcus/reviewer/internal/folder"
	"github.com/marcus/reviewer/internal/keymap"
	"github.com/marcus/reviewer/internal/preview"
	"github.com/marcus/reviewer/internal/state"
)

// Plugin is a view hosted by the app.
type Plugin interface {
	ID() string
	Name() string
	Icon() string
	Init(ctx *Context) error
	Start() tea.Cmd
	Stop()
	Update(msg tea.Msg) (Plugin, tea.Cmd)
	View(width, height int) string
	IsFocused() bool
	SetFocused(bool)
	Commands() []Command
	FocusContext() string
}

// Services are the collaborators a plugin reads the file system through.
type Services struct {
	Folders folder.Service
	Text    folder.TextService
	Home    folder.HomeDirsService
	Disks   folder.DiskListService
	Player  preview.Player
}

// Context is shared by every plugin.
type Context struct {
	WorkDir  string // directory the session started in
	Config   *config.Config
	State    *state.Store
	Keymap   *keymap.Registry
	Services Services
	Logger   *slog.Logger
	Epoch    uint64 // bumped when the session root changes
}

// Category groups commands in the help overlay.
type Category string

const (
	CategoryNavigation Category = "Navigation"
	CategoryActions    Category = "Actions"
	CategoryView       Category = "View"
	CategorySystem     Category = "System"
)

// Command is a keybinding command exposed by a plugin.
type Command struct {
	ID          string
	Name        string // short footer label
	Description string
	Category    Category
	Context     string
	Priority    int // footer order: 1 first, 0 treated as 99
}

// PluginFocusedMsg is sent to a plugin when it becomes active.
type PluginFocusedMsg struct{}

// CommandMsg carries a key the app already resolved to a command in the
// plugin's focus context.
type CommandMsg struct {
	ID  string
	Key tea.KeyMsg
}

// EpochMessage is implemented by async results that must be dropped once
// the session root changes.
type EpochMessage interface {
	GetEpoch() uint64
}

// IsStale reports whether msg was produced under an earlier epoch.
//
//	if plugin.IsStale(p.ctx, msg) { return p, nil }
func IsStale(ctx *Context, msg EpochMessage) bool {
	return ctx != nil && msg.GetEpoch() != ctx.Epoch
}
