package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reviewer/internal/config"
	"github.com/marcus/reviewer/internal/keymap"
	"github.com/marcus/reviewer/internal/mouse"
	"github.com/marcus/reviewer/internal/plugin"
	"github.com/marcus/reviewer/internal/styles"
	"github.com/marcus/reviewer/internal/ui"
)

// ModalKind identifies an app-level modal with explicit priority ordering.
// Lower values = higher priority (checked first for rendering and input routing).
type ModalKind int

const (
	ModalNone        ModalKind = iota // No modal open
	ModalQuitConfirm                  // Quit confirmation dialog
	ModalHelp                         // Key help overlay
)

// activeModal returns the highest-priority open modal.
func (m *Model) activeModal() ModalKind {
	switch {
	case m.showQuitConfirm:
		return ModalQuitConfirm
	case m.showHelp:
		return ModalHelp
	default:
		return ModalNone
	}
}

// hasModal returns true if any app-level modal is open.
func (m *Model) hasModal() bool {
	return m.activeModal() != ModalNone
}

// toast is the message currently shown in the lower right corner.
type toast struct {
	message string
	isError bool
	seq     uint64
}

// Model is the root Bubble Tea model for the reviewer application.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	// Plugin management
	registry     *plugin.Registry
	activePlugin int

	// Keymap
	keymap        *keymap.Registry
	activeContext string

	// UI state
	width, height   int
	ready           bool
	showHeader      bool
	showFooter      bool
	showHelp        bool
	showQuitConfirm bool
	quitDialog      *ui.ConfirmDialog

	// Modal hit regions, rebuilt on every View.
	mouseHandler *mouse.Handler

	toast    *toast
	toastSeq uint64

	currentVersion string
	workDir        string
}

// New creates a new application model.
func New(reg *plugin.Registry, km *keymap.Registry, cfg *config.Config, currentVersion, workDir string) Model {
	if cfg == nil {
		cfg = config.Default()
	}
	applyThemeFromConfig(cfg)

	logger := slog.Default()
	if ctx := reg.Context(); ctx != nil && ctx.Logger != nil {
		logger = ctx.Logger
	}

	m := Model{
		cfg:            cfg,
		logger:         logger,
		registry:       reg,
		keymap:         km,
		activeContext:  keymap.ContextGlobal,
		showHeader:     cfg.UI.ShowHeader,
		showFooter:     cfg.UI.ShowFooter,
		mouseHandler:   mouse.NewHandler(),
		currentVersion: currentVersion,
		workDir:        workDir,
	}
	if p := m.ActivePlugin(); p != nil {
		p.SetFocused(true)
	}
	m.updateContext()
	return m
}

// Init starts every registered plugin.
func (m Model) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, p := range m.registry.Plugins() {
		if cmd := p.Start(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// ActivePlugin returns the focused plugin, or nil when none is registered.
func (m Model) ActivePlugin() plugin.Plugin {
	plugins := m.registry.Plugins()
	if m.activePlugin < 0 || m.activePlugin >= len(plugins) {
		return nil
	}
	return plugins[m.activePlugin]
}

// ActiveContext is the keymap context keys are currently resolved in.
func (m Model) ActiveContext() string { return m.activeContext }

// applyThemeFromConfig applies the configured theme and its color overrides.
func applyThemeFromConfig(cfg *config.Config) {
	name := cfg.UI.Theme.Name
	if !styles.IsValidTheme(name) {
		name = styles.DefaultTheme.Name
	}
	styles.ApplyThemeWithOverrides(name, cfg.UI.Theme.Overrides)
}
