// Package explorer is the file explorer view: the directory tree on the
// left, the content preview on the right and the draggable handle between
// them.
package explorer

import (
	"context"
	"fmt"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/reviewer/internal/folder"
	"github.com/marcus/reviewer/internal/keymap"
	"github.com/marcus/reviewer/internal/layout"
	"github.com/marcus/reviewer/internal/mouse"
	"github.com/marcus/reviewer/internal/msg"
	"github.com/marcus/reviewer/internal/pathutil"
	"github.com/marcus/reviewer/internal/plugin"
	"github.com/marcus/reviewer/internal/preview"
	"github.com/marcus/reviewer/internal/session"
	"github.com/marcus/reviewer/internal/tree"
)

const (
	pluginID   = "explorer"
	pluginName = "explorer"
	pluginIcon = "E"

	// headerHeight is the links and breadcrumb row above the panes.
	headerHeight = 1
	// widenStep is how far > and < move the handle.
	widenStep = 4
)

// FocusPane represents which pane is active.
type FocusPane int

const (
	PaneTree FocusPane = iota
	PanePreview
)

// HomeDirsMsg delivers the well-known user directories for the links bar.
type HomeDirsMsg struct {
	Dirs folder.HomeDirs
	Err  error
}

// Plugin implements the explorer view.
type Plugin struct {
	ctx    *plugin.Context
	sess   *session.Session
	logger *slog.Logger

	tree    *tree.Controller
	preview *preview.Dispatcher
	split   *layout.Split

	home      folder.HomeDirs
	crumbPath string

	focused    bool
	activePane FocusPane

	width  int
	height int
	sized  bool

	mouseHandler *mouse.Handler
}

// New creates an explorer for sess.
func New(sess *session.Session) *Plugin {
	return &Plugin{
		sess:         sess,
		mouseHandler: mouse.NewHandler(),
	}
}

// ID returns the plugin identifier.
func (p *Plugin) ID() string { return pluginID }

// Name returns the plugin display name.
func (p *Plugin) Name() string { return pluginName }

// Icon returns the plugin icon character.
func (p *Plugin) Icon() string { return pluginIcon }

// Init wires the tree, the preview and the split to the context's services.
func (p *Plugin) Init(ctx *plugin.Context) error {
	if p.sess == nil {
		return fmt.Errorf("explorer: no session")
	}
	p.ctx = ctx
	p.logger = ctx.Logger
	if p.logger == nil {
		p.logger = slog.Default()
	}
	svc := ctx.Services

	p.tree = tree.New(p.sess.TreeConfig(), svc.Folders, svc.Disks, p.logger)

	opts := preview.DefaultOptions()
	opts.PageSize = p.sess.PageSize
	opts.FullPagination = p.sess.FullPagination
	opts.Sep = p.sess.Sep
	opts.ListOrder = p.sess.ContentOrder
	if cfg := ctx.Config; cfg != nil {
		opts.Threshold = cfg.Preview.TextLimit
		opts.SyntaxTheme = cfg.Preview.SyntaxTheme
		opts.Autoplay = cfg.Preview.Autoplay
		opts.Volume = cfg.Preview.Volume
		if cfg.Preview.Opener != "" {
			opts.Opener = cfg.Preview.Opener
		}
	}
	p.preview = preview.NewDispatcher(opts, svc.Text, svc.Folders, svc.Player, p.logger)

	lopts := layout.DefaultOptions()
	if cfg := ctx.Config; cfg != nil {
		lopts.DefaultLeft = cfg.Layout.DefaultLeft
		lopts.Debounce = cfg.Layout.ResizeDebounce
	}
	p.split = layout.New(lopts, p.tree)
	p.crumbPath = p.sess.CurPath
	return nil
}

// Start reveals the session directory and resolves the links bar. Without
// a start directory only the volumes are shown.
func (p *Plugin) Start() tea.Cmd {
	load := p.tree.ShowDisks()
	if p.sess.CurPath != "" {
		load = p.tree.Reveal(p.sess.CurPath)
	}
	return tea.Batch(load, p.loadHomeDirs())
}

// Stop silences any playing media.
func (p *Plugin) Stop() {
	if p.preview != nil {
		p.preview.Close()
	}
}

func (p *Plugin) loadHomeDirs() tea.Cmd {
	svc := p.ctx.Services.Home
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		dirs, err := svc.HomeDirs(context.Background())
		return HomeDirsMsg{Dirs: dirs, Err: err}
	}
}

// Update handles messages.
func (p *Plugin) Update(m tea.Msg) (plugin.Plugin, tea.Cmd) {
	switch m := m.(type) {
	case tea.WindowSizeMsg:
		return p, p.resize(m.Width, m.Height)

	case layout.ResizeTickMsg:
		ran, cmd := p.split.HandleResizeTick(m, p.tree.Busy())
		if ran {
			p.width, p.height = p.split.Size()
			p.applySizes()
		}
		return p, cmd

	case tree.LoadedMsg, tree.RevealedMsg:
		return p, p.tree.Update(m)

	case tree.ChangedMsg:
		p.split.Relayout()
		return p, nil

	case tree.ActivateMsg:
		return p, p.activate(m.Meta)

	case preview.LoadedMsg:
		return p, p.preview.Update(m)

	case preview.OpenFailedMsg:
		p.logger.Warn("open external", "path", m.Path, "err", m.Err)
		return p, msg.ShowError("Open failed: "+m.Err.Error(), 0)

	case HomeDirsMsg:
		if m.Err != nil {
			p.logger.Warn("home dirs", "err", m.Err)
		}
		p.home = m.Dirs
		return p, nil

	case plugin.CommandMsg:
		return p.handleCommand(m)

	case tea.KeyMsg:
		if p.activePane == PanePreview {
			return p, p.preview.Update(m)
		}

	case tea.MouseMsg:
		return p.handleMouse(m)
	}
	return p, nil
}

// resize applies the first size immediately and debounces later ones.
func (p *Plugin) resize(width, height int) tea.Cmd {
	if !p.sized {
		p.sized = true
		p.width, p.height = width, height
		p.split.SetViewport(width, height)
		p.applySizes()
		p.split.ResizeLayout(p.ctx.State.SplitWidth())
		p.applySizes()
		return nil
	}
	return p.split.WindowResized(width, height)
}

// paneHeight is the outer height of both panes.
func (p *Plugin) paneHeight() int {
	return max(p.height-headerHeight, 0)
}

// applySizes pushes the current geometry into the tree and the preview.
func (p *Plugin) applySizes() {
	inner := max(p.paneHeight()-2, 1)
	p.tree.SetViewportHeight(inner)
	p.split.Relayout()
	st := p.split.State()
	p.preview.SetSize(max(st.RightWidth-4, 1), max(inner-1, 1))
}

// activate mounts the preview for meta and points the breadcrumb at it.
func (p *Plugin) activate(meta tree.Metadata) tea.Cmd {
	p.crumbPath = meta.Path
	last := meta.Path
	var cmd tea.Cmd
	if meta.Dir {
		cmd = p.preview.ShowList(meta.Path)
	} else {
		cmd = p.preview.ViewFile(preview.File{
			Path: meta.Path,
			Mime: meta.Mime,
			Size: meta.SizeOr(0),
		})
		last = pathutil.ParentSep(p.sess.Sep, meta.Path)
	}
	if err := p.ctx.State.SetLastPath(last); err != nil {
		p.logger.Warn("save last path", "err", err)
	}
	return cmd
}

// View renders the explorer.
// Geometry follows the last applied resize, so a pending debounced resize
// renders at the previous size.
func (p *Plugin) View(width, height int) string {
	content := p.renderView()
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

// IsFocused returns whether the plugin is focused.
func (p *Plugin) IsFocused() bool { return p.focused }

// SetFocused sets the focus state.
func (p *Plugin) SetFocused(f bool) { p.focused = f }

// Commands returns the footer commands.
func (p *Plugin) Commands() []plugin.Command {
	return []plugin.Command{
		{ID: keymap.CmdActivate, Name: "Open", Description: "Preview the selected entry", Category: plugin.CategoryNavigation, Context: keymap.ContextTree, Priority: 1},
		{ID: keymap.CmdExpand, Name: "Expand", Description: "Expand the selected directory", Category: plugin.CategoryNavigation, Context: keymap.ContextTree, Priority: 2},
		{ID: keymap.CmdCollapse, Name: "Collapse", Description: "Collapse or go to parent", Category: plugin.CategoryNavigation, Context: keymap.ContextTree, Priority: 2},
		{ID: keymap.CmdReload, Name: "Reload", Description: "Reload the selected directory", Category: plugin.CategoryActions, Context: keymap.ContextTree, Priority: 3},
		{ID: keymap.CmdReveal, Name: "Reveal", Description: "Rebuild the tree down to the selection", Category: plugin.CategoryNavigation, Context: keymap.ContextTree, Priority: 4},
		{ID: keymap.CmdDisks, Name: "Disks", Description: "Show the volume list", Category: plugin.CategoryNavigation, Context: keymap.ContextTree, Priority: 5},
		{ID: keymap.CmdYank, Name: "Copy", Description: "Copy the selected path", Category: plugin.CategoryActions, Context: keymap.ContextTree, Priority: 5},
		{ID: keymap.CmdOpen, Name: "External", Description: "Open with the system viewer", Category: plugin.CategoryActions, Context: keymap.ContextTree, Priority: 6},
		{ID: keymap.CmdSortName, Name: "Name", Description: "Sort the tree by name", Category: plugin.CategoryView, Context: keymap.ContextTree, Priority: 7},
		{ID: keymap.CmdSortSize, Name: "Size", Description: "Sort the tree by size", Category: plugin.CategoryView, Context: keymap.ContextTree, Priority: 7},
		{ID: keymap.CmdSortTime, Name: "Date", Description: "Sort the tree by modification time", Category: plugin.CategoryView, Context: keymap.ContextTree, Priority: 7},
		{ID: keymap.CmdWiden, Name: "Wider", Description: "Move the split right", Category: plugin.CategoryView, Context: keymap.ContextTree, Priority: 8},
		{ID: keymap.CmdNarrow, Name: "Narrower", Description: "Move the split left", Category: plugin.CategoryView, Context: keymap.ContextTree, Priority: 8},
		{ID: keymap.CmdResetLayout, Name: "Reset", Description: "Restore the default split", Category: plugin.CategoryView, Context: keymap.ContextTree, Priority: 9},

		{ID: keymap.CmdBack, Name: "Back", Description: "Return to the tree", Category: plugin.CategoryNavigation, Context: keymap.ContextPreview, Priority: 1},
		{ID: keymap.CmdMarkdown, Name: "Markdown", Description: "Toggle rendered markdown", Category: plugin.CategoryView, Context: keymap.ContextPreview, Priority: 2},
		{ID: keymap.CmdOpen, Name: "External", Description: "Open with the system viewer", Category: plugin.CategoryActions, Context: keymap.ContextPreview, Priority: 3},
		{ID: keymap.CmdYank, Name: "Copy", Description: "Copy the previewed path", Category: plugin.CategoryActions, Context: keymap.ContextPreview, Priority: 4},
		{ID: keymap.CmdWiden, Name: "Wider", Description: "Move the split right", Category: plugin.CategoryView, Context: keymap.ContextPreview, Priority: 5},
		{ID: keymap.CmdNarrow, Name: "Narrower", Description: "Move the split left", Category: plugin.CategoryView, Context: keymap.ContextPreview, Priority: 5},
	}
}

// FocusContext returns the current focus context.
func (p *Plugin) FocusContext() string {
	if p.activePane == PanePreview {
		return keymap.ContextPreview
	}
	return keymap.ContextTree
}

// ActivePane reports which pane has focus.
func (p *Plugin) ActivePane() FocusPane { return p.activePane }

// Busy reports whether the tree is loading.
func (p *Plugin) Busy() bool { return p.tree != nil && p.tree.Busy() }

// CrumbPath is the path shown in the breadcrumb.
func (p *Plugin) CrumbPath() string { return p.crumbPath }
