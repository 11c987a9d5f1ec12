package explorer

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reviewer/internal/folder"
	"github.com/marcus/reviewer/internal/keymap"
	"github.com/marcus/reviewer/internal/msg"
	"github.com/marcus/reviewer/internal/plugin"
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// Tree orders selected by the sort commands. Directories always come first.
var (
	orderByName = folder.DefaultOrder
	orderBySize = folder.OrderSpec{
		{Field: folder.FieldDir, Direction: folder.Asc},
		{Field: folder.FieldSize, Direction: folder.Desc},
		{Field: folder.FieldName, Direction: folder.Asc},
	}
	orderByTime = folder.OrderSpec{
		{Field: folder.FieldDir, Direction: folder.Asc},
		{Field: folder.FieldTime, Direction: folder.Desc},
		{Field: folder.FieldName, Direction: folder.Asc},
	}
)

// handleCommand runs a command the app resolved in this plugin's focus
// context.
func (p *Plugin) handleCommand(c plugin.CommandMsg) (plugin.Plugin, tea.Cmd) {
	switch c.ID {
	case keymap.CmdSwitchPane:
		if p.activePane == PaneTree {
			p.activePane = PanePreview
		} else {
			p.activePane = PaneTree
		}
		return p, nil
	case keymap.CmdWiden:
		return p, p.moveHandle(p.split.State().Left + widenStep)
	case keymap.CmdNarrow:
		return p, p.moveHandle(max(p.split.State().Left-widenStep, 1))
	case keymap.CmdResetLayout:
		return p, p.moveHandle(0)
	}

	if p.activePane == PanePreview {
		return p, p.handlePreviewCommand(c)
	}
	return p, p.handleTreeCommand(c.ID)
}

func (p *Plugin) handleTreeCommand(id string) tea.Cmd {
	switch id {
	case keymap.CmdUp:
		return p.afterTree(p.tree.MoveUp())
	case keymap.CmdDown:
		return p.afterTree(p.tree.MoveDown())
	case keymap.CmdTop:
		return p.afterTree(p.tree.MoveBy(-len(p.tree.Visible())))
	case keymap.CmdBottom:
		return p.afterTree(p.tree.MoveBy(len(p.tree.Visible())))
	case keymap.CmdPageUp:
		return p.afterTree(p.tree.MoveBy(-p.tree.ClientHeight()))
	case keymap.CmdPageDown:
		return p.afterTree(p.tree.MoveBy(p.tree.ClientHeight()))
	case keymap.CmdExpand:
		return p.afterTree(p.tree.Right())
	case keymap.CmdCollapse:
		return p.afterTree(p.tree.Left())
	case keymap.CmdActivate:
		return p.afterTree(p.tree.Activate())
	case keymap.CmdReload:
		return p.tree.Reload()
	case keymap.CmdReveal:
		if n := p.tree.Selected(); n != nil {
			return p.tree.Reveal(n.Path())
		}
	case keymap.CmdDisks:
		return p.tree.ShowDisks()
	case keymap.CmdYank:
		if n := p.tree.Selected(); n != nil {
			return p.yank(n.Path())
		}
	case keymap.CmdOpen:
		if n := p.tree.Selected(); n != nil {
			return p.preview.Open(n.Path())
		}
	case keymap.CmdSortName:
		return p.sortTree(orderByName, "name")
	case keymap.CmdSortSize:
		return p.sortTree(orderBySize, "size")
	case keymap.CmdSortTime:
		return p.sortTree(orderByTime, "date")
	}
	return nil
}

func (p *Plugin) handlePreviewCommand(c plugin.CommandMsg) tea.Cmd {
	page := max(p.tree.ClientHeight()-1, 1)
	switch c.ID {
	case keymap.CmdUp:
		p.preview.ScrollBy(-1)
	case keymap.CmdDown:
		p.preview.ScrollBy(1)
	case keymap.CmdPageUp:
		p.preview.ScrollBy(-page)
	case keymap.CmdPageDown:
		p.preview.ScrollBy(page)
	case keymap.CmdTop:
		p.preview.ScrollBy(-1 << 30)
	case keymap.CmdBottom:
		p.preview.ScrollBy(1 << 30)
	case keymap.CmdMarkdown:
		if !p.preview.ToggleMarkdown() {
			return msg.ShowToast("Not a markdown file", 0)
		}
	case keymap.CmdOpen:
		return p.preview.OpenExternal()
	case keymap.CmdYank:
		if path := p.preview.Current().Path; path != "" {
			return p.yank(path)
		}
	case keymap.CmdBack:
		p.activePane = PaneTree
	default:
		return p.preview.Update(c.Key)
	}
	return nil
}

// afterTree keeps the scrollbar on the tree's scroll position after a
// navigation command.
func (p *Plugin) afterTree(cmd tea.Cmd) tea.Cmd {
	p.split.OnScrollTarget()
	return cmd
}

// moveHandle places the handle at left (0 restores the default) and
// persists the result.
func (p *Plugin) moveHandle(left int) tea.Cmd {
	p.split.ResizeLayout(left)
	p.applySizes()
	if err := p.ctx.State.SetSplitWidth(p.split.State().Left); err != nil {
		p.logger.Warn("save split width", "err", err)
	}
	return nil
}

// sortTree switches the tree order, persists it and rebuilds the tree down
// to the selection.
func (p *Plugin) sortTree(order folder.OrderSpec, label string) tea.Cmd {
	if p.tree.Busy() {
		return nil
	}
	p.tree.SetOrder(order)
	if err := p.ctx.State.SetTreeOrder(order); err != nil {
		p.logger.Warn("save tree order", "err", err)
	}
	target := p.sess.CurPath
	if n := p.tree.Selected(); n != nil {
		target = n.Path()
	}
	load := p.tree.ShowDisks()
	if target != "" {
		load = p.tree.Reveal(target)
	}
	return tea.Batch(load, msg.ShowToast("Sorted by "+label, 0))
}

func (p *Plugin) yank(path string) tea.Cmd {
	if err := writeClipboard(path); err != nil {
		p.logger.Warn("clipboard", "err", err)
		return msg.ShowError("Failed to copy path", 2*time.Second)
	}
	return msg.ShowToast("Copied: "+path, 2*time.Second)
}
