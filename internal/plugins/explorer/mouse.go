package explorer

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reviewer/internal/mouse"
	"github.com/marcus/reviewer/internal/pathutil"
)

// Mouse region identifiers
const (
	regionLink        = "link"         // Links bar entry (Data: link)
	regionCrumb       = "crumb"        // Breadcrumb part (Data: path)
	regionTreePane    = "tree-pane"    // Overall tree pane for scroll targeting
	regionTreeGutter  = "tree-gutter"  // Indentation guide (Data: gutterHit)
	regionTreeIcon    = "tree-icon"    // Expander icon (Data: path)
	regionTreeLabel   = "tree-label"   // Node label (Data: path)
	regionScrollbar   = "scrollbar"    // Synthetic scrollbar track
	regionHandle      = "split-handle" // Draggable handle between the panes
	regionPreviewPane = "preview-pane" // Overall preview pane for scroll targeting
)

// gutterHit identifies the guide column of an ancestor on a row.
type gutterHit struct {
	Path  string
	Depth int
}

// handleMouse processes mouse events and dispatches to appropriate handlers.
func (p *Plugin) handleMouse(m tea.MouseMsg) (*Plugin, tea.Cmd) {
	action := p.mouseHandler.HandleMouse(m)

	// The drag overlay covers both panes until release.
	if p.split.State().OverlayActive {
		switch action.Type {
		case mouse.ActionDrag:
			return p.handleMouseDrag(action)
		case mouse.ActionDragEnd:
			return p.handleMouseDragEnd()
		}
		return p, nil
	}

	switch action.Type {
	case mouse.ActionClick:
		return p.handleMouseClick(action)
	case mouse.ActionDoubleClick:
		return p.handleMouseDoubleClick(action)
	case mouse.ActionScrollUp, mouse.ActionScrollDown:
		return p.handleMouseScroll(action)
	case mouse.ActionDrag:
		return p.handleMouseDrag(action)
	case mouse.ActionDragEnd:
		return p.handleMouseDragEnd()
	}
	return p, nil
}

func (p *Plugin) handleMouseClick(action mouse.MouseAction) (*Plugin, tea.Cmd) {
	if action.Region == nil {
		return p, nil
	}

	switch action.Region.ID {
	case regionLink:
		if l, ok := action.Region.Data.(link); ok {
			return p, p.followLink(l)
		}

	case regionCrumb:
		if path, ok := action.Region.Data.(string); ok {
			return p, p.tree.Reveal(path)
		}

	case regionTreeLabel:
		p.activePane = PaneTree
		if path, ok := action.Region.Data.(string); ok {
			return p, p.afterTree(p.tree.ClickLabel(path))
		}

	case regionTreeIcon:
		p.activePane = PaneTree
		if path, ok := action.Region.Data.(string); ok {
			return p, p.afterTree(p.tree.ClickIcon(path))
		}

	case regionTreeGutter:
		p.activePane = PaneTree
		if hit, ok := action.Region.Data.(gutterHit); ok {
			return p, p.afterTree(p.tree.ClickGutter(hit.Path, hit.Depth))
		}

	case regionTreePane:
		p.activePane = PaneTree

	case regionPreviewPane:
		p.activePane = PanePreview

	case regionScrollbar:
		p.mouseHandler.StartDrag(action.X, action.Y, regionScrollbar, p.tree.ScrollTop())
		p.split.ScrollbarJump(action.Y - headerHeight - 1)

	case regionHandle:
		p.mouseHandler.StartDrag(action.X, action.Y, regionHandle, p.split.State().Left)
		p.split.StartDrag()
	}
	return p, nil
}

// handleMouseDoubleClick toggles a directory from its label. Everything
// else behaves like a single click.
func (p *Plugin) handleMouseDoubleClick(action mouse.MouseAction) (*Plugin, tea.Cmd) {
	if action.Region != nil && action.Region.ID == regionTreeLabel {
		if path, ok := action.Region.Data.(string); ok {
			if n := p.tree.Node(path); n != nil && n.IsDir() {
				p.activePane = PaneTree
				return p, p.afterTree(p.tree.ClickIcon(path))
			}
		}
	}
	return p.handleMouseClick(action)
}

func (p *Plugin) handleMouseScroll(action mouse.MouseAction) (*Plugin, tea.Cmd) {
	if action.Region == nil {
		return p, nil
	}
	switch action.Region.ID {
	case regionPreviewPane:
		p.preview.ScrollBy(action.Delta)
	case regionTreePane, regionTreeLabel, regionTreeIcon, regionTreeGutter, regionScrollbar:
		p.tree.ScrollBy(action.Delta)
		p.split.OnScrollTarget()
	}
	return p, nil
}

func (p *Plugin) handleMouseDrag(action mouse.MouseAction) (*Plugin, tea.Cmd) {
	switch p.mouseHandler.DragRegion() {
	case regionHandle:
		p.split.Drag(action.X)
		p.applySizes()
	case regionScrollbar:
		p.split.ScrollbarJump(action.Y - headerHeight - 1)
	}
	return p, nil
}

// handleMouseDragEnd persists the split width after a handle drag.
func (p *Plugin) handleMouseDragEnd() (*Plugin, tea.Cmd) {
	if !p.split.Dragging() {
		return p, nil
	}
	w := p.split.EndDrag()
	p.applySizes()
	if err := p.ctx.State.SetSplitWidth(w); err != nil {
		p.logger.Warn("save split width", "err", err)
	}
	return p, nil
}

// followLink handles a links bar click. "." reveals the first tree root and
// ".." its parent.
func (p *Plugin) followLink(l link) tea.Cmd {
	switch l.kind {
	case linkDisks:
		return p.tree.ShowDisks()
	case linkPath:
		return p.tree.Reveal(l.path)
	}

	roots := p.tree.Roots()
	if len(roots) == 0 {
		return nil
	}
	path := roots[0].Path()
	if l.kind == linkParent {
		if parent := pathutil.ParentSep(p.sess.Sep, path); parent != "" {
			path = parent
		}
	}
	return p.tree.Reveal(path)
}
