package tree

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Select marks path as the single selected node and scrolls it into view.
// Unknown paths are ignored.
func (c *Controller) Select(path string) {
	if c.indexOf(path) < 0 {
		return
	}
	c.selected = path
	c.scrollToSelected()
}

// MoveUp selects the previous visible node, stopping at the first.
func (c *Controller) MoveUp() tea.Cmd {
	return c.move(-1)
}

// MoveDown selects the next visible node, stopping at the last.
func (c *Controller) MoveDown() tea.Cmd {
	return c.move(1)
}

// MoveBy moves the selection delta rows, clamped to the first and last.
func (c *Controller) MoveBy(delta int) tea.Cmd {
	return c.move(delta)
}

func (c *Controller) move(delta int) tea.Cmd {
	if c.busy || len(c.visible) == 0 {
		return nil
	}
	idx := c.indexOf(c.selected)
	next := min(max(idx+delta, 0), len(c.visible)-1)
	c.Select(c.visible[next].Path())
	return nil
}

// Right expands a collapsed directory without moving the selection.
// Unlike an icon click it never collapses: an expanded directory stays open.
func (c *Controller) Right() tea.Cmd {
	if c.busy {
		return nil
	}
	n := c.Selected()
	if n == nil || !n.IsDir() || n.loaded {
		return nil
	}
	return c.ExpandOrReload(n.Path(), ModeToggle)
}

// Left collapses an expanded directory. On a file or collapsed directory
// it selects the parent and collapses that instead.
func (c *Controller) Left() tea.Cmd {
	if c.busy {
		return nil
	}
	n := c.Selected()
	if n == nil {
		return nil
	}
	if n.IsDir() && n.loaded {
		return c.ExpandOrReload(n.Path(), ModeToggle)
	}
	p := n.Parent
	if p == nil {
		return nil
	}
	c.Select(p.Path())
	return c.ExpandOrReload(p.Path(), ModeToggle)
}

// Reload refetches the selected directory, or the parent of a selected
// file, keeping it expanded.
func (c *Controller) Reload() tea.Cmd {
	if c.busy {
		return nil
	}
	n := c.Selected()
	if n == nil {
		return nil
	}
	if !n.IsDir() {
		n = n.Parent
		if n == nil {
			return nil
		}
	}
	return c.ExpandOrReload(n.Path(), ModeFold)
}

// Activate behaves like a click on the selected node's label.
func (c *Controller) Activate() tea.Cmd {
	if c.busy {
		return nil
	}
	n := c.Selected()
	if n == nil {
		return nil
	}
	return activate(n)
}

func activate(n *Node) tea.Cmd {
	meta := n.Meta
	return func() tea.Msg { return ActivateMsg{Meta: meta} }
}

// ClickLabel selects the node and activates it.
func (c *Controller) ClickLabel(path string) tea.Cmd {
	if c.busy {
		return nil
	}
	n := c.nodes[path]
	if n == nil {
		return nil
	}
	c.Select(path)
	return activate(n)
}

// ClickIcon toggles a directory, or views a file.
func (c *Controller) ClickIcon(path string) tea.Cmd {
	if c.busy {
		return nil
	}
	n := c.nodes[path]
	if n == nil {
		return nil
	}
	c.Select(path)
	if n.IsDir() {
		return c.ExpandOrReload(path, ModeToggle)
	}
	return activate(n)
}

// ClickGutter handles a click in the indentation of path at the guide
// column for depth: the ancestor at that depth is selected and toggled.
func (c *Controller) ClickGutter(path string, depth int) tea.Cmd {
	if c.busy {
		return nil
	}
	n := c.nodes[path]
	if n == nil {
		return nil
	}
	a := n.Ancestor(depth)
	if a == nil {
		return nil
	}
	c.Select(a.Path())
	return c.ExpandOrReload(a.Path(), ModeToggle)
}

// SetViewportHeight sets how many rows of the tree are visible.
func (c *Controller) SetViewportHeight(h int) {
	c.height = max(h, 1)
	c.SetScrollTop(c.scrollTop)
}

// ScrollTop is the index of the first visible row.
func (c *Controller) ScrollTop() int { return c.scrollTop }

// SetScrollTop scrolls to v, clamped to the content.
func (c *Controller) SetScrollTop(v int) {
	c.scrollTop = min(max(v, 0), max(len(c.visible)-c.height, 0))
}

// ClientHeight is the viewport height in rows.
func (c *Controller) ClientHeight() int { return c.height }

// ScrollHeight is the content height in rows.
func (c *Controller) ScrollHeight() int { return len(c.visible) }

// ScrollBy scrolls by delta rows.
func (c *Controller) ScrollBy(delta int) {
	c.SetScrollTop(c.scrollTop + delta)
}

// scrollToSelected centers the selection when it sits outside the viewport.
func (c *Controller) scrollToSelected() {
	idx := c.indexOf(c.selected)
	if idx < 0 {
		return
	}
	if idx >= c.scrollTop && idx < c.scrollTop+c.height {
		return
	}
	c.SetScrollTop(idx - c.height/2)
}
