// Package tree owns the explorer's directory tree: which nodes are loaded,
// expanded and selected, and how reloads page through the folder service.
package tree

import (
	"context"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reviewer/internal/folder"
	"github.com/marcus/reviewer/internal/pathutil"
)

// Mode selects between reloading and collapsing a node.
type Mode int

const (
	// ModeRoot clears the tree, recreates the target node and reloads it.
	ModeRoot Mode = iota
	// ModeFold reloads the target's children unconditionally.
	ModeFold
	// ModeToggle reloads an unloaded target and collapses a loaded one.
	ModeToggle
)

func (m Mode) String() string {
	switch m {
	case ModeRoot:
		return "root"
	case ModeFold:
		return "fold"
	case ModeToggle:
		return "toggle"
	}
	return "unknown"
}

// LoadedMsg delivers the result of a reload.
type LoadedMsg struct {
	Seq     uint64
	Path    string
	Mode    Mode
	Listing *Listing
	Err     error
}

// ChangedMsg is emitted after every mutation of the visible tree.
type ChangedMsg struct{}

// ActivateMsg is emitted when a node's label is activated.
type ActivateMsg struct {
	Meta Metadata
}

type revealStep struct {
	Path    string
	Listing *Listing
}

// RevealedMsg delivers the volume list plus every ancestor listing loaded
// while descending to Target.
type RevealedMsg struct {
	Seq    uint64
	Target string
	Disks  []string
	Steps  []revealStep
	Err    error
}

// Config controls what the controller asks the folder service for.
type Config struct {
	PageSize       int
	FullPagination bool
	Sep            string
	Cache          string
	Order          folder.OrderSpec
	Meta           folder.MetaKind
}

// DefaultConfig is the tree's standard request shape.
func DefaultConfig() Config {
	return Config{
		PageSize: DefaultPageSize,
		Sep:      pathutil.Sep,
		Cache:    folder.TreeCache,
		Order:    folder.DefaultOrder,
		Meta:     folder.TreeMeta,
	}
}

// Controller is the tree state machine. All methods must be called from the
// Bubble Tea update loop; service calls happen inside returned commands.
type Controller struct {
	cfg     Config
	folders folder.Service
	disks   folder.DiskListService
	logger  *slog.Logger

	roots    []*Node
	nodes    map[string]*Node
	visible  []*Node
	selected string

	busy bool
	seq  uint64

	scrollTop int
	height    int
}

// New creates an empty controller.
func New(cfg Config, folders folder.Service, disks folder.DiskListService, logger *slog.Logger) *Controller {
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Sep == "" {
		cfg.Sep = pathutil.Sep
	}
	if len(cfg.Order) == 0 {
		cfg.Order = folder.DefaultOrder
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		cfg:     cfg,
		folders: folders,
		disks:   disks,
		logger:  logger,
		nodes:   make(map[string]*Node),
		height:  1,
	}
}

// Busy reports whether a reload is in flight.
func (c *Controller) Busy() bool { return c.busy }

// Config returns the active configuration.
func (c *Controller) Config() Config { return c.cfg }

// SetOrder changes the order used by subsequent reloads.
func (c *Controller) SetOrder(order folder.OrderSpec) {
	if len(order) > 0 {
		c.cfg.Order = order
	}
}

// Node looks up a rendered node by path.
func (c *Controller) Node(path string) *Node { return c.nodes[path] }

// Visible returns the flattened, depth-first list of rendered nodes.
func (c *Controller) Visible() []*Node { return c.visible }

// Roots returns the top-level nodes.
func (c *Controller) Roots() []*Node { return c.roots }

// Selected returns the selected node, or nil for an empty tree.
func (c *Controller) Selected() *Node { return c.nodes[c.selected] }

// Update applies asynchronous results. Unrelated messages are ignored.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case LoadedMsg:
		return c.applyLoaded(m)
	case RevealedMsg:
		return c.applyRevealed(m)
	}
	return nil
}

// ExpandOrReload decides between reloading and collapsing path.
func (c *Controller) ExpandOrReload(path string, mode Mode) tea.Cmd {
	if c.busy {
		return nil
	}

	var target *Node
	if mode == ModeRoot {
		c.reset()
		target = c.addRoot(path, "")
	} else {
		target = c.nodes[path]
		if target == nil || !target.IsDir() {
			return nil
		}
	}

	hadChildren := target.loaded
	c.dropChildren(target)

	if mode == ModeToggle && hadChildren {
		c.rebuild()
		return changed
	}

	c.busy = true
	c.seq++
	return c.loadCmd(c.seq, path, mode)
}

func (c *Controller) loadCmd(seq uint64, path string, mode Mode) tea.Cmd {
	svc := c.folders
	opts := c.options(path)
	pageSize, full := c.cfg.PageSize, c.cfg.FullPagination
	return func() tea.Msg {
		l, err := Paginate(context.Background(), svc, opts, pageSize, full)
		return LoadedMsg{Seq: seq, Path: path, Mode: mode, Listing: l, Err: err}
	}
}

func (c *Controller) options(path string) folder.Options {
	return folder.Options{
		Cache: c.cfg.Cache,
		Path:  path,
		Order: c.cfg.Order,
		Meta:  c.cfg.Meta,
	}
}

func (c *Controller) applyLoaded(m LoadedMsg) tea.Cmd {
	if m.Seq != c.seq {
		return nil
	}
	c.busy = false

	if m.Err != nil {
		c.logger.Warn("tree reload failed", "path", m.Path, "mode", m.Mode, "err", m.Err)
	}

	target := c.nodes[m.Path]
	if target != nil && m.Listing != nil {
		c.attach(target, m.Listing)
	}
	if target != nil {
		c.selected = target.Path()
	}
	c.rebuild()
	c.scrollToSelected()
	return changed
}

func changed() tea.Msg { return ChangedMsg{} }

// ChildBase is the base path of the listing's children.
func (l *Listing) ChildBase(sep string) string {
	return pathutil.JoinSep(sep, l.Base, l.Entry.Name)
}

// attach materializes a listing as the children container of n, in the
// order the service returned.
func (c *Controller) attach(n *Node, l *Listing) {
	if n.Depth == 0 && n.Meta.ModTime == nil {
		n.Meta.ModTime = l.Entry.ModTime
	}

	base := l.ChildBase(c.cfg.Sep)
	n.Children = make([]*Node, 0, len(l.Entry.Children))
	for _, e := range l.Entry.Children {
		meta := metadataFor(c.cfg.Sep, base, e)
		child := &Node{
			Meta:   meta,
			Label:  pathutil.DisplayName(c.cfg.Sep, base, e.Name),
			Depth:  n.Depth + 1,
			Parent: n,
		}
		n.Children = append(n.Children, child)
		c.nodes[meta.Path] = child
	}
	n.loaded = true
}

// dropChildren removes n's children container and every descendant. A
// selection inside the removed subtree moves to n.
func (c *Controller) dropChildren(n *Node) {
	var drop func(*Node)
	drop = func(p *Node) {
		for _, ch := range p.Children {
			drop(ch)
			delete(c.nodes, ch.Path())
			if c.selected == ch.Path() {
				c.selected = n.Path()
			}
		}
	}
	drop(n)
	n.Children = nil
	n.loaded = false
}

func (c *Controller) reset() {
	c.roots = nil
	c.nodes = make(map[string]*Node)
	c.visible = nil
	c.selected = ""
	c.scrollTop = 0
}

func (c *Controller) addRoot(path, label string) *Node {
	base, name := pathutil.SplitSep(c.cfg.Sep, path)
	if label == "" {
		label = pathutil.DisplayName(c.cfg.Sep, base, name)
	}
	n := &Node{
		Meta:  Metadata{Path: path, Name: name, Dir: true},
		Label: label,
	}
	c.roots = append(c.roots, n)
	c.nodes[path] = n
	if c.selected == "" {
		c.selected = path
	}
	return n
}

// rebuild recomputes the flattened visible order and restores the
// single-selection invariant.
func (c *Controller) rebuild() {
	c.visible = c.visible[:0]
	var walk func(*Node)
	walk = func(n *Node) {
		c.visible = append(c.visible, n)
		if !n.loaded {
			return
		}
		for _, ch := range n.Children {
			walk(ch)
		}
	}
	for _, r := range c.roots {
		walk(r)
	}

	if len(c.visible) == 0 {
		c.selected = ""
	} else if c.indexOf(c.selected) < 0 {
		c.selected = c.visible[0].Path()
	}
	c.SetScrollTop(c.scrollTop)
}

func (c *Controller) indexOf(path string) int {
	for i, n := range c.visible {
		if n.Path() == path {
			return i
		}
	}
	return -1
}
