package explorer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/reviewer/internal/layout"
	"github.com/marcus/reviewer/internal/pathutil"
	"github.com/marcus/reviewer/internal/preview"
	"github.com/marcus/reviewer/internal/styles"
	"github.com/marcus/reviewer/internal/tree"
)

// linkKind says what a links-bar entry does when clicked.
type linkKind int

const (
	linkDisks linkKind = iota
	linkPath
	linkFirstRoot
	linkParent
)

type link struct {
	label string
	kind  linkKind
	path  string
}

// links returns the links bar, skipping home directories that could not
// be resolved.
func (p *Plugin) links() []link {
	out := []link{{label: "/", kind: linkDisks}}
	for _, l := range []link{
		{label: "~", path: p.home.Home},
		{label: "downloads", path: p.home.Downloads},
		{label: "docs", path: p.home.Documents},
		{label: "videos", path: p.home.Videos},
		{label: "music", path: p.home.Music},
		{label: "pictures", path: p.home.Pictures},
		{label: "desktop", path: p.home.Desktop},
	} {
		if l.path != "" {
			l.kind = linkPath
			out = append(out, l)
		}
	}
	return append(out,
		link{label: ".", kind: linkFirstRoot},
		link{label: "..", kind: linkParent},
	)
}

// crumb is one clickable part of the breadcrumb.
type crumb struct {
	label string
	path  string
}

// crumbs splits path into one part per ancestor, volume root first.
func crumbs(sep, path string) []crumb {
	if path == "" {
		return nil
	}
	var out []crumb
	for i, a := range pathutil.AncestorsSep(sep, path) {
		label := a
		if i > 0 {
			_, label = pathutil.SplitSep(sep, a)
		}
		out = append(out, crumb{label: label, path: a})
	}
	return out
}

// renderView lays out the header row above the two panes and records every
// hit region.
func (p *Plugin) renderView() string {
	p.mouseHandler.Clear()
	if p.width <= 0 || p.height <= 0 {
		return ""
	}

	header := p.renderHeader()
	paneH := p.paneHeight()
	if paneH < 3 {
		return header
	}

	st := p.split.State()
	left := p.renderTreePane(st.Left, paneH)
	handle := p.renderHandle(paneH)
	right := p.renderPreviewPane(st.RightWidth, paneH)

	var parts []string
	if st.Left > 0 {
		parts = append(parts, left)
	}
	parts = append(parts, handle)
	if st.RightWidth > 0 {
		parts = append(parts, right)
	}
	panes := lipgloss.JoinHorizontal(lipgloss.Top, parts...)

	p.registerPaneRegions(st, paneH)
	return lipgloss.JoinVertical(lipgloss.Left, header, panes)
}

// renderHeader renders the links bar on the left and the breadcrumb on the
// right of the first row.
func (p *Plugin) renderHeader() string {
	var b strings.Builder
	x := 0
	for i, l := range p.links() {
		if i > 0 {
			b.WriteString(styles.Header.Render(" "))
			x++
		}
		text := " " + l.label + " "
		w := runewidth.StringWidth(text)
		if x+w > p.width {
			break
		}
		b.WriteString(styles.HeaderLink.Render(text))
		p.mouseHandler.HitMap.AddRect(regionLink, x, 0, w, 1, l)
		x += w
	}

	avail := p.width - x - 2
	if crumbLine, regions := p.layoutCrumbs(avail); crumbLine != "" {
		start := p.width - ansi.StringWidth(crumbLine)
		b.WriteString(styles.Header.Render(strings.Repeat(" ", start-x)))
		b.WriteString(crumbLine)
		for _, r := range regions {
			p.mouseHandler.HitMap.AddRect(regionCrumb, start+r.x, 0, r.w, 1, r.path)
		}
		x = p.width
	}
	if x < p.width {
		b.WriteString(styles.Header.Render(strings.Repeat(" ", p.width-x)))
	}
	return b.String()
}

type crumbRegion struct {
	x, w int
	path string
}

// layoutCrumbs renders the breadcrumb into at most avail cells. Leading
// parts are dropped behind an ellipsis when it does not fit.
func (p *Plugin) layoutCrumbs(avail int) (string, []crumbRegion) {
	parts := crumbs(p.sess.Sep, p.crumbPath)
	if len(parts) == 0 || avail < 4 {
		return "", nil
	}
	const sep = " › "
	sepW := runewidth.StringWidth(sep)

	width := func(ps []crumb) int {
		w := 0
		for i, c := range ps {
			if i > 0 {
				w += sepW
			}
			w += runewidth.StringWidth(c.label)
		}
		return w
	}

	first := 0
	prefix := ""
	for first < len(parts)-1 && width(parts[first:])+runewidth.StringWidth(prefix) > avail {
		first++
		prefix = "…" + sep
	}
	shown := parts[first:]
	if last := &shown[len(shown)-1]; width(shown)+runewidth.StringWidth(prefix) > avail {
		last.label = runewidth.Truncate(last.label, max(avail-runewidth.StringWidth(prefix), 1), "…")
	}

	var b strings.Builder
	var regions []crumbRegion
	x := 0
	if prefix != "" {
		b.WriteString(styles.CrumbSeparator.Render(prefix))
		x += runewidth.StringWidth(prefix)
	}
	for i, c := range shown {
		if i > 0 {
			b.WriteString(styles.CrumbSeparator.Render(sep))
			x += sepW
		}
		w := runewidth.StringWidth(c.label)
		b.WriteString(styles.Crumb.Render(c.label))
		regions = append(regions, crumbRegion{x: x, w: w, path: c.path})
		x += w
	}
	return b.String(), regions
}

// renderTreePane draws the tree with a left, top and bottom border. The
// scrollbar column closes the box on the right.
func (p *Plugin) renderTreePane(width, height int) string {
	if width < 3 {
		return blank(width, height)
	}
	inner := height - 2
	contentW := width - 2
	active := p.activePane == PaneTree

	var rows []string
	vis := p.tree.Visible()
	top := p.tree.ScrollTop()
	sel := p.tree.Selected()
	for i := top; i < len(vis) && i < top+inner; i++ {
		n := vis[i]
		rows = append(rows, p.renderTreeRow(n, n == sel, contentW))
	}
	if len(vis) == 0 {
		msg := "Loading…"
		if !p.tree.Busy() {
			msg = "No entries"
		}
		rows = append(rows, styles.Muted.Render(runewidth.Truncate(msg, contentW, "…")))
	}

	border := styles.BorderNormal
	if active {
		border = styles.BorderActive
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder(), true, false, true, true).
		BorderForeground(border).
		Width(contentW).
		Height(inner).
		MaxHeight(height).
		Render(strings.Join(rows, "\n"))

	return lipgloss.JoinHorizontal(lipgloss.Top, box, p.renderScrollbarColumn(inner, border, active))
}

// renderScrollbarColumn is the tree box's right edge: corners plus either
// the scrollbar track or a plain border.
func (p *Plugin) renderScrollbarColumn(inner int, border lipgloss.TerminalColor, active bool) string {
	edge := lipgloss.NewStyle().Foreground(border)
	var track string
	if p.split.State().ScrollbarVisible {
		track = p.split.Scrollbar().Render(active)
	} else {
		track = strings.TrimSuffix(strings.Repeat(edge.Render("│")+"\n", inner), "\n")
	}
	return edge.Render("╮") + "\n" + track + "\n" + edge.Render("╯")
}

// renderTreeRow draws one node: a guide per ancestor, the expander icon,
// then the label.
func (p *Plugin) renderTreeRow(n *tree.Node, selected bool, width int) string {
	guides := strings.Repeat("│ ", n.Depth)
	icon := "  "
	if n.IsDir() {
		icon = "▸ "
		if n.Expanded() {
			icon = "▾ "
		}
	}

	labelW := max(width-runewidth.StringWidth(guides)-runewidth.StringWidth(icon), 1)
	label := runewidth.Truncate(ansi.Strip(n.Label), labelW, "…")

	if selected {
		line := runewidth.FillRight(guides+icon+label, width)
		return styles.TreeSelected.Render(runewidth.Truncate(line, width, ""))
	}

	labelStyle := styles.TreeRow
	if n.IsDir() {
		labelStyle = styles.TreeDir
	}
	line := styles.TreeGuide.Render(guides) + styles.TreeIcon.Render(icon) + labelStyle.Render(label)
	return ansi.Truncate(line, width, "")
}

// renderHandle draws the split handle, highlighted while dragging.
func (p *Plugin) renderHandle(height int) string {
	style := styles.DragHandle
	if p.split.Dragging() {
		style = styles.DragHandleLive
	}
	return strings.TrimSuffix(strings.Repeat(style.Render("┃")+"\n", height), "\n")
}

// renderPreviewPane draws a title line over the mounted strategy.
func (p *Plugin) renderPreviewPane(width, height int) string {
	if width < 5 {
		return blank(width, height)
	}
	contentW := width - 4
	c := p.preview.Current()

	title := styles.Title.Render(runewidth.Truncate(previewTitle(p.sess.Sep, c), contentW, "…"))
	if info := previewInfo(c); info != "" {
		rest := contentW - ansi.StringWidth(title) - 2
		if rest > 3 {
			title += "  " + styles.Muted.Render(runewidth.Truncate(info, rest, "…"))
		}
	}
	body := title + "\n" + p.preview.View()
	return styles.RenderPanel(body, width, height, p.activePane == PanePreview)
}

func previewTitle(sep string, c preview.Content) string {
	if c.Path == "" {
		return "Preview"
	}
	_, name := pathutil.SplitSep(sep, c.Path)
	if name == "" {
		return c.Path
	}
	return name
}

// previewInfo summarizes the mounted content: mime and size for files, the
// entry count for directories.
func previewInfo(c preview.Content) string {
	switch c.Type {
	case preview.TypeList:
		if c.Loading {
			return ""
		}
		n := humanize.Comma(int64(len(c.Entries))) + " entries"
		if c.Truncated {
			n += " (truncated)"
		}
		return n
	case preview.TypeNone:
		if c.Path == "" {
			return ""
		}
	}
	var parts []string
	if c.Mime != "" {
		parts = append(parts, c.Mime)
	}
	if c.Size > 0 {
		parts = append(parts, humanize.IBytes(uint64(c.Size)))
	}
	if c.Encoding != "" {
		parts = append(parts, c.Encoding)
	}
	return strings.Join(parts, " · ")
}

// registerPaneRegions adds the pane hit regions. Regions are tested in
// reverse order, so the handle, scrollbar and rows go last.
func (p *Plugin) registerPaneRegions(st layout.State, paneH int) {
	hm := p.mouseHandler.HitMap
	top := headerHeight

	if st.Left > 0 {
		hm.AddRect(regionTreePane, 0, top, st.Left, paneH, nil)
	}
	if st.RightWidth > 0 {
		hm.AddRect(regionPreviewPane, st.RightOffset, top, st.RightWidth, paneH, nil)
	}

	if st.Left >= 3 {
		rowY := top + 1
		vis := p.tree.Visible()
		first := p.tree.ScrollTop()
		for i := first; i < len(vis) && i < first+paneH-2; i++ {
			p.registerRow(vis[i], rowY+i-first, st.Left-2)
		}
		if st.ScrollbarVisible {
			hm.AddRect(regionScrollbar, st.ScrollbarOffset, rowY, st.ScrollbarWidth, paneH-2, nil)
		}
	}

	hm.AddRect(regionHandle, st.HandlePos, top, 1, paneH, nil)
}

// registerRow maps the gutter, icon and label cells of a tree row. Content
// starts one cell in, after the left border.
func (p *Plugin) registerRow(n *tree.Node, y, width int) {
	hm := p.mouseHandler.HitMap
	x := 1
	for d := 0; d < n.Depth && x < width+1; d++ {
		hm.AddRect(regionTreeGutter, x, y, 2, 1, gutterHit{Path: n.Path(), Depth: d})
		x += 2
	}
	if x >= width+1 {
		return
	}
	hm.AddRect(regionTreeIcon, x, y, 2, 1, n.Path())
	x += 2
	if w := width + 1 - x; w > 0 {
		hm.AddRect(regionTreeLabel, x, y, w, 1, n.Path())
	}
}

func blank(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	line := strings.Repeat(" ", width)
	return strings.TrimSuffix(strings.Repeat(line+"\n", height), "\n")
}
