package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/reviewer/internal/keymap"
	"github.com/marcus/reviewer/internal/plugin"
	"github.com/marcus/reviewer/internal/styles"
	"github.com/marcus/reviewer/internal/ui"
)

const (
	footerHeight = 1
	minWidth     = 40
	minHeight    = 10
)

// busyReporter is implemented by plugins that load asynchronously.
type busyReporter interface {
	Busy() bool
}

func (m Model) headerHeight() int {
	if m.showHeader {
		return 1
	}
	return 0
}

// contentHeight is the height handed to the active plugin.
func (m Model) contentHeight() int {
	h := m.height - m.headerHeight()
	if m.showFooter {
		h -= footerHeight
	}
	return max(h, 0)
}

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	// Show warning if terminal is too small
	if m.width < minWidth || m.height < minHeight {
		msg := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.ToastError.Render(msg))
	}

	var b strings.Builder
	if m.showHeader {
		b.WriteString(m.renderHeader())
		b.WriteString("\n")
	}
	b.WriteString(m.renderContent(m.width, m.contentHeight()))
	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	bg := b.String()
	if m.toast != nil {
		margin := 0
		if m.showFooter {
			margin = footerHeight
		}
		bg = ui.OverlayBottomRight(bg, m.renderToast(), m.width, m.height, margin)
	}

	m.mouseHandler.Clear()
	switch m.activeModal() {
	case ModalQuitConfirm:
		modal := m.quitDialog.Render(m.width, m.height, m.mouseHandler)
		return ui.OverlayModal(bg, modal, m.width, m.height)
	case ModalHelp:
		return m.renderHelpOverlay(bg)
	}
	return bg
}

// renderHeader renders the title bar: app name and start directory on the
// left, a loading marker and the version on the right.
func (m Model) renderHeader() string {
	title := styles.Title.Inherit(styles.Header).Render(" reviewer")
	if m.workDir != "" {
		title += styles.Header.Render(" ") + styles.Subtitle.Inherit(styles.Header).Render(m.workDir)
	}

	var right []string
	if p, ok := m.ActivePlugin().(busyReporter); ok && p.Busy() {
		right = append(right, styles.Header.Foreground(styles.Warning).Render("loading…"))
	}
	if m.currentVersion != "" {
		right = append(right, styles.Header.Foreground(styles.TextMuted).Render(m.currentVersion))
	}
	status := strings.Join(right, styles.Header.Render("  ")) + styles.Header.Render(" ")

	avail := m.width - lipgloss.Width(status) - 1
	if lipgloss.Width(title) > avail {
		title = ansi.Truncate(title, max(avail, 0), "…")
	}
	spacing := max(m.width-lipgloss.Width(title)-lipgloss.Width(status), 0)
	header := title + styles.Header.Render(strings.Repeat(" ", spacing)) + status
	return styles.Header.Width(m.width).MaxWidth(m.width).Render(header)
}

func (m Model) renderContent(width, height int) string {
	p := m.ActivePlugin()
	if p == nil {
		msg := "No plugins loaded"
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, styles.Muted.Render(msg))
	}
	if height == 0 {
		return ""
	}
	content := p.View(width, height)
	// Height() only pads short content; MaxHeight() also truncates tall content.
	return lipgloss.NewStyle().Width(width).Height(height).MaxHeight(height).Render(content)
}

func (m Model) renderToast() string {
	style := styles.ToastSuccess
	if m.toast.isError {
		style = styles.ToastError
	}
	text := ansi.Truncate(m.toast.message, max(m.width/2, 10), "…")
	return style.Render(text)
}

// renderFooter renders the bottom bar with key hints.
func (m Model) renderFooter() string {
	hints := renderHintLineTruncated(m.footerHints(), m.width-2)
	return styles.Footer.Width(m.width).MaxWidth(m.width).Render(" " + hints)
}

type footerHint struct {
	keys  string
	label string
}

func (m Model) footerHints() []footerHint {
	// Plugin-specific hints first - they're more contextually relevant
	var hints []footerHint
	if p := m.ActivePlugin(); p != nil {
		hints = m.pluginFooterHints(p, m.activeContext)
	}
	return append(hints, m.globalFooterHints()...)
}

func (m Model) globalFooterHints() []footerHint {
	keysByCmd := bindingKeysByCommand(m.keymap.BindingsForContext(keymap.ContextGlobal))

	specs := []struct {
		id    string
		label string
	}{
		{id: keymap.CmdSwitchPane, label: "pane"},
		{id: keymap.CmdHelp, label: "help"},
		{id: keymap.CmdQuit, label: "quit"},
	}

	var hints []footerHint
	for _, spec := range specs {
		keys := keysByCmd[spec.id]
		if len(keys) == 0 {
			continue
		}
		hints = append(hints, footerHint{keys: keys[0], label: spec.label})
	}
	return hints
}

func (m Model) pluginFooterHints(p plugin.Plugin, context string) []footerHint {
	if context == "" || context == keymap.ContextGlobal {
		return nil
	}

	keysByCmd := bindingKeysByCommand(m.keymap.BindingsForContext(context))

	type cmdWithPriority struct {
		cmd      plugin.Command
		keys     []string
		priority int
	}

	var cmds []cmdWithPriority
	for _, cmd := range p.Commands() {
		if cmd.Context != context {
			continue
		}
		keys := keysByCmd[cmd.ID]
		if len(keys) == 0 {
			continue
		}
		priority := cmd.Priority
		if priority == 0 {
			priority = 99
		}
		cmds = append(cmds, cmdWithPriority{cmd, keys, priority})
	}

	// Lower priority first; stable keeps declaration order within a level.
	sort.SliceStable(cmds, func(i, j int) bool {
		return cmds[i].priority < cmds[j].priority
	})

	hints := make([]footerHint, 0, len(cmds))
	for _, c := range cmds {
		hints = append(hints, footerHint{
			keys:  formatBindingKeys(c.keys),
			label: c.cmd.Name,
		})
	}
	return hints
}

func bindingKeysByCommand(bindings []keymap.Binding) map[string][]string {
	keysByCmd := make(map[string][]string, len(bindings))
	for _, b := range bindings {
		keysByCmd[b.Command] = append(keysByCmd[b.Command], b.Key)
	}
	return keysByCmd
}

// renderHintLineTruncated renders hints but stops adding when maxWidth is exceeded.
func renderHintLineTruncated(hints []footerHint, maxWidth int) string {
	if len(hints) == 0 || maxWidth <= 0 {
		return ""
	}
	var result string
	separator := "  "
	for _, hint := range hints {
		if hint.keys == "" || hint.label == "" {
			continue
		}
		part := fmt.Sprintf("%s %s", styles.KeyHint.Render(hint.keys), hint.label)
		candidate := part
		if result != "" {
			candidate = result + separator + part
		}
		if lipgloss.Width(candidate) > maxWidth {
			break
		}
		result = candidate
	}
	return result
}

// renderHelpOverlay renders the help modal over content.
func (m Model) renderHelpOverlay(content string) string {
	width := min(ui.ModalWidthLarge, max(m.width-4, 20))
	help := ui.RenderHelp(m.helpSections(), width)
	return ui.OverlayModal(content, help, m.width, m.height)
}

// helpSections lists the active context's bindings followed by the global
// ones.
func (m Model) helpSections() []ui.HelpSection {
	var sections []ui.HelpSection
	if p := m.ActivePlugin(); p != nil {
		ctx := p.FocusContext()
		if ctx != "" && ctx != keymap.ContextGlobal {
			if rows := m.bindingRows(ctx); len(rows) > 0 {
				title := p.Name()
				switch ctx {
				case keymap.ContextTree:
					title += " tree"
				case keymap.ContextPreview:
					title += " preview"
				}
				sections = append(sections, ui.HelpSection{Title: title, Rows: rows})
			}
		}
	}
	sections = append(sections, ui.HelpSection{Title: "Global", Rows: m.bindingRows(keymap.ContextGlobal)})
	return sections
}

// bindingRows groups a context's bindings by command, in binding order.
func (m Model) bindingRows(context string) []ui.HelpRow {
	bindings := m.keymap.BindingsForContext(context)
	keysByCmd := bindingKeysByCommand(bindings)

	seen := make(map[string]bool)
	var rows []ui.HelpRow
	for _, binding := range bindings {
		if seen[binding.Command] {
			continue
		}
		seen[binding.Command] = true
		rows = append(rows, ui.HelpRow{
			Keys: formatBindingKeys(keysByCmd[binding.Command]),
			Desc: formatCommandName(binding.Command),
		})
	}
	return rows
}

// formatBindingKeys formats multiple keys into a display string.
func formatBindingKeys(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	// Show up to 2 keys
	shown := make([]string, 0, 2)
	for _, k := range keys[:min(len(keys), 2)] {
		if k == " " {
			k = "space"
		}
		shown = append(shown, k)
	}
	return strings.Join(shown, ", ")
}

// formatCommandName converts a command ID to a display name.
func formatCommandName(cmd string) string {
	if name, ok := keymap.CommandNames[cmd]; ok {
		return name
	}
	return strings.ReplaceAll(cmd, "-", " ")
}
