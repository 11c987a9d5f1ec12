// Package ui holds the explorer's shared overlay widgets.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/marcus/reviewer/internal/styles"
)

// DimStyle greys out the content behind a modal. Existing color codes are
// stripped first since SGR 2 does not combine reliably with them.
var DimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}

func dimLine(s string) string {
	return DimStyle.Render(ansi.Strip(s))
}

// compositeRow places fg over bg at column x. The background either side is
// dimmed when dim is set and kept as-is otherwise.
func compositeRow(bg, fg string, x, fgWidth, totalWidth int, dim bool) string {
	var b strings.Builder

	render := func(s string) string {
		if dim {
			return DimStyle.Render(s)
		}
		return s
	}

	source := bg
	if dim {
		source = ansi.Strip(bg)
	}
	bgWidth := ansi.StringWidth(source)

	if x > 0 {
		left := ansi.Truncate(source, x, "")
		b.WriteString(render(left))
		if lw := ansi.StringWidth(left); lw < x {
			b.WriteString(strings.Repeat(" ", x-lw))
		}
	}

	b.WriteString(fg)

	if right := x + fgWidth; right < totalWidth && bgWidth > right {
		b.WriteString(render(ansi.Cut(source, right, bgWidth)))
	}
	return b.String()
}

// OverlayModal centers modal over a dimmed background.
func OverlayModal(background, modal string, width, height int) string {
	modalLines := strings.Split(modal, "\n")
	mw := maxLineWidth(modalLines)
	x := max((width-mw)/2, 0)
	y := max((height-len(modalLines))/2, 0)
	return overlay(background, modalLines, x, y, mw, width, height, true)
}

// OverlayBottomRight draws box in the lower right corner, above the last
// `margin` rows, leaving the background undimmed.
func OverlayBottomRight(background, box string, width, height, margin int) string {
	boxLines := strings.Split(box, "\n")
	bw := maxLineWidth(boxLines)
	x := max(width-bw-1, 0)
	y := max(height-len(boxLines)-margin, 0)
	return overlay(background, boxLines, x, y, bw, width, height, false)
}

func overlay(background string, fg []string, x, y, fgWidth, width, height int, dim bool) string {
	bgLines := strings.Split(background, "\n")
	for len(bgLines) < height {
		bgLines = append(bgLines, "")
	}

	out := make([]string, 0, height)
	for row := range height {
		bg := bgLines[row]
		if i := row - y; i >= 0 && i < len(fg) {
			out = append(out, compositeRow(bg, fg[i], x, fgWidth, width, dim))
			continue
		}
		if dim {
			out = append(out, dimLine(bg))
		} else {
			out = append(out, bg)
		}
	}
	return strings.Join(out, "\n")
}

// Box renders a titled modal frame.
func Box(title, body string, width int) string {
	content := body
	if title != "" {
		content = styles.ModalTitle.Render(title) + "\n\n" + body
	}
	return styles.ModalBox.Width(width).Render(content)
}
