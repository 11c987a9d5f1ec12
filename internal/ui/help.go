package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/marcus/reviewer/internal/styles"
)

// HelpRow is one key and what it does.
type HelpRow struct {
	Keys string
	Desc string
}

// HelpSection groups rows under a heading.
type HelpSection struct {
	Title string
	Rows  []HelpRow
}

// RenderHelp formats sections as a two-column key table inside a box.
func RenderHelp(sections []HelpSection, width int) string {
	keyW := 0
	for _, s := range sections {
		for _, r := range s.Rows {
			keyW = max(keyW, runewidth.StringWidth(r.Keys))
		}
	}

	var b strings.Builder
	for i, s := range sections {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(styles.Subtitle.Render(s.Title))
		for _, r := range s.Rows {
			fmt.Fprintf(&b, "\n%s  %s",
				styles.KeyHint.Render(runewidth.FillRight(r.Keys, keyW)),
				styles.Body.Render(r.Desc))
		}
	}
	b.WriteString("\n\n" + styles.Muted.Render("esc or ? to close"))
	return Box("Keys", b.String(), width)
}
