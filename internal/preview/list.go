package preview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/marcus/reviewer/internal/folder"
)

const (
	sizeColWidth = 12
	extColWidth  = 6
	dateColWidth = 16
)

// renderList lays out a directory as name, size, ext and date columns.
func renderList(c Content, width int) string {
	if c.Err != nil && len(c.Entries) == 0 {
		return c.Err.Error()
	}
	if len(c.Entries) == 0 {
		return "(empty)"
	}

	nameW := max(width-sizeColWidth-extColWidth-dateColWidth-3, 10)

	var b strings.Builder
	for i, e := range c.Entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(listRow(e, nameW))
	}
	if c.Truncated {
		fmt.Fprintf(&b, "\n… listing truncated after %d entries", len(c.Entries))
	}
	if c.Err != nil {
		fmt.Fprintf(&b, "\n%s", c.Err.Error())
	}
	return b.String()
}

func listRow(e folder.Entry, nameW int) string {
	icon := "  "
	size := ""
	if e.Dir {
		icon = "▸ "
		if e.Count > 0 {
			size = fmt.Sprintf("%d items", e.Count)
		}
	} else if e.Size != nil {
		size = FormatSize(*e.Size)
	}

	var mt int64
	if e.ModTime != nil {
		mt = *e.ModTime
	}

	name := icon + ansi.Strip(e.Name)
	name = runewidth.Truncate(name, nameW, "…")
	name = runewidth.FillRight(name, nameW)

	return fmt.Sprintf("%s %*s %-*s %s",
		name,
		sizeColWidth, size,
		extColWidth, runewidth.Truncate(e.Ext, extColWidth, "…"),
		FormatDate(mt),
	)
}
