package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/marcus/reviewer/internal/styles"
)

// Scrollbar is a synthetic scrollbar whose track height equals the source
// pane's viewport and whose inner height equals the source content.
type Scrollbar struct {
	top    int
	height int
	inner  int
}

// ScrollTop is the scrollbar's position in content rows.
func (b *Scrollbar) ScrollTop() int { return b.top }

// SetScrollTop moves the scrollbar, clamped to its content.
func (b *Scrollbar) SetScrollTop(v int) { b.setTop(v) }

// ClientHeight is the track height.
func (b *Scrollbar) ClientHeight() int { return b.height }

// ScrollHeight is the mirrored content height.
func (b *Scrollbar) ScrollHeight() int { return b.inner }

func (b *Scrollbar) resize(height, inner int) {
	b.height = max(height, 0)
	b.inner = max(inner, 0)
	b.setTop(b.top)
}

func (b *Scrollbar) setTop(v int) {
	b.top = min(max(v, 0), max(b.inner-b.height, 0))
}

// Thumb returns the thumb's first row and length on the track.
func (b *Scrollbar) Thumb() (pos, size int) {
	if b.height < 1 || b.inner < 1 {
		return 0, 0
	}
	size = min(max(b.height*b.height/b.inner, 1), b.height)
	maxOffset := max(b.inner-b.height, 1)
	pos = b.top * (b.height - size) / maxOffset
	pos = min(max(pos, 0), b.height-size)
	return pos, size
}

// Render draws the track, one cell wide and ClientHeight rows tall.
func (b *Scrollbar) Render(active bool) string {
	if b.height < 1 {
		return ""
	}
	pos, size := b.Thumb()

	trackStyle := lipgloss.NewStyle().Foreground(styles.TextSubtle)
	thumbStyle := lipgloss.NewStyle().Foreground(styles.TextMuted)
	if active {
		thumbStyle = thumbStyle.Foreground(styles.Primary)
	}
	track := trackStyle.Render("│")
	thumb := thumbStyle.Render("┃")

	lines := make([]string, b.height)
	for i := range b.height {
		if i >= pos && i < pos+size {
			lines[i] = thumb
		} else {
			lines[i] = track
		}
	}
	return strings.Join(lines, "\n")
}
