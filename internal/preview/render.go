package preview

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	chromastyles "github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
	"github.com/microcosm-cc/bluemonday"
	segjson "github.com/segmentio/encoding/json"
)

// DefaultSyntaxTheme is the chroma style used when none is configured.
const DefaultSyntaxTheme = "monokai"

// highlight colors text for the terminal, choosing a lexer from the file
// name first and the content second.
func highlight(path, text, theme string) string {
	lexer := lexers.Match(path)
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		return text
	}
	return tokenise(lexer, text, theme)
}

func highlightAs(language, text, theme string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		return text
	}
	return tokenise(lexer, text, theme)
}

func tokenise(lexer chroma.Lexer, text, theme string) string {
	lexer = chroma.Coalesce(lexer)
	style := chromastyles.Get(theme)
	if style == nil {
		style = chromastyles.Fallback
	}
	formatter := formatters.Get("terminal16m")
	if formatter == nil {
		formatter = formatters.Fallback
	}
	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		return text
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, it); err != nil {
		return text
	}
	return buf.String()
}

// renderMarkdown renders markdown for the given width.
func renderMarkdown(text string, width int) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(max(24, width-3)),
		glamour.WithTableWrap(true),
		glamour.WithPreservedNewLines(),
	)
	if err != nil {
		return "", fmt.Errorf("markdown renderer: %w", err)
	}
	return r.Render(text)
}

// prettyJSON indents a JSON document. Invalid input is returned unchanged.
func prettyJSON(text string) string {
	var buf bytes.Buffer
	if err := segjson.Indent(&buf, []byte(text), "", "  "); err != nil {
		return text
	}
	return buf.String()
}

var (
	blockTag   = regexp.MustCompile(`(?i)</?(p|div|br|li|ul|ol|h[1-6]|tr|table|section|article|header|footer|pre|blockquote)[^>]*>`)
	blankLines = regexp.MustCompile(`\n{3,}`)
	htmlPolicy = bluemonday.StrictPolicy()
)

// isolateHTML reduces a document to its text. Style and script bodies are
// dropped and escape sequences removed, so nothing in the file can restyle
// the host terminal.
func isolateHTML(doc string) string {
	s := blockTag.ReplaceAllString(doc, "\n")
	s = htmlPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = ansi.Strip(s)

	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSpace(l)
	}
	s = strings.Join(lines, "\n")
	s = blankLines.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// FormatSize renders bytes as whole kilobytes rounded up: "1,234KB".
func FormatSize(bytes int64) string {
	if bytes <= 0 {
		return "0KB"
	}
	kb := int64(math.Ceil(float64(bytes) / 1024))
	return humanize.Comma(kb) + "KB"
}

// FormatDate renders a unix timestamp for the content list.
func FormatDate(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return time.Unix(unix, 0).Format("2006-01-02 15:04")
}

// FormatAge renders a unix timestamp relative to now ("3 days ago").
func FormatAge(unix int64) string {
	if unix <= 0 {
		return ""
	}
	return humanize.Time(time.Unix(unix, 0))
}
