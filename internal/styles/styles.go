package styles

import "github.com/charmbracelet/lipgloss"

// Color palette. These are reassigned by ApplyTheme.
var (
	Primary   = lipgloss.Color("#7C3AED")
	Secondary = lipgloss.Color("#3B82F6")
	Accent    = lipgloss.Color("#F59E0B")

	Success = lipgloss.Color("#10B981")
	Warning = lipgloss.Color("#F59E0B")
	Error   = lipgloss.Color("#EF4444")
	Info    = lipgloss.Color("#3B82F6")

	TextPrimary   = lipgloss.Color("#F9FAFB")
	TextSecondary = lipgloss.Color("#9CA3AF")
	TextMuted     = lipgloss.Color("#6B7280")
	TextSubtle    = lipgloss.Color("#4B5563")

	BgPrimary   = lipgloss.Color("#111827")
	BgSecondary = lipgloss.Color("#1F2937")
	BgTertiary  = lipgloss.Color("#374151")

	BorderNormal = lipgloss.Color("#374151")
	BorderActive = lipgloss.Color("#7C3AED")

	LinkColor = lipgloss.Color("#60A5FA")
	DirColor  = lipgloss.Color("#60A5FA")

	ToastSuccessTextColor = lipgloss.Color("#000000")
	ToastErrorTextColor   = lipgloss.Color("#FFFFFF")

	// CurrentSyntaxTheme is the chroma style used by the preview pane.
	CurrentSyntaxTheme = "monokai"
	// CurrentMarkdownTheme is the glamour style used for markdown.
	CurrentMarkdownTheme = "dark"
)

// Panel styles
var (
	PanelActive   lipgloss.Style
	PanelInactive lipgloss.Style
)

// Text styles
var (
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Subtle   lipgloss.Style
	Link     lipgloss.Style
	KeyHint  lipgloss.Style
)

// Tree row styles
var (
	TreeRow      lipgloss.Style
	TreeDir      lipgloss.Style
	TreeSelected lipgloss.Style
	TreeGuide    lipgloss.Style
	TreeIcon     lipgloss.Style
)

// Header, footer and breadcrumb
var (
	Header         lipgloss.Style
	Footer         lipgloss.Style
	HeaderLink     lipgloss.Style
	Crumb          lipgloss.Style
	CrumbSeparator lipgloss.Style
	DragHandle     lipgloss.Style
	DragHandleLive lipgloss.Style
)

// Toasts and modals
var (
	ToastSuccess lipgloss.Style
	ToastError   lipgloss.Style
	ModalBox     lipgloss.Style
	ModalTitle   lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles recreates every style from the current palette.
func rebuildStyles() {
	PanelActive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(0, 1)
	PanelInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	Title = lipgloss.NewStyle().Foreground(TextPrimary).Bold(true)
	Subtitle = lipgloss.NewStyle().Foreground(TextSecondary).Italic(true)
	Body = lipgloss.NewStyle().Foreground(TextPrimary)
	Muted = lipgloss.NewStyle().Foreground(TextMuted)
	Subtle = lipgloss.NewStyle().Foreground(TextSubtle)
	Link = lipgloss.NewStyle().Foreground(LinkColor).Underline(true)
	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	TreeRow = lipgloss.NewStyle().Foreground(TextPrimary)
	TreeDir = lipgloss.NewStyle().Foreground(DirColor).Bold(true)
	TreeSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary).
		Bold(true)
	TreeGuide = lipgloss.NewStyle().Foreground(TextSubtle)
	TreeIcon = lipgloss.NewStyle().Foreground(TextMuted)

	Header = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgSecondary)
	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)
	HeaderLink = lipgloss.NewStyle().Foreground(LinkColor).Background(BgSecondary)
	Crumb = lipgloss.NewStyle().Foreground(TextSecondary).Background(BgSecondary)
	CrumbSeparator = lipgloss.NewStyle().Foreground(TextSubtle).Background(BgSecondary)
	DragHandle = lipgloss.NewStyle().Foreground(BorderNormal)
	DragHandleLive = lipgloss.NewStyle().Foreground(Primary)

	ToastSuccess = lipgloss.NewStyle().
		Foreground(ToastSuccessTextColor).
		Background(Success).
		Padding(0, 1).
		Bold(true)
	ToastError = lipgloss.NewStyle().
		Foreground(ToastErrorTextColor).
		Background(Error).
		Padding(0, 1).
		Bold(true)
	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(1, 2)
	ModalTitle = lipgloss.NewStyle().Foreground(Primary).Bold(true)
}

// RenderPanel renders content in a bordered panel of the given outer size.
func RenderPanel(content string, width, height int, active bool) string {
	style := PanelInactive
	if active {
		style = PanelActive
	}
	// Border takes one cell on every side.
	return style.
		Width(max(width-2, 0)).
		Height(max(height-2, 0)).
		MaxHeight(max(height, 0)).
		Render(content)
}
