package styles

import (
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var themeMu sync.RWMutex

var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds the colors a theme can set.
type ColorPalette struct {
	Primary       string `json:"primary"`
	Secondary     string `json:"secondary"`
	Accent        string `json:"accent"`
	Success       string `json:"success"`
	Warning       string `json:"warning"`
	Error         string `json:"error"`
	Info          string `json:"info"`
	TextPrimary   string `json:"textPrimary"`
	TextSecondary string `json:"textSecondary"`
	TextMuted     string `json:"textMuted"`
	TextSubtle    string `json:"textSubtle"`
	BgPrimary     string `json:"bgPrimary"`
	BgSecondary   string `json:"bgSecondary"`
	BgTertiary    string `json:"bgTertiary"`
	BorderNormal  string `json:"borderNormal"`
	BorderActive  string `json:"borderActive"`
	Link          string `json:"link"`
	Dir           string `json:"dir"`

	SyntaxTheme   string `json:"syntaxTheme"`
	MarkdownTheme string `json:"markdownTheme"`
}

// Theme is a named palette.
type Theme struct {
	Name        string
	DisplayName string
	Colors      ColorPalette
}

// DefaultTheme is the dark palette the package starts with.
var DefaultTheme = Theme{
	Name:        "default",
	DisplayName: "Default Dark",
	Colors: ColorPalette{
		Primary:       "#7C3AED",
		Secondary:     "#3B82F6",
		Accent:        "#F59E0B",
		Success:       "#10B981",
		Warning:       "#F59E0B",
		Error:         "#EF4444",
		Info:          "#3B82F6",
		TextPrimary:   "#F9FAFB",
		TextSecondary: "#9CA3AF",
		TextMuted:     "#6B7280",
		TextSubtle:    "#4B5563",
		BgPrimary:     "#111827",
		BgSecondary:   "#1F2937",
		BgTertiary:    "#374151",
		BorderNormal:  "#374151",
		BorderActive:  "#7C3AED",
		Link:          "#60A5FA",
		Dir:           "#60A5FA",
		SyntaxTheme:   "monokai",
		MarkdownTheme: "dark",
	},
}

// LightTheme suits light terminal backgrounds.
var LightTheme = Theme{
	Name:        "light",
	DisplayName: "Light",
	Colors: ColorPalette{
		Primary:       "#6D28D9",
		Secondary:     "#2563EB",
		Accent:        "#D97706",
		Success:       "#059669",
		Warning:       "#D97706",
		Error:         "#DC2626",
		Info:          "#2563EB",
		TextPrimary:   "#111827",
		TextSecondary: "#374151",
		TextMuted:     "#6B7280",
		TextSubtle:    "#9CA3AF",
		BgPrimary:     "#FFFFFF",
		BgSecondary:   "#F3F4F6",
		BgTertiary:    "#E5E7EB",
		BorderNormal:  "#D1D5DB",
		BorderActive:  "#6D28D9",
		Link:          "#1D4ED8",
		Dir:           "#1D4ED8",
		SyntaxTheme:   "github",
		MarkdownTheme: "light",
	},
}

var (
	themeRegistry = map[string]Theme{
		DefaultTheme.Name: DefaultTheme,
		LightTheme.Name:   LightTheme,
	}
	currentTheme = DefaultTheme.Name
)

// IsValidHexColor reports whether hex is #RRGGBB or #RRGGBBAA.
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme reports whether name is registered.
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns the named theme, or the default when unknown.
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if t, ok := themeRegistry[name]; ok {
		return t
	}
	return DefaultTheme
}

// GetCurrentThemeName returns the applied theme's name.
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns registered theme names, sorted.
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTheme switches to the named theme. Unknown names fall back to the
// default.
func ApplyTheme(name string) {
	ApplyThemeWithOverrides(name, nil)
}

// ApplyThemeWithOverrides applies a theme and then replaces individual
// colors. Keys are the palette's JSON names; invalid hex values are skipped.
func ApplyThemeWithOverrides(name string, overrides map[string]string) {
	theme := GetTheme(name)
	palette := theme.Colors
	for key, value := range overrides {
		applySingleOverride(&palette, key, value)
	}

	themeMu.Lock()
	currentTheme = theme.Name
	themeMu.Unlock()

	applyPalette(palette)
}

func applySingleOverride(p *ColorPalette, key, value string) {
	switch key {
	case "syntaxTheme":
		p.SyntaxTheme = value
		return
	case "markdownTheme":
		p.MarkdownTheme = value
		return
	}
	if !IsValidHexColor(value) {
		return
	}
	targets := map[string]*string{
		"primary":       &p.Primary,
		"secondary":     &p.Secondary,
		"accent":        &p.Accent,
		"success":       &p.Success,
		"warning":       &p.Warning,
		"error":         &p.Error,
		"info":          &p.Info,
		"textPrimary":   &p.TextPrimary,
		"textSecondary": &p.TextSecondary,
		"textMuted":     &p.TextMuted,
		"textSubtle":    &p.TextSubtle,
		"bgPrimary":     &p.BgPrimary,
		"bgSecondary":   &p.BgSecondary,
		"bgTertiary":    &p.BgTertiary,
		"borderNormal":  &p.BorderNormal,
		"borderActive":  &p.BorderActive,
		"link":          &p.Link,
		"dir":           &p.Dir,
	}
	if dst, ok := targets[key]; ok {
		*dst = strings.ToUpper(value)
	}
}

func applyPalette(p ColorPalette) {
	Primary = lipgloss.Color(p.Primary)
	Secondary = lipgloss.Color(p.Secondary)
	Accent = lipgloss.Color(p.Accent)
	Success = lipgloss.Color(p.Success)
	Warning = lipgloss.Color(p.Warning)
	Error = lipgloss.Color(p.Error)
	Info = lipgloss.Color(p.Info)
	TextPrimary = lipgloss.Color(p.TextPrimary)
	TextSecondary = lipgloss.Color(p.TextSecondary)
	TextMuted = lipgloss.Color(p.TextMuted)
	TextSubtle = lipgloss.Color(p.TextSubtle)
	BgPrimary = lipgloss.Color(p.BgPrimary)
	BgSecondary = lipgloss.Color(p.BgSecondary)
	BgTertiary = lipgloss.Color(p.BgTertiary)
	BorderNormal = lipgloss.Color(p.BorderNormal)
	BorderActive = lipgloss.Color(p.BorderActive)
	LinkColor = lipgloss.Color(p.Link)
	DirColor = lipgloss.Color(p.Dir)
	if p.SyntaxTheme != "" {
		CurrentSyntaxTheme = p.SyntaxTheme
	}
	if p.MarkdownTheme != "" {
		CurrentMarkdownTheme = p.MarkdownTheme
	}
	rebuildStyles()
}
