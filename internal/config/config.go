package config

import "time"

// Config is the root configuration structure.
type Config struct {
	Tree    TreeConfig    `json:"tree"`
	Layout  LayoutConfig  `json:"layout"`
	Preview PreviewConfig `json:"preview"`
	Keymap  KeymapConfig  `json:"keymap"`
	UI      UIConfig      `json:"ui"`
	State   StateConfig   `json:"state"`
}

// TreeConfig configures directory listing.
type TreeConfig struct {
	PageSize       int  `json:"pageSize"`
	FullPagination bool `json:"fullPagination"` // fetch every page instead of stopping after the second
	ShowHidden     bool `json:"showHidden"`
}

// LayoutConfig configures the split view.
type LayoutConfig struct {
	DefaultLeft    int           `json:"defaultLeft"`
	ResizeDebounce time.Duration `json:"resizeDebounce"`
}

// PreviewConfig configures the preview pane.
type PreviewConfig struct {
	TextLimit   int64   `json:"textLimit"` // bytes; larger binaries get no preview
	MediaPlayer string  `json:"mediaPlayer"`
	Autoplay    bool    `json:"autoplay"`
	Volume      float64 `json:"volume"`
	SyntaxTheme string  `json:"syntaxTheme"`
	Opener      string  `json:"opener,omitempty"`
}

// KeymapConfig holds key binding overrides.
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	ShowFooter bool        `json:"showFooter"`
	ShowHeader bool        `json:"showHeader"`
	Theme      ThemeConfig `json:"theme"`
}

// ThemeConfig configures the color theme.
type ThemeConfig struct {
	Name      string            `json:"name"`
	Overrides map[string]string `json:"overrides,omitempty"`
}

// StateConfig locates persisted UI state.
type StateConfig struct {
	Path string `json:"path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Tree: TreeConfig{
			PageSize: 500,
		},
		Layout: LayoutConfig{
			DefaultLeft:    32,
			ResizeDebounce: 50 * time.Millisecond,
		},
		Preview: PreviewConfig{
			TextLimit:   1024 * 500,
			MediaPlayer: "ffplay",
			Autoplay:    true,
			Volume:      0.5,
			SyntaxTheme: "monokai",
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
		UI: UIConfig{
			ShowFooter: true,
			ShowHeader: true,
			Theme: ThemeConfig{
				Name:      "default",
				Overrides: make(map[string]string),
			},
		},
		State: StateConfig{
			Path: "~/.local/state/reviewer/state.db",
		},
	}
}

// Validate resets out-of-range values to their defaults.
func (c *Config) Validate() error {
	d := Default()
	if c.Tree.PageSize <= 0 {
		c.Tree.PageSize = d.Tree.PageSize
	}
	if c.Layout.DefaultLeft <= 0 {
		c.Layout.DefaultLeft = d.Layout.DefaultLeft
	}
	if c.Layout.ResizeDebounce < 0 {
		c.Layout.ResizeDebounce = d.Layout.ResizeDebounce
	}
	if c.Preview.TextLimit <= 0 {
		c.Preview.TextLimit = d.Preview.TextLimit
	}
	if c.Preview.Volume < 0 || c.Preview.Volume > 1 {
		c.Preview.Volume = d.Preview.Volume
	}
	if c.Preview.MediaPlayer == "" {
		c.Preview.MediaPlayer = d.Preview.MediaPlayer
	}
	return nil
}
