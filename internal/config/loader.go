package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDir  = ".config/reviewer"
	configFile = "config.json"
)

// configPathOverride redirects ConfigPath in tests.
var configPathOverride string

// rawConfig is the JSON-unmarshaling intermediary. Pointers distinguish an
// absent key from an explicit zero.
type rawConfig struct {
	Tree    rawTreeConfig    `json:"tree"`
	Layout  rawLayoutConfig  `json:"layout"`
	Preview rawPreviewConfig `json:"preview"`
	Keymap  KeymapConfig     `json:"keymap"`
	UI      rawUIConfig      `json:"ui"`
	State   StateConfig      `json:"state"`
}

type rawTreeConfig struct {
	PageSize       *int  `json:"pageSize"`
	FullPagination *bool `json:"fullPagination"`
	ShowHidden     *bool `json:"showHidden"`
}

type rawLayoutConfig struct {
	DefaultLeft    *int   `json:"defaultLeft"`
	ResizeDebounce string `json:"resizeDebounce"`
}

type rawPreviewConfig struct {
	TextLimit   *int64   `json:"textLimit"`
	MediaPlayer string   `json:"mediaPlayer"`
	Autoplay    *bool    `json:"autoplay"`
	Volume      *float64 `json:"volume"`
	SyntaxTheme string   `json:"syntaxTheme"`
	Opener      string   `json:"opener"`
}

type rawUIConfig struct {
	ShowFooter *bool       `json:"showFooter"`
	ShowHeader *bool       `json:"showHeader"`
	Theme      ThemeConfig `json:"theme"`
}

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/reviewer/config.json
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = ConfigPath()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.State.Path = ExpandPath(cfg.State.Path)
			return cfg, nil
		}
		return nil, err
	}

	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	mergeConfig(cfg, &raw)
	cfg.State.Path = ExpandPath(cfg.State.Path)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeConfig merges raw config values into the config.
func mergeConfig(cfg *Config, raw *rawConfig) {
	// Tree
	if raw.Tree.PageSize != nil {
		cfg.Tree.PageSize = *raw.Tree.PageSize
	}
	if raw.Tree.FullPagination != nil {
		cfg.Tree.FullPagination = *raw.Tree.FullPagination
	}
	if raw.Tree.ShowHidden != nil {
		cfg.Tree.ShowHidden = *raw.Tree.ShowHidden
	}

	// Layout
	if raw.Layout.DefaultLeft != nil {
		cfg.Layout.DefaultLeft = *raw.Layout.DefaultLeft
	}
	if raw.Layout.ResizeDebounce != "" {
		if d, err := time.ParseDuration(raw.Layout.ResizeDebounce); err == nil {
			cfg.Layout.ResizeDebounce = d
		}
	}

	// Preview
	if raw.Preview.TextLimit != nil {
		cfg.Preview.TextLimit = *raw.Preview.TextLimit
	}
	if raw.Preview.MediaPlayer != "" {
		cfg.Preview.MediaPlayer = raw.Preview.MediaPlayer
	}
	if raw.Preview.Autoplay != nil {
		cfg.Preview.Autoplay = *raw.Preview.Autoplay
	}
	if raw.Preview.Volume != nil {
		cfg.Preview.Volume = *raw.Preview.Volume
	}
	if raw.Preview.SyntaxTheme != "" {
		cfg.Preview.SyntaxTheme = raw.Preview.SyntaxTheme
	}
	if raw.Preview.Opener != "" {
		cfg.Preview.Opener = raw.Preview.Opener
	}

	// Keymap
	for k, v := range raw.Keymap.Overrides {
		cfg.Keymap.Overrides[k] = v
	}

	// UI
	if raw.UI.ShowFooter != nil {
		cfg.UI.ShowFooter = *raw.UI.ShowFooter
	}
	if raw.UI.ShowHeader != nil {
		cfg.UI.ShowHeader = *raw.UI.ShowHeader
	}
	if raw.UI.Theme.Name != "" {
		cfg.UI.Theme.Name = raw.UI.Theme.Name
	}
	for k, v := range raw.UI.Theme.Overrides {
		cfg.UI.Theme.Overrides[k] = v
	}

	// State
	if raw.State.Path != "" {
		cfg.State.Path = raw.State.Path
	}
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}

// SetTestConfigPath points ConfigPath at path.
func SetTestConfigPath(path string) { configPathOverride = path }

// ResetTestConfigPath restores the default ConfigPath.
func ResetTestConfigPath() { configPathOverride = "" }
