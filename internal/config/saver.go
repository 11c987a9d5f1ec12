package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Tree    TreeConfig       `json:"tree"`
	Layout  saveLayoutConfig `json:"layout"`
	Preview PreviewConfig    `json:"preview"`
	Keymap  KeymapConfig     `json:"keymap"`
	UI      UIConfig         `json:"ui"`
	State   StateConfig      `json:"state"`
}

type saveLayoutConfig struct {
	DefaultLeft    int    `json:"defaultLeft"`
	ResizeDebounce string `json:"resizeDebounce"`
}

func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Tree: cfg.Tree,
		Layout: saveLayoutConfig{
			DefaultLeft:    cfg.Layout.DefaultLeft,
			ResizeDebounce: cfg.Layout.ResizeDebounce.String(),
		},
		Preview: cfg.Preview,
		Keymap:  cfg.Keymap,
		UI:      cfg.UI,
		State:   cfg.State,
	}
}

// Save writes cfg to ConfigPath. Top-level keys this package does not
// manage are preserved.
func Save(cfg *Config) error {
	path := ConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	merged := make(map[string]json.RawMessage)
	if existing, err := os.ReadFile(path); err == nil {
		// A corrupt file is overwritten.
		_ = json.Unmarshal(existing, &merged)
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(managed, &fields); err != nil {
		return err
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SaveTheme updates only the theme name in config and saves.
func SaveTheme(themeName string) error {
	cfg, err := Load()
	if err != nil {
		return err
	}
	cfg.UI.Theme.Name = themeName
	cfg.UI.Theme.Overrides = nil
	return Save(cfg)
}
