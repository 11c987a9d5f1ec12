package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSave_PreservesUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	initial := []byte(`{"bookmarks": ["/tmp"], "customKey": "should survive"}`)
	if err := os.WriteFile(path, initial, 0644); err != nil {
		t.Fatal(err)
	}

	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	if err := Save(Default()); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal saved config: %v", err)
	}
	for _, key := range []string{"bookmarks", "customKey", "tree", "preview"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("saved config missing %q", key)
		}
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	cfg := Default()
	cfg.Tree.PageSize = 42
	cfg.Layout.DefaultLeft = 50
	cfg.Keymap.Overrides["x"] = "reload"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if loaded.Tree.PageSize != 42 || loaded.Layout.DefaultLeft != 50 {
		t.Errorf("loaded = %+v", loaded)
	}
	if loaded.Layout.ResizeDebounce != cfg.Layout.ResizeDebounce {
		t.Errorf("debounce = %v", loaded.Layout.ResizeDebounce)
	}
	if loaded.Keymap.Overrides["x"] != "reload" {
		t.Errorf("overrides = %v", loaded.Keymap.Overrides)
	}
}

func TestSaveTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	SetTestConfigPath(path)
	defer ResetTestConfigPath()

	if err := SaveTheme("light"); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme.Name != "light" {
		t.Errorf("theme = %q", cfg.UI.Theme.Name)
	}
}
