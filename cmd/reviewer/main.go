package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marcus/reviewer/internal/app"
	"github.com/marcus/reviewer/internal/config"
	"github.com/marcus/reviewer/internal/fsservice"
	"github.com/marcus/reviewer/internal/keymap"
	"github.com/marcus/reviewer/internal/plugin"
	"github.com/marcus/reviewer/internal/plugins/explorer"
	"github.com/marcus/reviewer/internal/preview"
	"github.com/marcus/reviewer/internal/session"
	"github.com/marcus/reviewer/internal/state"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	statePath    = flag.String("state", "", "path to the state database")
	resumeFlag   = flag.Bool("resume", false, "start in the last visited directory")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("reviewer version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	dbPath := resolveStatePath(*statePath, cfg)

	// The TUI owns stdout, so logs go next to the state database.
	logger, closeLog := setupLogger(filepath.Dir(dbPath), *debugFlag)
	defer closeLog()
	slog.SetDefault(logger)

	// State is optional: a nil store reads defaults and drops writes.
	st, err := state.Open(dbPath)
	if err != nil {
		logger.Warn("state unavailable", "path", dbPath, "err", err)
		st = nil
	} else {
		defer func() { _ = st.Close() }()
	}

	curPath := startPath(flag.Args(), *resumeFlag, st, logger)
	sess := session.New(cfg, curPath, st)

	fs := fsservice.New(logger)
	fs.SetShowHidden(cfg.Tree.ShowHidden)
	defer func() { _ = fs.Close() }()

	pluginCtx := &plugin.Context{
		WorkDir: curPath,
		Config:  cfg,
		State:   st,
		Services: plugin.Services{
			Folders: fs,
			Text:    fs,
			Home:    fs,
			Disks:   fs,
			Player:  preview.NewExecPlayer(cfg.Preview.MediaPlayer),
		},
		Logger: logger,
	}

	registry := plugin.NewRegistry(pluginCtx)
	if err := registry.Register(explorer.New(sess)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start explorer: %v\n", err)
		os.Exit(1)
	}

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}
	pluginCtx.Keymap = km

	logger.Info("starting", "version", effectiveVersion(Version), "path", curPath)

	model := app.New(registry, km, cfg, effectiveVersion(Version), curPath)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// resolveStatePath prefers the flag, then the config, then the default
// location.
func resolveStatePath(flagPath string, cfg *config.Config) string {
	switch {
	case flagPath != "":
		return config.ExpandPath(flagPath)
	case cfg.State.Path != "":
		return config.ExpandPath(cfg.State.Path)
	default:
		return state.DefaultPath()
	}
}

// startPath resolves the positional argument. With resume and no argument
// the last visited directory is used when it still exists. A path that
// cannot be resolved is logged and yields "", which starts the explorer on
// the volume list.
func startPath(args []string, resume bool, st *state.Store, logger *slog.Logger) string {
	if len(args) == 0 && resume {
		if last := st.LastPath(); last != "" {
			if info, err := os.Stat(last); err == nil && info.IsDir() {
				return last
			}
		}
	}
	p, err := session.ResolveCurPath(args)
	if err != nil {
		logger.Warn("start directory unavailable", "err", err)
		return ""
	}
	return p
}

func setupLogger(dir string, debugMode bool) (*slog.Logger, func()) {
	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	if err := os.MkdirAll(dir, 0755); err == nil {
		f, err := os.OpenFile(filepath.Join(dir, "reviewer.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			w = f
			closeFn = func() { _ = f.Close() }
		}
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	// Fall back to VCS info
	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}

	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: reviewer [options] [path]\n\n")
		fmt.Fprintf(os.Stderr, "A terminal file explorer with a live preview pane.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
