package fsservice

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/marcus/reviewer/internal/folder"
)

// HomeDirs resolves the well-known user directories. On Linux the XDG
// user-dirs file wins over the conventional names.
func (l *Local) HomeDirs(ctx context.Context) (folder.HomeDirs, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return folder.HomeDirs{}, fmt.Errorf("home dir: %w", err)
	}

	dirs := folder.HomeDirs{
		Home:      home,
		Downloads: filepath.Join(home, "Downloads"),
		Documents: filepath.Join(home, "Documents"),
		Videos:    filepath.Join(home, "Videos"),
		Music:     filepath.Join(home, "Music"),
		Pictures:  filepath.Join(home, "Pictures"),
		Desktop:   filepath.Join(home, "Desktop"),
	}
	if runtime.GOOS == "darwin" {
		dirs.Videos = filepath.Join(home, "Movies")
	}

	if runtime.GOOS == "linux" {
		applyUserDirs(&dirs, home, filepath.Join(home, ".config", "user-dirs.dirs"))
	}
	return dirs, nil
}

// applyUserDirs reads XDG_*_DIR="$HOME/..." lines.
func applyUserDirs(dirs *folder.HomeDirs, home, file string) {
	f, err := os.Open(file)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	targets := map[string]*string{
		"XDG_DOWNLOAD_DIR":  &dirs.Downloads,
		"XDG_DOCUMENTS_DIR": &dirs.Documents,
		"XDG_VIDEOS_DIR":    &dirs.Videos,
		"XDG_MUSIC_DIR":     &dirs.Music,
		"XDG_PICTURES_DIR":  &dirs.Pictures,
		"XDG_DESKTOP_DIR":   &dirs.Desktop,
	}

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, val, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		dst, ok := targets[key]
		if !ok {
			continue
		}
		val = strings.Trim(val, `"`)
		val = strings.Replace(val, "$HOME", home, 1)
		if val != "" {
			*dst = val
		}
	}
}

// Disks lists top-level volumes. Unix has a single root.
func (l *Local) Disks(ctx context.Context) ([]string, error) {
	if runtime.GOOS != "windows" {
		return []string{"/"}, nil
	}
	var disks []string
	for c := 'A'; c <= 'Z'; c++ {
		if err := ctx.Err(); err != nil {
			return disks, err
		}
		root := string(c) + `:\`
		if _, err := os.Stat(root); err == nil {
			disks = append(disks, root)
		}
	}
	return disks, nil
}
