// Package session holds the values fixed for one run of the explorer: the
// starting directory and the request shapes used for the tree and the
// content list.
package session

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcus/reviewer/internal/config"
	"github.com/marcus/reviewer/internal/folder"
	"github.com/marcus/reviewer/internal/pathutil"
	"github.com/marcus/reviewer/internal/state"
	"github.com/marcus/reviewer/internal/tree"
)

// Session is built once in main and passed down.
type Session struct {
	CurPath string
	Sep     string

	TreeCache    string
	TreeOrder    folder.OrderSpec
	TreeMeta     folder.MetaKind
	ContentCache string
	ContentOrder folder.OrderSpec
	ContentMeta  folder.MetaKind

	PageSize       int
	FullPagination bool
}

// New builds a session for curPath. The tree order comes from persisted
// state when present.
func New(cfg *config.Config, curPath string, st *state.Store) *Session {
	s := &Session{
		CurPath:      curPath,
		Sep:          pathutil.Sep,
		TreeCache:    folder.TreeCache,
		TreeOrder:    st.TreeOrder(),
		TreeMeta:     folder.TreeMeta,
		ContentCache: folder.ContentCache,
		ContentOrder: folder.DefaultOrder,
		ContentMeta:  folder.ContentMeta,
		PageSize:     tree.DefaultPageSize,
	}
	if cfg != nil {
		s.PageSize = cfg.Tree.PageSize
		s.FullPagination = cfg.Tree.FullPagination
	}
	return s
}

// TreeConfig is the tree controller's request shape.
func (s *Session) TreeConfig() tree.Config {
	return tree.Config{
		PageSize:       s.PageSize,
		FullPagination: s.FullPagination,
		Sep:            s.Sep,
		Cache:          s.TreeCache,
		Order:          s.TreeOrder,
		Meta:           s.TreeMeta,
	}
}

// ResolveCurPath picks the starting directory from the positional
// arguments: the first argument or ".", made absolute, and replaced by its
// containing directory when it names a file.
func ResolveCurPath(args []string) (string, error) {
	p := "."
	if len(args) > 0 && args[0] != "" {
		p = args[0]
	}
	abs, err := filepath.Abs(config.ExpandPath(p))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", p, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	return abs, nil
}
