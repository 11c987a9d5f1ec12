// Package fsservice implements the folder, text, home directory and disk
// services on the local filesystem. Reads are single-directory and never
// recursive.
package fsservice

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/marcus/reviewer/internal/folder"
	"github.com/marcus/reviewer/internal/pathutil"
)

// DefaultTake is used when a read does not specify a page size.
const DefaultTake = 500

// Local is the filesystem-backed service.
type Local struct {
	logger     *slog.Logger
	cache      *cache
	hideHidden bool
}

// New creates a local service. Call Close to stop the cache watcher.
func New(logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{
		logger: logger,
		cache:  newCache(logger),
	}
}

// SetShowHidden controls whether dot-files are listed. Listings are
// cached after filtering, so call this before the first read.
func (l *Local) SetShowHidden(show bool) {
	l.hideHidden = !show
}

// Close releases the cache watcher.
func (l *Local) Close() error {
	return l.cache.close()
}

// ReadFolder lists one page of the directory at opts.Path.
func (l *Local) ReadFolder(ctx context.Context, opts folder.Options) (*folder.Page, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(opts.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", opts.Path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("read folder %s: %w", abs, folder.ErrNotDirectory)
	}

	order := opts.Order
	if len(order) == 0 {
		order = folder.DefaultOrder
	}

	entries, ok := l.cache.get(opts.Cache, abs, info.ModTime().UnixNano(), opts.Meta, order)
	if !ok {
		entries, err = l.list(abs, opts.Meta)
		if err != nil {
			return nil, err
		}
		Sort(entries, order)
		l.cache.put(opts.Cache, abs, info.ModTime().UnixNano(), opts.Meta, order, entries)
	}

	take := opts.Take
	if take <= 0 {
		take = DefaultTake
	}
	skip := min(max(opts.Skip, 0), len(entries))
	end := min(skip+take, len(entries))
	page := make([]folder.Entry, end-skip)
	copy(page, entries[skip:end])

	base, name := pathutil.Split(abs)
	self := folder.Entry{Name: name, Dir: true, Children: page}
	if opts.Meta.Has(folder.MetaModTime) {
		mt := info.ModTime().Unix()
		self.ModTime = &mt
	}
	if opts.Meta.Has(folder.MetaCount) {
		self.Count = len(entries)
	}
	if opts.Meta.Has(folder.MetaHasChildren) {
		self.HasChildren = len(entries) > 0
	}

	l.logger.Debug("read folder", "path", abs, "skip", skip, "take", len(page), "total", len(entries))

	return &folder.Page{
		Base:  base,
		Entry: self,
		Total: len(entries),
		Skip:  skip,
		Take:  len(page),
		Order: order,
	}, nil
}

func (l *Local) list(dir string, meta folder.MetaKind) ([]folder.Entry, error) {
	des, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	entries := make([]folder.Entry, 0, len(des))
	for _, de := range des {
		if l.hideHidden && strings.HasPrefix(de.Name(), ".") {
			continue
		}
		full := filepath.Join(dir, de.Name())
		info, err := de.Info()
		if err != nil {
			// Vanished between ReadDir and Info.
			continue
		}
		if info.Mode()&os.ModeSymlink != 0 {
			if target, err := os.Stat(full); err == nil {
				info = target
			}
		}
		entries = append(entries, buildEntry(full, de.Name(), info, meta))
	}
	return entries, nil
}

func buildEntry(full, name string, info os.FileInfo, meta folder.MetaKind) folder.Entry {
	e := folder.Entry{Name: name, Dir: info.IsDir()}

	if !e.Dir {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
		if meta.Has(folder.MetaExt) {
			e.Ext = ext
		}
		if meta.Has(folder.MetaMime) {
			e.Mime = MimeFor(full, ext)
		}
		if meta.Has(folder.MetaSize) {
			sz := info.Size()
			e.Size = &sz
		}
	}
	if meta.Has(folder.MetaModTime) {
		mt := info.ModTime().Unix()
		e.ModTime = &mt
	}
	if e.Dir && meta.Has(folder.MetaHasChildren) {
		e.HasChildren = hasChildren(full)
	}
	if e.Dir && meta.Has(folder.MetaCount) {
		e.Count = countChildren(full)
	}
	return e
}

func hasChildren(dir string) bool {
	f, err := os.Open(dir)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()
	names, _ := f.Readdirnames(1)
	return len(names) > 0
}

func countChildren(dir string) int {
	f, err := os.Open(dir)
	if err != nil {
		return 0
	}
	defer func() { _ = f.Close() }()
	names, _ := f.Readdirnames(-1)
	return len(names)
}
