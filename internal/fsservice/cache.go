package fsservice

import (
	"log/slog"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fsnotify/fsnotify"

	"github.com/marcus/reviewer/internal/folder"
)

type cacheEntry struct {
	order   folder.OrderSpec
	entries []folder.Entry
}

// cache holds sorted listings per named cache, keyed by a hash of
// (cache name, path, mtime, meta kinds). A directory's entries are dropped
// when fsnotify reports a change inside it.
type cache struct {
	logger *slog.Logger

	mu      sync.Mutex
	entries map[uint64]*cacheEntry
	byPath  map[string][]uint64

	watcher *fsnotify.Watcher
	done    chan struct{}
}

func newCache(logger *slog.Logger) *cache {
	c := &cache{
		logger:  logger,
		entries: make(map[uint64]*cacheEntry),
		byPath:  make(map[string][]uint64),
		done:    make(chan struct{}),
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		// Cache still works; mtime in the key catches added/removed entries.
		logger.Warn("cache watcher unavailable", "err", err)
		return c
	}
	c.watcher = w
	go c.watch()
	return c
}

func cacheKey(name, path string, mtime int64, meta folder.MetaKind) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(name)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(path)
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.FormatInt(mtime, 10))
	_, _ = d.WriteString("\x00")
	_, _ = d.WriteString(strconv.Itoa(int(meta)))
	return d.Sum64()
}

// get returns a copy of the cached entries. A hit under a different order is
// re-sorted and stored back under the new order.
func (c *cache) get(name, path string, mtime int64, meta folder.MetaKind, order folder.OrderSpec) ([]folder.Entry, bool) {
	if name == "" {
		return nil, false
	}
	key := cacheKey(name, path, mtime, meta)

	c.mu.Lock()
	defer c.mu.Unlock()

	ce, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !ce.order.Equal(order) {
		Sort(ce.entries, order)
		ce.order = append(folder.OrderSpec(nil), order...)
	}
	out := make([]folder.Entry, len(ce.entries))
	copy(out, ce.entries)
	return out, true
}

func (c *cache) put(name, path string, mtime int64, meta folder.MetaKind, order folder.OrderSpec, entries []folder.Entry) {
	if name == "" {
		return
	}
	key := cacheKey(name, path, mtime, meta)
	stored := make([]folder.Entry, len(entries))
	copy(stored, entries)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.byPath[path]; !exists && c.watcher != nil {
		if err := c.watcher.Add(path); err != nil {
			c.logger.Debug("watch failed", "path", path, "err", err)
		}
	}
	c.entries[key] = &cacheEntry{order: append(folder.OrderSpec(nil), order...), entries: stored}
	c.byPath[path] = append(c.byPath[path], key)
}

// invalidate drops every cached listing of dir.
func (c *cache) invalidate(dir string) {
	c.mu.Lock()
	keys, ok := c.byPath[dir]
	for _, k := range keys {
		delete(c.entries, k)
	}
	delete(c.byPath, dir)
	c.mu.Unlock()

	if !ok {
		return
	}
	if c.watcher != nil {
		_ = c.watcher.Remove(dir)
	}
	c.logger.Debug("cache invalidated", "path", dir)
}

func (c *cache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *cache) watch() {
	for {
		select {
		case <-c.done:
			return
		case ev, ok := <-c.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			c.invalidate(filepath.Dir(ev.Name))
		case err, ok := <-c.watcher.Errors:
			if !ok {
				return
			}
			c.logger.Debug("cache watcher error", "err", err)
		}
	}
}

func (c *cache) close() error {
	select {
	case <-c.done:
		return nil
	default:
		close(c.done)
	}
	if c.watcher == nil {
		return nil
	}
	return c.watcher.Close()
}
