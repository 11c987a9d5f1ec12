// Package state persists small UI preferences between runs in a SQLite
// key/value table.
package state

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/segmentio/encoding/json"
	_ "modernc.org/sqlite"

	"github.com/marcus/reviewer/internal/folder"
)

// Keys used by the explorer.
const (
	KeySplitWidth = "layout.splitWidth"
	KeyTreeOrder  = "tree.order"
	KeyLastPath   = "session.lastPath"
)

// Value kinds stored alongside each payload.
const (
	kindString = "s"
	kindInt    = "i"
	kindFloat  = "f"
	kindBool   = "b"
	kindJSON   = "j"
)

// ErrKindMismatch is returned when a stored value cannot be decoded into
// the requested type.
var ErrKindMismatch = errors.New("stored value has a different kind")

// Store is a key/value table. Scalars are stored as text and anything else
// as a JSON payload.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// DefaultPath returns the state database location under the user's state
// directory.
func DefaultPath() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "reviewer", "state.db")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "state.db"
	}
	return filepath.Join(home, ".local", "state", "reviewer", "state.db")
}

// Open opens or creates the store at path. ":memory:" keeps state in memory.
func Open(path string) (*Store, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("create state dir: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection so ":memory:" databases are shared.
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return s, nil
}

func (s *Store) initSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    kind TEXT NOT NULL,
    value TEXT NOT NULL
);`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func encode(v any) (kind, text string, err error) {
	switch x := v.(type) {
	case string:
		return kindString, x, nil
	case int:
		return kindInt, strconv.Itoa(x), nil
	case int64:
		return kindInt, strconv.FormatInt(x, 10), nil
	case float64:
		return kindFloat, strconv.FormatFloat(x, 'g', -1, 64), nil
	case bool:
		return kindBool, strconv.FormatBool(x), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "", "", err
	}
	return kindJSON, string(b), nil
}

// Set stores v under key, replacing any previous value.
func (s *Store) Set(key string, v any) error {
	kind, text, err := encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err = s.db.Exec(`
		INSERT INTO kv (key, kind, value) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET kind = excluded.kind, value = excluded.value
	`, key, kind, text)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Get decodes the value under key into dst, which must be a pointer. It
// reports false when the key is absent.
func (s *Store) Get(key string, dst any) (bool, error) {
	s.mu.Lock()
	var kind, text string
	err := s.db.QueryRow(`SELECT kind, value FROM kv WHERE key = ?`, key).Scan(&kind, &text)
	s.mu.Unlock()
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get %s: %w", key, err)
	}
	if err := decode(kind, text, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func decode(kind, text string, dst any) error {
	var err error
	switch p := dst.(type) {
	case *string:
		if kind != kindString {
			return ErrKindMismatch
		}
		*p = text
	case *int:
		if kind != kindInt {
			return ErrKindMismatch
		}
		*p, err = strconv.Atoi(text)
	case *int64:
		if kind != kindInt {
			return ErrKindMismatch
		}
		*p, err = strconv.ParseInt(text, 10, 64)
	case *float64:
		if kind != kindFloat && kind != kindInt {
			return ErrKindMismatch
		}
		*p, err = strconv.ParseFloat(text, 64)
	case *bool:
		if kind != kindBool {
			return ErrKindMismatch
		}
		*p, err = strconv.ParseBool(text)
	default:
		if kind != kindJSON {
			return ErrKindMismatch
		}
		err = json.Unmarshal([]byte(text), dst)
	}
	return err
}

// Delete removes key.
func (s *Store) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key)
	return err
}

// Keys returns every stored key, sorted.
func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(`SELECT key FROM kv ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// SplitWidth returns the saved tree width, or 0 when unset.
func (s *Store) SplitWidth() int {
	var w int
	if s == nil {
		return 0
	}
	if ok, err := s.Get(KeySplitWidth, &w); !ok || err != nil {
		return 0
	}
	return w
}

// SetSplitWidth saves the tree width.
func (s *Store) SetSplitWidth(w int) error {
	if s == nil {
		return nil
	}
	return s.Set(KeySplitWidth, w)
}

// TreeOrder returns the saved sort order, or folder.DefaultOrder.
func (s *Store) TreeOrder() folder.OrderSpec {
	if s == nil {
		return folder.DefaultOrder
	}
	var order folder.OrderSpec
	if ok, err := s.Get(KeyTreeOrder, &order); !ok || err != nil || len(order) == 0 {
		return folder.DefaultOrder
	}
	return order
}

// SetTreeOrder saves the sort order.
func (s *Store) SetTreeOrder(order folder.OrderSpec) error {
	if s == nil {
		return nil
	}
	return s.Set(KeyTreeOrder, order)
}

// LastPath returns the directory the explorer last showed, or "".
func (s *Store) LastPath() string {
	var p string
	if s == nil {
		return ""
	}
	if ok, err := s.Get(KeyLastPath, &p); !ok || err != nil {
		return ""
	}
	return p
}

// SetLastPath saves the directory the explorer is showing.
func (s *Store) SetLastPath(p string) error {
	if s == nil {
		return nil
	}
	return s.Set(KeyLastPath, p)
}
