// Package folder defines the data model and service contracts the explorer
// uses to read directories, file text and well-known locations.
package folder

import (
	"context"
	"errors"
	"strings"

	"github.com/marcus/reviewer/internal/pathutil"
)

// ErrNotDirectory is returned when a folder read targets a non-directory.
var ErrNotDirectory = errors.New("not a directory")

// Field is a sort key understood by the folder service.
type Field string

const (
	FieldDir  Field = "dir"
	FieldName Field = "name"
	FieldSize Field = "size"
	FieldTime Field = "mtime"
	FieldMime Field = "mime"
	FieldExt  Field = "ext"
)

// Direction is a sort direction.
type Direction int

const (
	Asc Direction = iota
	Desc
)

func (d Direction) String() string {
	if d == Desc {
		return "desc"
	}
	return "asc"
}

// OrderItem is one (field, direction) pair.
type OrderItem struct {
	Field     Field     `json:"field"`
	Direction Direction `json:"direction"`
}

// OrderSpec is an ordered list of sort keys.
type OrderSpec []OrderItem

// String renders the spec as "dir:asc,name:asc".
func (o OrderSpec) String() string {
	parts := make([]string, len(o))
	for i, it := range o {
		parts[i] = string(it.Field) + ":" + it.Direction.String()
	}
	return strings.Join(parts, ",")
}

// Equal reports whether two specs have the same keys in the same order.
func (o OrderSpec) Equal(other OrderSpec) bool {
	if len(o) != len(other) {
		return false
	}
	for i := range o {
		if o[i] != other[i] {
			return false
		}
	}
	return true
}

// DefaultOrder puts directories first, then sorts by name.
var DefaultOrder = OrderSpec{
	{Field: FieldDir, Direction: Asc},
	{Field: FieldName, Direction: Asc},
}

// MetaKind is a set of optional metadata kinds a caller asks for.
type MetaKind uint8

const (
	MetaSize MetaKind = 1 << iota
	MetaModTime
	MetaExt
	MetaMime
	MetaHasChildren
	MetaCount
)

// Has reports whether every kind in k is present.
func (m MetaKind) Has(k MetaKind) bool { return m&k == k }

// TreeMeta is what the tree asks for: enough to dispatch a preview.
const TreeMeta = MetaSize | MetaModTime | MetaMime

// ContentMeta is what the flat content list asks for.
const ContentMeta = MetaSize | MetaModTime | MetaExt | MetaMime | MetaCount

// Cache names shared between callers and the service.
const (
	TreeCache    = "tree_cache"
	ContentCache = "content_cache"
)

// Entry is one filesystem object. Optional metadata is nil or zero when the
// caller did not request it.
type Entry struct {
	Name        string  `json:"nm"`
	Dir         bool    `json:"dir,omitempty"`
	Ext         string  `json:"ext,omitempty"`
	Mime        string  `json:"tm,omitempty"`
	Size        *int64  `json:"sz,omitempty"`
	ModTime     *int64  `json:"mt,omitempty"`
	Count       int     `json:"cnt,omitempty"`
	HasChildren bool    `json:"has,omitempty"`
	Children    []Entry `json:"items,omitempty"`
}

// Page is one paginated read of a directory.
type Page struct {
	Base  string    `json:"base_nm"`
	Entry Entry     `json:"item"`
	Total int       `json:"tot"`
	Skip  int       `json:"skip_n"`
	Take  int       `json:"take_n"`
	Order OrderSpec `json:"ordering"`
}

// ChildBase returns the base path for the page's children.
func (p *Page) ChildBase(sep string) string {
	if p.Entry.Name == "" {
		return pathutil.JoinSep(sep, p.Base, "")
	}
	return pathutil.JoinSep(sep, p.Base, p.Entry.Name)
}

// Options are the parameters of a folder read.
type Options struct {
	Cache  string
	Path   string
	Order  OrderSpec
	Meta   MetaKind
	Skip   int
	Take   int
	Pretty bool
}

// Service reads a single directory, one page at a time.
type Service interface {
	ReadFolder(ctx context.Context, opts Options) (*Page, error)
}

// TextContent is the decoded text of a file.
type TextContent struct {
	Mime     string
	Encoding string
	Text     string
}

// TextService reads a file as text.
type TextService interface {
	ReadText(ctx context.Context, path string) (*TextContent, error)
}

// HomeDirs are the well-known user directories.
type HomeDirs struct {
	Home      string
	Downloads string
	Documents string
	Videos    string
	Music     string
	Pictures  string
	Desktop   string
}

// HomeDirsService resolves the well-known user directories.
type HomeDirsService interface {
	HomeDirs(ctx context.Context) (HomeDirs, error)
}

// DiskListService lists top-level volumes ("/" or "C:\", "D:\", ...).
type DiskListService interface {
	Disks(ctx context.Context) ([]string, error)
}
