package fsservice

import (
	"cmp"
	"slices"
	"strings"

	"github.com/marcus/reviewer/internal/folder"
)

// Sort orders entries in place by the given spec. The dir key ranks
// directories before files under Asc. Ext and mime only compare files.
// Without a name key, raw names break remaining ties.
func Sort(entries []folder.Entry, order folder.OrderSpec) {
	hasName := false
	for _, it := range order {
		if it.Field == folder.FieldName {
			hasName = true
			break
		}
	}

	slices.SortStableFunc(entries, func(a, b folder.Entry) int {
		for _, it := range order {
			c := compareField(it.Field, a, b)
			if it.Direction == folder.Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		if !hasName {
			return strings.Compare(a.Name, b.Name)
		}
		return 0
	})
}

func compareField(f folder.Field, a, b folder.Entry) int {
	switch f {
	case folder.FieldDir:
		return -compareBool(a.Dir, b.Dir)
	case folder.FieldName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case folder.FieldSize:
		return cmp.Compare(deref(a.Size), deref(b.Size))
	case folder.FieldTime:
		return cmp.Compare(deref(a.ModTime), deref(b.ModTime))
	case folder.FieldExt:
		if a.Dir || b.Dir {
			return 0
		}
		return strings.Compare(a.Ext, b.Ext)
	case folder.FieldMime:
		if a.Dir || b.Dir {
			return 0
		}
		return strings.Compare(a.Mime, b.Mime)
	}
	return 0
}

func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func deref(p *int64) int64 {
	if p == nil {
		return 0
	}
	return *p
}
