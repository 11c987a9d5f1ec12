package tree

import (
	"strconv"

	"github.com/marcus/reviewer/internal/folder"
	"github.com/marcus/reviewer/internal/pathutil"
)

// Metadata is the side record kept for every rendered node.
type Metadata struct {
	Path    string
	Name    string
	Dir     bool
	Ext     string
	Mime    string
	Size    *int64
	ModTime *int64
}

func metadataFor(sep, base string, e folder.Entry) Metadata {
	return Metadata{
		Path:    pathutil.JoinSep(sep, base, e.Name),
		Name:    e.Name,
		Dir:     e.Dir,
		Ext:     e.Ext,
		Mime:    e.Mime,
		Size:    e.Size,
		ModTime: e.ModTime,
	}
}

// SizeOr returns the size, or def when it is unknown.
func (m Metadata) SizeOr(def int64) int64 {
	if m.Size == nil {
		return def
	}
	return *m.Size
}

// Attrs flattens the record into string attributes. False and empty values
// are left out entirely, so absence always reads as false/empty.
func (m Metadata) Attrs() map[string]string {
	out := make(map[string]string, 7)
	set := func(k, v string) {
		if v != "" {
			out[k] = v
		}
	}
	set("path", m.Path)
	set("nm", m.Name)
	if m.Dir {
		out["dir"] = "true"
	}
	set("ext", m.Ext)
	set("tm", m.Mime)
	if m.Size != nil {
		out["sz"] = strconv.FormatInt(*m.Size, 10)
	}
	if m.ModTime != nil {
		out["mt"] = strconv.FormatInt(*m.ModTime, 10)
	}
	return out
}

// Node is the visual projection of one entry.
type Node struct {
	Meta     Metadata
	Label    string
	Depth    int
	Parent   *Node
	Children []*Node

	// loaded marks the children container as present.
	loaded bool
}

// Path is the node's absolute path.
func (n *Node) Path() string { return n.Meta.Path }

// IsDir reports whether the node is a directory.
func (n *Node) IsDir() bool { return n.Meta.Dir }

// Expanded reports whether the node has a loaded children container.
func (n *Node) Expanded() bool { return n.loaded }

// Ancestor returns the ancestor at the given depth, or nil.
func (n *Node) Ancestor(depth int) *Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Depth == depth {
			return p
		}
	}
	return nil
}
