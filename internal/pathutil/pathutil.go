// Package pathutil joins and splits explorer paths over an explicit
// separator. Paths are absolute; a volume is either the empty prefix
// (unix root) or a drive letter such as "C:".
package pathutil

import (
	"path/filepath"
	"strings"
)

// Sep is the host path separator.
const Sep = string(filepath.Separator)

// IsVolume reports whether base is a bare volume prefix: "" or "C:".
func IsVolume(base string) bool {
	if base == "" {
		return true
	}
	return len(base) == 2 && base[1] == ':' && isLetter(base[0])
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// JoinSep joins a base path and a child name. An empty name yields the base
// itself, with a volume prefix completed to its root ("C:" -> "C:\").
// A base that already ends in sep never gets a second one.
func JoinSep(sep, base, name string) string {
	if name == "" {
		if IsVolume(base) {
			return base + sep
		}
		return base
	}
	if strings.HasSuffix(base, sep) {
		return base + name
	}
	return base + sep + name
}

// Join is JoinSep with the host separator.
func Join(base, name string) string {
	return JoinSep(Sep, base, name)
}

// SplitSep splits p into its base path and final name.
//
//	"/a/b"      -> "/a", "b"
//	"/x"        -> "",   "x"
//	"/"         -> "",   ""
//	`C:\Users`  -> "C:", "Users"
//	`C:\`       -> "C:", ""
func SplitSep(sep, p string) (base, name string) {
	p = strings.TrimRight(p, sep)
	if p == "" || IsVolume(p) {
		return p, ""
	}
	i := strings.LastIndex(p, sep)
	if i < 0 {
		return "", p
	}
	return p[:i], p[i+len(sep):]
}

// Split is SplitSep with the host separator.
func Split(p string) (base, name string) {
	return SplitSep(Sep, p)
}

// ParentSep returns the directory containing p, or "" when p is a volume root.
func ParentSep(sep, p string) string {
	base, name := SplitSep(sep, p)
	if name == "" {
		return ""
	}
	return JoinSep(sep, base, "")
}

// Parent is ParentSep with the host separator.
func Parent(p string) string {
	return ParentSep(Sep, p)
}

// AncestorsSep lists every prefix of full from its volume root down to full
// itself, in descending order.
//
//	"/a/b"      -> ["/", "/a", "/a/b"]
//	`C:\Users`  -> [`C:\`, `C:\Users`]
func AncestorsSep(sep, full string) []string {
	parts := strings.Split(strings.TrimRight(full, sep), sep)
	prefix := parts[0]
	out := []string{JoinSep(sep, prefix, "")}
	for _, part := range parts[1:] {
		if part == "" {
			continue
		}
		prefix = JoinSep(sep, prefix, part)
		out = append(out, prefix)
	}
	return out
}

// Ancestors is AncestorsSep with the host separator.
func Ancestors(full string) []string {
	return AncestorsSep(Sep, full)
}

// DisplayName is the label shown for a node: its name, or its full path
// when the name is empty (a volume root).
func DisplayName(sep, base, name string) string {
	if name == "" {
		return JoinSep(sep, base, "")
	}
	return name
}
