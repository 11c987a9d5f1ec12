// Package preview picks and renders the right-hand content view for the
// selected entry.
package preview

import "strings"

// ContentType marks which strategy is mounted.
type ContentType string

const (
	TypeImage ContentType = "view-img"
	TypeEmbed ContentType = "view-embed"
	TypeHTML  ContentType = "view-html"
	TypeFrame ContentType = "view-iframe"
	TypeText  ContentType = "view-text"
	TypeMedia ContentType = "view-media"
	TypeNone  ContentType = "view-none"
	TypeList  ContentType = "con-lst"
)

// IsView reports whether t previews a single file.
func (t ContentType) IsView() bool {
	return strings.HasPrefix(string(t), "view-")
}

// DefaultThreshold splits small files (shown as text) from large media.
const DefaultThreshold int64 = 1024 * 500

// File is the metadata a strategy is chosen from.
type File struct {
	Path string
	Mime string
	Size int64
}

// Select returns the strategy for f. Rules are evaluated in order and the
// first match wins. threshold <= 0 uses DefaultThreshold.
func Select(f File, threshold int64) ContentType {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	mt := f.Mime
	switch {
	case strings.HasPrefix(mt, "image/"):
		return TypeImage
	case strings.HasSuffix(mt, "/pdf"):
		return TypeEmbed
	case strings.HasSuffix(mt, "/html"):
		return TypeHTML
	case strings.HasSuffix(mt, "/json"):
		return TypeFrame
	case strings.HasSuffix(mt, "/xml"):
		return TypeText
	case (strings.HasPrefix(mt, "audio/") || strings.HasPrefix(mt, "video/")) && f.Size > threshold:
		return TypeMedia
	case f.Size < threshold:
		return TypeText
	}
	return TypeNone
}
