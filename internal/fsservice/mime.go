package fsservice

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMime is reported when nothing better is known.
const DefaultMime = "application/octet-stream"

// extraTypes covers extensions the host mime table often lacks.
var extraTypes = map[string]string{
	"md":   "text/markdown",
	"go":   "text/x-go",
	"rs":   "text/x-rust",
	"ts":   "text/x-typescript",
	"toml": "application/toml",
	"yaml": "application/yaml",
	"yml":  "application/yaml",
	"mkv":  "video/x-matroska",
	"flac": "audio/flac",
	"webp": "image/webp",
}

// MimeFor guesses a mime type from the lowercased extension, sniffing the
// file header when the extension is unknown.
func MimeFor(path, ext string) string {
	if ext != "" {
		if t, ok := extraTypes[ext]; ok {
			return t
		}
		if t := mime.TypeByExtension("." + ext); t != "" {
			return stripParams(t)
		}
	}
	m, err := mimetype.DetectFile(path)
	if err != nil {
		return DefaultMime
	}
	return stripParams(m.String())
}

func stripParams(t string) string {
	if i := strings.IndexByte(t, ';'); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}
