package fsservice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"golang.org/x/text/encoding/unicode"

	"github.com/marcus/reviewer/internal/folder"
)

// MaxTextBytes caps how much of a file ReadText will load.
const MaxTextBytes = 4 << 20

const sniffSize = 4096

// ErrBinary is returned by ReadText for content that is not text.
var ErrBinary = errors.New("binary content")

// ReadText loads a file and decodes it to UTF-8.
func (l *Local) ReadText(ctx context.Context, path string) (*folder.TextContent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(io.LimitReader(f, MaxTextBytes))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	mt := MimeFor(path, ext)

	enc, bom := detectEncoding(data)
	if bom == 0 && !looksText(data) {
		return nil, fmt.Errorf("read %s: %w", path, ErrBinary)
	}

	text, err := decode(data, enc)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &folder.TextContent{Mime: mt, Encoding: enc, Text: text}, nil
}

// detectEncoding names the encoding and returns the BOM length (0 if none).
func detectEncoding(data []byte) (string, int) {
	switch {
	case bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}):
		return "utf-8", 3
	case bytes.HasPrefix(data, []byte{0xFF, 0xFE}):
		return "utf-16le", 2
	case bytes.HasPrefix(data, []byte{0xFE, 0xFF}):
		return "utf-16be", 2
	}
	return "utf-8", 0
}

func decode(data []byte, enc string) (string, error) {
	switch enc {
	case "utf-16le":
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		return string(out), err
	case "utf-16be":
		out, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		return string(out), err
	}
	return string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF})), nil
}

// looksText sniffs the head of data. NUL bytes mean binary; otherwise valid
// UTF-8 or a text mime from the sniffer is enough.
func looksText(data []byte) bool {
	if len(data) == 0 {
		return true
	}
	sample := data[:min(len(data), sniffSize)]
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	if utf8.Valid(sample) {
		return true
	}
	for m := mimetype.Detect(sample); m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
