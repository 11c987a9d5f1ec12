package fsservice

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/reviewer/internal/folder"
)

func TestReadText(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		data    []byte
		wantEnc string
		want    string
		wantErr error
	}{
		{"plain utf8", "a.txt", []byte("hello"), "utf-8", "hello", nil},
		{"utf8 bom", "b.txt", []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "utf-8", "hi", nil},
		{"utf16le bom", "c.txt", []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, "utf-16le", "hi", nil},
		{"utf16be bom", "d.txt", []byte{0xFE, 0xFF, 0, 'h', 0, 'i'}, "utf-16be", "hi", nil},
		{"empty", "e.txt", []byte{}, "utf-8", "", nil},
		{"binary", "f.dat", []byte{0x01, 0x00, 0x02, 0x00}, "", "", ErrBinary},
	}

	svc := New(nil)
	defer func() { _ = svc.Close() }()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := filepath.Join(dir, tt.file)
			if err := os.WriteFile(p, tt.data, 0644); err != nil {
				t.Fatal(err)
			}
			got, err := svc.ReadText(context.Background(), p)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ReadText: %v", err)
			}
			if got.Text != tt.want || got.Encoding != tt.wantEnc {
				t.Errorf("got (%q, %q), want (%q, %q)", got.Text, got.Encoding, tt.want, tt.wantEnc)
			}
			if !strings.HasPrefix(got.Mime, "text/") {
				t.Errorf("mime = %q", got.Mime)
			}
		})
	}
}

func TestReadText_Missing(t *testing.T) {
	svc := New(nil)
	defer func() { _ = svc.Close() }()

	_, err := svc.ReadText(context.Background(), filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Errorf("error should name the file: %v", err)
	}
}

func TestMimeFor(t *testing.T) {
	dir := t.TempDir()
	unknown := filepath.Join(dir, "blob")
	if err := os.WriteFile(unknown, []byte("%PDF-1.4\n"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		path, ext, want string
	}{
		{"x.md", "md", "text/markdown"},
		{"x.json", "json", "application/json"},
		{"x.png", "png", "image/png"},
		{unknown, "", "application/pdf"},
		{filepath.Join(dir, "missing"), "", DefaultMime},
	}
	for _, tt := range tests {
		if got := MimeFor(tt.path, tt.ext); got != tt.want {
			t.Errorf("MimeFor(%q, %q) = %q, want %q", tt.path, tt.ext, got, tt.want)
		}
	}
}

func TestSort(t *testing.T) {
	sz := func(n int64) *int64 { return &n }
	entries := []folder.Entry{
		{Name: "b.txt", Ext: "txt", Size: sz(30)},
		{Name: "Docs", Dir: true},
		{Name: "a.go", Ext: "go", Size: sz(10)},
		{Name: "bin", Dir: true},
		{Name: "C.md", Ext: "md", Size: sz(20)},
	}

	tests := []struct {
		name  string
		order folder.OrderSpec
		want  string
	}{
		{"dirs first then name", folder.DefaultOrder, "bin,Docs,a.go,b.txt,C.md"},
		{"dirs last", folder.OrderSpec{{Field: folder.FieldDir, Direction: folder.Desc}, {Field: folder.FieldName}}, "a.go,b.txt,C.md,bin,Docs"},
		{"size desc", folder.OrderSpec{{Field: folder.FieldDir}, {Field: folder.FieldSize, Direction: folder.Desc}}, "Docs,bin,b.txt,C.md,a.go"},
		{"ext", folder.OrderSpec{{Field: folder.FieldDir}, {Field: folder.FieldExt}, {Field: folder.FieldName}}, "bin,Docs,a.go,C.md,b.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := append([]folder.Entry(nil), entries...)
			Sort(e, tt.order)
			if got := strings.Join(names(e), ","); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestApplyUserDirs(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "user-dirs.dirs")
	content := "# comment\nXDG_DOWNLOAD_DIR=\"$HOME/Telechargements\"\nXDG_MUSIC_DIR=\"/srv/music\"\nGARBAGE\n"
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	dirs := folder.HomeDirs{Downloads: "/h/Downloads", Music: "/h/Music", Desktop: "/h/Desktop"}
	applyUserDirs(&dirs, "/h", file)

	if dirs.Downloads != "/h/Telechargements" {
		t.Errorf("downloads = %q", dirs.Downloads)
	}
	if dirs.Music != "/srv/music" {
		t.Errorf("music = %q", dirs.Music)
	}
	if dirs.Desktop != "/h/Desktop" {
		t.Errorf("desktop should be untouched, got %q", dirs.Desktop)
	}
}
