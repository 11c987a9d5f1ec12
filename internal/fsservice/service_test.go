package fsservice

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/marcus/reviewer/internal/folder"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(dir, name)
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(p, 0755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func names(entries []folder.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestReadFolder_DirsFirstByName(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.txt":   "b",
		"A.md":    "# a",
		"zeta/":   "",
		"Alpha/":  "",
		"c.json":  "{}",
		"zeta/in": "x",
	})

	svc := New(nil)
	defer func() { _ = svc.Close() }()

	page, err := svc.ReadFolder(context.Background(), folder.Options{
		Cache: folder.TreeCache,
		Path:  dir,
		Order: folder.DefaultOrder,
		Meta:  folder.TreeMeta,
	})
	if err != nil {
		t.Fatalf("ReadFolder: %v", err)
	}

	want := []string{"Alpha", "zeta", "A.md", "b.txt", "c.json"}
	got := names(page.Entry.Children)
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("order = %v, want %v", got, want)
	}
	if page.Total != 5 || page.Take != 5 || page.Skip != 0 {
		t.Errorf("total/take/skip = %d/%d/%d", page.Total, page.Take, page.Skip)
	}
	if page.ChildBase(string(filepath.Separator)) != dir {
		t.Errorf("child base = %q, want %q", page.ChildBase(string(filepath.Separator)), dir)
	}

	md := page.Entry.Children[2]
	if md.Mime != "text/markdown" {
		t.Errorf("mime = %q", md.Mime)
	}
	if md.Size == nil || *md.Size != 3 {
		t.Errorf("size = %v", md.Size)
	}
	if md.Ext != "" {
		t.Errorf("ext should be omitted without MetaExt, got %q", md.Ext)
	}
	if page.Entry.Children[0].Size != nil {
		t.Error("directories carry no size")
	}
}

func TestReadFolder_Pagination(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{}
	for _, n := range []string{"a", "b", "c", "d", "e"} {
		files[n] = n
	}
	writeFiles(t, dir, files)

	svc := New(nil)
	defer func() { _ = svc.Close() }()

	tests := []struct {
		skip, take   int
		wantTake     int
		wantFirst    string
		wantSkipEcho int
	}{
		{0, 2, 2, "a", 0},
		{2, 2, 2, "c", 2},
		{4, 2, 1, "e", 4},
		{9, 2, 0, "", 5},
	}
	for _, tt := range tests {
		page, err := svc.ReadFolder(context.Background(), folder.Options{
			Cache: folder.ContentCache, Path: dir, Skip: tt.skip, Take: tt.take,
		})
		if err != nil {
			t.Fatal(err)
		}
		if page.Take != tt.wantTake || page.Total != 5 || page.Skip != tt.wantSkipEcho {
			t.Errorf("skip %d: take=%d total=%d skip=%d", tt.skip, page.Take, page.Total, page.Skip)
		}
		if tt.wantFirst != "" && page.Entry.Children[0].Name != tt.wantFirst {
			t.Errorf("skip %d: first = %q", tt.skip, page.Entry.Children[0].Name)
		}
	}
}

func TestReadFolder_NotDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"f.txt": "x"})

	svc := New(nil)
	defer func() { _ = svc.Close() }()

	_, err := svc.ReadFolder(context.Background(), folder.Options{Path: filepath.Join(dir, "f.txt")})
	if !errors.Is(err, folder.ErrNotDirectory) {
		t.Errorf("expected ErrNotDirectory, got %v", err)
	}
}

func TestReadFolder_MetaKinds(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"sub/one": "1",
		"sub/two": "2",
		"empty/":  "",
		"Pic.PNG": "not really",
	})

	svc := New(nil)
	defer func() { _ = svc.Close() }()

	page, err := svc.ReadFolder(context.Background(), folder.Options{
		Path: dir,
		Meta: folder.ContentMeta | folder.MetaHasChildren,
	})
	if err != nil {
		t.Fatal(err)
	}
	byName := map[string]folder.Entry{}
	for _, e := range page.Entry.Children {
		byName[e.Name] = e
	}
	if e := byName["sub"]; e.Count != 2 || !e.HasChildren {
		t.Errorf("sub: count=%d has=%v", e.Count, e.HasChildren)
	}
	if e := byName["empty"]; e.Count != 0 || e.HasChildren {
		t.Errorf("empty: count=%d has=%v", e.Count, e.HasChildren)
	}
	if e := byName["Pic.PNG"]; e.Ext != "png" || e.Mime != "image/png" {
		t.Errorf("png: ext=%q mime=%q", e.Ext, e.Mime)
	}
	if page.Entry.Count != 3 {
		t.Errorf("self count = %d", page.Entry.Count)
	}
}

func TestCache_ReordersOnHit(t *testing.T) {
	c := newCache(slog.Default())
	defer func() { _ = c.close() }()

	one, two := int64(1), int64(2)
	entries := []folder.Entry{{Name: "a", Size: &one}, {Name: "b", Size: &two}}
	c.put("x", "/p", 10, folder.MetaSize, folder.DefaultOrder, entries)

	if _, ok := c.get("x", "/p", 11, folder.MetaSize, folder.DefaultOrder); ok {
		t.Error("different mtime must miss")
	}
	if _, ok := c.get("", "/p", 10, folder.MetaSize, folder.DefaultOrder); ok {
		t.Error("unnamed cache must miss")
	}

	bySizeDesc := folder.OrderSpec{{Field: folder.FieldSize, Direction: folder.Desc}}
	got, ok := c.get("x", "/p", 10, folder.MetaSize, bySizeDesc)
	if !ok {
		t.Fatal("expected hit")
	}
	if got[0].Name != "b" {
		t.Errorf("expected re-sorted hit, got %v", names(got))
	}

	c.invalidate("/p")
	if c.len() != 0 {
		t.Errorf("expected empty cache after invalidate, got %d", c.len())
	}
}

func TestReadFolder_HidesDotFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		".env":     "x",
		".git/":    "",
		"main.go":  "package main",
		"visible/": "",
	})

	for _, show := range []bool{true, false} {
		svc := New(nil)
		svc.SetShowHidden(show)
		page, err := svc.ReadFolder(context.Background(), folder.Options{
			Cache: folder.TreeCache, Path: dir, Order: folder.DefaultOrder,
		})
		_ = svc.Close()
		if err != nil {
			t.Fatal(err)
		}
		got := strings.Join(names(page.Entry.Children), ",")
		want := "visible,main.go"
		if show {
			want = ".git,visible,.env,main.go"
		}
		if got != want {
			t.Errorf("show=%v: got %s, want %s", show, got, want)
		}
	}
}
