package pathutil

import (
	"reflect"
	"testing"
)

func TestJoinSep(t *testing.T) {
	tests := []struct {
		name       string
		sep        string
		base, item string
		want       string
	}{
		{"drive and child", `\`, "C:", "Users", `C:\Users`},
		{"drive root", `\`, "C:", "", `C:\`},
		{"drive root with trailing sep", `\`, `C:\`, "", `C:\`},
		{"trailing sep not doubled", `\`, `C:\`, "Users", `C:\Users`},
		{"nested windows", `\`, `C:\Users`, "me", `C:\Users\me`},
		{"unix root", "/", "", "", "/"},
		{"child of unix root", "/", "", "usr", "/usr"},
		{"child of slash", "/", "/", "usr", "/usr"},
		{"nested unix", "/", "/usr", "lib", "/usr/lib"},
		{"plain base with empty name", "/", "/usr", "", "/usr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := JoinSep(tt.sep, tt.base, tt.item); got != tt.want {
				t.Errorf("JoinSep(%q, %q, %q) = %q, want %q", tt.sep, tt.base, tt.item, got, tt.want)
			}
		})
	}
}

func TestSplitSep(t *testing.T) {
	tests := []struct {
		sep, path  string
		base, name string
	}{
		{"/", "/a/b", "/a", "b"},
		{"/", "/a/b/", "/a", "b"},
		{"/", "/x", "", "x"},
		{"/", "/", "", ""},
		{`\`, `C:\Users`, "C:", "Users"},
		{`\`, `C:\`, "C:", ""},
		{`\`, `C:\Users\me`, `C:\Users`, "me"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			base, name := SplitSep(tt.sep, tt.path)
			if base != tt.base || name != tt.name {
				t.Errorf("SplitSep(%q) = (%q, %q), want (%q, %q)", tt.path, base, name, tt.base, tt.name)
			}
		})
	}
}

func TestSplitJoinRoundTrip(t *testing.T) {
	for _, p := range []string{"/usr/lib/go", "/usr", "/"} {
		base, name := SplitSep("/", p)
		if got := JoinSep("/", base, name); got != p {
			t.Errorf("round trip of %q gave %q", p, got)
		}
	}
}

func TestParentSep(t *testing.T) {
	tests := []struct {
		sep, path, want string
	}{
		{"/", "/a/b", "/a"},
		{"/", "/a", "/"},
		{"/", "/", ""},
		{`\`, `C:\Users`, `C:\`},
		{`\`, `C:\`, ""},
	}
	for _, tt := range tests {
		if got := ParentSep(tt.sep, tt.path); got != tt.want {
			t.Errorf("ParentSep(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestAncestorsSep(t *testing.T) {
	tests := []struct {
		sep, path string
		want      []string
	}{
		{"/", "/a/b", []string{"/", "/a", "/a/b"}},
		{"/", "/", []string{"/"}},
		{`\`, `C:\Users\me`, []string{`C:\`, `C:\Users`, `C:\Users\me`}},
		{`\`, `C:\`, []string{`C:\`}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := AncestorsSep(tt.sep, tt.path); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("AncestorsSep(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	if got := DisplayName(`\`, "C:", ""); got != `C:\` {
		t.Errorf("volume label = %q", got)
	}
	if got := DisplayName("/", "/usr", "lib"); got != "lib" {
		t.Errorf("child label = %q", got)
	}
}
