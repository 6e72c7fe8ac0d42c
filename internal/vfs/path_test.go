package vfs

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestJoin_Normalization(t *testing.T) {
	cases := []struct {
		cwd, in, want string
	}{
		{"/", "a", "/a"},
		{"/a", "b/c", "/a/b/c"},
		{"/a/b", "..", "/a"},
		{"/a", ".", "/a"},
		{"/a", "/x/y", "/x/y"},
		{"/a", "../..", "/"},
		{"/", "..", "/"},
		{"/", "../../..", "/"},
		{"/a/b", "../../../../etc", "/etc"},
		{"", "x", "/x"},
	}
	for _, c := range cases {
		if got := Join(c.cwd, c.in); got != c.want {
			t.Errorf("Join(%q, %q) = %q, want %q", c.cwd, c.in, got, c.want)
		}
	}
}

func TestResolver_NeverEscapesRoot(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)

	inputs := []string{
		"..", "../..", "../../../../../../etc/passwd",
		"a/../../..", "./.././..", "/..", "/../../x",
		"a/b/../../../../c",
	}
	for _, in := range inputs {
		for _, cwd := range []string{"/", "/a", "/a/b/c"} {
			_, real := r.Resolve(cwd, in)
			if real != root && !strings.HasPrefix(real, root+string(filepath.Separator)) {
				t.Errorf("Resolve(%q, %q) escaped root: %q", cwd, in, real)
			}
		}
	}
}

func TestResolver_RealMapping(t *testing.T) {
	root := t.TempDir()
	r := NewResolver(root)

	virt, real := r.Resolve("/docs", "notes.txt")
	if virt != "/docs/notes.txt" {
		t.Errorf("virtual = %q, want /docs/notes.txt", virt)
	}
	want := filepath.Join(root, "docs", "notes.txt")
	if real != want {
		t.Errorf("real = %q, want %q", real, want)
	}

	if got := r.Real("/"); got != root {
		t.Errorf("Real(/) = %q, want root %q", got, root)
	}
}

func TestDirBase(t *testing.T) {
	if got := Dir("/a/b/c"); got != "/a/b" {
		t.Errorf("Dir = %q, want /a/b", got)
	}
	if got := Base("/a/b/c"); got != "c" {
		t.Errorf("Base = %q, want c", got)
	}
	if got := Dir("/"); got != "/" {
		t.Errorf("Dir(/) = %q, want /", got)
	}
}
