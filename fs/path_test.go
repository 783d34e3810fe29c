// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fs_test

import (
	"testing"

	"code.hybscloud.com/okio/fs"
)

func TestPath_UnixNormalization(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"/a/b/c", "/a/b/c"},
		{"/a/./b", "/a/b"},
		{"/a/b/../c", "/a/c"},
		{"/a/../../b", "/b"},
		{"a/b/../c", "a/c"},
		{"../a/b", "../a/b"},
		{"", "."},
		{".", "."},
	}
	for _, c := range cases {
		got := fs.Of(c.in).String()
		if got != c.want {
			t.Errorf("Of(%q).String() = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestPath_WindowsDriveLetter(t *testing.T) {
	p := fs.Of(`C:\Users\test\file.txt`)
	if !p.IsAbsolute() {
		t.Errorf("drive-letter path should be absolute")
	}
	want := `C:\Users\test\file.txt`
	if got := p.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestPath_UNC(t *testing.T) {
	p := fs.Of(`\\server\share\dir\file.txt`)
	if !p.IsAbsolute() {
		t.Errorf("UNC path should be absolute")
	}
	if got, want := p.Name(), "file.txt"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
}

func TestPath_ParentAndName(t *testing.T) {
	p := fs.Of("/a/b/c.txt")
	if got, want := p.Name(), "c.txt"; got != want {
		t.Errorf("Name() = %q, want %q", got, want)
	}
	parent, ok := p.Parent()
	if !ok {
		t.Fatalf("Parent() returned ok=false")
	}
	if got, want := parent.String(), "/a/b"; got != want {
		t.Errorf("Parent().String() = %q, want %q", got, want)
	}
}

func TestPath_ParentOfAscentHasNoParent(t *testing.T) {
	if _, ok := fs.Of("..").Parent(); ok {
		t.Errorf("Parent() of %q should be null", "..")
	}
	if _, ok := fs.Of("../..").Parent(); ok {
		t.Errorf("Parent() of %q should be null", "../..")
	}
	parent, ok := fs.Of("../a").Parent()
	if !ok {
		t.Fatalf("Parent() of %q returned ok=false, want a parent of %q", "../a", "..")
	}
	if got, want := parent.String(), ".."; got != want {
		t.Errorf("Parent() of %q = %q, want %q", "../a", got, want)
	}
}

func TestPath_Resolve(t *testing.T) {
	base := fs.Of("/a/b")
	got := base.ResolveString("c/d.txt").String()
	if want := "/a/b/c/d.txt"; got != want {
		t.Errorf("Resolve = %q, want %q", got, want)
	}

	// absolute child overrides base
	got = base.ResolveString("/x/y").String()
	if want := "/x/y"; got != want {
		t.Errorf("Resolve with absolute child = %q, want %q", got, want)
	}
}

func TestPath_RelativeTo(t *testing.T) {
	base := fs.Of("/a/b")
	target := fs.Of("/a/b/c/d.txt")

	rel, ok := target.RelativeTo(base)
	if !ok {
		t.Fatalf("RelativeTo returned ok=false")
	}
	if got, want := rel.String(), "c/d.txt"; got != want {
		t.Errorf("RelativeTo = %q, want %q", got, want)
	}
}

func TestPath_Segments(t *testing.T) {
	p := fs.Of("/a/b/c")
	segs := p.Segments()
	want := []string{"a", "b", "c"}
	if len(segs) != len(want) {
		t.Fatalf("Segments() = %v, want %v", segs, want)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("Segments()[%d] = %q, want %q", i, segs[i], want[i])
		}
	}
}

func TestPath_Equal(t *testing.T) {
	a := fs.Of("/a/b/../c")
	b := fs.Of("/a/c")
	if !a.Equal(b) {
		t.Errorf("%q and %q should normalize equal", a.String(), b.String())
	}
}
