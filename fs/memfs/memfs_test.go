// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memfs_test

import (
	"testing"
	"time"

	"code.hybscloud.com/okio"
	"code.hybscloud.com/okio/fs"
	"code.hybscloud.com/okio/fs/memfs"
)

func writeFile(t *testing.T, fsys fs.FileSystem, path fs.Path, content string) {
	t.Helper()
	sink, err := fsys.Sink(path, false)
	if err != nil {
		t.Fatalf("Sink(%s): %v", path.String(), err)
	}
	buf := okio.NewBuffer()
	buf.WriteUTF8(content)
	if err := sink.WriteExactly(buf, buf.Size()); err != nil {
		t.Fatalf("WriteExactly: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func readFile(t *testing.T, fsys fs.FileSystem, path fs.Path) string {
	t.Helper()
	source, err := fsys.Source(path)
	if err != nil {
		t.Fatalf("Source(%s): %v", path.String(), err)
	}
	defer source.Close()
	buf := okio.NewBuffer()
	for {
		n, err := source.ReadAtMost(buf, okio.SegmentSize)
		if err != nil {
			t.Fatalf("ReadAtMost: %v", err)
		}
		if n == -1 {
			break
		}
	}
	s, err := buf.ReadUTF8All()
	if err != nil {
		t.Fatalf("ReadUTF8All: %v", err)
	}
	return s
}

func TestMemFS_WriteThenRead(t *testing.T) {
	fsys := memfs.New()
	path := fs.Of("/greeting.txt")
	writeFile(t, fsys, path, "hello memfs")

	if got := readFile(t, fsys, path); got != "hello memfs" {
		t.Errorf("read back %q, want %q", got, "hello memfs")
	}

	ok, err := fsys.Exists(path)
	if err != nil || !ok {
		t.Errorf("Exists = %v, %v; want true, nil", ok, err)
	}
}

func TestMemFS_CreateDirectoriesAndList(t *testing.T) {
	fsys := memfs.New()
	dir := fs.Of("/a/b/c")
	if err := fsys.CreateDirectories(dir, false); err != nil {
		t.Fatalf("CreateDirectories: %v", err)
	}
	writeFile(t, fsys, dir.ResolveString("file.txt"), "x")

	children, err := fsys.List(dir)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(children) != 1 || children[0].Name() != "file.txt" {
		t.Errorf("List = %v, want a single file.txt entry", children)
	}
}

func TestMemFS_MetadataReportsSize(t *testing.T) {
	fsys := memfs.New()
	path := fs.Of("/sized.txt")
	writeFile(t, fsys, path, "0123456789")

	m, err := fsys.Metadata(path)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if !m.IsRegularFile {
		t.Errorf("IsRegularFile = false, want true")
	}
	if m.Size != 10 {
		t.Errorf("Size = %d, want 10", m.Size)
	}
}

func TestMemFS_DeleteNonEmptyDirectoryFails(t *testing.T) {
	fsys := memfs.New()
	dir := fs.Of("/dir")
	if err := fsys.CreateDirectory(dir, false); err != nil {
		t.Fatalf("CreateDirectory: %v", err)
	}
	writeFile(t, fsys, dir.ResolveString("f.txt"), "x")

	if err := fsys.Delete(dir, true); err == nil {
		t.Errorf("Delete on non-empty directory = nil, want an error")
	}
	if err := fsys.DeleteRecursively(dir, true); err != nil {
		t.Errorf("DeleteRecursively: %v", err)
	}
	if ok, _ := fsys.Exists(dir); ok {
		t.Errorf("directory still exists after DeleteRecursively")
	}
}

func TestMemFS_AtomicMove(t *testing.T) {
	fsys := memfs.New()
	src := fs.Of("/old.txt")
	dst := fs.Of("/new.txt")
	writeFile(t, fsys, src, "payload")

	if err := fsys.AtomicMove(src, dst); err != nil {
		t.Fatalf("AtomicMove: %v", err)
	}
	if ok, _ := fsys.Exists(src); ok {
		t.Errorf("source still exists after move")
	}
	if got := readFile(t, fsys, dst); got != "payload" {
		t.Errorf("moved content = %q, want %q", got, "payload")
	}
}

func TestMemFS_AppendingSinkDoesNotDuplicateOnMultipleFlush(t *testing.T) {
	fsys := memfs.New()
	path := fs.Of("/log.txt")
	writeFile(t, fsys, path, "line1\n")

	sink, err := fsys.AppendingSink(path, true)
	if err != nil {
		t.Fatalf("AppendingSink: %v", err)
	}
	buf := okio.NewBuffer()
	buf.WriteUTF8("line2\n")
	if err := sink.WriteExactly(buf, buf.Size()); err != nil {
		t.Fatalf("WriteExactly: %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush 1: %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush 2: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	got := readFile(t, fsys, path)
	want := "line1\nline2\n"
	if got != want {
		t.Errorf("content after double flush = %q, want %q", got, want)
	}
}

func TestMemFS_OpenPathsTracksLeaks(t *testing.T) {
	fsys := memfs.New()
	path := fs.Of("/tracked.txt")
	writeFile(t, fsys, path, "x")

	source, err := fsys.Source(path)
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if open := fsys.OpenPaths(); len(open) != 1 {
		t.Fatalf("OpenPaths() = %v, want exactly one open path", open)
	}
	if err := source.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if open := fsys.OpenPaths(); len(open) != 0 {
		t.Errorf("OpenPaths() after Close = %v, want none", open)
	}
}

func TestMemFS_WindowsStyleIsCaseInsensitive(t *testing.T) {
	fsys := memfs.New(memfs.WithWindowsStyle(true))
	path := fs.Of(`C:\Data.txt`)
	writeFile(t, fsys, path, "x")

	ok, err := fsys.Exists(fs.Of(`C:\data.txt`))
	if err != nil || !ok {
		t.Errorf("case-insensitive Exists = %v, %v; want true, nil", ok, err)
	}
}

func TestMemFS_SymlinkResolvesToTarget(t *testing.T) {
	fsys := memfs.New()
	target := fs.Of("/real.txt")
	writeFile(t, fsys, target, "real content")

	link := fs.Of("/link.txt")
	if err := fsys.CreateSymlink(link, target); err != nil {
		t.Fatalf("CreateSymlink: %v", err)
	}
	if got := readFile(t, fsys, link); got != "real content" {
		t.Errorf("read through symlink = %q, want %q", got, "real content")
	}
}

func TestMemFS_WithClock(t *testing.T) {
	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	fsys := memfs.New(memfs.WithClock(func() time.Time { return fixed }))
	path := fs.Of("/timed.txt")
	writeFile(t, fsys, path, "x")

	m, err := fsys.Metadata(path)
	if err != nil {
		t.Fatalf("Metadata: %v", err)
	}
	if !m.CreatedAt.Equal(fixed) {
		t.Errorf("CreatedAt = %v, want %v", m.CreatedAt, fixed)
	}
}

func TestMemFS_CopyFile(t *testing.T) {
	fsys := memfs.New()
	src := fs.Of("/src.txt")
	dst := fs.Of("/dst.txt")
	writeFile(t, fsys, src, "copy me")

	if err := fsys.Copy(src, dst); err != nil {
		t.Fatalf("Copy: %v", err)
	}
	if got := readFile(t, fsys, dst); got != "copy me" {
		t.Errorf("copied content = %q, want %q", got, "copy me")
	}
}
