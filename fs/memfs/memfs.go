// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package memfs is an in-memory fs.FileSystem test double (spec §4.12): a
// tree of files, directories, and symlinks held entirely in process memory,
// with an injectable clock and open-handle tracking so tests can assert
// that every Source/Sink/FileHandle they open gets closed.
package memfs

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"code.hybscloud.com/okio"
	"code.hybscloud.com/okio/fs"
)

// Option configures a FileSystem at construction.
type Option func(*options)

type options struct {
	clock   func() time.Time
	windows bool
}

var defaultOptions = options{clock: time.Now}

// WithClock overrides the clock used for CreatedAt/LastModifiedAt/
// LastAccessedAt metadata, so tests can control timestamps deterministically.
func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// WithWindowsStyle switches the file system into Windows-like behavior:
// case-insensitive names and a "C:\" root instead of "/".
func WithWindowsStyle(windows bool) Option {
	return func(o *options) { o.windows = windows }
}

type fileNode struct {
	data                                   []byte
	createdAt, modifiedAt, lastAccessedAt time.Time
}

type dirNode struct {
	children                               map[string]*entry
	createdAt, modifiedAt, lastAccessedAt time.Time
}

type symlinkNode struct {
	target                                 fs.Path
	createdAt, modifiedAt, lastAccessedAt time.Time
}

// entry is one named child of a directory: exactly one of file, dir, or
// symlink is non-nil.
type entry struct {
	name    string
	file    *fileNode
	dir     *dirNode
	symlink *symlinkNode
}

// FileSystem is an in-memory fs.FileSystem.
type FileSystem struct {
	mu        sync.Mutex
	root      *dirNode
	clock     func() time.Time
	windows   bool
	openPaths map[string]int
}

// New returns an empty FileSystem rooted at "/" (or "C:\" under
// WithWindowsStyle).
func New(opts ...Option) *FileSystem {
	o := defaultOptions
	for _, fn := range opts {
		fn(&o)
	}
	now := o.clock()
	return &FileSystem{
		root:      &dirNode{children: map[string]*entry{}, createdAt: now, modifiedAt: now, lastAccessedAt: now},
		clock:     o.clock,
		windows:   o.windows,
		openPaths: map[string]int{},
	}
}

// RootPath returns this file system's root as an fs.Path ("/" or "C:\").
func (f *FileSystem) RootPath() fs.Path {
	if f.windows {
		return fs.Of(`C:\`)
	}
	return fs.Of("/")
}

// OpenPaths returns the paths currently held open via a Source, Sink, or
// FileHandle this FileSystem produced, for leak-detection assertions in
// tests.
func (f *FileSystem) OpenPaths() []fs.Path {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fs.Path, 0, len(f.openPaths))
	for k, n := range f.openPaths {
		if n > 0 {
			out = append(out, fs.Of(k))
		}
	}
	return out
}

func (f *FileSystem) key(name string) string {
	if f.windows {
		return strings.ToLower(name)
	}
	return name
}

func (f *FileSystem) trackOpen(path fs.Path) {
	f.mu.Lock()
	f.openPaths[path.String()]++
	f.mu.Unlock()
}

func (f *FileSystem) trackClose(path fs.Path) {
	f.mu.Lock()
	if n := f.openPaths[path.String()]; n <= 1 {
		delete(f.openPaths, path.String())
	} else {
		f.openPaths[path.String()] = n - 1
	}
	f.mu.Unlock()
}

// walk resolves path to its entry (without following a symlink leaf),
// returning also the parent directory and the leaf's lookup key, which
// callers mutating the tree (create, delete, move) need.
func (f *FileSystem) walk(path fs.Path) (parent *dirNode, key string, leaf *entry, err error) {
	segs := path.Segments()
	dir := f.root
	if len(segs) == 0 {
		return nil, "", &entry{name: "", dir: f.root}, nil
	}
	for i, seg := range segs {
		k := f.key(seg)
		child := dir.children[k]
		last := i == len(segs)-1
		if last {
			return dir, k, child, nil
		}
		if child == nil {
			return nil, "", nil, fmt.Errorf("memfs: %s: %w", path.String(), okio.ErrInvalidArgument)
		}
		if child.symlink != nil {
			child, err = f.resolveSymlink(child, 0)
			if err != nil {
				return nil, "", nil, err
			}
		}
		if child.dir == nil {
			return nil, "", nil, fmt.Errorf("memfs: %s: not a directory", path.String())
		}
		dir = child.dir
	}
	return dir, "", nil, nil
}

func (f *FileSystem) resolveSymlink(e *entry, depth int) (*entry, error) {
	if depth > 40 {
		return nil, fmt.Errorf("memfs: too many levels of symbolic links")
	}
	if e.symlink == nil {
		return e, nil
	}
	_, _, target, err := f.walk(e.symlink.target)
	if err != nil || target == nil {
		return nil, notExist(e.symlink.target)
	}
	return f.resolveSymlink(target, depth+1)
}

func notExist(path fs.Path) error {
	return fmt.Errorf("memfs: %s: no such file or directory", path.String())
}

func (f *FileSystem) lookup(path fs.Path) (*entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, _, e, err := f.walk(path)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, notExist(path)
	}
	return e, nil
}

// Canonicalize resolves a relative path against RootPath and checks that it
// exists. Symbolic links in the path are not resolved: the result is the
// absolute path as given, which may name a symlink.
func (f *FileSystem) Canonicalize(path fs.Path) (fs.Path, error) {
	abs := path
	if path.IsRelative() {
		abs = f.RootPath().Resolve(path)
	}
	if _, err := f.lookup(abs); err != nil {
		return fs.Path{}, err
	}
	return abs, nil
}

func (f *FileSystem) Metadata(path fs.Path) (fs.FileMetadata, error) {
	e, err := f.lookup(path)
	if err != nil {
		return fs.FileMetadata{}, err
	}
	return entryMetadata(e), nil
}

func entryMetadata(e *entry) fs.FileMetadata {
	switch {
	case e.file != nil:
		return fs.FileMetadata{
			IsRegularFile:  true,
			Size:           int64(len(e.file.data)),
			CreatedAt:      e.file.createdAt,
			LastModifiedAt: e.file.modifiedAt,
			LastAccessedAt: e.file.lastAccessedAt,
		}
	case e.dir != nil:
		return fs.FileMetadata{
			IsDirectory:    true,
			Size:           -1,
			CreatedAt:      e.dir.createdAt,
			LastModifiedAt: e.dir.modifiedAt,
			LastAccessedAt: e.dir.lastAccessedAt,
		}
	default:
		target := e.symlink.target
		return fs.FileMetadata{
			SymlinkTarget:  &target,
			Size:           -1,
			CreatedAt:      e.symlink.createdAt,
			LastModifiedAt: e.symlink.modifiedAt,
			LastAccessedAt: e.symlink.lastAccessedAt,
		}
	}
}

func (f *FileSystem) MetadataOrNil(path fs.Path) (*fs.FileMetadata, error) {
	e, err := f.lookup(path)
	if err != nil {
		return nil, nil
	}
	m := entryMetadata(e)
	return &m, nil
}

func (f *FileSystem) Exists(path fs.Path) (bool, error) {
	_, err := f.lookup(path)
	return err == nil, nil
}

func (f *FileSystem) List(dir fs.Path) ([]fs.Path, error) {
	e, err := f.lookup(dir)
	if err != nil {
		return nil, err
	}
	if e.dir == nil {
		return nil, fmt.Errorf("memfs: %s: not a directory", dir.String())
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]fs.Path, 0, len(e.dir.children))
	for _, child := range e.dir.children {
		out = append(out, dir.ResolveString(child.name))
	}
	return out, nil
}

func (f *FileSystem) ListOrNil(dir fs.Path) ([]fs.Path, error) {
	out, err := f.List(dir)
	if err != nil {
		return nil, nil
	}
	return out, nil
}

func (f *FileSystem) ListRecursively(dir fs.Path, followSymlinks bool) ([]fs.Path, error) {
	children, err := f.List(dir)
	if err != nil {
		return nil, err
	}
	var out []fs.Path
	for _, child := range children {
		out = append(out, child)
		e, err := f.lookup(child)
		if err != nil {
			continue
		}
		target := e
		if e.symlink != nil {
			if !followSymlinks {
				continue
			}
			target, err = f.resolveSymlink(e, 0)
			if err != nil {
				continue
			}
		}
		if target.dir != nil {
			nested, err := f.ListRecursively(child, followSymlinks)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
	}
	return out, nil
}

func (f *FileSystem) Source(path fs.Path) (okio.Source, error) {
	e, err := f.lookup(path)
	if err != nil {
		return nil, err
	}
	if e.symlink != nil {
		e, err = f.resolveSymlink(e, 0)
		if err != nil {
			return nil, err
		}
	}
	if e.file == nil {
		return nil, fmt.Errorf("memfs: %s: not a regular file", path.String())
	}
	f.mu.Lock()
	e.file.lastAccessedAt = f.clock()
	data := append([]byte(nil), e.file.data...)
	f.mu.Unlock()
	f.trackOpen(path)
	return &memSource{data: data, fsys: f, path: path, timeout: okio.NewTimeout()}, nil
}

func (f *FileSystem) Sink(path fs.Path, mustCreate bool) (okio.Sink, error) {
	parent, key, existing, err := f.walkLocked(path)
	if err != nil {
		return nil, err
	}
	if existing != nil && mustCreate {
		return nil, fmt.Errorf("memfs: %s: already exists", path.String())
	}
	now := f.clock()
	node := &fileNode{createdAt: now, modifiedAt: now, lastAccessedAt: now}
	parent.children[key] = &entry{name: path.Segments()[len(path.Segments())-1], file: node}
	f.trackOpen(path)
	return &memSink{fsys: f, node: node, path: path, timeout: okio.NewTimeout()}, nil
}

func (f *FileSystem) AppendingSink(path fs.Path, mustExist bool) (okio.Sink, error) {
	parent, key, existing, err := f.walkLocked(path)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		if mustExist {
			return nil, notExist(path)
		}
		now := f.clock()
		existing = &entry{name: path.Segments()[len(path.Segments())-1], file: &fileNode{createdAt: now, modifiedAt: now, lastAccessedAt: now}}
		parent.children[key] = existing
	}
	if existing.file == nil {
		return nil, fmt.Errorf("memfs: %s: not a regular file", path.String())
	}
	f.trackOpen(path)
	return &memSink{fsys: f, node: existing.file, path: path, initialData: append([]byte(nil), existing.file.data...), timeout: okio.NewTimeout()}, nil
}

// walkLocked is like walk but acquires the mutex for the walk itself; the
// mutex is released before walkLocked returns, so a caller's later tree edit
// is not covered by it.
func (f *FileSystem) walkLocked(path fs.Path) (*dirNode, string, *entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	segs := path.Segments()
	if len(segs) == 0 {
		return nil, "", nil, fmt.Errorf("memfs: cannot write to root")
	}
	return f.walk(path)
}

func (f *FileSystem) OpenReadOnly(path fs.Path) (fs.FileHandle, error) {
	e, err := f.lookup(path)
	if err != nil {
		return nil, err
	}
	if e.file == nil {
		return nil, fmt.Errorf("memfs: %s: not a regular file", path.String())
	}
	f.trackOpen(path)
	return &memHandle{fsys: f, node: e.file, path: path}, nil
}

func (f *FileSystem) OpenReadWrite(path fs.Path, mustCreate, mustExist bool) (fs.FileHandle, error) {
	parent, key, existing, err := f.walkLocked(path)
	if err != nil {
		return nil, err
	}
	if existing != nil && mustCreate {
		return nil, fmt.Errorf("memfs: %s: already exists", path.String())
	}
	if existing == nil {
		if mustExist {
			return nil, notExist(path)
		}
		now := f.clock()
		existing = &entry{name: path.Segments()[len(path.Segments())-1], file: &fileNode{createdAt: now, modifiedAt: now, lastAccessedAt: now}}
		f.mu.Lock()
		parent.children[key] = existing
		f.mu.Unlock()
	}
	if existing.file == nil {
		return nil, fmt.Errorf("memfs: %s: not a regular file", path.String())
	}
	f.trackOpen(path)
	return &memHandle{fsys: f, node: existing.file, path: path}, nil
}

func (f *FileSystem) CreateDirectory(dir fs.Path, mustCreate bool) error {
	parent, key, existing, err := f.walkLocked(dir)
	if err != nil {
		return err
	}
	if existing != nil {
		if mustCreate {
			return fmt.Errorf("memfs: %s: already exists", dir.String())
		}
		if existing.dir == nil {
			return fmt.Errorf("memfs: %s: not a directory", dir.String())
		}
		return nil
	}
	now := f.clock()
	f.mu.Lock()
	parent.children[key] = &entry{name: dir.Segments()[len(dir.Segments())-1], dir: &dirNode{children: map[string]*entry{}, createdAt: now, modifiedAt: now, lastAccessedAt: now}}
	f.mu.Unlock()
	return nil
}

func (f *FileSystem) CreateDirectories(dir fs.Path, mustCreate bool) error {
	segs := dir.Segments()
	cur := fs.Path{}
	if dir.IsAbsolute() {
		cur = f.RootPath()
	}
	for i, seg := range segs {
		cur = cur.ResolveString(seg)
		last := i == len(segs)-1
		if err := f.CreateDirectory(cur, last && mustCreate); err != nil {
			return err
		}
	}
	return nil
}

func (f *FileSystem) AtomicMove(source, target fs.Path) error {
	srcParent, srcKey, srcEntry, err := f.walkLocked(source)
	if err != nil {
		return err
	}
	if srcEntry == nil {
		return notExist(source)
	}
	dstParent, dstKey, _, err := f.walkLocked(target)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	srcEntry.name = target.Segments()[len(target.Segments())-1]
	dstParent.children[dstKey] = srcEntry
	delete(srcParent.children, srcKey)
	return nil
}

func (f *FileSystem) Copy(source, target fs.Path) error {
	return fs.CopyFile(f, source, target)
}

func (f *FileSystem) Delete(path fs.Path, mustExist bool) error {
	parent, key, e, err := f.walkLocked(path)
	if err != nil {
		return err
	}
	if e == nil {
		if mustExist {
			return notExist(path)
		}
		return nil
	}
	if e.dir != nil && len(e.dir.children) > 0 {
		return fmt.Errorf("memfs: %s: directory not empty", path.String())
	}
	f.mu.Lock()
	delete(parent.children, key)
	f.mu.Unlock()
	return nil
}

func (f *FileSystem) DeleteRecursively(path fs.Path, mustExist bool) error {
	e, err := f.lookup(path)
	if err != nil {
		if mustExist {
			return err
		}
		return nil
	}
	if e.dir != nil {
		children, _ := f.List(path)
		for _, child := range children {
			if err := f.DeleteRecursively(child, false); err != nil {
				return err
			}
		}
	}
	return f.Delete(path, mustExist)
}

func (f *FileSystem) CreateSymlink(source, target fs.Path) error {
	parent, key, existing, err := f.walkLocked(source)
	if err != nil {
		return err
	}
	if existing != nil {
		return fmt.Errorf("memfs: %s: already exists", source.String())
	}
	now := f.clock()
	f.mu.Lock()
	parent.children[key] = &entry{name: source.Segments()[len(source.Segments())-1], symlink: &symlinkNode{target: target, createdAt: now, modifiedAt: now, lastAccessedAt: now}}
	f.mu.Unlock()
	return nil
}

var _ fs.FileSystem = (*FileSystem)(nil)
