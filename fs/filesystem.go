// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fs

import (
	"time"

	"code.hybscloud.com/okio"
)

// FileMetadata describes a file system entry (spec §4.11). Fields whose
// value is unknown for a given FileSystem/entry are left at their zero
// value; Size is -1, specifically, when unknown, since 0 is a valid size.
type FileMetadata struct {
	IsRegularFile bool
	IsDirectory   bool
	// SymlinkTarget is non-nil when the entry is a symbolic link, holding
	// the target it points to (resolved or not, depending on the backing
	// FileSystem).
	SymlinkTarget *Path

	Size int64

	CreatedAt      time.Time
	LastModifiedAt time.Time
	LastAccessedAt time.Time

	// Extra carries backend-specific metadata (e.g. POSIX permission
	// bits) that doesn't fit the portable fields above.
	Extra map[string]any
}

// FileHandle is a random-access view of an open file, for callers that need
// more than the sequential Source/Sink a FileSystem hands out by default.
type FileHandle interface {
	// Size returns the file's current size.
	Size() (int64, error)
	// Resize truncates or extends the file to exactly size bytes.
	Resize(size int64) error
	// ReadAt reads into buf starting at fileOffset, like io.ReaderAt.
	ReadAt(buf []byte, fileOffset int64) (int, error)
	// WriteAt writes buf starting at fileOffset, like io.WriterAt.
	WriteAt(buf []byte, fileOffset int64) (int, error)
	// Source returns a Source reading sequentially starting at fileOffset.
	Source(fileOffset int64) (okio.Source, error)
	// Sink returns a Sink writing sequentially starting at fileOffset.
	Sink(fileOffset int64) (okio.Sink, error)
	// Flush pushes any OS-buffered writes to stable storage.
	Flush() error
	// Close releases the handle. Idempotent.
	Close() error
}

// FileSystem is a portable interface to a tree of files and directories
// (spec §4.11). SystemFileSystem implements it against the local OS; the
// memfs subpackage implements it entirely in memory for tests.
type FileSystem interface {
	// Canonicalize resolves path to its absolute, symlink-free form.
	Canonicalize(path Path) (Path, error)

	// Metadata returns metadata for path, failing if it does not exist.
	Metadata(path Path) (FileMetadata, error)
	// MetadataOrNil is like Metadata but returns (nil, nil) if path does
	// not exist, instead of an error.
	MetadataOrNil(path Path) (*FileMetadata, error)
	// Exists reports whether path names an existing entry.
	Exists(path Path) (bool, error)

	// List returns the immediate children of the directory at dir.
	List(dir Path) ([]Path, error)
	// ListOrNil is like List but returns (nil, nil) if dir does not exist.
	ListOrNil(dir Path) ([]Path, error)
	// ListRecursively returns every descendant of dir, depth-first.
	// followSymlinks controls whether symlinked subdirectories are
	// descended into.
	ListRecursively(dir Path, followSymlinks bool) ([]Path, error)

	// Source opens path for sequential reading.
	Source(path Path) (okio.Source, error)
	// Sink opens path for sequential writing, truncating any existing
	// content. If mustCreate is true, fails if path already exists.
	Sink(path Path, mustCreate bool) (okio.Sink, error)
	// AppendingSink opens path for sequential writing starting at its
	// current end. If mustExist is true, fails if path does not exist.
	AppendingSink(path Path, mustExist bool) (okio.Sink, error)

	// OpenReadOnly opens path for random access reading.
	OpenReadOnly(path Path) (FileHandle, error)
	// OpenReadWrite opens path for random access reading and writing.
	OpenReadWrite(path Path, mustCreate, mustExist bool) (FileHandle, error)

	// CreateDirectory creates dir. If mustCreate is true, fails if dir
	// already exists; otherwise an existing directory is not an error.
	CreateDirectory(dir Path, mustCreate bool) error
	// CreateDirectories is like CreateDirectory but also creates any
	// missing parent directories.
	CreateDirectories(dir Path, mustCreate bool) error

	// AtomicMove renames source to target, replacing target if it exists
	// and the backing file system supports atomic replacement.
	AtomicMove(source, target Path) error
	// Copy copies the content of source to target.
	Copy(source, target Path) error

	// Delete removes path. If mustExist is true, fails if path does not
	// exist. Fails if path is a non-empty directory.
	Delete(path Path, mustExist bool) error
	// DeleteRecursively removes path and, if it is a directory, every
	// descendant.
	DeleteRecursively(path Path, mustExist bool) error

	// CreateSymlink creates a symbolic link at source pointing to target.
	CreateSymlink(source, target Path) error
}

// CopyFile is a FileSystem-agnostic implementation of Copy built from
// Source/Sink, usable by any FileSystem whose backend has no
// cheaper native copy primitive.
func CopyFile(fsys FileSystem, source, target Path) error {
	src, err := fsys.Source(source)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := fsys.Sink(target, false)
	if err != nil {
		return err
	}

	buf := &okio.Buffer{}
	for {
		n, rerr := src.ReadAtMost(buf, okio.SegmentSize)
		if n > 0 {
			if werr := dst.WriteExactly(buf, n); werr != nil {
				_ = dst.Close()
				return werr
			}
		}
		if rerr != nil {
			_ = dst.Close()
			return rerr
		}
		if n == -1 {
			break
		}
	}
	return dst.Close()
}

// PathHook transforms a path flowing into or out of a forwarded operation.
// functionName names the FileSystem method doing the forwarding (e.g.
// "Source", "List"), so one hook can special-case a handful of operations.
type PathHook func(path Path, functionName string) (Path, error)

func identityPathHook(path Path, _ string) (Path, error) { return path, nil }

// ForwardingFileSystemOption configures a ForwardingFileSystem.
type ForwardingFileSystemOption func(*ForwardingFileSystem)

// WithOnPathParameter sets the hook run on every path argument before it is
// passed to the delegate (e.g. rooting a relative path inside a jail).
func WithOnPathParameter(hook PathHook) ForwardingFileSystemOption {
	return func(f *ForwardingFileSystem) { f.onPathParameter = hook }
}

// WithOnPathResult sets the hook run on every path the delegate hands back
// (e.g. stripping a jail's root prefix back off before it reaches the
// caller).
func WithOnPathResult(hook PathHook) ForwardingFileSystemOption {
	return func(f *ForwardingFileSystem) { f.onPathResult = hook }
}

// ForwardingFileSystem decorates another FileSystem, forwarding every
// operation through two overridable hooks: onPathParameter transforms each
// path argument before it reaches the delegate, onPathResult transforms
// each path the delegate returns before it reaches the caller. This is the
// composition primitive a chroot or jail view is built from: root every
// parameter under a prefix, strip that prefix back off every result.
//
// A caller that only needs to observe or veto calls (access logging,
// read-only enforcement) can leave both hooks as the identity and rely on
// embedding FileSystem directly instead; this type exists specifically for
// the path-translation case, where embedding alone would require
// reimplementing every method.
type ForwardingFileSystem struct {
	FileSystem
	onPathParameter PathHook
	onPathResult    PathHook
}

// NewForwardingFileSystem wraps delegate. With no options, every path
// passes through unchanged and this behaves like a plain forwarding
// decorator.
func NewForwardingFileSystem(delegate FileSystem, opts ...ForwardingFileSystemOption) *ForwardingFileSystem {
	f := &ForwardingFileSystem{
		FileSystem:      delegate,
		onPathParameter: identityPathHook,
		onPathResult:    identityPathHook,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *ForwardingFileSystem) param(path Path, functionName string) (Path, error) {
	return f.onPathParameter(path, functionName)
}

func (f *ForwardingFileSystem) result(path Path, functionName string) (Path, error) {
	return f.onPathResult(path, functionName)
}

func (f *ForwardingFileSystem) resultList(paths []Path, functionName string) ([]Path, error) {
	out := make([]Path, len(paths))
	for i, p := range paths {
		rp, err := f.result(p, functionName)
		if err != nil {
			return nil, err
		}
		out[i] = rp
	}
	return out, nil
}

// resultMetadata applies onPathResult to a SymlinkTarget, if any, since it
// is the one embedded Path a FileMetadata can carry.
func (f *ForwardingFileSystem) resultMetadata(md FileMetadata, functionName string) (FileMetadata, error) {
	if md.SymlinkTarget == nil {
		return md, nil
	}
	target, err := f.result(*md.SymlinkTarget, functionName)
	if err != nil {
		return FileMetadata{}, err
	}
	md.SymlinkTarget = &target
	return md, nil
}

func (f *ForwardingFileSystem) Canonicalize(path Path) (Path, error) {
	p, err := f.param(path, "Canonicalize")
	if err != nil {
		return Path{}, err
	}
	r, err := f.FileSystem.Canonicalize(p)
	if err != nil {
		return Path{}, err
	}
	return f.result(r, "Canonicalize")
}

func (f *ForwardingFileSystem) Metadata(path Path) (FileMetadata, error) {
	p, err := f.param(path, "Metadata")
	if err != nil {
		return FileMetadata{}, err
	}
	md, err := f.FileSystem.Metadata(p)
	if err != nil {
		return FileMetadata{}, err
	}
	return f.resultMetadata(md, "Metadata")
}

func (f *ForwardingFileSystem) MetadataOrNil(path Path) (*FileMetadata, error) {
	p, err := f.param(path, "MetadataOrNil")
	if err != nil {
		return nil, err
	}
	md, err := f.FileSystem.MetadataOrNil(p)
	if err != nil || md == nil {
		return nil, err
	}
	resolved, err := f.resultMetadata(*md, "MetadataOrNil")
	if err != nil {
		return nil, err
	}
	return &resolved, nil
}

func (f *ForwardingFileSystem) Exists(path Path) (bool, error) {
	p, err := f.param(path, "Exists")
	if err != nil {
		return false, err
	}
	return f.FileSystem.Exists(p)
}

func (f *ForwardingFileSystem) List(dir Path) ([]Path, error) {
	p, err := f.param(dir, "List")
	if err != nil {
		return nil, err
	}
	paths, err := f.FileSystem.List(p)
	if err != nil {
		return nil, err
	}
	return f.resultList(paths, "List")
}

func (f *ForwardingFileSystem) ListOrNil(dir Path) ([]Path, error) {
	p, err := f.param(dir, "ListOrNil")
	if err != nil {
		return nil, err
	}
	paths, err := f.FileSystem.ListOrNil(p)
	if err != nil || paths == nil {
		return nil, err
	}
	return f.resultList(paths, "ListOrNil")
}

func (f *ForwardingFileSystem) ListRecursively(dir Path, followSymlinks bool) ([]Path, error) {
	p, err := f.param(dir, "ListRecursively")
	if err != nil {
		return nil, err
	}
	paths, err := f.FileSystem.ListRecursively(p, followSymlinks)
	if err != nil {
		return nil, err
	}
	return f.resultList(paths, "ListRecursively")
}

func (f *ForwardingFileSystem) Source(path Path) (okio.Source, error) {
	p, err := f.param(path, "Source")
	if err != nil {
		return nil, err
	}
	return f.FileSystem.Source(p)
}

func (f *ForwardingFileSystem) Sink(path Path, mustCreate bool) (okio.Sink, error) {
	p, err := f.param(path, "Sink")
	if err != nil {
		return nil, err
	}
	return f.FileSystem.Sink(p, mustCreate)
}

func (f *ForwardingFileSystem) AppendingSink(path Path, mustExist bool) (okio.Sink, error) {
	p, err := f.param(path, "AppendingSink")
	if err != nil {
		return nil, err
	}
	return f.FileSystem.AppendingSink(p, mustExist)
}

func (f *ForwardingFileSystem) OpenReadOnly(path Path) (FileHandle, error) {
	p, err := f.param(path, "OpenReadOnly")
	if err != nil {
		return nil, err
	}
	return f.FileSystem.OpenReadOnly(p)
}

func (f *ForwardingFileSystem) OpenReadWrite(path Path, mustCreate, mustExist bool) (FileHandle, error) {
	p, err := f.param(path, "OpenReadWrite")
	if err != nil {
		return nil, err
	}
	return f.FileSystem.OpenReadWrite(p, mustCreate, mustExist)
}

func (f *ForwardingFileSystem) CreateDirectory(dir Path, mustCreate bool) error {
	p, err := f.param(dir, "CreateDirectory")
	if err != nil {
		return err
	}
	return f.FileSystem.CreateDirectory(p, mustCreate)
}

func (f *ForwardingFileSystem) CreateDirectories(dir Path, mustCreate bool) error {
	p, err := f.param(dir, "CreateDirectories")
	if err != nil {
		return err
	}
	return f.FileSystem.CreateDirectories(p, mustCreate)
}

func (f *ForwardingFileSystem) AtomicMove(source, target Path) error {
	sp, err := f.param(source, "AtomicMove")
	if err != nil {
		return err
	}
	tp, err := f.param(target, "AtomicMove")
	if err != nil {
		return err
	}
	return f.FileSystem.AtomicMove(sp, tp)
}

func (f *ForwardingFileSystem) Copy(source, target Path) error {
	sp, err := f.param(source, "Copy")
	if err != nil {
		return err
	}
	tp, err := f.param(target, "Copy")
	if err != nil {
		return err
	}
	return f.FileSystem.Copy(sp, tp)
}

func (f *ForwardingFileSystem) Delete(path Path, mustExist bool) error {
	p, err := f.param(path, "Delete")
	if err != nil {
		return err
	}
	return f.FileSystem.Delete(p, mustExist)
}

func (f *ForwardingFileSystem) DeleteRecursively(path Path, mustExist bool) error {
	p, err := f.param(path, "DeleteRecursively")
	if err != nil {
		return err
	}
	return f.FileSystem.DeleteRecursively(p, mustExist)
}

func (f *ForwardingFileSystem) CreateSymlink(source, target Path) error {
	sp, err := f.param(source, "CreateSymlink")
	if err != nil {
		return err
	}
	tp, err := f.param(target, "CreateSymlink")
	if err != nil {
		return err
	}
	return f.FileSystem.CreateSymlink(sp, tp)
}

var _ FileSystem = (*ForwardingFileSystem)(nil)
