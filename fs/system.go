// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fs

import (
	"io"
	"os"
	"path/filepath"

	"code.hybscloud.com/okio"
)

// SystemFileSystem implements FileSystem against the local operating
// system, using only the portable os/io/fs/path-filepath standard library
// (native backends like FUSE or WASI are out of scope). It is the default,
// concrete FileSystem a program reaches for; memfs.New is the one used in
// tests.
type SystemFileSystem struct{}

// System is the shared SystemFileSystem instance.
var System FileSystem = SystemFileSystem{}

func (SystemFileSystem) Canonicalize(path Path) (Path, error) {
	abs, err := filepath.Abs(path.String())
	if err != nil {
		return Path{}, err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return Path{}, err
	}
	return Of(resolved), nil
}

func (SystemFileSystem) Metadata(path Path) (FileMetadata, error) {
	info, err := os.Lstat(path.String())
	if err != nil {
		return FileMetadata{}, err
	}
	return metadataFromInfo(path, info), nil
}

func metadataFromInfo(path Path, info os.FileInfo) FileMetadata {
	m := FileMetadata{
		IsRegularFile:  info.Mode().IsRegular(),
		IsDirectory:    info.IsDir(),
		Size:           info.Size(),
		LastModifiedAt: info.ModTime(),
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if target, err := os.Readlink(path.String()); err == nil {
			p := Of(target)
			m.SymlinkTarget = &p
		}
	}
	return m
}

func (s SystemFileSystem) MetadataOrNil(path Path) (*FileMetadata, error) {
	m, err := s.Metadata(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (SystemFileSystem) Exists(path Path) (bool, error) {
	_, err := os.Lstat(path.String())
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (SystemFileSystem) List(dir Path) ([]Path, error) {
	entries, err := os.ReadDir(dir.String())
	if err != nil {
		return nil, err
	}
	out := make([]Path, 0, len(entries))
	for _, e := range entries {
		out = append(out, dir.ResolveString(e.Name()))
	}
	return out, nil
}

func (s SystemFileSystem) ListOrNil(dir Path) ([]Path, error) {
	out, err := s.List(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return out, nil
}

func (s SystemFileSystem) ListRecursively(dir Path, followSymlinks bool) ([]Path, error) {
	children, err := s.List(dir)
	if err != nil {
		return nil, err
	}
	var out []Path
	for _, child := range children {
		out = append(out, child)
		info, err := os.Lstat(child.String())
		if err != nil {
			continue
		}
		isDir := info.IsDir()
		if !isDir && info.Mode()&os.ModeSymlink != 0 && followSymlinks {
			if target, terr := os.Stat(child.String()); terr == nil && target.IsDir() {
				isDir = true
			}
		}
		if isDir {
			nested, err := s.ListRecursively(child, followSymlinks)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
		}
	}
	return out, nil
}

func (SystemFileSystem) Source(path Path) (okio.Source, error) {
	f, err := os.Open(path.String())
	if err != nil {
		return nil, err
	}
	return okio.NewFileSource(f), nil
}

func (SystemFileSystem) Sink(path Path, mustCreate bool) (okio.Sink, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if mustCreate {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path.String(), flags, 0o666)
	if err != nil {
		return nil, err
	}
	return okio.NewFileSink(f), nil
}

func (s SystemFileSystem) AppendingSink(path Path, mustExist bool) (okio.Sink, error) {
	if mustExist {
		ok, err := s.Exists(path)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, os.ErrNotExist
		}
	}
	f, err := os.OpenFile(path.String(), os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o666)
	if err != nil {
		return nil, err
	}
	return okio.NewFileSink(f), nil
}

func (SystemFileSystem) OpenReadOnly(path Path) (FileHandle, error) {
	f, err := os.Open(path.String())
	if err != nil {
		return nil, err
	}
	return &osFileHandle{f: f}, nil
}

func (SystemFileSystem) OpenReadWrite(path Path, mustCreate, mustExist bool) (FileHandle, error) {
	flags := os.O_RDWR
	switch {
	case mustCreate:
		flags |= os.O_CREATE | os.O_EXCL
	case !mustExist:
		flags |= os.O_CREATE
	}
	f, err := os.OpenFile(path.String(), flags, 0o666)
	if err != nil {
		return nil, err
	}
	return &osFileHandle{f: f}, nil
}

func (SystemFileSystem) CreateDirectory(dir Path, mustCreate bool) error {
	err := os.Mkdir(dir.String(), 0o777)
	if err != nil {
		if os.IsExist(err) && !mustCreate {
			return nil
		}
		return err
	}
	return nil
}

func (s SystemFileSystem) CreateDirectories(dir Path, mustCreate bool) error {
	if ok, _ := s.Exists(dir); ok {
		if mustCreate {
			return os.ErrExist
		}
		return nil
	}
	return os.MkdirAll(dir.String(), 0o777)
}

func (SystemFileSystem) AtomicMove(source, target Path) error {
	return os.Rename(source.String(), target.String())
}

func (s SystemFileSystem) Copy(source, target Path) error {
	return CopyFile(s, source, target)
}

func (SystemFileSystem) Delete(path Path, mustExist bool) error {
	err := os.Remove(path.String())
	if err != nil {
		if os.IsNotExist(err) && !mustExist {
			return nil
		}
		return err
	}
	return nil
}

func (s SystemFileSystem) DeleteRecursively(path Path, mustExist bool) error {
	ok, _ := s.Exists(path)
	if !ok {
		if mustExist {
			return os.ErrNotExist
		}
		return nil
	}
	return os.RemoveAll(path.String())
}

func (SystemFileSystem) CreateSymlink(source, target Path) error {
	return os.Symlink(target.String(), source.String())
}

var _ FileSystem = SystemFileSystem{}

// osFileHandle adapts *os.File to FileHandle.
type osFileHandle struct {
	f *os.File
}

func (h *osFileHandle) Size() (int64, error) {
	info, err := h.f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (h *osFileHandle) Resize(size int64) error { return h.f.Truncate(size) }

func (h *osFileHandle) ReadAt(buf []byte, fileOffset int64) (int, error) {
	return h.f.ReadAt(buf, fileOffset)
}

func (h *osFileHandle) WriteAt(buf []byte, fileOffset int64) (int, error) {
	return h.f.WriteAt(buf, fileOffset)
}

func (h *osFileHandle) Source(fileOffset int64) (okio.Source, error) {
	if _, err := h.f.Seek(fileOffset, io.SeekStart); err != nil {
		return nil, err
	}
	return okio.NewFileSource(h.f), nil
}

func (h *osFileHandle) Sink(fileOffset int64) (okio.Sink, error) {
	if _, err := h.f.Seek(fileOffset, io.SeekStart); err != nil {
		return nil, err
	}
	return okio.NewFileSink(h.f), nil
}

func (h *osFileHandle) Flush() error { return h.f.Sync() }
func (h *osFileHandle) Close() error { return h.f.Close() }

var _ FileHandle = (*osFileHandle)(nil)
