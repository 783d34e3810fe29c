// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package memfs

import (
	"code.hybscloud.com/okio"
	"code.hybscloud.com/okio/fs"
)

// memSource streams a snapshot of a fileNode's data taken at open time, so
// that concurrent writers never tear a read in progress.
type memSource struct {
	data    []byte
	pos     int
	fsys    *FileSystem
	path    fs.Path
	timeout *okio.Timeout
	closed  bool
}

func (s *memSource) ReadAtMost(sink *okio.Buffer, byteCount int64) (int64, error) {
	if byteCount < 0 {
		return 0, okio.ErrInvalidArgument
	}
	if s.pos >= len(s.data) {
		return -1, nil
	}
	n := int64(len(s.data) - s.pos)
	if n > byteCount {
		n = byteCount
	}
	sink.Write(s.data[s.pos : s.pos+int(n)])
	s.pos += int(n)
	return n, nil
}

func (s *memSource) Timeout() *okio.Timeout { return s.timeout }

func (s *memSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.fsys.trackClose(s.path)
	return nil
}

var _ okio.Source = (*memSource)(nil)

// memSink buffers writes in memory and commits them to its fileNode on each
// Flush (and on Close). initialData is the node's content at the moment the
// sink was opened (non-empty for an appending sink); committing always
// recomputes node.data as initialData+buffered rather than appending the
// buffered delta again, so repeated Flush calls before Close do not
// duplicate content.
type memSink struct {
	fsys        *FileSystem
	node        *fileNode
	path        fs.Path
	buf         okio.Buffer
	initialData []byte
	timeout     *okio.Timeout
	closed      bool
}

func (s *memSink) WriteExactly(source *okio.Buffer, byteCount int64) error {
	return source.WriteExactly(&s.buf, byteCount)
}

func (s *memSink) Flush() error {
	committed := s.buf.Snapshot().Bytes()
	data := make([]byte, 0, len(s.initialData)+len(committed))
	data = append(data, s.initialData...)
	data = append(data, committed...)
	s.fsys.mu.Lock()
	s.node.data = data
	s.node.modifiedAt = s.fsys.clock()
	s.fsys.mu.Unlock()
	return nil
}

func (s *memSink) Timeout() *okio.Timeout {
	if s.timeout == nil {
		s.timeout = okio.NewTimeout()
	}
	return s.timeout
}

func (s *memSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	err := s.Flush()
	s.fsys.trackClose(s.path)
	return err
}

var _ okio.Sink = (*memSink)(nil)

// memHandle is a random-access FileHandle over a fileNode.
type memHandle struct {
	fsys   *FileSystem
	node   *fileNode
	path   fs.Path
	closed bool
}

func (h *memHandle) Size() (int64, error) {
	h.fsys.mu.Lock()
	defer h.fsys.mu.Unlock()
	return int64(len(h.node.data)), nil
}

func (h *memHandle) Resize(size int64) error {
	h.fsys.mu.Lock()
	defer h.fsys.mu.Unlock()
	switch {
	case size < int64(len(h.node.data)):
		h.node.data = h.node.data[:size]
	case size > int64(len(h.node.data)):
		grown := make([]byte, size)
		copy(grown, h.node.data)
		h.node.data = grown
	}
	h.node.modifiedAt = h.fsys.clock()
	return nil
}

func (h *memHandle) ReadAt(buf []byte, fileOffset int64) (int, error) {
	h.fsys.mu.Lock()
	defer h.fsys.mu.Unlock()
	if fileOffset >= int64(len(h.node.data)) {
		return 0, okio.ErrPrematureEndOfInput
	}
	n := copy(buf, h.node.data[fileOffset:])
	h.node.lastAccessedAt = h.fsys.clock()
	return n, nil
}

func (h *memHandle) WriteAt(buf []byte, fileOffset int64) (int, error) {
	h.fsys.mu.Lock()
	defer h.fsys.mu.Unlock()
	end := fileOffset + int64(len(buf))
	if end > int64(len(h.node.data)) {
		grown := make([]byte, end)
		copy(grown, h.node.data)
		h.node.data = grown
	}
	n := copy(h.node.data[fileOffset:end], buf)
	h.node.modifiedAt = h.fsys.clock()
	return n, nil
}

func (h *memHandle) Source(fileOffset int64) (okio.Source, error) {
	h.fsys.mu.Lock()
	data := append([]byte(nil), h.node.data...)
	h.fsys.mu.Unlock()
	if fileOffset > int64(len(data)) {
		fileOffset = int64(len(data))
	}
	return &memSource{data: data, pos: int(fileOffset), fsys: h.fsys, path: h.path, timeout: okio.NewTimeout()}, nil
}

func (h *memHandle) Sink(fileOffset int64) (okio.Sink, error) {
	h.fsys.mu.Lock()
	prefix := append([]byte(nil), h.node.data[:min64(fileOffset, int64(len(h.node.data)))]...)
	h.fsys.mu.Unlock()
	return &memSink{fsys: h.fsys, node: h.node, path: h.path, initialData: prefix, timeout: okio.NewTimeout()}, nil
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func (h *memHandle) Flush() error { return nil }

func (h *memHandle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	h.fsys.trackClose(h.path)
	return nil
}

var _ fs.FileHandle = (*memHandle)(nil)
