// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

import (
	"io"
	"os"
	"time"
)

// FileSource is a Source reading from an *os.File. Each call checks the
// configured Timeout before touching the file, the same deadline-before-
// syscall discipline the sibling transport layer uses around its
// readOnce/writeOnce retry loop, adapted here for a resource that blocks
// the calling goroutine directly rather than returning ErrWouldBlock.
type FileSource struct {
	f       *os.File
	timeout *Timeout
	closed  bool
}

// NewFileSource wraps f.
func NewFileSource(f *os.File) *FileSource {
	return &FileSource{f: f, timeout: NewTimeout()}
}

func (s *FileSource) ReadAtMost(sink *Buffer, byteCount int64) (int64, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if byteCount < 0 {
		return 0, ErrInvalidArgument
	}
	if byteCount == 0 {
		return 0, nil
	}
	if err := s.timeout.ThrowIfReached(time.Now()); err != nil {
		return 0, err
	}
	seg := sink.writableSegment(1)
	maxRead := min(int(byteCount), SegmentSize-seg.limit)
	n, err := s.f.Read(seg.data[seg.limit : seg.limit+maxRead])
	if n > 0 {
		seg.limit += n
		sink.size += int64(n)
	}
	if err != nil {
		if err == io.EOF {
			if n == 0 {
				return -1, nil
			}
			return int64(n), nil
		}
		return int64(n), err
	}
	if n == 0 {
		return -1, nil
	}
	return int64(n), nil
}

func (s *FileSource) Timeout() *Timeout { return s.timeout }

func (s *FileSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}

var _ Source = (*FileSource)(nil)

// FileSink is a Sink writing to an *os.File.
type FileSink struct {
	f       *os.File
	timeout *Timeout
	closed  bool
}

// NewFileSink wraps f.
func NewFileSink(f *os.File) *FileSink {
	return &FileSink{f: f, timeout: NewTimeout()}
}

func (s *FileSink) WriteExactly(source *Buffer, byteCount int64) error {
	if s.closed {
		return ErrClosed
	}
	if byteCount < 0 || byteCount > source.size {
		return ErrInvalidArgument
	}
	start := time.Now()
	for byteCount > 0 {
		if err := s.timeout.ThrowIfReached(start); err != nil {
			return err
		}
		seg := source.head
		n := min(seg.len(), int(byteCount))
		written, err := s.f.Write(seg.data[seg.pos : seg.pos+n])
		if written > 0 {
			seg.pos += written
			source.size -= int64(written)
			byteCount -= int64(written)
			if seg.pos == seg.limit {
				source.popHead()
			}
		}
		if err != nil {
			return err
		}
		if written == 0 {
			return io.ErrShortWrite
		}
	}
	return nil
}

func (s *FileSink) Flush() error { return s.f.Sync() }

func (s *FileSink) Timeout() *Timeout { return s.timeout }

func (s *FileSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.f.Close()
}

var _ Sink = (*FileSink)(nil)

// ForwardingSource delegates every call to an underlying Source, letting a
// decorator override only the methods it cares about by embedding this and
// shadowing them.
type ForwardingSource struct {
	delegate Source
}

// NewForwardingSource wraps delegate.
func NewForwardingSource(delegate Source) *ForwardingSource {
	return &ForwardingSource{delegate: delegate}
}

// Delegate returns the wrapped Source.
func (f *ForwardingSource) Delegate() Source { return f.delegate }

func (f *ForwardingSource) ReadAtMost(sink *Buffer, byteCount int64) (int64, error) {
	return f.delegate.ReadAtMost(sink, byteCount)
}
func (f *ForwardingSource) Timeout() *Timeout { return f.delegate.Timeout() }
func (f *ForwardingSource) Close() error      { return f.delegate.Close() }

var _ Source = (*ForwardingSource)(nil)

// ForwardingSink delegates every call to an underlying Sink.
type ForwardingSink struct {
	delegate Sink
}

// NewForwardingSink wraps delegate.
func NewForwardingSink(delegate Sink) *ForwardingSink {
	return &ForwardingSink{delegate: delegate}
}

// Delegate returns the wrapped Sink.
func (f *ForwardingSink) Delegate() Sink { return f.delegate }

func (f *ForwardingSink) WriteExactly(source *Buffer, byteCount int64) error {
	return f.delegate.WriteExactly(source, byteCount)
}
func (f *ForwardingSink) Flush() error      { return f.delegate.Flush() }
func (f *ForwardingSink) Timeout() *Timeout { return f.delegate.Timeout() }
func (f *ForwardingSink) Close() error      { return f.delegate.Close() }

var _ Sink = (*ForwardingSink)(nil)

// blackholeSink discards everything written to it.
type blackholeSink struct{}

func (blackholeSink) WriteExactly(source *Buffer, byteCount int64) error {
	if byteCount < 0 || byteCount > source.size {
		return ErrInvalidArgument
	}
	return source.Skip(byteCount)
}
func (blackholeSink) Flush() error      { return nil }
func (blackholeSink) Timeout() *Timeout { return TimeoutNone }
func (blackholeSink) Close() error      { return nil }

// Blackhole is a Sink that discards everything written to it.
var Blackhole Sink = blackholeSink{}
