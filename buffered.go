// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

import (
	"errors"
	"io"
)

// BufferedSource wraps a Source with a Buffer and typed read operations
// that pull only as many bytes as each operation needs (spec §4.4).
//
// BufferedSource itself implements Source (so it can be chained, e.g. into
// a HashingSource) as well as io.Reader/io.ByteReader for stdlib interop.
type BufferedSource struct {
	source Source
	buf    Buffer
	closed bool
}

// NewBufferedSource wraps source.
func NewBufferedSource(source Source) *BufferedSource {
	return &BufferedSource{source: source}
}

// Buffer exposes the underlying Buffer for direct, unbuffered-cost access.
func (s *BufferedSource) Buffer() *Buffer { return &s.buf }

// Request pulls from the underlying source until at least byteCount bytes
// are buffered, or the source is exhausted. Returns false (not an error) if
// the source ran out first.
func (s *BufferedSource) Request(byteCount int64) (bool, error) {
	if s.closed {
		return false, ErrClosed
	}
	if byteCount < 0 {
		return false, ErrInvalidArgument
	}
	for s.buf.size < byteCount {
		n, err := s.source.ReadAtMost(&s.buf, SegmentSize)
		if err != nil {
			return false, err
		}
		if n == -1 {
			return false, nil
		}
	}
	return true, nil
}

// Require is like Request but fails with ErrPrematureEndOfInput instead of
// returning false.
func (s *BufferedSource) Require(byteCount int64) error {
	ok, err := s.Request(byteCount)
	if err != nil {
		return err
	}
	if !ok {
		return ErrPrematureEndOfInput
	}
	return nil
}

// Exhausted reports whether the source has no more bytes at all.
func (s *BufferedSource) Exhausted() (bool, error) {
	ok, err := s.Request(1)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (s *BufferedSource) ReadByte() (byte, error) {
	if err := s.Require(1); err != nil {
		return 0, err
	}
	return s.buf.ReadByte()
}

func (s *BufferedSource) ReadShort() (int16, error) {
	if err := s.Require(2); err != nil {
		return 0, err
	}
	return s.buf.ReadShort()
}

func (s *BufferedSource) ReadShortLe() (int16, error) {
	if err := s.Require(2); err != nil {
		return 0, err
	}
	return s.buf.ReadShortLe()
}

func (s *BufferedSource) ReadInt() (int32, error) {
	if err := s.Require(4); err != nil {
		return 0, err
	}
	return s.buf.ReadInt()
}

func (s *BufferedSource) ReadIntLe() (int32, error) {
	if err := s.Require(4); err != nil {
		return 0, err
	}
	return s.buf.ReadIntLe()
}

func (s *BufferedSource) ReadLong() (int64, error) {
	if err := s.Require(8); err != nil {
		return 0, err
	}
	return s.buf.ReadLong()
}

func (s *BufferedSource) ReadLongLe() (int64, error) {
	if err := s.Require(8); err != nil {
		return 0, err
	}
	return s.buf.ReadLongLe()
}

// ReadUTF8 decodes exactly byteCount bytes, pulling more from source first
// if necessary.
func (s *BufferedSource) ReadUTF8(byteCount int64) (string, error) {
	if err := s.Require(byteCount); err != nil {
		return "", err
	}
	return s.buf.ReadUTF8(byteCount)
}

// ReadUTF8All reads the source to exhaustion and decodes it as UTF-8.
func (s *BufferedSource) ReadUTF8All() (string, error) {
	for {
		n, err := s.source.ReadAtMost(&s.buf, SegmentSize)
		if err != nil {
			return "", err
		}
		if n == -1 {
			break
		}
	}
	return s.buf.ReadUTF8All()
}

// ReadByteString consumes exactly byteCount bytes and returns them as a
// ByteString, sharing segments rather than copying.
func (s *BufferedSource) ReadByteString(byteCount int64) (ByteString, error) {
	if err := s.Require(byteCount); err != nil {
		return ByteString{}, err
	}
	bs := s.buf.SnapshotN(byteCount)
	_ = s.buf.Skip(byteCount)
	return bs, nil
}

// ReadUTF8Line reads up to and including the next line terminator,
// returning the line without it. Returns io.EOF once the source is fully
// exhausted with nothing left to return.
func (s *BufferedSource) ReadUTF8Line() (string, error) {
	for {
		idx := s.buf.IndexOfByte('\n', 0, s.buf.size)
		if idx != -1 {
			return s.buf.readLineUpTo(idx)
		}
		n, err := s.source.ReadAtMost(&s.buf, SegmentSize)
		if err != nil {
			return "", err
		}
		if n == -1 {
			if s.buf.size == 0 {
				return "", io.EOF
			}
			return s.buf.ReadUTF8(s.buf.size)
		}
	}
}

// ReadUTF8LineStrict is like ReadUTF8Line but requires a terminator within
// limit bytes.
func (s *BufferedSource) ReadUTF8LineStrict(limit int64) (string, error) {
	if limit < 0 {
		return "", ErrInvalidArgument
	}
	for {
		scanTo := min(limit, s.buf.size)
		idx := s.buf.IndexOfByte('\n', 0, scanTo)
		if idx != -1 {
			return s.buf.readLineUpTo(idx)
		}
		if s.buf.size > limit {
			return "", ErrPrematureEndOfInput
		}
		n, err := s.source.ReadAtMost(&s.buf, SegmentSize)
		if err != nil {
			return "", err
		}
		if n == -1 {
			return "", io.EOF
		}
	}
}

// ReadDecimalLong parses a signed decimal integer, pulling more input while
// the buffer ends in a digit and the source has more to give.
func (s *BufferedSource) ReadDecimalLong() (int64, error) {
	for i := int64(0); ; i++ {
		ok, err := s.Request(i + 1)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		c := s.buf.byteAt(i)
		if (c < '0' || c > '9') && !(i == 0 && c == '-') {
			break
		}
	}
	return s.buf.ReadDecimalLong()
}

// ReadHexadecimalUnsignedLong parses an unsigned hex integer, pulling more
// input while the buffer ends in a hex digit and the source has more to
// give.
func (s *BufferedSource) ReadHexadecimalUnsignedLong() (uint64, error) {
	for i := int64(0); ; i++ {
		ok, err := s.Request(i + 1)
		if err != nil {
			return 0, err
		}
		if !ok {
			break
		}
		c := s.buf.byteAt(i)
		if !(c >= '0' && c <= '9') && !(c >= 'a' && c <= 'f') && !(c >= 'A' && c <= 'F') {
			break
		}
	}
	return s.buf.ReadHexadecimalUnsignedLong()
}

// IndexOf returns the least index >= fromIndex of c, pulling more input as
// needed, or -1 if the source is exhausted first.
func (s *BufferedSource) IndexOf(c byte, fromIndex int64) (int64, error) {
	for {
		idx := s.buf.IndexOfByte(c, fromIndex, s.buf.size)
		if idx != -1 {
			return idx, nil
		}
		fromIndex = max(fromIndex, s.buf.size)
		n, err := s.source.ReadAtMost(&s.buf, SegmentSize)
		if err != nil {
			return -1, err
		}
		if n == -1 {
			return -1, nil
		}
	}
}

// IndexOfByteString is like IndexOf but searches for an occurrence of
// target.
func (s *BufferedSource) IndexOfByteString(target ByteString, fromIndex int64) (int64, error) {
	for {
		idx := s.buf.IndexOfByteString(target, fromIndex)
		if idx != -1 {
			return idx, nil
		}
		fromIndex = max(fromIndex, s.buf.size-int64(target.Size())+1)
		n, err := s.source.ReadAtMost(&s.buf, SegmentSize)
		if err != nil {
			return -1, err
		}
		if n == -1 {
			return -1, nil
		}
	}
}

// Select finds which (if any) candidate in options is a prefix of the
// upcoming bytes, consuming it on a match.
func (s *BufferedSource) Select(options *SelectOptions) (int, error) {
	var pullErr error
	peek := func(i int) (byte, bool) {
		for int64(i) >= s.buf.size {
			n, err := s.source.ReadAtMost(&s.buf, SegmentSize)
			if err != nil {
				pullErr = err
				return 0, false
			}
			if n == -1 {
				return 0, false
			}
		}
		return s.buf.byteAt(int64(i)), true
	}
	idx, matchedLen, found := options.match(peek)
	if pullErr != nil {
		return -1, pullErr
	}
	if !found {
		return -1, nil
	}
	_ = s.buf.Skip(int64(matchedLen))
	return idx, nil
}

// ReadAtMost implements Source: bytes already buffered are drained first,
// falling through to the underlying source only once the buffer is empty.
func (s *BufferedSource) ReadAtMost(sink *Buffer, byteCount int64) (int64, error) {
	if s.buf.size == 0 {
		return s.source.ReadAtMost(sink, byteCount)
	}
	n := min(byteCount, s.buf.size)
	return s.buf.ReadAtMost(sink, n)
}

// ReadAll drains everything buffered plus everything the source can still
// produce into sink.
func (s *BufferedSource) ReadAll(sink *Buffer) (int64, error) {
	var total int64
	if s.buf.size > 0 {
		n, _ := s.buf.ReadAtMost(sink, s.buf.size)
		total += n
	}
	for {
		n, err := s.source.ReadAtMost(sink, SegmentSize)
		if err != nil {
			return total, err
		}
		if n == -1 {
			return total, nil
		}
		total += n
	}
}

// Read implements io.Reader.
func (s *BufferedSource) Read(p []byte) (int, error) {
	if ok, err := s.Request(1); err != nil {
		return 0, err
	} else if !ok {
		return 0, io.EOF
	}
	return s.buf.Read(p)
}

// Peek returns an independent BufferedSource that sees the same upcoming
// bytes as s without consuming them from s: reading through the peek pulls
// from the same underlying source and mirrors newly-read bytes back into
// s's own buffer.
func (s *BufferedSource) Peek() *BufferedSource {
	return &BufferedSource{source: &peekSource{upstream: s}}
}

type peekSource struct {
	upstream *BufferedSource
	pos      int64
}

func (p *peekSource) ReadAtMost(sink *Buffer, byteCount int64) (int64, error) {
	up := p.upstream
	if p.pos >= up.buf.size {
		n, err := up.source.ReadAtMost(&up.buf, SegmentSize)
		if err != nil {
			return 0, err
		}
		if n == -1 {
			return -1, nil
		}
	}
	avail := up.buf.size - p.pos
	toCopy := min(avail, byteCount)
	if toCopy == 0 {
		return 0, nil
	}
	up.buf.copyRangeTo(sink, p.pos, toCopy)
	p.pos += toCopy
	return toCopy, nil
}

func (p *peekSource) Timeout() *Timeout { return p.upstream.source.Timeout() }
func (p *peekSource) Close() error      { return nil }

// Timeout returns the underlying source's timeout.
func (s *BufferedSource) Timeout() *Timeout { return s.source.Timeout() }

// Close closes the underlying source. Idempotent.
func (s *BufferedSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	return s.source.Close()
}

var _ Source = (*BufferedSource)(nil)

// BufferedSink wraps a Sink with a Buffer and typed write operations. Most
// writes call EmitCompleteSegments afterward so memory use stays bounded
// even under long sequences of small writes (spec §4.4).
type BufferedSink struct {
	sink   Sink
	buf    Buffer
	closed bool
}

// NewBufferedSink wraps sink.
func NewBufferedSink(sink Sink) *BufferedSink {
	return &BufferedSink{sink: sink}
}

// Buffer exposes the underlying Buffer for direct access.
func (s *BufferedSink) Buffer() *Buffer { return &s.buf }

func (s *BufferedSink) WriteByte(v byte) error {
	if s.closed {
		return ErrClosed
	}
	if err := s.buf.WriteByte(v); err != nil {
		return err
	}
	return s.EmitCompleteSegments()
}

func (s *BufferedSink) WriteShort(v int16) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteShort(v)
	return s.EmitCompleteSegments()
}

func (s *BufferedSink) WriteShortLe(v int16) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteShortLe(v)
	return s.EmitCompleteSegments()
}

func (s *BufferedSink) WriteInt(v int32) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteInt(v)
	return s.EmitCompleteSegments()
}

func (s *BufferedSink) WriteIntLe(v int32) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteIntLe(v)
	return s.EmitCompleteSegments()
}

func (s *BufferedSink) WriteLong(v int64) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteLong(v)
	return s.EmitCompleteSegments()
}

func (s *BufferedSink) WriteLongLe(v int64) error {
	if s.closed {
		return ErrClosed
	}
	s.buf.WriteLongLe(v)
	return s.EmitCompleteSegments()
}

// WriteUTF8 encodes and buffers s.
func (s *BufferedSink) WriteUTF8(str string) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	n, _ := s.buf.WriteUTF8(str)
	return n, s.EmitCompleteSegments()
}

// WriteUTF8CodePoint encodes and buffers a single code point.
func (s *BufferedSink) WriteUTF8CodePoint(r rune) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	n, _ := s.buf.WriteUTF8CodePoint(r)
	return n, s.EmitCompleteSegments()
}

// WriteByteString buffers the content of bs.
func (s *BufferedSink) WriteByteString(bs ByteString) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	n := bs.Size()
	s.buf.writeExact(bs.materialize())
	return n, s.EmitCompleteSegments()
}

// Write implements io.Writer.
func (s *BufferedSink) Write(p []byte) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	n, _ := s.buf.Write(p)
	if err := s.EmitCompleteSegments(); err != nil {
		return n, err
	}
	return n, nil
}

// WriteString implements io.StringWriter.
func (s *BufferedSink) WriteString(str string) (int, error) { return s.WriteUTF8(str) }

// EmitCompleteSegments pushes every full segment downstream, keeping only a
// partially-filled tail buffered.
func (s *BufferedSink) EmitCompleteSegments() error {
	if s.closed {
		return ErrClosed
	}
	n := s.buf.completeSegmentByteCount()
	if n > 0 {
		return s.sink.WriteExactly(&s.buf, n)
	}
	return nil
}

// Emit pushes every buffered byte downstream, including a partial tail.
func (s *BufferedSink) Emit() error {
	if s.closed {
		return ErrClosed
	}
	if s.buf.size == 0 {
		return nil
	}
	return s.sink.WriteExactly(&s.buf, s.buf.size)
}

// Flush emits then flushes the underlying sink.
func (s *BufferedSink) Flush() error {
	if err := s.Emit(); err != nil {
		return err
	}
	return s.sink.Flush()
}

// Timeout returns the underlying sink's timeout.
func (s *BufferedSink) Timeout() *Timeout { return s.sink.Timeout() }

// Close emits any remaining buffered bytes, then closes the underlying
// sink. Both the emit and close errors are reported, joined, if both occur.
// Idempotent.
func (s *BufferedSink) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	var emitErr error
	if s.buf.size > 0 {
		emitErr = s.sink.WriteExactly(&s.buf, s.buf.size)
	}
	closeErr := s.sink.Close()
	return errors.Join(emitErr, closeErr)
}

var _ Sink = (*BufferedSink)(nil)
