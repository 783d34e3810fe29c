// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/binary"
	"hash"
	"io"
	"math"
	"strings"
	"unicode/utf8"
)

// Buffer is a doubly-linked ring of segments that is the only place bytes
// actually live. It implements Source (ReadAtMost) and Sink (WriteExactly)
// simultaneously, and is also the read/write buffer backing BufferedSource
// and BufferedSink.
//
// The zero value is an empty, ready-to-use Buffer, the same way bytes.Buffer
// works.
//
// Buffer is single-writer, single-reader: it is not safe to share between
// goroutines without external synchronization (spec §5).
type Buffer struct {
	head *segment // oldest readable segment; head.prev is the tail
	size int64
}

// NewBuffer returns an empty Buffer. Equivalent to new(Buffer).
func NewBuffer() *Buffer { return &Buffer{} }

// Size returns the number of bytes currently buffered.
func (b *Buffer) Size() int64 { return b.size }

// IsEmpty reports whether the buffer has no readable bytes.
func (b *Buffer) IsEmpty() bool { return b.size == 0 }

// Clear recycles all segments and resets the buffer to empty.
func (b *Buffer) Clear() {
	for b.head != nil {
		b.popHead()
	}
}

// Skip advances past byteCount bytes, popping and recycling fully-consumed
// segments. Fails with ErrPrematureEndOfInput if byteCount > Size().
func (b *Buffer) Skip(byteCount int64) error {
	if byteCount < 0 {
		return ErrInvalidArgument
	}
	if byteCount > b.size {
		return ErrPrematureEndOfInput
	}
	for byteCount > 0 {
		seg := b.head
		n := min(int64(seg.len()), byteCount)
		seg.pos += int(n)
		b.size -= n
		byteCount -= n
		if seg.pos == seg.limit {
			b.popHead()
		}
	}
	return nil
}

// popHead detaches the head segment from the ring and, unless it is shared
// (still referenced by a snapshot or another buffer), returns it to the
// segment pool.
func (b *Buffer) popHead() {
	old := b.removeHead()
	if old.owner && !old.shared {
		globalSegmentPool.recycle(old)
	}
}

// removeHead detaches the head segment from the ring without recycling it;
// used when a segment is being handed to another buffer rather than
// discarded.
func (b *Buffer) removeHead() *segment {
	old := b.head
	if old.next == old {
		b.head = nil
	} else {
		next, prev := old.next, old.prev
		prev.next = next
		next.prev = prev
		b.head = next
	}
	old.prev = nil
	old.next = nil
	return old
}

// appendSegment inserts seg as the new tail of the ring (or as the sole
// segment if the buffer was empty).
func (b *Buffer) appendSegment(seg *segment) {
	if b.head == nil {
		seg.prev = seg
		seg.next = seg
		b.head = seg
		return
	}
	tail := b.head.prev
	tail.next = seg
	seg.prev = tail
	seg.next = b.head
	b.head.prev = seg
}

// writableSegment returns the tail segment with at least minCapacity spare
// bytes, compacting or allocating as needed.
func (b *Buffer) writableSegment(minCapacity int) *segment {
	if b.head == nil {
		s := globalSegmentPool.take()
		b.appendSegment(s)
		return s
	}
	tail := b.head.prev
	if tail.owner && !tail.shared {
		if tail.pos > 0 && SegmentSize-tail.limit < minCapacity {
			n := copy(tail.data[:], tail.data[tail.pos:tail.limit])
			tail.limit = n
			tail.pos = 0
		}
		if SegmentSize-tail.limit >= minCapacity {
			return tail
		}
	}
	s := globalSegmentPool.take()
	b.appendSegment(s)
	return s
}

// readExact consumes exactly len(dst) bytes into dst, or fails with
// ErrPrematureEndOfInput without consuming anything.
func (b *Buffer) readExact(dst []byte) error {
	n := len(dst)
	if int64(n) > b.size {
		return ErrPrematureEndOfInput
	}
	off := 0
	for off < n {
		seg := b.head
		c := min(seg.len(), n-off)
		copy(dst[off:off+c], seg.data[seg.pos:seg.pos+c])
		seg.pos += c
		off += c
		b.size -= int64(c)
		if seg.pos == seg.limit {
			b.popHead()
		}
	}
	return nil
}

// writeExact appends p to the tail, growing the ring as needed. Never fails.
func (b *Buffer) writeExact(p []byte) {
	off := 0
	for off < len(p) {
		seg := b.writableSegment(1)
		c := copy(seg.data[seg.limit:], p[off:])
		seg.limit += c
		off += c
		b.size += int64(c)
	}
}

// peekBytes returns up to n bytes from the front without consuming them.
func (b *Buffer) peekBytes(n int) []byte {
	if int64(n) > b.size {
		n = int(b.size)
	}
	out := make([]byte, n)
	seg := b.head
	off := 0
	for off < n {
		c := min(seg.len(), n-off)
		copy(out[off:off+c], seg.data[seg.pos:seg.pos+c])
		off += c
		seg = seg.next
	}
	return out
}

// byteAt returns the byte at logical offset pos without consuming it. The
// caller must ensure 0 <= pos < Size().
func (b *Buffer) byteAt(pos int64) byte {
	seg := b.head
	for {
		n := int64(seg.len())
		if pos < n {
			return seg.data[seg.pos+int(pos)]
		}
		pos -= n
		seg = seg.next
	}
}

// --- typed integer reads/writes -------------------------------------------

func (b *Buffer) WriteByte(v byte) error {
	b.writeExact([]byte{v})
	return nil
}

func (b *Buffer) WriteShort(v int16) {
	var buf [2]byte
	binary.BigEndian.PutUint16(buf[:], uint16(v))
	b.writeExact(buf[:])
}

func (b *Buffer) WriteShortLe(v int16) {
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], uint16(v))
	b.writeExact(buf[:])
}

func (b *Buffer) WriteInt(v int32) {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], uint32(v))
	b.writeExact(buf[:])
}

func (b *Buffer) WriteIntLe(v int32) {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(v))
	b.writeExact(buf[:])
}

func (b *Buffer) WriteLong(v int64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], uint64(v))
	b.writeExact(buf[:])
}

func (b *Buffer) WriteLongLe(v int64) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(v))
	b.writeExact(buf[:])
}

func (b *Buffer) ReadByte() (byte, error) {
	var buf [1]byte
	if err := b.readExact(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (b *Buffer) ReadShort() (int16, error) {
	var buf [2]byte
	if err := b.readExact(buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.BigEndian.Uint16(buf[:])), nil
}

func (b *Buffer) ReadShortLe() (int16, error) {
	var buf [2]byte
	if err := b.readExact(buf[:]); err != nil {
		return 0, err
	}
	return int16(binary.LittleEndian.Uint16(buf[:])), nil
}

func (b *Buffer) ReadInt() (int32, error) {
	var buf [4]byte
	if err := b.readExact(buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(buf[:])), nil
}

func (b *Buffer) ReadIntLe() (int32, error) {
	var buf [4]byte
	if err := b.readExact(buf[:]); err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(buf[:])), nil
}

func (b *Buffer) ReadLong() (int64, error) {
	var buf [8]byte
	if err := b.readExact(buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(buf[:])), nil
}

func (b *Buffer) ReadLongLe() (int64, error) {
	var buf [8]byte
	if err := b.readExact(buf[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}

// --- UTF-8 ------------------------------------------------------------

// WriteUTF8 encodes s as UTF-8, the same bytes a conformant encoder would
// produce for a valid string; each byte that utf8.DecodeRuneInString
// rejects as ill-formed is replaced with its own U+FFFD.
func (b *Buffer) WriteUTF8(s string) (int, error) {
	return b.WriteUTF8Range(s, 0, len(s))
}

// WriteUTF8Range encodes s[begin:end] as UTF-8.
func (b *Buffer) WriteUTF8Range(s string, begin, end int) (int, error) {
	if begin < 0 || end > len(s) || begin > end {
		return 0, ErrInvalidArgument
	}
	sub := s[begin:end]
	if utf8.ValidString(sub) {
		b.writeExact([]byte(sub))
		return len(sub), nil
	}
	total := 0
	for i := 0; i < len(sub); {
		r, size := utf8.DecodeRuneInString(sub[i:])
		if r == utf8.RuneError && size <= 1 {
			n, _ := b.WriteUTF8CodePoint(utf8.RuneError)
			total += n
			i++
			continue
		}
		b.writeExact([]byte(sub[i : i+size]))
		total += size
		i += size
	}
	return total, nil
}

// WriteUTF8CodePoint encodes a single Unicode code point. Values outside
// [0, 0x10FFFF] or in the surrogate range [0xD800, 0xDFFF] are replaced with
// U+FFFD.
func (b *Buffer) WriteUTF8CodePoint(r rune) (int, error) {
	if r < 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
		r = utf8.RuneError
	}
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	b.writeExact(buf[:n])
	return n, nil
}

// ReadUTF8 decodes exactly byteCount raw bytes as UTF-8, substituting
// U+FFFD for any malformed/truncated sequence, overlong encoding, or lone
// surrogate. byteCount bytes are always consumed, even when malformed.
func (b *Buffer) ReadUTF8(byteCount int64) (string, error) {
	if byteCount < 0 {
		return "", ErrInvalidArgument
	}
	if byteCount > b.size {
		return "", ErrPrematureEndOfInput
	}
	raw := make([]byte, byteCount)
	if err := b.readExact(raw); err != nil {
		return "", err
	}
	return decodeUTF8Lossy(raw), nil
}

// ReadUTF8All decodes the entire buffer as UTF-8.
func (b *Buffer) ReadUTF8All() (string, error) {
	return b.ReadUTF8(b.size)
}

func decodeUTF8Lossy(raw []byte) string {
	if utf8.Valid(raw) {
		return string(raw)
	}
	var sb strings.Builder
	sb.Grow(len(raw))
	for i := 0; i < len(raw); {
		r, size := utf8.DecodeRune(raw[i:])
		if r == utf8.RuneError && size <= 1 {
			sb.WriteRune(utf8.RuneError)
			i++
			continue
		}
		sb.Write(raw[i : i+size])
		i += size
	}
	return sb.String()
}

// ReadUTF8CodePoint decodes one code point, consuming 1-4 bytes. A malformed
// sequence yields U+FFFD and consumes exactly one byte, as utf8.DecodeRune
// reports; a truncated multi-byte prefix is not consumed as a unit, so its
// remaining bytes each decode to U+FFFD on later calls.
func (b *Buffer) ReadUTF8CodePoint() (rune, error) {
	if b.size == 0 {
		return 0, ErrPrematureEndOfInput
	}
	peek := b.peekBytes(min(int(b.size), utf8.UTFMax))
	r, size := utf8.DecodeRune(peek)
	if r == utf8.RuneError && size <= 1 {
		_ = b.Skip(1)
		return utf8.RuneError, nil
	}
	_ = b.Skip(int64(size))
	return r, nil
}

// ReadUTF8Line reads up to and including the next '\n' (optionally preceded
// by '\r'), returning the line without its terminator. At true end of
// buffer with no trailing terminator, it returns the remaining bytes; once
// nothing at all remains it returns io.EOF.
func (b *Buffer) ReadUTF8Line() (string, error) {
	idx := b.IndexOfByte('\n', 0, b.size)
	if idx != -1 {
		return b.readLineUpTo(idx)
	}
	if b.size == 0 {
		return "", io.EOF
	}
	return b.ReadUTF8(b.size)
}

// ReadUTF8LineStrict is like ReadUTF8Line but requires a terminator: it
// fails with io.EOF if the buffer is exhausted without ever seeing one, and
// with ErrPrematureEndOfInput if limit bytes are scanned without seeing one
// while more buffered data remains.
func (b *Buffer) ReadUTF8LineStrict(limit int64) (string, error) {
	if limit < 0 {
		return "", ErrInvalidArgument
	}
	scanTo := min(limit, b.size)
	idx := b.IndexOfByte('\n', 0, scanTo)
	if idx != -1 {
		return b.readLineUpTo(idx)
	}
	if b.size > limit {
		return "", ErrPrematureEndOfInput
	}
	return "", io.EOF
}

func (b *Buffer) readLineUpTo(newlineIndex int64) (string, error) {
	if newlineIndex > 0 && b.byteAt(newlineIndex-1) == '\r' {
		s, err := b.ReadUTF8(newlineIndex - 1)
		if err != nil {
			return "", err
		}
		_ = b.Skip(2)
		return s, nil
	}
	s, err := b.ReadUTF8(newlineIndex)
	if err != nil {
		return "", err
	}
	_ = b.Skip(1)
	return s, nil
}

// --- decimal / hex -------------------------------------------------------

const (
	maxLongDivTen  = math.MaxInt64 / 10
	maxLongLastDig = math.MaxInt64 % 10
	minLongDivTen  = math.MinInt64 / 10
	minLongLastDig = -(math.MinInt64 % 10)
)

// ReadDecimalLong parses a signed decimal integer up to the first
// non-digit, consuming only the digits read. Overflow in either direction
// fails with ErrInvalidArgument, leaving the buffer positioned at the
// overflowing digit.
func (b *Buffer) ReadDecimalLong() (int64, error) {
	if b.size == 0 {
		return 0, ErrPrematureEndOfInput
	}
	negative := false
	pos := int64(0)
	if b.byteAt(0) == '-' {
		negative = true
		pos = 1
		if b.size == 1 {
			return 0, ErrPrematureEndOfInput
		}
	}
	var value int64
	seen := 0
	overflowAt := int64(-1)
	for pos < b.size {
		c := b.byteAt(pos)
		if c < '0' || c > '9' {
			break
		}
		digit := int64(c - '0')
		if overflowAt < 0 {
			if negative {
				if value < minLongDivTen || (value == minLongDivTen && digit > minLongLastDig) {
					overflowAt = pos
				}
			} else {
				if value > maxLongDivTen || (value == maxLongDivTen && digit > maxLongLastDig) {
					overflowAt = pos
				}
			}
		}
		if overflowAt < 0 {
			if negative {
				value = value*10 - digit
			} else {
				value = value*10 + digit
			}
		}
		pos++
		seen++
	}
	if seen == 0 {
		return 0, ErrPrematureEndOfInput
	}
	if overflowAt >= 0 {
		_ = b.Skip(overflowAt)
		return 0, ErrInvalidArgument
	}
	_ = b.Skip(pos)
	return value, nil
}

// ReadHexadecimalUnsignedLong parses an unsigned hex integer up to the
// first non-hex-digit, consuming only the digits read. Overflow wraps, as
// is conventional for fixed-width hex parsing.
func (b *Buffer) ReadHexadecimalUnsignedLong() (uint64, error) {
	if b.size == 0 {
		return 0, ErrPrematureEndOfInput
	}
	var value uint64
	pos, seen := int64(0), 0
	for pos < b.size {
		c := b.byteAt(pos)
		var digit uint64
		switch {
		case c >= '0' && c <= '9':
			digit = uint64(c - '0')
		case c >= 'a' && c <= 'f':
			digit = uint64(c-'a') + 10
		case c >= 'A' && c <= 'F':
			digit = uint64(c-'A') + 10
		default:
			pos = b.size + 1 // sentinel to break loop below without goto
		}
		if pos > b.size {
			break
		}
		value = value<<4 | digit
		pos++
		seen++
	}
	if seen == 0 {
		return 0, ErrPrematureEndOfInput
	}
	_ = b.Skip(pos)
	return value, nil
}

// --- search ----------------------------------------------------------

// IndexOfByte returns the least index in [fromIndex, toIndex) where the
// byte equals c, or -1. toIndex < 0 means Size().
func (b *Buffer) IndexOfByte(c byte, fromIndex, toIndex int64) int64 {
	if toIndex < 0 || toIndex > b.size {
		toIndex = b.size
	}
	if fromIndex < 0 || fromIndex >= toIndex {
		return -1
	}
	seg := b.head
	offset := int64(0)
	for offset+int64(seg.len()) <= fromIndex {
		offset += int64(seg.len())
		seg = seg.next
	}
	pos := fromIndex
	for pos < toIndex {
		localStart := seg.pos + int(pos-offset)
		localEnd := min(seg.limit, localStart+int(toIndex-pos))
		for i := localStart; i < localEnd; i++ {
			if seg.data[i] == c {
				return pos + int64(i-localStart)
			}
		}
		consumed := int64(localEnd - localStart)
		pos += consumed
		offset += int64(seg.len())
		seg = seg.next
	}
	return -1
}

// IndexOfByteString returns the least index >= fromIndex at which target
// occurs, or -1. A naive scan is used, acceptable for the small patterns
// this is intended for.
func (b *Buffer) IndexOfByteString(target ByteString, fromIndex int64) int64 {
	n := int64(target.Size())
	if n == 0 {
		if fromIndex < 0 {
			return 0
		}
		return fromIndex
	}
	if fromIndex < 0 {
		fromIndex = 0
	}
	if n > b.size {
		return -1
	}
	first := target.At(0)
	for {
		idx := b.IndexOfByte(first, fromIndex, b.size-n+1)
		if idx == -1 {
			return -1
		}
		match := true
		for i := int64(1); i < n; i++ {
			if b.byteAt(idx+i) != target.At(int(i)) {
				match = false
				break
			}
		}
		if match {
			return idx
		}
		fromIndex = idx + 1
	}
}

// --- availability ------------------------------------------------------

// Request reports whether at least byteCount bytes are currently buffered.
// Buffers never block, so this never pulls additional bytes.
func (b *Buffer) Request(byteCount int64) bool { return b.size >= byteCount }

// Require fails with ErrPrematureEndOfInput unless at least byteCount bytes
// are currently buffered.
func (b *Buffer) Require(byteCount int64) error {
	if b.size < byteCount {
		return ErrPrematureEndOfInput
	}
	return nil
}

// --- snapshot / clone ----------------------------------------------------

// Snapshot returns an immutable ByteString sharing all of the buffer's
// current segments, in O(segments) time. Buffer mutation after Snapshot
// does not affect the returned ByteString.
func (b *Buffer) Snapshot() ByteString { return b.SnapshotN(b.size) }

// SnapshotN is like Snapshot but only the first byteCount bytes.
func (b *Buffer) SnapshotN(byteCount int64) ByteString {
	if byteCount < 0 || byteCount > b.size {
		panic("okio: invalid snapshot byteCount")
	}
	if byteCount == 0 {
		return ByteString{}
	}
	var segs []*segment
	var dirs []int64
	remaining := byteCount
	s := b.head
	cum := int64(0)
	for remaining > 0 {
		n := int64(s.len())
		if n > remaining {
			part := s.sharedCopy()
			part.limit = part.pos + int(remaining)
			segs = append(segs, part)
			cum += remaining
			dirs = append(dirs, cum)
			break
		}
		segs = append(segs, s.sharedCopy())
		cum += n
		dirs = append(dirs, cum)
		remaining -= n
		s = s.next
	}
	return newSegmentedByteString(segs, dirs)
}

// CopyTo appends a read-only, shared copy of all of b's current bytes onto
// the end of dst without consuming them from b.
func (b *Buffer) CopyTo(dst *Buffer) {
	s := b.head
	remaining := b.size
	for remaining > 0 {
		n := s.len()
		dst.appendSegment(s.sharedCopy())
		dst.size += int64(n)
		remaining -= int64(n)
		s = s.next
	}
}

// Clone returns a new Buffer sharing all of b's segments read-only.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{}
	b.CopyTo(out)
	return out
}

// copyRangeTo appends a read-only, shared copy of b[offset:offset+byteCount]
// onto dst without consuming anything from b. Used by UnsafeCursor and the
// peek() support in BufferedSource.
func (b *Buffer) copyRangeTo(dst *Buffer, offset, byteCount int64) {
	if byteCount == 0 {
		return
	}
	s := b.head
	base := int64(0)
	for base+int64(s.len()) <= offset {
		base += int64(s.len())
		s = s.next
	}
	remaining := byteCount
	posInSeg := int(offset - base)
	for remaining > 0 {
		avail := int64(s.len() - posInSeg)
		take := min(avail, remaining)
		part := s.sharedCopy()
		part.pos = s.pos + posInSeg
		part.limit = part.pos + int(take)
		dst.appendSegment(part)
		dst.size += take
		remaining -= take
		posInSeg = 0
		s = s.next
	}
}

// hashRange feeds w with b[offset:offset+byteCount] without consuming
// anything, used by HashingSource/HashingSink to digest bytes that must
// still pass through untouched.
func (b *Buffer) hashRange(w io.Writer, offset, byteCount int64) {
	if byteCount == 0 {
		return
	}
	s := b.head
	base := int64(0)
	for base+int64(s.len()) <= offset {
		base += int64(s.len())
		s = s.next
	}
	remaining := byteCount
	posInSeg := int(offset - base)
	for remaining > 0 {
		avail := int64(s.len() - posInSeg)
		take := min(avail, remaining)
		w.Write(s.data[s.pos+posInSeg : s.pos+posInSeg+int(take)])
		remaining -= take
		posInSeg = 0
		s = s.next
	}
}

// completeSegmentByteCount returns the number of bytes that sit in fully
// writable-full segments, i.e. excluding a not-yet-full tail. Used by
// BufferedSink.EmitCompleteSegments to decide how much to push downstream.
func (b *Buffer) completeSegmentByteCount() int64 {
	if b.head == nil {
		return 0
	}
	tail := b.head.prev
	if tail.limit == SegmentSize {
		return b.size
	}
	return b.size - int64(tail.len())
}

// --- hashing -------------------------------------------------------------

// HashAlgorithm selects a streaming digest algorithm for Buffer.Digest and
// Buffer.Hmac.
type HashAlgorithm int

const (
	MD5 HashAlgorithm = iota
	SHA1
	SHA256
	SHA512
)

func newDigest(alg HashAlgorithm) hash.Hash {
	switch alg {
	case MD5:
		return md5.New()
	case SHA1:
		return sha1.New()
	case SHA256:
		return sha256.New()
	case SHA512:
		return sha512.New()
	default:
		panic("okio: unknown hash algorithm")
	}
}

func (b *Buffer) feedHash(w io.Writer) {
	s := b.head
	remaining := b.size
	for remaining > 0 {
		w.Write(s.data[s.pos:s.limit])
		remaining -= int64(s.len())
		s = s.next
	}
}

// Digest returns the digest of all currently buffered bytes, without
// consuming them.
func (b *Buffer) Digest(alg HashAlgorithm) ByteString {
	h := newDigest(alg)
	b.feedHash(h)
	return ByteString{data: h.Sum(nil)}
}

// Hmac returns the HMAC of all currently buffered bytes under key, without
// consuming them. key must not be empty.
func (b *Buffer) Hmac(alg HashAlgorithm, key ByteString) (ByteString, error) {
	if key.Size() == 0 {
		return ByteString{}, ErrInvalidArgument
	}
	h := hmac.New(func() hash.Hash { return newDigest(alg) }, key.data)
	b.feedHash(h)
	return ByteString{data: h.Sum(nil)}, nil
}

// --- inter-buffer transfer (zero-copy) ------------------------------------

// ReadAtMost implements Source for a Buffer acting as the upstream: it moves
// at most byteCount bytes into sink, preferring to hand over whole segments
// by pointer (see transferTo). Returns -1 when b is empty.
func (b *Buffer) ReadAtMost(sink *Buffer, byteCount int64) (int64, error) {
	if byteCount < 0 {
		return 0, ErrInvalidArgument
	}
	if b.size == 0 {
		return -1, nil
	}
	if byteCount > b.size {
		byteCount = b.size
	}
	if byteCount == 0 {
		return 0, nil
	}
	b.transferTo(sink, byteCount)
	return byteCount, nil
}

// WriteExactly implements Sink for a Buffer acting as the downstream: it
// moves exactly byteCount bytes out of source into b, removing them from
// source.
func (b *Buffer) WriteExactly(source *Buffer, byteCount int64) error {
	if byteCount < 0 {
		return ErrInvalidArgument
	}
	if byteCount > source.size {
		return ErrPrematureEndOfInput
	}
	source.transferTo(b, byteCount)
	return nil
}

// transferTo moves byteCount bytes (byteCount <= b.size) from b into sink.
// Each head segment that fits entirely within the remaining count is moved
// by pointer; for a partial head segment, bytes are copied into sink's tail
// when that tail is owned, unshared and has room, otherwise the head
// segment is split and its prefix appended to sink.
func (b *Buffer) transferTo(sink *Buffer, byteCount int64) {
	for byteCount > 0 {
		head := b.head
		headLen := int64(head.len())

		if headLen <= byteCount {
			b.removeHead()
			sink.appendSegment(head)
			sink.size += headLen
			b.size -= headLen
			byteCount -= headLen
			continue
		}

		if sink.head != nil {
			tail := sink.head.prev
			if tail.owner && !tail.shared {
				avail := int64(SegmentSize-tail.limit) + int64(tail.pos)
				toMove := min(byteCount, avail)
				if toMove > 0 {
					writeInto(tail, head.data[head.pos:head.pos+int(toMove)])
					head.pos += int(toMove)
					b.size -= toMove
					sink.size += toMove
					byteCount -= toMove
					continue
				}
			}
		}

		prefix := head.split(int(byteCount))
		b.size -= byteCount
		sink.appendSegment(prefix)
		sink.size += byteCount
		byteCount = 0
	}
}

// --- stdlib interop --------------------------------------------------

// Read implements io.Reader.
func (b *Buffer) Read(p []byte) (int, error) {
	if b.size == 0 {
		return 0, io.EOF
	}
	n := min(len(p), int(min(b.size, math.MaxInt32)))
	seg := b.head
	off := 0
	for off < n {
		c := min(seg.len(), n-off)
		copy(p[off:off+c], seg.data[seg.pos:seg.pos+c])
		seg.pos += c
		off += c
		b.size -= int64(c)
		if seg.pos == seg.limit {
			b.popHead()
			if b.head == nil {
				break
			}
			seg = b.head
		}
	}
	return off, nil
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	b.writeExact(p)
	return len(p), nil
}

// WriteString implements io.StringWriter.
func (b *Buffer) WriteString(s string) (int, error) {
	b.writeExact([]byte(s))
	return len(s), nil
}

// ReadFrom implements io.ReaderFrom, pulling from r until EOF.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	var total int64
	for {
		seg := b.writableSegment(1)
		n, err := r.Read(seg.data[seg.limit:])
		if n > 0 {
			seg.limit += n
			b.size += int64(n)
			total += int64(n)
		}
		if err != nil {
			if err == io.EOF {
				return total, nil
			}
			return total, err
		}
		if n == 0 {
			return total, io.ErrNoProgress
		}
	}
}

// WriteTo implements io.WriterTo, draining the buffer into w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for b.size > 0 {
		seg := b.head
		n, err := w.Write(seg.data[seg.pos:seg.limit])
		if n > 0 {
			seg.pos += n
			b.size -= int64(n)
			total += int64(n)
			if seg.pos == seg.limit {
				b.popHead()
			}
		}
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// Timeout returns TimeoutNone: Buffer-to-buffer operations never block
// (spec §4.9/§5).
func (b *Buffer) Timeout() *Timeout { return TimeoutNone }

// Flush is a no-op: a Buffer has nothing downstream to push to.
func (b *Buffer) Flush() error { return nil }

// Close is a no-op and always succeeds.
func (b *Buffer) Close() error { return nil }
