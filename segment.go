// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

// SegmentSize is the fixed capacity of every segment in bytes.
const SegmentSize = 8192

// segment is a fixed-capacity byte block, the unit of allocation inside a
// Buffer. Readable bytes occupy data[pos:limit]; writable bytes occupy
// data[limit:SegmentSize].
//
// A segment is mutated only while owner && !shared. It is linked into at
// most one Buffer's ring at a time via prev/next; a shared segment's data
// array may additionally be referenced, read-only, by a ByteString
// snapshot or by another Buffer.
type segment struct {
	data  *[SegmentSize]byte
	pos   int
	limit int

	prev, next *segment

	// shared is true when this segment's data array is referenced by
	// something else (another segment, a ByteString snapshot) and must not
	// be mutated in place.
	shared bool
	// owner is true when this segment may be written to and returned to the
	// pool once popped from its buffer. Shares of another segment are never
	// owners.
	owner bool
}

func newSegment() *segment {
	return &segment{data: new([SegmentSize]byte), owner: true}
}

// reset clears link and position state so the segment looks freshly
// allocated. Called by the pool before a segment is recycled or reused.
func (s *segment) reset() {
	s.pos = 0
	s.limit = 0
	s.prev = nil
	s.next = nil
	s.shared = false
}

func (s *segment) len() int { return s.limit - s.pos }

// sharedCopy returns a new segment that shares this segment's byte array,
// read-only. Both segments become marked shared.
func (s *segment) sharedCopy() *segment {
	s.shared = true
	return &segment{data: s.data, pos: s.pos, limit: s.limit, owner: false, shared: true}
}

// unsharedCopy returns a private, owned copy of this segment's readable
// bytes, used when a writer must touch a shared segment's array
// (copy-on-write).
func (s *segment) unsharedCopy() *segment {
	cp := newSegment()
	copy(cp.data[:], s.data[s.pos:s.limit])
	cp.limit = s.limit - s.pos
	return cp
}

// split partitions this segment into two segments containing the same data,
// in order to make it easier to assign data to multiple buffers.
//
// The returned segment contains the data in [pos, pos+byteCount) and is not
// linked into any ring; this segment now starts byteCount further in.
//
// byteCount must be in (0, limit-pos]. A split of at least
// splitSharingThreshold bytes returns a shared copy aliasing the same array,
// and both halves are marked shared (copy-on-write protects them from
// further mutation until writableSegment forces a private copy). A smaller
// split copies the bytes into a fresh owned segment and leaves this
// segment's sharing state unchanged.
func (s *segment) split(byteCount int) *segment {
	if byteCount <= 0 || byteCount > s.len() {
		panic("okio: invalid split byteCount")
	}
	var prefix *segment
	if byteCount >= splitSharingThreshold {
		prefix = s.sharedCopy()
	} else {
		prefix = newSegment()
		copy(prefix.data[:byteCount], s.data[s.pos:s.pos+byteCount])
	}
	prefix.limit = prefix.pos + byteCount
	s.pos += byteCount
	return prefix
}

// splitSharingThreshold: splits at or above this many bytes share the
// backing array (cheap); smaller splits copy (avoids pinning a whole
// 8 KiB array alive for a few bytes).
const splitSharingThreshold = 1024

// compact attempts to merge s's readable bytes into its predecessor prev,
// returning true on success. Only prev is checked: it must be owned and not
// shared, and s's byte count must not exceed SegmentSize-prev.limit-prev.pos.
func compact(prev, s *segment) bool {
	if !prev.owner || prev.shared {
		return false
	}
	byteCount := s.len()
	if byteCount > SegmentSize-prev.limit-prev.pos {
		return false
	}
	writeInto(prev, s.data[s.pos:s.limit])
	return true
}

// writeInto copies p into dst's writable region, compacting dst's existing
// readable bytes to the front first if dst.pos > 0.
func writeInto(dst *segment, p []byte) {
	if dst.pos > 0 {
		n := copy(dst.data[:], dst.data[dst.pos:dst.limit])
		dst.limit = n
		dst.pos = 0
	}
	n := copy(dst.data[dst.limit:], p)
	dst.limit += n
}
