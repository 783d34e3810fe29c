// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

// UnsafeCursor grants direct, segment-at-a-time access to a Buffer's
// backing arrays, for callers that need to hand raw memory to native code
// or implement an operation Buffer itself doesn't expose (spec §4.2/§9).
//
// A cursor must be closed before its Buffer is used again; only one
// read-write cursor may be open on a Buffer at a time. It is not safe to
// copy a live cursor (see noCopy).
type UnsafeCursor struct {
	_ noCopy

	// Data is the currently selected segment's visible window. It aliases
	// the segment's backing array directly: mutating Data mutates the
	// buffer in place when the cursor was acquired read-write.
	Data []byte
	// Offset is the buffer-relative index of the cursor's current
	// position, or -1 before the first Seek/Next call.
	Offset int64
	// Start and End are the buffer-relative offsets bounding Data.
	Start, End int64

	buffer    *Buffer
	readWrite bool
	segment   *segment
	closed    bool
}

// ReadUnsafeCursor acquires a read-only cursor over b.
func (b *Buffer) ReadUnsafeCursor() *UnsafeCursor {
	return &UnsafeCursor{buffer: b, Offset: -1}
}

// ReadWriteUnsafeCursor acquires a read-write cursor over b. Mutating
// Data through this cursor mutates b directly; touching a shared segment
// triggers a private copy first so other holders of that segment (a
// ByteString snapshot, another Buffer) are unaffected.
func (b *Buffer) ReadWriteUnsafeCursor() *UnsafeCursor {
	return &UnsafeCursor{buffer: b, readWrite: true, Offset: -1}
}

// Next advances to the segment following the current position (or the
// first segment, if this is the first call), returning the number of
// bytes now visible in Data, or -1 if the buffer is exhausted.
func (c *UnsafeCursor) Next() (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	next := int64(0)
	if c.Offset != -1 {
		next = c.End
	}
	if next == c.buffer.size {
		c.Data, c.segment, c.Offset, c.Start, c.End = nil, nil, next, next, next
		return -1, nil
	}
	var seg *segment
	if c.segment == nil {
		seg = c.buffer.head
	} else {
		seg = c.segment.next
	}
	return c.selectSegment(seg, next)
}

// Seek positions the cursor over the segment containing offset, returning
// the number of bytes now visible in Data. offset must be in
// [0, buffer.Size()]; offset == Size() positions past the end (Data is
// empty) and returns -1.
func (c *UnsafeCursor) Seek(offset int64) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	if offset < 0 || offset > c.buffer.size {
		return 0, ErrInvalidArgument
	}
	if offset == c.buffer.size {
		c.Data, c.segment, c.Offset, c.Start, c.End = nil, nil, offset, offset, offset
		return -1, nil
	}
	seg := c.buffer.head
	base := int64(0)
	for base+int64(seg.len()) <= offset {
		base += int64(seg.len())
		seg = seg.next
	}
	return c.selectSegment(seg, offset)
}

func (c *UnsafeCursor) selectSegment(seg *segment, offset int64) (int, error) {
	if c.readWrite && seg.shared {
		cp := seg.unsharedCopy()
		if seg.next == seg {
			cp.prev, cp.next = cp, cp
		} else {
			cp.prev, cp.next = seg.prev, seg.next
			cp.prev.next, cp.next.prev = cp, cp
		}
		if c.buffer.head == seg {
			c.buffer.head = cp
		}
		seg = cp
	}
	base := c.bufferOffsetOf(seg)
	c.segment = seg
	c.Data = seg.data[seg.pos:seg.limit]
	c.Start = base
	c.End = base + int64(seg.len())
	c.Offset = offset
	return len(c.Data), nil
}

// bufferOffsetOf walks from the head to find target's cumulative start
// offset. Used rarely (once per Seek/Next), so a linear walk is fine.
func (c *UnsafeCursor) bufferOffsetOf(target *segment) int64 {
	off := int64(0)
	seg := c.buffer.head
	for seg != target {
		off += int64(seg.len())
		seg = seg.next
	}
	return off
}

// ExpandBuffer grows the buffer by all the spare capacity of a writable tail
// segment with room for at least minByteCount bytes (the current tail when
// it has that room, otherwise a new segment), positions the cursor over
// that segment, and returns the buffer's size before the expansion. Data
// covers the whole segment, so Offset (the old size) may lie past Start.
// Only valid on a read-write cursor. Call ResizeBuffer afterward if fewer
// bytes were actually written than the added capacity.
func (c *UnsafeCursor) ExpandBuffer(minByteCount int) (int64, error) {
	if !c.readWrite {
		return 0, ErrIllegalState
	}
	if minByteCount <= 0 || minByteCount > SegmentSize {
		return 0, ErrInvalidArgument
	}
	oldSize := c.buffer.size
	tail := c.buffer.writableSegment(minByteCount)
	avail := SegmentSize - tail.limit
	tail.limit += avail
	c.buffer.size += int64(avail)
	c.segment = tail
	c.Data = tail.data[tail.pos:tail.limit]
	c.Start = c.buffer.size - int64(tail.len())
	c.End = c.buffer.size
	c.Offset = oldSize
	return oldSize, nil
}

// ResizeBuffer grows or shrinks the buffer to newSize, returning the size
// before the resize. Growing appends zero-filled capacity; shrinking
// truncates from the tail. Only valid on a read-write cursor.
func (c *UnsafeCursor) ResizeBuffer(newSize int64) (int64, error) {
	if !c.readWrite {
		return 0, ErrIllegalState
	}
	if newSize < 0 {
		return 0, ErrInvalidArgument
	}
	oldSize := c.buffer.size
	delta := newSize - oldSize
	switch {
	case delta > 0:
		for delta > 0 {
			seg := c.buffer.writableSegment(1)
			add := min(int64(SegmentSize-seg.limit), delta)
			clear(seg.data[seg.limit : seg.limit+int(add)])
			seg.limit += int(add)
			c.buffer.size += add
			delta -= add
		}
	case delta < 0:
		c.buffer.truncateTail(-delta)
	}
	if newSize == 0 {
		c.segment, c.Data, c.Offset, c.Start, c.End = nil, nil, -1, 0, 0
	} else {
		c.segment, c.Offset = nil, -1
		if _, err := c.Seek(min(c.buffer.size-1, oldSize)); err != nil {
			return oldSize, err
		}
	}
	return oldSize, nil
}

// Close releases the cursor. Idempotent.
func (c *UnsafeCursor) Close() error {
	c.closed = true
	c.buffer, c.segment, c.Data = nil, nil, nil
	return nil
}

// truncateTail removes n bytes from the end of the buffer, recycling
// fully-emptied tail segments. The mirror image of Skip, which removes
// from the front.
func (b *Buffer) truncateTail(n int64) {
	for n > 0 {
		tail := b.head.prev
		c := int64(tail.len())
		if c <= n {
			old := b.removeTail()
			if old.owner && !old.shared {
				globalSegmentPool.recycle(old)
			}
			b.size -= c
			n -= c
			continue
		}
		tail.limit -= int(n)
		b.size -= n
		n = 0
	}
}

func (b *Buffer) removeTail() *segment {
	old := b.head.prev
	if old == b.head {
		b.head = nil
	} else {
		prev, next := old.prev, old.next
		prev.next = next
		next.prev = prev
	}
	old.prev, old.next = nil, nil
	return old
}
