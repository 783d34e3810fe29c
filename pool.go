// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

import (
	"runtime"
	"sync/atomic"

	"code.hybscloud.com/spin"

	"code.hybscloud.com/okio/internal/cacheline"
)

// maxPoolBytes is the advisory cap on total bytes held across all of the
// segment pool's free stripes (spec §3/§4.1: 64 KiB). Exceeding it
// momentarily under contention is acceptable; recycle simply drops segments
// once the cap is observed to be exceeded.
const maxPoolBytes = 64 * 1024

// segmentPool is a process-wide, striped free-list of recycled segments.
// Each stripe is an atomic Treiber stack; stripes are cache-line padded to
// avoid false sharing between cores, following the same spreading idea as
// the teacher's bounded_pool.go remap function, adapted from a bounded MPMC
// ring (which must block on empty/full) to an unbounded free-stack where
// take always succeeds by falling back to allocation and recycle always
// succeeds by dropping segments once over the soft cap.
type segmentPool struct {
	stripes []poolStripe
	mask    uint32
	spread  atomic.Uint32

	bytes atomic.Int64
}

// poolStripe holds one Treiber stack of free segments, cache-line aligned so
// that contention between stripes never causes false sharing.
type poolStripe struct {
	_ noCopy
	top atomic.Pointer[segment]
	_   [cacheline.CacheLineSize - 8]byte
}

var globalSegmentPool = newSegmentPool()

func newSegmentPool() *segmentPool {
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		n = 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n++
	if n < 1 {
		n = 1
	}
	return &segmentPool{
		stripes: make([]poolStripe, n),
		mask:    uint32(n - 1),
	}
}

// take returns a recycled segment with pos, limit reset to zero, or a freshly
// allocated one if the pool has nothing available. The returned segment is
// always owner=true, shared=false, and unlinked (prev=next=nil).
func (p *segmentPool) take() *segment {
	idx := p.spread.Add(1) & p.mask
	st := &p.stripes[idx]

	var sw spin.Wait
	for {
		top := st.top.Load()
		if top == nil {
			return newSegment()
		}
		if st.top.CompareAndSwap(top, top.next) {
			p.bytes.Add(-SegmentSize)
			top.next = nil
			return top
		}
		sw.Once()
	}
}

// recycle returns a segment to the pool once it has been unlinked from its
// owning buffer. Shared segments are dropped: their array may still be
// referenced elsewhere (by a ByteString snapshot or another buffer) so they
// must not be reused as a writable segment. Segments are also dropped once
// the pool's soft byte cap is exceeded.
func (p *segmentPool) recycle(s *segment) {
	if s.shared {
		return
	}
	if p.bytes.Load() >= maxPoolBytes {
		return
	}
	s.reset()
	s.owner = true

	idx := p.spread.Add(1) & p.mask
	st := &p.stripes[idx]

	var sw spin.Wait
	for {
		top := st.top.Load()
		s.next = top
		if st.top.CompareAndSwap(top, s) {
			p.bytes.Add(SegmentSize)
			return
		}
		sw.Once()
	}
}
