// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

import (
	"crypto/hmac"
	"hash"
)

// HashingSource wraps a Source, feeding every byte that passes through to a
// digest as it is read, without disturbing the bytes themselves (spec
// §4.7).
type HashingSource struct {
	source Source
	h      hash.Hash
}

// NewHashingSource wraps source, digesting everything read through it with
// alg.
func NewHashingSource(source Source, alg HashAlgorithm) *HashingSource {
	return &HashingSource{source: source, h: newDigest(alg)}
}

// NewHashingSourceHmac is like NewHashingSource but computes an HMAC under
// key instead of a plain digest. key must not be empty.
func NewHashingSourceHmac(source Source, alg HashAlgorithm, key ByteString) (*HashingSource, error) {
	if key.Size() == 0 {
		return nil, ErrInvalidArgument
	}
	return &HashingSource{source: source, h: hmac.New(func() hash.Hash { return newDigest(alg) }, key.materialize())}, nil
}

func (s *HashingSource) ReadAtMost(sink *Buffer, byteCount int64) (int64, error) {
	before := sink.size
	n, err := s.source.ReadAtMost(sink, byteCount)
	if n > 0 {
		sink.hashRange(s.h, before, n)
	}
	return n, err
}

func (s *HashingSource) Timeout() *Timeout { return s.source.Timeout() }
func (s *HashingSource) Close() error      { return s.source.Close() }

// Hash returns the digest of every byte read through this source so far.
// Safe to call repeatedly; does not reset the running digest.
func (s *HashingSource) Hash() ByteString {
	return ByteString{data: s.h.Sum(nil)}
}

var _ Source = (*HashingSource)(nil)

// HashingSink wraps a Sink, feeding every byte that passes through to a
// digest before handing it downstream.
type HashingSink struct {
	sink Sink
	h    hash.Hash
}

// NewHashingSink wraps sink, digesting everything written through it with
// alg.
func NewHashingSink(sink Sink, alg HashAlgorithm) *HashingSink {
	return &HashingSink{sink: sink, h: newDigest(alg)}
}

// NewHashingSinkHmac is like NewHashingSink but computes an HMAC under key
// instead of a plain digest. key must not be empty.
func NewHashingSinkHmac(sink Sink, alg HashAlgorithm, key ByteString) (*HashingSink, error) {
	if key.Size() == 0 {
		return nil, ErrInvalidArgument
	}
	return &HashingSink{sink: sink, h: hmac.New(func() hash.Hash { return newDigest(alg) }, key.materialize())}, nil
}

func (s *HashingSink) WriteExactly(source *Buffer, byteCount int64) error {
	source.hashRange(s.h, 0, byteCount)
	return s.sink.WriteExactly(source, byteCount)
}

func (s *HashingSink) Flush() error      { return s.sink.Flush() }
func (s *HashingSink) Timeout() *Timeout { return s.sink.Timeout() }
func (s *HashingSink) Close() error      { return s.sink.Close() }

// Hash returns the digest of every byte written through this sink so far.
func (s *HashingSink) Hash() ByteString {
	return ByteString{data: s.h.Sum(nil)}
}

var _ Sink = (*HashingSink)(nil)
