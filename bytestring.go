// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

import (
	"bytes"
	"crypto/hmac"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"strings"
)

// ByteString is an immutable sequence of bytes. Most ByteStrings are backed
// by a single contiguous slice; Buffer.Snapshot-derived ones are backed
// by a chain of shared Buffer segments instead, avoiding a copy of
// potentially large buffered content (spec §4.6).
//
// The zero value is the empty ByteString.
type ByteString struct {
	data []byte // contiguous representation; nil when segmented

	segs []*segment // segmented representation; nil when contiguous
	dirs []int64    // dirs[i] is the cumulative end offset of segs[i]

	hash    uint32
	hashSet bool
}

func newSegmentedByteString(segs []*segment, dirs []int64) ByteString {
	return ByteString{segs: segs, dirs: dirs}
}

// FromBytes copies p into a new ByteString.
func FromBytes(p []byte) ByteString {
	cp := make([]byte, len(p))
	copy(cp, p)
	return ByteString{data: cp}
}

// FromUTF8 encodes s as UTF-8 into a new ByteString.
func FromUTF8(s string) ByteString {
	return ByteString{data: []byte(s)}
}

// FromBase64 decodes standard (RFC 4648 §4) base64, accepting both padded
// and unpadded input and either the standard or URL-safe alphabet.
func FromBase64(s string) (ByteString, error) {
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, s)
	enc := base64.StdEncoding
	if strings.ContainsAny(s, "-_") {
		enc = base64.URLEncoding
	}
	if len(s)%4 != 0 {
		enc = enc.WithPadding(base64.NoPadding)
	}
	out, err := enc.DecodeString(s)
	if err != nil {
		return ByteString{}, ErrProtocol
	}
	return ByteString{data: out}, nil
}

// FromHex decodes a hexadecimal string (case-insensitive, even length).
func FromHex(s string) (ByteString, error) {
	out, err := hex.DecodeString(s)
	if err != nil {
		return ByteString{}, ErrProtocol
	}
	return ByteString{data: out}, nil
}

// Size returns the number of bytes.
func (b ByteString) Size() int {
	if b.segs != nil {
		return int(b.dirs[len(b.dirs)-1])
	}
	return len(b.data)
}

// At returns the byte at index i. Panics if i is out of range.
func (b ByteString) At(i int) byte {
	if b.segs == nil {
		return b.data[i]
	}
	segIndex := 0
	start := 0
	for segIndex < len(b.dirs) && i >= int(b.dirs[segIndex]) {
		start = int(b.dirs[segIndex])
		segIndex++
	}
	s := b.segs[segIndex]
	return s.data[s.pos+(i-start)]
}

// Bytes returns a fresh copy of the byte content.
func (b ByteString) Bytes() []byte {
	out := make([]byte, b.Size())
	b.copyInto(out)
	return out
}

func (b ByteString) copyInto(dst []byte) {
	if b.segs == nil {
		copy(dst, b.data)
		return
	}
	off := 0
	start := 0
	for i, s := range b.segs {
		end := int(b.dirs[i])
		n := copy(dst[off:off+(end-start)], s.data[s.pos:s.limit])
		off += n
		start = end
	}
}

// materialize returns a contiguous []byte view, copying only if this
// ByteString is segmented.
func (b ByteString) materialize() []byte {
	if b.segs == nil {
		return b.data
	}
	return b.Bytes()
}

// Substring returns the bytes in [beginIndex, endIndex) as a new, contiguous
// ByteString.
func (b ByteString) Substring(beginIndex, endIndex int) ByteString {
	if beginIndex < 0 || endIndex > b.Size() || beginIndex > endIndex {
		panic("okio: invalid substring range")
	}
	if beginIndex == 0 && endIndex == b.Size() && b.segs == nil {
		return b
	}
	out := make([]byte, endIndex-beginIndex)
	for i := range out {
		out[i] = b.At(beginIndex + i)
	}
	return ByteString{data: out}
}

// Utf8 decodes the bytes as UTF-8, substituting U+FFFD for malformed runs.
func (b ByteString) Utf8() string {
	return decodeUTF8Lossy(b.materialize())
}

// Hex returns a lowercase hexadecimal encoding.
func (b ByteString) Hex() string {
	return hex.EncodeToString(b.materialize())
}

// Base64 returns a standard, padded base64 encoding.
func (b ByteString) Base64() string {
	return base64.StdEncoding.EncodeToString(b.materialize())
}

// Base64Url returns a URL-safe, unpadded base64 encoding.
func (b ByteString) Base64Url() string {
	return base64.RawURLEncoding.EncodeToString(b.materialize())
}

// Equal reports whether b and other contain exactly the same bytes.
func (b ByteString) Equal(other ByteString) bool {
	if b.Size() != other.Size() {
		return false
	}
	if b.segs == nil && other.segs == nil {
		return bytes.Equal(b.data, other.data)
	}
	for i := 0; i < b.Size(); i++ {
		if b.At(i) != other.At(i) {
			return false
		}
	}
	return true
}

// HashCode returns a cached, deterministic hash of the content, following
// the classic 31*h+b accumulation used throughout the source ecosystem's
// immutable value types.
func (b *ByteString) HashCode() uint32 {
	if b.hashSet {
		return b.hash
	}
	var h uint32
	n := b.Size()
	for i := 0; i < n; i++ {
		h = h*31 + uint32(b.At(i))
	}
	b.hash = h
	b.hashSet = true
	return h
}

// StartsWith reports whether b begins with prefix.
func (b ByteString) StartsWith(prefix ByteString) bool {
	if prefix.Size() > b.Size() {
		return false
	}
	return b.Substring(0, prefix.Size()).Equal(prefix)
}

// EndsWith reports whether b ends with suffix.
func (b ByteString) EndsWith(suffix ByteString) bool {
	if suffix.Size() > b.Size() {
		return false
	}
	return b.Substring(b.Size()-suffix.Size(), b.Size()).Equal(suffix)
}

// IndexOf returns the least index >= fromIndex at which other occurs, using
// a naive scan, or -1.
func (b ByteString) IndexOf(other ByteString, fromIndex int) int {
	n, m := b.Size(), other.Size()
	if m == 0 {
		if fromIndex < 0 {
			return 0
		}
		return fromIndex
	}
	if fromIndex < 0 {
		fromIndex = 0
	}
	for i := fromIndex; i+m <= n; i++ {
		match := true
		for j := 0; j < m; j++ {
			if b.At(i+j) != other.At(j) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

// ToAsciiLowercase returns a copy with ASCII 'A'-'Z' mapped to lowercase.
func (b ByteString) ToAsciiLowercase() ByteString {
	out := b.Bytes()
	for i, c := range out {
		if c >= 'A' && c <= 'Z' {
			out[i] = c + ('a' - 'A')
		}
	}
	return ByteString{data: out}
}

// ToAsciiUppercase returns a copy with ASCII 'a'-'z' mapped to uppercase.
func (b ByteString) ToAsciiUppercase() ByteString {
	out := b.Bytes()
	for i, c := range out {
		if c >= 'a' && c <= 'z' {
			out[i] = c - ('a' - 'A')
		}
	}
	return ByteString{data: out}
}

// Digest returns the digest of the content under the given algorithm.
func (b ByteString) Digest(alg HashAlgorithm) ByteString {
	h := newDigest(alg)
	h.Write(b.materialize())
	return ByteString{data: h.Sum(nil)}
}

// Hmac returns the HMAC of the content under the given algorithm and key.
// key must not be empty.
func (b ByteString) Hmac(alg HashAlgorithm, key ByteString) (ByteString, error) {
	if key.Size() == 0 {
		return ByteString{}, ErrInvalidArgument
	}
	h := hmac.New(func() hash.Hash { return newDigest(alg) }, key.materialize())
	h.Write(b.materialize())
	return ByteString{data: h.Sum(nil)}, nil
}

// String implements fmt.Stringer, printing the decoded text when it is
// printable ASCII/UTF-8 of modest length, and a hex summary otherwise.
func (b ByteString) String() string {
	n := b.Size()
	if n == 0 {
		return "[size=0]"
	}
	if n <= 64 {
		raw := b.materialize()
		if isPrintableUTF8(raw) {
			return fmt.Sprintf("[text=%s]", decodeUTF8Lossy(raw))
		}
	}
	return fmt.Sprintf("[size=%d hex=%s]", n, b.Hex())
}

func isPrintableUTF8(raw []byte) bool {
	s := decodeUTF8Lossy(raw)
	for _, r := range s {
		if r == '�' {
			return false
		}
		if r < 0x20 && r != '\n' && r != '\t' {
			return false
		}
	}
	return true
}
