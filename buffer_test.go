// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/okio"
)

func TestBuffer_WriteReadUTF8(t *testing.T) {
	buf := okio.NewBuffer()
	buf.WriteUTF8("hello, 世界")

	got, err := buf.ReadUTF8All()
	if err != nil {
		t.Fatalf("ReadUTF8All: %v", err)
	}
	if got != "hello, 世界" {
		t.Errorf("ReadUTF8All = %q, want %q", got, "hello, 世界")
	}
	if buf.Size() != 0 {
		t.Errorf("Size after full read = %d, want 0", buf.Size())
	}
}

func TestBuffer_TypedIntegers(t *testing.T) {
	buf := okio.NewBuffer()
	buf.WriteByte(0x42)
	buf.WriteShort(0x1234)
	buf.WriteIntLe(0x01020304)
	buf.WriteLong(0x0102030405060708)

	if b, err := buf.ReadByte(); err != nil || b != 0x42 {
		t.Errorf("ReadByte = %#x, %v; want 0x42, nil", b, err)
	}
	if s, err := buf.ReadShort(); err != nil || s != 0x1234 {
		t.Errorf("ReadShort = %#x, %v; want 0x1234, nil", s, err)
	}
	if v, err := buf.ReadIntLe(); err != nil || v != 0x01020304 {
		t.Errorf("ReadIntLe = %#x, %v; want 0x01020304, nil", v, err)
	}
	if v, err := buf.ReadLong(); err != nil || v != 0x0102030405060708 {
		t.Errorf("ReadLong = %#x, %v; want 0x0102030405060708, nil", v, err)
	}
}

func TestBuffer_SpansMultipleSegments(t *testing.T) {
	buf := okio.NewBuffer()
	want := strings.Repeat("abcdefgh", okio.SegmentSize) // several segments
	buf.WriteUTF8(want)

	if buf.Size() != int64(len(want)) {
		t.Fatalf("Size = %d, want %d", buf.Size(), len(want))
	}
	got, err := buf.ReadUTF8All()
	if err != nil {
		t.Fatalf("ReadUTF8All: %v", err)
	}
	if got != want {
		t.Errorf("round trip mismatch: got %d bytes, want %d", len(got), len(want))
	}
}

func TestBuffer_SnapshotIsIndependent(t *testing.T) {
	buf := okio.NewBuffer()
	buf.WriteUTF8("snapshot me")
	snap := buf.Snapshot()

	buf.Clear()
	buf.WriteUTF8("different content entirely")

	if snap.Utf8() != "snapshot me" {
		t.Errorf("snapshot mutated after source buffer changed: got %q", snap.Utf8())
	}
}

func TestBuffer_IndexOfByte(t *testing.T) {
	buf := okio.NewBuffer()
	buf.WriteUTF8("the quick brown fox")

	idx := buf.IndexOfByte('q', 0, buf.Size())
	if idx != 4 {
		t.Errorf("IndexOfByte('q') = %d, want 4", idx)
	}
	if idx := buf.IndexOfByte('z', 0, buf.Size()); idx != -1 {
		t.Errorf("IndexOfByte('z') = %d, want -1", idx)
	}
}

func TestBuffer_ReadDecimalLong(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"123", 123},
		{"-456", -456},
		{"0", 0},
		{"9223372036854775807", 9223372036854775807},
	}
	for _, c := range cases {
		buf := okio.NewBuffer()
		buf.WriteUTF8(c.in)
		got, err := buf.ReadDecimalLong()
		if err != nil {
			t.Errorf("ReadDecimalLong(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ReadDecimalLong(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestBuffer_ReadHexadecimalUnsignedLong(t *testing.T) {
	buf := okio.NewBuffer()
	buf.WriteUTF8("ff")
	got, err := buf.ReadHexadecimalUnsignedLong()
	if err != nil {
		t.Fatalf("ReadHexadecimalUnsignedLong: %v", err)
	}
	if got != 0xff {
		t.Errorf("ReadHexadecimalUnsignedLong = %#x, want 0xff", got)
	}
}

func TestBuffer_RequireAndRequest(t *testing.T) {
	buf := okio.NewBuffer()
	buf.WriteUTF8("12345")

	if !buf.Request(5) {
		t.Errorf("Request(5) = false, want true")
	}
	if buf.Request(6) {
		t.Errorf("Request(6) = true, want false")
	}
	if err := buf.Require(5); err != nil {
		t.Errorf("Require(5): %v", err)
	}
	if err := buf.Require(6); err == nil {
		t.Errorf("Require(6) = nil, want an error")
	}
}

func TestBuffer_TransferBetweenBuffers(t *testing.T) {
	src := okio.NewBuffer()
	src.WriteUTF8(strings.Repeat("x", okio.SegmentSize*3))

	dst := okio.NewBuffer()
	n, err := src.ReadAtMost(dst, okio.SegmentSize*2)
	if err != nil {
		t.Fatalf("ReadAtMost: %v", err)
	}
	if n != okio.SegmentSize*2 {
		t.Errorf("transferred %d bytes, want %d", n, okio.SegmentSize*2)
	}
	if src.Size() != okio.SegmentSize {
		t.Errorf("src.Size() = %d, want %d", src.Size(), okio.SegmentSize)
	}
	if dst.Size() != okio.SegmentSize*2 {
		t.Errorf("dst.Size() = %d, want %d", dst.Size(), okio.SegmentSize*2)
	}
}

func TestBuffer_DigestMD5(t *testing.T) {
	buf := okio.NewBuffer()
	buf.WriteUTF8("")
	got := buf.Digest(okio.MD5)
	if got.Hex() != "d41d8cd98f00b204e9800998ecf8427e" {
		t.Errorf("MD5 of empty string = %s, want d41d8cd98f00b204e9800998ecf8427e", got.Hex())
	}
}

func TestBuffer_HmacRejectsEmptyKey(t *testing.T) {
	buf := okio.NewBuffer()
	buf.WriteUTF8("data")
	if _, err := buf.Hmac(okio.SHA256, okio.ByteString{}); err == nil {
		t.Errorf("Hmac with empty key = nil error, want an error")
	}
}

func TestBuffer_ReadUTF8Line(t *testing.T) {
	buf := okio.NewBuffer()
	buf.WriteUTF8("first\r\nsecond\nthird")

	line, err := buf.ReadUTF8Line()
	if err != nil || line != "first" {
		t.Errorf("line 1 = %q, %v; want %q, nil", line, err, "first")
	}
	line, err = buf.ReadUTF8Line()
	if err != nil || line != "second" {
		t.Errorf("line 2 = %q, %v; want %q, nil", line, err, "second")
	}
	line, err = buf.ReadUTF8Line()
	if err != nil || line != "third" {
		t.Errorf("line 3 = %q, %v; want %q, nil", line, err, "third")
	}
}
