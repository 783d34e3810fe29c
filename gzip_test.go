// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/okio"
)

func TestGzipRoundTrip(t *testing.T) {
	want := strings.Repeat("compress me please ", 500)

	compressed := okio.NewBuffer()
	gzSink := okio.NewGzipSink(compressed)
	source := okio.NewBuffer()
	source.WriteUTF8(want)
	if err := gzSink.WriteExactly(source, source.Size()); err != nil {
		t.Fatalf("WriteExactly: %v", err)
	}
	if err := gzSink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	gzSource, err := okio.NewGzipSource(compressed)
	if err != nil {
		t.Fatalf("NewGzipSource: %v", err)
	}
	out := okio.NewBuffer()
	for {
		n, err := gzSource.ReadAtMost(out, okio.SegmentSize)
		if err != nil {
			t.Fatalf("ReadAtMost: %v", err)
		}
		if n == -1 {
			break
		}
	}
	got, err := out.ReadUTF8All()
	if err != nil {
		t.Fatalf("ReadUTF8All: %v", err)
	}
	if got != want {
		t.Errorf("gzip round trip mismatch: got %d bytes, want %d", len(got), len(want))
	}
}

func TestGzipSink_HeaderBytesMatchRFC1952(t *testing.T) {
	compressed := okio.NewBuffer()
	gzSink := okio.NewGzipSink(compressed)
	source := okio.NewBuffer()
	source.WriteUTF8("x")
	if err := gzSink.WriteExactly(source, source.Size()); err != nil {
		t.Fatalf("WriteExactly: %v", err)
	}
	if err := gzSink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	header := compressed.Snapshot().Bytes()[:10]
	want := []byte{0x1f, 0x8b, 0x08, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
	for i := range want {
		if header[i] != want[i] {
			t.Fatalf("header = % x, want % x", header, want)
		}
	}
}

func TestDeflateRoundTrip(t *testing.T) {
	want := "raw deflate, no gzip framing"

	compressed := okio.NewBuffer()
	defSink, err := okio.NewDeflaterSink(compressed, -1)
	if err != nil {
		t.Fatalf("NewDeflaterSink: %v", err)
	}
	source := okio.NewBuffer()
	source.WriteUTF8(want)
	if err := defSink.WriteExactly(source, source.Size()); err != nil {
		t.Fatalf("WriteExactly: %v", err)
	}
	if err := defSink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	infSource := okio.NewInflaterSource(compressed)
	out := okio.NewBuffer()
	for {
		n, err := infSource.ReadAtMost(out, okio.SegmentSize)
		if err != nil {
			t.Fatalf("ReadAtMost: %v", err)
		}
		if n == -1 {
			break
		}
	}
	got, err := out.ReadUTF8All()
	if err != nil {
		t.Fatalf("ReadUTF8All: %v", err)
	}
	if got != want {
		t.Errorf("deflate round trip = %q, want %q", got, want)
	}
}
