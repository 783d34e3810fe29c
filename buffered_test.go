// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio_test

import (
	"strings"
	"testing"

	"code.hybscloud.com/okio"
)

func TestBufferedSource_ReadUTF8Line(t *testing.T) {
	underlying := okio.NewBuffer()
	underlying.WriteUTF8("alpha\nbeta\ngamma")
	src := okio.NewBufferedSource(underlying)

	for _, want := range []string{"alpha", "beta", "gamma"} {
		got, err := src.ReadUTF8Line()
		if err != nil {
			t.Fatalf("ReadUTF8Line: %v", err)
		}
		if got != want {
			t.Errorf("ReadUTF8Line() = %q, want %q", got, want)
		}
	}
}

func TestBufferedSource_RequireFailsPastExhaustion(t *testing.T) {
	underlying := okio.NewBuffer()
	underlying.WriteUTF8("abc")
	src := okio.NewBufferedSource(underlying)

	if err := src.Require(3); err != nil {
		t.Errorf("Require(3): %v", err)
	}
	if err := src.Require(4); err == nil {
		t.Errorf("Require(4) = nil, want an error")
	}
}

func TestBufferedSource_Peek(t *testing.T) {
	underlying := okio.NewBuffer()
	underlying.WriteUTF8("peek at me")
	src := okio.NewBufferedSource(underlying)

	peeked := src.Peek()
	peekedAll, err := peeked.ReadUTF8All()
	if err != nil {
		t.Fatalf("peeked ReadUTF8All: %v", err)
	}
	if peekedAll != "peek at me" {
		t.Errorf("peeked content = %q, want %q", peekedAll, "peek at me")
	}

	originalAll, err := src.ReadUTF8All()
	if err != nil {
		t.Fatalf("original ReadUTF8All: %v", err)
	}
	if originalAll != "peek at me" {
		t.Errorf("original content after peek = %q, want %q", originalAll, "peek at me")
	}
}

func TestBufferedSink_WriteAndEmit(t *testing.T) {
	dst := okio.NewBuffer()
	sink := okio.NewBufferedSink(dst)

	if _, err := sink.WriteUTF8("buffered content"); err != nil {
		t.Fatalf("WriteUTF8: %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}

	got, err := dst.ReadUTF8All()
	if err != nil {
		t.Fatalf("ReadUTF8All: %v", err)
	}
	if got != "buffered content" {
		t.Errorf("got %q, want %q", got, "buffered content")
	}
}

func TestBufferedSource_ReadByteString(t *testing.T) {
	underlying := okio.NewBuffer()
	underlying.WriteUTF8(strings.Repeat("q", 20))
	src := okio.NewBufferedSource(underlying)

	bs, err := src.ReadByteString(10)
	if err != nil {
		t.Fatalf("ReadByteString: %v", err)
	}
	if bs.Size() != 10 {
		t.Errorf("ReadByteString size = %d, want 10", bs.Size())
	}
}
