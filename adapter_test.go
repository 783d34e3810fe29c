// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio_test

import (
	"os"
	"path/filepath"
	"testing"

	"code.hybscloud.com/okio"
)

func TestFileSourceFileSink_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.txt")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	sink := okio.NewFileSink(f)
	buf := okio.NewBuffer()
	buf.WriteUTF8("written through FileSink")
	if err := sink.WriteExactly(buf, buf.Size()); err != nil {
		t.Fatalf("WriteExactly: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	rf, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	source := okio.NewFileSource(rf)
	defer source.Close()

	out := okio.NewBuffer()
	for {
		n, err := source.ReadAtMost(out, okio.SegmentSize)
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
	if got != "written through FileSink" {
		t.Errorf("got %q, want %q", got, "written through FileSink")
	}
}

func TestBlackhole_DiscardsEverything(t *testing.T) {
	src := okio.NewBuffer()
	src.WriteUTF8("gone")
	if err := okio.Blackhole.WriteExactly(src, src.Size()); err != nil {
		t.Fatalf("WriteExactly: %v", err)
	}
	if src.Size() != 0 {
		t.Errorf("source size after writing to Blackhole = %d, want 0", src.Size())
	}
}

func TestForwardingSink_DelegatesWrites(t *testing.T) {
	dst := okio.NewBuffer()
	fwd := okio.NewForwardingSink(dst)
	if fwd.Delegate() != okio.Sink(dst) {
		t.Errorf("Delegate() did not return the wrapped sink")
	}

	src := okio.NewBuffer()
	src.WriteUTF8("through the forwarder")
	if err := fwd.WriteExactly(src, src.Size()); err != nil {
		t.Fatalf("WriteExactly: %v", err)
	}
	got, err := dst.ReadUTF8All()
	if err != nil {
		t.Fatalf("ReadUTF8All: %v", err)
	}
	if got != "through the forwarder" {
		t.Errorf("got %q, want %q", got, "through the forwarder")
	}
}
