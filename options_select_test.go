// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio_test

import (
	"testing"

	"code.hybscloud.com/okio"
)

func TestBufferedSource_Select(t *testing.T) {
	options := okio.NewSelectOptions(
		okio.FromUTF8("first"),
		okio.FromUTF8("second"),
		okio.FromUTF8("se"),
	)

	buf := okio.NewBuffer()
	buf.WriteUTF8("second and more")
	src := okio.NewBufferedSource(buf)

	idx, err := src.Select(options)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	// "second" is the longest match among the options that are a prefix
	// of "second and more".
	if idx != 1 {
		t.Errorf("Select() = %d, want 1 (\"second\")", idx)
	}

	rest, err := src.ReadUTF8All()
	if err != nil {
		t.Fatalf("ReadUTF8All: %v", err)
	}
	if rest != " and more" {
		t.Errorf("remaining = %q, want %q", rest, " and more")
	}
}

func TestBufferedSource_SelectNoMatch(t *testing.T) {
	options := okio.NewSelectOptions(okio.FromUTF8("yes"), okio.FromUTF8("no"))
	buf := okio.NewBuffer()
	buf.WriteUTF8("maybe")
	src := okio.NewBufferedSource(buf)

	idx, err := src.Select(options)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if idx != -1 {
		t.Errorf("Select() = %d, want -1", idx)
	}
}
