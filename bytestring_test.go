// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio_test

import (
	"testing"

	"code.hybscloud.com/okio"
)

func TestByteString_FromUTF8RoundTrip(t *testing.T) {
	bs := okio.FromUTF8("hello")
	if bs.Utf8() != "hello" {
		t.Errorf("Utf8() = %q, want %q", bs.Utf8(), "hello")
	}
	if bs.Size() != 5 {
		t.Errorf("Size() = %d, want 5", bs.Size())
	}
}

func TestByteString_HexRoundTrip(t *testing.T) {
	bs, err := okio.FromHex("deadbeef")
	if err != nil {
		t.Fatalf("FromHex: %v", err)
	}
	if bs.Hex() != "deadbeef" {
		t.Errorf("Hex() = %q, want %q", bs.Hex(), "deadbeef")
	}
}

func TestByteString_Base64RoundTrip(t *testing.T) {
	bs := okio.FromUTF8("any carnal pleasure")
	encoded := bs.Base64()

	decoded, err := okio.FromBase64(encoded)
	if err != nil {
		t.Fatalf("FromBase64: %v", err)
	}
	if decoded.Utf8() != "any carnal pleasure" {
		t.Errorf("round trip = %q, want %q", decoded.Utf8(), "any carnal pleasure")
	}
}

func TestByteString_Equal(t *testing.T) {
	a := okio.FromUTF8("same")
	b := okio.FromUTF8("same")
	c := okio.FromUTF8("different")

	if !a.Equal(b) {
		t.Errorf("a.Equal(b) = false, want true")
	}
	if a.Equal(c) {
		t.Errorf("a.Equal(c) = true, want false")
	}
}

func TestByteString_HashCodeStable(t *testing.T) {
	a := okio.FromUTF8("stable")
	h1 := a.HashCode()
	h2 := a.HashCode()
	if h1 != h2 {
		t.Errorf("HashCode not stable across calls: %d vs %d", h1, h2)
	}

	b := okio.FromUTF8("stable")
	if a.HashCode() != b.HashCode() {
		t.Errorf("equal ByteStrings hash differently")
	}
}

func TestByteString_Substring(t *testing.T) {
	bs := okio.FromUTF8("hello world")
	sub := bs.Substring(6, 11)
	if sub.Utf8() != "world" {
		t.Errorf("Substring(6,11) = %q, want %q", sub.Utf8(), "world")
	}
}

func TestByteString_StartsWithEndsWith(t *testing.T) {
	bs := okio.FromUTF8("hello world")
	if !bs.StartsWith(okio.FromUTF8("hello")) {
		t.Errorf("StartsWith(hello) = false, want true")
	}
	if !bs.EndsWith(okio.FromUTF8("world")) {
		t.Errorf("EndsWith(world) = false, want true")
	}
	if bs.StartsWith(okio.FromUTF8("world")) {
		t.Errorf("StartsWith(world) = true, want false")
	}
}

func TestByteString_ToAsciiCase(t *testing.T) {
	bs := okio.FromUTF8("MixedCase123")
	if got := bs.ToAsciiLowercase().Utf8(); got != "mixedcase123" {
		t.Errorf("ToAsciiLowercase() = %q, want %q", got, "mixedcase123")
	}
	if got := bs.ToAsciiUppercase().Utf8(); got != "MIXEDCASE123" {
		t.Errorf("ToAsciiUppercase() = %q, want %q", got, "MIXEDCASE123")
	}
}

func TestByteString_Digest(t *testing.T) {
	bs := okio.FromUTF8("")
	got := bs.Digest(okio.SHA256)
	want := "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
	if got.Hex() != want {
		t.Errorf("SHA256(\"\") = %s, want %s", got.Hex(), want)
	}
}
