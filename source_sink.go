// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

// Source is a producer of bytes, pulled on demand into a Buffer. It is the
// inbound half of the stream abstraction (spec §4.3); BufferedSource wraps
// one to add typed reads.
//
// Named ReadAtMost (rather than Read) because its signature differs from
// io.Reader.Read([]byte): it always drains into a Buffer and may move whole
// segments by pointer instead of copying bytes. Buffer, FileSource, and the
// gzip/hashing adapters all implement this directly; Buffer additionally
// implements io.Reader for stdlib interop.
type Source interface {
	// ReadAtMost reads at least 1 and at most byteCount bytes into sink,
	// returning the number of bytes read, or -1 if this source is exhausted
	// and no bytes were read. byteCount must be >= 0; a byteCount of 0 on a
	// non-exhausted source returns 0. For byteCount > 0, implementations
	// never return 0 with a nil error: either progress was made or the
	// source reports -1/EOF.
	ReadAtMost(sink *Buffer, byteCount int64) (int64, error)

	// Timeout returns the timeout governing this source's blocking calls.
	Timeout() *Timeout

	// Close releases the underlying resource. Idempotent.
	Close() error
}

// Sink is a consumer of bytes, pushed on demand from a Buffer. It is the
// outbound half of the stream abstraction (spec §4.3).
//
// Named WriteExactly (rather than Write) for the same reason as
// Source.ReadAtMost: the signature takes a *Buffer and an explicit count,
// not a []byte, so it cannot collide with io.Writer.Write.
type Sink interface {
	// WriteExactly removes exactly byteCount bytes from source and writes
	// them to the underlying resource. byteCount must be >= 0 and <=
	// source.Size().
	WriteExactly(source *Buffer, byteCount int64) error

	// Flush pushes any buffered bytes to their ultimate destination.
	Flush() error

	// Timeout returns the timeout governing this sink's blocking calls.
	Timeout() *Timeout

	// Close flushes then releases the underlying resource. Idempotent.
	Close() error
}

var (
	_ Source = (*Buffer)(nil)
	_ Sink   = (*Buffer)(nil)
)
