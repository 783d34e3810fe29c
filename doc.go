// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package okio provides a segmented byte buffer and a small set of
// source/sink stream abstractions layered over it, for allocation-light
// stream copying, framing, and codec work.
//
// # Buffer
//
// Buffer is the central data container: a doubly-linked ring of fixed-size
// segments that acts simultaneously as a Source and a Sink. Bytes written to
// a Buffer are appended to its tail segment; bytes read from a Buffer are
// consumed from its head segment. Moving bytes between two Buffers prefers
// to move whole segments by pointer rather than copying:
//
//	var a, b Buffer
//	a.WriteString("hello")
//	a.ReadAtMost(&b, 5) // segment handed to b by pointer when possible
//
// # Segment pool
//
// Segments are recycled through a process-wide, lock-free-ish bounded pool
// (see segmentPool) so that steady-state Buffer use does no allocation.
//
// # Streams
//
// Source and Sink are the pull/push stream primitives; BufferedSource and
// BufferedSink wrap them with a Buffer to add typed reads/writes, peeking,
// and line-oriented decoding. Both compose with the standard library: Buffer,
// BufferedSource, and BufferedSink implement the relevant io.Reader/io.Writer
// family interfaces.
//
// # Byte strings
//
// ByteString is an immutable, shareable byte sequence with hashing and
// base64/hex codecs. Buffer.Snapshot returns a ByteString that shares the
// buffer's segments without copying.
//
// # File systems
//
// Package okio/fs defines a portable file-system interface; okio/fs/memfs
// provides an in-memory implementation used for testing.
package okio
