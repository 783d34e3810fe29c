// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

import "errors"

var (
	// ErrInvalidArgument reports a negative byteCount/offset or other
	// caller-supplied value that can never be valid.
	ErrInvalidArgument = errors.New("okio: invalid argument")

	// ErrClosed reports use of a Source, Sink, or cursor after Close.
	ErrClosed = errors.New("okio: closed")

	// ErrPrematureEndOfInput reports that a typed read or Buffer.Require
	// could not be satisfied because the buffer or stream ran out of bytes.
	ErrPrematureEndOfInput = errors.New("okio: premature end of input")

	// ErrIllegalState reports an operation invalid in the object's current
	// state (e.g. expanding or resizing a buffer through a read-only cursor).
	ErrIllegalState = errors.New("okio: illegal state")

	// ErrInterruptedIO reports that a blocking operation was cancelled by a
	// Timeout deadline or by thread interruption.
	ErrInterruptedIO = errors.New("okio: interrupted")

	// ErrProtocol reports malformed gzip/deflate/base64 input.
	ErrProtocol = errors.New("okio: protocol error")
)
