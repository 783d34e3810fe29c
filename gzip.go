// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package okio

import (
	"compress/flate"
	"compress/gzip"
	"errors"
	"io"
)

// GzipSource decompresses an RFC 1952 gzip stream read from an underlying
// Source (spec §4.8/§6). Built on the standard library's compress/gzip,
// which already produces the exact header/trailer byte layout the format
// requires; BufferedSource supplies the io.Reader compress/gzip needs.
type GzipSource struct {
	source *BufferedSource
	gz     *gzip.Reader
}

// NewGzipSource wraps source, failing with ErrProtocol if the gzip header
// is malformed.
func NewGzipSource(source Source) (*GzipSource, error) {
	bs := NewBufferedSource(source)
	gz, err := gzip.NewReader(bs)
	if err != nil {
		return nil, ErrProtocol
	}
	return &GzipSource{source: bs, gz: gz}, nil
}

func (s *GzipSource) ReadAtMost(sink *Buffer, byteCount int64) (int64, error) {
	if byteCount < 0 {
		return 0, ErrInvalidArgument
	}
	if byteCount == 0 {
		return 0, nil
	}
	buf := make([]byte, min(byteCount, SegmentSize))
	n, err := s.gz.Read(buf)
	if n > 0 {
		sink.writeExact(buf[:n])
	}
	if err != nil {
		if err == io.EOF {
			if n == 0 {
				return -1, nil
			}
			return int64(n), nil
		}
		return int64(n), ErrProtocol
	}
	if n == 0 {
		return -1, nil
	}
	return int64(n), nil
}

func (s *GzipSource) Timeout() *Timeout { return s.source.Timeout() }

func (s *GzipSource) Close() error {
	return errors.Join(s.gz.Close(), s.source.Close())
}

var _ Source = (*GzipSource)(nil)

// GzipSink compresses to an underlying Sink as an RFC 1952 gzip stream.
type GzipSink struct {
	sink *BufferedSink
	gz   *gzip.Writer
}

// NewGzipSink wraps sink.
func NewGzipSink(sink Sink) *GzipSink {
	bs := NewBufferedSink(sink)
	gz := gzip.NewWriter(bs)
	gz.OS = 0
	return &GzipSink{sink: bs, gz: gz}
}

func (s *GzipSink) WriteExactly(source *Buffer, byteCount int64) error {
	if byteCount < 0 || byteCount > source.size {
		return ErrInvalidArgument
	}
	for byteCount > 0 {
		seg := source.head
		n := min(seg.len(), int(byteCount))
		if _, err := s.gz.Write(seg.data[seg.pos : seg.pos+n]); err != nil {
			return err
		}
		seg.pos += n
		source.size -= int64(n)
		byteCount -= int64(n)
		if seg.pos == seg.limit {
			source.popHead()
		}
	}
	return nil
}

func (s *GzipSink) Flush() error {
	if err := s.gz.Flush(); err != nil {
		return err
	}
	return s.sink.Flush()
}

func (s *GzipSink) Timeout() *Timeout { return s.sink.Timeout() }

func (s *GzipSink) Close() error {
	return errors.Join(s.gz.Close(), s.sink.Close())
}

var _ Sink = (*GzipSink)(nil)

// DeflaterSink compresses to an underlying Sink as a raw DEFLATE (RFC 1951)
// stream, with no gzip framing (spec §4.8 supplement).
type DeflaterSink struct {
	sink *BufferedSink
	fw   *flate.Writer
}

// NewDeflaterSink wraps sink at the given compression level (flate.*
// constants, or flate.DefaultCompression).
func NewDeflaterSink(sink Sink, level int) (*DeflaterSink, error) {
	bs := NewBufferedSink(sink)
	fw, err := flate.NewWriter(bs, level)
	if err != nil {
		return nil, err
	}
	return &DeflaterSink{sink: bs, fw: fw}, nil
}

func (s *DeflaterSink) WriteExactly(source *Buffer, byteCount int64) error {
	if byteCount < 0 || byteCount > source.size {
		return ErrInvalidArgument
	}
	for byteCount > 0 {
		seg := source.head
		n := min(seg.len(), int(byteCount))
		if _, err := s.fw.Write(seg.data[seg.pos : seg.pos+n]); err != nil {
			return err
		}
		seg.pos += n
		source.size -= int64(n)
		byteCount -= int64(n)
		if seg.pos == seg.limit {
			source.popHead()
		}
	}
	return nil
}

func (s *DeflaterSink) Flush() error {
	if err := s.fw.Flush(); err != nil {
		return err
	}
	return s.sink.Flush()
}

func (s *DeflaterSink) Timeout() *Timeout { return s.sink.Timeout() }

func (s *DeflaterSink) Close() error {
	return errors.Join(s.fw.Close(), s.sink.Close())
}

var _ Sink = (*DeflaterSink)(nil)

// InflaterSource decompresses a raw DEFLATE stream read from an underlying
// Source.
type InflaterSource struct {
	source *BufferedSource
	fr     io.ReadCloser
}

// NewInflaterSource wraps source.
func NewInflaterSource(source Source) *InflaterSource {
	bs := NewBufferedSource(source)
	return &InflaterSource{source: bs, fr: flate.NewReader(bs)}
}

func (s *InflaterSource) ReadAtMost(sink *Buffer, byteCount int64) (int64, error) {
	if byteCount < 0 {
		return 0, ErrInvalidArgument
	}
	if byteCount == 0 {
		return 0, nil
	}
	buf := make([]byte, min(byteCount, SegmentSize))
	n, err := s.fr.Read(buf)
	if n > 0 {
		sink.writeExact(buf[:n])
	}
	if err != nil {
		if err == io.EOF {
			if n == 0 {
				return -1, nil
			}
			return int64(n), nil
		}
		return int64(n), ErrProtocol
	}
	if n == 0 {
		return -1, nil
	}
	return int64(n), nil
}

func (s *InflaterSource) Timeout() *Timeout { return s.source.Timeout() }

func (s *InflaterSource) Close() error {
	return errors.Join(s.fr.Close(), s.source.Close())
}

var _ Source = (*InflaterSource)(nil)
