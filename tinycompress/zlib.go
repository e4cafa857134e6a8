// Package tinycompress writes zlib streams made of stored DEFLATE blocks.
// compress/flate pulls in large tables that do not fit on a SAMD21; the data
// dictionary only has to be readable by a standard zlib reader, not small.
package tinycompress

import (
	"errors"
	"hash/adler32"
	"io"
)

// maxBlock is the largest payload of one stored block.
const maxBlock = 0xFFFF

var ErrClosed = errors.New("tinycompress: write after close")

// Writer buffers everything written to it and emits the zlib stream on Close.
type Writer struct {
	w      io.Writer
	buf    []byte
	closed bool
}

// NewWriter returns a Writer that emits to w. sizeHint preallocates the input
// buffer so that Write does not grow it on the device.
func NewWriter(w io.Writer, sizeHint int) *Writer {
	return &Writer{w: w, buf: make([]byte, 0, sizeHint)}
}

// Write implements io.Writer.
func (z *Writer) Write(p []byte) (int, error) {
	if z.closed {
		return 0, ErrClosed
	}
	z.buf = append(z.buf, p...)
	return len(p), nil
}

// Close writes the header, the stored blocks and the Adler-32 trailer.
func (z *Writer) Close() error {
	if z.closed {
		return nil
	}
	z.closed = true
	_, err := z.w.Write(Store(z.buf))
	return err
}

// Store returns data wrapped as a complete zlib stream.
func Store(data []byte) []byte {
	blocks := (len(data) + maxBlock - 1) / maxBlock
	if blocks == 0 {
		blocks = 1
	}
	out := make([]byte, 0, 2+blocks*5+len(data)+4)
	out = append(out, 0x78, 0x01)

	rest := data
	for {
		n := len(rest)
		if n > maxBlock {
			n = maxBlock
		}
		var final byte
		if n == len(rest) {
			final = 1
		}
		l := uint16(n)
		out = append(out, final, byte(l), byte(l>>8), byte(^l), byte(^l>>8))
		out = append(out, rest[:n]...)
		rest = rest[n:]
		if final == 1 {
			break
		}
	}

	sum := adler32.Checksum(data)
	return append(out, byte(sum>>24), byte(sum>>16), byte(sum>>8), byte(sum))
}
