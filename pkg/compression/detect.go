package compression

import (
	"bufio"
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// Detect returns the algorithm whose magic bytes start data
func Detect(data []byte) Algorithm {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		return Gzip
	case bytes.HasPrefix(data, zstdMagic):
		return Zstd
	default:
		return None
	}
}

// Decode decompresses data if it is compressed and returns it unchanged
// otherwise
func Decode(data []byte) ([]byte, error) {
	algorithm := Detect(data)
	if algorithm == None {
		return data, nil
	}
	return NewCompressor(algorithm).Decompress(data)
}

// Reader is a stream that is decompressed on the fly when its input is
// compressed
type Reader struct {
	io.Reader
	algorithm Algorithm
	close     func() error
}

// NewReader wraps r, decompressing it when it starts with a GZIP or
// Zstandard frame. Close releases the decompressor but not r.
func NewReader(r io.Reader) (*Reader, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(len(zstdMagic))
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("failed to read stream header: %w", err)
	}

	switch Detect(head) {
	case Gzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return &Reader{Reader: gz, algorithm: Gzip, close: gz.Close}, nil
	case Zstd:
		zr, err := zstd.NewReader(br)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
		}
		return &Reader{Reader: zr, algorithm: Zstd, close: func() error {
			zr.Close()
			return nil
		}}, nil
	default:
		return &Reader{Reader: br, algorithm: None, close: func() error { return nil }}, nil
	}
}

// Algorithm returns the detected compression of the underlying stream
func (r *Reader) Algorithm() Algorithm {
	return r.algorithm
}

// Close releases the decompressor
func (r *Reader) Close() error {
	return r.close()
}
