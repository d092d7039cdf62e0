package compression

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Algorithm identifies a compression format
type Algorithm int

const (
	// None marks uncompressed data
	None Algorithm = iota
	// Gzip is RFC 1952 GZIP
	Gzip
	// Zstd is RFC 8878 Zstandard
	Zstd
)

// String returns the algorithm name
func (a Algorithm) String() string {
	switch a {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", int(a))
	}
}

// ParseAlgorithm parses an algorithm from its name
func ParseAlgorithm(name string) (Algorithm, error) {
	switch name {
	case "none", "":
		return None, nil
	case "gzip":
		return Gzip, nil
	case "zstd":
		return Zstd, nil
	default:
		return None, fmt.Errorf("unknown compression algorithm: %q", name)
	}
}

// Compressor compresses and decompresses whole documents
type Compressor struct {
	algorithm Algorithm
	level     int
}

// NewCompressor creates a compressor with the default level of the algorithm
func NewCompressor(algorithm Algorithm) *Compressor {
	level := gzip.DefaultCompression
	if algorithm == Zstd {
		level = int(zstd.SpeedDefault)
	}
	return &Compressor{algorithm: algorithm, level: level}
}

// NewCompressorWithLevel creates a compressor with an explicit level. GZIP
// levels range from -2 to 9, Zstandard levels are zstd.EncoderLevel values.
func NewCompressorWithLevel(algorithm Algorithm, level int) *Compressor {
	return &Compressor{algorithm: algorithm, level: level}
}

// Algorithm returns the compressor's algorithm
func (c *Compressor) Algorithm() Algorithm {
	return c.algorithm
}

// Compress compresses data. None returns a copy of data.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	switch c.algorithm {
	case None:
		return bytes.Clone(data), nil
	case Gzip:
		return compressGzip(data, c.level)
	case Zstd:
		return compressZstd(data, c.level)
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", c.algorithm)
	}
}

// Decompress decompresses data produced by the compressor's algorithm
func (c *Compressor) Decompress(data []byte) ([]byte, error) {
	switch c.algorithm {
	case None:
		return bytes.Clone(data), nil
	case Gzip:
		return decompressGzip(data)
	case Zstd:
		return decompressZstd(data)
	default:
		return nil, fmt.Errorf("unsupported compression algorithm: %s", c.algorithm)
	}
}

func compressGzip(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer

	writer, err := gzip.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip writer: %w", err)
	}

	return buf.Bytes(), nil
}

func decompressGzip(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer reader.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, reader); err != nil {
		return nil, fmt.Errorf("failed to read compressed data: %w", err)
	}

	return buf.Bytes(), nil
}

func compressZstd(data []byte, level int) ([]byte, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.EncoderLevel(level)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	defer encoder.Close()
	return encoder.EncodeAll(data, nil), nil
}

func decompressZstd(data []byte) ([]byte, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	defer decoder.Close()

	out, err := decoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to read compressed data: %w", err)
	}
	return out, nil
}
