package util

import (
	"bytes"
	stdbzip2 "compress/bzip2"
	"fmt"
	"io"

	"github.com/dsnet/compress/bzip2"
)

// BZip2Suffix is appended to an artifact path to name its compressed variant.
const BZip2Suffix = ".bz2"

// BZip2 compresses artifacts with bzip2 block compression.
// The zero value compresses at bzip2.BestCompression.
type BZip2 struct {
	Level int
}

// Suffix returns the filename marker for bzip2 artifacts.
func (BZip2) Suffix() string {
	return BZip2Suffix
}

// Compress returns the bzip2 stream for data. Output is a pure function of
// data and Level.
func (b BZip2) Compress(data []byte) ([]byte, error) {
	level := b.Level
	if level == 0 {
		level = bzip2.BestCompression
	}
	if level < bzip2.BestSpeed || level > bzip2.BestCompression {
		return nil, fmt.Errorf("%w: bzip2 level %d out of range", ErrInvalidConfig, level)
	}

	var buf bytes.Buffer
	w, err := bzip2.NewWriter(&buf, &bzip2.WriterConfig{Level: level})
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decompress reverses Compress.
func (BZip2) Decompress(data []byte) ([]byte, error) {
	return io.ReadAll(stdbzip2.NewReader(bytes.NewReader(data)))
}
