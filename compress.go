package ndtf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Compressor is the whole-payload byte transform used for compressed files.
// The file does not record which compressor wrote it; readers must use the
// same one as the writer.
type Compressor interface {
	// Compress returns the compressed form of src.
	Compress(src []byte) ([]byte, error)
	// Decompress inflates src into exactly size bytes or fails.
	Decompress(src []byte, size int) ([]byte, error)
}

// DefaultCompressor returns the zlib compressor used when none is configured.
func DefaultCompressor() Compressor {
	return ZlibCompressor{}
}

// ZlibCompressor stores payloads as a zlib stream.
type ZlibCompressor struct {
	// Level is a zlib compression level; zero selects zlib.DefaultCompression.
	Level int
}

// Compress implements Compressor.
func (c ZlibCompressor) Compress(src []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = zlib.DefaultCompression
	}

	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		return nil, err
	}
	if _, err := w.Write(src); err != nil {
		_ = w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress implements Compressor. Output grows with the stream, so a
// claimed size never drives an allocation on its own.
func (ZlibCompressor) Decompress(src []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrSizeMismatch, size)
	}

	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	var out bytes.Buffer
	if _, err := io.Copy(&out, io.LimitReader(r, int64(size)+1)); err != nil {
		return nil, err
	}
	if out.Len() != size {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, size, out.Len())
	}

	return out.Bytes(), nil
}

// zstdMinDecoderMemory keeps small payloads above the minimum frame window.
const zstdMinDecoderMemory = 1 << 20

// ZstdCompressor stores payloads as a single zstd frame.
type ZstdCompressor struct {
	// Level is the encoder level; zero selects zstd.SpeedDefault.
	Level zstd.EncoderLevel
}

// Compress implements Compressor.
func (c ZstdCompressor) Compress(src []byte) ([]byte, error) {
	level := c.Level
	if level == 0 {
		level = zstd.SpeedDefault
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	defer func() { _ = enc.Close() }()

	return enc.EncodeAll(src, nil), nil
}

// Decompress implements Compressor.
func (ZstdCompressor) Decompress(src []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrSizeMismatch, size)
	}

	dec, err := zstd.NewReader(nil,
		zstd.WithDecoderConcurrency(1),
		zstd.WithDecoderMaxMemory(max(uint64(size), zstdMinDecoderMemory)),
	)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	out, err := dec.DecodeAll(src, nil)
	if err != nil {
		return nil, err
	}
	if len(out) != size {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, size, len(out))
	}

	return out, nil
}
