package ndtf

import (
	"bytes"
	"fmt"
	"io"

	"github.com/pierrec/lz4/v4"
)

const (
	// ChunkSize is the LZ4 chunk-stream chunk size.
	ChunkSize = 64 * 1024

	chunkFlagLast   = 0x80
	chunkFlagStored = 0x40
	chunkMaxSize    = 0x7FFFFF
)

// LZ4Compressor stores payloads as an LZ4 chunk stream: every 64 KiB chunk
// is prefixed with a 3-byte little-endian size and a flags byte (0x80 last
// chunk, 0x40 stored uncompressed). Chunks decode against a rolling 64 KiB
// dictionary of previous output.
type LZ4Compressor struct{}

// Compress implements Compressor.
func (LZ4Compressor) Compress(src []byte) ([]byte, error) {
	var stream bytes.Buffer
	compressBuf := make([]byte, lz4.CompressBlockBound(ChunkSize))

	if len(src) == 0 {
		writeChunkHeader(&stream, 0, chunkFlagLast|chunkFlagStored)
		return stream.Bytes(), nil
	}

	for i := 0; i < len(src); i += ChunkSize {
		end := min(i+ChunkSize, len(src))
		chunk := src[i:end]

		var flags byte
		if end == len(src) {
			flags |= chunkFlagLast
		}

		cn, err := lz4.CompressBlockHC(chunk, compressBuf, 0, nil, nil)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCompress, err)
		}
		if cn == 0 || cn >= len(chunk) {
			writeChunkHeader(&stream, len(chunk), flags|chunkFlagStored)
			stream.Write(chunk)
			continue
		}
		if cn > chunkMaxSize {
			return nil, fmt.Errorf("%w: %d", ErrChunkTooLarge, cn)
		}

		writeChunkHeader(&stream, cn, flags)
		stream.Write(compressBuf[:cn])
	}

	return stream.Bytes(), nil
}

func writeChunkHeader(w *bytes.Buffer, size int, flags byte) {
	w.WriteByte(byte(size))
	w.WriteByte(byte(size >> 8))
	w.WriteByte(byte(size >> 16))
	w.WriteByte(flags)
}

// Decompress implements Compressor.
func (LZ4Compressor) Decompress(src []byte, size int) ([]byte, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: %d", ErrSizeMismatch, size)
	}

	const dictCap = 64 * 1024
	dict := make([]byte, dictCap)
	dictSize := 0

	// target grows one chunk at a time with the decoded stream.
	target := make([]byte, 0, min(size, ChunkSize))
	chunkBuf := make([]byte, ChunkSize)

	r := bytes.NewReader(src)

	for {
		if r.Len() < 4 {
			return nil, fmt.Errorf("%w: need 4 bytes header, have %d", ErrChunkStreamTruncated, r.Len())
		}

		var hdr [4]byte
		if _, err := io.ReadFull(r, hdr[:]); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkStreamTruncated, err)
		}

		cSize := int(hdr[0]) | (int(hdr[1]) << 8) | (int(hdr[2]) << 16)
		flags := hdr[3]
		if (flags &^ (chunkFlagLast | chunkFlagStored)) != 0 {
			return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownLZ4Flags, flags)
		}
		if cSize > r.Len() || (cSize == 0 && size != 0) {
			return nil, fmt.Errorf("%w: %d (remaining %d)", ErrInvalidChunkSize, cSize, r.Len())
		}

		chunk := make([]byte, cSize)
		if _, err := io.ReadFull(r, chunk); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrChunkStreamTruncated, err)
		}

		remaining := size - len(target)
		want := min(ChunkSize, remaining)

		var decoded []byte
		if flags&chunkFlagStored != 0 {
			if cSize > remaining {
				return nil, ErrDecodeOverrun
			}
			decoded = chunk
		} else {
			if remaining <= 0 {
				return nil, ErrDecodeOverrun
			}
			n, err := lz4.UncompressBlockWithDict(chunk, chunkBuf[:want], dict[:dictSize])
			if err != nil {
				return nil, fmt.Errorf("%w: %v", ErrDecompress, err)
			}
			decoded = chunkBuf[:n]
		}
		target = append(target, decoded...)

		if len(decoded) >= dictCap {
			copy(dict, decoded[len(decoded)-dictCap:])
			dictSize = dictCap
		} else {
			avail := dictCap - dictSize
			if len(decoded) <= avail {
				copy(dict[dictSize:], decoded)
				dictSize += len(decoded)
			} else {
				shift := len(decoded) - avail
				copy(dict, dict[shift:dictSize])
				copy(dict[dictCap-len(decoded):], decoded)
				dictSize = dictCap
			}
		}

		if (flags & chunkFlagLast) != 0 {
			break
		}
	}

	if len(target) != size {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, size, len(target))
	}
	if r.Len() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left after decode", ErrBlockLengthMismatch, r.Len())
	}

	return target, nil
}
