package ndtf

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// ReadOptions configures NDTF decoding.
type ReadOptions struct {
	// DesiredFormat reformats the payload after decoding; FormatNone keeps
	// the stored format.
	DesiredFormat Format
	// Compressor inflates compressed payloads. Nil uses DefaultCompressor.
	Compressor Compressor
}

func (o *ReadOptions) compressor() Compressor {
	if o == nil || o.Compressor == nil {
		return DefaultCompressor()
	}
	return o.Compressor
}

func (o *ReadOptions) desired() Format {
	if o == nil {
		return FormatNone
	}
	return o.DesiredFormat
}

// Decode decodes an NDTF byte stream. It returns the file and the format
// stored in the stream.
func Decode(data []byte) (*File, Format, error) {
	return DecodeWithOptions(data, nil)
}

// DecodeWithOptions decodes an NDTF byte stream with the given options.
// The returned format is the one stored in the stream, before any reformat.
// On error the file is nil.
func DecodeWithOptions(data []byte, opts *ReadOptions) (*File, Format, error) {
	var header Header
	if err := header.UnmarshalBinary(data); err != nil {
		return nil, FormatNone, err
	}
	if err := header.Validate(); err != nil {
		return nil, FormatNone, err
	}

	expected, err := header.DataSize()
	if err != nil {
		return nil, FormatNone, err
	}

	payload, err := decodePayload(&header, data[HeaderSize:], expected, opts.compressor())
	if err != nil {
		return nil, FormatNone, err
	}

	f := &File{Header: header, Data: payload}
	if !f.Valid() {
		return nil, FormatNone, fmt.Errorf("%w: zero width or height", ErrInvalidFile)
	}

	stored := header.Format
	if err := f.Reformat(opts.desired()); err != nil {
		return nil, FormatNone, err
	}

	return f, stored, nil
}

// decodePayload returns an owned copy of the raw payload.
func decodePayload(header *Header, payload []byte, expected int, c Compressor) ([]byte, error) {
	if !header.Compressed() {
		if len(payload) != expected {
			return nil, fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, expected, len(payload))
		}
		out := make([]byte, expected)
		copy(out, payload)
		return out, nil
	}

	if len(payload) < sizePrefixLen {
		return nil, fmt.Errorf("%w: missing size prefix", ErrDecompress)
	}
	stated := binary.LittleEndian.Uint64(payload[:sizePrefixLen])
	if stated != uint64(expected) {
		return nil, fmt.Errorf("%w: header implies %d, stream states %d", ErrSizeMismatch, expected, stated)
	}

	out, err := c.Decompress(payload[sizePrefixLen:], expected)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecompress, err)
	}
	if len(out) != expected {
		return nil, fmt.Errorf("%w: expected %d, got %d", ErrSizeMismatch, expected, len(out))
	}

	return out, nil
}

// Read reads and decodes an NDTF stream.
func Read(r io.Reader, opts *ReadOptions) (*File, Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, FormatNone, fmt.Errorf("%w: %v", ErrReadFile, err)
	}

	return DecodeWithOptions(data, opts)
}

// Load reads and decodes an NDTF file.
func Load(path string) (*File, Format, error) {
	return LoadWithOptions(path, nil)
}

// LoadWithOptions reads and decodes an NDTF file with the given options.
func LoadWithOptions(path string, opts *ReadOptions) (*File, Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, FormatNone, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return Read(f, opts)
}

// ReadConfig reads and validates the header of an NDTF file without
// decoding the payload.
func ReadConfig(path string) (Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = f.Close() }()

	return ReadHeader(f)
}

// ReadHeader reads and validates a header from r.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Header{}, fmt.Errorf("%w: %v", ErrReadFile, err)
	}

	var header Header
	if err := header.UnmarshalBinary(buf[:n]); err != nil {
		return Header{}, err
	}
	if err := header.Validate(); err != nil {
		return Header{}, err
	}

	return header, nil
}
