package ndtf

import "fmt"

// File is an in-memory NDTF texel array. It exclusively owns Data.
type File struct {
	Header Header
	// Data is the raw payload, little-endian, axis-0-fastest, channels interleaved.
	Data []byte
}

// Create allocates a zeroed file. Zero extents are raised to 1.
// Extents past dims are stored but do not contribute to the element count.
func Create(dims int, format Format, extents ...uint16) (*File, error) {
	if dims < MinDimensions || dims > MaxDimensions {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDimensions, dims)
	}
	if !format.Known() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
	}
	if len(extents) > MaxDimensions {
		return nil, fmt.Errorf("%w: %d extents", ErrInvalidDimensions, len(extents))
	}

	var ext [MaxDimensions]uint16
	for i := range ext {
		ext[i] = 1
		if i < len(extents) {
			ext[i] = max(extents[i], 1)
		}
	}

	header := newHeader(dims, format, ext)
	size, err := header.DataSize()
	if err != nil {
		return nil, err
	}

	return &File{Header: header, Data: make([]byte, size)}, nil
}

// Create2D allocates a 2D file.
func Create2D(format Format, width, height uint16) (*File, error) {
	return Create(2, format, width, height, 1, 1, 1)
}

// Create3D allocates a 3D file.
func Create3D(format Format, width, height, depth uint16) (*File, error) {
	return Create(3, format, width, height, depth, 1, 1)
}

// Create4D allocates a 4D file.
func Create4D(format Format, width, height, depth, w uint16) (*File, error) {
	return Create(4, format, width, height, depth, w, 1)
}

// Create5D allocates a 5D file.
func Create5D(format Format, width, height, depth, w, v uint16) (*File, error) {
	return Create(5, format, width, height, depth, w, v)
}

// Valid reports whether the file holds a payload and a non-zero width and height.
func (f *File) Valid() bool {
	return f != nil && f.Data != nil && f.Header.Extents[AxisX] != 0 && f.Header.Extents[AxisY] != 0
}

// Release drops the payload and zeroes the extents. Format and signature stay.
func (f *File) Release() {
	if !f.Valid() {
		return
	}
	f.Data = nil
	f.Header.Extents = [MaxDimensions]uint16{}
}

// Format returns the texel format.
func (f *File) Format() Format {
	return f.Header.Format
}

// Dimensions returns the axis count.
func (f *File) Dimensions() int {
	return int(f.Header.Dimensions)
}

// Extent returns the size along axis.
func (f *File) Extent(axis int) int {
	if axis < 0 || axis >= MaxDimensions {
		return 0
	}
	return int(f.Header.Extents[axis])
}

// Compressed reports whether the payload is written compressed.
func (f *File) Compressed() bool {
	return f.Header.Compressed()
}

// SetCompressed toggles payload compression for the next encode.
func (f *File) SetCompressed(on bool) {
	if on {
		f.Header.Flags |= FlagCompressed
	} else {
		f.Header.Flags &^= FlagCompressed
	}
}

// ElementCount returns the number of texels.
func (f *File) ElementCount() int {
	count, err := f.Header.ElementCount()
	if err != nil {
		return 0
	}
	n, err := intFromU64(count)
	if err != nil {
		return 0
	}
	return n
}

// DataSize returns the header-derived payload size in bytes.
func (f *File) DataSize() int {
	size, err := f.Header.DataSize()
	if err != nil {
		return 0
	}
	return size
}

// Clone returns a deep copy.
func (f *File) Clone() *File {
	out := &File{Header: f.Header}
	if f.Data != nil {
		out.Data = make([]byte, len(f.Data))
		copy(out.Data, f.Data)
	}
	return out
}
