package ndtf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Channel is a Go type that holds one channel value.
type Channel interface {
	uint8 | uint16 | uint32 | float32
}

// kindOf returns the channel kind matching T.
func kindOf[T Channel]() Kind {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return KindU8
	case uint16:
		return KindU16
	case uint32:
		return KindU32
	case float32:
		return KindF32
	default:
		return KindNone
	}
}

func getChannel[T Channel](b []byte) T {
	var v T
	switch p := any(&v).(type) {
	case *uint8:
		*p = b[0]
	case *uint16:
		*p = binary.LittleEndian.Uint16(b)
	case *uint32:
		*p = binary.LittleEndian.Uint32(b)
	case *float32:
		*p = math.Float32frombits(binary.LittleEndian.Uint32(b))
	}
	return v
}

func putChannel[T Channel](b []byte, v T) {
	switch x := any(v).(type) {
	case uint8:
		b[0] = x
	case uint16:
		binary.LittleEndian.PutUint16(b, x)
	case uint32:
		binary.LittleEndian.PutUint32(b, x)
	case float32:
		binary.LittleEndian.PutUint32(b, math.Float32bits(x))
	}
}

// texelOffset returns the byte offset of the texel at c.
// Any used axis at or past its extent, or a texel past the payload, is out of range.
func (f *File) texelOffset(c Coord) (int, bool) {
	if !f.Valid() {
		return 0, false
	}

	dims := min(int(f.Header.Dimensions), MaxDimensions)
	for i := 0; i < dims; i++ {
		if c[i] >= f.Header.Extents[i] {
			return 0, false
		}
	}

	texelSize := uint64(f.Header.Format.TexelSize())
	size := uint64(len(f.Data))
	if texelSize == 0 || texelSize > size {
		return 0, false
	}

	off := f.Header.ElementOffset(c) * uint64(f.Header.Format.ChannelSize())
	if off > size-texelSize {
		return 0, false
	}

	return int(off), true
}

// Texel returns a view of the texel at c, or nil when c is out of range.
// The view aliases Data and is invalidated by Reformat or Release.
func (f *File) Texel(c Coord) []byte {
	off, ok := f.texelOffset(c)
	if !ok {
		return nil
	}
	end := off + f.Header.Format.TexelSize()

	return f.Data[off:end:end]
}

// SetTexel copies one texel of raw little-endian channel bytes into place.
// It returns false without writing when c is out of range or texel is short.
func (f *File) SetTexel(c Coord, texel []byte) bool {
	off, ok := f.texelOffset(c)
	if !ok {
		return false
	}
	size := f.Header.Format.TexelSize()
	if len(texel) < size {
		return false
	}
	copy(f.Data[off:off+size], texel[:size])

	return true
}

// Texel2D returns the texel at (x, y).
func (f *File) Texel2D(x, y uint16) []byte { return f.Texel(Coord2D(x, y)) }

// Texel3D returns the texel at (x, y, z).
func (f *File) Texel3D(x, y, z uint16) []byte { return f.Texel(Coord3D(x, y, z)) }

// Texel4D returns the texel at (x, y, z, w).
func (f *File) Texel4D(x, y, z, w uint16) []byte { return f.Texel(Coord4D(x, y, z, w)) }

// Texel5D returns the texel at (x, y, z, w, v).
func (f *File) Texel5D(x, y, z, w, v uint16) []byte { return f.Texel(Coord5D(x, y, z, w, v)) }

// SetTexel2D sets the texel at (x, y).
func (f *File) SetTexel2D(x, y uint16, texel []byte) bool {
	return f.SetTexel(Coord2D(x, y), texel)
}

// SetTexel3D sets the texel at (x, y, z).
func (f *File) SetTexel3D(x, y, z uint16, texel []byte) bool {
	return f.SetTexel(Coord3D(x, y, z), texel)
}

// SetTexel4D sets the texel at (x, y, z, w).
func (f *File) SetTexel4D(x, y, z, w uint16, texel []byte) bool {
	return f.SetTexel(Coord4D(x, y, z, w), texel)
}

// SetTexel5D sets the texel at (x, y, z, w, v).
func (f *File) SetTexel5D(x, y, z, w, v uint16, texel []byte) bool {
	return f.SetTexel(Coord5D(x, y, z, w, v), texel)
}

// TexelValues decodes the texel at c as typed channels.
// It fails when c is out of range or T does not match the file's channel kind.
func TexelValues[T Channel](f *File, c Coord) ([]T, bool) {
	if f == nil || kindOf[T]() != f.Header.Format.Kind() {
		return nil, false
	}
	texel := f.Texel(c)
	if texel == nil {
		return nil, false
	}

	cs := f.Header.Format.ChannelSize()
	out := make([]T, f.Header.Format.Channels())
	for i := range out {
		out[i] = getChannel[T](texel[i*cs:])
	}

	return out, true
}

// SetTexelValues writes typed channels into the texel at c.
// Exactly Channels() values are required; nothing is written on failure.
func SetTexelValues[T Channel](f *File, c Coord, values ...T) bool {
	if f == nil || kindOf[T]() != f.Header.Format.Kind() {
		return false
	}
	if len(values) != f.Header.Format.Channels() {
		return false
	}
	texel := f.Texel(c)
	if texel == nil {
		return false
	}

	cs := f.Header.Format.ChannelSize()
	for i, v := range values {
		putChannel(texel[i*cs:], v)
	}

	return true
}

// Channels decodes the whole payload as typed channels.
func Channels[T Channel](f *File) ([]T, error) {
	if !f.Valid() {
		return nil, ErrInvalidFile
	}
	if kind := f.Header.Format.Kind(); kindOf[T]() != kind {
		return nil, fmt.Errorf("%w: %s holds %s channels", ErrChannelType, f.Header.Format, kind)
	}

	cs := f.Header.Format.ChannelSize()
	out := make([]T, len(f.Data)/cs)
	for i := range out {
		out[i] = getChannel[T](f.Data[i*cs:])
	}

	return out, nil
}
