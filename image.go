package ndtf

import (
	"fmt"
	"image"
	"image/color"
)

// Image returns one XY plane as an NRGBA image. The plane is picked by the
// axes past Y in plane; X and Y are ignored. Non-RGBA8888 payloads are
// converted with the same rules as Reformat.
func (f *File) Image(plane Coord) (*image.NRGBA, error) {
	if !f.Valid() {
		return nil, ErrInvalidFile
	}

	dims := min(int(f.Header.Dimensions), MaxDimensions)
	for i := AxisZ; i < dims; i++ {
		if plane[i] >= f.Header.Extents[i] {
			return nil, fmt.Errorf("%w: axis %d: %d >= %d", ErrOutOfRange, i, plane[i], f.Header.Extents[i])
		}
	}

	width := int(f.Header.Extents[AxisX])
	height := int(f.Header.Extents[AxisY])
	texelSize := f.Header.Format.TexelSize()

	origin := plane
	origin[AxisX], origin[AxisY] = 0, 0
	start := f.Header.ElementOffset(origin) * uint64(f.Header.Format.ChannelSize())
	length := uint64(width * height * texelSize)
	if start+length > uint64(len(f.Data)) {
		return nil, fmt.Errorf("%w: plane past payload", ErrOutOfRange)
	}

	pix, err := Convert(f.Data[start:start+length], f.Header.Format, FormatRGBA8888)
	if err != nil {
		return nil, err
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, pix)

	return img, nil
}

// FromImage builds a 2D RGBA8888 file from img.
func FromImage(img image.Image) (*File, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidFile)
	}
	width, err := u16FromInt(bounds.Dx())
	if err != nil {
		return nil, err
	}
	height, err := u16FromInt(bounds.Dy())
	if err != nil {
		return nil, err
	}

	f, err := Create2D(FormatRGBA8888, width, height)
	if err != nil {
		return nil, err
	}

	rowLen := int(width) * 4
	if src, ok := img.(*image.NRGBA); ok {
		for y := 0; y < int(height); y++ {
			off := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(f.Data[y*rowLen:(y+1)*rowLen], src.Pix[off:off+rowLen])
		}
		return f, nil
	}

	for y := 0; y < int(height); y++ {
		for x := 0; x < int(width); x++ {
			c, _ := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			i := y*rowLen + x*4
			f.Data[i+0] = c.R
			f.Data[i+1] = c.G
			f.Data[i+2] = c.B
			f.Data[i+3] = c.A
		}
	}

	return f, nil
}
