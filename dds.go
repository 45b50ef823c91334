package ndtf

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/bcn"
)

// DDSOptions configures the DDS bridge.
type DDSOptions struct {
	// Format is the DDS surface format on export. FormatUnknown means BGRA8.
	Format bcn.Format
	// Plane selects the exported XY plane for files with more than two axes.
	Plane Coord
	// EncodeOptions are passed to the BCn encoder.
	EncodeOptions *bcn.EncodeOptions
	// DecodeOptions are passed to the BCn decoder.
	DecodeOptions *bcn.DecodeOptions
}

func (o *DDSOptions) format() bcn.Format {
	if o == nil || o.Format == bcn.FormatUnknown {
		return bcn.FormatBGRA8
	}
	return o.Format
}

// ExportDDS writes one XY plane of f as a single-level DDS texture.
func ExportDDS(w io.Writer, f *File, opts *DDSOptions) error {
	var plane Coord
	var encOpts *bcn.EncodeOptions
	if opts != nil {
		plane = opts.Plane
		encOpts = opts.EncodeOptions
	}
	format := opts.format()

	img, err := f.Image(plane)
	if err != nil {
		return err
	}

	data, _, _, err := bcn.EncodeImageWithOptions(img, format, encOpts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncodeImage, err)
	}

	w32, err := u32FromInt(img.Bounds().Dx())
	if err != nil {
		return err
	}
	h32, err := u32FromInt(img.Bounds().Dy())
	if err != nil {
		return err
	}
	header, err := makeDDSHeader(w32, h32, format)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := bcn.WriteDDSMagic(&buf); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSMagic, err)
	}
	if err := bcn.WriteDDSHeader(&buf, header); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSHeader, err)
	}
	buf.Write(data)

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteDDSData, err)
	}

	return nil
}

// SaveDDS writes one XY plane of f as a DDS file.
func SaveDDS(path string, f *File, opts *DDSOptions) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrCreateFile, path, err)
	}
	defer func() { _ = out.Close() }()

	return ExportDDS(out, f, opts)
}

// ImportDDS reads the top level of a DDS texture into a 2D RGBA8888 file.
func ImportDDS(r io.Reader, opts *DDSOptions) (*File, error) {
	header, dx10, err := readDDSHeaders(r)
	if err != nil {
		return nil, err
	}

	format, name := detectFormat(header, dx10)
	w16, err := u16FromInt(int(header.Width))
	if err != nil {
		return nil, fmt.Errorf("%w: DDS width %d", err, header.Width)
	}
	h16, err := u16FromInt(int(header.Height))
	if err != nil {
		return nil, fmt.Errorf("%w: DDS height %d", err, header.Height)
	}
	width, height := int(w16), int(h16)

	expected := expectedDataLength(format, width, height)
	if expected <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDDSFormat, name)
	}
	if _, err := payloadSize(uint64(expected)); err != nil {
		return nil, err
	}

	// the surface buffer grows with the input instead of the header claim
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, int64(expected))); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDDSDataRead, err)
	}
	if buf.Len() != expected {
		return nil, fmt.Errorf("%w: %v", ErrDDSDataRead, io.ErrUnexpectedEOF)
	}
	data := buf.Bytes()

	var decOpts *bcn.DecodeOptions
	if opts != nil {
		decOpts = opts.DecodeOptions
	}
	img, err := bcn.DecodeImageWithOptions(data, width, height, format, decOpts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecodeImage, err)
	}

	return FromImage(img)
}

// LoadDDS reads a DDS file into a 2D RGBA8888 file.
func LoadDDS(path string, opts *DDSOptions) (*File, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrOpenFile, path, err)
	}
	defer func() { _ = in.Close() }()

	return ImportDDS(in, opts)
}

// readDDSHeaders reads the DDS headers from the reader.
func readDDSHeaders(r io.Reader) (*bcn.DDSHeader, *bcn.DDSHeaderDX10, error) {
	header, err := bcn.ReadDDSHeader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDDSHeaderRead, err)
	}

	dx10, err := bcn.ReadDDSHeaderDX10(r, header)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrDDSDX10Read, err)
	}

	return header, dx10, nil
}

func detectFormat(header *bcn.DDSHeader, dx10 *bcn.DDSHeaderDX10) (bcn.Format, string) {
	if dx10 != nil {
		return mapDxgiFormat(dx10.DXGIFormat), fmt.Sprintf("DXGI %d", dx10.DXGIFormat)
	}

	pf := header.PixelFormat
	if (pf.Flags & bcn.DDSPFFourCC) != 0 {
		fourCC := fourCCString(pf.FourCC)
		switch fourCC {
		case "DXT1":
			return bcn.FormatDXT1, fourCC
		case "DXT2", "DXT3":
			return bcn.FormatDXT3, fourCC
		case "DXT4", "DXT5":
			return bcn.FormatDXT5, fourCC
		case "ATI1", "BC4U", "BC4S":
			return bcn.FormatBC4, fourCC
		case "ATI2", "BC5U", "BC5S":
			return bcn.FormatBC5, fourCC
		default:
			return bcn.FormatUnknown, fourCC
		}
	}

	if (pf.Flags&bcn.DDSPFRGB) != 0 && (pf.Flags&bcn.DDSPFAlphaPixels) != 0 && pf.RGBBitCount == 32 {
		if pf.RBitMask == 0x000000ff && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x00ff0000 && pf.ABitMask == 0xff000000 {
			return bcn.FormatRGBA8, "RGBA8"
		}
		if pf.RBitMask == 0x00ff0000 && pf.GBitMask == 0x0000ff00 &&
			pf.BBitMask == 0x000000ff && pf.ABitMask == 0xff000000 {
			return bcn.FormatBGRA8, "BGRA8"
		}
	}

	return bcn.FormatUnknown, "UNKNOWN"
}

func mapDxgiFormat(dxgiFormat uint32) bcn.Format {
	switch dxgiFormat {
	case 71:
		return bcn.FormatDXT1
	case 74:
		return bcn.FormatDXT3
	case 77:
		return bcn.FormatDXT5
	case 80:
		return bcn.FormatBC4
	case 83:
		return bcn.FormatBC5
	case 87:
		return bcn.FormatBGRA8
	case 28:
		return bcn.FormatRGBA8
	default:
		return bcn.FormatUnknown
	}
}

func fourCCString(value uint32) string {
	return string([]byte{
		byte(value & 0xff),
		byte((value >> 8) & 0xff),
		byte((value >> 16) & 0xff),
		byte((value >> 24) & 0xff),
	})
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// expectedDataLength returns the top-level surface size, or -1 for unknown formats.
func expectedDataLength(format bcn.Format, width, height int) int {
	blocksW := (width + 3) / 4
	blocksH := (height + 3) / 4
	switch format {
	case bcn.FormatDXT1, bcn.FormatBC4:
		return blocksW * blocksH * 8
	case bcn.FormatDXT3, bcn.FormatDXT5, bcn.FormatBC5:
		return blocksW * blocksH * 16
	case bcn.FormatRGBA8, bcn.FormatBGRA8:
		return width * height * 4
	default:
		return -1
	}
}

// makeDDSHeader builds a single-level DDS header.
func makeDDSHeader(width, height uint32, format bcn.Format) (*bcn.DDSHeader, error) {
	hdr := &bcn.DDSHeader{
		Size:        bcn.DDSHeaderSize,
		Flags:       uint32(bcn.DDSFlagCaps | bcn.DDSFlagHeight | bcn.DDSFlagWidth | bcn.DDSFlagPixelFormat),
		Height:      height,
		Width:       width,
		Depth:       1,
		MipMapCount: 1,
		Caps:        uint32(bcn.DDSCapsTexture),
	}
	hdr.PixelFormat.Size = bcn.DDSPixelFormatSize

	fourCC := func(cc uint32) {
		hdr.Flags |= bcn.DDSFlagLinearSize
		hdr.PixelFormat.Flags = bcn.DDSPFFourCC
		hdr.PixelFormat.FourCC = cc
		hdr.PitchOrLinearSize = uint32(expectedDataLength(format, int(width), int(height)))
	}

	switch format {
	case bcn.FormatDXT1:
		fourCC(makeFourCC('D', 'X', 'T', '1'))
	case bcn.FormatDXT3:
		fourCC(makeFourCC('D', 'X', 'T', '3'))
	case bcn.FormatDXT5:
		fourCC(makeFourCC('D', 'X', 'T', '5'))
	case bcn.FormatBC4:
		fourCC(makeFourCC('A', 'T', 'I', '1'))
	case bcn.FormatBC5:
		fourCC(makeFourCC('A', 'T', 'I', '2'))
	case bcn.FormatRGBA8:
		hdr.Flags |= bcn.DDSFlagPitch
		hdr.PixelFormat.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
		hdr.PixelFormat.RGBBitCount = 32
		hdr.PixelFormat.RBitMask = 0x000000ff
		hdr.PixelFormat.GBitMask = 0x0000ff00
		hdr.PixelFormat.BBitMask = 0x00ff0000
		hdr.PixelFormat.ABitMask = 0xff000000
		hdr.PitchOrLinearSize = width * 4
	case bcn.FormatBGRA8:
		hdr.Flags |= bcn.DDSFlagPitch
		hdr.PixelFormat.Flags = bcn.DDSPFRGB | bcn.DDSPFAlphaPixels
		hdr.PixelFormat.RGBBitCount = 32
		hdr.PixelFormat.RBitMask = 0x00ff0000
		hdr.PixelFormat.GBitMask = 0x0000ff00
		hdr.PixelFormat.BBitMask = 0x000000ff
		hdr.PixelFormat.ABitMask = 0xff000000
		hdr.PitchOrLinearSize = width * 4
	default:
		return nil, fmt.Errorf("%w: DDS %v", ErrInvalidFormat, format)
	}

	return hdr, nil
}
