package ndtf

import (
	"fmt"
	"strings"
)

// Format identifies a texel encoding.
type Format uint8

// Texel formats. Values are stored verbatim in the file header.
const (
	FormatNone          Format = iota // no format
	FormatRGBA8888                    // RGBA, unsigned byte
	FormatRGB888                      // RGB, unsigned byte
	FormatR8                          // R, unsigned byte
	FormatRGBA16161616                // RGBA, unsigned short
	FormatRGB161616                   // RGB, unsigned short
	FormatR16                         // R, unsigned short
	FormatRGBA32323232F               // RGBA, float
	FormatRGB323232F                  // RGB, float
	FormatR32F                        // R, float
	FormatRGBA32323232                // RGBA, unsigned int
	FormatRGB323232                   // RGB, unsigned int
	FormatR32                         // R, unsigned int

	// FormatXYZW32323232F is an alias for vector data.
	FormatXYZW32323232F = FormatRGBA32323232F
	// FormatXYZ323232F is an alias for vector data.
	FormatXYZ323232F = FormatRGB323232F
)

// Kind is the numeric domain of one channel.
type Kind uint8

// Channel kinds.
const (
	KindNone Kind = iota
	KindU8
	KindU16
	KindU32
	KindF32
)

type formatInfo struct {
	name     string
	channels int
	kind     Kind
}

var formatTable = [...]formatInfo{
	FormatNone:          {name: "NONE"},
	FormatRGBA8888:      {name: "RGBA8888", channels: 4, kind: KindU8},
	FormatRGB888:        {name: "RGB888", channels: 3, kind: KindU8},
	FormatR8:            {name: "R8", channels: 1, kind: KindU8},
	FormatRGBA16161616:  {name: "RGBA16161616", channels: 4, kind: KindU16},
	FormatRGB161616:     {name: "RGB161616", channels: 3, kind: KindU16},
	FormatR16:           {name: "R16", channels: 1, kind: KindU16},
	FormatRGBA32323232F: {name: "RGBA32323232F", channels: 4, kind: KindF32},
	FormatRGB323232F:    {name: "RGB323232F", channels: 3, kind: KindF32},
	FormatR32F:          {name: "R32F", channels: 1, kind: KindF32},
	FormatRGBA32323232:  {name: "RGBA32323232", channels: 4, kind: KindU32},
	FormatRGB323232:     {name: "RGB323232", channels: 3, kind: KindU32},
	FormatR32:           {name: "R32", channels: 1, kind: KindU32},
}

func (f Format) info() formatInfo {
	if int(f) < len(formatTable) {
		return formatTable[f]
	}
	return formatInfo{}
}

// Known reports whether f is a defined format other than FormatNone.
func (f Format) Known() bool {
	return f != FormatNone && int(f) < len(formatTable)
}

// Channels returns the number of channels per texel (0, 1, 3 or 4).
func (f Format) Channels() int {
	return f.info().channels
}

// Kind returns the numeric domain of a channel.
func (f Format) Kind() Kind {
	return f.info().kind
}

// ChannelSize returns the byte width of one channel.
func (f Format) ChannelSize() int {
	return f.Kind().Size()
}

// TexelSize returns the byte width of one texel.
func (f Format) TexelSize() int {
	return f.Channels() * f.ChannelSize()
}

// IsFloat reports whether channels are 32-bit floats.
func (f Format) IsFloat() bool {
	return f.Kind() == KindF32
}

// String returns the format name.
func (f Format) String() string {
	if int(f) < len(formatTable) {
		return formatTable[f].name
	}
	return fmt.Sprintf("Format(%d)", uint8(f))
}

// ParseFormat resolves a format name (case-insensitive, aliases included).
func ParseFormat(name string) (Format, error) {
	n := strings.ToUpper(strings.TrimSpace(name))
	switch n {
	case "XYZW32323232F":
		return FormatXYZW32323232F, nil
	case "XYZ323232F":
		return FormatXYZ323232F, nil
	}
	for i, fi := range formatTable {
		if fi.name == n {
			return Format(i), nil
		}
	}

	return FormatNone, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
}

// Size returns the byte width of one channel of kind k.
func (k Kind) Size() int {
	switch k {
	case KindU8:
		return 1
	case KindU16:
		return 2
	case KindU32, KindF32:
		return 4
	default:
		return 0
	}
}

// maxValue returns the largest integer value of k; float kinds report 0.
func (k Kind) maxValue() uint64 {
	switch k {
	case KindU8:
		return 0xff
	case KindU16:
		return 0xffff
	case KindU32:
		return 0xffffffff
	default:
		return 0
	}
}

func (k Kind) String() string {
	switch k {
	case KindU8:
		return "uint8"
	case KindU16:
		return "uint16"
	case KindU32:
		return "uint32"
	case KindF32:
		return "float32"
	default:
		return "none"
	}
}
