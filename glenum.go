package ndtf

// OpenGL enumeration values used by GLFormats.
const (
	GLRGBA32UI      = 0x8D70
	GLRGB32UI       = 0x8D71
	GLRGBA8         = 0x8058
	GLRGBA16        = 0x805B
	GLRGB8          = 0x8051
	GLRGB16         = 0x8054
	GLRGBA32F       = 0x8814
	GLRGB32F        = 0x8815
	GLR8            = 0x8229
	GLR16           = 0x822A
	GLR32UI         = 0x8236
	GLR32F          = 0x822E
	GLRed           = 0x1903
	GLRGB           = 0x1907
	GLRGBA          = 0x1908
	GLUnsignedByte  = 0x1401
	GLUnsignedShort = 0x1403
	GLUnsignedInt   = 0x1405
	GLFloat         = 0x1406
)

type glRow struct {
	sized, base, typ uint32
}

var glTable = [...]glRow{
	FormatRGBA8888:      {GLRGBA8, GLRGBA, GLUnsignedByte},
	FormatRGB888:        {GLRGB8, GLRGB, GLUnsignedByte},
	FormatR8:            {GLR8, GLRed, GLUnsignedByte},
	FormatRGBA16161616:  {GLRGBA16, GLRGBA, GLUnsignedShort},
	FormatRGB161616:     {GLRGB16, GLRGB, GLUnsignedShort},
	FormatR16:           {GLR16, GLRed, GLUnsignedShort},
	FormatRGBA32323232F: {GLRGBA32F, GLRGBA, GLFloat},
	FormatRGB323232F:    {GLRGB32F, GLRGB, GLFloat},
	FormatR32F:          {GLR32F, GLRed, GLFloat},
	FormatRGBA32323232:  {GLRGBA32UI, GLRGBA, GLUnsignedInt},
	FormatRGB323232:     {GLRGB32UI, GLRGB, GLUnsignedInt},
	FormatR32:           {GLR32UI, GLRed, GLUnsignedInt},
}

// GLFormats returns the sized internal format, base format and component
// type for f. Unknown formats map to the RGBA8888 row.
func GLFormats(f Format) (sized, base, typ uint32) {
	if !f.Known() {
		f = FormatRGBA8888
	}
	row := glTable[f]
	return row.sized, row.base, row.typ
}

// GLSizedFormat returns the sized internal format for f.
func GLSizedFormat(f Format) uint32 {
	sized, _, _ := GLFormats(f)
	return sized
}

// GLBaseFormat returns the base format for f.
func GLBaseFormat(f Format) uint32 {
	_, base, _ := GLFormats(f)
	return base
}

// GLType returns the component type for f.
func GLType(f Format) uint32 {
	_, _, typ := GLFormats(f)
	return typ
}
