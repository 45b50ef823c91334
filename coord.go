package ndtf

// Axis indexes into Coord and Header.Extents.
const (
	AxisX = iota // width
	AxisY        // height
	AxisZ        // depth
	AxisW        // first extra axis
	AxisV        // second extra axis
)

// Coord is a texel coordinate, one entry per axis slot.
type Coord [MaxDimensions]uint16

// Coord2D builds a 2D coordinate.
func Coord2D(x, y uint16) Coord {
	return Coord{x, y}
}

// Coord3D builds a 3D coordinate.
func Coord3D(x, y, z uint16) Coord {
	return Coord{x, y, z}
}

// Coord4D builds a 4D coordinate.
func Coord4D(x, y, z, w uint16) Coord {
	return Coord{x, y, z, w}
}

// Coord5D builds a 5D coordinate.
func Coord5D(x, y, z, w, v uint16) Coord {
	return Coord{x, y, z, w, v}
}
