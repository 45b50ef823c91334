package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/woozymasta/ndtf"
)

// parseSize parses extents like "64x64x8" into 2..5 axis lengths.
func parseSize(raw string) ([]uint16, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(raw)), "x")
	if len(parts) < ndtf.MinDimensions || len(parts) > ndtf.MaxDimensions {
		return nil, fmt.Errorf("size %q: want %d to %d axes", raw, ndtf.MinDimensions, ndtf.MaxDimensions)
	}

	out := make([]uint16, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if err != nil || v == 0 {
			return nil, fmt.Errorf("size %q: bad extent %q", raw, p)
		}
		out[i] = uint16(v)
	}

	return out, nil
}

// parseCoord parses "x,y[,z[,w[,v]]]" and checks the axis count.
func parseCoord(raw string, dims int) (ndtf.Coord, error) {
	var c ndtf.Coord

	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != dims {
		return c, fmt.Errorf("coordinate %q: want %d axes, got %d", raw, dims, len(parts))
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if err != nil {
			return c, fmt.Errorf("coordinate %q: bad axis %q", raw, p)
		}
		c[i] = uint16(v)
	}

	return c, nil
}

// parsePlane parses the axes past Y, "z[,w[,v]]", for plane selection.
func parsePlane(raw string, dims int) (ndtf.Coord, error) {
	var c ndtf.Coord
	if strings.TrimSpace(raw) == "" {
		return c, nil
	}

	parts := strings.Split(raw, ",")
	if len(parts) > dims-ndtf.AxisZ {
		return c, fmt.Errorf("plane %q: file has %d axes past Y", raw, dims-ndtf.AxisZ)
	}
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 16)
		if err != nil {
			return c, fmt.Errorf("plane %q: bad axis %q", raw, p)
		}
		c[ndtf.AxisZ+i] = uint16(v)
	}

	return c, nil
}

func splitValues(raw string) []string {
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func parseUints[T uint8 | uint16 | uint32](raw []string, bits int) ([]T, error) {
	out := make([]T, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseUint(s, 10, bits)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", s, err)
		}
		out[i] = T(v)
	}
	return out, nil
}

func parseFloats(raw []string) ([]float32, error) {
	out := make([]float32, len(raw))
	for i, s := range raw {
		v, err := strconv.ParseFloat(s, 32)
		if err != nil {
			return nil, fmt.Errorf("value %q: %w", s, err)
		}
		out[i] = float32(v)
	}
	return out, nil
}

// setTexel writes typed channel values parsed from raw.
func setTexel(f *ndtf.File, c ndtf.Coord, raw []string) error {
	if len(raw) != f.Format().Channels() {
		return fmt.Errorf("%s takes %d values, got %d", f.Format(), f.Format().Channels(), len(raw))
	}

	var ok bool
	switch f.Format().Kind() {
	case ndtf.KindU8:
		vals, err := parseUints[uint8](raw, 8)
		if err != nil {
			return err
		}
		ok = ndtf.SetTexelValues(f, c, vals...)
	case ndtf.KindU16:
		vals, err := parseUints[uint16](raw, 16)
		if err != nil {
			return err
		}
		ok = ndtf.SetTexelValues(f, c, vals...)
	case ndtf.KindU32:
		vals, err := parseUints[uint32](raw, 32)
		if err != nil {
			return err
		}
		ok = ndtf.SetTexelValues(f, c, vals...)
	case ndtf.KindF32:
		vals, err := parseFloats(raw)
		if err != nil {
			return err
		}
		ok = ndtf.SetTexelValues(f, c, vals...)
	default:
		return fmt.Errorf("%w: %s", ndtf.ErrInvalidFormat, f.Format())
	}
	if !ok {
		return fmt.Errorf("%w: %v", ndtf.ErrOutOfRange, c[:f.Dimensions()])
	}

	return nil
}

// texelStrings formats the channels of the texel at c.
func texelStrings(f *ndtf.File, c ndtf.Coord) ([]string, error) {
	switch f.Format().Kind() {
	case ndtf.KindU8:
		return formatValues[uint8](f, c)
	case ndtf.KindU16:
		return formatValues[uint16](f, c)
	case ndtf.KindU32:
		return formatValues[uint32](f, c)
	case ndtf.KindF32:
		return formatValues[float32](f, c)
	default:
		return nil, fmt.Errorf("%w: %s", ndtf.ErrInvalidFormat, f.Format())
	}
}

func formatValues[T ndtf.Channel](f *ndtf.File, c ndtf.Coord) ([]string, error) {
	vals, ok := ndtf.TexelValues[T](f, c)
	if !ok {
		return nil, fmt.Errorf("%w: %v", ndtf.ErrOutOfRange, c[:f.Dimensions()])
	}

	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = fmt.Sprint(v)
	}

	return out, nil
}
