package ndtf

import (
	"encoding/binary"
	"fmt"
	"math"
)

// channelConv rewrites one source channel into one destination channel.
type channelConv func(dst, src []byte)

// channelConverters is indexed [source kind][destination kind].
var channelConverters = [...][KindF32 + 1]channelConv{
	KindU8: {
		KindU8:  copyChannel,
		KindU16: rescaleInt(KindU8, KindU16),
		KindU32: rescaleInt(KindU8, KindU32),
		KindF32: intToFloat(KindU8),
	},
	KindU16: {
		KindU8:  rescaleInt(KindU16, KindU8),
		KindU16: copyChannel,
		KindU32: rescaleInt(KindU16, KindU32),
		KindF32: intToFloat(KindU16),
	},
	KindU32: {
		KindU8:  rescaleInt(KindU32, KindU8),
		KindU16: rescaleInt(KindU32, KindU16),
		KindU32: copyChannel,
		KindF32: intToFloat(KindU32),
	},
	KindF32: {
		KindU8:  floatToInt(KindU8),
		KindU16: floatToInt(KindU16),
		KindU32: floatToInt(KindU32),
		KindF32: copyChannel,
	},
}

func copyChannel(dst, src []byte) {
	copy(dst, src[:len(dst)])
}

// rescaleInt maps [0, max(from)] onto [0, max(to)] with truncating integer math.
func rescaleInt(from, to Kind) channelConv {
	fromMax, toMax := from.maxValue(), to.maxValue()
	return func(dst, src []byte) {
		putUint(to, dst, getUint(from, src)*toMax/fromMax)
	}
}

// intToFloat maps [0, max(from)] onto [0, 1].
func intToFloat(from Kind) channelConv {
	fromMax := float64(from.maxValue())
	return func(dst, src []byte) {
		putFloat(dst, float32(float64(getUint(from, src))/fromMax))
	}
}

// floatToInt maps [0, 1] onto [0, max(to)], truncating. Values outside
// [0, 1] are clamped and NaN maps to 0.
func floatToInt(to Kind) channelConv {
	toMax := to.maxValue()
	return func(dst, src []byte) {
		v := float64(getFloat(src))
		switch {
		case math.IsNaN(v) || v <= 0:
			putUint(to, dst, 0)
		case v >= 1:
			putUint(to, dst, toMax)
		default:
			putUint(to, dst, min(uint64(v*float64(toMax)), toMax))
		}
	}
}

// padChannel fills a channel the source does not have with the domain maximum.
func padChannel(to Kind, dst []byte) {
	if to == KindF32 {
		putFloat(dst, 1)
		return
	}
	putUint(to, dst, to.maxValue())
}

func getUint(k Kind, b []byte) uint64 {
	switch k {
	case KindU8:
		return uint64(b[0])
	case KindU16:
		return uint64(binary.LittleEndian.Uint16(b))
	default:
		return uint64(binary.LittleEndian.Uint32(b))
	}
}

func putUint(k Kind, b []byte, v uint64) {
	switch k {
	case KindU8:
		b[0] = uint8(v)
	case KindU16:
		binary.LittleEndian.PutUint16(b, uint16(v))
	default:
		binary.LittleEndian.PutUint32(b, uint32(v))
	}
}

func getFloat(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func putFloat(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

// Convert re-encodes a raw payload from one format to another and returns a
// new buffer. src is left untouched.
func Convert(src []byte, from, to Format) ([]byte, error) {
	if !from.Known() {
		return nil, fmt.Errorf("%w: source %s", ErrInvalidFormat, from)
	}
	if !to.Known() {
		return nil, fmt.Errorf("%w: target %s", ErrInvalidFormat, to)
	}

	srcTexel := from.TexelSize()
	if len(src)%srcTexel != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %s texel size %d", ErrSizeMismatch, len(src), from, srcTexel)
	}
	count := len(src) / srcTexel

	if from == to {
		out := make([]byte, len(src))
		copy(out, src)
		return out, nil
	}

	dstTexel := to.TexelSize()
	dstSize, err := mulU64(uint64(count), uint64(dstTexel))
	if err != nil {
		return nil, err
	}
	n, err := payloadSize(dstSize)
	if err != nil {
		return nil, err
	}
	dst := make([]byte, n)

	srcKind, dstKind := from.Kind(), to.Kind()
	srcCh, dstCh := from.Channels(), to.Channels()
	srcCS, dstCS := srcKind.Size(), dstKind.Size()
	conv := channelConverters[srcKind][dstKind]

	for t := 0; t < count; t++ {
		s := src[t*srcTexel:]
		d := dst[t*dstTexel:]
		for j := 0; j < dstCh; j++ {
			out := d[j*dstCS : (j+1)*dstCS]
			if j < srcCh {
				conv(out, s[j*srcCS:(j+1)*srcCS])
			} else {
				padChannel(dstKind, out)
			}
		}
	}

	return dst, nil
}

// Reformat converts the payload to desired in place. FormatNone or the
// current format is a no-op. The new payload is built completely before it
// replaces the old one, so on error the file is unchanged.
//
// Narrowing conversions lose precision; an integer to float to integer round
// trip at the same width may come back one unit lower.
func (f *File) Reformat(desired Format) error {
	if desired == FormatNone || desired == f.Header.Format {
		return nil
	}
	if !f.Valid() {
		return ErrInvalidFile
	}

	data, err := Convert(f.Data, f.Header.Format, desired)
	if err != nil {
		return err
	}

	f.Data = data
	f.Header.Format = desired

	return nil
}
