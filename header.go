package ndtf

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

const (
	// Signature identifies an NDTF stream.
	Signature = "NDTF"

	// VersionMajor is the supported major format version.
	VersionMajor = 1
	// VersionMinor is the supported minor format version.
	VersionMinor = 0
	// Version is the packed supported format version.
	Version = uint16(VersionMajor<<8 | VersionMinor)

	// HeaderSize is the encoded header size in bytes.
	HeaderSize = 32

	// MinDimensions is the smallest supported axis count.
	MinDimensions = 2
	// MaxDimensions is the largest supported axis count.
	MaxDimensions = 5

	// FlagCompressed marks a compressed payload.
	FlagCompressed uint32 = 1 << 0

	// MaxDataSize is the largest payload, in bytes, that is allocated.
	MaxDataSize uint64 = 1 << 32

	// sizePrefixLen is the uncompressed size prefix of a compressed payload.
	sizePrefixLen = 8
)

// Header is the fixed-size NDTF file header.
type Header struct {
	Signature  [4]byte
	Version    uint16
	Dimensions uint8
	Format     Format
	Flags      uint32
	// Extents holds width, height, depth and two extra axes; entries past
	// Dimensions are conventionally 1.
	Extents  [MaxDimensions]uint16
	Reserved [10]byte
}

// MakeVersion packs a major/minor version pair.
func MakeVersion(major, minor uint8) uint16 {
	return uint16(major)<<8 | uint16(minor)
}

// VersionParts unpacks the header version.
func (h *Header) VersionParts() (major, minor uint8) {
	return uint8(h.Version >> 8), uint8(h.Version & 0xff)
}

// Compressed reports whether the payload compression flag is set.
func (h *Header) Compressed() bool {
	return h.Flags&FlagCompressed != 0
}

// ElementCount returns the product of the used extents.
func (h *Header) ElementCount() (uint64, error) {
	dims := int(h.Dimensions)
	if dims > MaxDimensions {
		return 0, fmt.Errorf("%w: %d", ErrInvalidDimensions, dims)
	}

	count := uint64(1)
	for i := 0; i < dims; i++ {
		var err error
		count, err = mulU64(count, uint64(h.Extents[i]))
		if err != nil {
			return 0, err
		}
	}

	return count, nil
}

// DataSize returns the raw payload size in bytes. Sizes past MaxDataSize
// fail with ErrSizeOverflow.
func (h *Header) DataSize() (int, error) {
	count, err := h.ElementCount()
	if err != nil {
		return 0, err
	}
	size, err := mulU64(count, uint64(h.Format.TexelSize()))
	if err != nil {
		return 0, err
	}

	return payloadSize(size)
}

// ElementOffset maps a coordinate to a channel offset into the payload.
// Coordinates past Dimensions are ignored. No bounds check is done here.
func (h *Header) ElementOffset(c Coord) uint64 {
	dims := min(int(h.Dimensions), MaxDimensions)

	var offset uint64
	stride := uint64(1)
	for i := 0; i < dims; i++ {
		offset += uint64(c[i]) * stride
		stride *= uint64(h.Extents[i])
	}

	return offset * uint64(h.Format.Channels())
}

// MarshalBinary encodes the header into its 32-byte form.
func (h *Header) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(HeaderSize)
	if err := binary.Write(&buf, binary.LittleEndian, h); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a header without validating it.
func (h *Header) UnmarshalBinary(data []byte) error {
	if len(data) < HeaderSize {
		return fmt.Errorf("%w: %d bytes", ErrHeaderTooShort, len(data))
	}

	return binary.Read(bytes.NewReader(data[:HeaderSize]), binary.LittleEndian, h)
}

// Validate checks signature, version and dimensions.
func (h *Header) Validate() error {
	if string(h.Signature[:]) != Signature {
		return fmt.Errorf("%w: %q", ErrBadSignature, h.Signature[:])
	}
	if h.Version > Version {
		major, minor := h.VersionParts()
		return fmt.Errorf("%w: %d.%d", ErrUnsupportedVersion, major, minor)
	}
	if h.Dimensions < MinDimensions || h.Dimensions > MaxDimensions {
		return fmt.Errorf("%w: %d", ErrInvalidDimensions, h.Dimensions)
	}

	return nil
}

// newHeader stamps a fresh header.
func newHeader(dims int, format Format, extents [MaxDimensions]uint16) Header {
	h := Header{
		Version:    Version,
		Dimensions: uint8(dims),
		Format:     format,
		Extents:    extents,
	}
	copy(h.Signature[:], Signature)

	return h
}
