package main

import (
	"fmt"
	"strings"

	"github.com/woozymasta/bcn"

	"github.com/woozymasta/ndtf"
)

// compressorByName resolves a payload codec name.
func compressorByName(name string) (ndtf.Compressor, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "zlib":
		return ndtf.ZlibCompressor{}, nil
	case "zstd":
		return ndtf.ZstdCompressor{}, nil
	case "lz4":
		return ndtf.LZ4Compressor{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q (want zlib, zstd or lz4)", name)
	}
}

// ddsFormatByName resolves a DDS surface format name.
func ddsFormatByName(name string) (bcn.Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bgra8":
		return bcn.FormatBGRA8, nil
	case "rgba8":
		return bcn.FormatRGBA8, nil
	case "dxt1", "bc1":
		return bcn.FormatDXT1, nil
	case "dxt3", "bc2":
		return bcn.FormatDXT3, nil
	case "dxt5", "bc3":
		return bcn.FormatDXT5, nil
	case "bc4":
		return bcn.FormatBC4, nil
	case "bc5":
		return bcn.FormatBC5, nil
	default:
		return bcn.FormatUnknown, fmt.Errorf("unknown DDS format %q", name)
	}
}

func readOptions(desired ndtf.Format) (*ndtf.ReadOptions, error) {
	c, err := compressorByName(codecName)
	if err != nil {
		return nil, err
	}
	return &ndtf.ReadOptions{DesiredFormat: desired, Compressor: c}, nil
}

func writeOptions(name string) (*ndtf.WriteOptions, error) {
	c, err := compressorByName(name)
	if err != nil {
		return nil, err
	}
	return &ndtf.WriteOptions{Compressor: c}, nil
}
