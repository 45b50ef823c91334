package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/woozymasta/ndtf"
)

func createCmd() *cli.Command {
	var (
		size     string
		format   string
		fill     string
		compress bool
	)

	return &cli.Command{
		Name:      "create",
		Usage:     "Create a zero-filled NDTF file",
		ArgsUsage: "OUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "size",
				Aliases:     []string{"s"},
				Usage:       "extents per axis, e.g. 64x64x8 (2 to 5 axes)",
				Required:    true,
				Destination: &size,
			},
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "texel format, e.g. RGBA8888, R16, RGBA32323232F",
				Value:       "RGBA8888",
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "fill",
				Usage:       "comma separated channel values for every texel",
				Destination: &fill,
			},
			compressFlag(&compress),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("create: exactly one output file is required")
			}
			applyCompressConfig(cmd, appConfig, &compress)
			out := cmd.Args().First()

			extents, err := parseSize(size)
			if err != nil {
				return err
			}
			texelFormat, err := ndtf.ParseFormat(format)
			if err != nil {
				return err
			}

			f, err := ndtf.Create(len(extents), texelFormat, extents...)
			if err != nil {
				return err
			}
			f.SetCompressed(compress)

			if fill != "" {
				if err := fillTexels(f, splitValues(fill)); err != nil {
					return err
				}
			}

			opts, err := writeOptions(codecName)
			if err != nil {
				return err
			}
			if err := ndtf.SaveWithOptions(out, f, opts); err != nil {
				return err
			}

			zerolog.Ctx(ctx).Info().
				Str("file", out).
				Str("format", f.Format().String()).
				Ints("extents", intExtents(f)).
				Bool("compressed", compress).
				Msg("created")

			return nil
		},
	}
}

// fillTexels writes one texel and replicates it over the payload.
func fillTexels(f *ndtf.File, raw []string) error {
	var origin ndtf.Coord
	if err := setTexel(f, origin, raw); err != nil {
		return err
	}

	size := f.Format().TexelSize()
	for off := size; off < len(f.Data); off += size {
		copy(f.Data[off:off+size], f.Data[:size])
	}

	return nil
}

func intExtents(f *ndtf.File) []int {
	out := make([]int, f.Dimensions())
	for i := range out {
		out[i] = f.Extent(i)
	}
	return out
}
