package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/woozymasta/ndtf"
)

func convertCmd() *cli.Command {
	var (
		format   string
		outCodec string
		compress bool
	)

	return &cli.Command{
		Name:      "convert",
		Usage:     "Rewrite an NDTF file with another texel format or compression",
		ArgsUsage: "IN OUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "target texel format (default: keep)",
				Destination: &format,
			},
			&cli.StringFlag{
				Name:        "out-codec",
				Usage:       "payload codec for the output (default: --codec)",
				Destination: &outCodec,
			},
			compressFlag(&compress),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return fmt.Errorf("convert: IN and OUT are required")
			}
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)

			desired := ndtf.FormatNone
			if format != "" {
				var err error
				if desired, err = ndtf.ParseFormat(format); err != nil {
					return err
				}
			}

			ropts, err := readOptions(desired)
			if err != nil {
				return err
			}
			f, stored, err := ndtf.LoadWithOptions(in, ropts)
			if err != nil {
				return err
			}

			if cmd.IsSet("compress") {
				f.SetCompressed(compress)
			} else if appConfig.Compress != nil {
				f.SetCompressed(*appConfig.Compress)
			}

			if outCodec == "" {
				outCodec = codecName
			}
			wopts, err := writeOptions(outCodec)
			if err != nil {
				return err
			}
			if err := ndtf.SaveWithOptions(out, f, wopts); err != nil {
				return err
			}

			zerolog.Ctx(ctx).Info().
				Str("from", stored.String()).
				Str("to", f.Format().String()).
				Bool("compressed", f.Compressed()).
				Str("file", out).
				Msg("converted")

			return nil
		},
	}
}
