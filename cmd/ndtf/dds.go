package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"github.com/woozymasta/bcn"

	"github.com/woozymasta/ndtf"
)

func exportDDSCmd() *cli.Command {
	var (
		plane     string
		ddsFormat string
	)

	return &cli.Command{
		Name:      "export-dds",
		Usage:     "Write one XY plane of an NDTF file as a DDS texture",
		ArgsUsage: "IN OUT.dds",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "plane",
				Usage:       "axes past Y selecting the plane, e.g. 2 or 2,0",
				Destination: &plane,
			},
			&cli.StringFlag{
				Name:        "dds-format",
				Usage:       "surface format (bgra8, rgba8, dxt1, dxt3, dxt5, bc4, bc5)",
				Value:       "bgra8",
				Destination: &ddsFormat,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return fmt.Errorf("export-dds: IN and OUT are required")
			}
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)

			if appConfig.DDSFormat != "" && !cmd.IsSet("dds-format") {
				ddsFormat = appConfig.DDSFormat
			}
			format, err := ddsFormatByName(ddsFormat)
			if err != nil {
				return err
			}

			ropts, err := readOptions(ndtf.FormatNone)
			if err != nil {
				return err
			}
			f, _, err := ndtf.LoadWithOptions(in, ropts)
			if err != nil {
				return err
			}

			p, err := parsePlane(plane, f.Dimensions())
			if err != nil {
				return err
			}

			opts := &ndtf.DDSOptions{
				Format:        format,
				Plane:         p,
				EncodeOptions: &bcn.EncodeOptions{QualityLevel: bcn.QualityLevelFast},
			}
			if err := ndtf.SaveDDS(out, f, opts); err != nil {
				return err
			}

			zerolog.Ctx(ctx).Info().Str("file", out).Str("plane", plane).Msg("exported")

			return nil
		},
	}
}

func importDDSCmd() *cli.Command {
	var (
		format   string
		compress bool
	)

	return &cli.Command{
		Name:      "import-dds",
		Usage:     "Read the top level of a DDS texture into a 2D NDTF file",
		ArgsUsage: "IN.dds OUT",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "texel format of the output (default RGBA8888)",
				Destination: &format,
			},
			compressFlag(&compress),
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 2 {
				return fmt.Errorf("import-dds: IN and OUT are required")
			}
			in, out := cmd.Args().Get(0), cmd.Args().Get(1)
			applyCompressConfig(cmd, appConfig, &compress)

			f, err := ndtf.LoadDDS(in, nil)
			if err != nil {
				return err
			}
			if format != "" {
				desired, err := ndtf.ParseFormat(format)
				if err != nil {
					return err
				}
				if err := f.Reformat(desired); err != nil {
					return err
				}
			}
			f.SetCompressed(compress)

			opts, err := writeOptions(codecName)
			if err != nil {
				return err
			}
			if err := ndtf.SaveWithOptions(out, f, opts); err != nil {
				return err
			}

			zerolog.Ctx(ctx).Info().Str("file", out).Str("format", f.Format().String()).Msg("imported")

			return nil
		},
	}
}
