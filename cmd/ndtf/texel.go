package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/woozymasta/ndtf"
)

func atFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "at",
		Usage:       "texel coordinate, one value per axis, e.g. 3,1,0",
		Required:    true,
		Destination: dest,
	}
}

func getCmd() *cli.Command {
	var at string

	return &cli.Command{
		Name:      "get",
		Usage:     "Print the channels of one texel",
		ArgsUsage: "FILE",
		Flags:     []cli.Flag{atFlag(&at)},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("get: exactly one file is required")
			}

			opts, err := readOptions(ndtf.FormatNone)
			if err != nil {
				return err
			}
			f, _, err := ndtf.LoadWithOptions(cmd.Args().First(), opts)
			if err != nil {
				return err
			}

			c, err := parseCoord(at, f.Dimensions())
			if err != nil {
				return err
			}
			vals, err := texelStrings(f, c)
			if err != nil {
				return err
			}

			fmt.Println(strings.Join(vals, ","))

			return nil
		},
	}
}

func setCmd() *cli.Command {
	var (
		at    string
		value string
	)

	return &cli.Command{
		Name:      "set",
		Usage:     "Overwrite the channels of one texel in place",
		ArgsUsage: "FILE",
		Flags: []cli.Flag{
			atFlag(&at),
			&cli.StringFlag{
				Name:        "value",
				Aliases:     []string{"v"},
				Usage:       "comma separated channel values",
				Required:    true,
				Destination: &value,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("set: exactly one file is required")
			}
			path := cmd.Args().First()

			ropts, err := readOptions(ndtf.FormatNone)
			if err != nil {
				return err
			}
			f, _, err := ndtf.LoadWithOptions(path, ropts)
			if err != nil {
				return err
			}

			c, err := parseCoord(at, f.Dimensions())
			if err != nil {
				return err
			}
			if err := setTexel(f, c, splitValues(value)); err != nil {
				return err
			}

			wopts, err := writeOptions(codecName)
			if err != nil {
				return err
			}
			if err := ndtf.SaveWithOptions(path, f, wopts); err != nil {
				return err
			}

			zerolog.Ctx(ctx).Debug().Str("file", path).Str("at", at).Msg("texel written")

			return nil
		},
	}
}
