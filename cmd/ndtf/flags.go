package main

import "github.com/urfave/cli/v3"

var (
	configFile string
	logLevel   string
	codecName  string
)

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Usage:       "path to config file (.yaml, .yml or .toml)",
			Destination: &configFile,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (trace, debug, info, warn, error, off)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "codec",
			Usage:       "payload codec for compressed files (zlib, zstd, lz4)",
			Value:       "zlib",
			Destination: &codecName,
		},
	}
}

func compressFlag(dest *bool) cli.Flag {
	return &cli.BoolFlag{
		Name:        "compress",
		Aliases:     []string{"z"},
		Usage:       "compress the payload",
		Destination: dest,
	}
}
