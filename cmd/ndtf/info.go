package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/woozymasta/ndtf"
)

type glInfo struct {
	Sized uint32 `json:"sized"`
	Base  uint32 `json:"base"`
	Type  uint32 `json:"type"`
}

type fileInfo struct {
	Path        string `json:"path"`
	Version     string `json:"version"`
	Dimensions  int    `json:"dimensions"`
	Format      string `json:"format"`
	Channels    int    `json:"channels"`
	ChannelType string `json:"channel_type"`
	TexelSize   int    `json:"texel_size"`
	Extents     []int  `json:"extents"`
	Elements    uint64 `json:"elements"`
	DataSize    int    `json:"data_size"`
	Compressed  bool   `json:"compressed"`
	Flags       uint32 `json:"flags"`
	GL          glInfo `json:"gl"`
	Verified    bool   `json:"verified,omitempty"`
}

func describe(path string, h ndtf.Header) (fileInfo, error) {
	elements, err := h.ElementCount()
	if err != nil {
		return fileInfo{}, err
	}
	size, err := h.DataSize()
	if err != nil {
		return fileInfo{}, err
	}

	major, minor := h.VersionParts()
	extents := make([]int, h.Dimensions)
	for i := range extents {
		extents[i] = int(h.Extents[i])
	}
	sized, base, typ := ndtf.GLFormats(h.Format)

	return fileInfo{
		Path:        path,
		Version:     fmt.Sprintf("%d.%d", major, minor),
		Dimensions:  int(h.Dimensions),
		Format:      h.Format.String(),
		Channels:    h.Format.Channels(),
		ChannelType: h.Format.Kind().String(),
		TexelSize:   h.Format.TexelSize(),
		Extents:     extents,
		Elements:    elements,
		DataSize:    size,
		Compressed:  h.Compressed(),
		Flags:       h.Flags,
		GL:          glInfo{Sized: sized, Base: base, Type: typ},
	}, nil
}

func printInfo(w io.Writer, info fileInfo) {
	extents := make([]string, len(info.Extents))
	for i, e := range info.Extents {
		extents[i] = fmt.Sprint(e)
	}

	_, _ = fmt.Fprintf(w, "file:        %s\n", info.Path)
	_, _ = fmt.Fprintf(w, "version:     %s\n", info.Version)
	_, _ = fmt.Fprintf(w, "dimensions:  %d (%s)\n", info.Dimensions, strings.Join(extents, "x"))
	_, _ = fmt.Fprintf(w, "format:      %s (%d x %s, %d bytes/texel)\n",
		info.Format, info.Channels, info.ChannelType, info.TexelSize)
	_, _ = fmt.Fprintf(w, "texels:      %d\n", info.Elements)
	_, _ = fmt.Fprintf(w, "data size:   %d\n", info.DataSize)
	_, _ = fmt.Fprintf(w, "compressed:  %t\n", info.Compressed)
	_, _ = fmt.Fprintf(w, "flags:       0x%08x\n", info.Flags)
	_, _ = fmt.Fprintf(w, "gl:          sized=0x%04x base=0x%04x type=0x%04x\n", info.GL.Sized, info.GL.Base, info.GL.Type)
	if info.Verified {
		_, _ = fmt.Fprintf(w, "payload:     ok\n")
	}
}

func infoCmd() *cli.Command {
	var (
		asJSON bool
		verify bool
	)

	return &cli.Command{
		Name:      "info",
		Usage:     "Print NDTF header information",
		ArgsUsage: "FILE...",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print JSON", Destination: &asJSON},
			&cli.BoolFlag{Name: "verify", Usage: "decode the payload as well", Destination: &verify},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.NArg() == 0 {
				return fmt.Errorf("info: at least one file is required")
			}
			log := zerolog.Ctx(ctx)

			infos := make([]fileInfo, 0, cmd.NArg())
			for _, path := range cmd.Args().Slice() {
				h, err := ndtf.ReadConfig(path)
				if err != nil {
					return err
				}
				info, err := describe(path, h)
				if err != nil {
					return err
				}

				if verify {
					opts, err := readOptions(ndtf.FormatNone)
					if err != nil {
						return err
					}
					if _, _, err := ndtf.LoadWithOptions(path, opts); err != nil {
						log.Error().Str("file", path).Str("reason", ndtf.Reason(err).String()).Msg("payload check failed")
						return err
					}
					info.Verified = true
				}

				log.Debug().Str("file", path).Str("format", info.Format).Msg("header read")
				infos = append(infos, info)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				if len(infos) == 1 {
					return enc.Encode(infos[0])
				}
				return enc.Encode(infos)
			}

			for i, info := range infos {
				if i > 0 {
					fmt.Println()
				}
				printInfo(os.Stdout, info)
			}

			return nil
		},
	}
}
