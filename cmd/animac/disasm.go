package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"animac/pkg/module"
)

var formatFlag = &cli.StringFlag{
	Name:  "format",
	Usage: "output format (table or yaml)",
	Value: "table",
}

var commandDisasm = &cli.Command{
	Name:      "disasm",
	Usage:     "disassemble a module",
	ArgsUsage: "<module>",
	Flags: []cli.Flag{
		configFlag,
		byteOrderFlag,
		legacyDataSizeFlag,
		formatFlag,
	},
	Action: func(ctx *cli.Context) error {
		path := ctx.Args().First()
		blob, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read module %q: %v", path, err)
		}
		opts, err := decodeOptions(ctx)
		if err != nil {
			return err
		}
		f, err := module.Decode(blob, opts)
		if err != nil {
			return err
		}
		listing, err := module.NewListing(f)
		if err != nil {
			return err
		}

		switch format := ctx.String(formatFlag.Name); format {
		case "table":
			fmt.Fprint(ctx.App.Writer, listing.Table())
		case "yaml":
			out, err := listing.YAML()
			if err != nil {
				return err
			}
			if _, err := ctx.App.Writer.Write(out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown format %q", format)
		}
		return nil
	},
}
