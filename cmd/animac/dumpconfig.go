package main

import (
	"github.com/urfave/cli/v2"

	"animac/pkg/config"
)

var commandDumpConfig = &cli.Command{
	Name:  "dumpconfig",
	Usage: "print the effective configuration as TOML",
	Flags: []cli.Flag{
		configFlag,
		byteOrderFlag,
		legacyDataSizeFlag,
		moduleFlagsFlag,
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = ctx.App.Writer.Write(out)
		return err
	},
}
