package main

import (
	"github.com/urfave/cli/v2"

	"animac/pkg/compiler"
	"animac/pkg/config"
	"animac/pkg/module"
)

// loadConfig reads --config, if given, and applies the flags set on the
// command line over it.
func loadConfig(ctx *cli.Context) (config.Config, error) {
	cfg := config.Default()
	if file := ctx.String(configFlag.Name); file != "" {
		var err error
		if cfg, err = config.Load(file); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(byteOrderFlag.Name) {
		cfg.Module.ByteOrder = ctx.String(byteOrderFlag.Name)
	}
	if ctx.IsSet(legacyDataSizeFlag.Name) {
		cfg.Module.LegacyDataSize = ctx.Bool(legacyDataSizeFlag.Name)
	}
	if ctx.IsSet(moduleFlagsFlag.Name) {
		cfg.Module.Flags = ctx.Uint64(moduleFlagsFlag.Name)
	}
	return cfg, nil
}

func compileOptions(ctx *cli.Context) (compiler.Options, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return compiler.Options{}, err
	}
	opts, err := cfg.CompileOptions()
	if err != nil {
		return opts, err
	}
	opts.Logger = logger(ctx)
	return opts, nil
}

func decodeOptions(ctx *cli.Context) (module.DecodeOptions, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return module.DecodeOptions{}, err
	}
	return cfg.DecodeOptions()
}
