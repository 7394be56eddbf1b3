package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/tebeka/atexit"
	"github.com/urfave/cli/v2"

	"animac/pkg/compiler"
	"animac/pkg/utils"
)

var (
	moduleFlagsFlag = &cli.Uint64Flag{
		Name:  "flags",
		Usage: "value of the module header flags word",
	}
	dumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "print the classified instructions",
	}
)

var commandCompile = &cli.Command{
	Name:      "compile",
	Usage:     "compile a dialog script",
	ArgsUsage: "<script> [<output>]",
	Description: `
Compile a script into a module. The output defaults to the script path
with a .dvm extension.`,
	Flags: []cli.Flag{
		configFlag,
		byteOrderFlag,
		legacyDataSizeFlag,
		moduleFlagsFlag,
		dumpFlag,
	},
	Action: func(ctx *cli.Context) error {
		in := ctx.Args().First()
		if in == "" {
			return errors.New("no script given")
		}
		out := ctx.Args().Get(1)
		if out == "" {
			out = utils.DefaultOutputPath(in, ".dvm")
		}

		src, err := os.ReadFile(in)
		if err != nil {
			return fmt.Errorf("failed to read script %q: %v", in, err)
		}
		opts, err := compileOptions(ctx)
		if err != nil {
			return err
		}

		res, err := compiler.Compile(string(src), opts)
		if err != nil {
			return errors.New(compiler.Snippet(err, string(src)))
		}
		if ctx.Bool(dumpFlag.Name) {
			spew.Fdump(ctx.App.Writer, res.Instructions)
		}

		full, _, err := utils.GetPathInfo(out)
		if err != nil {
			return err
		}
		atexit.Register(func() { os.Remove(utils.TempPath(full)) })
		if err := utils.WriteFileAtomic(full, res.Binary, 0o644); err != nil {
			return fmt.Errorf("failed to write module %q: %v", out, err)
		}
		fmt.Fprintf(ctx.App.Writer, "compiled %d instructions, %d bytes -> %s\n", len(res.Instructions), len(res.Binary), out)
		return nil
	},
}
