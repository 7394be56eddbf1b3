// Command animac compiles dialog scripts into dialog VM modules and inspects
// the result.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/tebeka/atexit"
	"github.com/urfave/cli/v2"
)

var (
	verboseFlag = &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "log pipeline stages to stderr",
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	byteOrderFlag = &cli.StringFlag{
		Name:  "byte-order",
		Usage: "module byte order (little or big)",
	}
	legacyDataSizeFlag = &cli.BoolFlag{
		Name:  "legacy-data-size",
		Usage: "leave string terminators out of the declared data size",
	}
)

var red = color.New(color.FgRed, color.Bold).SprintFunc()

func newApp() *cli.App {
	return &cli.App{
		Name:  "animac",
		Usage: "dialog script compiler",
		Flags: []cli.Flag{verboseFlag},
		Commands: []*cli.Command{
			commandCompile,
			commandDisasm,
			commandRepl,
			commandDumpConfig,
		},
	}
}

// logger returns a text logger on stderr when --verbose is set.
func logger(ctx *cli.Context) *slog.Logger {
	if !ctx.Bool(verboseFlag.Name) {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(ctx.App.ErrWriter, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func fatalf(format string, args ...any) {
	fmt.Fprintln(os.Stderr, red(fmt.Sprintf(format, args...)))
	atexit.Exit(1)
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fatalf("%v", err)
	}
	atexit.Exit(0)
}
