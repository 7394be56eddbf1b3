package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/urfave/cli/v2"

	"animac/pkg/compiler"
	"animac/pkg/module"
)

const (
	historyFile = ".animac_history"
	promptMain  = "anima> "
	promptCont  = "   ... "
)

var commandRepl = &cli.Command{
	Name:  "repl",
	Usage: "compile snippets interactively and print their listing",
	Description: `
Each snippet is compiled on its own. Input continues on the next line while
a string, group or block comment is open. Type :quit to exit.`,
	Flags: []cli.Flag{
		configFlag,
		byteOrderFlag,
		legacyDataSizeFlag,
	},
	Action: func(ctx *cli.Context) error {
		opts, err := compileOptions(ctx)
		if err != nil {
			return err
		}

		histPath, err := historyPath()
		if err != nil {
			fmt.Fprintln(ctx.App.ErrWriter, red("history disabled: "+err.Error()))
		}

		ln := liner.NewLiner()
		defer ln.Close()
		ln.SetCtrlCAborts(true)

		if histPath != "" {
			if f, err := os.Open(histPath); err == nil {
				ln.ReadHistory(f)
				f.Close()
			}
		}
		defer func() {
			if histPath == "" {
				return
			}
			if f, err := os.Create(histPath); err == nil {
				ln.WriteHistory(f)
				f.Close()
			}
		}()

		for {
			src, ok := readSnippet(ln)
			if !ok {
				fmt.Fprintln(ctx.App.Writer)
				return nil
			}
			switch strings.TrimSpace(src) {
			case "":
				continue
			case ":quit", ":q":
				return nil
			}
			ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

			out, err := evalSnippet(src, opts)
			if err != nil {
				fmt.Fprintln(ctx.App.ErrWriter, red(err.Error()))
				continue
			}
			fmt.Fprint(ctx.App.Writer, out)
		}
	},
}

// historyPath returns the history file in the user's home directory.
func historyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, historyFile), nil
}

// readSnippet reads lines until the input is complete. ok is false at end
// of input.
func readSnippet(ln *liner.State) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)
		if !incomplete(b.String()) {
			return b.String(), true
		}
	}
}

// incomplete reports whether src ends inside a string, a group or a block
// comment.
func incomplete(src string) bool {
	depth := 0
	for i := 0; i < len(src); i++ {
		switch c := src[i]; {
		case c == '"':
			for i++; i < len(src) && src[i] != '"'; i++ {
				if src[i] == '\\' {
					i++
				}
			}
			if i >= len(src) {
				return true
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return true
			}
			i += end + 3
		case c == '(' || c == '[':
			depth++
		case c == ')' || c == ']':
			if depth > 0 {
				depth--
			}
		}
	}
	return depth > 0
}

// evalSnippet compiles src and renders the module it produces.
func evalSnippet(src string, opts compiler.Options) (string, error) {
	res, err := compiler.Compile(src, opts)
	if err != nil {
		return "", errors.New(compiler.Snippet(err, src))
	}
	f, err := module.Decode(res.Binary, module.DecodeOptions{Order: res.Program.ByteOrder(), LegacyDataSize: opts.Module.LegacyDataSize})
	if err != nil {
		return "", err
	}
	listing, err := module.NewListing(f)
	if err != nil {
		return "", err
	}
	listing.AttachSource(res.Program.SourceMap)
	return listing.Table(), nil
}
