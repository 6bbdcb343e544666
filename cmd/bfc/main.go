// Command bfc is the ahead-of-time Brainfuck-to-x86-64 compiler's
// entry point: `bfc <source-path>`, writing a freestanding machine
// code blob (or, with --elf, a minimal static executable) to the
// configured output path.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/flatbyte/bfc/internal/compiler"
	"github.com/flatbyte/bfc/internal/config"
	"github.com/flatbyte/bfc/internal/diag"
)

func main() {
	// Zero arguments must print exactly "Missing file!" per spec.md
	// section 6, ahead of urfave/cli's own usage/error formatting.
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Missing file!")
		os.Exit(1)
	}

	app := &cli.App{
		Name:      "bfc",
		Usage:     "ahead-of-time Brainfuck to x86-64 Linux compiler",
		ArgsUsage: "<source-path>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "bfcbin",
				Usage:   "output path for the assembled binary",
			},
			&cli.IntFlag{
				Name:  "cell-width",
				Value: 1,
				Usage: "cell width in bytes (only 1 is code-generated)",
			},
			&cli.StringFlag{
				Name:  "overflow",
				Value: "undefined",
				Usage: "overflow policy: undefined, cap, or abort",
			},
			&cli.IntFlag{
				Name:  "tape-size",
				Value: 30000,
				Usage: "initial cell tape size in bytes",
			},
			&cli.BoolFlag{
				Name:  "elf",
				Usage: "wrap the output in a minimal static ELF64 executable",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug-level diagnostics",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			os.Exit(exitErr.ExitCode())
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Missing file!")
		return cli.Exit("", 1)
	}
	path := c.Args().Get(0)

	overflow, err := config.ParseOverflowBehavior(c.String("overflow"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	cfg := config.Default()
	cfg.OutputPath = c.String("output")
	cfg.ByteSize = c.Int("cell-width")
	cfg.OverflowBehavior = overflow
	cfg.TapeSize = int32(c.Int("tape-size"))
	if c.Bool("elf") {
		cfg.OutputFormat = config.OutputELF
	}

	lg := diag.New()
	lg.Debug = c.Bool("debug")

	res, err := compiler.CompileFile(path, cfg, lg)
	if err != nil {
		return cli.Exit("", 1)
	}

	if err := compiler.WriteOutput(res, cfg); err != nil {
		lg.Logf(diag.Error, "%v", err)
		return cli.Exit("", 1)
	}

	return nil
}
