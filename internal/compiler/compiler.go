// Package compiler wires the lexer, optimizer, and assembler into
// the driver spec.md section 4.5 describes: reads the source file,
// invokes each stage in order, short-circuiting on the first
// failure, and returns the assembled code (or an explicit error) to
// its caller rather than touching a package-level error flag.
package compiler

import (
	"fmt"
	"os"

	"github.com/flatbyte/bfc/internal/asmx64"
	"github.com/flatbyte/bfc/internal/config"
	"github.com/flatbyte/bfc/internal/diag"
	"github.com/flatbyte/bfc/internal/elfout"
	"github.com/flatbyte/bfc/internal/ir"
	"github.com/flatbyte/bfc/internal/srcpos"
)

// Result is the driver's successful artifact: the bytes to write to
// the configured output path.
type Result struct {
	Bytes []byte
}

// CompileFile reads path, runs the full pipeline, and returns the
// final output bytes (flat blob or ELF-wrapped per cfg.OutputFormat).
// Any stage failure is reported through lg and returned as an error;
// the caller is responsible for mapping that to a process exit code.
func CompileFile(path string, cfg config.Config, lg *diag.Logger) (Result, error) {
	text, err := os.ReadFile(path)
	if err != nil {
		lg.Logf(diag.Error, "%v", err)
		return Result{}, err
	}

	src := srcpos.New(path, text)

	head, ok := ir.Lex(src, lg)
	if !ok {
		return Result{}, fmt.Errorf("lex failed for %s", path)
	}

	head, _ = ir.Optimize(head, src, lg, cfg)

	asmResult, err := asmx64.Assemble(head, cfg)
	if err != nil {
		lg.Logf(diag.Error, "%v", err)
		return Result{}, err
	}

	out := asmResult.Code
	if cfg.OutputFormat == config.OutputELF {
		out = elfout.Wrap(out)
	}

	return Result{Bytes: out}, nil
}

// WriteOutput writes res.Bytes to cfg.OutputPath with executable
// permissions, matching spec.md section 6: a single binary file at
// the configured path.
func WriteOutput(res Result, cfg config.Config) error {
	return os.WriteFile(cfg.OutputPath, res.Bytes, 0o755)
}
