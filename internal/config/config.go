// Package config holds the compiler's process-wide configuration: a
// plain, explicitly-threaded value rather than a package-level
// global, replacing the original's mutable G_ERROR-style globals per
// spec.md section 9.
package config

import "fmt"

// OverflowBehavior controls what the optimizer's overflow analysis
// does when a Mutate/Move operand exceeds the representable range of
// a cell.
type OverflowBehavior int

const (
	// OverflowUndefined leaves overflowing ops untouched; the
	// generated code wraps silently at runtime (the natural behavior
	// of an 8-bit add), matching the original default.
	OverflowUndefined OverflowBehavior = iota
	// OverflowCap wraps overflowing operands into the cell's range at
	// codegen time and logs an INFO diagnostic
	// instead of the Abort policy's WARNING (SPEC_FULL.md section 10).
	OverflowCap
	// OverflowAbort only warns during analysis that the generated
	// program will trap deterministically at runtime; no codegen
	// change is made.
	OverflowAbort
)

func ParseOverflowBehavior(s string) (OverflowBehavior, error) {
	switch s {
	case "undefined", "":
		return OverflowUndefined, nil
	case "cap":
		return OverflowCap, nil
	case "abort":
		return OverflowAbort, nil
	default:
		return 0, fmt.Errorf("unknown overflow policy %q", s)
	}
}

// OutputFormat selects the driver's output stage.
type OutputFormat int

const (
	OutputFlat OutputFormat = iota
	OutputELF
)

// Config is the set-once, read-only-thereafter configuration record
// spec.md section 5 describes. It is constructed once by cmd/bfc and
// passed down explicitly; no package holds it as a global.
type Config struct {
	// ByteSize is the cell width in bytes. Only 1 is implemented by
	// the assembler; other values are accepted here and rejected with
	// a clear error at assembly time (SPEC_FULL.md section 5.1).
	ByteSize int
	// OverflowBehavior is the configured overflow policy.
	OverflowBehavior OverflowBehavior
	// TapeSize is the number of bytes reserved on the stack for the
	// cell tape by the assembler's prologue.
	TapeSize int32
	// OutputPath is where the driver writes the assembled binary.
	OutputPath string
	// OutputFormat selects flat-blob vs. ELF64-wrapped output.
	OutputFormat OutputFormat
}

// Default returns the configuration matching spec.md's defaults: a
// single-byte cell, undefined overflow behavior, a 30000-byte tape,
// and output to ./bfcbin.
func Default() Config {
	return Config{
		ByteSize:         1,
		OverflowBehavior: OverflowUndefined,
		TapeSize:         30000,
		OutputPath:       "bfcbin",
		OutputFormat:     OutputFlat,
	}
}

// MaxCellValue returns the largest value representable in a cell of
// the configured width, i.e. (1 << (8*ByteSize)) - 1.
func (c Config) MaxCellValue() int64 {
	return (int64(1) << uint(8*c.ByteSize)) - 1
}
