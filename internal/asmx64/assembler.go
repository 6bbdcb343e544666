package asmx64

import (
	"fmt"

	"github.com/flatbyte/bfc/internal/config"
	"github.com/flatbyte/bfc/internal/ir"
	"github.com/flatbyte/bfc/internal/iobuf"
)

// MaxBracketDepth bounds the recursive bracket resolver's recursion
// depth. Recursion depth equals bracket nesting depth, which is
// unbounded for adversarial input (spec.md section 9); rather than
// convert to an explicit stack, this implementation documents and
// checks a maximum, per that section's alternative.
const MaxBracketDepth = 4096

// Result is the assembler's output: the final concatenated machine
// code, entry point at byte 0.
type Result struct {
	Code []byte
}

// Assemble fills every op's Code buffer (pass 1: non-branch ops;
// pass 2: recursive bracket resolution) and concatenates the
// prologue, op codes, and exit-success footer into the final blob.
// It fails on a cell width other than 1, on allocation failure
// surfaced from iobuf, or on bracket nesting beyond MaxBracketDepth;
// semantic correctness is
// already guaranteed by the lexer and optimizer (spec.md section 4.4).
func Assemble(head *ir.Op, cfg config.Config) (Result, error) {
	if cfg.ByteSize != 1 {
		return Result{}, fmt.Errorf("cell width %d not implemented, only 1-byte cells are supported", cfg.ByteSize)
	}

	if err := passOne(head, cfg); err != nil {
		return Result{}, err
	}
	if err := passTwo(head); err != nil {
		return Result{}, err
	}

	out := iobuf.New()
	if !out.AppendBytes(prologueTemplate(cfg.TapeSize)...) {
		return Result{}, fmt.Errorf("allocation failure emitting prologue")
	}
	for o := head; o != nil; o = o.Next {
		if len(o.Code) == 0 {
			return Result{}, fmt.Errorf("internal error: op %s at %d has empty code after assembly", o.Kind, o.SrcStart)
		}
		if !out.AppendBytes(o.Code...) {
			return Result{}, fmt.Errorf("allocation failure emitting op %s at %d", o.Kind, o.SrcStart)
		}
	}
	if !out.AppendBytes(exitSuccessTemplate()...) {
		return Result{}, fmt.Errorf("allocation failure emitting exit footer")
	}

	return Result{Code: out.Bytes()}, nil
}

// passOne walks the op list in order, filling code for every
// non-branch op. IfZero/IfNotZero are left with an empty (sentinel)
// Code buffer, since their size depends on the branch form chosen in
// pass two.
func passOne(head *ir.Op, cfg config.Config) error {
	for o := head; o != nil; o = o.Next {
		switch o.Kind {
		case ir.Mutate:
			n := o.N
			if cfg.OverflowBehavior == config.OverflowCap && (int64(n) > cfg.MaxCellValue() || int64(n) < -cfg.MaxCellValue()) {
				n = capToCell(n, cfg)
			}
			o.Code = mutateTemplate(n)
		case ir.Move:
			n := o.N
			if cfg.OverflowBehavior == config.OverflowCap && (int64(n) > cfg.MaxCellValue() || int64(n) < -cfg.MaxCellValue()) {
				n = capToCell(n, cfg)
			}
			o.Code = moveTemplate(n)
		case ir.Print:
			o.Code = printTemplate(uint32(o.N))
		case ir.Input:
			o.Code = inputTemplate(uint32(o.N))
		case ir.IfZero, ir.IfNotZero:
			// resolved in pass two
		default:
			return fmt.Errorf("internal error: unexpected op kind %s reached the assembler", o.Kind)
		}
	}
	return nil
}

// capToCell wraps n into the signed range of the configured cell
// width, used when OverflowBehavior is OverflowCap (SPEC_FULL.md
// section 10). A single-byte add already wraps modulo 256 in
// hardware; this only affects the immediate actually encoded.
func capToCell(n int32, cfg config.Config) int32 {
	max := cfg.MaxCellValue() + 1 // modulus
	m := int64(n) % max
	if m > cfg.MaxCellValue()/2 {
		m -= max
	} else if m < -(cfg.MaxCellValue()+1)/2 {
		m += max
	}
	return int32(m)
}

// passTwo walks the op list, invoking the recursive bracket resolver
// on every top-level IfZero and skipping past the region it resolves.
func passTwo(head *ir.Op) error {
	for o := head; o != nil; {
		if o.Kind == ir.IfZero {
			closeOp, _, err := resolveBracket(o, 1)
			if err != nil {
				return err
			}
			o = closeOp.Next
			continue
		}
		o = o.Next
	}
	return nil
}

// resolveBracket implements spec.md section 4.4's recursive resolver.
// It scans forward from openOp, recursing into nested IfZero ops
// first so their final sizes are known, sums the byte size D of
// everything strictly between openOp and its match, chooses the short
// or near branch form, and fills both brackets' Code buffers.
// Returns the matching IfNotZero op and the total byte size spanning
// openOp through the returned op, inclusive.
func resolveBracket(openOp *ir.Op, depth int) (closeOp *ir.Op, fullSize int, err error) {
	if depth > MaxBracketDepth {
		return nil, 0, fmt.Errorf("bracket nesting exceeds maximum depth %d at offset %d", MaxBracketDepth, openOp.SrcStart)
	}

	d := 0
	cur := openOp.Next
	for {
		if cur == nil {
			return nil, 0, fmt.Errorf("internal error: no matching IfNotZero for IfZero at offset %d", openOp.SrcStart)
		}
		switch cur.Kind {
		case ir.IfZero:
			inner, innerSize, err := resolveBracket(cur, depth+1)
			if err != nil {
				return nil, 0, err
			}
			d += innerSize
			cur = inner.Next
		case ir.IfNotZero:
			closeOp = cur
			goto found
		default:
			d += len(cur.Code)
			cur = cur.Next
		}
	}
found:
	shortD := d + shortFormSize
	if shortD < 128 {
		openOp.Code = ifZeroShort(int8(shortD))
		closeOp.Code = ifNotZeroShort(int8(-shortD))
		return closeOp, d + 2*shortFormSize, nil
	}
	nearD := d + nearFormSize
	openOp.Code = ifZeroNear(int32(nearD))
	closeOp.Code = ifNotZeroNear(int32(-nearD))
	return closeOp, d + 2*nearFormSize, nil
}
