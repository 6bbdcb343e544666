// Package ir implements the compiler's intermediate representation:
// the Op variant type, the lexer that produces a coalesced Op list
// from source text, and the optimizer that prunes and merges it to a
// fixpoint.
package ir

// Kind is the closed tagged variant of operation kinds spec.md
// section 3 describes. Skip never survives lexing into the final
// list; it exists only during character classification.
type Kind int

const (
	Skip Kind = iota
	Mutate
	Move
	Input
	Print
	IfZero
	IfNotZero
)

func (k Kind) String() string {
	switch k {
	case Skip:
		return "Skip"
	case Mutate:
		return "Mutate"
	case Move:
		return "Move"
	case Input:
		return "Input"
	case Print:
		return "Print"
	case IfZero:
		return "IfZero"
	case IfNotZero:
		return "IfNotZero"
	default:
		return "Unknown"
	}
}

// Coalescable reports whether ops of this kind may be merged with an
// adjacent op of the same kind. Brackets are never coalesced.
func (k Kind) Coalescable() bool {
	switch k {
	case Mutate, Move, Input, Print:
		return true
	default:
		return false
	}
}

// Op is a single node of the singly linked op list, in execution
// order. Next is nil for the final node. Code is filled in by the
// assembler; it is the sentinel empty buffer until then.
type Op struct {
	Kind Kind
	N    int32

	// BracketN is the pre-normalization source-character distance to
	// this op's bracket match, populated only for IfZero/IfNotZero by
	// the lexer (spec.md section 4.2). Never consumed by the
	// optimizer or assembler, both of which re-match by walking the
	// list at depth; kept for diagnostics and tests (DESIGN.md open
	// question 1).
	BracketN int32

	SrcStart int
	SrcEnd   int

	Next *Op
	Code []byte
}

// ClassifyByte maps a single source byte to its op kind, per spec.md
// section 4.2's character classification table.
func ClassifyByte(c byte) Kind {
	switch c {
	case '+', '-':
		return Mutate
	case '>', '<':
		return Move
	case ',':
		return Input
	case '.':
		return Print
	case '[':
		return IfZero
	case ']':
		return IfNotZero
	default:
		return Skip
	}
}

// Delta returns the per-character contribution to an accumulating
// op's N when c continues a coalescable run: +/> contribute +1, -/<
// contribute -1, ,/. contribute +1.
func Delta(c byte) int32 {
	switch c {
	case '+', '>', ',', '.':
		return 1
	case '-', '<':
		return -1
	default:
		return 0
	}
}

// Count returns the number of nodes in the list headed by head.
func Count(head *Op) int {
	n := 0
	for o := head; o != nil; o = o.Next {
		n++
	}
	return n
}

// ToSlice flattens the list into a slice, for tests and round-trip
// comparisons.
func ToSlice(head *Op) []*Op {
	var out []*Op
	for o := head; o != nil; o = o.Next {
		out = append(out, o)
	}
	return out
}
