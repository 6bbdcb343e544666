package ir

import (
	"fmt"

	"github.com/flatbyte/bfc/internal/diag"
	"github.com/flatbyte/bfc/internal/srcpos"
)

// Lex folds src's text into a coalesced op list per spec.md section
// 4.2: same-kind runs accumulate, Skip characters are silently
// consumed without breaking a run, and brackets are never coalesced.
// Returns the head of the list, or ok=false with a diagnostic already
// logged through lg.
func Lex(src *srcpos.Source, lg *diag.Logger) (head *Op, ok bool) {
	text := src.Text
	matches, failPos, failKind := matchBrackets(text)
	if failPos >= 0 {
		lg.ErrorAt(src.At(failPos), "%s", unmatchedMessage(failKind))
		return nil, false
	}

	// nonSkip[i] = count of non-Skip characters in text[0:i].
	nonSkip := make([]int, len(text)+1)
	for i, c := range text {
		nonSkip[i+1] = nonSkip[i]
		if ClassifyByte(c) != Skip {
			nonSkip[i+1]++
		}
	}

	var listHead, listTail *Op
	appendOp := func(o *Op) {
		if listHead == nil {
			listHead, listTail = o, o
		} else {
			listTail.Next = o
			listTail = o
		}
	}

	var building *Op
	flush := func() {
		if building != nil {
			appendOp(building)
			building = nil
		}
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		kind := ClassifyByte(c)
		switch kind {
		case Skip:
			continue
		case IfZero, IfNotZero:
			flush()
			j := matches[i]
			var n int32
			if kind == IfZero {
				n = int32(nonSkip[j] - nonSkip[i+1])
			} else {
				n = -int32(nonSkip[i] - nonSkip[j+1])
			}
			appendOp(&Op{Kind: kind, BracketN: n, SrcStart: i, SrcEnd: i + 1})
		default:
			if building != nil && building.Kind == kind {
				building.N += Delta(c)
				building.SrcEnd = i + 1
				continue
			}
			flush()
			building = &Op{Kind: kind, N: Delta(c), SrcStart: i, SrcEnd: i + 1}
		}
	}
	flush()

	return listHead, true
}

// matchBrackets finds, for every bracket byte, the index of its
// matching bracket. On an unmatched bracket it returns the offending
// position and which bracket byte it was; otherwise failPos is -1.
func matchBrackets(text []byte) (matches map[int]int, failPos int, failByte byte) {
	matches = make(map[int]int)
	var stack []int
	for i, c := range text {
		switch c {
		case '[':
			stack = append(stack, i)
		case ']':
			if len(stack) == 0 {
				return matches, i, ']'
			}
			open := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			matches[open] = i
			matches[i] = open
		}
	}
	if len(stack) > 0 {
		return matches, stack[0], '['
	}
	return matches, -1, 0
}

func unmatchedMessage(b byte) string {
	switch b {
	case '[':
		return fmt.Sprintf("No delimiter(%c) for %c", ']', '[')
	case ']':
		return fmt.Sprintf("No delimiter(%c) for %c", '[', ']')
	default:
		return "No delimiter"
	}
}
