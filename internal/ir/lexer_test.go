package ir

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/flatbyte/bfc/internal/diag"
	"github.com/flatbyte/bfc/internal/srcpos"
)

// kindN is a simplified projection of an Op used to compare lexer
// output without coupling tests to source-span bookkeeping.
type kindN struct {
	Kind Kind
	N    int32
}

func simplify(head *Op) []kindN {
	var out []kindN
	for o := head; o != nil; o = o.Next {
		out = append(out, kindN{o.Kind, o.N})
	}
	return out
}

func lex(t *testing.T, text string) (*Op, bool, string) {
	t.Helper()
	var buf bytes.Buffer
	lg := &diag.Logger{Out: &buf}
	src := srcpos.New("test.bf", []byte(text))
	head, ok := Lex(src, lg)
	return head, ok, buf.String()
}

func TestLexCoalescing(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []kindN
	}{
		{"empty", "", nil},
		{"single plus", "+", []kindN{{Mutate, 1}}},
		{"plus plus minus", "++-", []kindN{{Mutate, 1}}},
		{"plus minus cancels to zero node pre-optimize", "+-", []kindN{{Mutate, 0}}},
		{"move run", ">>><", []kindN{{Move, 2}}},
		{"input run", ",,,", []kindN{{Input, 3}}},
		{"print run", "...", []kindN{{Print, 3}}},
		{"skip chars do not break a run", "+ hello +", []kindN{{Mutate, 2}}},
		{"different kinds split", "+>", []kindN{{Mutate, 1}, {Move, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			head, ok, _ := lex(t, tt.text)
			if !ok {
				t.Fatalf("Lex(%q) failed unexpectedly", tt.text)
			}
			if diff := cmp.Diff(tt.want, simplify(head)); diff != "" {
				t.Errorf("Lex(%q) mismatch (-want +got):\n%s", tt.text, diff)
			}
		})
	}
}

func TestLexBracketsNeverCoalesce(t *testing.T) {
	head, ok, _ := lex(t, "[-]")
	if !ok {
		t.Fatalf("Lex failed unexpectedly")
	}
	want := []kindN{{IfZero, 0}, {Mutate, -1}, {IfNotZero, 0}}
	if diff := cmp.Diff(want, simplify(head)); diff != "" {
		t.Errorf("Lex([-]) mismatch (-want +got):\n%s", diff)
	}
}

func TestLexNestedBrackets(t *testing.T) {
	head, ok, _ := lex(t, "[[+]]")
	if !ok {
		t.Fatalf("Lex failed unexpectedly")
	}
	want := []kindN{{IfZero, 0}, {IfZero, 0}, {Mutate, 1}, {IfNotZero, 0}, {IfNotZero, 0}}
	if diff := cmp.Diff(want, simplify(head)); diff != "" {
		t.Errorf("Lex([[+]]) mismatch (-want +got):\n%s", diff)
	}
}

func TestLexBracketMatchingDistance(t *testing.T) {
	// "[-]": the IfZero's BracketN should count the one non-Skip
	// character ('-') strictly between the brackets; IfNotZero mirrors
	// it negated.
	head, ok, _ := lex(t, "[-]")
	if !ok {
		t.Fatalf("Lex failed unexpectedly")
	}
	ops := ToSlice(head)
	if ops[0].BracketN != 1 {
		t.Errorf("IfZero.BracketN = %d, want 1", ops[0].BracketN)
	}
	if ops[2].BracketN != -1 {
		t.Errorf("IfNotZero.BracketN = %d, want -1", ops[2].BracketN)
	}
}

// TestLexRoundTrip exercises spec.md section 8's round-trip property:
// concatenating each emitted op's src_start:src_end span, read from
// the original source text, and relexing the result must yield a
// list identical in kinds and N values to the original (modulo Skip
// removal — a coalesced run's span keeps the Skip characters inside
// it, while Skip characters between two adjacent ops are dropped,
// without affecting semantics).
func TestLexRoundTrip(t *testing.T) {
	tests := []string{
		"",
		"+",
		"++-",
		"+-",
		"[-]",
		"[[+]]",
		"+ hello + >><<,,. comment",
		"a+b-c[d-e]f",
		">+-<[,.[-]],",
	}
	for _, text := range tests {
		t.Run(text, func(t *testing.T) {
			head, ok, diagOut := lex(t, text)
			if !ok {
				t.Fatalf("Lex(%q) failed unexpectedly: %s", text, diagOut)
			}

			var reconstructed []byte
			for o := head; o != nil; o = o.Next {
				reconstructed = append(reconstructed, text[o.SrcStart:o.SrcEnd]...)
			}

			relexed, ok, diagOut := lex(t, string(reconstructed))
			if !ok {
				t.Fatalf("relexing reconstructed text %q failed: %s", reconstructed, diagOut)
			}

			if diff := cmp.Diff(simplify(head), simplify(relexed)); diff != "" {
				t.Errorf("round trip of %q through reconstructed %q mismatch (-original +relexed):\n%s", text, reconstructed, diff)
			}
		})
	}
}

func TestLexUnmatchedOpenBracket(t *testing.T) {
	_, ok, diagOut := lex(t, "[+")
	if ok {
		t.Fatalf("Lex(\"[+\") succeeded, want failure")
	}
	if !strings.Contains(diagOut, "No delimiter(]) for [") {
		t.Errorf("diagnostic = %q, want it to contain %q", diagOut, "No delimiter(]) for [")
	}
	if !strings.Contains(diagOut, "test.bf:1:1:") {
		t.Errorf("diagnostic = %q, want it to point at 1:1", diagOut)
	}
}

func TestLexUnmatchedCloseBracket(t *testing.T) {
	_, ok, diagOut := lex(t, "+]")
	if ok {
		t.Fatalf("Lex(\"+]\") succeeded, want failure")
	}
	if !strings.Contains(diagOut, "No delimiter([) for ]") {
		t.Errorf("diagnostic = %q, want it to contain %q", diagOut, "No delimiter([) for ]")
	}
}
