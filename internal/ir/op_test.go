package ir

import "testing"

func TestClassifyByte(t *testing.T) {
	tests := map[byte]Kind{
		'+': Mutate, '-': Mutate,
		'>': Move, '<': Move,
		',': Input,
		'.': Print,
		'[': IfZero,
		']': IfNotZero,
		'x': Skip, ' ': Skip, '\n': Skip,
	}
	for b, want := range tests {
		if got := ClassifyByte(b); got != want {
			t.Errorf("ClassifyByte(%q) = %v, want %v", b, got, want)
		}
	}
}

func TestDelta(t *testing.T) {
	tests := map[byte]int32{
		'+': 1, '>': 1, ',': 1, '.': 1,
		'-': -1, '<': -1,
	}
	for b, want := range tests {
		if got := Delta(b); got != want {
			t.Errorf("Delta(%q) = %d, want %d", b, got, want)
		}
	}
}

func TestCoalescable(t *testing.T) {
	for _, k := range []Kind{Mutate, Move, Input, Print} {
		if !k.Coalescable() {
			t.Errorf("%v.Coalescable() = false, want true", k)
		}
	}
	for _, k := range []Kind{Skip, IfZero, IfNotZero} {
		if k.Coalescable() {
			t.Errorf("%v.Coalescable() = true, want false", k)
		}
	}
}
