package game

import (
	"strings"
	"testing"
)

const (
	A = Absent
	P = Present
	C = Correct
)

func TestEvaluate(t *testing.T) {
	cases := []struct {
		target, guess string
		want          []Classification
	}{
		{"APPLE", "APPLE", []Classification{C, C, C, C, C}},
		{"APPLE", "ZZZZZ", []Classification{A, A, A, A, A}},
		{"APPLE", "PLEAP", []Classification{P, P, P, P, P}},
		// repeated letters in the target, none positional
		{"ARRAY", "RATES", []Classification{P, P, A, A, A}},
		// repeated letters in the guess exceed the target's count
		{"RATES", "ARRAY", []Classification{P, P, A, A, A}},
		{"ARRAY", "RARRY", []Classification{P, P, C, A, C}},
		{"ABBEY", "KEBAB", []Classification{A, P, C, P, P}},
		{"APPLE", "PAPAL", []Classification{P, P, C, A, P}},
		// exact matches claim their slots before any Present
		{"ROBOT", "OOOOO", []Classification{A, C, A, C, A}},
		{"STACK", "CRANE", []Classification{P, A, C, A, A}},
	}
	for _, tc := range cases {
		got := Evaluate(tc.target, tc.guess)
		if len(got) != len(tc.want) {
			t.Fatalf("Evaluate(%s, %s): got %d classes, want %d", tc.target, tc.guess, len(got), len(tc.want))
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("Evaluate(%s, %s)[%d] = %v, want %v", tc.target, tc.guess, i, got[i], tc.want[i])
			}
		}
	}
}

func TestEvaluateBoundsCreditPerLetter(t *testing.T) {
	targets := []string{"ARRAY", "MERGE", "STACK", "ABBEY", "LLAMA", "EERIE"}
	guesses := []string{"RATES", "AAAAA", "EEEEE", "RARRY", "MAMMA", "GREEN", "LEVEL", "ALLAY"}
	for _, target := range targets {
		for _, guess := range guesses {
			got := Evaluate(target, guess)
			credit := map[byte]int{}
			for i, c := range got {
				if c == Correct && guess[i] != target[i] {
					t.Errorf("Evaluate(%s, %s)[%d]: Correct without positional match", target, guess, i)
				}
				if c == Absent && guess[i] == target[i] {
					t.Errorf("Evaluate(%s, %s)[%d]: positional match not Correct", target, guess, i)
				}
				if c != Absent {
					credit[guess[i]]++
				}
			}
			for letter, n := range credit {
				if limit := strings.Count(target, string(letter)); n > limit {
					t.Errorf("Evaluate(%s, %s): letter %c credited %d times, target has %d", target, guess, letter, n, limit)
				}
			}
		}
	}
}

func TestEvaluateIsPure(t *testing.T) {
	first := Evaluate("ARRAY", "RARRY")
	for i := 0; i < 10; i++ {
		again := Evaluate("ARRAY", "RARRY")
		for j := range first {
			if first[j] != again[j] {
				t.Fatalf("run %d differs at %d: %v vs %v", i, j, again[j], first[j])
			}
		}
	}
}

func TestEvaluateLengthMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on length mismatch")
		}
	}()
	Evaluate("APPLE", "APP")
}
