package game

import "fmt"

// Evaluate scores guess against target using the standard two-pass algorithm.
//
// Pass 1:
//   - Mark exact matches as Correct.
//   - Count the remaining (non-Correct) target letters; this is the pool.
//
// Pass 2:
//   - For each non-Correct guess letter, left to right: if the pool still
//     holds that letter, mark Present and consume one; otherwise Absent.
//
// A letter occurring k times in the target is credited at most k times, and
// exact matches always claim their pool slot before any Present does.
//
// target and guess must have the same length; a mismatch is a caller bug and
// panics.
func Evaluate(target, guess string) []Classification {
	if len(target) != len(guess) {
		panic(fmt.Sprintf("game: Evaluate called with target of %d letters and guess of %d", len(target), len(guess)))
	}
	n := len(guess)
	res := make([]Classification, n)

	var pool [256]int
	for i := 0; i < n; i++ {
		if guess[i] == target[i] {
			res[i] = Correct
		} else {
			pool[target[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == Correct {
			continue
		}
		if c := guess[i]; pool[c] > 0 {
			res[i] = Present
			pool[c]--
		}
	}
	return res
}
