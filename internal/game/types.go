// internal/game/types.go
//
// Core type definitions for the guessing game.
// Defines:
//   - Classification: per-letter verdict for a submitted guess.
//   - KeyStatus: best-known verdict for a keyboard letter across a session.
//   - Status: session lifecycle (active → won | lost).

package game

import "fmt"

const (
	WordLength  = 5 // letters per word
	MaxAttempts = 6 // rows per session
)

// Classification is the evaluation result for a single letter in a guess.
type Classification uint8

const (
	Absent  Classification = iota // letter does not occur in the target (or all occurrences are used up)
	Present                       // letter occurs in the target at another position
	Correct                       // letter is at the right position
)

func (c Classification) String() string {
	switch c {
	case Absent:
		return "absent"
	case Present:
		return "present"
	case Correct:
		return "correct"
	}
	return fmt.Sprintf("Classification(%d)", uint8(c))
}

// MarshalText encodes the classification as its lowercase name.
func (c Classification) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

// KeyStatus converts a classification into the matching keyboard status.
func (c Classification) KeyStatus() KeyStatus { return KeyStatus(c) + 1 }

// KeyStatus is ordered by priority: Unknown < Absent < Present < Correct.
type KeyStatus uint8

const (
	KeyUnknown KeyStatus = iota
	KeyAbsent
	KeyPresent
	KeyCorrect
)

func (k KeyStatus) String() string {
	switch k {
	case KeyUnknown:
		return "unknown"
	case KeyAbsent:
		return "absent"
	case KeyPresent:
		return "present"
	case KeyCorrect:
		return "correct"
	}
	return fmt.Sprintf("KeyStatus(%d)", uint8(k))
}

func (k KeyStatus) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Status is the lifecycle state of a session.
type Status uint8

const (
	Active Status = iota
	Won
	Lost
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Won:
		return "won"
	case Lost:
		return "lost"
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool { return s == Won || s == Lost }
