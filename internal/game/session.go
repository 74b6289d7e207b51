// internal/game/session.go
//
// Turn/session state machine for a single game.
// Responsibilities:
//   - Own the target, the M row buffers, the cursor and the active row.
//   - Apply letter/delete edits while the session is active.
//   - Score submitted rows with Evaluate and maintain the KeyStatus projection.
//   - Track state transitions: active → won | lost (never reversed).
//
// Notes:
//   - Edits that violate a precondition are silent no-ops; only Submit
//     reports conditions back to the caller.
//   - Callers are expected to pass upper-case A–Z letters (see package input).

package game

import (
	"slices"
	"strings"

	"github.com/samber/lo"
)

// Dictionary reports whether a word is an acceptable guess.
type Dictionary interface {
	Contains(word string) bool
}

// Option configures a Session.
type Option func(*Session)

// RequireKnownWords rejects submissions that dict does not contain with
// ErrUnknownWord. By default any complete row is scored.
func RequireKnownWords(dict Dictionary) Option {
	return func(s *Session) { s.dict = dict }
}

// Outcome describes one scored submission.
type Outcome struct {
	SessionID  uint64
	Row        int              // row that was scored
	Guess      string           // submitted word
	Classes    []Classification // one per position
	KeysBefore Keys             // projection before this guess was folded in
	Status     Status           // session status after the submission
	Target     string           // revealed word; set only when Status is terminal
}

// Session holds the state of a single game.
type Session struct {
	id      uint64
	target  string
	rows    [][]byte
	results [][]Classification
	row     int
	cursor  int
	status  Status
	keys    Keys
	dict    Dictionary
}

// NewSession starts an active session for target. target must be WordLength
// letters; anything else is a caller bug and panics.
func NewSession(id uint64, target string, opts ...Option) *Session {
	target = strings.ToUpper(target)
	if len(target) != WordLength {
		panic("game: target " + target + " is not a valid word")
	}
	s := &Session{
		id:      id,
		target:  target,
		rows:    lo.Times(MaxAttempts, func(_ int) []byte { return make([]byte, 0, WordLength) }),
		results: make([][]Classification, MaxAttempts),
		status:  Active,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AppendLetter writes ch at the cursor of the active row.
// No-op once the session is over or the row is full.
func (s *Session) AppendLetter(ch byte) {
	if s.status != Active || s.cursor >= WordLength {
		return
	}
	s.rows[s.row] = append(s.rows[s.row][:s.cursor], ch)
	s.cursor++
}

// DeleteLetter removes the letter before the cursor.
// No-op once the session is over or the row is empty.
func (s *Session) DeleteLetter() {
	if s.status != Active || s.cursor == 0 {
		return
	}
	s.cursor--
	s.rows[s.row] = s.rows[s.row][:s.cursor]
}

// Submit scores the active row.
//
// Validation rules:
//   - Session must be active (ErrGameOver).
//   - Row must hold WordLength letters (ErrIncompleteGuess).
//   - With RequireKnownWords, the word must be in the dictionary (ErrUnknownWord).
//
// State transitions:
//   - guess == target → Won. This check runs first, so the last row can still win.
//   - Else the next row becomes active; after MaxAttempts rows → Lost.
func (s *Session) Submit() (Outcome, error) {
	if s.status != Active {
		return Outcome{}, ErrGameOver
	}
	if len(s.rows[s.row]) != WordLength {
		return Outcome{}, ErrIncompleteGuess
	}
	guess := string(s.rows[s.row])
	if s.dict != nil && !s.dict.Contains(guess) {
		return Outcome{}, ErrUnknownWord
	}

	classes := Evaluate(s.target, guess)
	out := Outcome{
		SessionID:  s.id,
		Row:        s.row,
		Guess:      guess,
		Classes:    slices.Clone(classes),
		KeysBefore: s.keys,
	}
	s.results[s.row] = classes
	s.keys.Apply(guess, classes)

	if guess == s.target {
		s.status = Won
	} else {
		s.row++
		s.cursor = 0
		if s.row >= MaxAttempts {
			s.status = Lost
		}
	}

	out.Status = s.status
	if s.status.Terminal() {
		out.Target = s.target
	}
	return out, nil
}

func (s *Session) ID() uint64     { return s.id }
func (s *Session) Status() Status { return s.status }

// ActiveRow is the index of the row being edited; MaxAttempts after a loss.
func (s *Session) ActiveRow() int { return s.row }
func (s *Session) Cursor() int    { return s.cursor }

// Row returns the letters typed or submitted in row i.
func (s *Session) Row(i int) string {
	if i < 0 || i >= MaxAttempts {
		return ""
	}
	return string(s.rows[i])
}

// Result returns the classifications of row i, or nil if it was not submitted.
func (s *Session) Result(i int) []Classification {
	if i < 0 || i >= MaxAttempts {
		return nil
	}
	return slices.Clone(s.results[i])
}

// Keys returns a copy of the KeyStatus projection.
func (s *Session) Keys() Keys { return s.keys }

// Attempts is the number of rows scored so far.
func (s *Session) Attempts() int {
	if s.status == Won {
		return s.row + 1
	}
	return s.row
}

// Target reveals the word once the session is over; empty while active.
func (s *Session) Target() string {
	if !s.status.Terminal() {
		return ""
	}
	return s.target
}
