// internal/input/input.go
//
// Input routing for a game session.
//
// Responsibilities:
//   - Discard every event once the session is over.
//   - Discard letters that are not A–Z (a–z is upper-cased first).
//   - Forward Letter/Delete/Submit to the session.
//
// The router is stateless; the session can therefore assume well-formed
// calls, apart from the incomplete-guess condition Submit reports itself.

package input

import (
	"fmt"
	"strings"

	"github.com/robalobadob/develordle/internal/game"
)

// Kind of input event.
type Kind uint8

const (
	KindLetter Kind = iota
	KindDelete
	KindSubmit
)

func (k Kind) String() string {
	switch k {
	case KindLetter:
		return "letter"
	case KindDelete:
		return "delete"
	case KindSubmit:
		return "submit"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Event is one atomic player input.
type Event struct {
	Kind   Kind
	Letter rune // KindLetter only
}

func Letter(r rune) Event { return Event{Kind: KindLetter, Letter: r} }
func Delete() Event       { return Event{Kind: KindDelete} }
func Submit() Event       { return Event{Kind: KindSubmit} }

// Session is the part of game.Session the router drives.
type Session interface {
	Status() game.Status
	AppendLetter(ch byte)
	DeleteLetter()
	Submit() (game.Outcome, error)
}

// Route applies ev to s. It returns the outcome of a scored submission, the
// condition reported by Submit, or (nil, nil) when the event was an edit or
// was discarded.
func Route(s Session, ev Event) (*game.Outcome, error) {
	if s.Status() != game.Active {
		return nil, nil
	}
	switch ev.Kind {
	case KindLetter:
		if ch, ok := Normalize(ev.Letter); ok {
			s.AppendLetter(ch)
		}
	case KindDelete:
		s.DeleteLetter()
	case KindSubmit:
		o, err := s.Submit()
		if err != nil {
			return nil, err
		}
		return &o, nil
	}
	return nil, nil
}

// Normalize upper-cases r and reports whether it is a letter A–Z.
func Normalize(r rune) (byte, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r < 'A' || r > 'Z' {
		return 0, false
	}
	return byte(r), true
}

// ParseKey maps a key name to an event: "ENTER" submits,
// "BACKSPACE"/"BACK"/"DELETE" delete, a single letter types it.
// Anything else is not an input event.
func ParseKey(name string) (Event, bool) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "ENTER":
		return Submit(), true
	case "BACKSPACE", "BACK", "DELETE":
		return Delete(), true
	}
	r := []rune(name)
	if len(r) != 1 {
		return Event{}, false
	}
	if _, ok := Normalize(r[0]); !ok {
		return Event{}, false
	}
	return Letter(r[0]), true
}
