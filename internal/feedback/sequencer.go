// internal/feedback/sequencer.go
//
// Turns a scored guess into the ordered reveal stream the presentation layer
// animates.
//
// A stream for a row of L letters is:
//   - L Reveal events, left to right, event i due at i × Unit after submission.
//     Each carries the tile's classification and the best-known KeyStatus of
//     its letter after folding reveals 0..i into the keys from before the guess.
//   - One Done event due at L × Unit carrying the session status after the
//     guess and, when terminal, the revealed target.
//
// Win/lose resolution is only ever signalled through Done, so a consumer that
// renders events in order can never show the result before the last tile.

package feedback

import (
	"fmt"
	"time"

	"github.com/robalobadob/develordle/internal/game"
)

// DefaultUnit is the stagger between consecutive tile reveals.
const DefaultUnit = 300 * time.Millisecond

// Kind distinguishes reveal events from the completion event.
type Kind uint8

const (
	Reveal Kind = iota
	Done
)

func (k Kind) String() string {
	switch k {
	case Reveal:
		return "reveal"
	case Done:
		return "done"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Event is one step of a feedback stream.
type Event struct {
	Kind      Kind
	SessionID uint64
	Row       int
	Col       int                 // Reveal only
	Letter    byte                // Reveal only
	Class     game.Classification // Reveal only
	Key       game.KeyStatus      // Reveal only
	Status    game.Status         // Done only
	Target    string              // Done only, terminal sessions
	Delay     time.Duration       // offset from submission
}

// Stream is a finite, ordered sequence of events for one submitted row.
type Stream []Event

// Duration is the offset of the last event.
func (s Stream) Duration() time.Duration {
	if len(s) == 0 {
		return 0
	}
	return s[len(s)-1].Delay
}

// Final returns the Done event, if the stream has one.
func (s Stream) Final() (Event, bool) {
	if len(s) == 0 || s[len(s)-1].Kind != Done {
		return Event{}, false
	}
	return s[len(s)-1], true
}

// Sequencer builds feedback streams with a fixed stagger.
type Sequencer struct {
	Unit time.Duration
}

// NewSequencer returns a Sequencer; non-positive units fall back to DefaultUnit.
func NewSequencer(unit time.Duration) Sequencer {
	if unit <= 0 {
		unit = DefaultUnit
	}
	return Sequencer{Unit: unit}
}

// Sequence builds the stream for a scored guess.
func (sq Sequencer) Sequence(o game.Outcome) Stream {
	unit := sq.Unit
	if unit <= 0 {
		unit = DefaultUnit
	}
	keys := o.KeysBefore
	out := make(Stream, 0, len(o.Classes)+1)
	for i, c := range o.Classes {
		letter := o.Guess[i]
		out = append(out, Event{
			Kind:      Reveal,
			SessionID: o.SessionID,
			Row:       o.Row,
			Col:       i,
			Letter:    letter,
			Class:     c,
			Key:       keys.Observe(letter, c),
			Delay:     time.Duration(i) * unit,
		})
	}
	return append(out, Event{
		Kind:      Done,
		SessionID: o.SessionID,
		Row:       o.Row,
		Status:    o.Status,
		Target:    o.Target,
		Delay:     time.Duration(len(o.Classes)) * unit,
	})
}
