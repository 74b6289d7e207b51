package feedback

import (
	"errors"

	"github.com/robalobadob/develordle/internal/game"
)

// Player-facing texts.
const (
	MsgWon         = "🎉 Congratulations! You won!"
	MsgLostPrefix  = "Game Over! The word was: "
	MsgIncomplete  = "Not enough letters!"
	MsgUnknownWord = "Not in word list!"
)

// Resolution returns the message a Done event should surface, or "" while
// the session is still active.
func Resolution(ev Event) string {
	if ev.Kind != Done {
		return ""
	}
	switch ev.Status {
	case game.Won:
		return MsgWon
	case game.Lost:
		return MsgLostPrefix + ev.Target
	}
	return ""
}

// Notice maps a recoverable submission error to its transient message.
func Notice(err error) (string, bool) {
	switch {
	case errors.Is(err, game.ErrIncompleteGuess):
		return MsgIncomplete, true
	case errors.Is(err, game.ErrUnknownWord):
		return MsgUnknownWord, true
	}
	return "", false
}
