package game

import "errors"

// Recoverable submission conditions. None of them mutates the session.
var (
	ErrIncompleteGuess = errors.New("not enough letters")
	ErrUnknownWord     = errors.New("not in word list")
	ErrGameOver        = errors.New("game is over")
)
