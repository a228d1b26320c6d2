package engine

import "errors"

// Sentinel errors returned by the engine. Callers match them with
// errors.Is; wrapped messages carry the detail.
var (
	// ErrValidation marks rejected caller-supplied data.
	ErrValidation = errors.New("validation failed")

	// ErrIllegalState marks an operation invoked in the wrong phase or
	// on a finished game.
	ErrIllegalState = errors.New("illegal state")

	// ErrNoHistory is returned by Undo when the journal is empty.
	ErrNoHistory = errors.New("no history to undo")

	// ErrAwaitingInput is returned by Advance while the machine is
	// suspended waiting for player data.
	ErrAwaitingInput = errors.New("awaiting player input")

	// ErrNoInputPending is returned by SubmitInput when nothing is pending.
	ErrNoInputPending = errors.New("no input pending")

	// ErrGameOver marks operations on a finished game.
	ErrGameOver = errors.New("game is over")
)
