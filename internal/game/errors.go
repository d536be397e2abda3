package game

import "errors"

// Errors surfaced to the transport layer. All of them are recoverable: the
// caller re-renders the current state and drops the attempted action.
var (
	ErrNotFound      = errors.New("match not found")
	ErrForbidden     = errors.New("actor not allowed to perform this action")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrInvalidAction = errors.New("invalid action")
	ErrFull          = errors.New("match already has two players")
	ErrSelfJoin      = errors.New("host cannot join their own match")
)
