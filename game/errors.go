package game

import "errors"

// Engine failures that callers map to HTTP statuses. Anything else coming
// out of the store is a storage failure and means the play was not recorded.
var (
	ErrGameNotFound  = errors.New("game not found")
	ErrNotOwner      = errors.New("game belongs to another user")
	ErrGameCompleted = errors.New("game is already completed")
	ErrCardUsed      = errors.New("card already played in this game")
	ErrInvalidPlay   = errors.New("a lastCardId is required")
)
