package game

import "errors"

// All four are recoverable, per-action conditions. The server discards the
// offending action without mutating or broadcasting; none of them may take
// the process down.
var (
	ErrRoomNotFound      = errors.New("room not found")
	ErrPlayerNotInRoom   = errors.New("player not seated in room")
	ErrInvalidTokenIndex = errors.New("token index out of range")
	ErrIneligibleClaim   = errors.New("token color does not match the current round")
	ErrTokenOwned        = errors.New("token already owned")
)
