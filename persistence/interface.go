package persistence

import (
	"fmt"
)

// Database persists room snapshots and finished-game records. Writes are
// best-effort from the server's point of view: a failed save is logged and
// the game carries on.
type Database interface {
	SaveRoomState(code, phase string, round int, snapshot interface{}) error
	LoadRoomState(code string, result interface{}) error
	// SaveShowdown writes the final room state and the game record in one
	// transaction, when a room's round runs past red.
	SaveShowdown(code string, round int, snapshot, record interface{}) error
	Close() error
}

var (
	ErrRecordNotFound = fmt.Errorf("record not found")
)
