package broadcast

import (
	"github.com/wfunc/starpoker/session"
)

// Broadcaster delivers one message to every member of a room.
type Broadcaster interface {
	BroadcastToRoom(code string, msgID uint16, data []byte) error
}

// RoomBroadcaster fans out over the session manager's room index. Room
// membership lives on sessions, not on game state, so a broadcast touches
// no room locks.
type RoomBroadcaster struct {
	sessionManager *session.Manager
}

func NewRoomBroadcaster(sessionManager *session.Manager) *RoomBroadcaster {
	return &RoomBroadcaster{
		sessionManager: sessionManager,
	}
}

func (b *RoomBroadcaster) BroadcastToRoom(code string, msgID uint16, data []byte) error {
	for _, s := range b.sessionManager.GetByRoom(code) {
		if err := s.Send(msgID, data); err != nil {
			// A dead member must not block delivery to the rest; its
			// read loop tears the session down on its own.
			continue
		}
	}
	return nil
}
