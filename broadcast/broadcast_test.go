package broadcast

import (
	"errors"
	"net"
	"testing"
	"time"

	"github.com/wfunc/starpoker/network"
	"github.com/wfunc/starpoker/session"
)

// MockConnection records every send so tests can check delivery.
type MockConnection struct {
	sent   []uint16
	failed bool
}

func (m *MockConnection) Send(msgID uint16, data []byte) error {
	if m.failed {
		return errors.New("connection gone")
	}
	m.sent = append(m.sent, msgID)
	return nil
}

func (m *MockConnection) Close() error                         { return nil }
func (m *MockConnection) RemoteAddr() net.Addr                 { return &net.TCPAddr{} }
func (m *MockConnection) SetHeartbeat(interval time.Duration)  {}
func (m *MockConnection) ReadPacket() (*network.Packet, error) { return nil, nil }

func newRoomSession(manager *session.Manager, id, code string) *MockConnection {
	conn := &MockConnection{}
	sess := session.NewSession(id, conn)
	sess.RoomCode = code
	manager.Add(sess)
	return conn
}

func TestBroadcastToRoom(t *testing.T) {
	manager := session.NewManager()
	inRoom1 := newRoomSession(manager, "s1", "abc123")
	inRoom2 := newRoomSession(manager, "s2", "abc123")
	outside := newRoomSession(manager, "s3", "xyz789")

	b := NewRoomBroadcaster(manager)
	if err := b.BroadcastToRoom("abc123", network.MsgTypeRoomState, []byte(`{}`)); err != nil {
		t.Fatalf("BroadcastToRoom failed: %v", err)
	}

	for _, conn := range []*MockConnection{inRoom1, inRoom2} {
		if len(conn.sent) != 1 || conn.sent[0] != network.MsgTypeRoomState {
			t.Errorf("Room member got %v, expected one RoomState message", conn.sent)
		}
	}
	if len(outside.sent) != 0 {
		t.Error("A session in another room received the broadcast")
	}
}

func TestBroadcastToRoom_DeadMemberSkipped(t *testing.T) {
	manager := session.NewManager()
	dead := newRoomSession(manager, "s1", "abc123")
	dead.failed = true
	alive := newRoomSession(manager, "s2", "abc123")

	b := NewRoomBroadcaster(manager)
	if err := b.BroadcastToRoom("abc123", network.MsgTypeRoomState, []byte(`{}`)); err != nil {
		t.Fatalf("BroadcastToRoom failed: %v", err)
	}

	if len(alive.sent) != 1 {
		t.Error("A dead member blocked delivery to the rest of the room")
	}
}

func TestBroadcastToRoom_EmptyRoom(t *testing.T) {
	b := NewRoomBroadcaster(session.NewManager())
	if err := b.BroadcastToRoom("nosuch", network.MsgTypeRoomState, []byte(`{}`)); err != nil {
		t.Fatalf("Broadcast to an empty room should be a no-op, got: %v", err)
	}
}
