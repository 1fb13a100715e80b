package game

import (
	"math/rand"
	"sync"
	"time"
)

const codeAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Registry owns the code -> room mapping for the process.
type Registry struct {
	mu         sync.RWMutex
	rooms      map[string]*Room
	codeLength int
	allowSteal bool
}

func NewRegistry(codeLength int, allowSteal bool) *Registry {
	if codeLength <= 0 {
		codeLength = 6
	}
	return &Registry{
		rooms:      make(map[string]*Room),
		codeLength: codeLength,
		allowSteal: allowSteal,
	}
}

// CreateRoom registers a fresh room with the creator seated and returns
// it. Codes are regenerated until one is unused among live rooms.
func (reg *Registry) CreateRoom(creatorName, creatorID string) *Room {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var code string
	for {
		code = reg.newCode()
		if _, taken := reg.rooms[code]; !taken {
			break
		}
	}

	room := NewRoom(code, creatorName, creatorID, reg.allowSteal)
	reg.rooms[code] = room
	return room
}

// JoinRoom seats a new player in an existing room. Unknown codes return
// ErrRoomNotFound with no state change.
func (reg *Registry) JoinRoom(code, name, playerID string) (*Room, error) {
	room, exists := reg.GetRoom(code)
	if !exists {
		return nil, ErrRoomNotFound
	}
	room.AddPlayer(name, playerID)
	return room, nil
}

func (reg *Registry) GetRoom(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	room, exists := reg.rooms[code]
	return room, exists
}

func (reg *Registry) RemoveRoom(code string) {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	delete(reg.rooms, code)
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return len(reg.rooms)
}

// SweepIdle removes rooms with no successful action for longer than ttl
// and reports how many went. Rooms have no explicit close action, so the
// sweep is what keeps a long-running process from accumulating them.
func (reg *Registry) SweepIdle(ttl time.Duration) int {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0
	now := time.Now()
	for code, room := range reg.rooms {
		if now.Sub(room.LastActive()) > ttl {
			delete(reg.rooms, code)
			removed++
		}
	}
	return removed
}

func (reg *Registry) newCode() string {
	b := make([]byte, reg.codeLength)
	for i := range b {
		b[i] = codeAlphabet[rand.Intn(len(codeAlphabet))]
	}
	return string(b)
}
