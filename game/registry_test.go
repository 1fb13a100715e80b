package game

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestRegistry_CreateAndGetRoom(t *testing.T) {
	reg := NewRegistry(6, true)

	room := reg.CreateRoom("alice", "id-alice")
	if room == nil {
		t.Fatal("CreateRoom should not return nil")
	}

	code := room.Code()
	if len(code) != 6 {
		t.Errorf("Expected a 6-character code, got %q", code)
	}
	for _, ch := range code {
		if !strings.ContainsRune(codeAlphabet, ch) {
			t.Errorf("Code %q contains %q outside the alphabet", code, ch)
		}
	}

	retrieved, exists := reg.GetRoom(code)
	if !exists {
		t.Fatal("GetRoom should find the created room")
	}
	if retrieved != room {
		t.Error("GetRoom should return the same room instance")
	}

	snap := room.Snapshot()
	if len(snap.Players) != 1 || snap.Players[0].ID != "id-alice" {
		t.Error("Creator was not seated in the new room")
	}
}

func TestRegistry_UniqueCodes(t *testing.T) {
	// Single-character codes force collisions quickly; every live room
	// must still get a distinct one.
	reg := NewRegistry(1, true)

	codes := make(map[string]bool)
	for i := 0; i < 10; i++ {
		room := reg.CreateRoom("p", "id-p")
		if codes[room.Code()] {
			t.Fatalf("Code %q issued twice", room.Code())
		}
		codes[room.Code()] = true
	}
}

func TestRegistry_JoinRoom(t *testing.T) {
	reg := NewRegistry(6, true)
	room := reg.CreateRoom("alice", "id-alice")

	joined, err := reg.JoinRoom(room.Code(), "bob", "id-bob")
	if err != nil {
		t.Fatalf("JoinRoom failed: %v", err)
	}
	if joined != room {
		t.Error("JoinRoom should return the existing room")
	}

	snap := room.Snapshot()
	if len(snap.Players) != 2 || snap.Players[1].ID != "id-bob" {
		t.Error("Joiner was not appended to the player list")
	}
}

func TestRegistry_JoinUnknownRoom(t *testing.T) {
	reg := NewRegistry(6, true)

	if _, err := reg.JoinRoom("nosuch", "bob", "id-bob"); !errors.Is(err, ErrRoomNotFound) {
		t.Fatalf("Expected ErrRoomNotFound, got %v", err)
	}
	if reg.Len() != 0 {
		t.Error("Failed join should not create a room")
	}
}

func TestRegistry_RemoveRoom(t *testing.T) {
	reg := NewRegistry(6, true)
	room := reg.CreateRoom("alice", "id-alice")

	reg.RemoveRoom(room.Code())

	if _, exists := reg.GetRoom(room.Code()); exists {
		t.Error("Removed room is still registered")
	}
	if reg.Len() != 0 {
		t.Errorf("Expected 0 rooms, got %d", reg.Len())
	}
}

func TestRegistry_SweepIdle(t *testing.T) {
	reg := NewRegistry(6, true)
	reg.CreateRoom("alice", "id-alice")
	reg.CreateRoom("bob", "id-bob")

	if removed := reg.SweepIdle(time.Hour); removed != 0 {
		t.Fatalf("Sweep with a long TTL removed %d rooms", removed)
	}
	if reg.Len() != 2 {
		t.Fatalf("Expected 2 rooms, got %d", reg.Len())
	}

	time.Sleep(5 * time.Millisecond)
	if removed := reg.SweepIdle(time.Millisecond); removed != 2 {
		t.Fatalf("Expected sweep to remove 2 rooms, removed %d", removed)
	}
	if reg.Len() != 0 {
		t.Errorf("Expected 0 rooms after sweep, got %d", reg.Len())
	}
}
