package services

import (
	"os"
	"testing"

	"github.com/wfunc/starpoker/game"
	"github.com/wfunc/starpoker/logger"
)

func TestMain(m *testing.M) {
	logger.InitDevelopment()
	os.Exit(m.Run())
}

// MockDatabase records persistence calls.
type MockDatabase struct {
	stateSaves    int
	showdownSaves int
	lastCode      string
	lastRound     int
}

func (m *MockDatabase) SaveRoomState(code, phase string, round int, snapshot interface{}) error {
	m.stateSaves++
	m.lastCode = code
	m.lastRound = round
	return nil
}

func (m *MockDatabase) LoadRoomState(code string, result interface{}) error { return nil }

func (m *MockDatabase) SaveShowdown(code string, round int, snapshot, record interface{}) error {
	m.showdownSaves++
	m.lastCode = code
	m.lastRound = round
	return nil
}

func (m *MockDatabase) Close() error { return nil }

func showdownSnapshot() *game.Snapshot {
	room := game.NewRoom("abc123", "alice", "id-alice", true)
	room.AddPlayer("bob", "id-bob")
	room.StartGame()

	snap := room.Snapshot()
	for i, tok := range snap.Tokens {
		switch tok.Color {
		case game.ColorWhite:
			snap.Tokens[i].Owner = "id-alice"
		case game.ColorYellow:
			snap.Tokens[i].Owner = "id-bob"
		}
	}
	snap.Round = game.FirstShowdownRound
	snap.Phase = game.PhaseShowdown
	return snap
}

func TestBuildRecord(t *testing.T) {
	record := BuildRecord(showdownSnapshot())

	if record.RoomCode != "abc123" {
		t.Errorf("Expected room code abc123, got %q", record.RoomCode)
	}
	if record.Round != game.FirstShowdownRound {
		t.Errorf("Expected round %d, got %d", game.FirstShowdownRound, record.Round)
	}
	if len(record.Tokens) != game.BoardSize {
		t.Fatalf("Expected %d token results, got %d", game.BoardSize, len(record.Tokens))
	}
	if len(record.Players) != 2 {
		t.Fatalf("Expected 2 player results, got %d", len(record.Players))
	}

	counts := make(map[string]int)
	for _, p := range record.Players {
		counts[p.ID] = p.Tokens
	}
	if counts["id-alice"] != game.StarsPerColor || counts["id-bob"] != game.StarsPerColor {
		t.Errorf("Token counts wrong: %v", counts)
	}
}

func TestRecordService_Saves(t *testing.T) {
	db := &MockDatabase{}
	svc := NewRecordService(db)
	snap := showdownSnapshot()

	svc.SaveState(snap)
	if db.stateSaves != 1 || db.lastCode != "abc123" {
		t.Errorf("SaveState did not reach the database: saves=%d code=%q", db.stateSaves, db.lastCode)
	}

	svc.SaveShowdown(snap)
	if db.showdownSaves != 1 || db.lastRound != game.FirstShowdownRound {
		t.Errorf("SaveShowdown did not reach the database: saves=%d round=%d", db.showdownSaves, db.lastRound)
	}
}

func TestRecordService_NilDatabase(t *testing.T) {
	svc := NewRecordService(nil)
	snap := showdownSnapshot()

	// Persistence disabled: both calls are silent no-ops.
	svc.SaveState(snap)
	svc.SaveShowdown(snap)
}
