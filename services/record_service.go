package services

import (
	"time"

	"github.com/wfunc/starpoker/game"
	"github.com/wfunc/starpoker/logger"
	"github.com/wfunc/starpoker/models"
	"github.com/wfunc/starpoker/persistence"
)

// RecordService persists room snapshots and showdown records. Every write
// is best-effort: a storage failure is logged and never surfaces into the
// game.
type RecordService struct {
	db persistence.Database
}

// NewRecordService wraps db. A nil db disables persistence, which local
// runs and tests use.
func NewRecordService(db persistence.Database) *RecordService {
	return &RecordService{db: db}
}

// SaveState upserts the live snapshot after a successful mutation.
func (s *RecordService) SaveState(snap *game.Snapshot) {
	if s.db == nil {
		return
	}
	if err := s.db.SaveRoomState(snap.Code, snap.Phase, snap.Round, snap); err != nil {
		logger.Log.Warnf("Failed to save state for room %s: %v", snap.Code, err)
	}
}

// SaveShowdown writes the final snapshot plus the game record when a room
// first reaches showdown.
func (s *RecordService) SaveShowdown(snap *game.Snapshot) {
	if s.db == nil {
		return
	}
	record := BuildRecord(snap)
	if err := s.db.SaveShowdown(snap.Code, snap.Round, snap, record); err != nil {
		logger.Log.Warnf("Failed to save showdown record for room %s: %v", snap.Code, err)
	}
}

// BuildRecord summarizes a showdown snapshot: final token ownership and a
// per-player token count.
func BuildRecord(snap *game.Snapshot) *models.GameRecord {
	record := &models.GameRecord{
		RoomCode:   snap.Code,
		Round:      snap.Round,
		FinishedAt: time.Now(),
	}

	owned := make(map[string]int)
	for _, t := range snap.Tokens {
		record.Tokens = append(record.Tokens, models.TokenResult{
			Color: string(t.Color),
			Star:  t.Star,
			Owner: t.Owner,
		})
		if t.Owner != "" {
			owned[t.Owner]++
		}
	}

	for _, p := range snap.Players {
		record.Players = append(record.Players, models.PlayerResult{
			ID:     p.ID,
			Name:   p.Name,
			Tokens: owned[p.ID],
		})
	}
	return record
}
