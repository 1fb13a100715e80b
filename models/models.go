package models

import (
	"time"
)

// GameRecord is the durable summary of one finished game, written when a
// room reaches showdown.
type GameRecord struct {
	RoomCode   string         `json:"room_code"`
	Round      int            `json:"round"`
	Players    []PlayerResult `json:"players"`
	Tokens     []TokenResult  `json:"tokens"`
	FinishedAt time.Time      `json:"finished_at"`
}

// PlayerResult is one player's line in a game record.
type PlayerResult struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Tokens int    `json:"tokens"` // tokens owned at showdown
}

// TokenResult is the final ownership of one board token.
type TokenResult struct {
	Color string `json:"color"`
	Star  int    `json:"star"`
	Owner string `json:"owner,omitempty"`
}
