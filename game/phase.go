package game

import (
	"github.com/wfunc/starpoker/logger"
	"github.com/wfunc/starpoker/state"
)

// Room lifecycle phases. Lobby until the first deal, playing through
// rounds 1..4, showdown once the round passes red.
const (
	PhaseLobby    = "lobby"
	PhasePlaying  = "playing"
	PhaseShowdown = "showdown"
)

// roomPhase is a lifecycle phase of one room. The round rules live in
// Room; phases only mark where in the lifecycle the room is.
type roomPhase struct {
	state.PhaseBase
	roomCode string
}

func newPhase(id, roomCode string) *roomPhase {
	return &roomPhase{
		PhaseBase: state.PhaseBase{ID: id},
		roomCode:  roomCode,
	}
}

func (p *roomPhase) OnEnter() {
	logger.Log.Debugf("room %s entered phase %s", p.roomCode, p.GetID())
}
