package game

import (
	"sync"
	"time"

	"github.com/wfunc/starpoker/state"
)

// Room is one isolated game instance. Every mutation runs to completion
// under mu, so actions against the same room apply one at a time in
// arrival order; distinct rooms never contend.
type Room struct {
	mu         sync.RWMutex
	code       string
	players    []*Player // join order
	deck       []Card    // draw from the front
	community  []Card
	tokens     []Token
	round      int
	allowSteal bool
	lastActive time.Time

	machine  state.Machine
	playing  *roomPhase
	showdown *roomPhase
}

// NewRoom creates a room in the lobby phase with the creator seated and
// unconfirmed. allowSteal keeps the literal claim rule: an eligible claim
// overwrites the current owner.
func NewRoom(code, creatorName, creatorID string, allowSteal bool) *Room {
	r := &Room{
		code:       code,
		round:      1,
		allowSteal: allowSteal,
		lastActive: time.Now(),
	}
	r.players = append(r.players, &Player{ID: creatorID, Name: creatorName, Hand: []Card{}})

	lobby := newPhase(PhaseLobby, code)
	r.playing = newPhase(PhasePlaying, code)
	r.showdown = newPhase(PhaseShowdown, code)

	r.machine = state.NewBaseMachine(lobby)
	// The showdown phase is only reachable once the round runs past red.
	r.machine.AddTransition(lobby, r.showdown, func() bool { return false })
	r.machine.AddTransition(r.playing, r.showdown, func() bool { return r.round > len(tokenColors) })

	return r
}

func (r *Room) Code() string {
	return r.code
}

// Phase reports the current lifecycle phase ID.
func (r *Room) Phase() string {
	return r.machine.GetCurrentState().GetID()
}

// LastActive is the time of the most recent successful mutation. The
// registry's idle sweep reads it.
func (r *Room) LastActive() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastActive
}

// AddPlayer seats a new unconfirmed player at the end of the join order.
// A mid-round joiner implicitly reopens an already-partially-met
// confirmation barrier: the barrier always evaluates the live seat list.
func (r *Room) AddPlayer(name, playerID string) *Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := &Player{ID: playerID, Name: name, Hand: []Card{}}
	r.players = append(r.players, p)
	r.touch()
	return p
}

// StartGame deals a fresh game: new shuffled deck, empty community, round
// back to 1, a rebuilt unowned token board, and two cards off the front of
// the deck for each player in join order. Players persist across games.
func (r *Room) StartGame() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deck = NewShuffledDeck()
	r.community = []Card{}
	r.round = 1
	r.tokens = NewTokenBoard()

	for _, p := range r.players {
		// A lobby bigger than the deck can seat deals short hands rather
		// than crashing mid-deal.
		n := HandSize
		if n > len(r.deck) {
			n = len(r.deck)
		}
		p.Hand = append([]Card{}, r.deck[:n]...)
		r.deck = r.deck[n:]
		p.Confirmed = false
	}

	r.machine.ChangeState(r.playing)
	r.touch()
}

// ClaimToken attempts to claim the token at index for playerID. The claim
// only succeeds when the token's color matches the current round's color;
// rounds with no color reject everything. A successful claim overwrites
// any prior owner (unless steals are disabled) and reopens confirmation
// for every seated player.
func (r *Room) ClaimToken(playerID string, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.playerByID(playerID) == nil {
		return ErrPlayerNotInRoom
	}
	if index < 0 || index >= len(r.tokens) {
		return ErrInvalidTokenIndex
	}

	token := &r.tokens[index]
	color, ok := RoundColor(r.round)
	if !ok || token.Color != color {
		return ErrIneligibleClaim
	}
	if !r.allowSteal && token.Owner != "" && token.Owner != playerID {
		return ErrTokenOwned
	}

	token.Owner = playerID
	for _, p := range r.players {
		p.Confirmed = false
	}
	r.touch()
	return nil
}

// Confirm marks playerID confirmed for the current round. When every
// seated player is confirmed the round advances; the reported bool says
// whether that happened on this call. The barrier never blocks: an unmet
// barrier just records the flag and returns.
func (r *Room) Confirm(playerID string) (advanced bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.playerByID(playerID)
	if p == nil {
		return false, ErrPlayerNotInRoom
	}
	p.Confirmed = true
	r.touch()

	for _, seat := range r.players {
		if !seat.Confirmed {
			return false, nil
		}
	}

	r.advanceRound()
	return true, nil
}

// advanceRound runs the round transition: reveal community cards for the
// round that just ended, bump the round, clear every confirmation. Caller
// holds mu.
//
// Reveal schedule: the round-2 barrier reveals the 3-card flop, rounds 3
// and 4 reveal one card each, every other round reveals nothing. Community
// sizes therefore run 0, 3, 4, 5.
func (r *Room) advanceRound() {
	reveal := 0
	switch r.round {
	case 2:
		reveal = 3
	case 3, 4:
		reveal = 1
	}
	if reveal > len(r.deck) {
		reveal = len(r.deck)
	}
	r.community = append(r.community, r.deck[:reveal]...)
	r.deck = r.deck[reveal:]

	r.round++
	for _, p := range r.players {
		p.Confirmed = false
	}

	if r.round > len(tokenColors) {
		r.machine.ChangeState(r.showdown)
	}
}

func (r *Room) playerByID(playerID string) *Player {
	for _, p := range r.players {
		if p.ID == playerID {
			return p
		}
	}
	return nil
}

// touch records activity for the idle sweep. Caller holds mu.
func (r *Room) touch() {
	r.lastActive = time.Now()
}

// Snapshot is the full room state sent to every member after a mutation.
// There is no diff protocol; the whole thing goes out every time.
type Snapshot struct {
	Code      string   `json:"code"`
	Phase     string   `json:"phase"`
	Round     int      `json:"round"`
	Players   []Player `json:"players"`
	Deck      []Card   `json:"deck"`
	Community []Card   `json:"community"`
	Tokens    []Token  `json:"tokens"`
}

// Snapshot copies the room state out under the read lock. The copy shares
// nothing with the live room, so callers may hold it across later
// mutations.
func (r *Room) Snapshot() *Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := &Snapshot{
		Code:      r.code,
		Phase:     r.machine.GetCurrentState().GetID(),
		Round:     r.round,
		Players:   make([]Player, 0, len(r.players)),
		Deck:      append([]Card{}, r.deck...),
		Community: append([]Card{}, r.community...),
		Tokens:    append([]Token{}, r.tokens...),
	}
	for _, p := range r.players {
		cp := *p
		cp.Hand = append([]Card{}, p.Hand...)
		snap.Players = append(snap.Players, cp)
	}
	return snap
}
