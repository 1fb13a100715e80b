package game

// Player is one seat in a room, keyed by the ephemeral session identity
// the transport assigned. A reconnecting client gets a new identity and
// cannot resume its seat.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Hand      []Card `json:"hand"`
	Confirmed bool   `json:"confirmed"`
}
