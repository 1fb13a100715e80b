package network

const (
	MsgTypeHeartbeat  = 1
	MsgTypeCreateRoom = 101
	MsgTypeJoinRoom   = 102
	MsgTypeStartGame  = 103
	MsgTypeClaimToken = 104
	MsgTypeConfirm    = 105
	MsgTypeRoomState  = 301
)

// CreateRoomRequest carries the creator's display name.
type CreateRoomRequest struct {
	Name string `json:"name"`
}

// JoinRoomRequest seats a new player in an existing room.
type JoinRoomRequest struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StartGameRequest deals a fresh game in the room.
type StartGameRequest struct {
	Code string `json:"code"`
}

// ClaimTokenRequest attempts to claim the token at Index for the caller.
type ClaimTokenRequest struct {
	Code  string `json:"code"`
	Index int    `json:"index"`
}

// ConfirmRequest marks the caller confirmed for the current round.
type ConfirmRequest struct {
	Code string `json:"code"`
}
