// Package messages defines the wire protocol: event names and JSON
// payloads exchanged with clients over the event bus.
package messages

import "encoding/json"

// Inbound event types.
const (
	EventAuthenticate = "authenticate"
	EventJoinRoom     = "join-room"
	EventLeaveRoom    = "leave-room"
	EventPlayerReady  = "player-ready"
	EventDrawHeart    = "draw-heart"
	EventDrawMagic    = "draw-magic-card"
	EventPlaceHeart   = "place-heart"
	EventUseMagicCard = "use-magic-card"
	EventEndTurn      = "end-turn"
)

// Outbound event types.
const (
	EventAuthenticated = "authenticated"
	EventRoomJoined    = "room-joined"
	EventPlayerJoined  = "player-joined"
	EventPlayerLeft    = "player-left"
	EventReadyChanged  = "player-ready"
	EventGameStart     = "game-start"
	EventHeartDrawn    = "heart-drawn"
	EventMagicDrawn    = "magic-card-drawn"
	EventHeartPlaced   = "heart-placed"
	EventMagicUsed     = "magic-card-used"
	EventTurnChanged   = "turn-changed"
	EventGameOver      = "game-over"
	EventRoomError     = "room-error"
)

// Envelope is the generic message frame: a type tag plus a payload.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Inbound payloads.

type AuthenticateRequest struct {
	Token string `json:"token"`
}

type JoinRoomRequest struct {
	RoomCode string `json:"roomCode"`
	Name     string `json:"name"`
}

type RoomRequest struct {
	RoomCode string `json:"roomCode"`
}

type PlaceHeartRequest struct {
	RoomCode string `json:"roomCode"`
	TileID   int    `json:"tileId"`
	HeartID  string `json:"heartId"`
}

type UseMagicCardRequest struct {
	RoomCode     string `json:"roomCode"`
	CardID       string `json:"cardId"`
	TargetTileID *int   `json:"targetTileId,omitempty"`
}

// Outbound payloads.

type Authenticated struct {
	UserID string `json:"userId"`
	Name   string `json:"name,omitempty"`
}

type RoomJoined struct {
	Room RoomView `json:"room"`
	You  string   `json:"you"`
}

type PlayerJoined struct {
	RoomCode string     `json:"roomCode"`
	Player   PlayerView `json:"player"`
}

type PlayerLeft struct {
	RoomCode string `json:"roomCode"`
	UserID   string `json:"userId"`
}

type ReadyChanged struct {
	RoomCode string `json:"roomCode"`
	UserID   string `json:"userId"`
	Ready    bool   `json:"ready"`
}

type GameStart struct {
	Room          RoomView `json:"room"`
	CurrentPlayer string   `json:"currentPlayer"`
	TurnCount     int      `json:"turnCount"`
}

type CardDrawn struct {
	RoomCode      string   `json:"roomCode"`
	UserID        string   `json:"userId"`
	Card          CardView `json:"card"`
	DeckRemaining int      `json:"deckRemaining"`
}

type HeartPlaced struct {
	RoomCode   string   `json:"roomCode"`
	UserID     string   `json:"userId"`
	Tile       TileView `json:"tile"`
	Score      int      `json:"score"`
	TotalScore int      `json:"totalScore"`
}

type MagicUsed struct {
	RoomCode   string    `json:"roomCode"`
	UserID     string    `json:"userId"`
	CardType   string    `json:"cardType"`
	Tile       *TileView `json:"tile,omitempty"`
	VictimID   string    `json:"victimId,omitempty"`
	ScoreDelta int       `json:"scoreDelta,omitempty"`
	Reinforced bool      `json:"reinforced,omitempty"`
}

type TurnChanged struct {
	RoomCode       string   `json:"roomCode"`
	CurrentPlayer  string   `json:"currentPlayer"`
	TurnCount      int      `json:"turnCount"`
	ExpiredShields []string `json:"expiredShields,omitempty"`
}

type GameOver struct {
	RoomCode string         `json:"roomCode"`
	WinnerID string         `json:"winnerId,omitempty"`
	IsTie    bool           `json:"isTie"`
	Reason   string         `json:"reason"`
	Scores   map[string]int `json:"scores"`
}

type RoomError struct {
	Message string `json:"message"`
}
