package messages

import (
	"github.com/hearttiles/server/pkg/cards"
	"github.com/hearttiles/server/pkg/game/types"
)

// Public views of room state for broadcasts and the status API.

type PlayerView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
	Score int    `json:"score"`
}

type CardView struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Emoji string `json:"emoji"`
	Color string `json:"color,omitempty"`
	Value int    `json:"value,omitempty"`
}

type PlacedHeartView struct {
	Color    string `json:"color"`
	Value    int    `json:"value"`
	PlacedBy string `json:"placedBy"`
	Score    int    `json:"score"`
}

type TileView struct {
	ID          int              `json:"id"`
	Color       string           `json:"color"`
	Emoji       string           `json:"emoji"`
	PlacedHeart *PlacedHeartView `json:"placedHeart,omitempty"`
}

type ShieldView struct {
	RemainingTurns    int    `json:"remainingTurns"`
	ActivatedTurn     int    `json:"activatedTurn"`
	ProtectedPlayerID string `json:"protectedPlayerId"`
}

type RoomView struct {
	Code          string                `json:"code"`
	Phase         string                `json:"phase"`
	Players       []PlayerView          `json:"players"`
	MaxPlayers    int                   `json:"maxPlayers"`
	Tiles         []TileView            `json:"tiles,omitempty"`
	Hands         map[string][]CardView `json:"hands,omitempty"`
	Shields       map[string]ShieldView `json:"shields,omitempty"`
	CurrentPlayer string                `json:"currentPlayer,omitempty"`
	TurnCount     int                   `json:"turnCount"`
	HeartDeck     int                   `json:"heartDeck"`
	MagicDeck     int                   `json:"magicDeck"`
	EndReason     string                `json:"endReason,omitempty"`
}

// NewCardView builds the public view of a card. Heart details are only
// present on heart cards.
func NewCardView(c types.Card) CardView {
	v := CardView{
		ID:    c.CardID(),
		Type:  string(c.Type()),
		Emoji: c.Emoji(),
	}
	if h, ok := c.(cards.HeartCard); ok {
		v.Color = string(h.Color)
		v.Value = h.Value
	}
	return v
}

func NewTileView(t *types.Tile) TileView {
	v := TileView{
		ID:    t.ID,
		Color: string(t.Color),
		Emoji: t.Emoji,
	}
	if t.PlacedHeart != nil {
		v.PlacedHeart = &PlacedHeartView{
			Color:    string(t.PlacedHeart.Color),
			Value:    t.PlacedHeart.Value,
			PlacedBy: t.PlacedHeart.PlacedBy,
			Score:    t.PlacedHeart.Score,
		}
	}
	return v
}

// NewRoomView builds the broadcast view of a room.
func NewRoomView(room *types.Room) RoomView {
	gs := room.GameState
	v := RoomView{
		Code:          room.Code,
		Phase:         string(room.Phase()),
		MaxPlayers:    room.MaxPlayers,
		CurrentPlayer: gs.CurrentPlayer,
		TurnCount:     gs.TurnCount,
		HeartDeck:     gs.Deck.Cards,
		MagicDeck:     gs.MagicDeck.Cards,
		EndReason:     gs.EndReason,
	}
	for _, p := range room.Players {
		v.Players = append(v.Players, PlayerView{ID: p.ID, Name: p.Name, Ready: p.Ready, Score: p.Score})
	}
	if gs.GameStarted {
		for _, t := range gs.Tiles {
			if t != nil {
				v.Tiles = append(v.Tiles, NewTileView(t))
			}
		}
		v.Hands = make(map[string][]CardView, len(gs.PlayerHands))
		for id, hand := range gs.PlayerHands {
			views := make([]CardView, 0, len(hand))
			for _, c := range hand {
				views = append(views, NewCardView(c))
			}
			v.Hands[id] = views
		}
		if len(gs.Shields) > 0 {
			v.Shields = make(map[string]ShieldView, len(gs.Shields))
			for id, s := range gs.Shields {
				v.Shields[id] = ShieldView{
					RemainingTurns:    s.RemainingTurns,
					ActivatedTurn:     s.ActivatedTurn,
					ProtectedPlayerID: s.ProtectedPlayerID,
				}
			}
		}
	}
	return v
}
