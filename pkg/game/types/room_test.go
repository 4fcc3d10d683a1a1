package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoom_Phase(t *testing.T) {
	room := NewRoom("ABC123")
	assert.Equal(t, PhaseWaiting, room.Phase())

	room.Players = append(room.Players, &Player{ID: "p1", Ready: true})
	assert.Equal(t, PhaseWaiting, room.Phase())

	room.Players = append(room.Players, &Player{ID: "p2"})
	assert.Equal(t, PhaseWaiting, room.Phase())

	room.Players[1].Ready = true
	assert.Equal(t, PhaseReady, room.Phase())

	room.GameState.GameStarted = true
	assert.Equal(t, PhaseInProgress, room.Phase())

	room.GameState.GameEnded = true
	assert.Equal(t, PhaseEnded, room.Phase())
}

func TestRoom_Opponent(t *testing.T) {
	room := NewRoom("ABC123")
	room.Players = []*Player{{ID: "p1"}, {ID: "p2"}}

	require.NotNil(t, room.Opponent("p1"))
	assert.Equal(t, "p2", room.Opponent("p1").ID)
	assert.Equal(t, "p1", room.Opponent("p2").ID)
}

func TestRoom_Clone(t *testing.T) {
	room := NewRoom("ABC123")
	room.Players = []*Player{{ID: "p1", Name: "Alice", Score: 3}}
	gs := room.GameState
	gs.Tiles[0] = &Tile{ID: 0, Color: ColorRed, PlacedHeart: &PlacedHeart{PlacedBy: "p1", Score: 2}}
	gs.Shields["p1"] = &Shield{Active: true, RemainingTurns: 2}
	gs.PlayerActions["p1"] = &PlayerActions{DrawnHeart: true}
	gs.CurrentPlayer = "p1"
	gs.TurnCount = 2
	gs.GameStarted = true

	clone := room.Clone()

	// Mutating the original must not reach the clone.
	room.Players[0].Score = 9
	gs.Tiles[0].PlacedHeart.Score = 99
	gs.Shields["p1"].RemainingTurns = 0
	gs.PlayerActions["p1"].DrawnHeart = false
	gs.CurrentPlayer = "p2"

	assert.Equal(t, 3, clone.Players[0].Score)
	assert.Equal(t, 2, clone.GameState.Tiles[0].PlacedHeart.Score)
	assert.Equal(t, 2, clone.GameState.Shields["p1"].RemainingTurns)
	assert.True(t, clone.GameState.PlayerActions["p1"].DrawnHeart)
	assert.Equal(t, "p1", clone.GameState.CurrentPlayer)
}

func TestGameState_handHelpers(t *testing.T) {
	gs := NewGameState()
	gs.PlayerHands["p1"] = []Card{fakeCard("a"), fakeCard("b"), fakeCard("c")}

	assert.Equal(t, 1, gs.HandIndex("p1", "b"))
	assert.Equal(t, -1, gs.HandIndex("p1", "z"))
	assert.Equal(t, -1, gs.HandIndex("p2", "a"))

	removed := gs.RemoveFromHand("p1", 1)
	assert.Equal(t, "b", removed.CardID())
	require.Len(t, gs.PlayerHands["p1"], 2)
	assert.Equal(t, "a", gs.PlayerHands["p1"][0].CardID())
	assert.Equal(t, "c", gs.PlayerHands["p1"][1].CardID())
}

type fakeCard string

func (c fakeCard) CardID() string { return string(c) }
func (c fakeCard) Type() CardType { return CardTypeHeart }
func (c fakeCard) Emoji() string  { return "❤️" }
