package cards

import (
	"math/rand"
	"testing"

	"github.com/hearttiles/server/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestHeartCard_Score(t *testing.T) {
	tests := []struct {
		name  string
		heart HeartCard
		tile  *types.Tile
		want  int
	}{
		{
			name:  "white tile scores face value",
			heart: HeartCard{ID: "h1", Color: types.ColorRed, Value: 2},
			tile:  &types.Tile{ID: 0, Color: types.ColorWhite},
			want:  2,
		},
		{
			name:  "matching color scores double",
			heart: HeartCard{ID: "h1", Color: types.ColorRed, Value: 2},
			tile:  &types.Tile{ID: 0, Color: types.ColorRed},
			want:  4,
		},
		{
			name:  "mismatched color scores zero",
			heart: HeartCard{ID: "h1", Color: types.ColorRed, Value: 2},
			tile:  &types.Tile{ID: 0, Color: types.ColorYellow},
			want:  0,
		},
		{
			name:  "green on green",
			heart: HeartCard{ID: "h2", Color: types.ColorGreen, Value: 3},
			tile:  &types.Tile{ID: 0, Color: types.ColorGreen},
			want:  6,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.heart.Score(tt.tile))
		})
	}
}

func TestHeartCard_CanTargetTile(t *testing.T) {
	heart := HeartCard{ID: "h1", Color: types.ColorRed, Value: 1}
	open := &types.Tile{ID: 0, Color: types.ColorRed}
	occupied := &types.Tile{ID: 1, Color: types.ColorRed, PlacedHeart: &types.PlacedHeart{PlacedBy: "p1"}}

	assert.True(t, heart.CanTargetTile(open))
	assert.False(t, heart.CanTargetTile(occupied))
}

func TestWindCard_CanTargetTile(t *testing.T) {
	wind := WindCard{ID: "w1"}
	open := &types.Tile{ID: 0, Color: types.ColorRed}
	mine := &types.Tile{ID: 1, Color: types.ColorRed, PlacedHeart: &types.PlacedHeart{PlacedBy: "p1"}}
	theirs := &types.Tile{ID: 2, Color: types.ColorRed, PlacedHeart: &types.PlacedHeart{PlacedBy: "p2"}}

	assert.False(t, wind.CanTargetTile(open, "p1"))
	assert.False(t, wind.CanTargetTile(mine, "p1"))
	assert.True(t, wind.CanTargetTile(theirs, "p1"))
}

func TestWindCard_Execute(t *testing.T) {
	tile := &types.Tile{
		ID:    3,
		Color: types.ColorRed,
		Emoji: types.TileEmoji(types.ColorRed),
		PlacedHeart: &types.PlacedHeart{
			Color:             types.ColorRed,
			Value:             2,
			PlacedBy:          "p2",
			Score:             4,
			OriginalTileColor: types.ColorYellow,
			OriginalTileEmoji: types.TileEmoji(types.ColorYellow),
		},
	}

	effect := WindCard{ID: "w1"}.Execute(tile)

	assert.Equal(t, "p2", effect.OwnerID)
	assert.Equal(t, 4, effect.RemovedHeart.Score)
	assert.Equal(t, types.ColorYellow, effect.RestoredColor)
	assert.Equal(t, types.TileEmoji(types.ColorYellow), effect.RestoredEmoji)
	// Execute reports the effect; mutation is the engine's job.
	assert.NotNil(t, tile.PlacedHeart)
}

func TestRecycleCard_CanTargetTile(t *testing.T) {
	recycle := RecycleCard{ID: "r1"}
	colored := &types.Tile{ID: 0, Color: types.ColorGreen}
	white := &types.Tile{ID: 1, Color: types.ColorWhite}
	occupied := &types.Tile{ID: 2, Color: types.ColorGreen, PlacedHeart: &types.PlacedHeart{PlacedBy: "p1"}}

	assert.True(t, recycle.CanTargetTile(colored))
	assert.False(t, recycle.CanTargetTile(white))
	assert.False(t, recycle.CanTargetTile(occupied))
}

func TestRecycleCard_Execute(t *testing.T) {
	tile := &types.Tile{ID: 5, Color: types.ColorGreen, Emoji: types.TileEmoji(types.ColorGreen)}

	effect := RecycleCard{ID: "r1"}.Execute(tile)

	assert.Equal(t, 5, effect.TileID)
	assert.Equal(t, types.ColorGreen, effect.PreviousColor)
	assert.Equal(t, types.ColorWhite, effect.NewColor)
	assert.Equal(t, types.TileEmoji(types.ColorWhite), effect.NewEmoji)
}

func TestShieldCard_Execute(t *testing.T) {
	t.Run("fresh activation", func(t *testing.T) {
		gs := types.NewGameState()
		gs.TurnCount = 4

		effect, err := ShieldCard{ID: "s1"}.Execute(gs, "p1")
		require.NoError(t, err)

		assert.False(t, effect.Reinforced)
		assert.True(t, effect.Shield.Active)
		assert.Equal(t, types.ShieldWindow, effect.Shield.RemainingTurns)
		assert.Equal(t, 4, effect.Shield.ActivatedTurn)
		assert.Equal(t, "p1", effect.Shield.ProtectedPlayerID)
	})

	t.Run("opponent shield blocks activation", func(t *testing.T) {
		gs := types.NewGameState()
		gs.TurnCount = 4
		gs.Shields["p2"] = &types.Shield{
			Active:            true,
			RemainingTurns:    types.ShieldWindow,
			ActivatedTurn:     4,
			ActivatedBy:       "p2",
			ProtectedPlayerID: "p2",
		}

		_, err := ShieldCard{ID: "s1"}.Execute(gs, "p1")
		assert.ErrorIs(t, err, ErrOpponentShielded)
	})

	t.Run("expired opponent shield does not block", func(t *testing.T) {
		gs := types.NewGameState()
		gs.TurnCount = 7
		gs.Shields["p2"] = &types.Shield{
			Active:            true,
			RemainingTurns:    1,
			ActivatedTurn:     4,
			ActivatedBy:       "p2",
			ProtectedPlayerID: "p2",
		}

		_, err := ShieldCard{ID: "s1"}.Execute(gs, "p1")
		assert.NoError(t, err)
	})

	t.Run("reinforcement resets the window", func(t *testing.T) {
		gs := types.NewGameState()
		gs.TurnCount = 6
		gs.Shields["p1"] = &types.Shield{
			Active:            true,
			RemainingTurns:    1,
			ActivatedTurn:     4,
			ActivatedBy:       "p1",
			ProtectedPlayerID: "p1",
		}

		effect, err := ShieldCard{ID: "s2"}.Execute(gs, "p1")
		require.NoError(t, err)

		assert.True(t, effect.Reinforced)
		assert.Equal(t, types.ShieldWindow, effect.Shield.RemainingTurns)
		assert.Equal(t, 6, effect.Shield.ActivatedTurn)
	})
}

func TestShieldActive(t *testing.T) {
	shield := &types.Shield{Active: true, RemainingTurns: types.ShieldWindow, ActivatedTurn: 5}

	assert.False(t, ShieldActive(nil, 5))
	assert.True(t, ShieldActive(shield, 5))
	assert.True(t, ShieldActive(shield, 7))
	assert.False(t, ShieldActive(shield, 8))
}

func TestNewHeart(t *testing.T) {
	rng := newTestRNG()
	for i := 0; i < 50; i++ {
		heart := NewHeart(rng)
		assert.NotEmpty(t, heart.ID)
		assert.Contains(t, heartColors, heart.Color)
		assert.GreaterOrEqual(t, heart.Value, 1)
		assert.LessOrEqual(t, heart.Value, 3)
	}
}

func TestNewTiles(t *testing.T) {
	tiles := NewTiles(newTestRNG())
	require.Len(t, tiles, types.NumTiles)
	for i, tile := range tiles {
		assert.Equal(t, i, tile.ID)
		assert.Contains(t, tileColors, tile.Color)
		assert.Equal(t, types.TileEmoji(tile.Color), tile.Emoji)
		assert.False(t, tile.Occupied())
	}
}
