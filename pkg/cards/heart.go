package cards

import (
	"github.com/hearttiles/server/pkg/game/types"
)

// HeartCard is the scoring card. Placement is canonicalized by the game
// engine; this type only decides targeting and score.
type HeartCard struct {
	ID    string
	Color types.Color
	Value int
}

func (c HeartCard) CardID() string       { return c.ID }
func (c HeartCard) Type() types.CardType { return types.CardTypeHeart }
func (c HeartCard) Emoji() string        { return types.HeartEmoji(c.Color) }

// CanTargetTile reports whether the heart may be placed on the tile.
func (c HeartCard) CanTargetTile(tile *types.Tile) bool {
	return !tile.Occupied()
}

// Score computes the points for placing this heart on a tile: face
// value on white, double on a color match, zero on a mismatch.
func (c HeartCard) Score(tile *types.Tile) int {
	switch tile.Color {
	case types.ColorWhite:
		return c.Value
	case c.Color:
		return c.Value * 2
	default:
		return 0
	}
}
