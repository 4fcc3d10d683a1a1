package cards

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/hearttiles/server/pkg/game/types"
)

var heartColors = []types.Color{types.ColorRed, types.ColorYellow, types.ColorGreen}

var tileColors = []types.Color{types.ColorRed, types.ColorYellow, types.ColorGreen, types.ColorWhite}

// NewHeart draws a random heart card: a color in {red, yellow, green}
// and a value in 1..3.
func NewHeart(rng *rand.Rand) HeartCard {
	return HeartCard{
		ID:    uuid.New().String(),
		Color: heartColors[rng.Intn(len(heartColors))],
		Value: 1 + rng.Intn(3),
	}
}

// NewMagic draws a random magic card.
func NewMagic(rng *rand.Rand) types.Card {
	id := uuid.New().String()
	switch rng.Intn(3) {
	case 0:
		return WindCard{ID: id}
	case 1:
		return RecycleCard{ID: id}
	default:
		return ShieldCard{ID: id}
	}
}

// NewTiles generates the fixed board of randomly colored tiles.
func NewTiles(rng *rand.Rand) [types.NumTiles]*types.Tile {
	var tiles [types.NumTiles]*types.Tile
	for i := range tiles {
		color := tileColors[rng.Intn(len(tileColors))]
		tiles[i] = &types.Tile{
			ID:    i,
			Color: color,
			Emoji: types.TileEmoji(color),
		}
	}
	return tiles
}
