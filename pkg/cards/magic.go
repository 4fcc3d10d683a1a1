package cards

import (
	"errors"

	"github.com/hearttiles/server/pkg/game/types"
)

// ErrOpponentShielded is returned by ShieldCard.Execute when another
// player already holds an active shield. Shields are globally mutually
// exclusive.
var ErrOpponentShielded = errors.New("an opponent's shield is already active")

// WindCard removes an opponent's placed heart and restores the tile.
type WindCard struct {
	ID string
}

func (c WindCard) CardID() string       { return c.ID }
func (c WindCard) Type() types.CardType { return types.CardTypeWind }
func (c WindCard) Emoji() string        { return "🌪️" }

// CanTargetTile reports whether the wind may target the tile: it must
// be occupied by a heart the actor does not own.
func (c WindCard) CanTargetTile(tile *types.Tile, actorID string) bool {
	return tile.Occupied() && tile.PlacedHeart.PlacedBy != actorID
}

// WindEffect describes the outcome of a wind card. The caller reverses
// the owner's score by the removed heart's recorded score.
type WindEffect struct {
	RemovedHeart  types.PlacedHeart
	OwnerID       string
	RestoredColor types.Color
	RestoredEmoji string
}

// Execute computes the wind effect for an occupied tile without
// mutating it.
func (c WindCard) Execute(tile *types.Tile) WindEffect {
	heart := *tile.PlacedHeart
	return WindEffect{
		RemovedHeart:  heart,
		OwnerID:       heart.PlacedBy,
		RestoredColor: heart.OriginalTileColor,
		RestoredEmoji: heart.OriginalTileEmoji,
	}
}

// RecycleCard turns a colored tile white.
type RecycleCard struct {
	ID string
}

func (c RecycleCard) CardID() string       { return c.ID }
func (c RecycleCard) Type() types.CardType { return types.CardTypeRecycle }
func (c RecycleCard) Emoji() string        { return "♻️" }

// CanTargetTile reports whether the recycle may target the tile: it
// must be unoccupied and not already white.
func (c RecycleCard) CanTargetTile(tile *types.Tile) bool {
	return !tile.Occupied() && tile.Color != types.ColorWhite
}

// RecycleEffect describes the outcome of a recycle card.
type RecycleEffect struct {
	TileID        int
	PreviousColor types.Color
	NewColor      types.Color
	NewEmoji      string
}

// Execute computes the recycle effect without mutating the tile.
func (c RecycleCard) Execute(tile *types.Tile) RecycleEffect {
	return RecycleEffect{
		TileID:        tile.ID,
		PreviousColor: tile.Color,
		NewColor:      types.ColorWhite,
		NewEmoji:      types.TileEmoji(types.ColorWhite),
	}
}

// ShieldCard grants the actor a fixed window of protection from wind
// removal.
type ShieldCard struct {
	ID string
}

func (c ShieldCard) CardID() string       { return c.ID }
func (c ShieldCard) Type() types.CardType { return types.CardTypeShield }
func (c ShieldCard) Emoji() string        { return "🛡️" }

// ShieldEffect describes the outcome of a shield card: either a fresh
// activation or a reinforcement of the actor's existing shield.
type ShieldEffect struct {
	Shield     types.Shield
	Reinforced bool
}

// Execute computes the shield effect. It fails with ErrOpponentShielded
// if any other player holds a shield active under the current turn
// count. The engine applies the returned shield to the game state.
func (c ShieldCard) Execute(gs *types.GameState, actorID string) (ShieldEffect, error) {
	for owner, s := range gs.Shields {
		if owner != actorID && ShieldActive(s, gs.TurnCount) {
			return ShieldEffect{}, ErrOpponentShielded
		}
	}

	if existing, ok := gs.Shields[actorID]; ok && ShieldActive(existing, gs.TurnCount) {
		reinforced := *existing
		reinforced.RemainingTurns = types.ShieldWindow
		reinforced.ActivatedTurn = gs.TurnCount
		return ShieldEffect{Shield: reinforced, Reinforced: true}, nil
	}

	return ShieldEffect{
		Shield: types.Shield{
			Active:            true,
			RemainingTurns:    types.ShieldWindow,
			ActivatedTurn:     gs.TurnCount,
			ActivatedBy:       actorID,
			ProtectedPlayerID: actorID,
		},
	}, nil
}

// ShieldActive reports whether a shield protects its holder under the
// given turn count.
func ShieldActive(s *types.Shield, turnCount int) bool {
	return s != nil && s.Active && turnCount < s.ActivatedTurn+types.ShieldWindow
}
