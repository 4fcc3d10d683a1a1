package rooms

import (
	"github.com/hearttiles/server/pkg/game/types"
	"github.com/hearttiles/server/pkg/locks"
)

// MigratePlayer reattaches a rotated identity to in-flight room state:
// the roster entry keeps its score and readiness, and the hand, shield,
// per-turn counters, and current-player reference move from oldID to
// newID. Turn locks held under oldID are purged. Returns false if
// oldID is not in the room.
func MigratePlayer(room *types.Room, oldID, newID, name, email string, lockMgr *locks.Manager) bool {
	player := room.Player(oldID)
	if player == nil || oldID == newID {
		return false
	}

	player.ID = newID
	if name != "" {
		player.Name = name
	}
	if email != "" {
		player.Email = email
	}

	gs := room.GameState
	if hand, ok := gs.PlayerHands[oldID]; ok {
		gs.PlayerHands[newID] = hand
		delete(gs.PlayerHands, oldID)
	}
	if actions, ok := gs.PlayerActions[oldID]; ok {
		gs.PlayerActions[newID] = actions
		delete(gs.PlayerActions, oldID)
	}
	if shield, ok := gs.Shields[oldID]; ok {
		delete(gs.Shields, oldID)
		gs.Shields[newID] = shield
	}
	for _, shield := range gs.Shields {
		if shield.ProtectedPlayerID == oldID {
			shield.ProtectedPlayerID = newID
		}
		if shield.ActivatedBy == oldID {
			shield.ActivatedBy = newID
		}
	}
	for _, tile := range gs.Tiles {
		if tile != nil && tile.PlacedHeart != nil && tile.PlacedHeart.PlacedBy == oldID {
			tile.PlacedHeart.PlacedBy = newID
		}
	}
	if gs.CurrentPlayer == oldID {
		gs.CurrentPlayer = newID
	}

	if lockMgr != nil {
		lockMgr.ReleaseAll(oldID)
	}
	return true
}
