// Package repositories persists rooms as JSON documents. All
// conversion between in-memory aggregates and the persisted document
// shape happens here; game logic never sees documents.
package repositories

import (
	"context"

	"github.com/hearttiles/server/pkg/game/types"
)

// Store is the durable room store. In-memory state is authoritative
// between writes; a store failure is logged and play continues.
type Store interface {
	LoadAll(ctx context.Context) ([]*types.Room, error)
	Upsert(ctx context.Context, room *types.Room) error
	Delete(ctx context.Context, code string) error
	Close(ctx context.Context) error
}
