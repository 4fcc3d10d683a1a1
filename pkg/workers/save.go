package workers

import (
	"context"

	"github.com/hearttiles/server/pkg/game/types"
	"github.com/hearttiles/server/pkg/log"
	"github.com/hearttiles/server/pkg/repositories"
)

// SaveRequest asks the worker to upsert a room snapshot or delete a
// persisted room. Room must be a clone; the live aggregate keeps being
// mutated on the event loop.
type SaveRequest struct {
	Room       *types.Room
	DeleteCode string
}

// SaveRoomWorker processes persistence requests off the event loop.
// Store failures are logged and otherwise ignored; the in-memory room
// stays authoritative and the next mutation retries the write.
type SaveRoomWorker struct {
	store    repositories.Store
	saveChan <-chan SaveRequest
}

type NewSaveRoomWorkerOptions struct {
	Store    repositories.Store
	SaveChan <-chan SaveRequest
}

func NewSaveRoomWorker(opts NewSaveRoomWorkerOptions) *SaveRoomWorker {
	return &SaveRoomWorker{
		store:    opts.Store,
		saveChan: opts.SaveChan,
	}
}

func (w *SaveRoomWorker) Start(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-w.saveChan:
			if req.DeleteCode != "" {
				if err := w.store.Delete(ctx, req.DeleteCode); err != nil {
					log.Error("Failed to delete room %s: %v", req.DeleteCode, err)
				}
				continue
			}
			if req.Room == nil {
				continue
			}
			if err := w.store.Upsert(ctx, req.Room); err != nil {
				log.Error("Failed to save room %s: %v", req.Room.Code, err)
			}
		}
	}
}
