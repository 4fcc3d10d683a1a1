package workers

import (
	"context"
	"testing"
	"time"

	"github.com/hearttiles/server/pkg/game/types"
	"github.com/hearttiles/server/pkg/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveRoomWorker(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := repositories.NewMemoryStore()
	saveChan := make(chan SaveRequest, 10)
	worker := NewSaveRoomWorker(NewSaveRoomWorkerOptions{
		Store:    store,
		SaveChan: saveChan,
	})
	go worker.Start(ctx)

	room := types.NewRoom("ABC123")
	room.Players = []*types.Player{{ID: "p1", Name: "Alice"}}
	saveChan <- SaveRequest{Room: room}

	require.Eventually(t, func() bool {
		loaded, err := store.LoadAll(ctx)
		return err == nil && len(loaded) == 1
	}, time.Second, 10*time.Millisecond)

	loaded, err := store.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ABC123", loaded[0].Code)

	saveChan <- SaveRequest{DeleteCode: "ABC123"}

	require.Eventually(t, func() bool {
		loaded, err := store.LoadAll(ctx)
		return err == nil && len(loaded) == 0
	}, time.Second, 10*time.Millisecond)

	// Nil requests are skipped without crashing the worker.
	saveChan <- SaveRequest{}
	saveChan <- SaveRequest{Room: types.NewRoom("XYZ789")}

	require.Eventually(t, func() bool {
		loaded, err := store.LoadAll(ctx)
		return err == nil && len(loaded) == 1
	}, time.Second, 10*time.Millisecond)
}
