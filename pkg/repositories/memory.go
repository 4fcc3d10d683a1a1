package repositories

import (
	"context"
	"sync"

	"github.com/hearttiles/server/pkg/game/types"
)

// MemoryStore keeps encoded room documents in a map. It is the default
// store and the one tests use; going through the document encoding
// keeps its behavior aligned with the durable backends.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string][]byte),
	}
}

func (s *MemoryStore) LoadAll(ctx context.Context) ([]*types.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rooms := make([]*types.Room, 0, len(s.docs))
	for _, data := range s.docs {
		room, err := DecodeRoom(data)
		if err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

func (s *MemoryStore) Upsert(ctx context.Context, room *types.Room) error {
	data, err := EncodeRoom(room)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[room.Code] = data
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, code)
	return nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
