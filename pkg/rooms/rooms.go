// Package rooms holds the live Room aggregates and their lifecycle:
// code validation, join/leave/ready transitions, and session migration.
// Durability is delegated to the repositories package.
package rooms

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/hearttiles/server/pkg/game/types"
)

// ValidationError is a malformed input rejected before any mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

var (
	codePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	namePattern = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)
)

// NormalizeCode validates a room code and normalizes it to uppercase.
func NormalizeCode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if len(code) != types.RoomCodeLength {
		return "", &ValidationError{Message: fmt.Sprintf("Room code must be %d characters", types.RoomCodeLength)}
	}
	if !codePattern.MatchString(code) {
		return "", &ValidationError{Message: "Room code must be alphanumeric"}
	}
	return strings.ToUpper(code), nil
}

// ValidateName checks a player display name.
func ValidateName(name string) error {
	if len(name) < 1 || len(name) > 16 {
		return &ValidationError{Message: "Name must be between 1 and 16 characters"}
	}
	if !namePattern.MatchString(name) {
		return &ValidationError{Message: "Name cannot contain special characters"}
	}
	return nil
}

// Registry holds the live rooms keyed by normalized code.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*types.Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*types.Room),
	}
}

// Get returns the live room for a code, if present.
func (r *Registry) Get(code string) (*types.Room, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	room, ok := r.rooms[code]
	return room, ok
}

// GetOrCreate returns the live room for a code, creating it on first
// join.
func (r *Registry) GetOrCreate(code string) *types.Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	room, ok := r.rooms[code]
	if !ok {
		room = types.NewRoom(code)
		r.rooms[code] = room
	}
	return room
}

// Remove drops a room from the registry.
func (r *Registry) Remove(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, code)
}

// List returns the live rooms sorted by code.
func (r *Registry) List() []*types.Room {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*types.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, room)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Hydrate loads previously persisted rooms into the registry. Rooms
// whose game already ended are skipped; they are historical records,
// not live state.
func (r *Registry) Hydrate(loaded []*types.Room) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, room := range loaded {
		if room.GameState != nil && room.GameState.GameEnded {
			continue
		}
		r.rooms[room.Code] = room
	}
}

// Join adds a player to a room. The room must have a free seat and the
// player must not already be present.
func Join(room *types.Room, player *types.Player) error {
	if room.Player(player.ID) != nil {
		return &ValidationError{Message: "You are already in this room"}
	}
	if len(room.Players) >= room.MaxPlayers {
		return &ValidationError{Message: "The room is full"}
	}
	room.Players = append(room.Players, player)
	return nil
}

// Leave removes a player from a room and reports whether the room is
// now empty.
func Leave(room *types.Room, userID string) bool {
	for i, p := range room.Players {
		if p.ID == userID {
			room.Players = append(room.Players[:i], room.Players[i+1:]...)
			break
		}
	}
	return len(room.Players) == 0
}
