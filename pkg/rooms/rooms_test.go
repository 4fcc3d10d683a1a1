package rooms

import (
	"testing"

	"github.com/hearttiles/server/pkg/game/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr bool
	}{
		{name: "valid lowercase", raw: "abc123", want: "ABC123"},
		{name: "valid uppercase", raw: "XYZ789", want: "XYZ789"},
		{name: "surrounding whitespace", raw: "  abc123  ", want: "ABC123"},
		{name: "too short", raw: "abc12", wantErr: true},
		{name: "too long", raw: "abc1234", wantErr: true},
		{name: "special characters", raw: "abc-12", wantErr: true},
		{name: "empty", raw: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := NormalizeCode(tt.raw)
			if tt.wantErr {
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestValidateName(t *testing.T) {
	assert.NoError(t, ValidateName("Alice"))
	assert.NoError(t, ValidateName("Player 2"))
	assert.Error(t, ValidateName(""))
	assert.Error(t, ValidateName("a-name-way-too-long"))
	assert.Error(t, ValidateName("no$pecial"))
}

func TestRegistry(t *testing.T) {
	registry := NewRegistry()

	_, found := registry.Get("ABC123")
	assert.False(t, found)

	room := registry.GetOrCreate("ABC123")
	require.NotNil(t, room)
	assert.Equal(t, "ABC123", room.Code)
	assert.Equal(t, types.DefaultMaxPlayers, room.MaxPlayers)

	// Same code resolves to the same live room.
	again := registry.GetOrCreate("ABC123")
	assert.Same(t, room, again)

	registry.GetOrCreate("XYZ789")
	list := registry.List()
	require.Len(t, list, 2)
	assert.Equal(t, "ABC123", list[0].Code)
	assert.Equal(t, "XYZ789", list[1].Code)

	registry.Remove("ABC123")
	_, found = registry.Get("ABC123")
	assert.False(t, found)
}

func TestRegistry_Hydrate(t *testing.T) {
	registry := NewRegistry()

	live := types.NewRoom("ABC123")
	ended := types.NewRoom("XYZ789")
	ended.GameState.GameEnded = true

	registry.Hydrate([]*types.Room{live, ended})

	_, found := registry.Get("ABC123")
	assert.True(t, found)
	_, found = registry.Get("XYZ789")
	assert.False(t, found)
}

func TestJoin(t *testing.T) {
	room := types.NewRoom("ABC123")

	require.NoError(t, Join(room, &types.Player{ID: "p1", Name: "Alice"}))
	require.NoError(t, Join(room, &types.Player{ID: "p2", Name: "Bob"}))

	err := Join(room, &types.Player{ID: "p1", Name: "Alice"})
	assert.True(t, IsValidationError(err))

	err = Join(room, &types.Player{ID: "p3", Name: "Carol"})
	assert.True(t, IsValidationError(err))
	assert.Len(t, room.Players, 2)
}

func TestLeave(t *testing.T) {
	room := types.NewRoom("ABC123")
	require.NoError(t, Join(room, &types.Player{ID: "p1", Name: "Alice"}))
	require.NoError(t, Join(room, &types.Player{ID: "p2", Name: "Bob"}))

	assert.False(t, Leave(room, "p1"))
	assert.Nil(t, room.Player("p1"))
	// Leaving twice is harmless.
	assert.False(t, Leave(room, "p1"))
	assert.True(t, Leave(room, "p2"))
	assert.Empty(t, room.Players)
}
