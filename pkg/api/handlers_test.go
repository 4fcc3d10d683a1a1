package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/hearttiles/server/pkg/game/types"
	"github.com/hearttiles/server/pkg/messages"
	"github.com/hearttiles/server/pkg/rooms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(registry *rooms.Registry) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/health", HandleHealth()).Methods(http.MethodGet)
	router.HandleFunc("/rooms", HandleListRooms(registry)).Methods(http.MethodGet)
	router.HandleFunc("/rooms/{code}", HandleGetRoom(registry)).Methods(http.MethodGet)
	return router
}

func doRequest(router *mux.Router, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := doRequest(newTestRouter(rooms.NewRegistry()), "/health")

	require.Equal(t, http.StatusOK, rec.Code)
	var health HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.NotEmpty(t, health.Version)
}

func TestHandleListRooms(t *testing.T) {
	registry := rooms.NewRegistry()
	router := newTestRouter(registry)

	rec := doRequest(router, "/rooms")
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []RoomSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	assert.Empty(t, summaries)

	room := registry.GetOrCreate("ABC123")
	room.Players = []*types.Player{{ID: "p1", Name: "Alice"}}
	registry.GetOrCreate("XYZ789")

	rec = doRequest(router, "/rooms")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "ABC123", summaries[0].Code)
	assert.Equal(t, 1, summaries[0].Players)
	assert.Equal(t, "waiting", summaries[0].Phase)
}

func TestHandleGetRoom(t *testing.T) {
	registry := rooms.NewRegistry()
	router := newTestRouter(registry)
	room := registry.GetOrCreate("ABC123")
	room.Players = []*types.Player{{ID: "p1", Name: "Alice"}}

	t.Run("found", func(t *testing.T) {
		rec := doRequest(router, "/rooms/abc123")
		require.Equal(t, http.StatusOK, rec.Code)
		var view messages.RoomView
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
		assert.Equal(t, "ABC123", view.Code)
		require.Len(t, view.Players, 1)
		assert.Equal(t, "Alice", view.Players[0].Name)
	})

	t.Run("not found", func(t *testing.T) {
		rec := doRequest(router, "/rooms/NOPE12")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad code", func(t *testing.T) {
		rec := doRequest(router, "/rooms/bad")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
