package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/hearttiles/server/pkg/log"
	"github.com/hearttiles/server/pkg/messages"
	"github.com/hearttiles/server/pkg/rooms"
	"github.com/hearttiles/server/pkg/version"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type RoomSummary struct {
	Code        string `json:"code"`
	Players     int    `json:"players"`
	MaxPlayers  int    `json:"maxPlayers"`
	Phase       string `json:"phase"`
	TurnCount   int    `json:"turnCount,omitempty"`
	GameStarted bool   `json:"gameStarted"`
	GameEnded   bool   `json:"gameEnded"`
}

func HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, HealthResponse{
			Status:  "ok",
			Version: version.Get(),
		})
	}
}

func HandleListRooms(registry *rooms.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		live := registry.List()
		summaries := make([]RoomSummary, 0, len(live))
		for _, room := range live {
			summaries = append(summaries, RoomSummary{
				Code:        room.Code,
				Players:     len(room.Players),
				MaxPlayers:  room.MaxPlayers,
				Phase:       string(room.Phase()),
				TurnCount:   room.GameState.TurnCount,
				GameStarted: room.GameState.GameStarted,
				GameEnded:   room.GameState.GameEnded,
			})
		}
		writeJSON(w, summaries)
	}
}

func HandleGetRoom(registry *rooms.Registry) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := mux.Vars(r)["code"]
		code, err := rooms.NormalizeCode(raw)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		room, found := registry.Get(code)
		if !found {
			http.Error(w, "Room not found", http.StatusNotFound)
			return
		}
		writeJSON(w, messages.NewRoomView(room))
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
	}
}
