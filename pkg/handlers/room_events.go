package handlers

import (
	"encoding/json"

	"github.com/hearttiles/server/pkg/game/types"
	"github.com/hearttiles/server/pkg/log"
	"github.com/hearttiles/server/pkg/messages"
	"github.com/hearttiles/server/pkg/network"
	"github.com/hearttiles/server/pkg/rooms"
	"github.com/hearttiles/server/pkg/workers"
)

func (d *Dispatcher) handleJoinRoom(ev network.InboundEvent, userID string) {
	var req messages.JoinRoomRequest
	if err := json.Unmarshal(ev.Envelope.Payload, &req); err != nil {
		d.sendError(ev.ConnID, "Malformed join-room payload")
		return
	}
	code, err := rooms.NormalizeCode(req.RoomCode)
	if err != nil {
		d.sendActionError(ev.ConnID, err)
		return
	}

	name := req.Name
	if name == "" {
		if identity, ok := d.identities[ev.ConnID]; ok {
			name = identity.Name
		}
	}
	if name == "" {
		name = "Player"
	}
	if err := rooms.ValidateName(name); err != nil {
		d.sendActionError(ev.ConnID, err)
		return
	}

	room := d.registry.GetOrCreate(code)
	if room.GameState.GameEnded {
		d.sendError(ev.ConnID, "The game in this room has ended")
		return
	}

	if room.Player(userID) == nil {
		player := &types.Player{ID: userID, Name: name}
		if identity, ok := d.identities[ev.ConnID]; ok {
			player.Email = identity.Email
		}
		if err := rooms.Join(room, player); err != nil {
			d.sendActionError(ev.ConnID, err)
			return
		}
		d.bus.BroadcastToRoom(code, messages.EventPlayerJoined, messages.PlayerJoined{
			RoomCode: code,
			Player:   messages.PlayerView{ID: player.ID, Name: player.Name},
		})
	}

	d.conns.JoinRoom(ev.ConnID, code)
	d.bus.SendToConnection(ev.ConnID, messages.EventRoomJoined, messages.RoomJoined{
		Room: messages.NewRoomView(room),
		You:  userID,
	})
	d.save(room)
}

func (d *Dispatcher) handleLeaveRoom(ev network.InboundEvent, userID string) {
	room, code, ok := d.roomFor(ev, messages.EventLeaveRoom)
	if !ok {
		return
	}

	empty := rooms.Leave(room, userID)
	d.conns.LeaveRoom(ev.ConnID, code)
	d.locks.Release(code, userID)
	d.bus.BroadcastToRoom(code, messages.EventPlayerLeft, messages.PlayerLeft{
		RoomCode: code,
		UserID:   userID,
	})

	if empty {
		d.registry.Remove(code)
		select {
		case d.saveChan <- workers.SaveRequest{DeleteCode: code}:
		default:
			log.Warn("Save queue full, skipping delete of room %s", code)
		}
		return
	}

	// A mid-game departure forfeits: the remaining player wins on
	// points and the room winds down.
	gs := room.GameState
	if gs.GameStarted && !gs.GameEnded {
		result := d.engine.EndGame(room, "Opponent left the room")
		d.broadcastGameOver(code, result)
	}
	d.save(room)
}

func (d *Dispatcher) handlePlayerReady(ev network.InboundEvent, userID string) {
	room, code, ok := d.roomFor(ev, messages.EventPlayerReady)
	if !ok {
		return
	}
	player := room.Player(userID)
	if player == nil {
		d.sendError(ev.ConnID, "You are not in this room")
		return
	}
	if room.GameState.GameStarted {
		d.sendError(ev.ConnID, "The game has already started")
		return
	}

	player.Ready = !player.Ready
	d.bus.BroadcastToRoom(code, messages.EventReadyChanged, messages.ReadyChanged{
		RoomCode: code,
		UserID:   userID,
		Ready:    player.Ready,
	})

	if room.Phase() == types.PhaseReady {
		result, err := d.engine.Start(room)
		if err != nil {
			d.sendActionError(ev.ConnID, err)
			return
		}
		log.Info("Game started in room %s, %s goes first", code, result.CurrentPlayer)
		d.bus.BroadcastToRoom(code, messages.EventGameStart, messages.GameStart{
			Room:          messages.NewRoomView(room),
			CurrentPlayer: result.CurrentPlayer,
			TurnCount:     result.TurnCount,
		})
	}
	d.save(room)
}

// roomFor decodes the common room-scoped payload and resolves the live
// room.
func (d *Dispatcher) roomFor(ev network.InboundEvent, event string) (*types.Room, string, bool) {
	var req messages.RoomRequest
	if err := json.Unmarshal(ev.Envelope.Payload, &req); err != nil {
		d.sendError(ev.ConnID, "Malformed "+event+" payload")
		return nil, "", false
	}
	code, err := rooms.NormalizeCode(req.RoomCode)
	if err != nil {
		d.sendActionError(ev.ConnID, err)
		return nil, "", false
	}
	room, found := d.registry.Get(code)
	if !found {
		d.sendError(ev.ConnID, "Room not found")
		return nil, "", false
	}
	return room, code, true
}
