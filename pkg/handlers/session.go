package handlers

import (
	"context"
	"encoding/json"

	"github.com/hearttiles/server/pkg/log"
	"github.com/hearttiles/server/pkg/messages"
	"github.com/hearttiles/server/pkg/network"
	"github.com/hearttiles/server/pkg/rooms"
)

func (d *Dispatcher) handleAuthenticate(ctx context.Context, ev network.InboundEvent) {
	var req messages.AuthenticateRequest
	if len(ev.Envelope.Payload) > 0 {
		if err := json.Unmarshal(ev.Envelope.Payload, &req); err != nil {
			d.sendError(ev.ConnID, "Malformed authenticate payload")
			return
		}
	}

	identity, err := d.auth.VerifyToken(ctx, req.Token)
	if err != nil {
		log.Debug("Authentication failed for %s: %v", ev.ConnID, err)
		d.sendError(ev.ConnID, "Authentication failed")
		return
	}

	oldID := d.conns.UserID(ev.ConnID)
	d.conns.BindUser(ev.ConnID, identity.UserID)
	d.identities[ev.ConnID] = identity

	if oldID != "" && oldID != identity.UserID {
		d.migrateIdentity(ev.ConnID, oldID, identity.UserID, identity.Name, identity.Email)
	}

	d.bus.SendToConnection(ev.ConnID, messages.EventAuthenticated, messages.Authenticated{
		UserID: identity.UserID,
		Name:   identity.Name,
	})
}

// migrateIdentity reattaches a rotated identity to every live room the
// old identity was seated in, without interrupting play.
func (d *Dispatcher) migrateIdentity(connID, oldID, newID, name, email string) {
	for _, room := range d.registry.List() {
		if room.Player(oldID) == nil {
			continue
		}
		if !rooms.MigratePlayer(room, oldID, newID, name, email, d.locks) {
			continue
		}
		log.Info("Migrated player %s to %s in room %s", oldID, newID, room.Code)
		d.bus.SendToConnection(connID, messages.EventRoomJoined, messages.RoomJoined{
			Room: messages.NewRoomView(room),
			You:  newID,
		})
		d.save(room)
	}
}

func (d *Dispatcher) handleDisconnect(connID, userID string) {
	if userID != "" {
		d.locks.ReleaseAll(userID)
	}
	delete(d.identities, connID)
	log.Trace("Connection %s cleaned up", connID)
}
