// Package handlers binds inbound bus events to game engine operations.
// All events are dispatched by a single goroutine, so each is handled
// to completion before the next; the turn lock additionally rejects
// logically duplicated actions racing within one broadcast round-trip.
package handlers

import (
	"context"

	authproviders "github.com/hearttiles/server/pkg/auth/providers"
	"github.com/hearttiles/server/pkg/game"
	"github.com/hearttiles/server/pkg/game/types"
	"github.com/hearttiles/server/pkg/locks"
	"github.com/hearttiles/server/pkg/log"
	"github.com/hearttiles/server/pkg/messages"
	"github.com/hearttiles/server/pkg/network"
	"github.com/hearttiles/server/pkg/rooms"
	"github.com/hearttiles/server/pkg/workers"
)

// ConnectionRegistry is the subset of hub behavior the dispatcher
// needs: identity bindings and room membership for broadcasts.
type ConnectionRegistry interface {
	BindUser(connID, userID string)
	UserID(connID string) string
	JoinRoom(connID, roomCode string)
	LeaveRoom(connID, roomCode string)
}

type Dispatcher struct {
	registry *rooms.Registry
	engine   *game.Engine
	locks    *locks.Manager
	bus      network.EventBus
	conns    ConnectionRegistry
	auth     authproviders.AuthProvider
	saveChan chan<- workers.SaveRequest

	// identities caches the resolved identity per connection so joins
	// can fill in the display name and email.
	identities map[string]*authproviders.Identity
}

type NewDispatcherOptions struct {
	Registry *rooms.Registry
	Engine   *game.Engine
	Locks    *locks.Manager
	Bus      network.EventBus
	Conns    ConnectionRegistry
	Auth     authproviders.AuthProvider
	SaveChan chan<- workers.SaveRequest
}

func NewDispatcher(opts NewDispatcherOptions) *Dispatcher {
	return &Dispatcher{
		registry:   opts.Registry,
		engine:     opts.Engine,
		locks:      opts.Locks,
		bus:        opts.Bus,
		conns:      opts.Conns,
		auth:       opts.Auth,
		saveChan:   opts.SaveChan,
		identities: make(map[string]*authproviders.Identity),
	}
}

// Run drains the inbound event channel until ctx is done.
func (d *Dispatcher) Run(ctx context.Context, events <-chan network.InboundEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			d.Dispatch(ctx, ev)
		}
	}
}

// Dispatch handles one inbound event to completion.
func (d *Dispatcher) Dispatch(ctx context.Context, ev network.InboundEvent) {
	if ev.Envelope.Type == network.EventDisconnected {
		d.handleDisconnect(ev.ConnID, ev.UserID)
		return
	}
	if ev.Envelope.Type == messages.EventAuthenticate {
		d.handleAuthenticate(ctx, ev)
		return
	}

	userID := d.conns.UserID(ev.ConnID)
	if userID == "" {
		d.sendError(ev.ConnID, "Not authenticated")
		return
	}

	switch ev.Envelope.Type {
	case messages.EventJoinRoom:
		d.handleJoinRoom(ev, userID)
	case messages.EventLeaveRoom:
		d.handleLeaveRoom(ev, userID)
	case messages.EventPlayerReady:
		d.handlePlayerReady(ev, userID)
	case messages.EventDrawHeart:
		d.handleDrawHeart(ev, userID)
	case messages.EventDrawMagic:
		d.handleDrawMagic(ev, userID)
	case messages.EventPlaceHeart:
		d.handlePlaceHeart(ev, userID)
	case messages.EventUseMagicCard:
		d.handleUseMagicCard(ev, userID)
	case messages.EventEndTurn:
		d.handleEndTurn(ev, userID)
	default:
		log.Debug("Unknown event type %q from %s", ev.Envelope.Type, ev.ConnID)
		d.sendError(ev.ConnID, "Unknown event type")
	}
}

func (d *Dispatcher) sendError(connID, message string) {
	d.bus.SendToConnection(connID, messages.EventRoomError, messages.RoomError{Message: message})
}

// sendActionError maps a game or validation error to a room-error on
// the originating connection only.
func (d *Dispatcher) sendActionError(connID string, err error) {
	if _, ok := game.AsStateError(err); ok {
		d.sendError(connID, err.Error())
		return
	}
	if rooms.IsValidationError(err) {
		d.sendError(connID, err.Error())
		return
	}
	log.Error("Unexpected action error: %v", err)
	d.sendError(connID, "Something went wrong")
}

// save enqueues an asynchronous upsert of a room snapshot. A full save
// queue is logged and skipped; the next mutation retries.
func (d *Dispatcher) save(room *types.Room) {
	select {
	case d.saveChan <- workers.SaveRequest{Room: room.Clone()}:
	default:
		log.Warn("Save queue full, skipping persist of room %s", room.Code)
	}
}
