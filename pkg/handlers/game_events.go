package handlers

import (
	"encoding/json"

	"github.com/hearttiles/server/pkg/game"
	"github.com/hearttiles/server/pkg/game/types"
	"github.com/hearttiles/server/pkg/log"
	"github.com/hearttiles/server/pkg/messages"
	"github.com/hearttiles/server/pkg/network"
	"github.com/hearttiles/server/pkg/rooms"
)

func (d *Dispatcher) handleDrawHeart(ev network.InboundEvent, userID string) {
	room, code, ok := d.roomFor(ev, messages.EventDrawHeart)
	if !ok {
		return
	}
	if !d.locks.Acquire(code, userID) {
		log.Debug("Dropping draw-heart for room %s: lock held", code)
		return
	}
	defer d.locks.Release(code, userID)

	card, err := d.engine.DrawHeart(room, userID)
	if err != nil {
		d.sendActionError(ev.ConnID, err)
		return
	}
	d.bus.BroadcastToRoom(code, messages.EventHeartDrawn, messages.CardDrawn{
		RoomCode:      code,
		UserID:        userID,
		Card:          messages.NewCardView(card),
		DeckRemaining: room.GameState.Deck.Cards,
	})
	d.afterAction(room, code, true)
}

func (d *Dispatcher) handleDrawMagic(ev network.InboundEvent, userID string) {
	room, code, ok := d.roomFor(ev, messages.EventDrawMagic)
	if !ok {
		return
	}
	if !d.locks.Acquire(code, userID) {
		log.Debug("Dropping draw-magic-card for room %s: lock held", code)
		return
	}
	defer d.locks.Release(code, userID)

	card, err := d.engine.DrawMagic(room, userID)
	if err != nil {
		d.sendActionError(ev.ConnID, err)
		return
	}
	d.bus.BroadcastToRoom(code, messages.EventMagicDrawn, messages.CardDrawn{
		RoomCode:      code,
		UserID:        userID,
		Card:          messages.NewCardView(card),
		DeckRemaining: room.GameState.MagicDeck.Cards,
	})
	d.afterAction(room, code, true)
}

func (d *Dispatcher) handlePlaceHeart(ev network.InboundEvent, userID string) {
	var req messages.PlaceHeartRequest
	if err := json.Unmarshal(ev.Envelope.Payload, &req); err != nil {
		d.sendError(ev.ConnID, "Malformed place-heart payload")
		return
	}
	code, err := rooms.NormalizeCode(req.RoomCode)
	if err != nil {
		d.sendActionError(ev.ConnID, err)
		return
	}
	room, found := d.registry.Get(code)
	if !found {
		d.sendError(ev.ConnID, "Room not found")
		return
	}
	if !d.locks.Acquire(code, userID) {
		log.Debug("Dropping place-heart for room %s: lock held", code)
		return
	}
	defer d.locks.Release(code, userID)

	placement, err := d.engine.PlaceHeart(room, userID, req.HeartID, req.TileID)
	if err != nil {
		d.sendActionError(ev.ConnID, err)
		return
	}
	d.bus.BroadcastToRoom(code, messages.EventHeartPlaced, messages.HeartPlaced{
		RoomCode:   code,
		UserID:     userID,
		Tile:       messages.NewTileView(placement.Tile),
		Score:      placement.Score,
		TotalScore: placement.TotalScore,
	})
	d.afterAction(room, code, true)
}

func (d *Dispatcher) handleUseMagicCard(ev network.InboundEvent, userID string) {
	var req messages.UseMagicCardRequest
	if err := json.Unmarshal(ev.Envelope.Payload, &req); err != nil {
		d.sendError(ev.ConnID, "Malformed use-magic-card payload")
		return
	}
	code, err := rooms.NormalizeCode(req.RoomCode)
	if err != nil {
		d.sendActionError(ev.ConnID, err)
		return
	}
	room, found := d.registry.Get(code)
	if !found {
		d.sendError(ev.ConnID, "Room not found")
		return
	}
	if !d.locks.Acquire(code, userID) {
		log.Debug("Dropping use-magic-card for room %s: lock held", code)
		return
	}
	defer d.locks.Release(code, userID)

	targetTileID := -1
	if req.TargetTileID != nil {
		targetTileID = *req.TargetTileID
	}
	result, err := d.engine.UseMagicCard(room, userID, req.CardID, targetTileID)
	if err != nil {
		d.sendActionError(ev.ConnID, err)
		return
	}

	used := messages.MagicUsed{
		RoomCode: code,
		UserID:   userID,
		CardType: string(result.Card.Type()),
	}
	switch {
	case result.Wind != nil:
		tile := room.GameState.Tile(targetTileID)
		view := messages.NewTileView(tile)
		used.Tile = &view
		used.VictimID = result.Wind.OwnerID
		used.ScoreDelta = -result.Wind.RemovedHeart.Score
	case result.Recycle != nil:
		tile := room.GameState.Tile(result.Recycle.TileID)
		view := messages.NewTileView(tile)
		used.Tile = &view
	case result.Shield != nil:
		used.Reinforced = result.Shield.Reinforced
	}
	d.bus.BroadcastToRoom(code, messages.EventMagicUsed, used)
	d.afterAction(room, code, true)
}

func (d *Dispatcher) handleEndTurn(ev network.InboundEvent, userID string) {
	room, code, ok := d.roomFor(ev, messages.EventEndTurn)
	if !ok {
		return
	}
	if !d.locks.Acquire(code, userID) {
		log.Debug("Dropping end-turn for room %s: lock held", code)
		return
	}
	defer d.locks.Release(code, userID)

	change, err := d.engine.EndTurn(room, userID)
	if err != nil {
		d.sendActionError(ev.ConnID, err)
		return
	}
	d.bus.BroadcastToRoom(code, messages.EventTurnChanged, messages.TurnChanged{
		RoomCode:       code,
		CurrentPlayer:  change.CurrentPlayer,
		TurnCount:      change.TurnCount,
		ExpiredShields: change.ExpiredShields,
	})
	d.afterAction(room, code, false)
}

// afterAction evaluates end conditions and persists. The grace flag
// suppresses deck-exhaustion endings for the action that emptied the
// deck, so its broadcast lands before game-over; the next end-turn
// evaluates without grace.
func (d *Dispatcher) afterAction(room *types.Room, code string, graceForEmptyDeck bool) {
	if reason, ended := d.engine.CheckEndConditions(room, graceForEmptyDeck); ended {
		result := d.engine.EndGame(room, reason)
		d.broadcastGameOver(code, result)
	}
	d.save(room)
}

func (d *Dispatcher) broadcastGameOver(code string, result *game.GameResult) {
	log.Info("Game over in room %s: %s", code, result.Reason)
	d.bus.BroadcastToRoom(code, messages.EventGameOver, messages.GameOver{
		RoomCode: code,
		WinnerID: result.WinnerID,
		IsTie:    result.IsTie,
		Reason:   result.Reason,
		Scores:   result.Scores,
	})
}
