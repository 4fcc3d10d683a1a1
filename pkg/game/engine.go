package game

import (
	"math/rand"
	"time"

	"github.com/hearttiles/server/pkg/cards"
	"github.com/hearttiles/server/pkg/game/types"
)

// End reasons reported by CheckEndConditions.
const (
	EndReasonTilesFilled    = "All tiles are filled"
	EndReasonBothDecksEmpty = "Both decks are empty"
	EndReasonHeartDeckEmpty = "Heart deck is empty"
	EndReasonMagicDeckEmpty = "Magic deck is empty"
)

// Engine orchestrates room lifecycle, turn transitions, draw and
// placement limits, and end-condition evaluation. All mutation of a
// GameState flows through it; callers serialize access per room.
type Engine struct {
	rng *rand.Rand
}

// NewEngine creates a new Engine. A nil rng gets a time-seeded source;
// tests inject a fixed seed.
func NewEngine(rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rng: rng}
}

// StartResult describes a freshly started game.
type StartResult struct {
	CurrentPlayer string
	TurnCount     int
}

// Start transitions a READY room into IN_PROGRESS: generates tiles,
// deals hands, picks a random starting player, and sets TurnCount to 1.
func (e *Engine) Start(room *types.Room) (*StartResult, error) {
	gs := room.GameState
	if gs.GameStarted {
		return nil, stateError(CodeGameNotStarted, "Game has already started")
	}
	if room.Phase() != types.PhaseReady {
		return nil, stateError(CodeGameNotStarted, "Both players must be ready to start")
	}

	gs.Tiles = cards.NewTiles(e.rng)
	for _, p := range room.Players {
		hand := make([]types.Card, 0, types.InitialHeartCards+types.InitialMagicCards)
		for i := 0; i < types.InitialHeartCards; i++ {
			hand = append(hand, cards.NewHeart(e.rng))
		}
		for i := 0; i < types.InitialMagicCards; i++ {
			hand = append(hand, cards.NewMagic(e.rng))
		}
		gs.PlayerHands[p.ID] = hand
		gs.PlayerActions[p.ID] = &types.PlayerActions{}
	}
	gs.Deck = types.Deck{Cards: types.HeartDeckSize}
	gs.MagicDeck = types.Deck{Cards: types.MagicDeckSize}
	gs.CurrentPlayer = room.Players[e.rng.Intn(len(room.Players))].ID
	gs.TurnCount = 1
	gs.GameStarted = true

	return &StartResult{CurrentPlayer: gs.CurrentPlayer, TurnCount: gs.TurnCount}, nil
}

// ValidateTurn rejects the action unless the game has started and the
// requester is the current player.
func (e *Engine) ValidateTurn(room *types.Room, userID string) error {
	gs := room.GameState
	if !gs.GameStarted || gs.GameEnded {
		return stateError(CodeGameNotStarted, "Game has not started")
	}
	if gs.CurrentPlayer != userID {
		return stateError(CodeNotYourTurn, "It is not your turn")
	}
	return nil
}

// DrawHeart draws one heart card. At most one heart draw per player
// per turn.
func (e *Engine) DrawHeart(room *types.Room, userID string) (types.Card, error) {
	if err := e.ValidateTurn(room, userID); err != nil {
		return nil, err
	}
	gs := room.GameState
	actions := gs.Actions(userID)
	if actions.DrawnHeart {
		return nil, stateError(CodeLimitExceeded, "You have already drawn a heart card this turn")
	}
	if gs.Deck.Empty() {
		return nil, stateError(CodeDeckEmpty, "The heart deck is empty")
	}

	card := cards.NewHeart(e.rng)
	gs.Deck.Cards--
	gs.PlayerHands[userID] = append(gs.PlayerHands[userID], card)
	actions.DrawnHeart = true
	return card, nil
}

// DrawMagic draws one magic card. At most one magic draw per player
// per turn.
func (e *Engine) DrawMagic(room *types.Room, userID string) (types.Card, error) {
	if err := e.ValidateTurn(room, userID); err != nil {
		return nil, err
	}
	gs := room.GameState
	actions := gs.Actions(userID)
	if actions.DrawnMagic {
		return nil, stateError(CodeLimitExceeded, "You have already drawn a magic card this turn")
	}
	if gs.MagicDeck.Empty() {
		return nil, stateError(CodeDeckEmpty, "The magic deck is empty")
	}

	card := cards.NewMagic(e.rng)
	gs.MagicDeck.Cards--
	gs.PlayerHands[userID] = append(gs.PlayerHands[userID], card)
	actions.DrawnMagic = true
	return card, nil
}

// Placement describes a successful heart placement.
type Placement struct {
	Card       cards.HeartCard
	Tile       *types.Tile
	Score      int
	TotalScore int
}

// PlaceHeart moves a heart card from the player's hand onto a tile and
// scores it. At most two hearts per player per turn.
func (e *Engine) PlaceHeart(room *types.Room, userID, heartID string, tileID int) (*Placement, error) {
	if err := e.ValidateTurn(room, userID); err != nil {
		return nil, err
	}
	gs := room.GameState
	actions := gs.Actions(userID)
	if actions.HeartsPlaced >= types.MaxHeartsPerTurn {
		return nil, stateError(CodeLimitExceeded, "You have already placed the maximum number of hearts this turn")
	}

	i := gs.HandIndex(userID, heartID)
	if i < 0 {
		return nil, stateError(CodeCardNotInHand, "Heart card not in hand")
	}
	heart, ok := gs.PlayerHands[userID][i].(cards.HeartCard)
	if !ok {
		return nil, stateError(CodeCardNotInHand, "That card is not a heart card")
	}

	tile := gs.Tile(tileID)
	if tile == nil {
		return nil, stateError(CodeInvalidTarget, "No such tile")
	}
	if tile.Occupied() {
		return nil, stateError(CodeTileOccupied, "The tile is already occupied")
	}
	if !heart.CanTargetTile(tile) {
		return nil, stateError(CodeInvalidTarget, "The heart cannot be placed on that tile")
	}

	score := heart.Score(tile)
	gs.RemoveFromHand(userID, i)
	tile.PlacedHeart = &types.PlacedHeart{
		Color:             heart.Color,
		Value:             heart.Value,
		PlacedBy:          userID,
		Score:             score,
		OriginalTileColor: tile.Color,
		OriginalTileEmoji: tile.Emoji,
	}
	player := room.Player(userID)
	player.Score += score
	actions.HeartsPlaced++

	return &Placement{Card: heart, Tile: tile, Score: score, TotalScore: player.Score}, nil
}

// MagicResult describes a successful magic card use. Exactly one of
// the effect fields is set, matching the card variant.
type MagicResult struct {
	Card    types.Card
	Wind    *cards.WindEffect
	Recycle *cards.RecycleEffect
	Shield  *cards.ShieldEffect
}

// UseMagicCard dispatches a magic card by variant and applies its
// effect. A wind against a shield-protected player fails with
// Protected and the card is not consumed. At most one magic card per
// player per turn.
func (e *Engine) UseMagicCard(room *types.Room, userID, cardID string, targetTileID int) (*MagicResult, error) {
	if err := e.ValidateTurn(room, userID); err != nil {
		return nil, err
	}
	gs := room.GameState
	actions := gs.Actions(userID)
	if actions.MagicCardsUsed >= types.MaxMagicPerTurn {
		return nil, stateError(CodeLimitExceeded, "You have already used a magic card this turn")
	}

	i := gs.HandIndex(userID, cardID)
	if i < 0 {
		return nil, stateError(CodeCardNotInHand, "Magic card not in hand")
	}

	result := &MagicResult{}
	switch card := gs.PlayerHands[userID][i].(type) {
	case cards.WindCard:
		tile := gs.Tile(targetTileID)
		if tile == nil {
			return nil, stateError(CodeInvalidTarget, "No such tile")
		}
		if !card.CanTargetTile(tile, userID) {
			return nil, stateError(CodeInvalidTarget, "The wind cannot target that tile")
		}
		victim := tile.PlacedHeart.PlacedBy
		if cards.ShieldActive(gs.Shields[victim], gs.TurnCount) {
			return nil, stateError(CodeProtected, "That player's hearts are protected by a shield")
		}
		effect := card.Execute(tile)
		tile.PlacedHeart = nil
		tile.Color = effect.RestoredColor
		tile.Emoji = effect.RestoredEmoji
		if owner := room.Player(effect.OwnerID); owner != nil {
			owner.Score -= effect.RemovedHeart.Score
		}
		result.Card = card
		result.Wind = &effect

	case cards.RecycleCard:
		tile := gs.Tile(targetTileID)
		if tile == nil {
			return nil, stateError(CodeInvalidTarget, "No such tile")
		}
		if !card.CanTargetTile(tile) {
			return nil, stateError(CodeInvalidTarget, "The recycle cannot target that tile")
		}
		effect := card.Execute(tile)
		tile.Color = effect.NewColor
		tile.Emoji = effect.NewEmoji
		result.Card = card
		result.Recycle = &effect

	case cards.ShieldCard:
		effect, err := card.Execute(gs, userID)
		if err != nil {
			return nil, stateError(CodeProtected, "An opponent's shield is already active")
		}
		shield := effect.Shield
		gs.Shields[userID] = &shield
		result.Card = card
		result.Shield = &effect

	default:
		return nil, stateError(CodeCardNotInHand, "That card is not a magic card")
	}

	gs.RemoveFromHand(userID, i)
	actions.MagicCardsUsed++
	return result, nil
}

// TurnChange describes a completed turn transition.
type TurnChange struct {
	CurrentPlayer  string
	TurnCount      int
	ExpiredShields []string
}

// EndTurn ends the current player's turn. While a deck still has
// cards, the matching draw is required first; an exhausted deck waives
// its requirement. On success the player's per-turn counters reset,
// the turn passes round-robin, the turn count increments, and shield
// windows tick down.
func (e *Engine) EndTurn(room *types.Room, userID string) (*TurnChange, error) {
	if err := e.ValidateTurn(room, userID); err != nil {
		return nil, err
	}
	gs := room.GameState
	actions := gs.Actions(userID)
	if !gs.Deck.Empty() && !actions.DrawnHeart {
		return nil, stateError(CodeDrawRequired, "You must draw a heart card before ending your turn")
	}
	if !gs.MagicDeck.Empty() && !actions.DrawnMagic {
		return nil, stateError(CodeDrawRequired, "You must draw a magic card before ending your turn")
	}

	actions.Reset()
	gs.CurrentPlayer = e.nextPlayer(room, userID)
	gs.TurnCount++

	var expired []string
	for owner, shield := range gs.Shields {
		shield.RemainingTurns--
		if shield.RemainingTurns <= 0 {
			delete(gs.Shields, owner)
			expired = append(expired, owner)
		}
	}

	return &TurnChange{
		CurrentPlayer:  gs.CurrentPlayer,
		TurnCount:      gs.TurnCount,
		ExpiredShields: expired,
	}, nil
}

func (e *Engine) nextPlayer(room *types.Room, userID string) string {
	for i, p := range room.Players {
		if p.ID == userID {
			return room.Players[(i+1)%len(room.Players)].ID
		}
	}
	return userID
}

// CheckEndConditions evaluates whether the game is over. A full board
// always ends the game; deck exhaustion is suppressed during the grace
// window so an action that empties a deck still broadcasts before the
// game ends.
func (e *Engine) CheckEndConditions(room *types.Room, graceForEmptyDeck bool) (string, bool) {
	gs := room.GameState
	filled := true
	for _, t := range gs.Tiles {
		if t == nil || !t.Occupied() {
			filled = false
			break
		}
	}
	if filled {
		return EndReasonTilesFilled, true
	}
	if graceForEmptyDeck {
		return "", false
	}
	switch {
	case gs.Deck.Empty() && gs.MagicDeck.Empty():
		return EndReasonBothDecksEmpty, true
	case gs.Deck.Empty():
		return EndReasonHeartDeckEmpty, true
	case gs.MagicDeck.Empty():
		return EndReasonMagicDeckEmpty, true
	}
	return "", false
}

// GameResult describes a finished game.
type GameResult struct {
	WinnerID string
	IsTie    bool
	Reason   string
	Scores   map[string]int
}

// EndGame marks the room ended and computes the winner. A score tie
// produces no winner.
func (e *Engine) EndGame(room *types.Room, reason string) *GameResult {
	gs := room.GameState
	gs.GameEnded = true
	gs.EndReason = reason

	result := &GameResult{Reason: reason, Scores: make(map[string]int)}
	best := 0
	for _, p := range room.Players {
		result.Scores[p.ID] = p.Score
		if result.WinnerID == "" || p.Score > best {
			result.WinnerID = p.ID
			best = p.Score
		} else if p.Score == best {
			result.IsTie = true
			result.WinnerID = ""
		}
	}
	return result
}
