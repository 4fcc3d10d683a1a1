package types

const (
	// ShieldWindow is the number of turns a shield stays active.
	ShieldWindow = 3

	// InitialHeartCards and InitialMagicCards are dealt to each player
	// at game start.
	InitialHeartCards = 3
	InitialMagicCards = 2

	// HeartDeckSize and MagicDeckSize are the deck counters after the
	// initial deal.
	HeartDeckSize = 16
	MagicDeckSize = 8

	// MaxHeartsPerTurn and MaxMagicPerTurn cap card plays within a
	// single turn.
	MaxHeartsPerTurn = 2
	MaxMagicPerTurn  = 1
)

// Deck is a draw-pile counter. Drawn cards are generated on demand, so
// only the remaining count is tracked.
type Deck struct {
	Cards int
}

func (d *Deck) Empty() bool {
	return d.Cards <= 0
}

// Shield protects a player's placed hearts from Wind removal for a
// fixed window of turns.
type Shield struct {
	Active            bool
	RemainingTurns    int
	ActivatedTurn     int
	ActivatedBy       string
	ProtectedPlayerID string
}

// PlayerActions tracks per-turn resource usage. It is reset atomically
// when that player's turn ends.
type PlayerActions struct {
	DrawnHeart     bool
	DrawnMagic     bool
	HeartsPlaced   int
	MagicCardsUsed int
}

func (a *PlayerActions) Reset() {
	*a = PlayerActions{}
}

// GameState holds all in-game state for one room. It is mutated only
// through the game engine.
type GameState struct {
	Tiles         [NumTiles]*Tile
	Deck          Deck
	MagicDeck     Deck
	PlayerHands   map[string][]Card
	Shields       map[string]*Shield
	PlayerActions map[string]*PlayerActions
	CurrentPlayer string
	TurnCount     int
	GameStarted   bool
	GameEnded     bool
	EndReason     string
}

func NewGameState() *GameState {
	return &GameState{
		PlayerHands:   make(map[string][]Card),
		Shields:       make(map[string]*Shield),
		PlayerActions: make(map[string]*PlayerActions),
	}
}

// Actions returns the per-turn counters for a player, creating them on
// first use.
func (gs *GameState) Actions(userID string) *PlayerActions {
	a, ok := gs.PlayerActions[userID]
	if !ok {
		a = &PlayerActions{}
		gs.PlayerActions[userID] = a
	}
	return a
}

// HandIndex returns the position of a card in a player's hand, or -1.
func (gs *GameState) HandIndex(userID, cardID string) int {
	for i, c := range gs.PlayerHands[userID] {
		if c.CardID() == cardID {
			return i
		}
	}
	return -1
}

// RemoveFromHand removes a card from a player's hand by index,
// preserving hand order.
func (gs *GameState) RemoveFromHand(userID string, i int) Card {
	hand := gs.PlayerHands[userID]
	card := hand[i]
	gs.PlayerHands[userID] = append(hand[:i], hand[i+1:]...)
	return card
}

// Tile returns the tile with the given ID, or nil.
func (gs *GameState) Tile(tileID int) *Tile {
	for _, t := range gs.Tiles {
		if t != nil && t.ID == tileID {
			return t
		}
	}
	return nil
}

// Clone returns a deep copy of the game state. Cards are value types
// behind the Card interface, so hand slices are copied shallowly.
func (gs *GameState) Clone() *GameState {
	c := &GameState{
		Deck:          gs.Deck,
		MagicDeck:     gs.MagicDeck,
		PlayerHands:   make(map[string][]Card, len(gs.PlayerHands)),
		Shields:       make(map[string]*Shield, len(gs.Shields)),
		PlayerActions: make(map[string]*PlayerActions, len(gs.PlayerActions)),
		CurrentPlayer: gs.CurrentPlayer,
		TurnCount:     gs.TurnCount,
		GameStarted:   gs.GameStarted,
		GameEnded:     gs.GameEnded,
		EndReason:     gs.EndReason,
	}
	for i, t := range gs.Tiles {
		if t != nil {
			c.Tiles[i] = t.clone()
		}
	}
	for id, hand := range gs.PlayerHands {
		c.PlayerHands[id] = append([]Card(nil), hand...)
	}
	for id, s := range gs.Shields {
		shield := *s
		c.Shields[id] = &shield
	}
	for id, a := range gs.PlayerActions {
		actions := *a
		c.PlayerActions[id] = &actions
	}
	return c
}
