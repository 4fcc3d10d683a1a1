package repositories

import (
	"encoding/json"
	"fmt"

	"github.com/hearttiles/server/pkg/cards"
	"github.com/hearttiles/server/pkg/game/types"
)

// Document shapes for the persisted room. Map-typed fields serialize
// as plain key/value objects and rehydrate to maps on load. Card
// variants round-trip through a type tag.

type roomDocument struct {
	Code       string            `json:"code"`
	Players    []playerDocument  `json:"players"`
	MaxPlayers int               `json:"maxPlayers"`
	GameState  gameStateDocument `json:"gameState"`
}

type playerDocument struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Ready bool   `json:"ready"`
	Score int    `json:"score"`
}

type gameStateDocument struct {
	Tiles         []tileDocument              `json:"tiles"`
	GameStarted   bool                        `json:"gameStarted"`
	GameEnded     bool                        `json:"gameEnded"`
	EndReason     string                      `json:"endReason,omitempty"`
	CurrentPlayer string                      `json:"currentPlayer,omitempty"`
	Deck          deckDocument                `json:"deck"`
	MagicDeck     deckDocument                `json:"magicDeck"`
	PlayerHands   map[string][]cardDocument   `json:"playerHands"`
	Shields       map[string]shieldDocument   `json:"shields"`
	TurnCount     int                         `json:"turnCount"`
	PlayerActions map[string]actionsDocument  `json:"playerActions"`
}

type deckDocument struct {
	Cards int `json:"cards"`
}

type tileDocument struct {
	ID          int                  `json:"id"`
	Color       string               `json:"color"`
	Emoji       string               `json:"emoji"`
	PlacedHeart *placedHeartDocument `json:"placedHeart,omitempty"`
}

type placedHeartDocument struct {
	Color             string `json:"color"`
	Value             int    `json:"value"`
	PlacedBy          string `json:"placedBy"`
	Score             int    `json:"score"`
	OriginalTileColor string `json:"originalTileColor"`
	OriginalTileEmoji string `json:"originalTileEmoji"`
}

type cardDocument struct {
	Type  string `json:"type"`
	ID    string `json:"id"`
	Color string `json:"color,omitempty"`
	Value int    `json:"value,omitempty"`
}

type shieldDocument struct {
	Active            bool   `json:"active"`
	RemainingTurns    int    `json:"remainingTurns"`
	ActivatedTurn     int    `json:"activatedTurn"`
	ActivatedBy       string `json:"activatedBy"`
	ProtectedPlayerID string `json:"protectedPlayerId"`
}

type actionsDocument struct {
	DrawnHeart     bool `json:"drawnHeart"`
	DrawnMagic     bool `json:"drawnMagic"`
	HeartsPlaced   int  `json:"heartsPlaced"`
	MagicCardsUsed int  `json:"magicCardsUsed"`
}

// EncodeRoom serializes a room to its persisted JSON document.
func EncodeRoom(room *types.Room) ([]byte, error) {
	doc := roomDocument{
		Code:       room.Code,
		MaxPlayers: room.MaxPlayers,
	}
	for _, p := range room.Players {
		doc.Players = append(doc.Players, playerDocument{
			ID:    p.ID,
			Name:  p.Name,
			Email: p.Email,
			Ready: p.Ready,
			Score: p.Score,
		})
	}

	gs := room.GameState
	doc.GameState = gameStateDocument{
		GameStarted:   gs.GameStarted,
		GameEnded:     gs.GameEnded,
		EndReason:     gs.EndReason,
		CurrentPlayer: gs.CurrentPlayer,
		Deck:          deckDocument{Cards: gs.Deck.Cards},
		MagicDeck:     deckDocument{Cards: gs.MagicDeck.Cards},
		PlayerHands:   make(map[string][]cardDocument, len(gs.PlayerHands)),
		Shields:       make(map[string]shieldDocument, len(gs.Shields)),
		TurnCount:     gs.TurnCount,
		PlayerActions: make(map[string]actionsDocument, len(gs.PlayerActions)),
	}
	for _, t := range gs.Tiles {
		if t == nil {
			continue
		}
		td := tileDocument{ID: t.ID, Color: string(t.Color), Emoji: t.Emoji}
		if t.PlacedHeart != nil {
			td.PlacedHeart = &placedHeartDocument{
				Color:             string(t.PlacedHeart.Color),
				Value:             t.PlacedHeart.Value,
				PlacedBy:          t.PlacedHeart.PlacedBy,
				Score:             t.PlacedHeart.Score,
				OriginalTileColor: string(t.PlacedHeart.OriginalTileColor),
				OriginalTileEmoji: t.PlacedHeart.OriginalTileEmoji,
			}
		}
		doc.GameState.Tiles = append(doc.GameState.Tiles, td)
	}
	for id, hand := range gs.PlayerHands {
		docs := make([]cardDocument, 0, len(hand))
		for _, c := range hand {
			cd, err := encodeCard(c)
			if err != nil {
				return nil, err
			}
			docs = append(docs, cd)
		}
		doc.GameState.PlayerHands[id] = docs
	}
	for id, s := range gs.Shields {
		doc.GameState.Shields[id] = shieldDocument{
			Active:            s.Active,
			RemainingTurns:    s.RemainingTurns,
			ActivatedTurn:     s.ActivatedTurn,
			ActivatedBy:       s.ActivatedBy,
			ProtectedPlayerID: s.ProtectedPlayerID,
		}
	}
	for id, a := range gs.PlayerActions {
		doc.GameState.PlayerActions[id] = actionsDocument{
			DrawnHeart:     a.DrawnHeart,
			DrawnMagic:     a.DrawnMagic,
			HeartsPlaced:   a.HeartsPlaced,
			MagicCardsUsed: a.MagicCardsUsed,
		}
	}

	return json.Marshal(doc)
}

// DecodeRoom rehydrates a room from its persisted JSON document.
func DecodeRoom(data []byte) (*types.Room, error) {
	var doc roomDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal room document: %v", err)
	}

	room := types.NewRoom(doc.Code)
	if doc.MaxPlayers > 0 {
		room.MaxPlayers = doc.MaxPlayers
	}
	for _, p := range doc.Players {
		room.Players = append(room.Players, &types.Player{
			ID:    p.ID,
			Name:  p.Name,
			Email: p.Email,
			Ready: p.Ready,
			Score: p.Score,
		})
	}

	gs := room.GameState
	gs.GameStarted = doc.GameState.GameStarted
	gs.GameEnded = doc.GameState.GameEnded
	gs.EndReason = doc.GameState.EndReason
	gs.CurrentPlayer = doc.GameState.CurrentPlayer
	gs.Deck = types.Deck{Cards: doc.GameState.Deck.Cards}
	gs.MagicDeck = types.Deck{Cards: doc.GameState.MagicDeck.Cards}
	gs.TurnCount = doc.GameState.TurnCount

	for i, td := range doc.GameState.Tiles {
		if i >= types.NumTiles {
			break
		}
		tile := &types.Tile{ID: td.ID, Color: types.Color(td.Color), Emoji: td.Emoji}
		if td.PlacedHeart != nil {
			tile.PlacedHeart = &types.PlacedHeart{
				Color:             types.Color(td.PlacedHeart.Color),
				Value:             td.PlacedHeart.Value,
				PlacedBy:          td.PlacedHeart.PlacedBy,
				Score:             td.PlacedHeart.Score,
				OriginalTileColor: types.Color(td.PlacedHeart.OriginalTileColor),
				OriginalTileEmoji: td.PlacedHeart.OriginalTileEmoji,
			}
		}
		gs.Tiles[i] = tile
	}
	for id, hand := range doc.GameState.PlayerHands {
		decoded := make([]types.Card, 0, len(hand))
		for _, cd := range hand {
			card, err := decodeCard(cd)
			if err != nil {
				return nil, err
			}
			decoded = append(decoded, card)
		}
		gs.PlayerHands[id] = decoded
	}
	for id, s := range doc.GameState.Shields {
		gs.Shields[id] = &types.Shield{
			Active:            s.Active,
			RemainingTurns:    s.RemainingTurns,
			ActivatedTurn:     s.ActivatedTurn,
			ActivatedBy:       s.ActivatedBy,
			ProtectedPlayerID: s.ProtectedPlayerID,
		}
	}
	for id, a := range doc.GameState.PlayerActions {
		gs.PlayerActions[id] = &types.PlayerActions{
			DrawnHeart:     a.DrawnHeart,
			DrawnMagic:     a.DrawnMagic,
			HeartsPlaced:   a.HeartsPlaced,
			MagicCardsUsed: a.MagicCardsUsed,
		}
	}

	return room, nil
}

func encodeCard(c types.Card) (cardDocument, error) {
	switch card := c.(type) {
	case cards.HeartCard:
		return cardDocument{Type: string(types.CardTypeHeart), ID: card.ID, Color: string(card.Color), Value: card.Value}, nil
	case cards.WindCard:
		return cardDocument{Type: string(types.CardTypeWind), ID: card.ID}, nil
	case cards.RecycleCard:
		return cardDocument{Type: string(types.CardTypeRecycle), ID: card.ID}, nil
	case cards.ShieldCard:
		return cardDocument{Type: string(types.CardTypeShield), ID: card.ID}, nil
	default:
		return cardDocument{}, fmt.Errorf("unknown card variant %T", c)
	}
}

func decodeCard(cd cardDocument) (types.Card, error) {
	switch types.CardType(cd.Type) {
	case types.CardTypeHeart:
		return cards.HeartCard{ID: cd.ID, Color: types.Color(cd.Color), Value: cd.Value}, nil
	case types.CardTypeWind:
		return cards.WindCard{ID: cd.ID}, nil
	case types.CardTypeRecycle:
		return cards.RecycleCard{ID: cd.ID}, nil
	case types.CardTypeShield:
		return cards.ShieldCard{ID: cd.ID}, nil
	default:
		return nil, fmt.Errorf("unknown card type %q in document", cd.Type)
	}
}
