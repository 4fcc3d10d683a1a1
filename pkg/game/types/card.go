package types

// CardType tags the closed set of card variants.
type CardType string

const (
	CardTypeHeart   CardType = "heart"
	CardTypeWind    CardType = "wind"
	CardTypeRecycle CardType = "recycle"
	CardTypeShield  CardType = "shield"
)

// Card is the closed variant set held in player hands. Concrete
// variants live in the cards package; implementations are value types
// so a hand slice can be copied shallowly.
type Card interface {
	CardID() string
	Type() CardType
	Emoji() string
}
