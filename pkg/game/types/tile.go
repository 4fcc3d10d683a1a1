package types

// Color is shared by tiles and heart cards. Tiles may additionally be
// white; hearts are never white.
type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorWhite  Color = "white"
)

// NumTiles is the fixed size of the board.
const NumTiles = 8

type Tile struct {
	ID          int
	Color       Color
	Emoji       string
	PlacedHeart *PlacedHeart
}

// PlacedHeart records a heart sitting on a tile, along with enough of
// the tile's pre-placement state to restore it if the heart is removed.
type PlacedHeart struct {
	Color             Color
	Value             int
	PlacedBy          string
	Score             int
	OriginalTileColor Color
	OriginalTileEmoji string
}

// Occupied reports whether a heart is currently placed on the tile.
func (t *Tile) Occupied() bool {
	return t.PlacedHeart != nil
}

// TileEmoji returns the board emoji for a tile color.
func TileEmoji(c Color) string {
	switch c {
	case ColorRed:
		return "🟥"
	case ColorYellow:
		return "🟨"
	case ColorGreen:
		return "🟩"
	case ColorWhite:
		return "⬜"
	default:
		return "⬜"
	}
}

// HeartEmoji returns the hand emoji for a heart color.
func HeartEmoji(c Color) string {
	switch c {
	case ColorRed:
		return "❤️"
	case ColorYellow:
		return "💛"
	case ColorGreen:
		return "💚"
	default:
		return "❤️"
	}
}

func (t *Tile) clone() *Tile {
	c := *t
	if t.PlacedHeart != nil {
		heart := *t.PlacedHeart
		c.PlacedHeart = &heart
	}
	return &c
}
