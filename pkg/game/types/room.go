package types

// Phase describes the lifecycle stage of a room.
type Phase string

const (
	PhaseWaiting    Phase = "waiting"
	PhaseReady      Phase = "ready"
	PhaseInProgress Phase = "in_progress"
	PhaseEnded      Phase = "ended"
)

const (
	// RoomCodeLength is the required length of a room code.
	RoomCodeLength = 6
	// DefaultMaxPlayers is the player capacity of a room.
	DefaultMaxPlayers = 2
)

// Room is the aggregate owning all live state for one game room.
type Room struct {
	Code       string
	Players    []*Player
	MaxPlayers int
	GameState  *GameState
}

type Player struct {
	ID    string
	Name  string
	Email string
	Ready bool
	Score int
}

func NewRoom(code string) *Room {
	return &Room{
		Code:       code,
		MaxPlayers: DefaultMaxPlayers,
		GameState:  NewGameState(),
	}
}

// Player returns the roster entry for the given user, or nil.
func (r *Room) Player(userID string) *Player {
	for _, p := range r.Players {
		if p.ID == userID {
			return p
		}
	}
	return nil
}

// Opponent returns the other player in the room, or nil.
func (r *Room) Opponent(userID string) *Player {
	for _, p := range r.Players {
		if p.ID != userID {
			return p
		}
	}
	return nil
}

// Phase reports which lifecycle stage the room is in. Exactly one
// phase holds at any time.
func (r *Room) Phase() Phase {
	switch {
	case r.GameState.GameEnded:
		return PhaseEnded
	case r.GameState.GameStarted:
		return PhaseInProgress
	case len(r.Players) == r.MaxPlayers && r.allReady():
		return PhaseReady
	default:
		return PhaseWaiting
	}
}

func (r *Room) allReady() bool {
	for _, p := range r.Players {
		if !p.Ready {
			return false
		}
	}
	return len(r.Players) > 0
}

// Clone returns a deep copy of the room, safe to hand to another
// goroutine while the original keeps being mutated.
func (r *Room) Clone() *Room {
	c := &Room{
		Code:       r.Code,
		MaxPlayers: r.MaxPlayers,
		GameState:  r.GameState.Clone(),
	}
	for _, p := range r.Players {
		player := *p
		c.Players = append(c.Players, &player)
	}
	return c
}
