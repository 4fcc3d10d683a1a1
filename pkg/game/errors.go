package game

import "errors"

// StateErrorCode identifies why a game action was rejected.
type StateErrorCode string

const (
	CodeNotYourTurn    StateErrorCode = "NotYourTurn"
	CodeGameNotStarted StateErrorCode = "GameNotStarted"
	CodeLimitExceeded  StateErrorCode = "LimitExceeded"
	CodeTileOccupied   StateErrorCode = "TileOccupied"
	CodeCardNotInHand  StateErrorCode = "CardNotInHand"
	CodeInvalidTarget  StateErrorCode = "InvalidTarget"
	CodeProtected      StateErrorCode = "Protected"
	CodeDeckEmpty      StateErrorCode = "DeckEmpty"
	CodeDrawRequired   StateErrorCode = "DrawRequired"
)

// StateError is a rejected game action. It surfaces only to the
// originating connection and never affects other players.
type StateError struct {
	Code    StateErrorCode
	Message string
}

func (e *StateError) Error() string {
	return e.Message
}

func stateError(code StateErrorCode, message string) error {
	return &StateError{Code: code, Message: message}
}

// AsStateError unwraps a StateError from err, if present.
func AsStateError(err error) (*StateError, bool) {
	var se *StateError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// IsCode reports whether err is a StateError with the given code.
func IsCode(err error, code StateErrorCode) bool {
	se, ok := AsStateError(err)
	return ok && se.Code == code
}
