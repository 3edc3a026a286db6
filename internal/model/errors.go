package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application
var (
	// Directory errors
	ErrUserNotFound = errors.New("user not found")

	// Room errors
	ErrRoomNotFound  = errors.New("room not found")
	ErrRoomFull      = errors.New("room already has two players")
	ErrSelfJoin      = errors.New("cannot join own room")
	ErrAlreadyInRoom = errors.New("user is already in a room")

	// Placement errors
	ErrOutOfBounds    = errors.New("ship out of bounds")
	ErrOverlap        = errors.New("ship overlaps or touches another ship")
	ErrWrongShipCount = errors.New("wrong number of ships")
	ErrFleetCommitted = errors.New("fleet already committed")

	// Attack errors
	ErrShotOutOfBounds = errors.New("shot out of bounds")
	ErrWrongPhase      = errors.New("operation not valid in current phase")
	ErrNotYourTurn     = errors.New("not this player's turn")
	ErrNotAPlayer      = errors.New("user is not a player in this session")
	ErrAlreadyResolved = errors.New("cell already resolved")
	ErrBoardExhausted  = errors.New("no unresolved cells remain")

	// Protocol errors
	ErrUnknownCommand = errors.New("unknown command type")
	ErrBadPayload     = errors.New("malformed command payload")
)

// PlacementError identifies the offending ship of a rejected fleet
type PlacementError struct {
	// ShipIndex is the position of the offending ship in the submitted list
	ShipIndex int
	Err       error
}

func (e *PlacementError) Error() string {
	return fmt.Sprintf("ship %d: %v", e.ShipIndex, e.Err)
}

func (e *PlacementError) Unwrap() error {
	return e.Err
}
