package model

import "time"

// SessionID uniquely identifies a game session
type SessionID string

// SessionStatus represents the current phase of a session. Transitions are
// one-directional: Waiting -> PlacingShips -> Started -> Finished.
type SessionStatus string

const (
	SessionWaiting      SessionStatus = "waiting"       // Awaiting second player
	SessionPlacingShips SessionStatus = "placing_ships" // Both seated, placements pending
	SessionStarted      SessionStatus = "started"       // Attacks permitted
	SessionFinished     SessionStatus = "finished"      // One fleet fully destroyed
)

// Seat numbers within a session
const (
	SeatPlayer1 = 0
	SeatPlayer2 = 1
)

// Session is one match between two players ("room" in lobby vocabulary).
// Player references are identifiers into the registry's user directory,
// never live pointers.
type Session struct {
	ID     SessionID
	Status SessionStatus

	Player1 UserID
	Player2 UserID // empty until joined

	// P1Turn grants the move to player1 when true; the initial value is a
	// coin flip at creation
	P1Turn bool

	// Boards holds one board per seat; Boards[SeatPlayer1] belongs to Player1
	Boards [2]*Board

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SeatOf returns the seat held by the given user
func (s *Session) SeatOf(userID UserID) (int, bool) {
	switch {
	case userID == "":
		return 0, false
	case userID == s.Player1:
		return SeatPlayer1, true
	case userID == s.Player2:
		return SeatPlayer2, true
	default:
		return 0, false
	}
}

// PlayerAt returns the user seated at the given seat
func (s *Session) PlayerAt(seat int) UserID {
	if seat == SeatPlayer1 {
		return s.Player1
	}
	return s.Player2
}

// CurrentPlayer returns the user whose turn it is
func (s *Session) CurrentPlayer() UserID {
	if s.P1Turn {
		return s.Player1
	}
	return s.Player2
}

// Opponent returns the other seated player
func (s *Session) Opponent(userID UserID) UserID {
	if userID == s.Player1 {
		return s.Player2
	}
	return s.Player1
}

// Players returns both seated players, skipping the empty second seat of a
// waiting session
func (s *Session) Players() []UserID {
	players := []UserID{s.Player1}
	if s.Player2 != "" {
		players = append(players, s.Player2)
	}
	return players
}
