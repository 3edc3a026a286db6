package model

import "time"

// UserID uniquely identifies a player across the system
type UserID string

// ConnectionKey is the transport-level address of a live connection.
// It is a lookup aid for routing addressed events, never an ownership
// relation.
type ConnectionKey string

// User represents a connected player
type User struct {
	ID   UserID
	Name string
	Conn ConnectionKey

	// Wins is a monotonic counter of concluded matches won
	Wins int

	// CurrentRoom is the session the user is seated in, empty when none.
	// It is a plain identifier; the session may have been torn down since
	// it was recorded and must be re-resolved on every access.
	CurrentRoom SessionID

	CreatedAt time.Time
}

// InRoom returns true if the user has a room recorded
func (u *User) InRoom() bool {
	return u.CurrentRoom != ""
}
