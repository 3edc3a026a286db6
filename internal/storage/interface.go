package storage

import (
	"context"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// Storage defines the interface for the user and session directories.
// Implementations provide per-call safety only; multi-entity atomicity is
// the registry's responsibility.
type Storage interface {
	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUser(ctx context.Context, id model.UserID) (*model.User, error)
	GetUserByConnection(ctx context.Context, key model.ConnectionKey) (*model.User, error)
	DeleteUser(ctx context.Context, id model.UserID) error
	ListUsers(ctx context.Context) ([]*model.User, error)

	// Session operations
	SaveSession(ctx context.Context, session *model.Session) error
	GetSession(ctx context.Context, id model.SessionID) (*model.Session, error)
	DeleteSession(ctx context.Context, id model.SessionID) error
	ListSessions(ctx context.Context) ([]*model.Session, error)
}
