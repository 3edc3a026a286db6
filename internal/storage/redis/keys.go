package redis

import (
	"fmt"

	"github.com/mcoot/battleshipgame-go/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "bsgame"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// connIndexKey returns the Redis key for the connection -> user_id index
func connIndexKey(key model.ConnectionKey) string {
	return fmt.Sprintf("%s:idx:conn:%s", keyPrefix, key)
}

// usersIndexKey returns the Redis key for the SET of all user ids
func usersIndexKey() string {
	return fmt.Sprintf("%s:idx:users", keyPrefix)
}

// sessionKey returns the Redis key for a Session
func sessionKey(id model.SessionID) string {
	return fmt.Sprintf("%s:session:%s", keyPrefix, id)
}

// sessionsIndexKey returns the Redis key for the SET of all session ids
func sessionsIndexKey() string {
	return fmt.Sprintf("%s:idx:sessions", keyPrefix)
}
