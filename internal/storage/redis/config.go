package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings. Users and sessions only live as long as their
	// connections, so the TTLs are a backstop against leaked keys.
	UserTTL    time.Duration
	SessionTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		UserTTL:      24 * time.Hour,
		SessionTTL:   24 * time.Hour,
	}
}
