package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// OpTimeout bounds each store round-trip
	OpTimeout time.Duration

	// RoomTTL expires room records that housekeeping never deletes
	RoomTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		OpTimeout:    5 * time.Second,
		RoomTTL:      24 * time.Hour,
	}
}
