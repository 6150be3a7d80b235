package session

import "time"

// Config holds session lifecycle configuration
type Config struct {
	// FreshnessWindow bounds silent refresh: a valid record whose last
	// activity is older than this is stale and gets replaced, not extended.
	FreshnessWindow time.Duration `env:"SESSION_FRESHNESS_WINDOW" envDefault:"2h"`

	// RenewalWindow is the lifetime granted at every (re)issuance:
	// expiresAt = lastActivity + RenewalWindow.
	RenewalWindow time.Duration `env:"SESSION_RENEWAL_WINDOW" envDefault:"168h"`

	// CleanupInterval for the default in-memory store's background sweep
	// (0 to disable).
	CleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"5m"`
}

// DefaultConfig returns default session lifecycle configuration
func DefaultConfig() Config {
	return Config{
		FreshnessWindow: 2 * time.Hour,
		RenewalWindow:   7 * 24 * time.Hour,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewFromConfig creates a new Manager from the provided Config.
// A cipher is required via options; the store defaults to an in-memory one.
func NewFromConfig(cfg Config, opts ...Option) *Manager {
	configOpts := []Option{
		WithConfig(cfg),
	}

	configOpts = append(configOpts, opts...)

	return New(configOpts...)
}
