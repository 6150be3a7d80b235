package session

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the Manager
type Option func(*Manager)

// WithStore sets a custom session store
func WithStore(store Store) Option {
	return func(m *Manager) {
		m.store = store
	}
}

// WithCipher sets the cipher used for sensitive profile fields
func WithCipher(cipher Cipher) Option {
	return func(m *Manager) {
		m.cipher = cipher
	}
}

// WithConfig sets custom configuration
func WithConfig(config Config) Option {
	return func(m *Manager) {
		m.config = config
	}
}

// WithLogger sets the logger for non-fatal lifecycle diagnostics
func WithLogger(log *slog.Logger) Option {
	return func(m *Manager) {
		if log != nil {
			m.log = log
		}
	}
}

// WithClock sets the time source, letting tests simulate the passage of time
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithFreshnessWindow sets the silent-refresh eligibility window
func WithFreshnessWindow(window time.Duration) Option {
	return func(m *Manager) {
		m.config.FreshnessWindow = window
	}
}

// WithRenewalWindow sets the lifetime granted at every (re)issuance
func WithRenewalWindow(window time.Duration) Option {
	return func(m *Manager) {
		m.config.RenewalWindow = window
	}
}
