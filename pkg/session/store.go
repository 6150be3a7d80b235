package session

import (
	"context"
	"time"
)

// KeyKind selects which indexed token field a lookup is keyed by.
type KeyKind string

const (
	// KeySessionID looks a record up by its cookie-carried session identifier.
	KeySessionID KeyKind = "sessionId"

	// KeySessionToken looks a record up by its bearer secret.
	KeySessionToken KeyKind = "sessionToken"
)

// Patch is the field set applied to an existing record on refresh. The
// session identifiers are deliberately absent: sessionId and sessionToken
// stay co-located on one record for its whole lifetime.
type Patch struct {
	Role         Role
	FullName     string
	Email        string
	DOB          string
	Gender       string
	ProfilePhoto string
	School       string
	Faculty      string
	Department   string
	Level        string
	UPID         string
	IsVerified   bool

	// Ciphertext + search hashes, prepared by the Manager's cipher
	Phone         string
	PhoneHash     string
	RegNumber     string
	RegNumberHash string

	DeviceInfo string
	IPAddress  string

	LastActivity time.Time
	UpdatedAt    time.Time
	ExpiresAt    time.Time
}

// Store is the persistence collaborator for session records. Implementations
// must filter invalidated records out at query time — FindByToken and
// FindByPhoneHash never return a record that is expired, inactive, or signed
// out, so callers cannot observe a record between its expiry and its
// deletion. All lookups are keyed by indexed fields.
type Store interface {
	// Insert stores a new record.
	Insert(ctx context.Context, rec *Record) error

	// FindByToken returns the valid record whose kind-selected field equals
	// value, or ErrNotFound.
	FindByToken(ctx context.Context, value string, kind KeyKind) (*Record, error)

	// FindAllByUser returns every record for the user, newest CreatedAt first.
	FindAllByUser(ctx context.Context, userID string) ([]*Record, error)

	// FindByPhoneHash returns the valid record with the given phone search
	// hash, or ErrNotFound.
	FindByPhoneHash(ctx context.Context, phoneHash string) (*Record, error)

	// UpdateBySessionID applies the patch to the record with the given
	// session identifier.
	UpdateBySessionID(ctx context.Context, sessionID string, patch Patch) error

	// DeleteByUser removes every record for the user except the one
	// identified by excludeSessionID (empty string excludes nothing).
	// Returns the number of deleted records.
	DeleteByUser(ctx context.Context, userID, excludeSessionID string) (int64, error)

	// DeleteBySessionID removes a single record.
	DeleteBySessionID(ctx context.Context, sessionID string) error

	// DeleteInvalid removes every record that is expired, inactive, or
	// signed out, globally. Returns the number of deleted records.
	DeleteInvalid(ctx context.Context) (int64, error)

	// CountByUser returns the number of records for the user, valid or not.
	CountByUser(ctx context.Context, userID string) (int64, error)
}
