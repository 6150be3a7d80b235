package session

import "errors"

var (
	// ErrNotFound indicates no valid record matched the lookup. It covers
	// both "never existed" and "expired and swept".
	ErrNotFound = errors.New("session.not_found")

	// ErrStoreUnavailable indicates the persistence collaborator was
	// unreachable or timed out. Retryable; never degraded to "no session".
	ErrStoreUnavailable = errors.New("session.store_unavailable")

	// ErrInvalidRecord indicates a record is missing identifiers required
	// for persistence.
	ErrInvalidRecord = errors.New("session.invalid_record")

	// ErrMissingUserID indicates a user-scoped operation was called with an
	// empty user identifier.
	ErrMissingUserID = errors.New("session.missing_user_id")

	// ErrMissingSessionID indicates a session-scoped operation was called
	// with an empty session identifier.
	ErrMissingSessionID = errors.New("session.missing_session_id")

	// ErrMissingSessionToken indicates an upsert without a bearer secret.
	ErrMissingSessionToken = errors.New("session.missing_session_token")

	// ErrCipherFailed indicates sensitive field encryption failed; the
	// upsert fails closed and no record is written.
	ErrCipherFailed = errors.New("session.cipher_failed")
)
