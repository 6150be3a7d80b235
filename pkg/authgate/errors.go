package authgate

import "errors"

var (
	// ErrNoCredential indicates the request carried neither a session
	// cookie nor a bearer token.
	ErrNoCredential = errors.New("authgate.no_credential")

	// ErrInvalidCredential indicates the credential failed verification or
	// points at a record its principal does not own.
	ErrInvalidCredential = errors.New("authgate.invalid_credential")

	// ErrInsufficientRole indicates the record resolved but the principal's
	// role fails the authorization check.
	ErrInsufficientRole = errors.New("authgate.insufficient_role")
)
