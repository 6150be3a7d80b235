package bearer

import "errors"

var (
	// ErrMissingSigningKey indicates the service was configured without a key.
	ErrMissingSigningKey = errors.New("bearer.missing_signing_key")

	// ErrMissingClaims indicates Issue was called without a principal or
	// session token.
	ErrMissingClaims = errors.New("bearer.missing_claims")

	// ErrSigningFailed indicates token signing failed.
	ErrSigningFailed = errors.New("bearer.signing_failed")

	// ErrInvalidToken indicates the token failed verification: malformed,
	// tampered, expired, or missing required claims.
	ErrInvalidToken = errors.New("bearer.invalid_token")

	// ErrUnexpectedSigningMethod indicates an algorithm confusion attempt.
	ErrUnexpectedSigningMethod = errors.New("bearer.unexpected_signing_method")
)
