package bearer

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the bearer token payload: the principal (user identifier) and
// the opaque session token the lifecycle store is keyed by.
type Claims struct {
	Principal    string `json:"principal"`
	SessionToken string `json:"sessionToken"`
	jwt.RegisteredClaims
}

// Service issues and verifies signed bearer tokens with HMAC-SHA256. The
// signing/verification mechanism is opaque to the session lifecycle core:
// callers only hand tokens in and get claims out.
type Service struct {
	signingKey []byte
	issuer     string
	ttl        time.Duration
}

// Config holds bearer token configuration
type Config struct {
	SigningKey string        `env:"BEARER_SIGNING_KEY,required"`
	Issuer     string        `env:"BEARER_ISSUER" envDefault:"notebank"`
	TTL        time.Duration `env:"BEARER_TTL" envDefault:"168h"`
}

// New creates a bearer token service. The signing key should be at least
// 32 bytes for adequate security with HMAC-SHA256.
func New(cfg Config) (*Service, error) {
	if cfg.SigningKey == "" {
		return nil, ErrMissingSigningKey
	}

	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}

	return &Service{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		ttl:        ttl,
	}, nil
}

// Issue creates a signed token embedding the principal and session token.
func (s *Service) Issue(principal, sessionToken string) (string, error) {
	if principal == "" || sessionToken == "" {
		return "", ErrMissingClaims
	}

	now := time.Now()
	claims := Claims{
		Principal:    principal,
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", errors.Join(ErrSigningFailed, err)
	}

	return signed, nil
}

// Verify parses and validates a token, returning its claims. Tokens signed
// with an unexpected algorithm, expired tokens, and tampered tokens are all
// rejected as ErrInvalidToken.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrUnexpectedSigningMethod
			}
			return s.signingKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !token.Valid || claims.Principal == "" || claims.SessionToken == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
