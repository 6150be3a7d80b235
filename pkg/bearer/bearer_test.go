package bearer_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notebank/notebank/pkg/bearer"
)

func newService(t *testing.T) *bearer.Service {
	t.Helper()
	svc, err := bearer.New(bearer.Config{
		SigningKey: "test-signing-key-that-is-long-enough",
		Issuer:     "notebank-test",
		TTL:        time.Hour,
	})
	require.NoError(t, err)
	return svc
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("requires signing key", func(t *testing.T) {
		t.Parallel()
		_, err := bearer.New(bearer.Config{})
		assert.ErrorIs(t, err, bearer.ErrMissingSigningKey)
	})
}

func TestIssueVerify(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	token, err := svc.Issue("user-1", "session-token-abc")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Principal)
	assert.Equal(t, "session-token-abc", claims.SessionToken)
	assert.Equal(t, "user-1", claims.Subject)
}

func TestIssue_MissingClaims(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	_, err := svc.Issue("", "session-token")
	assert.ErrorIs(t, err, bearer.ErrMissingClaims)

	_, err = svc.Issue("user-1", "")
	assert.ErrorIs(t, err, bearer.ErrMissingClaims)
}

func TestVerify_Rejections(t *testing.T) {
	t.Parallel()
	svc := newService(t)

	token, err := svc.Issue("user-1", "session-token-abc")
	require.NoError(t, err)

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Verify("not.a.jwt")
		assert.ErrorIs(t, err, bearer.ErrInvalidToken)
	})

	t.Run("tampered token", func(t *testing.T) {
		t.Parallel()
		tampered := token[:len(token)-4] + "XXXX"
		_, err := svc.Verify(tampered)
		assert.ErrorIs(t, err, bearer.ErrInvalidToken)
	})

	t.Run("wrong key", func(t *testing.T) {
		t.Parallel()
		other, err := bearer.New(bearer.Config{
			SigningKey: "a-completely-different-signing-key!!",
			Issuer:     "notebank-test",
		})
		require.NoError(t, err)
		_, err = other.Verify(token)
		assert.ErrorIs(t, err, bearer.ErrInvalidToken)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		t.Parallel()
		other, err := bearer.New(bearer.Config{
			SigningKey: "test-signing-key-that-is-long-enough",
			Issuer:     "someone-else",
		})
		require.NoError(t, err)
		_, err = other.Verify(token)
		assert.ErrorIs(t, err, bearer.ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()
		expired, err := bearer.New(bearer.Config{
			SigningKey: "test-signing-key-that-is-long-enough",
			Issuer:     "notebank-test",
			TTL:        time.Nanosecond,
		})
		require.NoError(t, err)
		tok, err := expired.Issue("user-1", "session-token-abc")
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)
		_, err = svc.Verify(tok)
		assert.ErrorIs(t, err, bearer.ErrInvalidToken)
	})
}
