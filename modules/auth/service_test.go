package auth_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notebank/notebank/modules/auth"
	"github.com/notebank/notebank/pkg/authgate"
	"github.com/notebank/notebank/pkg/bearer"
	"github.com/notebank/notebank/pkg/cipher"
	"github.com/notebank/notebank/pkg/session"
)

type testEnv struct {
	handler http.Handler
	manager *session.Manager
	bearer  *bearer.Service
}

func setupService(t *testing.T) *testEnv {
	t.Helper()

	key, err := cipher.GenerateKey()
	require.NoError(t, err)
	c, err := cipher.New(key)
	require.NoError(t, err)

	store := session.NewMemoryStore(0)
	mgr := session.New(
		session.WithCipher(c),
		session.WithStore(store),
	)

	tokens, err := bearer.New(bearer.Config{
		SigningKey: "test-signing-key-0123456789abcdef",
		Issuer:     "notebank-test",
		TTL:        time.Hour,
	})
	require.NoError(t, err)

	gate := authgate.New(mgr, tokens)
	svc := auth.NewService(mgr, gate)

	return &testEnv{
		handler: svc.Handle(),
		manager: mgr,
		bearer:  tokens,
	}
}

func upsertBody(userID string) string {
	return fmt.Sprintf(`{
		"userId": %q,
		"sessionToken": "bearer-secret-%s",
		"profile": {
			"fullName": "Ada Lovelace",
			"email": "ada@example.edu",
			"dob": "1997-12-10",
			"phone": "+2348012345678",
			"gender": "female",
			"role": "student",
			"school": "futminna",
			"faculty": "SICT",
			"department": "Computer Science",
			"regNumber": "2019/1/70345BT",
			"level": "300",
			"upid": "UP-7781",
			"isVerified": true
		}
	}`, userID, userID)
}

func (e *testEnv) do(t *testing.T, method, target, body string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != "" {
		rd = bytes.NewReader([]byte(body))
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	for _, fn := range mutate {
		fn(req)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestService_Upsert(t *testing.T) {
	t.Parallel()

	t.Run("creates session", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)

		rec := env.do(t, http.MethodPost, "/session", upsertBody("user-1"))
		require.Equal(t, http.StatusCreated, rec.Code)

		out := decodeEnvelope(t, rec)
		assert.Equal(t, "session_upserted", out["code"])

		data := out["data"].(map[string]any)
		assert.Equal(t, true, data["created"])
		assert.NotEmpty(t, data["sessionId"])
		assert.NotEmpty(t, data["expiresAt"])
	})

	t.Run("repeat upsert refreshes instead of creating", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)

		first := env.do(t, http.MethodPost, "/session", upsertBody("user-1"))
		require.Equal(t, http.StatusCreated, first.Code)
		firstID := decodeEnvelope(t, first)["data"].(map[string]any)["sessionId"]

		second := env.do(t, http.MethodPost, "/session", upsertBody("user-1"))
		require.Equal(t, http.StatusOK, second.Code)

		data := decodeEnvelope(t, second)["data"].(map[string]any)
		assert.Equal(t, false, data["created"])
		assert.Equal(t, firstID, data["sessionId"])
	})

	t.Run("device info defaults to user agent", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)

		rec := env.do(t, http.MethodPost, "/session", upsertBody("user-1"), func(r *http.Request) {
			r.Header.Set("User-Agent", "NotebankApp/2.1 (Android 14)")
			r.RemoteAddr = "203.0.113.7:51000"
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		stored, err := env.manager.ResolveFresh(t.Context(), "user-1")
		require.NoError(t, err)
		assert.Equal(t, "NotebankApp/2.1 (Android 14)", stored.DeviceInfo)
		assert.Equal(t, "203.0.113.7", stored.IPAddress)
	})

	t.Run("invalid profile returns field details", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)

		body := strings.Replace(upsertBody("user-1"), `"ada@example.edu"`, `"not-an-email"`, 1)
		body = strings.Replace(body, `"Ada Lovelace"`, `""`, 1)

		rec := env.do(t, http.MethodPost, "/session", body)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		out := decodeEnvelope(t, rec)
		assert.Equal(t, "validation_error", out["code"])

		details := out["error"].(map[string]any)["details"].(map[string]any)
		assert.Contains(t, details, "fullName")
		assert.Contains(t, details, "email")
	})

	t.Run("malformed body is a validation error", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)

		rec := env.do(t, http.MethodPost, "/session", "{not json")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, "validation_error", decodeEnvelope(t, rec)["code"])
	})
}

func TestService_Status(t *testing.T) {
	t.Parallel()

	t.Run("by user id", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)
		env.do(t, http.MethodPost, "/session", upsertBody("user-1"))

		rec := env.do(t, http.MethodGet, "/session/status?user_id=user-1", "")
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, true, data["valid"])
		assert.NotEmpty(t, data["expiresAt"])
		assert.NotEmpty(t, data["lastActivity"])
	})

	t.Run("by session id", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)
		created := env.do(t, http.MethodPost, "/session", upsertBody("user-1"))
		sessionID := decodeEnvelope(t, created)["data"].(map[string]any)["sessionId"].(string)

		rec := env.do(t, http.MethodGet, "/session/status?session_id="+sessionID, "")
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, true, data["valid"])
	})

	t.Run("unknown user reports invalid not error", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)

		rec := env.do(t, http.MethodGet, "/session/status?user_id=ghost", "")
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, false, data["valid"])
	})

	t.Run("missing identifiers rejected", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)

		rec := env.do(t, http.MethodGet, "/session/status", "")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("never exposes profile fields", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)
		env.do(t, http.MethodPost, "/session", upsertBody("user-1"))

		rec := env.do(t, http.MethodGet, "/session/status?user_id=user-1", "")
		body := rec.Body.String()
		assert.NotContains(t, body, "phone")
		assert.NotContains(t, body, "email")
		assert.NotContains(t, body, "regNumber")
	})

	t.Run("never hands out a usable credential", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)
		created := env.do(t, http.MethodPost, "/session", upsertBody("user-1"))
		sessionID := decodeEnvelope(t, created)["data"].(map[string]any)["sessionId"].(string)

		// The status probe is unauthenticated; if the session identifier
		// leaked here, any caller could replay it as the sid cookie.
		status := env.do(t, http.MethodGet, "/session/status?user_id=user-1", "")
		require.Equal(t, http.StatusOK, status.Code)
		assert.NotContains(t, status.Body.String(), sessionID)
		assert.NotContains(t, status.Body.String(), "sessionId")

		status = env.do(t, http.MethodGet, "/session/status?session_id="+sessionID, "")
		require.Equal(t, http.StatusOK, status.Code)
		assert.NotContains(t, status.Body.String(), "bearer-secret")
	})
}

func TestService_SignOut(t *testing.T) {
	t.Parallel()

	t.Run("requires credential", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)

		rec := env.do(t, http.MethodDelete, "/session", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("cookie credential signs out the current session", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)
		created := env.do(t, http.MethodPost, "/session", upsertBody("user-1"))
		sessionID := decodeEnvelope(t, created)["data"].(map[string]any)["sessionId"].(string)

		rec := env.do(t, http.MethodDelete, "/session", "", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: authgate.DefaultCookieName, Value: sessionID})
		})
		require.Equal(t, http.StatusOK, rec.Code)

		status := env.do(t, http.MethodGet, "/session/status?user_id=user-1", "")
		data := decodeEnvelope(t, status)["data"].(map[string]any)
		assert.Equal(t, false, data["valid"])
	})

	t.Run("bearer credential with all terminates every session", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)
		env.do(t, http.MethodPost, "/session", upsertBody("user-1"))

		token, err := env.bearer.Issue("user-1", "bearer-secret-user-1")
		require.NoError(t, err)

		rec := env.do(t, http.MethodDelete, "/session?all=true", "", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+token)
		})
		require.Equal(t, http.StatusOK, rec.Code)

		data := decodeEnvelope(t, rec)["data"].(map[string]any)
		assert.Equal(t, true, data["allSessions"])

		status := env.do(t, http.MethodGet, "/session/status?user_id=user-1", "")
		assert.Equal(t, false, decodeEnvelope(t, status)["data"].(map[string]any)["valid"])
	})

	t.Run("stale cookie is rejected", func(t *testing.T) {
		t.Parallel()
		env := setupService(t)

		rec := env.do(t, http.MethodDelete, "/session", "", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: authgate.DefaultCookieName, Value: "no-such-session"})
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
