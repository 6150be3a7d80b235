package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/notebank/notebank/pkg/authgate"
	"github.com/notebank/notebank/pkg/clientip"
	"github.com/notebank/notebank/pkg/session"
	"github.com/notebank/notebank/pkg/validator"
)

// handleUpsert accepts the platform backend's sign-in notification and
// establishes (or refreshes) the user's single session.
func (s *Service) handleUpsert(w http.ResponseWriter, r *http.Request) {
	var in session.UpsertInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, validator.ValidationErrors{
			{Field: "body", Message: "must be a valid JSON document"},
		})
		return
	}

	if in.DeviceInfo == "" {
		in.DeviceInfo = r.UserAgent()
	}
	if in.IPAddress == "" {
		in.IPAddress = clientip.GetIP(r)
	}

	result, err := s.sessions.Upsert(r.Context(), in)
	if err != nil {
		s.log.ErrorContext(r.Context(), "session upsert failed",
			slog.String("user_id", in.UserID), slog.Any("error", err))
		writeError(w, err)
		return
	}

	status := http.StatusOK
	if result.Created {
		status = http.StatusCreated
	}
	writeJSON(w, status, "session_upserted", result)
}

// handleStatus reports validity and timestamps for a user's session or a
// specific session record. It never returns profile data.
func (s *Service) handleStatus(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	sessionID := r.URL.Query().Get("session_id")

	var (
		status *session.Status
		err    error
	)
	switch {
	case userID != "":
		status, err = s.sessions.StatusByUser(r.Context(), userID)
	case sessionID != "":
		status, err = s.sessions.StatusBySession(r.Context(), sessionID)
	default:
		writeError(w, validator.ValidationErrors{
			{Field: "user_id", Message: "either user_id or session_id is required"},
		})
		return
	}
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "session_status", status)
}

// handleSignOut terminates the authenticated principal's session. With
// ?all=true every session for the principal is terminated; otherwise only
// the one the credential resolved to.
func (s *Service) handleSignOut(w http.ResponseWriter, r *http.Request) {
	rec := authgate.MustFromContext(r.Context())
	all := r.URL.Query().Get("all") == "true"

	if err := s.sessions.SignOut(r.Context(), rec.UserID, rec.SessionID, all); err != nil {
		s.log.ErrorContext(r.Context(), "sign-out failed",
			slog.String("user_id", rec.UserID), slog.Any("error", err))
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, "signed_out", map[string]bool{"allSessions": all})
}
