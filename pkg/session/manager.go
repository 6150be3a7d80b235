package session

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Cipher prepares sensitive profile fields for persistence: Encrypt produces
// ciphertext (failing closed), Hash derives the deterministic search hash
// used for equality lookup without decryption.
type Cipher interface {
	EncryptString(plaintext string) (string, error)
	Hash(plaintext string) string
}

// Manager orchestrates the session record lifecycle: it resolves, refreshes,
// creates, deduplicates, and expires records. Request handlers share no
// process memory, so the store is the only shared resource; concurrent
// upserts for one user may transiently create duplicate records, and the
// convergence pass at the end of every Upsert restores the one-record-per-user
// invariant instead of a cross-request lock.
type Manager struct {
	store  Store
	cipher Cipher
	config Config
	log    *slog.Logger
	now    func() time.Time
}

// New creates a new lifecycle manager with the given options.
// A cipher is required; the store defaults to an in-memory implementation.
func New(opts ...Option) *Manager {
	m := &Manager{
		config: DefaultConfig(),
		log:    slog.New(slog.DiscardHandler),
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(m)
	}

	if m.cipher == nil {
		// Fail fast on misconfiguration: persisting plaintext sensitive
		// fields is never acceptable
		panic("session: cipher is required")
	}

	if m.store == nil {
		m.store = NewMemoryStore(m.config.CleanupInterval, WithMemoryClock(m.now))
	}

	return m
}

// UpsertInput is the single mutating entry point's request: who is logging
// in or refreshing, their current profile snapshot, the bearer secret issued
// for this cycle, and diagnostic metadata.
type UpsertInput struct {
	UserID       string  `json:"userId"`
	Profile      Profile `json:"profile"`
	SessionToken string  `json:"sessionToken"`
	DeviceInfo   string  `json:"deviceInfo,omitempty"`
	IPAddress    string  `json:"ipAddress,omitempty"`
}

// UpsertResult reports the outcome of an upsert.
type UpsertResult struct {
	Created   bool      `json:"created"`
	SessionID string    `json:"sessionId"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Status describes whether a valid session exists. It carries timestamps
// only: no ciphertext, no hashes, and no session identifier — the
// identifier doubles as the cookie credential, so a status answer that
// included it would hand out the session to whoever asked.
type Status struct {
	Valid        bool      `json:"valid"`
	ExpiresAt    time.Time `json:"expiresAt,omitzero"`
	LastActivity time.Time `json:"lastActivity,omitzero"`
}

// SweepExpired deletes every record that is expired, inactive, or signed
// out, globally. It is idempotent: a second consecutive call deletes
// nothing. The count is returned for observability only.
func (m *Manager) SweepExpired(ctx context.Context) (int64, error) {
	count, err := m.store.DeleteInvalid(ctx)
	if err != nil {
		return 0, err
	}

	if count > 0 {
		m.log.DebugContext(ctx, "swept invalid session records", slog.Int64("count", count))
	}
	return count, nil
}

// ResolveFresh returns the newest fresh record for the user, or ErrNotFound.
// It is a pure read: lastActivity is never touched here, so a mere check
// cannot extend a session.
func (m *Manager) ResolveFresh(ctx context.Context, userID string) (*Record, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	records, err := m.store.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	for _, rec := range records {
		if rec.IsFresh(now, m.config.FreshnessWindow) {
			return rec, nil
		}
	}

	return nil, ErrNotFound
}

// Upsert establishes the user's session for a login or refresh cycle:
// sweep, resolve a fresh candidate, delete every other record for the user,
// then either extend the candidate or insert a new record, and finally
// converge if a concurrent upsert slipped a duplicate in.
//
// Any validation, cipher, or store failure is surfaced as such — the caller
// must treat all of them as "could not establish session", never as an
// anonymous session.
func (m *Manager) Upsert(ctx context.Context, in UpsertInput) (*UpsertResult, error) {
	if in.UserID == "" {
		return nil, ErrMissingUserID
	}
	if in.SessionToken == "" {
		return nil, ErrMissingSessionToken
	}
	if err := in.Profile.Validate(); err != nil {
		return nil, err
	}

	if _, err := m.SweepExpired(ctx); err != nil {
		return nil, err
	}

	candidate, err := m.ResolveFresh(ctx, in.UserID)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	// Enforce one-record-per-user proactively: everything except the
	// candidate goes before the record is (re)issued
	exclude := ""
	if candidate != nil {
		exclude = candidate.SessionID
	}
	if _, err := m.store.DeleteByUser(ctx, in.UserID, exclude); err != nil {
		return nil, err
	}

	now := m.now()
	expiresAt := now.Add(m.config.RenewalWindow)

	var result *UpsertResult
	if candidate != nil {
		patch, err := m.buildPatch(in, now, expiresAt)
		if err != nil {
			return nil, err
		}
		if err := m.store.UpdateBySessionID(ctx, candidate.SessionID, patch); err != nil {
			return nil, err
		}
		result = &UpsertResult{Created: false, SessionID: candidate.SessionID, ExpiresAt: expiresAt}
	} else {
		rec, err := m.buildRecord(in, now, expiresAt)
		if err != nil {
			return nil, err
		}
		if err := m.store.Insert(ctx, rec); err != nil {
			return nil, err
		}
		result = &UpsertResult{Created: true, SessionID: rec.SessionID, ExpiresAt: expiresAt}
	}

	// Convergence: a concurrent upsert for the same user may have raced us
	// past the cleanup above. The record just written is already valid, so a
	// failed cleanup here is logged, not fatal — the next upsert converges.
	// Adopting the winner means the caller holds a record another request
	// wrote, so Created is cleared along with the identifiers.
	if winner := m.converge(ctx, in.UserID); winner != nil && winner.SessionID != result.SessionID {
		result.Created = false
		result.SessionID = winner.SessionID
		result.ExpiresAt = winner.ExpiresAt
	}

	return result, nil
}

// SignOut removes the caller's own record, or every record for the user
// when allSessions is set.
func (m *Manager) SignOut(ctx context.Context, userID, sessionID string, allSessions bool) error {
	if allSessions {
		if userID == "" {
			return ErrMissingUserID
		}
		_, err := m.store.DeleteByUser(ctx, userID, "")
		return err
	}

	if sessionID == "" {
		return ErrMissingSessionID
	}
	return m.store.DeleteBySessionID(ctx, sessionID)
}

// Resolve looks a record up by its session identifier or bearer secret.
// Only valid records are returned; the store filters at query time.
func (m *Manager) Resolve(ctx context.Context, value string, kind KeyKind) (*Record, error) {
	if value == "" {
		return nil, ErrNotFound
	}
	return m.store.FindByToken(ctx, value, kind)
}

// LookupByPhone finds the valid record whose encrypted phone equals the
// given plaintext, by recomputing the deterministic search hash. The
// plaintext is never sent to the store.
func (m *Manager) LookupByPhone(ctx context.Context, phone string) (*Record, error) {
	if phone == "" {
		return nil, ErrNotFound
	}
	return m.store.FindByPhoneHash(ctx, m.cipher.Hash(phone))
}

// StatusByUser reports whether the user currently has a valid session.
func (m *Manager) StatusByUser(ctx context.Context, userID string) (*Status, error) {
	if userID == "" {
		return nil, ErrMissingUserID
	}

	records, err := m.store.FindAllByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := m.now()
	for _, rec := range records {
		if rec.IsValid(now) {
			return statusOf(rec), nil
		}
	}

	return &Status{Valid: false}, nil
}

// StatusBySession reports whether the given session identifier resolves to
// a valid record.
func (m *Manager) StatusBySession(ctx context.Context, sessionID string) (*Status, error) {
	rec, err := m.Resolve(ctx, sessionID, KeySessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &Status{Valid: false}, nil
		}
		return nil, err
	}
	return statusOf(rec), nil
}

// converge restores the one-record-per-user invariant after a race: when
// more than one record survived the upsert, the one with the newest
// CreatedAt wins (session identifier breaks exact ties, so two racing
// upserts never both win and never leave zero records) and the rest are
// deleted. Returns the winner, or nil when nothing needed converging.
func (m *Manager) converge(ctx context.Context, userID string) *Record {
	count, err := m.store.CountByUser(ctx, userID)
	if err != nil {
		m.log.WarnContext(ctx, "session convergence count failed",
			slog.String("user_id", userID), slog.Any("error", err))
		return nil
	}
	if count <= 1 {
		return nil
	}

	records, err := m.store.FindAllByUser(ctx, userID)
	if err != nil {
		m.log.WarnContext(ctx, "session convergence read failed",
			slog.String("user_id", userID), slog.Any("error", err))
		return nil
	}
	if len(records) <= 1 {
		return nil
	}

	winner := records[0]
	for _, rec := range records[1:] {
		if rec.CreatedAt.After(winner.CreatedAt) ||
			(rec.CreatedAt.Equal(winner.CreatedAt) && rec.SessionID > winner.SessionID) {
			winner = rec
		}
	}

	for _, rec := range records {
		if rec.SessionID == winner.SessionID {
			continue
		}
		if err := m.store.DeleteBySessionID(ctx, rec.SessionID); err != nil {
			m.log.WarnContext(ctx, "session convergence delete failed",
				slog.String("user_id", userID),
				slog.String("session_id", rec.SessionID),
				slog.Any("error", err))
		}
	}

	return winner
}

// buildPatch prepares the refresh field set, encrypting sensitive values.
func (m *Manager) buildPatch(in UpsertInput, now, expiresAt time.Time) (Patch, error) {
	phone, phoneHash, regNumber, regNumberHash, err := m.sealSensitive(in.Profile)
	if err != nil {
		return Patch{}, err
	}

	return Patch{
		Role:          in.Profile.Role,
		FullName:      in.Profile.FullName,
		Email:         in.Profile.Email,
		DOB:           in.Profile.DOB,
		Gender:        in.Profile.Gender,
		ProfilePhoto:  in.Profile.ProfilePhoto,
		School:        in.Profile.School,
		Faculty:       in.Profile.Faculty,
		Department:    in.Profile.Department,
		Level:         in.Profile.Level,
		UPID:          in.Profile.UPID,
		IsVerified:    in.Profile.IsVerified,
		Phone:         phone,
		PhoneHash:     phoneHash,
		RegNumber:     regNumber,
		RegNumberHash: regNumberHash,
		DeviceInfo:    in.DeviceInfo,
		IPAddress:     in.IPAddress,
		LastActivity:  now,
		UpdatedAt:     now,
		ExpiresAt:     expiresAt,
	}, nil
}

// buildRecord prepares a full record for a new login cycle.
func (m *Manager) buildRecord(in UpsertInput, now, expiresAt time.Time) (*Record, error) {
	phone, phoneHash, regNumber, regNumberHash, err := m.sealSensitive(in.Profile)
	if err != nil {
		return nil, err
	}

	return &Record{
		SessionID:     uuid.NewString(),
		UserID:        in.UserID,
		SessionToken:  in.SessionToken,
		Role:          in.Profile.Role,
		FullName:      in.Profile.FullName,
		Email:         in.Profile.Email,
		DOB:           in.Profile.DOB,
		Gender:        in.Profile.Gender,
		ProfilePhoto:  in.Profile.ProfilePhoto,
		School:        in.Profile.School,
		Faculty:       in.Profile.Faculty,
		Department:    in.Profile.Department,
		Level:         in.Profile.Level,
		UPID:          in.Profile.UPID,
		IsVerified:    in.Profile.IsVerified,
		Phone:         phone,
		PhoneHash:     phoneHash,
		RegNumber:     regNumber,
		RegNumberHash: regNumberHash,
		DeviceInfo:    in.DeviceInfo,
		IPAddress:     in.IPAddress,
		CreatedAt:     now,
		UpdatedAt:     now,
		LastActivity:  now,
		ExpiresAt:     expiresAt,
		IsActive:      true,
		IsSignedIn:    true,
	}, nil
}

// sealSensitive encrypts the sensitive profile fields and derives their
// search hashes. Fails closed: on error nothing is written anywhere.
func (m *Manager) sealSensitive(p Profile) (phone, phoneHash, regNumber, regNumberHash string, err error) {
	phone, err = m.cipher.EncryptString(p.Phone)
	if err != nil {
		return "", "", "", "", errors.Join(ErrCipherFailed, err)
	}
	regNumber, err = m.cipher.EncryptString(p.RegNumber)
	if err != nil {
		return "", "", "", "", errors.Join(ErrCipherFailed, err)
	}
	return phone, m.cipher.Hash(p.Phone), regNumber, m.cipher.Hash(p.RegNumber), nil
}

func statusOf(rec *Record) *Status {
	return &Status{
		Valid:        true,
		ExpiresAt:    rec.ExpiresAt,
		LastActivity: rec.LastActivity,
	}
}
