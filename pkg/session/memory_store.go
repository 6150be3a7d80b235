package session

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryStore implements Store using in-memory storage. It mirrors the
// semantics required of persistent implementations: lookups filter
// invalidated records at query time, and every mutation is atomic per
// record.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	now     func() time.Time
	ticker  *time.Ticker
	done    chan struct{}
}

// MemoryStoreOption configures a MemoryStore
type MemoryStoreOption func(*MemoryStore)

// WithMemoryClock sets the store's time source, letting tests simulate the
// passage of time consistently with the Manager's clock
func WithMemoryClock(now func() time.Time) MemoryStoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates a new in-memory session store. A positive cleanup
// interval starts a background sweep of invalid records.
func NewMemoryStore(cleanupInterval time.Duration, opts ...MemoryStoreOption) *MemoryStore {
	store := &MemoryStore{
		records: make(map[string]*Record),
		now:     time.Now,
		done:    make(chan struct{}),
	}

	for _, opt := range opts {
		opt(store)
	}

	if cleanupInterval > 0 {
		store.ticker = time.NewTicker(cleanupInterval)
		go store.cleanupLoop()
	}

	return store
}

// Insert stores a new record
func (s *MemoryStore) Insert(ctx context.Context, rec *Record) error {
	if rec == nil || rec.SessionID == "" || rec.UserID == "" {
		return ErrInvalidRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	recCopy := *rec
	s.records[rec.SessionID] = &recCopy
	return nil
}

// FindByToken returns the valid record matching the kind-selected key.
func (s *MemoryStore) FindByToken(ctx context.Context, value string, kind KeyKind) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	for _, rec := range s.records {
		var match bool
		switch kind {
		case KeySessionID:
			match = rec.SessionID == value
		case KeySessionToken:
			match = rec.SessionToken == value
		}
		if match && rec.IsValid(now) {
			recCopy := *rec
			return &recCopy, nil
		}
	}

	return nil, ErrNotFound
}

// FindAllByUser returns every record for the user, newest CreatedAt first
func (s *MemoryStore) FindAllByUser(ctx context.Context, userID string) ([]*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var records []*Record
	for _, rec := range s.records {
		if rec.UserID == userID {
			recCopy := *rec
			records = append(records, &recCopy)
		}
	}

	sort.Slice(records, func(i, j int) bool {
		if records[i].CreatedAt.Equal(records[j].CreatedAt) {
			return records[i].SessionID > records[j].SessionID
		}
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})

	return records, nil
}

// FindByPhoneHash returns the valid record with the given search hash.
func (s *MemoryStore) FindByPhoneHash(ctx context.Context, phoneHash string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	for _, rec := range s.records {
		if rec.PhoneHash == phoneHash && rec.IsValid(now) {
			recCopy := *rec
			return &recCopy, nil
		}
	}

	return nil, ErrNotFound
}

// UpdateBySessionID applies the patch to an existing record
func (s *MemoryStore) UpdateBySessionID(ctx context.Context, sessionID string, patch Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, exists := s.records[sessionID]
	if !exists {
		return ErrNotFound
	}

	rec.Role = patch.Role
	rec.FullName = patch.FullName
	rec.Email = patch.Email
	rec.DOB = patch.DOB
	rec.Gender = patch.Gender
	rec.ProfilePhoto = patch.ProfilePhoto
	rec.School = patch.School
	rec.Faculty = patch.Faculty
	rec.Department = patch.Department
	rec.Level = patch.Level
	rec.UPID = patch.UPID
	rec.IsVerified = patch.IsVerified
	rec.Phone = patch.Phone
	rec.PhoneHash = patch.PhoneHash
	rec.RegNumber = patch.RegNumber
	rec.RegNumberHash = patch.RegNumberHash
	rec.DeviceInfo = patch.DeviceInfo
	rec.IPAddress = patch.IPAddress
	rec.LastActivity = patch.LastActivity
	rec.UpdatedAt = patch.UpdatedAt
	rec.ExpiresAt = patch.ExpiresAt

	return nil
}

// DeleteByUser removes every record for the user except excludeSessionID
func (s *MemoryStore) DeleteByUser(ctx context.Context, userID, excludeSessionID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	for id, rec := range s.records {
		if rec.UserID == userID && id != excludeSessionID {
			delete(s.records, id)
			deleted++
		}
	}

	return deleted, nil
}

// DeleteBySessionID removes a single record
func (s *MemoryStore) DeleteBySessionID(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, sessionID)
	return nil
}

// DeleteInvalid removes every expired, inactive, or signed-out record
func (s *MemoryStore) DeleteInvalid(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var deleted int64
	for id, rec := range s.records {
		if !rec.IsValid(now) {
			delete(s.records, id)
			deleted++
		}
	}

	return deleted, nil
}

// CountByUser returns the number of records for the user, valid or not
func (s *MemoryStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int64
	for _, rec := range s.records {
		if rec.UserID == userID {
			count++
		}
	}

	return count, nil
}

// Close stops the cleanup goroutine
func (s *MemoryStore) Close() error {
	if s.ticker != nil {
		s.ticker.Stop()
		close(s.done)
	}
	return nil
}

// cleanupLoop runs the periodic sweep of invalid records
func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			_, _ = s.DeleteInvalid(context.Background())
		case <-s.done:
			return
		}
	}
}
