package session

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	nbmongo "github.com/notebank/notebank/pkg/mongo"
)

// DefaultCollection is the collection session records live in.
const DefaultCollection = "sessions"

// MongoStore implements Store over a MongoDB collection. Validity is
// enforced in the query filters themselves, so a caller can never read a
// record between its expiry and its deletion. Every driver failure is
// wrapped as ErrStoreUnavailable so callers can distinguish "store down"
// from "no session".
type MongoStore struct {
	coll *mongo.Collection
	now  func() time.Time
}

// MongoStoreOption configures a MongoStore
type MongoStoreOption func(*MongoStore)

// WithCollection overrides the collection name
func WithCollection(name string) MongoStoreOption {
	return func(s *MongoStore) {
		if name != "" {
			s.coll = s.coll.Database().Collection(name)
		}
	}
}

// WithMongoClock sets the store's time source for the query-time validity
// filters
func WithMongoClock(now func() time.Time) MongoStoreOption {
	return func(s *MongoStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMongoStore creates a session store over the given database's sessions
// collection.
func NewMongoStore(db *mongo.Database, opts ...MongoStoreOption) *MongoStore {
	s := &MongoStore{
		coll: db.Collection(DefaultCollection),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// NewMongoStoreFromConfig connects to MongoDB with the platform's retrying
// client and returns a store over the named database.
func NewMongoStoreFromConfig(ctx context.Context, cfg nbmongo.Config, database string, opts ...MongoStoreOption) (*MongoStore, error) {
	db, err := nbmongo.NewWithDatabase(ctx, cfg, database)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}
	return NewMongoStore(db, opts...), nil
}

// EnsureIndexes creates the indexes every lookup is keyed by. Safe to call
// on every startup; existing indexes are left untouched.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "sessionToken", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "phoneHash", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "expiresAt", Value: 1}},
		},
	}

	if _, err := s.coll.Indexes().CreateMany(ctx, models); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Insert stores a new record
func (s *MongoStore) Insert(ctx context.Context, rec *Record) error {
	if rec == nil || rec.SessionID == "" || rec.UserID == "" {
		return ErrInvalidRecord
	}

	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// FindByToken returns the valid record matching the kind-selected key.
// Validity is part of the query filter.
func (s *MongoStore) FindByToken(ctx context.Context, value string, kind KeyKind) (*Record, error) {
	filter := s.validFilter()
	filter[string(kind)] = value

	var rec Record
	if err := s.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	return &rec, nil
}

// FindAllByUser returns every record for the user, newest CreatedAt first
func (s *MongoStore) FindAllByUser(ctx context.Context, userID string) ([]*Record, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "sessionId", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	var records []*Record
	if err := cursor.All(ctx, &records); err != nil {
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	return records, nil
}

// FindByPhoneHash returns the valid record with the given search hash.
func (s *MongoStore) FindByPhoneHash(ctx context.Context, phoneHash string) (*Record, error) {
	filter := s.validFilter()
	filter["phoneHash"] = phoneHash

	var rec Record
	if err := s.coll.FindOne(ctx, filter).Decode(&rec); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStoreUnavailable, err)
	}

	return &rec, nil
}

// UpdateBySessionID applies the patch to an existing record
func (s *MongoStore) UpdateBySessionID(ctx context.Context, sessionID string, patch Patch) error {
	update := bson.M{"$set": bson.M{
		"role":          patch.Role,
		"fullName":      patch.FullName,
		"email":         patch.Email,
		"dob":           patch.DOB,
		"gender":        patch.Gender,
		"profilePhoto":  patch.ProfilePhoto,
		"school":        patch.School,
		"faculty":       patch.Faculty,
		"department":    patch.Department,
		"level":         patch.Level,
		"upid":          patch.UPID,
		"isVerified":    patch.IsVerified,
		"phone":         patch.Phone,
		"phoneHash":     patch.PhoneHash,
		"regNumber":     patch.RegNumber,
		"regNumberHash": patch.RegNumberHash,
		"deviceInfo":    patch.DeviceInfo,
		"ipAddress":     patch.IPAddress,
		"lastActivity":  patch.LastActivity,
		"updatedAt":     patch.UpdatedAt,
		"expiresAt":     patch.ExpiresAt,
	}}

	res, err := s.coll.UpdateOne(ctx, bson.M{"sessionId": sessionID}, update)
	if err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteByUser removes every record for the user except excludeSessionID
func (s *MongoStore) DeleteByUser(ctx context.Context, userID, excludeSessionID string) (int64, error) {
	filter := bson.M{"userId": userID}
	if excludeSessionID != "" {
		filter["sessionId"] = bson.M{"$ne": excludeSessionID}
	}

	res, err := s.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return res.DeletedCount, nil
}

// DeleteBySessionID removes a single record
func (s *MongoStore) DeleteBySessionID(ctx context.Context, sessionID string) error {
	if _, err := s.coll.DeleteMany(ctx, bson.M{"sessionId": sessionID}); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// DeleteInvalid removes every expired, inactive, or signed-out record
func (s *MongoStore) DeleteInvalid(ctx context.Context) (int64, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"expiresAt": bson.M{"$lt": s.now()}},
		bson.M{"isActive": false},
		bson.M{"isSignedIn": false},
	}}

	res, err := s.coll.DeleteMany(ctx, filter)
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return res.DeletedCount, nil
}

// CountByUser returns the number of records for the user, valid or not
func (s *MongoStore) CountByUser(ctx context.Context, userID string) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"userId": userID})
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}
	return count, nil
}

// validFilter is the query-time validity predicate shared by every lookup.
func (s *MongoStore) validFilter() bson.M {
	return bson.M{
		"isActive":   true,
		"isSignedIn": true,
		"expiresAt":  bson.M{"$gt": s.now()},
	}
}
