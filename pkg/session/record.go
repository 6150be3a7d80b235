package session

import (
	"time"

	"github.com/notebank/notebank/pkg/validator"
)

// Role enumerates the platform roles a session principal can hold.
type Role string

const (
	RoleAdmin       Role = "admin"
	RoleMod         Role = "mod"
	RoleContributor Role = "contributor"
	RoleStudent     Role = "student"
	RoleDevSupport  Role = "devsupport"
)

// Roles lists every known role, for validation and choice rules.
var Roles = []Role{RoleAdmin, RoleMod, RoleContributor, RoleStudent, RoleDevSupport}

// Valid reports whether the role is one of the known platform roles.
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// Record is one session document: one instance per login/refresh cycle,
// owned exclusively by the Manager. SessionID is the primary handle for
// cookie-based lookup; SessionToken is the bearer secret and a secondary
// lookup key. Phone and RegNumber hold ciphertext only, with deterministic
// search hashes alongside; plaintext is never persisted.
type Record struct {
	SessionID    string `bson:"sessionId" json:"sessionId"`
	UserID       string `bson:"userId" json:"userId"`
	SessionToken string `bson:"sessionToken" json:"-"`
	Role         Role   `bson:"role" json:"role"`

	// Mutable profile snapshot, refreshed on every upsert
	FullName     string `bson:"fullName" json:"fullName"`
	Email        string `bson:"email" json:"email"`
	DOB          string `bson:"dob" json:"dob"`
	Gender       string `bson:"gender" json:"gender"`
	ProfilePhoto string `bson:"profilePhoto,omitempty" json:"profilePhoto,omitempty"`
	School       string `bson:"school" json:"school"`
	Faculty      string `bson:"faculty" json:"faculty"`
	Department   string `bson:"department" json:"department"`
	Level        string `bson:"level" json:"level"`
	UPID         string `bson:"upid" json:"upid"`
	IsVerified   bool   `bson:"isVerified" json:"isVerified"`

	// Sensitive fields: ciphertext + search hash, never plaintext
	Phone         string `bson:"phone" json:"-"`
	PhoneHash     string `bson:"phoneHash" json:"-"`
	RegNumber     string `bson:"regNumber" json:"-"`
	RegNumberHash string `bson:"regNumberHash" json:"-"`

	// Diagnostic metadata, no correctness role
	DeviceInfo string `bson:"deviceInfo,omitempty" json:"deviceInfo,omitempty"`
	IPAddress  string `bson:"ipAddress,omitempty" json:"ipAddress,omitempty"`

	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
	LastActivity time.Time `bson:"lastActivity" json:"lastActivity"`
	ExpiresAt    time.Time `bson:"expiresAt" json:"expiresAt"`

	IsActive   bool `bson:"isActive" json:"isActive"`
	IsSignedIn bool `bson:"isSignedIn" json:"isSignedIn"`
}

// IsValid reports whether the record is usable at the given instant:
// active, signed in, and not yet expired.
func (r *Record) IsValid(now time.Time) bool {
	return r != nil && r.IsActive && r.IsSignedIn && r.ExpiresAt.After(now)
}

// IsFresh reports whether the record is valid and within the freshness
// window, i.e. eligible for silent refresh instead of replacement.
func (r *Record) IsFresh(now time.Time, window time.Duration) bool {
	return r.IsValid(now) && now.Sub(r.LastActivity) < window
}

// Profile is the mutable identity snapshot carried by an upsert request.
// All fields are required except ProfilePhoto.
type Profile struct {
	FullName     string `json:"fullName"`
	Email        string `json:"email"`
	DOB          string `json:"dob"`
	Phone        string `json:"phone"`
	Gender       string `json:"gender"`
	Role         Role   `json:"role"`
	School       string `json:"school"`
	Faculty      string `json:"faculty"`
	Department   string `json:"department"`
	RegNumber    string `json:"regNumber"`
	Level        string `json:"level"`
	UPID         string `json:"upid"`
	IsVerified   bool   `json:"isVerified"`
	ProfilePhoto string `json:"profilePhoto,omitempty"`
}

// Validate checks that every required profile field is present and well
// formed. A missing field is a validation failure, never a partial session.
func (p Profile) Validate() error {
	roles := make([]string, len(Roles))
	for i, r := range Roles {
		roles[i] = string(r)
	}

	return validator.Apply(
		validator.Required("fullName", p.FullName),
		validator.Required("email", p.Email),
		validator.ValidEmail("email", p.Email),
		validator.Required("dob", p.DOB),
		validator.Required("phone", p.Phone),
		validator.Required("gender", p.Gender),
		validator.Required("role", string(p.Role)),
		validator.ValidRole("role", string(p.Role), roles),
		validator.Required("school", p.School),
		validator.Required("faculty", p.Faculty),
		validator.Required("department", p.Department),
		validator.Required("regNumber", p.RegNumber),
		validator.Required("level", p.Level),
		validator.Required("upid", p.UPID),
	)
}
