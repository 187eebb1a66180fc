package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserKind string

const (
	KindAdopter   UserKind = "adopter"
	KindVolunteer UserKind = "volunteer"
	KindStaff     UserKind = "staff"
)

// Kinds lists every user kind in account-resolution order.
var Kinds = []UserKind{KindAdopter, KindVolunteer, KindStaff}

func ParseUserKind(value string) (UserKind, bool) {
	kind := UserKind(strings.ToLower(strings.TrimSpace(value)))
	switch kind {
	case KindAdopter, KindVolunteer, KindStaff:
		return kind, true
	}
	return "", false
}

type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
)

// User is implemented by every account kind.
type User interface {
	Base() *Account
	Kind() UserKind
	// Sanitized returns a copy without the password hash and reset fields.
	Sanitized() User
}

type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"type:text;not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(100);not null"`
	LastName     string    `gorm:"type:varchar(100);not null"`
	Phone        *string   `gorm:"type:varchar(30)"`
	Role         UserKind  `gorm:"<-:create;type:varchar(20);not null"`

	Consents datatypes.JSONSlice[Consent] `gorm:"type:jsonb"`

	PasswordResetToken   *string    `gorm:"type:text;index" json:"-"`
	PasswordResetExpires *time.Time `json:"-"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Account) Base() *Account {
	return a
}

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// HasPendingReset reports whether an unconsumed reset token is stored.
func (a *Account) HasPendingReset() bool {
	return a.PasswordResetToken != nil && a.PasswordResetExpires != nil
}

func (a Account) sanitized() Account {
	a.PasswordHash = ""
	a.PasswordResetToken = nil
	a.PasswordResetExpires = nil
	return a
}

type Adopter struct {
	Account
	LivingSituation string         `gorm:"type:varchar(50);not null"`
	PetExperience   pq.StringArray `gorm:"type:text[]"`
}

func (Adopter) TableName() string { return "adopters" }

func (a *Adopter) Kind() UserKind { return KindAdopter }

func (a *Adopter) Sanitized() User {
	c := *a
	c.Account = a.Account.sanitized()
	return &c
}

type Volunteer struct {
	Account
	Availability pq.StringArray `gorm:"type:text[]"`
	Activities   pq.StringArray `gorm:"type:text[]"`
}

func (Volunteer) TableName() string { return "volunteers" }

func (v *Volunteer) Kind() UserKind { return KindVolunteer }

func (v *Volunteer) Sanitized() User {
	c := *v
	c.Account = v.Account.sanitized()
	return &c
}

type Staff struct {
	Account
	Status          StaffStatus `gorm:"type:varchar(20);default:'inactive';not null"`
	EmergencyNumber *string     `gorm:"type:varchar(30)"`
}

func (Staff) TableName() string { return "staff" }

func (s *Staff) Kind() UserKind { return KindStaff }

func (s *Staff) Sanitized() User {
	c := *s
	c.Account = s.Account.sanitized()
	return &c
}

func ParseStaffStatus(value string) (StaffStatus, bool) {
	status := StaffStatus(strings.ToLower(strings.TrimSpace(value)))
	switch status {
	case StaffActive, StaffInactive:
		return status, true
	}
	return "", false
}

func (s *Staff) IsActive() bool {
	return s.Status == StaffActive
}
