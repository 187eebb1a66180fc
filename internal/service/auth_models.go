package service

import (
	"petadopt/internal/entity"

	"github.com/google/uuid"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Phone     string
	Consents  []string
	IPAddress *string
}

type AdopterRegistration struct {
	RegisterInput
	LivingSituation string
	PetExperience   []string
}

type VolunteerRegistration struct {
	RegisterInput
	Availability []string
	Activities   []string
}

type StaffRegistration struct {
	RegisterInput
	EmergencyNumber string
}

type LoginInput struct {
	Email     string
	Password  string
	Role      string
	IPAddress *string
}

type LoginResult struct {
	Token     string
	ExpiresIn int64
	User      entity.User
}

// Identity is what a bearer token proves about its holder.
type Identity struct {
	UserID uuid.UUID
	Role   entity.UserKind
}
