package dto

import (
	"time"

	"petadopt/internal/entity"
)

type RegisterRequest struct {
	FirstName string   `json:"first_name" validate:"required"`
	LastName  string   `json:"last_name" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=6"`
	Phone     string   `json:"phone" validate:"omitempty,max=30"`
	Consents  []string `json:"consents" validate:"omitempty,dive,required"`
}

type AdopterRegisterRequest struct {
	RegisterRequest
	LivingSituation string   `json:"living_situation" validate:"required"`
	PetExperience   []string `json:"pet_experience"`
}

type VolunteerRegisterRequest struct {
	RegisterRequest
	Availability []string `json:"availability" validate:"required,min=1,dive,required"`
	Activities   []string `json:"activities"`
}

type StaffRegisterRequest struct {
	RegisterRequest
	EmergencyNumber string `json:"emergency_number" validate:"omitempty,max=30"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int64        `json:"expires_in"`
	User      UserResponse `json:"user"`
}

type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PasswordForgotRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type PasswordResetRequest struct {
	Token    string `json:"token" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// ProfileUpdateRequest is a partial update; absent fields stay unchanged.
// Role is decoded so whole records can be sent back, and then ignored.
type ProfileUpdateRequest struct {
	FirstName       *string  `json:"first_name" validate:"omitempty,min=1"`
	LastName        *string  `json:"last_name" validate:"omitempty,min=1"`
	Phone           *string  `json:"phone" validate:"omitempty,max=30"`
	LivingSituation *string  `json:"living_situation"`
	PetExperience   []string `json:"pet_experience"`
	Availability    []string `json:"availability" validate:"omitempty,dive,required"`
	Activities      []string `json:"activities"`
	Role            *string  `json:"role"`
}

type StaffStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive"`
}

type MeResponse struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

type UserResponse struct {
	ID        string           `json:"id"`
	Email     string           `json:"email"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	Phone     *string          `json:"phone,omitempty"`
	Role      string           `json:"role"`
	Consents  []entity.Consent `json:"consents"`

	LivingSituation string   `json:"living_situation,omitempty"`
	PetExperience   []string `json:"pet_experience,omitempty"`
	Availability    []string `json:"availability,omitempty"`
	Activities      []string `json:"activities,omitempty"`
	Status          string   `json:"status,omitempty"`
	EmergencyNumber *string  `json:"emergency_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserResponseFromEntity never carries the password hash or reset fields.
func UserResponseFromEntity(user entity.User) UserResponse {
	account := user.Base()
	response := UserResponse{
		ID:        account.ID.String(),
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
		Phone:     account.Phone,
		Role:      string(account.Role),
		Consents:  account.Consents,
		CreatedAt: account.CreatedAt,
		UpdatedAt: account.UpdatedAt,
	}
	if response.Consents == nil {
		response.Consents = []entity.Consent{}
	}

	switch typed := user.(type) {
	case *entity.Adopter:
		response.LivingSituation = typed.LivingSituation
		response.PetExperience = typed.PetExperience
	case *entity.Volunteer:
		response.Availability = typed.Availability
		response.Activities = typed.Activities
	case *entity.Staff:
		response.Status = string(typed.Status)
		response.EmergencyNumber = typed.EmergencyNumber
	}
	return response
}

func UserResponsesFromEntities(users []entity.User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, UserResponseFromEntity(user))
	}
	return responses
}
