package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "Pending"
	ApplicationApproved ApplicationStatus = "Approved"
	ApplicationRejected ApplicationStatus = "Rejected"
)

// ParseApplicationStatus matches case-insensitively.
func ParseApplicationStatus(value string) (ApplicationStatus, bool) {
	for _, status := range []ApplicationStatus{ApplicationPending, ApplicationApproved, ApplicationRejected} {
		if strings.EqualFold(value, string(status)) {
			return status, true
		}
	}
	return "", false
}

type Application struct {
	ID         uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	AdopterID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	PetName    string            `gorm:"type:varchar(100);not null"`
	Reason     string            `gorm:"type:text"`
	Status     ApplicationStatus `gorm:"type:varchar(20);default:'Pending';not null;index"`
	ReviewedBy *uuid.UUID        `gorm:"type:uuid"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
