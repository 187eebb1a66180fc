package entity

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskUnassigned TaskStatus = "Unassigned"
	TaskAssigned   TaskStatus = "Assigned"
)

// Task is a volunteer activity that staff schedule and assign.
type Task struct {
	ID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Title          string    `gorm:"type:varchar(200);not null"`
	Description    string    `gorm:"type:text"`
	Type           string    `gorm:"type:varchar(50);not null"`
	Category       string    `gorm:"type:varchar(50);not null"`
	Priority       string    `gorm:"type:varchar(20);not null"`
	EstimatedHours float64   `gorm:"not null"`
	Points         int       `gorm:"not null"`
	DueDate        time.Time `gorm:"not null"`
	Location       string    `gorm:"type:varchar(200);not null"`

	Status     TaskStatus `gorm:"type:varchar(20);default:'Unassigned';not null"`
	AssignedTo *uuid.UUID `gorm:"type:uuid;index"`

	CreatedAt time.Time
}

func (Task) TableName() string { return "activity_logs" }
