package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type SecurityAction string

const (
	Registered     SecurityAction = "registered"
	LoginSuccess   SecurityAction = "login_success"
	LoginFailed    SecurityAction = "login_failed"
	ResetRequested SecurityAction = "password_reset_requested"
	Reset          SecurityAction = "password_reset"
	ProfileUpdated SecurityAction = "profile_updated"
)

type SecurityLog struct {
	ID uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`

	UserID   *uuid.UUID `gorm:"type:uuid;index"`
	UserKind UserKind   `gorm:"type:varchar(20)"`

	IPAddress *string        `gorm:"type:varchar(45)"`
	Action    SecurityAction `gorm:"type:varchar(40);not null"`

	Metadata datatypes.JSON

	CreatedAt time.Time
}
