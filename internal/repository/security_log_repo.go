package repository

import (
	"context"
	"fmt"

	"petadopt/internal/entity"

	"gorm.io/gorm"
)

// SecurityLogRepository records account events: registrations, logins and
// password resets.
type SecurityLogRepository interface {
	Log(ctx context.Context, log *entity.SecurityLog) error
}

type securityLogRepository struct {
	db *gorm.DB
}

func NewSecurityLogRepository(db *gorm.DB) SecurityLogRepository {
	return &securityLogRepository{db: db}
}

func (r *securityLogRepository) Log(ctx context.Context, log *entity.SecurityLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("insert security log %s: %w", log.Action, err)
	}
	return nil
}
