package repository

import (
	"context"
	"errors"

	"petadopt/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *entity.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error)
	ListByAdopter(ctx context.Context, adopterID uuid.UUID) ([]entity.Application, error)
	List(ctx context.Context, status entity.ApplicationStatus) ([]entity.Application, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ApplicationStatus, reviewer uuid.UUID) (*entity.Application, error)
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(ctx context.Context, application *entity.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	var application entity.Application
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&application).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &application, nil
}

func (r *applicationRepository) ListByAdopter(ctx context.Context, adopterID uuid.UUID) ([]entity.Application, error) {
	var applications []entity.Application
	err := r.db.WithContext(ctx).
		Where("adopter_id = ?", adopterID).
		Order("created_at DESC").
		Find(&applications).Error
	if err != nil {
		return nil, err
	}
	return applications, nil
}

// List returns every application, or only those in status when it is set.
func (r *applicationRepository) List(ctx context.Context, status entity.ApplicationStatus) ([]entity.Application, error) {
	var applications []entity.Application
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&applications).Error; err != nil {
		return nil, err
	}
	return applications, nil
}

func (r *applicationRepository) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status entity.ApplicationStatus,
	reviewer uuid.UUID,
) (*entity.Application, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status":      status,
			"reviewed_by": reviewer,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}
