package repository

import (
	"context"
	"errors"

	"petadopt/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	List(ctx context.Context) ([]entity.Task, error)
	Assign(ctx context.Context, taskID uuid.UUID, volunteerID uuid.UUID) (*entity.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) List(ctx context.Context) ([]entity.Task, error) {
	var tasks []entity.Task
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) Assign(ctx context.Context, taskID uuid.UUID, volunteerID uuid.UUID) (*entity.Task, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"assigned_to": volunteerID,
			"status":      entity.TaskAssigned,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	var task entity.Task
	err := r.db.WithContext(ctx).Where("id = ?", taskID).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &task, err
}
