package service

import (
	"context"
	"slices"
	"strings"
	"time"

	"petadopt/internal/entity"
	"petadopt/internal/repository"

	"github.com/google/uuid"
)

type TaskInput struct {
	Title          string
	Description    string
	Type           string
	Category       string
	Priority       string
	EstimatedHours float64
	Points         int
	DueDate        time.Time
	Location       string
}

type TaskService struct {
	tasks      repository.TaskRepository
	volunteers repository.AccountStore
}

func NewTaskService(tasks repository.TaskRepository, volunteers repository.AccountStore) *TaskService {
	return &TaskService{tasks: tasks, volunteers: volunteers}
}

func (s *TaskService) Create(ctx context.Context, input TaskInput) (*entity.Task, error) {
	var missing []string
	for column, value := range map[string]string{
		"title":    input.Title,
		"type":     input.Type,
		"category": input.Category,
		"priority": input.Priority,
		"location": input.Location,
	} {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, column)
		}
	}
	if input.DueDate.IsZero() {
		missing = append(missing, "due_date")
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, validationError("Error creating task: missing %s", strings.Join(missing, ", "))
	}
	if input.EstimatedHours <= 0 || input.Points < 0 {
		return nil, validationError("Error creating task: estimatedHours must be positive and points non-negative")
	}

	task := &entity.Task{
		Title:          strings.TrimSpace(input.Title),
		Description:    input.Description,
		Type:           input.Type,
		Category:       input.Category,
		Priority:       input.Priority,
		EstimatedHours: input.EstimatedHours,
		Points:         input.Points,
		DueDate:        input.DueDate,
		Location:       input.Location,
		Status:         entity.TaskUnassigned,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, persistenceError("create task", err)
	}
	return task, nil
}

func (s *TaskService) List(ctx context.Context) ([]entity.Task, error) {
	tasks, err := s.tasks.List(ctx)
	if err != nil {
		return nil, persistenceError("list tasks", err)
	}
	return tasks, nil
}

func (s *TaskService) Assign(ctx context.Context, taskID uuid.UUID, volunteerID uuid.UUID) (*entity.Task, error) {
	if volunteerID == uuid.Nil {
		return nil, validationError("Volunteer ID is required.")
	}
	volunteer, err := s.volunteers.FindAccountByID(ctx, volunteerID)
	if err != nil {
		return nil, persistenceError("find volunteer", err)
	}
	if volunteer == nil {
		return nil, notFoundError("Volunteer not found.")
	}

	task, err := s.tasks.Assign(ctx, taskID, volunteerID)
	if err != nil {
		return nil, persistenceError("assign task", err)
	}
	if task == nil {
		return nil, notFoundError("Task not found.")
	}
	return task, nil
}
