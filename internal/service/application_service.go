package service

import (
	"context"
	"strings"

	"petadopt/internal/entity"
	"petadopt/internal/repository"

	"github.com/google/uuid"
)

type SubmitApplicationInput struct {
	PetName string
	Reason  string
}

type ApplicationService struct {
	applications repository.ApplicationRepository
	adopters     repository.AccountStore
}

func NewApplicationService(applications repository.ApplicationRepository, adopters repository.AccountStore) *ApplicationService {
	return &ApplicationService{applications: applications, adopters: adopters}
}

func (s *ApplicationService) Submit(ctx context.Context, adopterID uuid.UUID, input SubmitApplicationInput) (*entity.Application, error) {
	petName := strings.TrimSpace(input.PetName)
	if petName == "" {
		return nil, validationError("pet_name is required")
	}
	adopter, err := s.adopters.FindAccountByID(ctx, adopterID)
	if err != nil {
		return nil, persistenceError("find adopter", err)
	}
	if adopter == nil {
		return nil, notFoundError("Adopter not found.")
	}

	application := &entity.Application{
		AdopterID: adopterID,
		PetName:   petName,
		Reason:    strings.TrimSpace(input.Reason),
		Status:    entity.ApplicationPending,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		return nil, persistenceError("create application", err)
	}
	return application, nil
}

func (s *ApplicationService) Get(ctx context.Context, id uuid.UUID) (*entity.Application, error) {
	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		return nil, persistenceError("find application", err)
	}
	if application == nil {
		return nil, notFoundError("Application not found.")
	}
	return application, nil
}

func (s *ApplicationService) ListForAdopter(ctx context.Context, adopterID uuid.UUID) ([]entity.Application, error) {
	applications, err := s.applications.ListByAdopter(ctx, adopterID)
	if err != nil {
		return nil, persistenceError("list adopter applications", err)
	}
	return applications, nil
}

// List returns all applications, filtered by status when one is given.
func (s *ApplicationService) List(ctx context.Context, status string) ([]entity.Application, error) {
	var filter entity.ApplicationStatus
	if status != "" {
		parsed, ok := entity.ParseApplicationStatus(status)
		if !ok {
			return nil, validationError("unknown application status %q", status)
		}
		filter = parsed
	}
	applications, err := s.applications.List(ctx, filter)
	if err != nil {
		return nil, persistenceError("list applications", err)
	}
	return applications, nil
}

func (s *ApplicationService) UpdateStatus(
	ctx context.Context,
	id uuid.UUID,
	status string,
	reviewer uuid.UUID,
) (*entity.Application, error) {
	parsed, ok := entity.ParseApplicationStatus(status)
	if !ok {
		return nil, validationError("unknown application status %q", status)
	}
	application, err := s.applications.UpdateStatus(ctx, id, parsed, reviewer)
	if err != nil {
		return nil, persistenceError("update application status", err)
	}
	if application == nil {
		return nil, notFoundError("Application not found.")
	}
	return application, nil
}
