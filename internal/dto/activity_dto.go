package dto

import (
	"time"

	"petadopt/internal/entity"
)

type CreateTaskRequest struct {
	Title          string    `json:"title" validate:"required"`
	Description    string    `json:"description"`
	Type           string    `json:"type" validate:"required"`
	Category       string    `json:"category" validate:"required"`
	Priority       string    `json:"priority" validate:"required"`
	EstimatedHours float64   `json:"estimated_hours" validate:"required,gt=0"`
	Points         int       `json:"points" validate:"gte=0"`
	DueDate        time.Time `json:"due_date" validate:"required"`
	Location       string    `json:"location" validate:"required"`
}

type AssignTaskRequest struct {
	VolunteerID string `json:"volunteer_id" validate:"required,uuid"`
}

type TaskResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Type           string    `json:"type"`
	Category       string    `json:"category"`
	Priority       string    `json:"priority"`
	EstimatedHours float64   `json:"estimated_hours"`
	Points         int       `json:"points"`
	DueDate        time.Time `json:"due_date"`
	Location       string    `json:"location"`
	Status         string    `json:"status"`
	AssignedTo     *string   `json:"assigned_to,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func TaskResponseFromEntity(task *entity.Task) TaskResponse {
	response := TaskResponse{
		ID:             task.ID.String(),
		Title:          task.Title,
		Description:    task.Description,
		Type:           task.Type,
		Category:       task.Category,
		Priority:       task.Priority,
		EstimatedHours: task.EstimatedHours,
		Points:         task.Points,
		DueDate:        task.DueDate,
		Location:       task.Location,
		Status:         string(task.Status),
		CreatedAt:      task.CreatedAt,
	}
	if task.AssignedTo != nil {
		assigned := task.AssignedTo.String()
		response.AssignedTo = &assigned
	}
	return response
}

func TaskResponsesFromEntities(tasks []entity.Task) []TaskResponse {
	responses := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, TaskResponseFromEntity(&tasks[i]))
	}
	return responses
}

type SubmitApplicationRequest struct {
	PetName string `json:"pet_name" validate:"required"`
	Reason  string `json:"reason"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Approved Rejected pending approved rejected"`
}

type ApplicationResponse struct {
	ID         string    `json:"id"`
	AdopterID  string    `json:"adopter_id"`
	PetName    string    `json:"pet_name"`
	Reason     string    `json:"reason,omitempty"`
	Status     string    `json:"status"`
	ReviewedBy *string   `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ApplicationResponseFromEntity(application *entity.Application) ApplicationResponse {
	response := ApplicationResponse{
		ID:        application.ID.String(),
		AdopterID: application.AdopterID.String(),
		PetName:   application.PetName,
		Reason:    application.Reason,
		Status:    string(application.Status),
		CreatedAt: application.CreatedAt,
		UpdatedAt: application.UpdatedAt,
	}
	if application.ReviewedBy != nil {
		reviewer := application.ReviewedBy.String()
		response.ReviewedBy = &reviewer
	}
	return response
}

func ApplicationResponsesFromEntities(applications []entity.Application) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(applications))
	for i := range applications {
		responses = append(responses, ApplicationResponseFromEntity(&applications[i]))
	}
	return responses
}
