package handler

import (
	"errors"
	"net/http"

	"petadopt/internal/dto"
	"petadopt/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type TaskHandler struct {
	Service  *service.TaskService
	Validate *validator.Validate
	Logger   logrus.FieldLogger
}

func NewTaskHandler(svc *service.TaskService, validate *validator.Validate, logger logrus.FieldLogger) *TaskHandler {
	return &TaskHandler{Service: svc, Validate: validate, Logger: logger}
}

func (h *TaskHandler) Create(c echo.Context) error {
	var req dto.CreateTaskRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	task, err := h.Service.Create(c.Request().Context(), service.TaskInput{
		Title:          req.Title,
		Description:    req.Description,
		Type:           req.Type,
		Category:       req.Category,
		Priority:       req.Priority,
		EstimatedHours: req.EstimatedHours,
		Points:         req.Points,
		DueDate:        req.DueDate,
		Location:       req.Location,
	})
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusCreated, dto.TaskResponseFromEntity(task))
}

func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.Service.List(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.TaskResponsesFromEntities(tasks))
}

func (h *TaskHandler) Assign(c echo.Context) error {
	taskID, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	var req dto.AssignTaskRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	volunteerID, err := uuid.Parse(req.VolunteerID)
	if err != nil {
		return writeError(c, http.StatusBadRequest, errors.New("Volunteer ID is required."))
	}
	task, err := h.Service.Assign(c.Request().Context(), taskID, volunteerID)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.TaskResponseFromEntity(task))
}
