package handler

import (
	"errors"
	"net/http"

	"petadopt/api/middleware"
	"petadopt/internal/dto"
	"petadopt/internal/entity"
	"petadopt/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ProfileHandler struct {
	Service  *service.ProfileService
	Validate *validator.Validate
	Logger   logrus.FieldLogger
}

func NewProfileHandler(svc *service.ProfileService, validate *validator.Validate, logger logrus.FieldLogger) *ProfileHandler {
	return &ProfileHandler{Service: svc, Validate: validate, Logger: logger}
}

func (h *ProfileHandler) Get(c echo.Context) error {
	kind, id, err := h.target(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if !h.allowed(c, kind, id) {
		return forbidden(c)
	}
	user, err := h.Service.Get(c.Request().Context(), kind, id)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *ProfileHandler) Update(c echo.Context) error {
	kind, id, err := h.target(c)
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	if !h.allowed(c, kind, id) {
		return forbidden(c)
	}
	var req dto.ProfileUpdateRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	user, err := h.Service.Update(c.Request().Context(), kind, id, service.ProfileUpdate{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Phone:           req.Phone,
		LivingSituation: req.LivingSituation,
		PetExperience:   req.PetExperience,
		Availability:    req.Availability,
		Activities:      req.Activities,
		Role:            req.Role,
	})
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *ProfileHandler) SetStaffStatus(c echo.Context) error {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.StaffStatusRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	user, err := h.Service.SetStaffStatus(c.Request().Context(), id, req.Status, identity.UserID)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponseFromEntity(user))
}

func (h *ProfileHandler) target(c echo.Context) (entity.UserKind, uuid.UUID, error) {
	kind, ok := entity.ParseUserKind(c.Param("kind"))
	if !ok {
		return "", uuid.Nil, errors.New("invalid user type")
	}
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		return "", uuid.Nil, err
	}
	return kind, id, nil
}

func (h *ProfileHandler) allowed(c echo.Context, kind entity.UserKind, id uuid.UUID) bool {
	identity, ok := middleware.IdentityFromContext(c)
	return ok && ownerOrStaff(identity, kind, id)
}
