package handler

import (
	"net/http"

	"petadopt/api/middleware"
	"petadopt/internal/dto"
	"petadopt/internal/entity"
	"petadopt/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type ApplicationHandler struct {
	Service  *service.ApplicationService
	Validate *validator.Validate
	Logger   logrus.FieldLogger
}

func NewApplicationHandler(svc *service.ApplicationService, validate *validator.Validate, logger logrus.FieldLogger) *ApplicationHandler {
	return &ApplicationHandler{Service: svc, Validate: validate, Logger: logger}
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.SubmitApplicationRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	application, err := h.Service.Submit(c.Request().Context(), identity.UserID, service.SubmitApplicationInput{
		PetName: req.PetName,
		Reason:  req.Reason,
	})
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusCreated, dto.ApplicationResponseFromEntity(application))
}

func (h *ApplicationHandler) ListForAdopter(c echo.Context) error {
	adopterID, err := parseUUIDParam(c, "adopterId")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	identity, ok := middleware.IdentityFromContext(c)
	if !ok || !ownerOrStaff(identity, entity.KindAdopter, adopterID) {
		return forbidden(c)
	}
	applications, err := h.Service.ListForAdopter(c.Request().Context(), adopterID)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.ApplicationResponsesFromEntities(applications))
}

func (h *ApplicationHandler) Get(c echo.Context) error {
	id, err := parseUUIDParam(c, "applicationId")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	application, err := h.Service.Get(c.Request().Context(), id)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	if !ownerOrStaff(identity, entity.KindAdopter, application.AdopterID) {
		return forbidden(c)
	}
	return c.JSON(http.StatusOK, dto.ApplicationResponseFromEntity(application))
}

func (h *ApplicationHandler) List(c echo.Context) error {
	applications, err := h.Service.List(c.Request().Context(), c.QueryParam("status"))
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.ApplicationResponsesFromEntities(applications))
}

func (h *ApplicationHandler) UpdateStatus(c echo.Context) error {
	id, err := parseUUIDParam(c, "applicationId")
	if err != nil {
		return writeError(c, http.StatusBadRequest, err)
	}
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	var req dto.UpdateApplicationStatusRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	application, err := h.Service.UpdateStatus(c.Request().Context(), id, req.Status, identity.UserID)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.ApplicationResponseFromEntity(application))
}
