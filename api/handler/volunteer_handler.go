package handler

import (
	"net/http"

	"petadopt/internal/dto"
	"petadopt/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type VolunteerHandler struct {
	Service *service.VolunteerService
	Logger  logrus.FieldLogger
}

func NewVolunteerHandler(svc *service.VolunteerService, logger logrus.FieldLogger) *VolunteerHandler {
	return &VolunteerHandler{Service: svc, Logger: logger}
}

func (h *VolunteerHandler) Available(c echo.Context) error {
	users, err := h.Service.Available(c.Request().Context())
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.UserResponsesFromEntities(users))
}
