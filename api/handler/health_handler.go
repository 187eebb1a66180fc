package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type HealthHandler struct {
	Database HealthChecker
	Logger   logrus.FieldLogger
	Timeout  time.Duration
}

func NewHealthHandler(database HealthChecker, logger logrus.FieldLogger) *HealthHandler {
	return &HealthHandler{Database: database, Logger: logger, Timeout: 2 * time.Second}
}

func (h *HealthHandler) Check(c echo.Context) error {
	ctx := c.Request().Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}
	if err := h.Database.HealthCheck(ctx); err != nil {
		if h.Logger != nil {
			h.Logger.WithError(err).Warn("health check failed")
		}
		return c.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "database": "down"})
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok", "database": "up"})
}
