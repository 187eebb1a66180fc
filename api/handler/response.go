package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"petadopt/internal/entity"
	"petadopt/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

func decodeJSON(c echo.Context, target any) error {
	decoder := json.NewDecoder(c.Request().Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(target); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}

// bind decodes and validates a JSON body, writing the 400 itself. It
// reports false when the handler should return immediately.
func bind(c echo.Context, validate *validator.Validate, target any) (bool, error) {
	if err := decodeJSON(c, target); err != nil {
		return false, writeError(c, http.StatusBadRequest, err)
	}
	if validate == nil {
		return true, nil
	}
	if err := validate.Struct(target); err != nil {
		return false, writeError(c, http.StatusBadRequest, validationMessage(err))
	}
	return true, nil
}

func validationMessage(err error) error {
	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}
	fields := make([]string, 0, len(fieldErrors))
	for _, fieldError := range fieldErrors {
		fields = append(fields, fieldError.Field())
	}
	return errors.New("invalid or missing fields: " + strings.Join(fields, ", "))
}

func writeError(c echo.Context, status int, err error) error {
	return c.JSON(status, map[string]string{"message": err.Error()})
}

func writeServiceError(c echo.Context, logger logrus.FieldLogger, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, service.ErrAuth), errors.Is(err, service.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		if logger != nil {
			logger.WithError(err).WithFields(logrus.Fields{
				"method": c.Request().Method,
				"uri":    c.Request().RequestURI,
			}).Error("request failed")
		}
		var serviceErr *service.Error
		if !errors.As(err, &serviceErr) {
			err = errors.New(service.MsgInternal)
		}
	}
	return writeError(c, status, err)
}

func unauthorized(c echo.Context) error {
	return writeError(c, http.StatusUnauthorized, errors.New("unauthorized"))
}

func forbidden(c echo.Context) error {
	return writeError(c, http.StatusForbidden, errors.New("forbidden"))
}

// ownerOrStaff reports whether the caller may act on the record of the given
// kind and id.
func ownerOrStaff(identity service.Identity, kind entity.UserKind, id uuid.UUID) bool {
	if identity.Role == entity.KindStaff {
		return true
	}
	return identity.Role == kind && identity.UserID == id
}

func parseUUIDParam(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.New("invalid " + name)
	}
	return id, nil
}

func stringPtr(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}
