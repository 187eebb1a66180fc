package handler

import (
	"errors"
	"net/http"

	"petadopt/api/middleware"
	"petadopt/internal/dto"
	"petadopt/internal/entity"
	"petadopt/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const msgRegistered = "Registration successful!"

type AuthHandler struct {
	Service  *service.AuthService
	Validate *validator.Validate
	Logger   logrus.FieldLogger
}

func NewAuthHandler(svc *service.AuthService, validate *validator.Validate, logger logrus.FieldLogger) *AuthHandler {
	return &AuthHandler{Service: svc, Validate: validate, Logger: logger}
}

func (h *AuthHandler) RegisterAdopter(c echo.Context) error {
	var req dto.AdopterRegisterRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	user, err := h.Service.RegisterAdopter(c.Request().Context(), service.AdopterRegistration{
		RegisterInput:   h.registerInput(c, req.RegisterRequest),
		LivingSituation: req.LivingSituation,
		PetExperience:   req.PetExperience,
	})
	return h.registered(c, user, err)
}

func (h *AuthHandler) RegisterVolunteer(c echo.Context) error {
	var req dto.VolunteerRegisterRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	user, err := h.Service.RegisterVolunteer(c.Request().Context(), service.VolunteerRegistration{
		RegisterInput: h.registerInput(c, req.RegisterRequest),
		Availability:  req.Availability,
		Activities:    req.Activities,
	})
	return h.registered(c, user, err)
}

func (h *AuthHandler) RegisterStaff(c echo.Context) error {
	var req dto.StaffRegisterRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	user, err := h.Service.RegisterStaff(c.Request().Context(), service.StaffRegistration{
		RegisterInput:   h.registerInput(c, req.RegisterRequest),
		EmergencyNumber: req.EmergencyNumber,
	})
	return h.registered(c, user, err)
}

// Login returns a handler bound to one account kind, as the login routes are
// per kind.
func (h *AuthHandler) Login(kind entity.UserKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req dto.LoginRequest
		if ok, err := bind(c, h.Validate, &req); !ok {
			return err
		}
		result, err := h.Service.Login(c.Request().Context(), service.LoginInput{
			Email:     req.Email,
			Password:  req.Password,
			Role:      string(kind),
			IPAddress: stringPtr(c.RealIP()),
		})
		if err != nil {
			return writeServiceError(c, h.Logger, err)
		}
		return c.JSON(http.StatusOK, dto.LoginResponse{
			Token:     result.Token,
			ExpiresIn: result.ExpiresIn,
			User:      dto.UserResponseFromEntity(result.User),
		})
	}
}

func (h *AuthHandler) PasswordForgot(c echo.Context) error {
	var req dto.PasswordForgotRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	message, err := h.Service.RequestPasswordReset(c.Request().Context(), req.Email)
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *AuthHandler) PasswordReset(c echo.Context) error {
	var req dto.PasswordResetRequest
	if ok, err := bind(c, h.Validate, &req); !ok {
		return err
	}
	message, err := h.Service.ResetPassword(c.Request().Context(), req.Token, req.Password)
	if err != nil {
		// A bad or expired reset token is a client error here, not an
		// authentication failure.
		if errors.Is(err, service.ErrInvalidToken) {
			return writeError(c, http.StatusBadRequest, err)
		}
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusOK, dto.MessageResponse{Message: message})
}

func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return unauthorized(c)
	}
	return c.JSON(http.StatusOK, dto.MeResponse{
		UserID: identity.UserID.String(),
		Role:   string(identity.Role),
	})
}

func (h *AuthHandler) registerInput(c echo.Context, req dto.RegisterRequest) service.RegisterInput {
	return service.RegisterInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  req.Password,
		Phone:     req.Phone,
		Consents:  req.Consents,
		IPAddress: stringPtr(c.RealIP()),
	}
}

func (h *AuthHandler) registered(c echo.Context, user entity.User, err error) error {
	if err != nil {
		return writeServiceError(c, h.Logger, err)
	}
	return c.JSON(http.StatusCreated, dto.RegisterResponse{
		Message: msgRegistered,
		User:    dto.UserResponseFromEntity(user),
	})
}
