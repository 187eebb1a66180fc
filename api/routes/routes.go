package routes

import (
	"net/http"
	"time"

	"petadopt/api/handler"
	"petadopt/api/middleware"
	"petadopt/internal/entity"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	Profiles       *handler.ProfileHandler
	Volunteers     *handler.VolunteerHandler
	Tasks          *handler.TaskHandler
	Applications   *handler.ApplicationHandler
	Health         *handler.HealthHandler
	Metrics        http.Handler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(e *echo.Echo, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo
	requireAuth := r.AuthMiddleware.RequireAuth
	staffOnly := middleware.RequireRole(entity.KindStaff)

	if r.Health != nil {
		e.GET("/health", r.Health.Check)
	}
	if r.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(r.Metrics))
	}

	api := e.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register/adopter", r.Auth.RegisterAdopter, r.AuthRate.Middleware())
	auth.POST("/register/volunteer", r.Auth.RegisterVolunteer, r.AuthRate.Middleware())
	auth.POST("/register/staff", r.Auth.RegisterStaff, r.AuthRate.Middleware())
	for _, kind := range entity.Kinds {
		auth.POST("/login/"+string(kind), r.Auth.Login(kind), r.LoginRate.Middleware())
	}
	auth.POST("/password/forgot", r.Auth.PasswordForgot, r.LoginRate.Middleware())
	auth.POST("/password/reset", r.Auth.PasswordReset, r.AuthRate.Middleware())
	auth.GET("/me", r.Auth.Me, requireAuth)

	if r.Profiles != nil {
		auth.GET("/profile/:kind/:id", r.Profiles.Get, requireAuth)
		auth.PUT("/profile/:kind/:id", r.Profiles.Update, requireAuth)
		api.PUT("/staff/:id/status", r.Profiles.SetStaffStatus, requireAuth, staffOnly)
	}

	if r.Volunteers != nil {
		api.GET("/volunteers/available", r.Volunteers.Available, requireAuth, staffOnly)
	}

	if r.Tasks != nil {
		tasks := api.Group("/tasks", requireAuth, staffOnly)
		tasks.POST("", r.Tasks.Create)
		tasks.GET("", r.Tasks.List)
		tasks.PUT("/:id/assign", r.Tasks.Assign)
	}

	if r.Applications != nil {
		applications := api.Group("/applications", requireAuth)
		applications.POST("/submit", r.Applications.Submit, middleware.RequireRole(entity.KindAdopter))
		applications.GET("/adopter/:adopterId", r.Applications.ListForAdopter)
		applications.GET("", r.Applications.List, staffOnly)
		applications.GET("/:applicationId", r.Applications.Get)
		applications.PUT("/:applicationId/status", r.Applications.UpdateStatus, staffOnly)
	}
}
