package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"petadopt/api/handler"
	apiMiddleware "petadopt/api/middleware"
	"petadopt/api/routes"
	"petadopt/config"
	"petadopt/internal/entity"
	"petadopt/internal/metrics"
	"petadopt/internal/repository"
	"petadopt/internal/service"
	"petadopt/internal/utils"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	cfg, err := config.Load(logger)
	if err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}
	logger.SetLevel(cfg.Level())

	location, err := cfg.Location()
	if err != nil {
		logger.WithError(err).Fatal("invalid TIMEZONE")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database := config.NewDatabase(cfg.DatabaseURL, logger)
	db, err := database.Connect(ctx)
	if err != nil {
		logger.WithError(err).Fatal("database unavailable")
	}
	defer func() {
		if err := database.Disconnect(); err != nil {
			logger.WithError(err).Warn("database disconnect")
		}
	}()
	if cfg.DBAutoMigrate {
		if err := database.AutoMigrate(); err != nil {
			logger.WithError(err).Fatal("database migration failed")
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.New(registry)

	accessManager := utils.JWTManager{
		Secret:         []byte(cfg.JWTSecret),
		Issuer:         cfg.JWTIssuer,
		AccessTokenTTL: cfg.AccessTokenTTL(),
	}
	accessIssuer := service.JWTAccessIssuer{Manager: &accessManager}

	directories := service.Directories{
		Adopters:   repository.NewDirectory[entity.Adopter](db),
		Volunteers: repository.NewDirectory[entity.Volunteer](db),
		Staff:      repository.NewDirectory[entity.Staff](db),
	}
	securityRepo := repository.NewSecurityLogRepository(db)

	var emailSender service.EmailSender
	if cfg.ResendAPIKey != "" && cfg.EmailFrom != "" {
		resendSender := service.NewResendEmailSender(cfg.ResendAPIKey, cfg.EmailFrom, cfg.AppBaseURL)
		resendSender.ResetPath = cfg.ResetPath
		emailSender = resendSender
	} else {
		logger.Warn("RESEND_API_KEY or EMAIL_FROM not set, reset emails go to the log")
		emailSender = service.ConsoleEmailSender{Logger: logger, AppBaseURL: cfg.AppBaseURL, ResetPath: cfg.ResetPath}
	}

	authService := service.NewAuthService(
		directories,
		securityRepo,
		emailSender,
		service.BcryptPasswordHasher{},
		accessIssuer,
		service.RealClock{},
		service.AuthConfig{ResetTokenTTL: cfg.ResetTokenTTL},
		appMetrics,
		logger,
	)
	profileService := service.NewProfileService(directories, securityRepo, logger)
	volunteerService := service.NewVolunteerService(directories.Volunteers, service.RealClock{}, location)
	taskService := service.NewTaskService(repository.NewTaskRepository(db), directories.Volunteers)
	applicationService := service.NewApplicationService(repository.NewApplicationRepository(db), directories.Adopters)

	validate := validator.New()

	app := echo.New()
	app.HideBanner = true
	app.HidePort = true
	app.Use(echoMiddleware.Recover())
	app.Use(appMetrics.Middleware())
	app.Use(echoMiddleware.RequestLoggerWithConfig(echoMiddleware.RequestLoggerConfig{
		LogStatus:   true,
		LogMethod:   true,
		LogURI:      true,
		LogRemoteIP: true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echoMiddleware.RequestLoggerValues) error {
			entry := logger.WithFields(logrus.Fields{
				"status": v.Status,
				"method": v.Method,
				"uri":    v.URI,
				"ip":     v.RemoteIP,
			})
			if v.Error != nil {
				entry.WithError(v.Error).Error("request")
				return nil
			}
			entry.Info("request")
			return nil
		},
	}))

	router := routes.NewRouter(app, apiMiddleware.AuthMiddleware{Tokens: authService})
	router.Auth = handler.NewAuthHandler(authService, validate, logger)
	router.Profiles = handler.NewProfileHandler(profileService, validate, logger)
	router.Volunteers = handler.NewVolunteerHandler(volunteerService, logger)
	router.Tasks = handler.NewTaskHandler(taskService, validate, logger)
	router.Applications = handler.NewApplicationHandler(applicationService, validate, logger)
	router.Health = handler.NewHealthHandler(database, logger)
	router.Metrics = metrics.Handler(registry)
	router.RegisterRoutes()

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.Shutdown(shutdownCtx); err != nil {
			logger.WithError(err).Warn("server shutdown")
		}
	}()

	logger.WithField("addr", cfg.HTTPAddr).Info("server started")
	if err := app.StartServer(server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Fatal("server stopped")
	}
}
