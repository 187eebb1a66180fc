package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

type App struct {
	DatabaseURL   string        `envconfig:"DATABASE_URL" required:"true"`
	DBAutoMigrate bool          `envconfig:"DB_AUTO_MIGRATE" default:"true"`
	HTTPAddr      string        `envconfig:"HTTP_ADDR" default:":8080"`
	LogLevel      string        `envconfig:"LOG_LEVEL" default:"info"`
	Timezone      string        `envconfig:"TIMEZONE" default:"Local"`
	JWTSecret     string        `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer     string        `envconfig:"JWT_ISSUER" default:"petadopt"`
	JWTExpireMin  int           `envconfig:"JWT_EXPIRE_MIN" default:"60"`
	ResetTokenTTL time.Duration `envconfig:"RESET_TOKEN_TTL" default:"10m"`
	AppBaseURL    string        `envconfig:"APP_BASE_URL" default:"http://localhost:3000"`
	ResetPath     string        `envconfig:"RESET_PATH" default:"/reset-password"`
	ResendAPIKey  string        `envconfig:"RESEND_API_KEY"`
	EmailFrom     string        `envconfig:"EMAIL_FROM"`
}

// Load reads an optional .env file and then the process environment.
func Load(logger logrus.FieldLogger) (App, error) {
	if err := godotenv.Load(); err != nil && logger != nil {
		logger.WithError(err).Debug("no .env file loaded")
	}
	var cfg App
	if err := envconfig.Process("", &cfg); err != nil {
		return App{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (a App) AccessTokenTTL() time.Duration {
	if a.JWTExpireMin <= 0 {
		return time.Hour
	}
	return time.Duration(a.JWTExpireMin) * time.Minute
}

func (a App) Location() (*time.Location, error) {
	if a.Timezone == "" || a.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(a.Timezone)
}

func (a App) Level() logrus.Level {
	level, err := logrus.ParseLevel(a.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
