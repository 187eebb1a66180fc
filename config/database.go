package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"petadopt/internal/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	connectAttempts = 3
	connectDelay    = 5 * time.Second
)

var ErrNotConnected = errors.New("database not connected")

// Database owns the gorm handle. The process entry point drives its
// lifecycle; business code only receives the *gorm.DB.
type Database struct {
	DSN    string
	Logger logrus.FieldLogger

	// open and delay are replaced in tests.
	open  func(dsn string) (*gorm.DB, error)
	delay time.Duration

	db *gorm.DB
}

func NewDatabase(dsn string, logger logrus.FieldLogger) *Database {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Database{DSN: dsn, Logger: logger, open: openPostgres, delay: connectDelay}
}

func openPostgres(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		PrepareStmt:    false,
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
}

// Connect opens the database, retrying a few times before giving up.
func (d *Database) Connect(ctx context.Context) (*gorm.DB, error) {
	var lastErr error
	for attempt := 1; attempt <= connectAttempts; attempt++ {
		db, err := d.open(d.DSN)
		if err == nil {
			err = ping(ctx, db)
		}
		if err == nil {
			d.db = db
			d.Logger.WithField("attempt", attempt).Info("database connected")
			return db, nil
		}
		lastErr = err
		d.Logger.WithError(err).WithField("attempt", attempt).Warn("database connection failed")
		if attempt == connectAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(d.delay):
		}
	}
	return nil, fmt.Errorf("connect database after %d attempts: %w", connectAttempts, lastErr)
}

func (d *Database) DB() *gorm.DB {
	return d.db
}

func (d *Database) AutoMigrate() error {
	if d.db == nil {
		return ErrNotConnected
	}
	return d.db.AutoMigrate(
		&entity.Adopter{},
		&entity.Volunteer{},
		&entity.Staff{},
		&entity.Task{},
		&entity.Application{},
		&entity.SecurityLog{},
	)
}

func (d *Database) HealthCheck(ctx context.Context) error {
	if d.db == nil {
		return ErrNotConnected
	}
	return ping(ctx, d.db)
}

func (d *Database) Disconnect() error {
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	d.db = nil
	return sqlDB.Close()
}

func ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
