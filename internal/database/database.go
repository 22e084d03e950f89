// Package database opens the local record store.
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/YassineBouzid/phsyckatre-clinick/internal/models"
)

// Open opens the sqlite database at path, creating the file and its parent
// directory when absent, and brings the schema up to date.
// The connection pool is capped at one connection for the process lifetime.
func Open(path string, log zerolog.Logger) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory %s: %w", dir, err)
		}
	}
	return OpenDialector(sqlite.Open(path), log)
}

// OpenDialector opens the store over an already configured dialector.
func OpenDialector(dialector gorm.Dialector, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Migrate creates missing tables, columns and indexes. It never drops
// anything.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Patient{}, &models.User{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the underlying connection.
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

// NewLogger returns a gorm logger writing through log. SQL statements are
// logged at debug level only.
func NewLogger(log zerolog.Logger) logger.Interface {
	level := logger.Warn
	if log.GetLevel() <= zerolog.DebugLevel {
		level = logger.Info
	}
	return logger.New(gormWriter{log: log}, logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

type gormWriter struct {
	log zerolog.Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.log.Debug().Str("component", "gorm").Msgf(format, args...)
}
