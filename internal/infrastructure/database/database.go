package database

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"

	"jan-server/catalog-api/internal/config"
)

// Config holds database configuration
type Config struct {
	WriteDSN    string
	ReadDSN     string
	MaxIdle     int
	MaxOpen     int
	MaxLifetime time.Duration
	LogLevel    gormlogger.LogLevel
}

// ConfigFrom builds the database configuration from the service configuration.
func ConfigFrom(cfg *config.Config) Config {
	level := gormlogger.Warn
	if cfg.LogLevel == "debug" {
		level = gormlogger.Info
	}
	return Config{
		WriteDSN:    cfg.GetDatabaseWriteDSN(),
		ReadDSN:     cfg.GetDatabaseReadDSN(),
		MaxIdle:     cfg.DBMaxIdleConns,
		MaxOpen:     cfg.DBMaxOpenConns,
		MaxLifetime: cfg.DBConnLifetime,
		LogLevel:    level,
	}
}

// Connect opens the primary connection and, when a replica DSN differs from the
// primary, routes reads outside transactions to it.
func Connect(cfg Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.WriteDSN), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(cfg.LogLevel),
		TranslateError: true,
	})
	if err != nil {
		log.Error().
			Str("error_code", "5c16fb53-d98c-4fc6-8bb4-9abd3c0b9e88").
			Err(err).
			Msg("unable to connect to database")
		return nil, err
	}

	if cfg.ReadDSN != "" && cfg.ReadDSN != cfg.WriteDSN {
		resolver := dbresolver.Register(dbresolver.Config{
			Replicas: []gorm.Dialector{postgres.Open(cfg.ReadDSN)},
			Policy:   dbresolver.RandomPolicy{},
		}).
			SetMaxIdleConns(cfg.MaxIdle).
			SetMaxOpenConns(cfg.MaxOpen).
			SetConnMaxLifetime(cfg.MaxLifetime)
		if err := db.Use(resolver); err != nil {
			return nil, fmt.Errorf("register read replica: %w", err)
		}
		log.Info().Msg("read replica registered")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdle)
	sqlDB.SetMaxOpenConns(cfg.MaxOpen)
	sqlDB.SetConnMaxLifetime(cfg.MaxLifetime)

	log.Info().Msg("Successfully connected to database")
	return db, nil
}

// Ping checks that the primary connection is alive.
func Ping(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
