package main

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/infrastructure/database"
	"jan-server/catalog-api/internal/infrastructure/logger"
)

// openDatabase loads the service configuration and connects to the primary database.
func openDatabase(cmd *cobra.Command) (*gorm.DB, zerolog.Logger, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), nil, err
	}
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		cfg.LogLevel = "debug"
	}
	log := logger.New(cfg)

	dbCfg := database.ConfigFrom(cfg)
	dbCfg.ReadDSN = ""
	db, err := database.Connect(dbCfg, log)
	if err != nil {
		return nil, log, nil, err
	}
	closeFn := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, log, closeFn, nil
}
