// Package testutil wires the catalog services over a throwaway sqlite database
// and a temporary local storage directory.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"jan-server/catalog-api/internal/infrastructure/database"
)

// NewDB opens a migrated sqlite database that lives for the duration of t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog_test.db")
	db, err := gorm.Open(sqlite.Dialector{
		DriverName: "sqlite",
		DSN:        path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
	}, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.AutoMigrate(context.Background(), db, zerolog.Nop()); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
