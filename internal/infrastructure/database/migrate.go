package database

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	iofs "github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"jan-server/catalog-api/migrations"
)

// MigrationState describes the applied schema version.
type MigrationState struct {
	Version uint
	Dirty   bool
	Latest  uint
}

// Migrate applies all pending SQL migrations bundled with the service.
func Migrate(ctx context.Context, gormDB *gorm.DB, log zerolog.Logger) error {
	return withMigrator(ctx, gormDB, func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		switch {
		case errors.Is(err, migrate.ErrNilVersion):
			log.Info().Msg("No migrations have been applied yet")
		case err != nil:
			log.Warn().Err(err).Msg("Error getting migration version")
		default:
			log.Info().Uint("version", version).Bool("dirty", dirty).Msg("Current migration state")
		}

		if dirty {
			log.Warn().Uint("version", version).Msg("Database is in dirty state, forcing version...")
			if err := m.Force(int(version)); err != nil {
				return fmt.Errorf("force version %d to clear dirty state: %w", version, err)
			}
		}

		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				log.Info().Msg("No new migrations to apply")
				return nil
			}
			return fmt.Errorf("apply migrations: %w", err)
		}
		log.Info().Msg("Migrations applied successfully")
		return nil
	})
}

// Rollback reverts the given number of migrations.
func Rollback(ctx context.Context, gormDB *gorm.DB, steps int, log zerolog.Logger) error {
	if steps <= 0 {
		return fmt.Errorf("steps must be positive, got %d", steps)
	}
	return withMigrator(ctx, gormDB, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("rollback migrations: %w", err)
		}
		log.Info().Int("steps", steps).Msg("Migrations rolled back")
		return nil
	})
}

// Status reports the applied and the latest bundled migration version.
func Status(ctx context.Context, gormDB *gorm.DB) (MigrationState, error) {
	latest, err := LatestMigration()
	if err != nil {
		return MigrationState{}, err
	}
	state := MigrationState{Latest: latest}
	err = withMigrator(ctx, gormDB, func(m *migrate.Migrate) error {
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		if err != nil {
			return err
		}
		state.Version, state.Dirty = version, dirty
		return nil
	})
	return state, err
}

// LatestMigration returns the highest version found in the bundled files.
func LatestMigration() (uint, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return 0, fmt.Errorf("load migrations: %w", err)
	}
	defer source.Close()

	version, err := source.First()
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, nil
		}
		return 0, err
	}
	for {
		next, err := source.Next(version)
		if errors.Is(err, fs.ErrNotExist) {
			return version, nil
		}
		if err != nil {
			return 0, err
		}
		version = next
	}
}

func withMigrator(ctx context.Context, gormDB *gorm.DB, fn func(m *migrate.Migrate) error) (err error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("retrieve sql db: %w", err)
	}

	conn, err := sqlDB.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire dedicated connection: %w", err)
	}

	driver, err := postgres.WithConnection(ctx, conn, &postgres.Config{
		MigrationsTable: "schema_migrations",
	})
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("initialize postgres driver: %w", err)
	}
	defer func() {
		if closeErr := driver.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close migration connection: %w", closeErr)
		}
	}()

	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	defer func() {
		if closeErr := source.Close(); err == nil && closeErr != nil {
			err = fmt.Errorf("close migration source: %w", closeErr)
		}
	}()

	migrator, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return fn(migrator)
}
