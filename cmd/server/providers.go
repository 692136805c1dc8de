package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/domain/catalog"
	"jan-server/catalog-api/internal/domain/directory"
	"jan-server/catalog-api/internal/domain/media"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/infrastructure/auth"
	"jan-server/catalog-api/internal/infrastructure/cache"
	"jan-server/catalog-api/internal/infrastructure/database"
	"jan-server/catalog-api/internal/infrastructure/database/repository/catalogrepo"
	"jan-server/catalog-api/internal/infrastructure/database/repository/directoryrepo"
	"jan-server/catalog-api/internal/infrastructure/database/repository/mediarepo"
	"jan-server/catalog-api/internal/infrastructure/database/repository/translationrepo"
	"jan-server/catalog-api/internal/infrastructure/database/transaction"
	"jan-server/catalog-api/internal/infrastructure/storage"
	"jan-server/catalog-api/internal/interfaces/httpserver"
	"jan-server/catalog-api/internal/interfaces/httpserver/handlers"
)

func newGormDB(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*gorm.DB, func(), error) {
	db, err := database.Connect(database.ConfigFrom(cfg), log)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	if cfg.DBAutoMigrate {
		if err := database.Migrate(ctx, db, log); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("migrate database: %w", err)
		}
	}
	return db, cleanup, nil
}

// newTranslationCache returns the redis overlay cache when REDIS_URL is set and
// reachable, otherwise the in-process LRU. nil disables caching.
func newTranslationCache(ctx context.Context, cfg *config.Config, log zerolog.Logger) (translation.Cache, func()) {
	if cfg.RedisURL != "" {
		client, err := cache.Connect(ctx, cfg.RedisURL)
		if err == nil {
			log.Info().Msg("translation cache backed by redis")
			return cache.NewTranslationCache(client, cfg.TranslationCacheTTL, log), func() { _ = client.Close() }
		}
		log.Warn().Err(err).Msg("redis unavailable, falling back to in-process translation cache")
	}
	if cfg.TranslationCacheSize <= 0 {
		return nil, func() {}
	}
	memory, err := cache.NewMemoryCache(cfg.TranslationCacheSize, cfg.TranslationCacheTTL)
	if err != nil {
		log.Warn().Err(err).Msg("translation cache disabled")
		return nil, func() {}
	}
	return memory, func() {}
}

func newAuthValidator(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*auth.Validator, error) {
	return auth.NewValidator(ctx, cfg, log)
}

func newReadinessChecks(db *gorm.DB, store media.Storage) map[string]httpserver.ReadinessCheck {
	return map[string]httpserver.ReadinessCheck{
		"database": func(context.Context) error { return database.Ping(db) },
		"storage":  func(ctx context.Context) error { return storage.Health(ctx, store) },
	}
}

// newHandlerProvider declares every overlay owner before the handlers start serving.
func newHandlerProvider(
	registry *translation.Registry,
	dirs *directory.Service,
	mediaSvc *media.Service,
	translations *translation.Service,
	catalogSvc *catalog.Service,
	log zerolog.Logger,
) *handlers.Provider {
	dirs.RegisterOwner(registry)
	mediaSvc.RegisterOwner(registry)
	catalogSvc.RegisterOwners(registry)
	log.Info().Strs("owner_types", registry.OwnerTypes()).Msg("translation owners registered")
	return handlers.NewProvider(dirs, mediaSvc, translations, catalogSvc, log)
}

// buildApplication assembles the service graph by hand; wire.go describes the same graph.
func buildApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, func(), error) {
	db, closeDB, err := newGormDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	store, err := storage.New(ctx, cfg, log)
	if err != nil {
		closeDB()
		return nil, nil, fmt.Errorf("initialize storage: %w", err)
	}
	overlayCache, closeCache := newTranslationCache(ctx, cfg, log)
	cleanup := func() {
		closeCache()
		closeDB()
	}

	authValidator, err := newAuthValidator(ctx, cfg, log)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("initialize auth validator: %w", err)
	}

	txdb := transaction.NewDatabase(db)
	dirRepo := directoryrepo.NewDirectoryGormRepository(txdb)
	registry := translation.NewRegistry()
	translations := translation.NewService(translationrepo.NewTranslationGormRepository(txdb), registry, overlayCache, log)
	mediaSvc := media.NewService(cfg, mediarepo.NewMediaGormRepository(txdb), store, txdb, dirRepo, translations, log)
	dirs := directory.NewService(dirRepo, txdb, mediaSvc, translations, log)
	catalogSvc := catalog.NewService(catalogrepo.NewCatalogGormRepository(txdb), txdb, dirRepo, translations, log)

	provider := newHandlerProvider(registry, dirs, mediaSvc, translations, catalogSvc, log)
	server := httpserver.New(cfg, log, provider, authValidator, newReadinessChecks(db, store))
	return NewApplication(server, log), cleanup, nil
}
