//go:build wireinject

package main

import (
	"context"

	"github.com/google/wire"
	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/domain/catalog"
	"jan-server/catalog-api/internal/domain/directory"
	"jan-server/catalog-api/internal/domain/media"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/infrastructure/database/repository"
	"jan-server/catalog-api/internal/infrastructure/database/repository/directoryrepo"
	"jan-server/catalog-api/internal/infrastructure/database/transaction"
	"jan-server/catalog-api/internal/infrastructure/storage"
	"jan-server/catalog-api/internal/interfaces/httpserver"
)

var domainSet = wire.NewSet(
	transaction.NewDatabase,
	wire.Bind(new(directory.Transactor), new(*transaction.Database)),
	wire.Bind(new(media.Transactor), new(*transaction.Database)),
	wire.Bind(new(catalog.Transactor), new(*transaction.Database)),

	translation.NewRegistry,
	translation.NewService,
	wire.Bind(new(directory.Overlays), new(*translation.Service)),
	wire.Bind(new(media.OverlayPurger), new(*translation.Service)),
	wire.Bind(new(catalog.Overlays), new(*translation.Service)),

	wire.Bind(new(media.DirectoryLookup), new(*directoryrepo.DirectoryGormRepository)),
	wire.Bind(new(catalog.DirectoryLookup), new(*directoryrepo.DirectoryGormRepository)),
	media.NewService,
	wire.Bind(new(directory.MediaCascade), new(*media.Service)),
	directory.NewService,
	catalog.NewService,
)

// BuildApplication assembles the catalog service with Wire.
func BuildApplication(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Application, func(), error) {
	wire.Build(
		newGormDB,
		storage.New,
		newTranslationCache,
		newAuthValidator,
		repository.RepositoryProvider,
		domainSet,
		newHandlerProvider,
		newReadinessChecks,
		httpserver.New,
		NewApplication,
	)
	return nil, nil, nil
}
