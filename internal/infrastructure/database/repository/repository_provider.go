package repository

import (
	"github.com/google/wire"

	"jan-server/catalog-api/internal/domain/catalog"
	"jan-server/catalog-api/internal/domain/directory"
	"jan-server/catalog-api/internal/domain/media"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/infrastructure/database/repository/catalogrepo"
	"jan-server/catalog-api/internal/infrastructure/database/repository/directoryrepo"
	"jan-server/catalog-api/internal/infrastructure/database/repository/mediarepo"
	"jan-server/catalog-api/internal/infrastructure/database/repository/translationrepo"
)

var RepositoryProvider = wire.NewSet(
	directoryrepo.NewDirectoryGormRepository,
	wire.Bind(new(directory.Repository), new(*directoryrepo.DirectoryGormRepository)),
	mediarepo.NewMediaGormRepository,
	wire.Bind(new(media.Repository), new(*mediarepo.MediaGormRepository)),
	translationrepo.NewTranslationGormRepository,
	wire.Bind(new(translation.Repository), new(*translationrepo.TranslationGormRepository)),
	catalogrepo.NewCatalogGormRepository,
	wire.Bind(new(catalog.Repository), new(*catalogrepo.CatalogGormRepository)),
)
