package handlers

import (
	"github.com/rs/zerolog"

	"jan-server/catalog-api/internal/domain/catalog"
	"jan-server/catalog-api/internal/domain/directory"
	"jan-server/catalog-api/internal/domain/media"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/interfaces/httpserver/handlers/cataloghandler"
	"jan-server/catalog-api/internal/interfaces/httpserver/handlers/directoryhandler"
	"jan-server/catalog-api/internal/interfaces/httpserver/handlers/mediahandler"
	"jan-server/catalog-api/internal/interfaces/httpserver/handlers/translationhandler"
)

// Provider groups the HTTP handlers.
type Provider struct {
	Directory   *directoryhandler.DirectoryHandler
	Media       *mediahandler.MediaHandler
	Translation *translationhandler.TranslationHandler
	Catalog     *cataloghandler.CatalogHandler
}

// NewProvider builds the handler set.
func NewProvider(
	dirs *directory.Service,
	mediaSvc *media.Service,
	translations *translation.Service,
	catalogSvc *catalog.Service,
	log zerolog.Logger,
) *Provider {
	return &Provider{
		Directory:   directoryhandler.NewDirectoryHandler(dirs, translations, log),
		Media:       mediahandler.NewMediaHandler(mediaSvc, translations, log),
		Translation: translationhandler.NewTranslationHandler(translations, log),
		Catalog:     cataloghandler.NewCatalogHandler(catalogSvc, translations, log),
	}
}
