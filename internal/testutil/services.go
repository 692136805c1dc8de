package testutil

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/domain/catalog"
	"jan-server/catalog-api/internal/domain/directory"
	"jan-server/catalog-api/internal/domain/media"
	"jan-server/catalog-api/internal/domain/translation"
	"jan-server/catalog-api/internal/infrastructure/database/repository/catalogrepo"
	"jan-server/catalog-api/internal/infrastructure/database/repository/directoryrepo"
	"jan-server/catalog-api/internal/infrastructure/database/repository/mediarepo"
	"jan-server/catalog-api/internal/infrastructure/database/repository/translationrepo"
	"jan-server/catalog-api/internal/infrastructure/database/transaction"
	"jan-server/catalog-api/internal/infrastructure/storage"
)

// PublicBaseURL is the media base URL used by Env.
const PublicBaseURL = "https://cdn.example.test/files"

// Env is a fully wired service graph.
type Env struct {
	Config       *config.Config
	DB           *gorm.DB
	StoragePath  string
	Storage      *FaultyStorage
	Directories  *directory.Service
	Media        *media.Service
	Translations *translation.Service
	Catalog      *catalog.Service
}

// NewEnv builds the services over a fresh database and storage directory.
func NewEnv(t testing.TB) *Env {
	t.Helper()

	cfg := &config.Config{
		ServiceName:      "catalog-api",
		Environment:      "test",
		DefaultLocale:    "en",
		StorageBackend:   "local",
		LocalStoragePath: t.TempDir(),
		PublicBaseURL:    PublicBaseURL,
		MaxMediaBytes:    1024 * 1024,
		MaxBatchBytes:    8 * 1024 * 1024,
	}
	log := zerolog.Nop()

	local, err := storage.NewLocalStorage(cfg, log)
	if err != nil {
		t.Fatalf("local storage: %v", err)
	}
	faulty := NewFaultyStorage(local)

	db := NewDB(t)
	txdb := transaction.NewDatabase(db)
	dirRepo := directoryrepo.NewDirectoryGormRepository(txdb)

	registry := translation.NewRegistry()
	translations := translation.NewService(translationrepo.NewTranslationGormRepository(txdb), registry, nil, log)
	mediaSvc := media.NewService(cfg, mediarepo.NewMediaGormRepository(txdb), faulty, txdb, dirRepo, translations, log)
	dirs := directory.NewService(dirRepo, txdb, mediaSvc, translations, log)
	catalogSvc := catalog.NewService(catalogrepo.NewCatalogGormRepository(txdb), txdb, dirRepo, translations, log)

	dirs.RegisterOwner(registry)
	mediaSvc.RegisterOwner(registry)
	catalogSvc.RegisterOwners(registry)

	return &Env{
		Config:       cfg,
		DB:           db,
		StoragePath:  cfg.LocalStoragePath,
		Storage:      faulty,
		Directories:  dirs,
		Media:        mediaSvc,
		Translations: translations,
		Catalog:      catalogSvc,
	}
}

// MustDirectory creates a directory or fails the test.
func (e *Env) MustDirectory(t testing.TB, name string, parentID *string) *directory.Directory {
	t.Helper()
	dir, err := e.Directories.Create(context.Background(), directory.CreateInput{Name: name, ParentID: parentID})
	if err != nil {
		t.Fatalf("create directory %q: %v", name, err)
	}
	return dir
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T {
	return &v
}

// TranslationRepository returns a repository over the database of e.
func TranslationRepository(e *Env) translation.Repository {
	return translationrepo.NewTranslationGormRepository(transaction.NewDatabase(e.DB))
}

// Logger is the logger handed to services built in tests.
func Logger() zerolog.Logger {
	return zerolog.Nop()
}
