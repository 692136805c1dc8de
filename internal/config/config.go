package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"golang.org/x/text/language"
)

// Config holds the environment driven configuration for the catalog service.
type Config struct {
	// Service Configuration
	ServiceName     string        `env:"SERVICE_NAME" envDefault:"catalog-api"`
	Environment     string        `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort        int           `env:"CATALOG_API_PORT" envDefault:"8290"`
	LogLevel        string        `env:"CATALOG_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"CATALOG_LOG_FORMAT" envDefault:"console"`
	EnableTracing   bool          `env:"ENABLE_TRACING" envDefault:"false"`
	OTLPEndpoint    string        `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Database - Read/Write Split (required, no defaults)
	DBPostgresqlWriteDSN string `env:"DB_POSTGRESQL_WRITE_DSN,notEmpty"`
	DBPostgresqlRead1DSN string `env:"DB_POSTGRESQL_READ1_DSN"` // Optional read replica

	// Database Connection Pool
	DBMaxIdleConns int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBMaxOpenConns int           `env:"DB_MAX_OPEN_CONNS" envDefault:"15"`
	DBConnLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBAutoMigrate  bool          `env:"DB_AUTO_MIGRATE" envDefault:"true"`

	// Localization
	DefaultLocale       string        `env:"DEFAULT_LOCALE" envDefault:"en"`
	RedisURL            string        `env:"REDIS_URL"`
	TranslationCacheTTL time.Duration `env:"TRANSLATION_CACHE_TTL" envDefault:"10m"`

	// In-process cache size used when REDIS_URL is empty; 0 disables it.
	TranslationCacheSize int `env:"TRANSLATION_CACHE_SIZE" envDefault:"10000"`

	// Storage Backend Selection
	StorageBackend string `env:"MEDIA_STORAGE_BACKEND" envDefault:"local"` // Options: "s3" or "local"
	PublicBaseURL  string `env:"MEDIA_PUBLIC_BASE_URL" envDefault:"http://localhost:8290/v1/files"`

	// Local Storage Configuration
	LocalStoragePath string `env:"MEDIA_LOCAL_STORAGE_PATH" envDefault:"./media-data"`

	// S3 Storage Configuration
	S3Endpoint     string `env:"MEDIA_S3_ENDPOINT"`
	S3Region       string `env:"MEDIA_S3_REGION" envDefault:"us-west-2"`
	S3Bucket       string `env:"MEDIA_S3_BUCKET"`
	S3AccessKeyID  string `env:"MEDIA_S3_ACCESS_KEY_ID"`     // AWS standard naming
	S3SecretKey    string `env:"MEDIA_S3_SECRET_ACCESS_KEY"` // AWS standard naming
	S3UsePathStyle bool   `env:"MEDIA_S3_USE_PATH_STYLE" envDefault:"true"`

	// Media Configuration
	MaxMediaBytes int64 `env:"MEDIA_MAX_BYTES" envDefault:"20971520"`
	// Upper bound of a whole media batch request body.
	MaxBatchBytes int64 `env:"MEDIA_MAX_BATCH_BYTES" envDefault:"104857600"`

	// Authentication
	AuthEnabled  bool   `env:"AUTH_ENABLED" envDefault:"false"`
	AuthIssuer   string `env:"AUTH_ISSUER"`
	AuthAudience string `env:"AUTH_AUDIENCE"`
	AuthJWKSURL  string `env:"AUTH_JWKS_URL"`
}

// Load parses environment variables into Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env config: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) normalize() error {
	c.S3Bucket = strings.TrimSpace(c.S3Bucket)
	c.S3AccessKeyID = strings.TrimSpace(c.S3AccessKeyID)
	c.S3SecretKey = strings.TrimSpace(c.S3SecretKey)
	c.S3Endpoint = strings.TrimSpace(c.S3Endpoint)
	c.PublicBaseURL = strings.TrimSuffix(strings.TrimSpace(c.PublicBaseURL), "/")
	if c.MaxMediaBytes <= 0 {
		c.MaxMediaBytes = 20 * 1024 * 1024
	}
	if c.MaxBatchBytes < c.MaxMediaBytes {
		c.MaxBatchBytes = 5 * c.MaxMediaBytes
	}

	tag, err := language.Parse(strings.TrimSpace(c.DefaultLocale))
	if err != nil {
		return fmt.Errorf("DEFAULT_LOCALE %q is not a valid language tag: %w", c.DefaultLocale, err)
	}
	c.DefaultLocale = tag.String()

	if !c.IsLocalStorage() && !c.IsS3Storage() {
		return fmt.Errorf("MEDIA_STORAGE_BACKEND must be \"local\" or \"s3\", got %q", c.StorageBackend)
	}
	if c.AuthEnabled {
		if strings.TrimSpace(c.AuthIssuer) == "" {
			return fmt.Errorf("AUTH_ISSUER is required when AUTH_ENABLED is true")
		}
		if strings.TrimSpace(c.AuthJWKSURL) == "" {
			return fmt.Errorf("AUTH_JWKS_URL is required when AUTH_ENABLED is true")
		}
	}
	return nil
}

// GetDatabaseWriteDSN returns the write database connection string.
func (c *Config) GetDatabaseWriteDSN() string {
	return c.DBPostgresqlWriteDSN
}

// GetDatabaseReadDSN returns the read database connection string.
// If DB_POSTGRESQL_READ1_DSN is set, it returns that.
// Otherwise, falls back to write DSN (no replica configured).
func (c *Config) GetDatabaseReadDSN() string {
	if c.DBPostgresqlRead1DSN != "" {
		return c.DBPostgresqlRead1DSN
	}
	return c.GetDatabaseWriteDSN()
}

// HasReadReplica reports whether a dedicated read DSN is configured.
func (c *Config) HasReadReplica() bool {
	return c.DBPostgresqlRead1DSN != "" && c.DBPostgresqlRead1DSN != c.DBPostgresqlWriteDSN
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

// IsLocalStorage returns true if local storage backend is configured.
func (c *Config) IsLocalStorage() bool {
	return strings.ToLower(strings.TrimSpace(c.StorageBackend)) == "local"
}

// IsS3Storage returns true if S3 storage backend is configured.
func (c *Config) IsS3Storage() bool {
	backend := strings.ToLower(strings.TrimSpace(c.StorageBackend))
	return backend == "" || backend == "s3"
}
