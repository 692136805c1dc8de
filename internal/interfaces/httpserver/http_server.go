package httpserver

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	catalogdocs "jan-server/catalog-api/docs/swagger"
	"jan-server/catalog-api/internal/config"
	"jan-server/catalog-api/internal/infrastructure/auth"
	"jan-server/catalog-api/internal/interfaces/httpserver/handlers"
	"jan-server/catalog-api/internal/interfaces/httpserver/middlewares"
	v1 "jan-server/catalog-api/internal/interfaces/httpserver/routes/v1"
)

const readinessTimeout = 3 * time.Second

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// HttpServer wraps the gin engine with graceful shutdown helpers.
type HttpServer struct {
	cfg    *config.Config
	engine *gin.Engine
	log    zerolog.Logger
}

// New constructs the HTTP server with default middleware and routes.
func New(
	cfg *config.Config,
	log zerolog.Logger,
	provider *handlers.Provider,
	authValidator *auth.Validator,
	checks map[string]ReadinessCheck,
) *HttpServer {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	catalogdocs.SwaggerInfo.BasePath = "/"

	engine := gin.New()
	engine.Use(
		gin.Recovery(),
		middlewares.RequestID(),
		middlewares.TracingMiddleware(cfg.ServiceName),
		middlewares.LoggingMiddleware(log),
		middlewares.MetricsMiddleware(),
		middlewares.Locale(cfg.DefaultLocale),
	)

	registerCoreRoutes(engine, cfg, checks)
	v1.NewRoutes(provider).Register(engine, authValidator.Middleware())

	return &HttpServer{
		cfg:    cfg,
		engine: engine,
		log:    log,
	}
}

// Handler exposes the engine, mainly for tests.
func (s *HttpServer) Handler() http.Handler {
	return s.engine
}

// Run starts the HTTP listener and handles graceful shutdown via context cancellation.
func (s *HttpServer) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr()).Msg("catalog-api HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("context cancelled, shutting down HTTP server")
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

func registerCoreRoutes(engine *gin.Engine, cfg *config.Config, checks map[string]ReadinessCheck) {
	engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"service": cfg.ServiceName, "status": "ok"})
	})
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})
	engine.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readinessTimeout)
		defer cancel()

		failures := gin.H{}
		for name, check := range checks {
			if err := check(ctx); err != nil {
				failures[name] = err.Error()
			}
		}
		if len(failures) > 0 {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "checks": failures})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
