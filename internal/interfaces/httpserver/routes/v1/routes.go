package v1

import (
	"github.com/gin-gonic/gin"

	"jan-server/catalog-api/internal/interfaces/httpserver/handlers"
)

// Routes encapsulates versioned route registration.
type Routes struct {
	handlers *handlers.Provider
}

func NewRoutes(provider *handlers.Provider) *Routes {
	return &Routes{handlers: provider}
}

// Register attaches all v1 routes under the /v1 prefix.
func (r *Routes) Register(router gin.IRouter, middleware ...gin.HandlerFunc) {
	group := router.Group("/v1", middleware...)

	dirs := group.Group("/directories")
	dirs.POST("", r.handlers.Directory.Create)
	dirs.GET("", r.handlers.Directory.ListRoots)
	dirs.GET("/:id", r.handlers.Directory.Get)
	dirs.PATCH("/:id", r.handlers.Directory.Rename)
	dirs.DELETE("/:id", r.handlers.Directory.Delete)
	dirs.POST("/:id/move", r.handlers.Directory.Move)
	dirs.GET("/:id/children", r.handlers.Directory.Children)
	dirs.GET("/:id/descendants", r.handlers.Directory.Descendants)
	dirs.GET("/:id/ancestors", r.handlers.Directory.Ancestors)
	dirs.GET("/:id/media", r.handlers.Media.List)
	dirs.POST("/:id/media", r.handlers.Media.Apply)

	group.GET("/media/:id", r.handlers.Media.Get)
	group.GET("/media/:id/content", r.handlers.Media.Content)
	group.GET("/files/*key", r.handlers.Media.File)

	translations := group.Group("/translations")
	translations.POST("", r.handlers.Translation.Create)
	translations.GET("", r.handlers.Translation.List)
	translations.GET("/:id", r.handlers.Translation.Get)
	translations.PATCH("/:id", r.handlers.Translation.Update)
	translations.DELETE("/:id", r.handlers.Translation.Delete)

	catalog := group.Group("/catalog/:kind")
	catalog.POST("", r.handlers.Catalog.Create)
	catalog.GET("", r.handlers.Catalog.List)
	catalog.GET("/:id", r.handlers.Catalog.Get)
	catalog.PATCH("/:id", r.handlers.Catalog.Update)
	catalog.DELETE("/:id", r.handlers.Catalog.Delete)
}
