package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supgamedex/gamedex-api/internal/container"
	handlers "github.com/supgamedex/gamedex-api/internal/interface/http"
	"github.com/supgamedex/gamedex-api/internal/interface/middleware"
)

// CatalogModule wires the read-only catalog passthrough routes.

type CatalogModule struct {
	Handler *handlers.CatalogHandler
}

func NewCatalogModule(h *handlers.CatalogHandler) *CatalogModule {
	return &CatalogModule{Handler: h}
}

func (m *CatalogModule) Register(rg *gin.RouterGroup) {
	limiter := middleware.RateLimit(container.GetRedis(), 60, time.Minute, middleware.KeyByIP())

	rg.GET("/games", limiter, m.Handler.List)
	rg.GET("/games/search", limiter, m.Handler.Search)
	rg.GET("/games/filter", limiter, m.Handler.Filter)
}
