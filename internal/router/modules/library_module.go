package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/supgamedex/gamedex-api/internal/interface/http"
)

// LibraryModule wires the per-user game library routes.

type LibraryModule struct {
	Handler *handlers.LibraryHandler
}

func NewLibraryModule(h *handlers.LibraryHandler) *LibraryModule {
	return &LibraryModule{Handler: h}
}

func (m *LibraryModule) Register(rg *gin.RouterGroup) {
	rg.POST("/users/:user_id/games", m.Handler.AddGame)
	rg.PUT("/users/:user_id/games/:game_id", m.Handler.UpdateGame)
	rg.GET("/users/:user_id/games", m.Handler.ListGames)
	rg.DELETE("/users/:user_id/games/:game_id", m.Handler.RemoveGame)
}
