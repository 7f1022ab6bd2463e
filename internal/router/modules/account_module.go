package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/supgamedex/gamedex-api/internal/container"
	handlers "github.com/supgamedex/gamedex-api/internal/interface/http"
	"github.com/supgamedex/gamedex-api/internal/interface/middleware"
	"github.com/supgamedex/gamedex-api/pkg/helpers"
)

// AccountModule wires account HTTP handlers into routes.
// Public: POST /api/cadastro, GET /api/confirm-email, POST /api/login,
// POST /api/forgot-password, POST /api/reset-password
// Protected: GET /api/me

type AccountModule struct {
	Handler *handlers.AccountHandler
	Tokens  *helpers.TokenManager
}

func NewAccountModule(h *handlers.AccountHandler, tokens *helpers.TokenManager) *AccountModule {
	return &AccountModule{Handler: h, Tokens: tokens}
}

func (m *AccountModule) Register(rg *gin.RouterGroup) {
	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	loginLimiter := middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	forgotLimiter := middleware.RateLimit(container.GetRedis(), 5, time.Minute, middleware.KeyByIPAndPath())
	resetLimiter := middleware.RateLimit(container.GetRedis(), 30, time.Minute, middleware.KeyByIPAndPath())

	rg.POST("/cadastro", registerLimiter, m.Handler.Register)
	rg.GET("/confirm-email", m.Handler.ConfirmEmail)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/forgot-password", forgotLimiter, m.Handler.ForgotPassword)
	rg.POST("/reset-password", resetLimiter, m.Handler.ResetPassword)

	// Protected
	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Tokens))
	{
		auth.GET("/me", m.Handler.Me)
	}
}
