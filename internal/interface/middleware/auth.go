package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/supgamedex/gamedex-api/pkg/helpers"
	"github.com/supgamedex/gamedex-api/pkg/response"
)

const CtxUserEmailKey = "userEmail"

// Auth validates the Authorization bearer token and injects the subject
// email into the Gin context.
func Auth(tokens *helpers.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.AbortError(c, http.StatusUnauthorized, "missing bearer token")
			return
		}
		email, err := tokens.Validate(token)
		if err != nil {
			response.AbortError(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		c.Set(CtxUserEmailKey, email)
		c.Next()
	}
}
