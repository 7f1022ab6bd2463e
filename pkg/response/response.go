package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes an arbitrary success payload.
func JSON(c *gin.Context, status int, payload any) {
	c.JSON(status, payload)
}

// Message writes a 200 {"message": ...} body.
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

// Error writes {"error": ...} with the given status.
func Error(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"error": msg, "request_id": c.GetString("request_id")})
}

// ValidationError writes a 400 with per-field details.
func ValidationError(c *gin.Context, details map[string]string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":      "invalid payload",
		"details":    details,
		"request_id": c.GetString("request_id"),
	})
}

// AbortError aborts the request with an error body (for middleware).
func AbortError(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"error": msg, "request_id": c.GetString("request_id")})
}
