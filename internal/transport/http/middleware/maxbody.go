package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"skyshop-account-api/internal/transport/http/response"
)

// MaxBodyBytes limits the request body; avatars arrive base64-encoded in
// JSON so the ceiling is generous.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			response.AbortWith(c, http.StatusRequestEntityTooLarge, "request body too large")
		}
	}
}
