// Package response shapes the API envelope: 2xx {"success":true, ...} on
// success, {"success":false,"message":...} with a matching 4xx/5xx otherwise.
package response

import (
	"github.com/gin-gonic/gin"

	"skyshop-account-api/internal/errs"
)

func OK(c *gin.Context, status int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(status, body)
}

func Fail(c *gin.Context, err error) {
	c.JSON(errs.HTTPStatus(err), gin.H{"success": false, "message": err.Error()})
}

// AbortWith is the middleware variant: write the envelope and stop the chain.
func AbortWith(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": msg})
}
