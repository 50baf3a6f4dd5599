package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"skyshop-account-api/internal/core/auth"
	"skyshop-account-api/internal/domain"
	"skyshop-account-api/internal/transport/http/response"
)

const keyCurrentUser = "currentUser"

// Authenticate reads the session cookie, verifies the token and resolves the
// embedded id to a live user record, which downstream handlers read via
// CurrentUser. Every protected route runs through here first.
func Authenticate(j *auth.JWTer, users domain.UserRepository, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie(cookieName)
		if err != nil || tok == "" {
			response.AbortWith(c, http.StatusUnauthorized, "please login to access this resource")
			return
		}
		claims, err := j.Parse(tok)
		if err != nil {
			response.AbortWith(c, http.StatusUnauthorized, "invalid or expired session token")
			return
		}
		u, err := users.FindByID(c.Request.Context(), claims.UID)
		if err != nil {
			response.AbortWith(c, http.StatusInternalServerError, "failed to resolve user")
			return
		}
		if u == nil {
			response.AbortWith(c, http.StatusUnauthorized, "please login to access this resource")
			return
		}
		c.Set(keyCurrentUser, u)
		c.Next()
	}
}

// RequireRoles allows only identities whose role is in the set. The role is
// taken from the resolved record, not the token claims, so a stale claim
// cannot widen access.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			response.AbortWith(c, http.StatusUnauthorized, "please login to access this resource")
			return
		}
		for _, r := range roles {
			if u.Role == r {
				c.Next()
				return
			}
		}
		response.AbortWith(c, http.StatusForbidden,
			"role: "+u.Role+" is not allowed to access this resource ("+strings.Join(roles, ",")+" only)")
	}
}

// CurrentUser returns the identity attached by Authenticate, or nil.
func CurrentUser(c *gin.Context) *domain.User {
	if v, ok := c.Get(keyCurrentUser); ok {
		if u, ok := v.(*domain.User); ok {
			return u
		}
	}
	return nil
}
