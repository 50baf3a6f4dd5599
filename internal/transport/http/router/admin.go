package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"skyshop-account-api/internal/core/auth"
	"skyshop-account-api/internal/domain"
	"skyshop-account-api/internal/transport/http/handler"
	mdw "skyshop-account-api/internal/transport/http/middleware"
)

// NewAdminEngine wires the admin plane under /admin/v1; every route requires
// an authenticated admin.
func NewAdminEngine(l *zap.Logger, h *handler.Admin, jwter *auth.JWTer, users domain.UserRepository, cookieName string) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })

	admin := r.Group("/admin/v1")
	admin.Use(
		mdw.Authenticate(jwter, users, cookieName),
		mdw.RequireRoles(domain.RoleAdmin),
	)

	admin.GET("/users", h.List)
	admin.GET("/users/:id", h.Get)
	admin.PUT("/users/:id/role", h.UpdateRole)
	admin.DELETE("/users/:id", h.Delete)

	return r
}
