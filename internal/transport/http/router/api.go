package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"skyshop-account-api/internal/core/auth"
	"skyshop-account-api/internal/domain"
	"skyshop-account-api/internal/transport/http/handler"
	mdw "skyshop-account-api/internal/transport/http/middleware"
)

// NewAPIEngine wires the public account API under /api/v1.
func NewAPIEngine(l *zap.Logger, h *handler.Account, jwter *auth.JWTer, users domain.UserRepository, cookieName string) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.RateLimitPerIP(50, 100),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		mdw.Metrics(),
		mdw.AccessLog(l),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")

	api.POST("/register", h.Register)
	api.POST("/login", h.Login)
	api.GET("/logout", h.Logout)
	api.POST("/password/forgot", h.ForgotPassword)
	api.PUT("/password/reset/:token", h.ResetPassword)

	me := api.Group("")
	me.Use(mdw.Authenticate(jwter, users, cookieName))
	me.GET("/me", h.Me)
	me.PUT("/password/update", h.UpdatePassword)
	me.PUT("/me/update", h.UpdateProfile)

	return r
}
