// Package router assembles the gin engine: global middleware, route
// registration and the static uploads mount.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/unimate-app/unimate-api/internal/handler"
	"github.com/unimate-app/unimate-api/internal/middleware"
	"github.com/unimate-app/unimate-api/internal/service"
	"github.com/unimate-app/unimate-api/pkg/config"
	"github.com/unimate-app/unimate-api/pkg/logger"
	corsmiddleware "github.com/unimate-app/unimate-api/pkg/middleware/cors"
	reqidmiddleware "github.com/unimate-app/unimate-api/pkg/middleware/requestid"
	"github.com/unimate-app/unimate-api/pkg/storage"
)

// Deps bundles everything the router needs to register routes.
type Deps struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Chat     *handler.ChatHandler
	Admin    *handler.AdminHandler
	Post     *handler.PostHandler
	Payment  *handler.PaymentHandler
	Contact  *handler.ContactHandler
	Metrics  *handler.MetricsHandler
	Tokens   *service.TokenService
	Payments *service.PaymentService
	Images   *storage.ImageStore
	Observer *service.MetricsService
}

// New builds the gin engine with all routes registered.
func New(cfg *config.Config, logr *zap.Logger, deps Deps) *gin.Engine {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(deps.Observer))

	r.GET("/health", deps.Metrics.Health)
	r.GET("/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", deps.Metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	if deps.Images != nil {
		r.Static("/uploads", deps.Images.BaseDir())
	}

	// Public surface.
	r.POST("/auth", deps.Auth.Authenticate)
	r.GET("/post", deps.Post.Feed)
	r.POST("/payment", deps.Payment.Record)
	r.POST("/paid", deps.Payment.PaidStatus)
	r.POST("/contact", deps.Contact.Contact)
	r.POST("/subscribe", deps.Contact.Subscribe)

	// Authenticated user surface.
	user := r.Group("/", middleware.RequireUser(deps.Tokens))
	{
		user.GET("/user", deps.User.Peers)
		user.POST("/user/heartbeat", deps.User.Heartbeat)
		user.GET("/token", middleware.RequirePaid(deps.Payments), deps.Chat.Roster)
	}

	// Admin surface.
	r.POST("/admin/login", deps.Admin.Login)
	r.POST("/admin/register", deps.Admin.Register)

	admin := r.Group("/admin", middleware.RequireAdmin(deps.Tokens))
	{
		admin.POST("/post", deps.Post.Create)
		admin.GET("/post", deps.Post.Feed)
		admin.PUT("/post/:id", deps.Post.Update)
		admin.DELETE("/post/:id", deps.Post.Delete)
		admin.GET("/payment", deps.Payment.Overview)
	}

	return r
}
