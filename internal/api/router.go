package api

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/gin-blog/config"
	_ "github.com/d60-Lab/gin-blog/docs"
	"github.com/d60-Lab/gin-blog/internal/api/handler"
	"github.com/d60-Lab/gin-blog/internal/api/middleware"
)

// SetupRouter 注册中间件与路由
func SetupRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	limit := middleware.NewIPRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware()

	v1 := r.Group("/api/v1")
	{
		blog := v1.Group("/blog")
		blog.GET("/posts", h.ListPosts)
		blog.GET("/tag/:tag_slug", h.ListPostsByTag)
		blog.GET("/posts/:year/:month/:day/:slug", h.GetPost)
		blog.POST("/posts/:id/share", limit, h.SharePost)
		blog.POST("/posts/:id/comment", limit, h.AddComment)
		blog.GET("/search", h.Search)
		blog.GET("/stats", h.Stats)
		blog.GET("/feed", h.Feed)

		shop := v1.Group("/shop")
		shop.POST("/orders", limit, h.CreateOrder)
		shop.GET("/orders", h.ListOrders)
		shop.GET("/orders/:id", h.GetOrder)
		shop.POST("/orders/:id/paid", h.MarkOrderPaid)
	}
	return r
}
