package api

import (
	"fmt"
	"time"

	"github.com/daycast/daycast/app/cfg"
	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)
	if cfg.Get().Debug {
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware for API endpoints
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, h *Handler) {
	r.GET("/health", h.GetHealth)

	v1 := r.Group("/api/v1")

	// Public read surface, no auth
	public := v1.Group("/public")
	{
		public.GET("/posts", h.ListPublicPosts)
		public.GET("/posts/:slug", h.GetPublicPost)
		public.GET("/calendar", h.GetCalendar)
		public.GET("/archive", h.GetArchive)
		public.GET("/stats", h.GetStats)
		public.GET("/rss", h.GetRSS)
	}

	// Uploaded images, no auth (paths are unguessable)
	v1.GET("/uploads/*path", h.ServeUpload)

	// Account endpoints, no client auth
	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}

	// Authenticated, rate-limited API
	private := v1.Group("")
	private.Use(clientAuth(), apiRateLimit(h.limiter))
	{
		private.POST("/inputs", h.CreateInputItem)
		private.POST("/inputs/upload", h.UploadImage)
		private.GET("/inputs", h.ListInputItems)
		private.GET("/inputs/export", h.ExportDay)
		private.DELETE("/inputs", h.ClearDay)
		private.GET("/inputs/:id", h.GetInputItem)
		private.PUT("/inputs/:id", h.UpdateInputItem)
		private.DELETE("/inputs/:id", h.DeleteInputItem)

		private.POST("/generate", h.Generate)
		private.POST("/generate/:id/regenerate", h.Regenerate)

		private.GET("/days", h.ListDays)
		private.GET("/days/:date", h.GetDay)
		private.DELETE("/days/:date", h.DeleteDay)

		private.GET("/channels", h.ListChannels)
		private.GET("/styles", h.ListStyles)
		private.GET("/languages", h.ListLanguages)
		private.GET("/lengths", h.ListLengths)

		private.GET("/settings/channels", h.GetChannelSettings)
		private.POST("/settings/channels", h.SaveChannelSettings)
		private.GET("/settings/generation", h.GetGenerationSettings)
		private.POST("/settings/generation", h.SaveGenerationSettings)

		private.POST("/publish", h.Publish)
		private.GET("/publish/status", h.GetPublishStatus)
		private.DELETE("/publish/:id", h.Unpublish)
	}
}
