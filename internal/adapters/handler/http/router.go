package http

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	"github.com/comitanigiacomo/kanso-saturation/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/kanso-saturation/internal/core/services"
)

type RouterDependencies struct {
	SessionHandler *SessionHandler
	TokenService   *services.TokenService
	DB             *sqlx.DB
	Redis          *redis.Client
	RateLimit      int
	StartTime      time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.Default()

	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		status := gin.H{
			"status": "ok",
			"uptime": time.Since(deps.StartTime).String(),
		}
		statusCode := 200

		if deps.DB != nil {
			status["database"] = "connected"
			if err := deps.DB.PingContext(c.Request.Context()); err != nil {
				status["database"] = "unreachable"
				statusCode = 503
			}
		}

		if deps.Redis != nil {
			status["redis"] = "connected"
			if err := deps.Redis.Ping(c.Request.Context()).Err(); err != nil {
				status["redis"] = "unreachable"
				statusCode = 503
			}
		}

		if statusCode != 200 {
			status["status"] = "degraded"
		}
		c.JSON(statusCode, status)
	})

	var limiter gin.HandlerFunc = func(c *gin.Context) { c.Next() }
	if deps.Redis != nil && deps.RateLimit > 0 {
		limiter = middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimit, 1*time.Minute)
	}

	apiV1 := router.Group("/api/v1")

	public := apiV1.Group("")
	public.Use(limiter)
	deps.SessionHandler.RegisterPublicRoutes(public)

	// Before auth the limiter keys on the client IP, after it on the session.
	protected := apiV1.Group("")
	protected.Use(limiter, middleware.AuthMiddleware(deps.TokenService), limiter)
	{
		deps.SessionHandler.RegisterRoutes(protected)
	}

	return router
}
