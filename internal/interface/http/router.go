package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yanqian/hairmatch/internal/domain/auth"
	"github.com/yanqian/hairmatch/internal/infra/config"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, authSvc auth.Service) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORS),
		errorHandlingMiddleware(handler.logger),
		recoveryMiddleware(),
	)

	router.GET("/healthz", handler.Health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger), authMiddleware(authSvc))
	{
		api.POST("/scores", handler.ScoreProduct)
		api.GET("/scores", handler.ListScores)
		api.GET("/scores/:productId", handler.GetScore)
	}

	internal := router.Group("/internal/v1")
	internal.Use(serviceKeyMiddleware(authSvc))
	{
		internal.POST("/ingredient-rules/discover", handler.DiscoverRules)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}
