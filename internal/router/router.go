package router

import (
	"fmt"
	"net/http"
	"time"

	"translit-web/internal/config"
	"translit-web/internal/handler"
	"translit-web/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Setup wires middleware, the JSON relay, the UI page and /metrics.
func Setup(cfg *config.Config, apiHandler *handler.APIHandler, pageHandler *handler.PageHandler) (*gin.Engine, error) {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     cfg.CORS.AllowedMethods,
		AllowHeaders:     cfg.CORS.AllowedHeaders,
		ExposeHeaders:    cfg.CORS.ExposedHeaders,
		AllowCredentials: cfg.CORS.AllowCredentials,
		MaxAge:           time.Duration(cfg.CORS.MaxAge) * time.Second,
	}))

	tmpl, err := handler.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// The relay answers at the root and under /api, where the browser
	// client calls it.
	for _, group := range []*gin.RouterGroup{router.Group("/"), router.Group("/api")} {
		group.GET("/health", apiHandler.Health)
		group.POST("/translate", apiHandler.Translate)
		group.GET("/languages", apiHandler.Languages)
	}

	router.GET("/", pageHandler.Index)
	ui := router.Group("/ui")
	{
		ui.POST("/retry", pageHandler.Retry)
		ui.POST("/translate", pageHandler.Translate)
		ui.POST("/clear", pageHandler.Clear)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return router, nil
}
