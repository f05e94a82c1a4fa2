package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"translit-web/internal/backend"
	"translit-web/internal/config"
	"translit-web/internal/handler"
	"translit-web/internal/router"
	"translit-web/internal/service"
	"translit-web/internal/storage"
	"translit-web/internal/utils"
	"translit-web/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "./configs/config.yaml", "path to the YAML config file (empty to use defaults and env only)")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}

	logger.WithFields(logrus.Fields{
		"port":            cfg.Server.Port,
		"backend_url":     cfg.Backend.BaseURL,
		"backend_timeout": cfg.Backend.Timeout.String(),
		"log_level":       cfg.Log.Level,
	}).Info("Starting translation web front-end")

	client := backend.NewClient(cfg.Backend.BaseURL, utils.NewHTTPClient(cfg.Backend.Timeout), logger.L())
	if cfg.Backend.ProbeOnStart {
		probeBackend(client)
	}

	translateService := service.NewTranslateService(client)
	sessions := storage.NewMemoryStorage()
	defer sessions.Close()

	apiHandler := handler.NewAPIHandler(client, translateService, cfg.UI.Languages)
	pageHandler := handler.NewPageHandler(sessions, client, translateService, cfg)

	gin.SetMode(gin.ReleaseMode)
	engine, err := router.Setup(cfg, apiHandler, pageHandler)
	if err != nil {
		logger.Fatalf("Failed to set up router: %v", err)
	}

	server := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        engine,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go cleanupSessions(cleanupCtx, sessions, cfg.Session)

	go func() {
		logger.Infof("Server listening on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.WithFields(logrus.Fields{"signal": sig.String()}).Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Graceful shutdown failed: %v", err)
		_ = server.Close()
	}
	logger.Info("Server stopped")
}

// probeBackend logs whether the backend is up. The server starts either way.
func probeBackend(client *backend.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result := client.CheckHealth(ctx)
	if !result.Online() {
		logger.WithError(result.Err).WithField("backend_url", client.BaseURL()).
			Warn("Translation backend is offline; translate requests will fail until it is started")
		return
	}
	logger.WithField("backend_url", client.BaseURL()).Info("Translation backend is online")
}

func cleanupSessions(ctx context.Context, sessions storage.Storage, cfg config.SessionConfig) {
	if cfg.CleanupInterval <= 0 || cfg.TTL <= 0 {
		return
	}
	ticker := time.NewTicker(cfg.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if removed := sessions.CleanupExpired(cfg.TTL); removed > 0 {
				logger.WithFields(logrus.Fields{"removed": removed}).Debug("Expired UI sessions removed")
			}
		case <-ctx.Done():
			return
		}
	}
}
