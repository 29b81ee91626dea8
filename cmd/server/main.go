package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dev-collab-hub/backend/api/handlers"
	"github.com/dev-collab-hub/backend/internal/config"
	"github.com/dev-collab-hub/backend/internal/hub"
	"github.com/dev-collab-hub/backend/internal/logger"
	"github.com/dev-collab-hub/backend/internal/ws"
)

// shutdownTimeout bounds how long in-flight HTTP requests may take to finish
// once a termination signal arrives.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	// Coordination hub with the heartbeat monitor.
	coordinator := hub.New(hub.Options{
		HeartbeatInterval: cfg.HeartbeatInterval,
		HeartbeatTimeout:  cfg.HeartbeatTimeout,
		HistoryCapacity:   cfg.HistoryCapacity,
	}, log)
	if err := coordinator.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start heartbeat monitor")
	}

	// Handlers.
	wsHandler := ws.NewHandler(coordinator, cfg.AllowedOrigins, log)
	controlHandler := handlers.NewControlHandler(coordinator)
	connectHandler := handlers.NewWebSocketHandler(wsHandler, log)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		controlHandler.RegisterRoutes(api)
		connectHandler.RegisterRoutes(api)
	}

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Msg("Starting coordination hub")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Info().Msg("Shutting down")

	coordinator.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}

// corsMiddleware allows external dashboards to consume the control plane.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Session-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
