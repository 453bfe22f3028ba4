package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wavely/chat-service/internal/config"
	"github.com/wavely/chat-service/internal/handler"
	"github.com/wavely/chat-service/internal/presence"
	"github.com/wavely/chat-service/internal/room"
	"github.com/wavely/chat-service/pkg/log"
	"github.com/wavely/chat-service/pkg/metrics"
)

func main() {
	// Load local .env (dev only)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log.Init(log.Config{
		Level:       cfg.Log.Level,
		Pretty:      cfg.Log.Pretty,
		ServiceName: "chat-service",
	})
	l := log.L()

	// Presence tracker: redis when configured, otherwise a no-op.
	var tracker presence.Tracker = presence.Noop{}
	if cfg.Redis.Address != "" {
		rt, err := presence.NewRedisTracker(cfg.Redis)
		if err != nil {
			l.Fatal().Err(err).Msg("failed to connect presence tracker")
		}
		tracker = rt
		l.Info().Str("address", cfg.Redis.Address).Msg("presence tracking enabled")
	}
	defer tracker.Close()

	rooms := room.NewRegistry(cfg.Room.EventQueueSize, tracker)
	wsHandler := handler.NewWSHandler(rooms, cfg.WebSocket)

	mux := http.NewServeMux()
	wsHandler.RegisterRoutes(mux)
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		l.Info().Str("addr", server.Addr).Msg("chat service listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	l.Info().Msg("shutting down chat service")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		l.Error().Err(err).Msg("server forced to shutdown")
	}

	l.Info().Msg("chat service stopped")
}
