// cmd/assistant-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"realty-assistant/internal/assistant"
	"realty-assistant/internal/catalog"
	"realty-assistant/internal/common/config"
	"realty-assistant/internal/common/database"
	"realty-assistant/internal/common/logger"
	"realty-assistant/internal/common/observability"
	"realty-assistant/internal/httpapi"
	"realty-assistant/internal/identity"
	"realty-assistant/internal/session"
)

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assistant server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("assistant-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Identity store ---
	var ids identity.Store
	var redisClient *database.RedisClient
	switch cfg.Identity.Backend {
	case "redis":
		redisClient, err = database.NewRedis(cfg.Redis)
		if err != nil {
			zapLog.Fatal("redis init failed", zap.Error(err))
		}
		defer redisClient.Close()
		if err := redisClient.Ping(ctx); err != nil {
			zapLog.Fatal("redis unreachable", zap.Error(err))
		}
		ids = identity.NewRedisStore(redisClient.GetClient())
	case "memory":
		ids = identity.NewMemoryStore()
	default:
		ids = identity.NewFileStore(cfg.Identity.FilePath)
	}

	// --- Assistant retriever ---
	var retriever assistant.Retriever
	if cfg.Assistant.Mock {
		zapLog.Info("running in mock mode, serving turns from the built-in catalog")
		retriever = catalog.NewMockRetriever()
	} else {
		retriever = assistant.NewClient(cfg.Assistant.BaseURL, config.GetDuration(cfg.Assistant.Timeout), log)
	}

	sessions := session.NewRegistry(session.Deps{
		Retriever:     retriever,
		IdentityStore: ids,
		IdentityKey:   cfg.Identity.Key,
		Logger:        log,
		Observability: obs,
	})

	router := httpapi.BuildRouter(cfg.Server, httpapi.Deps{Sessions: sessions, Logger: log})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		zapLog.Info("HTTP surface listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown failed", zap.Error(err))
	}
}
