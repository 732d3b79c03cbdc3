package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plumablog/backend/internal/api"
	"github.com/plumablog/backend/internal/auth"
	"github.com/plumablog/backend/internal/config"
	"github.com/plumablog/backend/internal/db"
	"github.com/plumablog/backend/internal/logger"
	"github.com/plumablog/backend/internal/metrics"
	"github.com/plumablog/backend/internal/repository/postgres"
	"github.com/plumablog/backend/internal/services"
	"github.com/plumablog/backend/internal/worker"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Migrate {
		if err := db.RunMigrations(ctx, pool); err != nil {
			log.Error("migrations", "err", err)
			os.Exit(1)
		}
	}

	metrics.Init()

	repos := postgres.NewRepositories(pool)
	wp := worker.NewPool(4)
	defer wp.Stop()

	tm := auth.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	userSvc := services.NewUserService(repos.Users, tm, cfg.BcryptCost, repos.AuditLogs, wp)
	postSvc := services.NewPostService(repos.Posts, repos.AuditLogs, wp)
	commentSvc := services.NewCommentService(repos.Comments, repos.AuditLogs, wp)

	r := api.NewRouter(cfg, tm, userSvc, postSvc, commentSvc)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server", "err", err)
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
}
