package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"

	"task_backend/internal/app/di"
	"task_backend/internal/app/router"
	authadapters "task_backend/internal/feature/auth/adapters"
	authentity "task_backend/internal/feature/auth/domain/entity"
	authhandler "task_backend/internal/feature/auth/transport/handler"
	authusecase "task_backend/internal/feature/auth/usecase"
	taskadapters "task_backend/internal/feature/tasks/adapters"
	taskhandler "task_backend/internal/feature/tasks/transport/handler"
	taskusecase "task_backend/internal/feature/tasks/usecase"
	"task_backend/internal/platform/config"
	"task_backend/internal/platform/db"
	platformhandler "task_backend/internal/platform/http/handler"
	jwtmw "task_backend/internal/platform/jwt"
	"task_backend/internal/platform/logger"
	infraredis "task_backend/internal/platform/redis"
)

const shutdownTimeout = 10 * time.Second

// expiredPruner is implemented by revocation stores that need explicit cleanup.
type expiredPruner interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	slog.SetDefault(logger.New(os.Stdout, cfg.LogLevel, cfg.LogFormat))
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	gdb, err := db.Open(ctx, cfg.DB)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); errors.Is(err, infraredis.ErrDisabled) {
		slog.Info("Redis not configured, revoked tokens are stored in the database")
	} else if err != nil {
		slog.Warn("Redis unavailable, revoked tokens are stored in the database", "error", err)
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	revoked := di.NewRevocationStore(rdb, gdb, cfg.Redis.Prefix)
	if p, ok := revoked.(expiredPruner); ok {
		if n, err := p.DeleteExpired(ctx); err != nil {
			slog.Warn("failed to prune revoked tokens", "error", err)
		} else if n > 0 {
			slog.Info("pruned revoked tokens", "count", n)
		}
	}
	tokens := jwtmw.NewTokenService(cfg.JWT.Secret, cfg.JWT.TTL, cfg.JWT.Issuer, revoked)

	// Repository
	userRepo := authadapters.NewUserGorm(gdb)
	taskRepo := taskadapters.NewTaskGorm(gdb)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, tokens)
	taskUC := taskusecase.NewTaskUsecase(taskRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	taskH := taskhandler.NewTaskHandler(taskUC)
	healthH := platformhandler.NewHealthHandler(sqlDB)

	r := router.NewRouter(authH, taskH, healthH,
		jwtmw.AuthRequired[*authentity.User](authUC),
		router.Options{CORS: cfg.CORSEnabled})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
