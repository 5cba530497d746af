package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	echomw "github.com/labstack/echo/v4/middleware"

	httpapp "casa_criativa/internal/app/http"
	"casa_criativa/internal/config"
	"casa_criativa/internal/lib/logger/sl"
	"casa_criativa/internal/middleware"
	"casa_criativa/internal/repository"
	services "casa_criativa/internal/services/idea_service"
	"casa_criativa/internal/storage/sqlite"
	redisapp "casa_criativa/internal/storage/redis"
	httprouters "casa_criativa/internal/transport/http"
	"casa_criativa/internal/validation"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	storage    *sqlite.Storage
	redis      *redisapp.Client
	logSinks   io.Closer
}

// New opens the store, makes sure the schema exists and wires the HTTP server.
// logSinks, when not nil, is closed last by Stop.
func New(ctx context.Context, log *slog.Logger, cfg *config.Config, logSinks io.Closer) (*App, error) {
	const op = "app.New"

	storage, err := sqlite.New(ctx, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := storage.EnsureSchema(ctx); err != nil {
		storage.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	a := &App{log: log, storage: storage, logSinks: logSinks}

	repo := repository.NewRepository(storage.DB(), cfg.QueryTimeout)

	ideaService := services.NewIdeaService(log, repo.Ideas, validation.New())
	routers := httprouters.NewRouter(log, ideaService)

	server, err := httpapp.New(log, cfg.HTTP, a.rateLimiter(ctx, cfg), routers)
	if err != nil {
		a.Stop()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	server.BuildRouters()

	a.HTTPServer = server

	return a, nil
}

func (a *App) rateLimiter(ctx context.Context, cfg *config.Config) echomw.RateLimiterStore {
	const op = "app.rateLimiter"

	if cfg.RateLimit.MaxRequests <= 0 {
		a.log.Info("rate limiting disabled", slog.String("op", op))
		return nil
	}

	var hits repository.HitRepository = repository.NewMemoryHitRepo(cfg.RateLimit.Window())

	if cfg.Redis.RedisAddr != "" {
		a.redis = redisapp.NewClient(redisapp.Options{
			Addr:      cfg.Redis.RedisAddr,
			Password:  cfg.Redis.RedisPassword,
			DB:        cfg.Redis.RedisDB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err := a.redis.HealthCheck(ctx); err != nil {
			a.log.Warn("redis unreachable, counters fail open until it recovers", slog.String("op", op), sl.Err(err))
		}
		hits = repository.NewRedisHitRepo(a.redis)
	}

	return middleware.NewWindowStore(a.log, hits, cfg.RateLimit.MaxRequests, cfg.RateLimit.Window())
}

// Stop drains the HTTP server first so no request touches a closed store.
func (a *App) Stop() {
	const op = "app.Stop"

	log := a.log.With(slog.String("op", op))

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Stop(); err != nil {
			log.Error("failed to stop http server", sl.Err(err))
		}
	}

	if err := a.storage.Stop(); err != nil {
		log.Error("error closing database", sl.Err(err))
	} else {
		log.Info("database connection closed")
	}

	if a.redis != nil {
		if err := a.redis.Stop(); err != nil {
			log.Error("error closing redis", sl.Err(err))
		}
	}

	log.Info("gracefully stopped")

	if a.logSinks != nil {
		if err := a.logSinks.Close(); err != nil {
			fmt.Fprintln(os.Stderr, "error closing log files:", err)
		}
	}
}
