package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"casa_criativa/internal/lib/logger/sl"
	"casa_criativa/internal/metrics"
	"casa_criativa/internal/repository"
	"casa_criativa/internal/transport/http/dto/response"
)

const hitTimeout = time.Second

// WindowStore is an echo RateLimiterStore allowing at most max requests per
// identifier in each fixed window.
type WindowStore struct {
	log    *slog.Logger
	hits   repository.HitRepository
	max    int64
	window time.Duration
}

func NewWindowStore(log *slog.Logger, hits repository.HitRepository, max int, window time.Duration) *WindowStore {
	return &WindowStore{
		log:    log,
		hits:   hits,
		max:    int64(max),
		window: window,
	}
}

// Allow lets the request through when the counter backend fails.
func (s *WindowStore) Allow(identifier string) (bool, error) {
	const op = "middleware.WindowStore.Allow"

	ctx, cancel := context.WithTimeout(context.Background(), hitTimeout)
	defer cancel()

	n, err := s.hits.Hit(ctx, identifier, s.window)
	if err != nil {
		s.log.Warn("rate limit counter unavailable", slog.String("op", op), sl.Err(err))
		return true, err
	}

	return n <= s.max, nil
}

func RateLimiter(store echomw.RateLimiterStore) echo.MiddlewareFunc {
	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/health" || p == "/metrics"
		},
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, err.Error())
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			metrics.RateLimitedTotal.Inc()
			return echo.NewHTTPError(http.StatusTooManyRequests, response.MsgTooMany)
		},
	})
}
