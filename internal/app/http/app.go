package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "casa_criativa/docs"
	"casa_criativa/internal/config"
	appmw "casa_criativa/internal/middleware"
	httprouters "casa_criativa/internal/transport/http"
	"casa_criativa/internal/validation"
)

const contentSecurityPolicy = "default-src 'self'; " +
	"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; " +
	"font-src 'self' https://fonts.gstatic.com; " +
	"script-src 'self'; " +
	"img-src 'self' data: https:"

type Server struct {
	log             *slog.Logger
	e               *echo.Echo
	routers         *httprouters.Routers
	addr            string
	shutdownTimeout time.Duration
}

func New(log *slog.Logger, cfg config.HTTPConfig, limiter middleware.RateLimiterStore, routers *httprouters.Routers) (*Server, error) {
	const op = "httpapp.New"

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	extractor, err := ipExtractor(cfg.TrustedProxies)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e.IPExtractor = extractor

	e.Validator = validation.New()

	renderer, err := httprouters.NewTemplate()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	e.Renderer = renderer
	e.HTTPErrorHandler = httprouters.ErrorHandler(log)

	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("method", v.Method),
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
				slog.String("request id", v.RequestID),
				slog.Duration("latency", v.Latency),
			)

			return nil
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		Skipper: func(c echo.Context) bool {
			return strings.HasPrefix(c.Path(), "/swagger")
		},
		XSSProtection:         "0",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "SAMEORIGIN",
		HSTSMaxAge:            15552000,
		ReferrerPolicy:        "no-referrer",
		ContentSecurityPolicy: contentSecurityPolicy,
	}))

	if limiter != nil {
		e.Use(appmw.RateLimiter(limiter))
	}

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		// promhttp compresses on its own
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(appmw.PrometheusMetrics)

	return &Server{
		log:             log,
		e:               e,
		routers:         routers,
		addr:            net.JoinHostPort(cfg.Host, cfg.Port),
		shutdownTimeout: cfg.ShutdownTimeout,
	}, nil
}

// ipExtractor keys clients on the TCP peer unless trusted proxies are
// configured, in which case X-Forwarded-For is read through them only.
func ipExtractor(proxies []string) (echo.IPExtractor, error) {
	if len(proxies) == 0 {
		return echo.ExtractIPDirect(), nil
	}

	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, p := range proxies {
		_, ipNet, err := net.ParseCIDR(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", p, err)
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}

	return echo.ExtractIPFromXFFHeader(opts...), nil
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"), slog.String("addr", s.addr))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(s.addr); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.log.Info("stopping", slog.String("op", op))

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) BuildRouters() {
	s.e.GET("/", s.routers.Home)
	s.e.POST("/", s.routers.CreateIdea)
	s.e.GET("/ideias", s.routers.Ideas)

	api := s.e.Group("/api")
	{
		api.GET("/ideas", s.routers.ListIdeas)
	}

	s.e.GET("/health", s.routers.Health)
	s.e.GET("/metrics", echoprometheus.NewHandler())
	s.e.GET("/swagger/*", echoSwagger.WrapHandler)

	// assets live at the root; any other unrouted GET falls through to the 404 page
	s.e.StaticFS("/", httprouters.Public())
}
