package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	handlers "github.com/wekeepgrowing/payment-recovery/internal/adapter/handler/http"
	"github.com/wekeepgrowing/payment-recovery/internal/config"
	"github.com/wekeepgrowing/payment-recovery/internal/middleware/auth"
	"github.com/wekeepgrowing/payment-recovery/pkg/logger"
	"go.uber.org/zap"
)

// Handlers groups the HTTP handlers the server routes to.
type Handlers struct {
	Payment *handlers.PaymentHandler
	Webhook *handlers.WebhookHandler
}

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
}

func NewServer(cfg *config.Config, log *zap.Logger, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handlers.NewRequestValidator()

	// Middleware
	logger.WithEchoLogger(e, log)
	e.Use(middleware.Recover())
	e.Use(logger.NewEchoRequestLogger(log))
	if cfg.Service.ClientURL != "" {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: []string{cfg.Service.ClientURL},
			AllowMethods: []string{echo.GET, echo.POST},
		}))
	}

	s := &Server{
		config: cfg,
		logger: log,
		echo:   e,
	}
	s.setupRoutes(h)
	return s
}

func (s *Server) Start() error {
	addr := s.config.Server.HTTP.Address()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) setupRoutes(h Handlers) {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":   "healthy",
			"service":  s.config.Service.Name,
			"platform": s.config.Service.Platform,
		})
	})
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// Stripe webhook, authenticated by its signature
	s.echo.POST("/webhook", h.Webhook.HandleWebhook)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
	}

	// API v1 routes, all behind JWT
	v1 := s.echo.Group("/api/v1", auth.JWTMiddleware(jwtConfig))

	payments := v1.Group("/payments")
	payments.POST("/retry", h.Payment.RetryPayment)
	payments.GET("/attempts", h.Payment.GetUserPaymentAttempts)

	goals := v1.Group("/goals/:goalId")
	goals.GET("/payment-attempts", h.Payment.GetGoalPaymentAttempts)
	goals.GET("/retry-eligibility", h.Payment.GetRetryEligibility)
}
