package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/coffee-shop-service/internal/api/http/body"
	"github.com/spec-kit/coffee-shop-service/internal/observability"
)

// AppConfig carries everything NewApp needs.
type AppConfig struct {
	Name           string
	Routes         RouteConfig
	Logger         *zap.Logger
	Metrics        *observability.Metrics
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// NewApp builds the fiber application with the middleware chain and the
// dispatcher mounted as the terminal handler.
func NewApp(cfg AppConfig) (*fiber.App, *Dispatcher) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := cfg.MaxBodyBytes
	if limit <= 0 {
		limit = body.DefaultLimit
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
		StreamRequestBody:     true,
		BodyLimit:             int(limit),
		ErrorHandler:          ErrorHandler(logger),
	})

	RegisterMiddlewares(app, logger, cfg.Metrics, cfg.RequestTimeout)

	dispatcher := NewDispatcher(RouteTable(cfg.Routes), body.Collector{Limit: limit}, logger)
	app.Use(dispatcher.Handle)
	return app, dispatcher
}
