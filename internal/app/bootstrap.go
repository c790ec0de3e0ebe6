package app

import (
	"fmt"
	"strings"

	"job-listing/internal/config"
	"job-listing/internal/delivery/http/handler"
	"job-listing/internal/delivery/http/middleware"
	"job-listing/internal/delivery/http/routes"
	"job-listing/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap wires the container into a fiber app and starts the background
// workers. The returned cleanup stops them.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := c.Start(); err != nil {
		_ = c.Close()
		return nil, nil, fmt.Errorf("start background workers: %w", err)
	}

	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessMw.Middleware())

	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	// An enabled but unreachable cache is still pinged so health reports
	// it as unavailable rather than disabled.
	var pinger handler.CachePinger
	if c.Config.Redis.Enabled && c.Cache != nil {
		pinger = c.Cache
	}

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.Config.App.AppName, c.Config.App.Environment, pinger, c.Sessions, c.Hub),
		handler.NewJobsHandler(c.Listing),
		handler.NewSessionHandler(c.Context(), c.Sessions, c.Listing, c.Hub, c.Logger),
		ws.NewHandler(c.Hub, c.Sessions, c.Logger),
	)
	registry.Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
