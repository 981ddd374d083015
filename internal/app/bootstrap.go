package app

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"placement-portal/internal/config"
	"placement-portal/internal/database/migration"
	"placement-portal/internal/delivery/http/middleware"
	"placement-portal/migrations"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(container *Container) *App {
	f := fiber.New(fiber.Config{AppName: container.Config.App.AppName})

	registerGlobalMiddleware(f, container.Logger)
	container.Routes.Register(f)

	return &App{Fiber: f, Container: container}
}

// Bootstrap wires the container, applies migrations when configured and starts
// the notification hub. The returned cleanup stops the hub and closes pools.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, fmt.Errorf("build container: %w", err)
	}

	if cfg.MigrateOnStart {
		if err := RunMigrations(context.Background(), container, logger); err != nil {
			_ = container.Close()
			return nil, nil, err
		}
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go container.Hub.Run(hubCtx)

	cleanup := func() error {
		stopHub()
		return container.Close()
	}
	return New(container), cleanup, nil
}

func RunMigrations(ctx context.Context, container *Container, logger *log.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	n, err := migration.Runner{Source: migrations.FS, Logger: logger}.Run(ctx, container.DB.SQLDB())
	if err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	logger.Printf("[Migrate] applied=%d", n)
	return nil
}

func registerGlobalMiddleware(app *fiber.App, logger *log.Logger) {
	if app == nil {
		return
	}

	app.Use(middleware.NewErrorMiddleware(logger).Middleware())
	app.Use(middleware.NewAccessLogMiddleware(logger).Middleware())
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
