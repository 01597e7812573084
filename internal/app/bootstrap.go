package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"career-compass/internal/config"
	"career-compass/internal/delivery/http/handler"
	"career-compass/internal/delivery/http/middleware"
	"career-compass/internal/delivery/http/routes"
	"career-compass/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container

	stopPurge chan struct{}
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	errMw := middleware.NewErrorMiddleware(c.Logger, c.Config.Production())
	f.Use(errMw.Middleware())
	f.Use(middleware.NewAccessLogMiddleware(c.Logger).Middleware())

	registry := &routes.Registry{
		Health:      handler.NewHealthHandler(),
		Auth:        handler.NewAuthHandler(c.Auth, c.Config.Production()),
		Profile:     handler.NewProfileHandler(c.Store),
		Resume:      handler.NewResumeHandler(c.Resume),
		Roadmap:     handler.NewRoadmapHandler(c.Store),
		Webinar:     handler.NewWebinarHandler(c.Webinar, c.Hub),
		Mentor:      handler.NewMentorHandler(c.Store),
		Analytics:   handler.NewAnalyticsHandler(c.Analytics),
		Events:      ws.NewHandler(c.Hub, c.Logger),
		SessionAuth: middleware.NewSessionAuth(c.Sessions),
	}
	registry.Register(f)

	return &App{Fiber: f, Container: c, stopPurge: make(chan struct{})}
}

func Bootstrap(cfg config.Config, container *Container) (*App, func() error, error) {
	app := New(container)

	go container.Hub.Run()
	go app.purgeSessions()

	cleanup := func() error {
		close(app.stopPurge)
		container.Hub.Stop()
		return container.Close()
	}
	return app, cleanup, nil
}

// purgeSessions sweeps expired session records so an abandoned cookie does
// not pin a row forever.
func (a *App) purgeSessions() {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if n, err := a.Container.Sessions.PurgeExpired(ctx); err != nil {
				a.Container.Logger.Printf("session purge failed: %v", err)
			} else if n > 0 {
				a.Container.Logger.Printf("purged expired sessions | count=%d", n)
			}
			cancel()
		case <-a.stopPurge:
			return
		}
	}
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
