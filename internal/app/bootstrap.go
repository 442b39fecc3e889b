package app

import (
	"fmt"
	"strings"

	"talentflow/internal/delivery/http/handler"
	"talentflow/internal/delivery/http/middleware"
	"talentflow/internal/delivery/http/routes"
	"talentflow/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	accessLog := middleware.NewAccessLogMiddleware(c.Logger)
	errMw := middleware.NewErrorMiddleware()
	f.Use(accessLog.Middleware())
	f.Use(errMw.Middleware())

	registry := routes.NewRegistry(
		handler.NewHealthHandler(c.DB, c.Cache),
		handler.NewJobsHandler(c.Jobs),
		handler.NewCandidatesHandler(c.Candidates, c.Pipeline),
		handler.NewAssessmentsHandler(c.Assessments),
		ws.NewHandler(c.Hub, c.Logger),
	)
	registry.Register(f)

	go c.Hub.Run()

	return &App{Fiber: f, Container: c}
}

func (a *App) Close() error {
	if a == nil || a.Container == nil {
		return nil
	}
	return a.Container.Close()
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
