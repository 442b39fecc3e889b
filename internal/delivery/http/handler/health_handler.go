package handler

import (
	"context"
	"time"

	"talentflow/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	db    Pinger
	cache Pinger
}

func NewHealthHandler(db, cache Pinger) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

func (h *HealthHandler) RegisterRoutes(app *fiber.App) {
	app.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	dbStatus := "ok"
	healthy := true
	if h.db == nil {
		dbStatus = "not configured"
		healthy = false
	} else if err := h.db.Ping(ctx); err != nil {
		dbStatus = "unreachable"
		healthy = false
	}

	// Cache outage degrades list caching only, never availability.
	cacheStatus := "ok"
	if h.cache == nil {
		cacheStatus = "not configured"
	} else if err := h.cache.Ping(ctx); err != nil {
		cacheStatus = "unreachable"
	}

	data := fiber.Map{
		"database": dbStatus,
		"cache":    cacheStatus,
	}
	if !healthy {
		return response.Error(c, fiber.StatusServiceUnavailable, "unhealthy", data)
	}
	return response.Success(c, fiber.StatusOK, "healthy", data)
}
