package handler

import (
	"context"
	"time"

	"job-listing/internal/delivery/http/dto"
	"job-listing/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
)

type CachePinger interface {
	Ping(ctx context.Context) error
}

type Counter interface {
	Len() int
}

type ClientCounter interface {
	ClientCount() int
}

type HealthHandler struct {
	app      string
	env      string
	cache    CachePinger
	sessions Counter
	sockets  ClientCounter
}

func NewHealthHandler(app, env string, cache CachePinger, sessions Counter, sockets ClientCounter) *HealthHandler {
	return &HealthHandler{app: app, env: env, cache: cache, sessions: sessions, sockets: sockets}
}

func (h *HealthHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/health", h.Health)
}

// Health always answers 200. A down cache is reported, not fatal, since
// the listing works without it.
func (h *HealthHandler) Health(c fiber.Ctx) error {
	out := dto.HealthResponse{App: h.app, Environment: h.env, Cache: "disabled"}

	if h.cache != nil {
		ctx, cancel := context.WithTimeout(c.Context(), time.Second)
		defer cancel()
		if err := h.cache.Ping(ctx); err != nil {
			out.Cache = "unavailable"
		} else {
			out.Cache = "ok"
		}
	}
	if h.sessions != nil {
		out.Sessions = h.sessions.Len()
	}
	if h.sockets != nil {
		out.SocketClients = h.sockets.ClientCount()
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
