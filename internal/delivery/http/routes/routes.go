package routes

import (
	"job-listing/internal/delivery/http/handler"
	"job-listing/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	health   *handler.HealthHandler
	jobs     *handler.JobsHandler
	sessions *handler.SessionHandler
	sockets  *ws.Handler
}

func NewRegistry(health *handler.HealthHandler, jobs *handler.JobsHandler, sessions *handler.SessionHandler, sockets *ws.Handler) *Registry {
	return &Registry{health: health, jobs: jobs, sessions: sessions, sockets: sockets}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.health == nil {
		return
	}
	r.health.RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	RegisterV1(api.Group("/v1"), r.jobs, r.sessions)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.sockets == nil {
		return
	}
	app.Get("/ws/sessions/:id", r.sockets.HandleSessionWS)
}
