package v1

import (
	"job-listing/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, jobs *handler.JobsHandler, sessions *handler.SessionHandler) {
	if r == nil {
		return
	}

	RegisterJobs(r, jobs)
	RegisterSessions(r, sessions)
}
