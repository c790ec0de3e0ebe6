package v1

import (
	"job-listing/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterJobs(r fiber.Router, jobsHandler *handler.JobsHandler) {
	if r == nil {
		return
	}
	if jobsHandler == nil {
		return
	}

	jobsHandler.RegisterRoutes(r)
}

func RegisterSessions(r fiber.Router, sessionHandler *handler.SessionHandler) {
	if r == nil {
		return
	}
	if sessionHandler == nil {
		return
	}

	sessionHandler.RegisterRoutes(r)
}
