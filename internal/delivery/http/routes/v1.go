package routes

import (
	"job-listing/internal/delivery/http/handler"
	v1 "job-listing/internal/delivery/http/routes/v1"

	"github.com/gofiber/fiber/v3"
)

func RegisterV1(r fiber.Router, jobs *handler.JobsHandler, sessions *handler.SessionHandler) {
	if r == nil {
		return
	}

	v1.Register(r, jobs, sessions)
}
