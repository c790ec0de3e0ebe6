package handler

import (
	"context"
	"errors"
	"strconv"

	"job-listing/internal/delivery/http/dto"
	"job-listing/internal/delivery/http/middleware"
	"job-listing/internal/domain/job"
	"job-listing/internal/pkg/response"
	"job-listing/internal/search"
	"job-listing/internal/usecase"
	"job-listing/internal/viewer"

	"github.com/gofiber/fiber/v3"
)

type JobsUsecase interface {
	LoadJobs(ctx context.Context) ([]*job.Job, error)
	Categories(jobs []*job.Job) []string
}

type JobsHandler struct {
	uc JobsUsecase
}

func NewJobsHandler(uc JobsUsecase) *JobsHandler {
	return &JobsHandler{uc: uc}
}

func (h *JobsHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/job-types", h.HandleJobTypes)
	r.Get("/jobs", h.HandleListJobs)
}

func (h *JobsHandler) HandleJobTypes(c fiber.Ctx) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobTypesResponse{
		Options: viewer.JobTypeOptions(),
	})
}

// HandleListJobs loads the page and applies the criteria given as query
// parameters: search, category, type and remote.
func (h *JobsHandler) HandleListJobs(c fiber.Ctx) error {
	remote, err := parseQueryBool(c, "remote")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	criteria := search.Criteria{
		SearchQuery: c.Query("search"),
		Category:    c.Query("category"),
		JobType:     c.Query("type"),
		RemoteOnly:  remote,
	}

	jobs, err := h.uc.LoadJobs(c.Context())
	if err != nil {
		return mapJobsUsecaseError(err)
	}

	st := viewer.NewState().Loaded(jobs).WithCriteria(criteria)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.JobListResponse{
		View:       viewer.Render(st),
		Categories: h.uc.Categories(jobs),
	})
}

func parseQueryBool(c fiber.Ctx, key string) (bool, error) {
	s := c.Query(key)
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func mapJobsUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrFetchFailed):
		return middleware.NewAppError(fiber.StatusBadGateway, "Error: "+err.Error(), nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
