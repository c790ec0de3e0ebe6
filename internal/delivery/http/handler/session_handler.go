package handler

import (
	"context"
	"errors"
	"log"
	"time"

	"job-listing/internal/delivery/http/dto"
	"job-listing/internal/delivery/http/middleware"
	"job-listing/internal/pkg/response"
	"job-listing/internal/viewer"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// maxReadyWait bounds GET ?wait=true when the upstream is slow.
const maxReadyWait = 10 * time.Second

type SessionStore interface {
	Create() *viewer.Session
	Get(id uuid.UUID) (*viewer.Session, error)
	Delete(id uuid.UUID) error
}

type SessionCloser interface {
	CloseSession(id uuid.UUID)
}

type SessionHandler struct {
	ctx    context.Context
	store  SessionStore
	loader viewer.JobsLoader
	closer SessionCloser
	log    *log.Logger
}

// NewSessionHandler builds the session endpoints. ctx outlives single
// requests and bounds the background page fetch of each session.
func NewSessionHandler(ctx context.Context, store SessionStore, loader viewer.JobsLoader, closer SessionCloser, logger *log.Logger) *SessionHandler {
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &SessionHandler{ctx: ctx, store: store, loader: loader, closer: closer, log: logger}
}

func (h *SessionHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	grp := r.Group("/sessions")
	grp.Post("/", h.Create)
	grp.Get("/:id", h.Get)
	grp.Put("/:id/criteria", h.UpdateCriteria)
	grp.Post("/:id/search", h.Search)
	grp.Post("/:id/reset", h.Reset)
	grp.Post("/:id/jobs/:jobID/toggle", h.Toggle)
	grp.Delete("/:id", h.Delete)
}

func (h *SessionHandler) Create(c fiber.Ctx) error {
	s := h.store.Create()
	s.Start(h.ctx, h.loader)

	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.SessionResponse{
		SessionID: s.ID,
		View:      viewer.Render(s.State()),
	})
}

// Get returns the current view. With wait=true it first blocks until the
// page fetch has settled, the request ends or maxReadyWait passes.
func (h *SessionHandler) Get(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	wait, err := parseQueryBool(c, "wait")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if wait {
		timer := time.NewTimer(maxReadyWait)
		defer timer.Stop()
		select {
		case <-s.Ready():
		case <-c.Context().Done():
		case <-timer.C:
		}
	}
	return h.view(c, s, s.State())
}

// UpdateCriteria applies the fields present in the body. Omitted fields
// keep their current value.
func (h *SessionHandler) UpdateCriteria(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}

	var req dto.CriteriaRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	next := s.State().Criteria
	if req.SearchQuery != nil {
		next.SearchQuery = *req.SearchQuery
	}
	if req.Category != nil {
		next.Category = *req.Category
	}
	if req.JobType != nil {
		next.JobType = *req.JobType
	}
	if req.RemoteOnly != nil {
		next.RemoteOnly = *req.RemoteOnly
	}

	return h.view(c, s, s.SetCriteria(next))
}

// Search feeds raw search box input through the session debouncer. The
// filtered view is pushed to sockets once the input settles. With
// flush=true the input is applied at once and the new view is returned.
func (h *SessionHandler) Search(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	flush, err := parseQueryBool(c, "flush")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	var req dto.SearchInputRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	s.Input(req.Input)
	if flush {
		return h.view(c, s, s.FlushInput())
	}
	return response.Success(c, fiber.StatusAccepted, response.MessageAccepted, dto.SearchInputResponse{
		SessionID: s.ID,
		Pending:   req.Input,
	})
}

func (h *SessionHandler) Reset(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return h.view(c, s, s.Reset())
}

func (h *SessionHandler) Toggle(c fiber.Ctx) error {
	s, err := h.session(c)
	if err != nil {
		return err
	}
	return h.view(c, s, s.Toggle(c.Params("jobID")))
}

func (h *SessionHandler) Delete(c fiber.Ctx) error {
	id, err := parseSessionID(c)
	if err != nil {
		return err
	}
	if err := h.store.Delete(id); err != nil {
		return mapSessionError(err)
	}
	if h.closer != nil {
		h.closer.CloseSession(id)
	}
	h.log.Printf("[Viewer] session deleted id=%s", id)
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *SessionHandler) session(c fiber.Ctx) (*viewer.Session, error) {
	id, err := parseSessionID(c)
	if err != nil {
		return nil, err
	}
	s, err := h.store.Get(id)
	if err != nil {
		return nil, mapSessionError(err)
	}
	return s, nil
}

func (h *SessionHandler) view(c fiber.Ctx, s *viewer.Session, st viewer.State) error {
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.SessionResponse{
		SessionID: s.ID,
		View:      viewer.Render(st),
	})
}

func parseSessionID(c fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid session id", nil, err)
	}
	return id, nil
}

func mapSessionError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, viewer.ErrSessionNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Session not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
