package ws

import (
	"errors"
	"log"
	"net/http"

	"job-listing/internal/viewer"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type SessionLookup interface {
	Get(id uuid.UUID) (*viewer.Session, error)
}

type Handler struct {
	hub      *Hub
	sessions SessionLookup
	logger   *log.Logger
}

func NewHandler(hub *Hub, sessions SessionLookup, logger *log.Logger) *Handler {
	return &Handler{hub: hub, sessions: sessions, logger: logger}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleSessionWS upgrades the request and streams the session's view.
// The session must exist before the upgrade.
func (h *Handler) HandleSessionWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil || h.sessions == nil {
		return fiber.ErrServiceUnavailable
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	session, err := h.sessions.Get(id)
	if err != nil {
		if errors.Is(err, viewer.ErrSessionNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "session not found")
		}
		return err
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			if h.logger != nil {
				h.logger.Printf("[WS] upgrade error session=%s err=%v", id, err)
			}
			return
		}

		client := NewClient(h.hub, conn, session, h.logger)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}
