package userws

import (
	"net/http"
	"slices"

	"caredesk/internal/adapters/http/middleware"
	"caredesk/internal/adapters/http/response"
	"caredesk/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	auth     *middleware.Authenticator
	writer   response.ResponseWriter
	log      logger.Logger
}

func NewHandler(hub *Hub, auth *middleware.Authenticator, writer response.ResponseWriter, log logger.Logger, allowedOrigins []string) *Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" {
				return true
			}

			allowed := slices.Contains(allowedOrigins, origin) || slices.Contains(allowedOrigins, "*")
			if !allowed {
				log.Warn("ws auth: origin rejected", "origin", origin)
			}

			return allowed
		},
	}

	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		auth:     auth,
		writer:   writer,
		log:      log,
	}
}

// Serve authenticates with the bearer header, or the token query parameter
// for browsers that cannot set headers on the upgrade request.
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	raw, ok := middleware.BearerToken(r)
	if !ok {
		raw = r.URL.Query().Get("token")
	}

	identity, err := h.auth.Authenticate(r.Context(), raw)
	if err != nil {
		h.log.Warn("ws auth: no valid credentials", "error", err)
		h.writer.Write(w, http.StatusUnauthorized, &response.Response{
			Message: "unauthorized",
			Code:    response.CodeUnauthorized,
		})
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Error("ws auth: upgrade failed", "error", err)
		return
	}

	c := NewClient(h.hub, conn, h.log, uuid.NewString(), identity.UserID)
	if !h.hub.Register(c) {
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}
