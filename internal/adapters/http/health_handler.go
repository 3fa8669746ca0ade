package http

import (
	"context"
	"net/http"
	"time"

	"caredesk/internal/adapters/http/response"
	"caredesk/internal/domain"
	"caredesk/internal/logger"
)

type HealthHandler struct {
	store domain.Pinger
	log   logger.Logger

	writer response.ResponseWriter
}

func NewHealthHandler(store domain.Pinger, log logger.Logger, w response.ResponseWriter) *HealthHandler {
	return &HealthHandler{store: store, log: log, writer: w}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.log.Error("health: store unreachable", "error", err)
		h.writer.Write(w, http.StatusServiceUnavailable, &response.Response{
			Message: "store unreachable",
			Code:    response.CodeInternal,
		})
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "ok",
	})
}
