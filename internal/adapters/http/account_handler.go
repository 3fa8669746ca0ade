package http

import (
	"net/http"

	"caredesk/internal/adapters/http/middleware"
	"caredesk/internal/adapters/http/response"
	"caredesk/internal/domain"
	"caredesk/internal/logger"
)

type AccountHandler struct {
	svc  domain.AccountService
	auth domain.AuthService
	log  logger.Logger

	writer response.ResponseWriter
}

func NewAccountHandler(svc domain.AccountService, auth domain.AuthService, log logger.Logger, w response.ResponseWriter) *AccountHandler {
	return &AccountHandler{
		svc:    svc,
		auth:   auth,
		log:    log,
		writer: w,
	}
}

// Destroy deletes the caller's account and revokes the token used to do it.
func (h *AccountHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, h.writer, h.log, domain.ErrUnauthorized, "")
		return
	}

	if err := h.svc.Delete(r.Context(), identity.UserID); err != nil {
		writeError(w, h.writer, h.log, err, "failed to delete account")
		return
	}

	if err := h.auth.Logout(r.Context(), identity); err != nil {
		h.log.Warn("http: failed to revoke token of deleted account", "user_id", identity.UserID, "error", err)
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "account deleted",
	})
}
