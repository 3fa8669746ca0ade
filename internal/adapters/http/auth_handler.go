package http

import (
	"net/http"

	"caredesk/internal/adapters/http/middleware"
	"caredesk/internal/adapters/http/request"
	"caredesk/internal/adapters/http/response"
	"caredesk/internal/domain"
	"caredesk/internal/logger"
)

type AuthHandler struct {
	svc domain.AuthService
	log logger.Logger

	decoder request.RequestDecoder
	writer  response.ResponseWriter
}

func NewAuthHandler(
	svc domain.AuthService,
	log logger.Logger,
	d request.RequestDecoder,
	w response.ResponseWriter,
) *AuthHandler {
	return &AuthHandler{
		svc:     svc,
		log:     log,
		decoder: d,
		writer:  w,
	}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.RegisterRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	res, err := h.svc.Register(r.Context(), req)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to register")
		return
	}

	h.writer.Write(w, http.StatusCreated, &response.Response{
		Message: "user registered",
		Data:    res,
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.LoginRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	res, err := h.svc.Login(r.Context(), req)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to sign in")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: res,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	if err := h.svc.Logout(r.Context(), identity); err != nil {
		writeError(w, h.writer, h.log, err, "failed to sign out")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "signed out",
	})
}

func (h *AuthHandler) User(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		writeError(w, h.writer, h.log, domain.ErrUnauthorized, "")
		return
	}

	user, err := h.svc.GetUser(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to get user")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: user,
	})
}
