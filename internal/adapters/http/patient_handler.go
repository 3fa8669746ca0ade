package http

import (
	"net/http"

	"caredesk/internal/adapters/http/middleware"
	"caredesk/internal/adapters/http/request"
	"caredesk/internal/adapters/http/response"
	"caredesk/internal/domain"
	"caredesk/internal/logger"
)

type PatientHandler struct {
	svc domain.PatientService
	log logger.Logger

	decoder request.RequestDecoder
	writer  response.ResponseWriter
}

func NewPatientHandler(
	svc domain.PatientService,
	log logger.Logger,
	d request.RequestDecoder,
	w response.ResponseWriter,
) *PatientHandler {
	return &PatientHandler{
		svc:     svc,
		log:     log,
		decoder: d,
		writer:  w,
	}
}

func (h *PatientHandler) Index(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	patients, err := h.svc.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to list patients")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: patients,
	})
}

func (h *PatientHandler) Show(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	p, err := h.svc.Get(r.Context(), identity.UserID, id)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to get patient")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: p,
	})
}

func (h *PatientHandler) Store(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, _ := middleware.GetIdentity(r.Context())

	var req domain.PatientSaveRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	p, err := h.svc.Create(r.Context(), identity.UserID, req)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to create patient")
		return
	}

	h.writer.Write(w, http.StatusCreated, &response.Response{
		Message: "patient created",
		Data:    p,
	})
}

func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, _ := middleware.GetIdentity(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	var req domain.PatientUpdateRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	p, err := h.svc.Update(r.Context(), identity.UserID, id, req)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to update patient")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "patient updated",
		Data:    p,
	})
}

func (h *PatientHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	if err := h.svc.Delete(r.Context(), identity.UserID, id); err != nil {
		writeError(w, h.writer, h.log, err, "failed to delete patient")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "patient deleted",
	})
}
