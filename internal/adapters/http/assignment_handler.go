package http

import (
	"net/http"

	"caredesk/internal/adapters/http/middleware"
	"caredesk/internal/adapters/http/request"
	"caredesk/internal/adapters/http/response"
	"caredesk/internal/domain"
	"caredesk/internal/logger"
)

type AssignmentHandler struct {
	svc domain.AssignmentService
	log logger.Logger

	decoder request.RequestDecoder
	writer  response.ResponseWriter
}

func NewAssignmentHandler(
	svc domain.AssignmentService,
	log logger.Logger,
	d request.RequestDecoder,
	w response.ResponseWriter,
) *AssignmentHandler {
	return &AssignmentHandler{
		svc:     svc,
		log:     log,
		decoder: d,
		writer:  w,
	}
}

func (h *AssignmentHandler) Index(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	assignments, err := h.svc.ListAll(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to list assignments")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: assignments,
	})
}

func (h *AssignmentHandler) ForPatient(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	patientID, err := pathID(r, "patientId")
	if err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	assignments, err := h.svc.ListForPatient(r.Context(), identity.UserID, patientID)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to list patient doctors")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: assignments,
	})
}

func (h *AssignmentHandler) Store(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	identity, _ := middleware.GetIdentity(r.Context())

	var req domain.AssignmentCreateRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	a, err := h.svc.Assign(r.Context(), identity.UserID, req)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to assign doctor")
		return
	}

	h.writer.Write(w, http.StatusCreated, &response.Response{
		Message: "doctor assigned to patient",
		Data:    a,
	})
}

func (h *AssignmentHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	identity, _ := middleware.GetIdentity(r.Context())

	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	if err := h.svc.Unassign(r.Context(), identity.UserID, id); err != nil {
		writeError(w, h.writer, h.log, err, "failed to remove assignment")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "doctor removed from patient",
	})
}
