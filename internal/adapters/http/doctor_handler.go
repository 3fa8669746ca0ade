package http

import (
	"net/http"

	"caredesk/internal/adapters/http/request"
	"caredesk/internal/adapters/http/response"
	"caredesk/internal/domain"
	"caredesk/internal/logger"
)

type DoctorHandler struct {
	svc domain.DoctorService
	log logger.Logger

	decoder request.RequestDecoder
	writer  response.ResponseWriter
}

func NewDoctorHandler(
	svc domain.DoctorService,
	log logger.Logger,
	d request.RequestDecoder,
	w response.ResponseWriter,
) *DoctorHandler {
	return &DoctorHandler{
		svc:     svc,
		log:     log,
		decoder: d,
		writer:  w,
	}
}

func (h *DoctorHandler) Index(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to list doctors")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: doctors,
	})
}

func (h *DoctorHandler) Show(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	d, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to get doctor")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Data: d,
	})
}

func (h *DoctorHandler) Store(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req domain.DoctorSaveRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	d, err := h.svc.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to create doctor")
		return
	}

	h.writer.Write(w, http.StatusCreated, &response.Response{
		Message: "doctor created",
		Data:    d,
	})
}

func (h *DoctorHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	var req domain.DoctorUpdateRequest
	if err := h.decoder.Decode(r, &req); err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	d, err := h.svc.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, h.writer, h.log, err, "failed to update doctor")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "doctor updated",
		Data:    d,
	})
}

func (h *DoctorHandler) Destroy(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeBadRequest(w, h.writer, err)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, h.writer, h.log, err, "failed to delete doctor")
		return
	}

	h.writer.Write(w, http.StatusOK, &response.Response{
		Message: "doctor deleted",
	})
}
