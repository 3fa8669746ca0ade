package http

import (
	"errors"
	"net/http"

	"caredesk/internal/adapters/http/response"
	"caredesk/internal/domain"
	"caredesk/internal/logger"
)

// writeError maps a service error onto a status and a stable code. Anything
// unrecognised is logged and reported as a bare 500.
func writeError(w http.ResponseWriter, writer response.ResponseWriter, log logger.Logger, err error, fallback string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writer.WriteValidationError(w, verr.Fields)
		return
	}

	var (
		status int
		code   string
	)

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		status, code = http.StatusUnauthorized, response.CodeInvalidCredentials
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = http.StatusUnauthorized, response.CodeUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status, code = http.StatusForbidden, response.CodeForbidden
	case errors.Is(err, domain.ErrNotFound):
		status, code = http.StatusNotFound, response.CodeNotFound
	case errors.Is(err, domain.ErrDuplicateAssignment):
		status, code = http.StatusConflict, response.CodeDuplicateAssignment
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code = http.StatusConflict, response.CodeEmailExists
	default:
		log.Error("http: request failed", "error", err)
		writer.Write(w, http.StatusInternalServerError, &response.Response{
			Message: fallback,
			Code:    response.CodeInternal,
		})
		return
	}

	writer.Write(w, status, &response.Response{
		Message: err.Error(),
		Code:    code,
	})
}

func writeBadRequest(w http.ResponseWriter, writer response.ResponseWriter, err error) {
	writer.Write(w, http.StatusBadRequest, &response.Response{
		Message: err.Error(),
		Code:    response.CodeBadRequest,
	})
}
