// Package response writes the JSON envelope shared by every endpoint.
package response

import (
	"encoding/json"
	"net/http"

	"caredesk/internal/logger"
)

const (
	CodeBadRequest          = "bad_request"
	CodeValidation          = "validation_error"
	CodeUnauthorized        = "unauthorized"
	CodeInvalidToken        = "invalid_token"
	CodeTokenExpired        = "token_expired"
	CodeTokenRevoked        = "token_revoked"
	CodeInvalidCredentials  = "invalid_credentials"
	CodeForbidden           = "forbidden"
	CodeNotFound            = "not_found"
	CodeDuplicateAssignment = "duplicate_assignment"
	CodeEmailExists         = "email_exists"
	CodeInternal            = "internal_error"
)

type Response struct {
	Message string            `json:"message,omitempty"`
	Data    any               `json:"data,omitempty"`
	Meta    any               `json:"meta,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
	Code    string            `json:"code,omitempty"`
}

type ResponseWriter interface {
	Write(w http.ResponseWriter, status int, res *Response)
	WriteValidationError(w http.ResponseWriter, errs map[string]string)
}

type jsonWriter struct {
	log logger.Logger
}

func NewJSONWriter(log logger.Logger) ResponseWriter {
	return &jsonWriter{log: log}
}

func (j *jsonWriter) Write(w http.ResponseWriter, status int, res *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if res == nil {
		res = &Response{}
	}

	if err := json.NewEncoder(w).Encode(res); err != nil {
		j.log.Error("http: failed to encode response", "error", err)
	}
}

func (j *jsonWriter) WriteValidationError(w http.ResponseWriter, errs map[string]string) {
	j.Write(w, http.StatusBadRequest, &Response{
		Message: "the given data was invalid",
		Errors:  errs,
		Code:    CodeValidation,
	})
}
