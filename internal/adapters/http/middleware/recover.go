package middleware

import (
	"net/http"
	"runtime/debug"

	"caredesk/internal/adapters/http/response"
	"caredesk/internal/logger"
)

func Recover(log logger.Logger, writer response.ResponseWriter) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("http: panic recovered",
					"request_id", GetRequestID(r.Context()),
					"panic", rec,
					"stack", string(debug.Stack()),
				)

				writer.Write(w, http.StatusInternalServerError, &response.Response{
					Message: "internal server error",
					Code:    response.CodeInternal,
				})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
