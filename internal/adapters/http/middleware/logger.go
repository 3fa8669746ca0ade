package middleware

import (
	"context"
	"net/http"
	"time"

	"caredesk/internal/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// requestMeta is filled in by inner middleware so the access log can report
// who made the request.
type requestMeta struct {
	userID int64
}

type requestMetaKey struct{}

func setUserID(ctx context.Context, userID int64) {
	if meta, ok := ctx.Value(requestMetaKey{}).(*requestMeta); ok {
		meta.userID = userID
	}
}

func Logger(log logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			meta := &requestMeta{}
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			ctx := context.WithValue(r.Context(), requestMetaKey{}, meta)
			next.ServeHTTP(rec, r.WithContext(ctx))

			kv := []any{
				"request_id", GetRequestID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", rec.status,
				"latency", time.Since(start),
			}
			if meta.userID != 0 {
				kv = append(kv, "user_id", meta.userID)
			}

			switch {
			case rec.status >= http.StatusInternalServerError:
				log.Error("http: request", kv...)
			case rec.status >= http.StatusBadRequest:
				log.Warn("http: request", kv...)
			default:
				log.Info("http: request", kv...)
			}
		})
	}
}
