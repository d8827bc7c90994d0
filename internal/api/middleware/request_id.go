package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-Id"

type contextKey int

const requestIDKey contextKey = iota

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// GetRequestID возвращает ID запроса из контекста
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

// RequestID берет X-Request-Id из запроса или генерирует новый
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// AccessLog пишет строку лога на каждый запрос
func AccessLog(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			requestID, _ := GetRequestID(r.Context())
			status := rec.Status()
			duration := time.Since(start).Milliseconds()

			switch {
			case status >= http.StatusInternalServerError:
				log.Error("%s %s - status=%d, bytes=%d, duration_ms=%d, request_id=%s",
					r.Method, r.URL.Path, status, rec.bytes, duration, requestID)
			case status >= http.StatusBadRequest:
				log.Warn("%s %s - status=%d, bytes=%d, duration_ms=%d, request_id=%s",
					r.Method, r.URL.Path, status, rec.bytes, duration, requestID)
			default:
				log.Info("%s %s - status=%d, bytes=%d, duration_ms=%d, request_id=%s",
					r.Method, r.URL.Path, status, rec.bytes, duration, requestID)
			}
		})
	}
}
