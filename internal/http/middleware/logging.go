package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labaid/labaid-api/internal/auth"
	"go.uber.org/zap"
)

type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	written     int64
	wroteHeader bool
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	n, err := rw.ResponseWriter.Write(b)
	rw.written += int64(n)
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer
func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

// Logging writes one line per request. It runs after RequestContext so the
// request id is available, and reads the user and lab set further down the chain.
func Logging(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrapResponseWriter(w)

			// Handlers further down replace the request; keep a pointer to
			// what they learn about the caller.
			trace := &requestTrace{}
			next.ServeHTTP(rw, r.WithContext(withRequestTrace(r.Context(), trace)))

			duration := time.Since(start)
			meta := auth.RequestMetaFromContext(r.Context())

			fields := []zap.Field{
				zap.String("request_id", meta.RequestID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", meta.IPAddress),
				zap.Int("status_code", rw.statusCode),
				zap.Int64("response_size", rw.written),
				zap.Duration("duration", duration),
			}
			if trace.user != nil {
				fields = append(fields,
					zap.String("user_id", trace.user.UserID.String()),
					zap.String("role", string(trace.user.Role)),
				)
			}
			if trace.labID != nil {
				fields = append(fields, zap.String("lab_id", trace.labID.String()))
			}

			msg := fmt.Sprintf("%s %-30s -> %3d (%s)",
				r.Method,
				r.URL.Path,
				rw.statusCode,
				duration.Truncate(time.Microsecond),
			)
			switch {
			case rw.statusCode >= 500:
				logger.Error(msg, fields...)
			default:
				logger.Info(msg, fields...)
			}
		})
	}
}
