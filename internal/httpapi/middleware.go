package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/itemlab/itemlab/internal/metrics"
	"go.uber.org/zap"
)

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestID attaches a request ID to every request, honoring an
// incoming X-Request-Id so callers can correlate across services.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set("X-Request-Id", requestID)
		next.ServeHTTP(w, r)
	})
}

// withObservability logs every request and records Prometheus metrics
func (s *Server) withObservability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		// r.Pattern is populated by the mux once routing happens; unmatched
		// requests fall back to the raw path.
		pattern := r.Pattern
		if pattern == "" {
			pattern = r.URL.Path
		}

		duration := time.Since(start)
		metrics.RequestsTotal.WithLabelValues(r.Method, pattern, strconv.Itoa(rec.status)).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, pattern).Observe(duration.Seconds())

		if rec.status >= http.StatusInternalServerError {
			s.log.Error("Request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.String("request_id", w.Header().Get("X-Request-Id")),
				zap.Duration("duration", duration),
			)
		} else {
			s.log.Info("Request completed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status),
				zap.String("request_id", w.Header().Get("X-Request-Id")),
				zap.Duration("duration", duration),
			)
		}
	})
}
