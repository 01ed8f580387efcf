package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/itemlab/itemlab/internal/db"
	"github.com/itemlab/itemlab/internal/repo"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// EventPublisher publishes item lifecycle events. A nil publisher disables
// eventing without changing handler behavior.
type EventPublisher interface {
	PublishItemEvent(ctx context.Context, eventType string, payload map[string]interface{}) error
	IsHealthy() bool
}

// Server hosts the demo parameter routes and the items resource
type Server struct {
	db     *db.DB
	items  *repo.ItemRepository
	events EventPublisher
	log    *zap.Logger
	mux    *http.ServeMux
}

// NewServer creates the HTTP API server and registers all routes
func NewServer(database *db.DB, items *repo.ItemRepository, events EventPublisher, log *zap.Logger) *Server {
	s := &Server{
		db:     database,
		items:  items,
		events: events,
		log:    log,
		mux:    http.NewServeMux(),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// General
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("POST /homepage", s.handleHomepage)

	// Parameter-passing demos
	s.mux.HandleFunc("GET /path-parameter-example/{name}/{age}", s.handlePathParams)
	s.mux.HandleFunc("GET /query-parameter-example", s.handleQueryParams)
	s.mux.HandleFunc("GET /body-parameter-example/item", s.handleBodyParam)
	s.mux.HandleFunc("GET /item/example-header", s.handleHeaderEcho)
	s.mux.HandleFunc("GET /items/example-cookie", s.handleCookieEcho)

	// Items resource
	s.mux.HandleFunc("POST /items", s.handleCreateItem)
	s.mux.HandleFunc("GET /items", s.handleListItems)
	s.mux.HandleFunc("GET /items/{id}", s.handleGetItem)
	s.mux.HandleFunc("PUT /items/{id}", s.handleUpdateItem)
	s.mux.HandleFunc("PATCH /items/{id}", s.handlePatchItem)
	s.mux.HandleFunc("DELETE /items/{id}", s.handleDeleteItem)

	// Operational
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.Handle("GET /metrics", promhttp.Handler())
}

// Handler returns the fully wrapped HTTP handler
func (s *Server) Handler() http.Handler {
	return s.withRequestID(s.withObservability(s.mux))
}

// publishEvent fires an item event asynchronously; a publish failure never
// fails the request that triggered it.
func (s *Server) publishEvent(eventType string, payload map[string]interface{}) {
	if s.events == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.events.PublishItemEvent(ctx, eventType, payload); err != nil {
			s.log.Error("Failed to publish item event",
				zap.String("event_type", eventType),
				zap.Error(err),
			)
		}
	}()
}

// handleHealthz reports service health; a degraded event publisher is logged
// but does not fail the check.
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		s.log.Error("Database health check failed", zap.Error(err))
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("unhealthy: database connection failed"))
		return
	}

	if s.events != nil && !s.events.IsHealthy() {
		s.log.Warn("Event publisher health check failed")
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("healthy"))
}
