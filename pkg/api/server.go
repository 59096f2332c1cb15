// Package api pkg/api/server.go serves the hubview REST API and the
// client event stream.
package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/hubview/hubview/pkg/bus"
	"github.com/hubview/hubview/pkg/db"
	"github.com/hubview/hubview/pkg/hub"
	httpx "github.com/hubview/hubview/pkg/http"
	"github.com/hubview/hubview/pkg/models"
	"github.com/hubview/hubview/pkg/registry"
	"github.com/hubview/hubview/pkg/views"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusFunc reports the hub's current connectivity.
type StatusFunc func(ctx context.Context) *models.HubStatus

// APIServer exposes the registry, view engine, sample store, hub
// configuration, and the event stream over HTTP.
type APIServer struct {
	registry *registry.Service
	views    *views.Service
	db       db.Service
	handle   *hub.Handle
	bus      *bus.Bus
	status   StatusFunc
	router   *mux.Router
	upgrader websocket.Upgrader
}

// NewAPIServer wires the API routes.
func NewAPIServer(
	reg *registry.Service,
	viewSvc *views.Service,
	database db.Service,
	handle *hub.Handle,
	eventBus *bus.Bus,
	status StatusFunc,
	auth httpx.Authorizer,
) *APIServer {
	s := &APIServer{
		registry: reg,
		views:    viewSvc,
		db:       database,
		handle:   handle,
		bus:      eventBus,
		status:   status,
		router:   mux.NewRouter(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
	s.setupRoutes(auth)

	return s
}

func (s *APIServer) setupRoutes(auth httpx.Authorizer) {
	s.router.Use(httpx.CommonMiddleware)

	// Metrics stay outside the auth gate so scrapers don't need the
	// API token.
	s.router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(httpx.AuthMiddleware(auth))

	api.HandleFunc("/status", s.getStatus).Methods("GET")

	api.HandleFunc("/entities", s.getEntities).Methods("GET")
	api.HandleFunc("/entities/tracked", s.getTrackedEntities).Methods("GET")
	api.HandleFunc("/entities/tracked/{id}", s.getTrackedEntity).Methods("GET")
	api.HandleFunc("/entities/tracked/{id}", s.trackEntity).Methods("POST")
	api.HandleFunc("/entities/tracked/{id}", s.untrackEntity).Methods("DELETE")
	api.HandleFunc("/entities/tracked/{id}/fields", s.setField).Methods("POST")
	api.HandleFunc("/entities/tracked/{id}/fields/{field}/logging", s.startLogging).Methods("POST")
	api.HandleFunc("/entities/tracked/{id}/fields/{field}/logging", s.stopLogging).Methods("DELETE")

	api.HandleFunc("/views", s.getViews).Methods("GET")
	api.HandleFunc("/views", s.createView).Methods("POST")
	api.HandleFunc("/views/{id}/data", s.getViewData).Methods("GET")

	api.HandleFunc("/samples", s.appendSample).Methods("POST")

	api.HandleFunc("/config/hub", s.getHubConfig).Methods("GET")
	api.HandleFunc("/config/hub", s.putHubConfig).Methods("PUT")
	api.HandleFunc("/config/hub", s.deleteHubConfig).Methods("DELETE")

	api.HandleFunc("/events", s.streamEvents).Methods("GET")
}

// Router returns the configured handler, mostly for tests.
func (s *APIServer) Router() http.Handler {
	return s.router
}

// Start serves the API on addr.
func (s *APIServer) Start(addr string) error {
	return http.ListenAndServe(addr, s.router)
}

func (s *APIServer) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.status(r.Context()))
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// apiError is the wire shape of request-path failures: a stable code
// plus a human message.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(apiError{Code: code, Message: message}); err != nil {
		log.Printf("Error encoding error response: %v", err)
	}
}
