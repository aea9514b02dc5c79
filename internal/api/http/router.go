package http

import (
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// APIPrefix is where the mobile client expects the routes. They are also
// served unprefixed.
const APIPrefix = "/api"

// Options configures the HTTP stack around the routes.
type Options struct {
	// CORSOrigins enables CORS for the listed origins (web builds).
	CORSOrigins []string
}

// RegisterRoutes mounts the API routes on router.
func RegisterRoutes(router *mux.Router, h *Handler) {
	router.HandleFunc("/organizations", h.Organizations).Methods(http.MethodGet)
	router.HandleFunc("/shifts", h.Shifts).Methods(http.MethodGet)
	router.HandleFunc("/users", h.User).Methods(http.MethodGet)
	router.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	router.HandleFunc("/notifications", h.Notifications).Methods(http.MethodGet)
	router.HandleFunc("/notifications/{id}/read", h.MarkNotificationRead).Methods(http.MethodPost)
	router.HandleFunc("/achievements", h.Achievements).Methods(http.MethodGet)
}

// NewRouter builds the complete HTTP handler: routes under / and /api,
// health and metrics endpoints, and the middleware chain.
func NewRouter(h *Handler, opts Options) http.Handler {
	router := mux.NewRouter()
	router.Use(requestIDMiddleware, loggingMiddleware, metricsMiddleware)

	router.HandleFunc("/healthz", h.Health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	RegisterRoutes(router.PathPrefix(APIPrefix).Subrouter(), h)
	RegisterRoutes(router, h)

	var handler http.Handler = router
	handler = handlers.CompressHandler(handler)
	if len(opts.CORSOrigins) > 0 {
		handler = handlers.CORS(
			handlers.AllowedOrigins(opts.CORSOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
			handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
			handlers.ExposedHeaders([]string{requestIDHeader}),
		)(handler)
	}
	return handlers.RecoveryHandler(
		handlers.RecoveryLogger(recoveryLogger{}),
		handlers.PrintRecoveryStack(false),
	)(handler)
}

// NewServer returns an http.Server for handler with conservative timeouts.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}
}
