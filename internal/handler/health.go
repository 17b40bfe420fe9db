package handler

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"invoicing-roi-api/internal/model"
)

// StatusReporter exposes the last known database state.
type StatusReporter interface {
	Status() model.DBStatus
	Health(now time.Time) model.HealthStatus
}

// HealthHandler serves the liveness and database status endpoints.
type HealthHandler struct {
	monitor StatusReporter   // Connection monitor
	logger  *logrus.Logger   // Logger
	now     func() time.Time // Clock for the response timestamp
}

// NewHealthHandler creates a HealthHandler
func NewHealthHandler(monitor StatusReporter, logger *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		monitor: monitor,
		logger:  logger,
		now:     time.Now,
	}
}

// RegisterRoutes registers the health routes
func (h *HealthHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet, http.MethodOptions)      // Server liveness
	router.HandleFunc("/db-status", h.DBStatus).Methods(http.MethodGet, http.MethodOptions) // Database connection details
}

// Health reports that the server is up. It answers 200 even when the
// database is down.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.monitor.Health(h.now()))
}

// DBStatus reports the last known database state and its location.
func (h *HealthHandler) DBStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.monitor.Status())
}
