package handler

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// NewRouter mounts every handler under /api.
func NewRouter(
	calculations *CalculationHandler,
	health *HealthHandler,
	corsOrigin string,
	logger *logrus.Logger,
) *mux.Router {
	router := mux.NewRouter()
	// Unknown routes answer JSON like the rest of the API
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody("Route not found"))
	})

	// Recovery is outermost so it also covers the other middleware
	apiRouter := router.PathPrefix("/api").Subrouter()
	apiRouter.Use(RecoveryMiddleware(logger))
	apiRouter.Use(LoggingMiddleware(logger))
	apiRouter.Use(CORSMiddleware(corsOrigin))

	// Routes
	calculations.RegisterRoutes(apiRouter)
	health.RegisterRoutes(apiRouter)

	return router
}
