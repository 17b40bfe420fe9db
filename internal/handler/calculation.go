package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"invoicing-roi-api/internal/model"
)

// maxBodyBytes bounds the calculate request body.
const maxBodyBytes = 1 << 20

// CalculationService is the part of service.CalculationService the handlers use.
type CalculationService interface {
	Calculate(ctx context.Context, input model.CalculationInput) (*model.CalculationOutcome, error)
	ListRecent(ctx context.Context, limit int) ([]model.CalculationRecord, error)
	GetCalculation(ctx context.Context, id uuid.UUID) (*model.CalculationRecord, error)
	GetReport(ctx context.Context, id uuid.UUID) (*model.CalculationReport, error)
	Scenarios() []model.Scenario
}

// CalculationHandler serves ROI calculations and their history.
type CalculationHandler struct {
	service CalculationService // Calculation and history service
	logger  *logrus.Logger     // Logger
}

// NewCalculationHandler creates a CalculationHandler
func NewCalculationHandler(service CalculationService, logger *logrus.Logger) *CalculationHandler {
	return &CalculationHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the calculation routes. OPTIONS is accepted on
// every route so that preflight requests reach the CORS middleware.
func (h *CalculationHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/calculate-roi", h.Calculate).Methods(http.MethodPost, http.MethodOptions)           // Compute and save a calculation
	router.HandleFunc("/calculations", h.ListCalculations).Methods(http.MethodGet, http.MethodOptions)      // Recent calculations
	router.HandleFunc("/calculations/{id}", h.GetCalculation).Methods(http.MethodGet, http.MethodOptions)   // One calculation
	router.HandleFunc("/calculations/{id}/report", h.GetReport).Methods(http.MethodGet, http.MethodOptions) // Report with scenarios and charts
	router.HandleFunc("/scenarios", h.ListScenarios).Methods(http.MethodGet, http.MethodOptions)            // Configured scenario set
}

// Calculate validates the input, computes and stores the ROI and returns it
// with the scenario projections.
func (h *CalculationHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	// Read the body, bounded by maxBodyBytes
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody("Request body is too large"))
			return
		}
		h.logger.WithError(err).Warn("Failed to read calculate request body")
		badRequest(w, "Failed to read request body")
		return
	}

	// Validate the input
	input, err := model.DecodeCalculateRequest(body)
	if err != nil {
		h.logger.WithError(err).Debug("Rejected calculate request")
		writeError(w, h.logger, err, "Invalid request")
		return
	}

	// Compute and store
	outcome, err := h.service.Calculate(r.Context(), input)
	if err != nil {
		writeError(w, h.logger, err, "Failed to save calculation")
		return
	}

	// Build the response
	writeJSON(w, http.StatusOK, model.CalculateResponse{
		Success:   true,
		Results:   outcome.Record.Results,
		ID:        outcome.Record.ID,
		Scenarios: outcome.Scenarios,
		Warnings:  outcome.Warnings,
	})
}

// ListCalculations returns the most recent calculations, newest first.
func (h *CalculationHandler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	// Parse the optional limit, the service applies the default and the cap
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			badRequest(w, "limit must be an integer")
			return
		}
		limit = n
	}

	records, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load calculations")
		return
	}
	// An empty history is an empty array, not null
	if records == nil {
		records = []model.CalculationRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// GetCalculation returns a single stored calculation.
func (h *CalculationHandler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id, ok := calculationID(w, r)
	if !ok {
		return
	}

	record, err := h.service.GetCalculation(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "Failed to load calculation")
		return
	}
	writeJSON(w, http.StatusOK, record)
}

// GetReport returns a calculation with scenarios, chart series and a summary.
func (h *CalculationHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := calculationID(w, r)
	if !ok {
		return
	}

	report, err := h.service.GetReport(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err, "Failed to build report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ListScenarios returns the configured scenario set.
func (h *CalculationHandler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Scenarios())
}

// calculationID parses the {id} route variable and answers 400 when it is
// not a UUID.
func calculationID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		badRequest(w, "Invalid calculation id")
		return uuid.Nil, false
	}
	return id, true
}
