package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"invoicing-roi-api/internal/model"
	"invoicing-roi-api/internal/repository"
)

// writeJSON sends v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code. Validation problems and missing
// records are reported to the caller as is; anything else is logged and
// answered with message so that driver details never reach the client.
func writeError(w http.ResponseWriter, logger *logrus.Logger, err error, message string) {
	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: verr.Reason, Fields: verr.Fields})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, model.ErrorResponse{Error: "Calculation not found"})
	default:
		logger.WithError(err).Error(message)
		writeJSON(w, http.StatusInternalServerError, model.ErrorResponse{Error: message})
	}
}

func errorBody(message string) model.ErrorResponse {
	return model.ErrorResponse{Error: message}
}

func badRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorBody(message))
}
