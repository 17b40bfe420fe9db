package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// CalculateRequest is the raw body of POST /api/calculate-roi. Fields are kept
// undecoded so that missing and non-numeric values can be reported per field.
type CalculateRequest struct {
	MonthlyInvoices json.RawMessage `json:"monthlyInvoices"`
	TimePerInvoice  json.RawMessage `json:"timePerInvoice"`
	HourlyRate      json.RawMessage `json:"hourlyRate"`
	ErrorRate       json.RawMessage `json:"errorRate"`
	ErrorCost       json.RawMessage `json:"errorCost"`
	SolutionCost    json.RawMessage `json:"solutionCost"`
}

// FieldError points at a single invalid input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is returned when a request cannot be turned into a CalculationInput.
type ValidationError struct {
	Reason string
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return fmt.Sprintf("%s: %s", e.Reason, strings.Join(parts, "; "))
}

// Validate checks that every field is present and is a JSON number, and
// returns the parsed input. Strings are not coerced. Negative values are allowed.
func (r *CalculateRequest) Validate() (CalculationInput, error) {
	var input CalculationInput
	verr := &ValidationError{Reason: "invalid calculation input"}

	fields := []struct {
		name string
		raw  json.RawMessage
		dst  *float64
	}{
		{"monthlyInvoices", r.MonthlyInvoices, &input.MonthlyInvoices},
		{"timePerInvoice", r.TimePerInvoice, &input.TimePerInvoice},
		{"hourlyRate", r.HourlyRate, &input.HourlyRate},
		{"errorRate", r.ErrorRate, &input.ErrorRate},
		{"errorCost", r.ErrorCost, &input.ErrorCost},
		{"solutionCost", r.SolutionCost, &input.SolutionCost},
	}

	for _, f := range fields {
		if msg := parseNumber(f.raw, f.dst); msg != "" {
			verr.Fields = append(verr.Fields, FieldError{Field: f.name, Message: msg})
		}
	}

	if len(verr.Fields) > 0 {
		return CalculationInput{}, verr
	}
	return input, nil
}

func parseNumber(raw json.RawMessage, dst *float64) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return "is required"
	}
	// Only bare JSON numbers are accepted; quoted numbers are rejected.
	if c := raw[0]; c != '-' && (c < '0' || c > '9') {
		return "must be a number"
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return "must be a number"
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "must be a finite number"
	}
	*dst = f
	return ""
}

// DecodeCalculateRequest parses a request body into a validated CalculationInput.
func DecodeCalculateRequest(body []byte) (CalculationInput, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return CalculationInput{}, &ValidationError{Reason: "request body must be a JSON object"}
	}

	var req CalculateRequest
	if err := json.Unmarshal(trimmed, &req); err != nil {
		return CalculationInput{}, &ValidationError{Reason: "invalid JSON: " + err.Error()}
	}
	return req.Validate()
}

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error  string       `json:"error"`
	Fields []FieldError `json:"fields,omitempty"`
}
