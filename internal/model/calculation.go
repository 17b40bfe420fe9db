package model

import (
	"time"

	"github.com/google/uuid"
)

// CalculationInput holds the operational parameters entered by the user.
type CalculationInput struct {
	MonthlyInvoices float64 `json:"monthlyInvoices" db:"monthly_invoices"`
	TimePerInvoice  float64 `json:"timePerInvoice" db:"time_per_invoice"` // minutes
	HourlyRate      float64 `json:"hourlyRate" db:"hourly_rate"`
	ErrorRate       float64 `json:"errorRate" db:"error_rate"` // percent, 0-100 expected
	ErrorCost       float64 `json:"errorCost" db:"error_cost"` // per error
	SolutionCost    float64 `json:"solutionCost" db:"solution_cost"`
}

// CalculationResult is derived from CalculationInput and never edited on its own.
type CalculationResult struct {
	CurrentAnnualCost Number `json:"currentAnnualCost" db:"current_annual_cost"`
	NewAnnualCost     Number `json:"newAnnualCost" db:"new_annual_cost"`
	AnnualSavings     Number `json:"annualSavings" db:"annual_savings"`
	ROI               Number `json:"roi" db:"roi"`                      // percent
	PaybackMonths     Number `json:"paybackMonths" db:"payback_months"` // months
}

// CalculationRecord is a stored calculation. Records are immutable.
type CalculationRecord struct {
	ID uuid.UUID `json:"_id" db:"id"`
	CalculationInput
	Results   CalculationResult `json:"results"`
	CreatedAt time.Time         `json:"createdAt" db:"created_at"`
}

// Warning describes a metric that could not be computed.
type Warning struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

const WarningUndefined = "UNDEFINED"

// CalculationOutcome is what the service returns for a successful calculation.
type CalculationOutcome struct {
	Record    *CalculationRecord
	Scenarios []ScenarioProjection
	Warnings  []Warning
}

// CalculateResponse is the body of POST /api/calculate-roi.
type CalculateResponse struct {
	Success   bool                 `json:"success"`
	Results   CalculationResult    `json:"results"`
	ID        uuid.UUID            `json:"id"`
	Scenarios []ScenarioProjection `json:"scenarios"`
	Warnings  []Warning            `json:"warnings,omitempty"`
}

// CalculationReport bundles a stored calculation with everything derived from it.
type CalculationReport struct {
	Calculation *CalculationRecord   `json:"calculation"`
	Scenarios   []ScenarioProjection `json:"scenarios"`
	Charts      Charts               `json:"charts"`
	Summary     string               `json:"summary,omitempty"`
}
