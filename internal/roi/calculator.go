// Package roi holds the ROI formulas shared by every request path:
// the calculator, scenario projections and chart series.
package roi

import (
	"math"

	"invoicing-roi-api/internal/model"
)

const (
	// ResidualMinutesPerInvoice is the manual effort left per invoice once
	// the process is automated.
	ResidualMinutesPerInvoice = 2.0

	monthsPerYear  = 12.0
	minutesPerHour = 60.0
)

// MonthlyCosts are the unrounded monthly figures behind a result.
type MonthlyCosts struct {
	Current float64
	New     float64
}

// Monthly returns the current and projected monthly cost of processing invoices.
func Monthly(in model.CalculationInput) MonthlyCosts {
	current := in.MonthlyInvoices*in.TimePerInvoice/minutesPerHour*in.HourlyRate +
		in.MonthlyInvoices*in.ErrorRate/100*in.ErrorCost
	projected := in.SolutionCost/monthsPerYear +
		in.MonthlyInvoices*ResidualMinutesPerInvoice/minutesPerHour*in.HourlyRate
	return MonthlyCosts{Current: current, New: projected}
}

// Compute derives the annual figures, ROI and payback period for an input.
// Division by zero is not an error: the affected metric comes back undefined.
func Compute(in model.CalculationInput) model.CalculationResult {
	m := Monthly(in)

	currentAnnual := m.Current * monthsPerYear
	newAnnual := m.New * monthsPerYear
	savings := currentAnnual - newAnnual

	roi := (savings - in.SolutionCost) / in.SolutionCost * 100
	payback := in.SolutionCost / (m.Current - m.New)

	return model.CalculationResult{
		CurrentAnnualCost: roundWhole(currentAnnual),
		NewAnnualCost:     roundWhole(newAnnual),
		AnnualSavings:     roundWhole(savings),
		ROI:               roundTenth(roi),
		PaybackMonths:     roundTenth(payback),
	}
}

// Undefined lists the metrics of r that hold no finite value.
func Undefined(r model.CalculationResult) []model.Warning {
	metrics := []struct {
		field string
		value model.Number
		msg   string
	}{
		{"currentAnnualCost", r.CurrentAnnualCost, "current annual cost is not a finite number"},
		{"newAnnualCost", r.NewAnnualCost, "new annual cost is not a finite number"},
		{"annualSavings", r.AnnualSavings, "annual savings are not a finite number"},
		{"roi", r.ROI, "ROI is undefined when the solution cost is zero"},
		{"paybackMonths", r.PaybackMonths, "payback period is undefined when the automated process costs as much as the current one"},
	}

	var warnings []model.Warning
	for _, m := range metrics {
		if !m.value.Defined() {
			warnings = append(warnings, model.Warning{
				Field:   m.field,
				Code:    model.WarningUndefined,
				Message: m.msg,
			})
		}
	}
	return warnings
}

// roundWhole rounds half up, the way the web client always displayed costs.
func roundWhole(v float64) model.Number {
	if !finite(v) {
		return model.Undefined()
	}
	return model.Number(math.Floor(v + 0.5))
}

func roundTenth(v float64) model.Number {
	if !finite(v) {
		return model.Undefined()
	}
	return model.Number(math.Floor(v*10+0.5) / 10)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
