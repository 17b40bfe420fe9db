package roi

import (
	"fmt"

	"invoicing-roi-api/internal/model"
)

// TimelineYears is the length of the savings timeline.
const TimelineYears = 5

// BuildCharts derives the chart series shown next to a result.
func BuildCharts(in model.CalculationInput, r model.CalculationResult) model.Charts {
	return model.Charts{
		CostComparison: []model.ChartPoint{
			{Name: "Current", Value: r.CurrentAnnualCost},
			{Name: "With Solution", Value: r.NewAnnualCost},
		},
		Breakdown: costBreakdown(in),
		Timeline:  savingsTimeline(in, r),
	}
}

func costBreakdown(in model.CalculationInput) []model.BreakdownSlice {
	labor := in.MonthlyInvoices * in.TimePerInvoice / minutesPerHour * in.HourlyRate * monthsPerYear
	errs := in.MonthlyInvoices * in.ErrorRate / 100 * in.ErrorCost * monthsPerYear

	slices := []model.BreakdownSlice{
		{Name: "Labor Cost", Value: model.Number(labor)},
		{Name: "Error Cost", Value: model.Number(errs)},
		{Name: "Solution Cost", Value: model.Number(in.SolutionCost)},
	}

	total := labor + errs + in.SolutionCost
	for i := range slices {
		if total == 0 {
			slices[i].Share = model.Undefined()
			continue
		}
		slices[i].Share = model.Number(float64(slices[i].Value) / total)
	}
	return slices
}

func savingsTimeline(in model.CalculationInput, r model.CalculationResult) []model.TimelinePoint {
	points := make([]model.TimelinePoint, 0, TimelineYears)
	for year := 1; year <= TimelineYears; year++ {
		points = append(points, model.TimelinePoint{
			Year:       fmt.Sprintf("Year %d", year),
			Savings:    r.AnnualSavings * model.Number(year),
			Investment: model.Number(in.SolutionCost),
		})
	}
	return points
}
