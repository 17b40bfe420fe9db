package roi

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"invoicing-roi-api/internal/model"
)

// DefaultScenarios is used when no scenario file is configured.
func DefaultScenarios() []model.Scenario {
	return []model.Scenario{
		{Name: "Conservative", Multiplier: 0.7},
		{Name: "Realistic", Multiplier: 1.0},
		{Name: "Optimistic", Multiplier: 1.3},
	}
}

// ValidateScenarios checks that names are unique and multipliers positive.
func ValidateScenarios(scenarios []model.Scenario) error {
	if len(scenarios) == 0 {
		return errors.New("at least one scenario is required")
	}
	seen := make(map[string]bool, len(scenarios))
	for i, s := range scenarios {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			return fmt.Errorf("scenario %d: name is empty", i)
		}
		key := strings.ToLower(name)
		if seen[key] {
			return fmt.Errorf("scenario %q: duplicate name", name)
		}
		seen[key] = true
		if math.IsNaN(s.Multiplier) || math.IsInf(s.Multiplier, 0) || s.Multiplier <= 0 {
			return fmt.Errorf("scenario %q: multiplier must be a positive number, got %v", name, s.Multiplier)
		}
	}
	return nil
}

// Project scales a base result. Costs, savings and ROI grow with the
// multiplier while the payback period shrinks by it.
func Project(base model.CalculationResult, multiplier float64) model.CalculationResult {
	return model.CalculationResult{
		CurrentAnnualCost: roundWhole(float64(base.CurrentAnnualCost) * multiplier),
		NewAnnualCost:     roundWhole(float64(base.NewAnnualCost) * multiplier),
		AnnualSavings:     roundWhole(float64(base.AnnualSavings) * multiplier),
		ROI:               roundTenth(float64(base.ROI) * multiplier),
		PaybackMonths:     roundTenth(float64(base.PaybackMonths) / multiplier),
	}
}

// ProjectAll applies every scenario to base, keeping the configured order.
func ProjectAll(base model.CalculationResult, scenarios []model.Scenario) []model.ScenarioProjection {
	projections := make([]model.ScenarioProjection, 0, len(scenarios))
	for _, s := range scenarios {
		projections = append(projections, model.ScenarioProjection{
			Scenario: s,
			Results:  Project(base, s.Multiplier),
		})
	}
	return projections
}

// Summary describes the least favourable projection in one sentence.
func Summary(projections []model.ScenarioProjection) string {
	if len(projections) == 0 {
		return ""
	}

	sorted := make([]model.ScenarioProjection, len(projections))
	copy(sorted, projections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Multiplier < sorted[j].Multiplier
	})
	worst := sorted[0]
	name := strings.ToLower(worst.Name)

	if !worst.Results.ROI.Defined() || !worst.Results.PaybackMonths.Defined() {
		return fmt.Sprintf("The %s scenario has no defined ROI or payback period for these inputs.", name)
	}
	return fmt.Sprintf("Even in the %s scenario, you achieve %s%% ROI with payback in %s months.",
		name,
		strconv.FormatFloat(float64(worst.Results.ROI), 'f', -1, 64),
		strconv.FormatFloat(float64(worst.Results.PaybackMonths), 'f', -1, 64),
	)
}
