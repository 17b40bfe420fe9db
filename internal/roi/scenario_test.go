package roi

import (
	"math"
	"strings"
	"testing"

	"invoicing-roi-api/internal/model"
)

func TestProject_IdentityMultiplier(t *testing.T) {
	base := Compute(exampleInput())

	if got := Project(base, 1.0); got != base {
		t.Fatalf("Project(base, 1.0) = %+v, want %+v", got, base)
	}
}

func TestProject_DefaultScenarios(t *testing.T) {
	base := Compute(exampleInput())
	projections := ProjectAll(base, DefaultScenarios())

	if len(projections) != 3 {
		t.Fatalf("expected 3 projections, got %d", len(projections))
	}

	want := map[string]model.CalculationResult{
		"Conservative": {CurrentAnnualCost: 7350, NewAnnualCost: 1050, AnnualSavings: 6300, ROI: 1190, PaybackMonths: 1},
		"Realistic":    base,
		"Optimistic":   {CurrentAnnualCost: 13650, NewAnnualCost: 1950, AnnualSavings: 11700, ROI: 2210, PaybackMonths: 0.5},
	}
	for _, p := range projections {
		if got := p.Results; got != want[p.Name] {
			t.Errorf("%s: got %+v, want %+v", p.Name, got, want[p.Name])
		}
	}
	if projections[0].Name != "Conservative" || projections[2].Name != "Optimistic" {
		t.Errorf("projections out of configured order: %+v", projections)
	}
}

func TestProject_PaybackScalesInversely(t *testing.T) {
	base := Compute(model.CalculationInput{
		MonthlyInvoices: 40, TimePerInvoice: 10, HourlyRate: 30,
		ErrorRate: 2, ErrorCost: 25, SolutionCost: 600,
	})
	if !base.PaybackMonths.Defined() {
		t.Fatal("expected defined payback for base")
	}

	for _, m := range []float64{0.5, 0.7, 1.3, 2} {
		got := float64(Project(base, m).PaybackMonths)
		want := float64(base.PaybackMonths) / m
		if math.Abs(got-want) > 0.05+1e-9 {
			t.Errorf("multiplier %v: payback = %v, want ≈ %v", m, got, want)
		}
	}
}

func TestProject_UndefinedStaysUndefined(t *testing.T) {
	in := exampleInput()
	in.SolutionCost = 0
	base := Compute(in)

	got := Project(base, 1.3)
	if got.ROI.Defined() {
		t.Errorf("expected undefined ROI, got %v", got.ROI)
	}
}

func TestValidateScenarios(t *testing.T) {
	tests := []struct {
		name      string
		scenarios []model.Scenario
		wantErr   string
	}{
		{"defaults", DefaultScenarios(), ""},
		{"empty", nil, "at least one scenario"},
		{"blank name", []model.Scenario{{Name: " ", Multiplier: 1}}, "name is empty"},
		{"duplicate", []model.Scenario{{Name: "Base", Multiplier: 1}, {Name: "base", Multiplier: 2}}, "duplicate"},
		{"zero multiplier", []model.Scenario{{Name: "Flat", Multiplier: 0}}, "multiplier"},
		{"negative multiplier", []model.Scenario{{Name: "Down", Multiplier: -1}}, "multiplier"},
		{"nan multiplier", []model.Scenario{{Name: "Odd", Multiplier: math.NaN()}}, "multiplier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateScenarios(tt.scenarios)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestSummary(t *testing.T) {
	base := Compute(exampleInput())
	got := Summary(ProjectAll(base, DefaultScenarios()))

	want := "Even in the conservative scenario, you achieve 1190% ROI with payback in 1 months."
	if got != want {
		t.Errorf("Summary() = %q, want %q", got, want)
	}

	if Summary(nil) != "" {
		t.Error("expected empty summary for no projections")
	}

	in := exampleInput()
	in.SolutionCost = 0
	undefined := Summary(ProjectAll(Compute(in), DefaultScenarios()))
	if !strings.Contains(undefined, "no defined ROI") {
		t.Errorf("unexpected summary for undefined ROI: %q", undefined)
	}
}
