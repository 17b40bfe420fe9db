package roi

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"invoicing-roi-api/internal/model"
)

func exampleInput() model.CalculationInput {
	return model.CalculationInput{
		MonthlyInvoices: 100,
		TimePerInvoice:  15,
		HourlyRate:      25,
		ErrorRate:       5,
		ErrorCost:       50,
		SolutionCost:    500,
	}
}

func TestCompute_Example(t *testing.T) {
	got := Compute(exampleInput())

	want := model.CalculationResult{
		CurrentAnnualCost: 10500,
		NewAnnualCost:     1500,
		AnnualSavings:     9000,
		ROI:               1700.0,
		PaybackMonths:     0.7,
	}
	if got != want {
		t.Fatalf("Compute() = %+v, want %+v", got, want)
	}
	if w := Undefined(got); len(w) != 0 {
		t.Errorf("expected no undefined metrics, got %+v", w)
	}
}

func TestMonthly_Example(t *testing.T) {
	m := Monthly(exampleInput())
	if math.Abs(m.Current-875) > 1e-9 {
		t.Errorf("current monthly cost = %v, want 875", m.Current)
	}
	if math.Abs(m.New-125) > 1e-9 {
		t.Errorf("new monthly cost = %v, want 125", m.New)
	}
}

func TestCompute_SavingsInvariant(t *testing.T) {
	inputs := []model.CalculationInput{
		exampleInput(),
		{MonthlyInvoices: 1, TimePerInvoice: 1, HourlyRate: 1, ErrorRate: 1, ErrorCost: 1, SolutionCost: 1},
		{MonthlyInvoices: 2500, TimePerInvoice: 7.5, HourlyRate: 41.3, ErrorRate: 2.2, ErrorCost: 18.75, SolutionCost: 12000},
		{MonthlyInvoices: 333, TimePerInvoice: 3.3, HourlyRate: 19.99, ErrorRate: 12.5, ErrorCost: 7.1, SolutionCost: 999.99},
		{MonthlyInvoices: 10, TimePerInvoice: 1, HourlyRate: 10, ErrorRate: 0, ErrorCost: 0, SolutionCost: 50000},
		{MonthlyInvoices: -50, TimePerInvoice: 20, HourlyRate: 30, ErrorRate: 3, ErrorCost: 40, SolutionCost: 800},
	}

	for _, in := range inputs {
		r := Compute(in)
		diff := float64(r.CurrentAnnualCost - r.NewAnnualCost - r.AnnualSavings)
		if math.Abs(diff) > 1 {
			t.Errorf("input %+v: savings %v differ from %v - %v by %v",
				in, r.AnnualSavings, r.CurrentAnnualCost, r.NewAnnualCost, diff)
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	in := model.CalculationInput{
		MonthlyInvoices: 417, TimePerInvoice: 11.2, HourlyRate: 33.4,
		ErrorRate: 4.4, ErrorCost: 61, SolutionCost: 7250,
	}

	first, err := json.Marshal(Compute(in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for i := 0; i < 10; i++ {
		next, err := json.Marshal(Compute(in))
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if string(next) != string(first) {
			t.Fatalf("run %d: %s != %s", i, next, first)
		}
	}
}

func TestCompute_ZeroSolutionCost(t *testing.T) {
	in := exampleInput()
	in.SolutionCost = 0

	r := Compute(in)

	if r.ROI.Defined() {
		t.Errorf("expected undefined ROI, got %v", r.ROI)
	}
	if !r.PaybackMonths.Defined() || r.PaybackMonths != 0 {
		t.Errorf("payback = %v, want 0", r.PaybackMonths)
	}

	warnings := Undefined(r)
	if len(warnings) != 1 || warnings[0].Field != "roi" || warnings[0].Code != model.WarningUndefined {
		t.Fatalf("unexpected warnings: %+v", warnings)
	}

	body, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(body), `"roi":null`) {
		t.Errorf("expected roi to serialize as null, got %s", body)
	}
}

func TestCompute_EqualMonthlyCosts(t *testing.T) {
	r := Compute(model.CalculationInput{})

	if r.PaybackMonths.Defined() {
		t.Errorf("expected undefined payback, got %v", r.PaybackMonths)
	}
	if r.ROI.Defined() {
		t.Errorf("expected undefined ROI, got %v", r.ROI)
	}
	if r.CurrentAnnualCost != 0 || r.NewAnnualCost != 0 || r.AnnualSavings != 0 {
		t.Errorf("expected zero costs, got %+v", r)
	}
	if got := len(Undefined(r)); got != 2 {
		t.Errorf("expected 2 warnings, got %d", got)
	}
}

func TestCompute_NegativeInputsDoNotPanic(t *testing.T) {
	in := model.CalculationInput{
		MonthlyInvoices: -10, TimePerInvoice: -5, HourlyRate: -20,
		ErrorRate: -1, ErrorCost: -3, SolutionCost: -100,
	}

	r := Compute(in)
	if _, err := json.Marshal(r); err != nil {
		t.Fatalf("result must always serialize: %v", err)
	}
}

func TestCompute_OverflowBecomesUndefined(t *testing.T) {
	in := exampleInput()
	in.MonthlyInvoices = math.MaxFloat64
	in.TimePerInvoice = math.MaxFloat64

	r := Compute(in)
	if r.CurrentAnnualCost.Defined() {
		t.Errorf("expected undefined current annual cost, got %v", r.CurrentAnnualCost)
	}
	if _, err := json.Marshal(r); err != nil {
		t.Fatalf("marshal: %v", err)
	}
}

func TestRounding_HalfUp(t *testing.T) {
	tests := []struct {
		in    float64
		whole model.Number
		tenth model.Number
	}{
		{2.5, 3, 2.5},
		{-2.5, -2, -2.5},
		{0.05, 0, 0.1},
		{1699.99999, 1700, 1700},
		{0.6666, 1, 0.7},
		{-0.66, -1, -0.7},
	}

	for _, tt := range tests {
		if got := roundWhole(tt.in); got != tt.whole {
			t.Errorf("roundWhole(%v) = %v, want %v", tt.in, got, tt.whole)
		}
		if got := roundTenth(tt.in); math.Abs(float64(got-tt.tenth)) > 1e-9 {
			t.Errorf("roundTenth(%v) = %v, want %v", tt.in, got, tt.tenth)
		}
	}
}
