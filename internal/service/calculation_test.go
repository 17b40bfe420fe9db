package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"invoicing-roi-api/internal/model"
	"invoicing-roi-api/internal/repository"
	"invoicing-roi-api/internal/roi"
)

var exampleInput = model.CalculationInput{
	MonthlyInvoices: 100,
	TimePerInvoice:  15,
	HourlyRate:      25,
	ErrorRate:       5,
	ErrorCost:       50,
	SolutionCost:    500,
}

func newTestService(store *fakeStore, cache repository.CacheRepository) *CalculationService {
	return NewCalculationService(store, cache, time.Minute, nil, quietLogger())
}

func TestCalculate_SavesAndProjects(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, repository.NewMemoryCache())

	outcome, err := svc.Calculate(context.Background(), exampleInput)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.records) != 1 {
		t.Fatalf("expected 1 stored record, got %d", len(store.records))
	}
	if outcome.Record.ID != store.records[0].ID {
		t.Errorf("outcome id %s does not match stored id %s", outcome.Record.ID, store.records[0].ID)
	}
	if outcome.Record.Results != roi.Compute(exampleInput) {
		t.Errorf("unexpected results: %+v", outcome.Record.Results)
	}
	if len(outcome.Scenarios) != 3 || outcome.Scenarios[1].Results != outcome.Record.Results {
		t.Errorf("unexpected scenarios: %+v", outcome.Scenarios)
	}
	if len(outcome.Warnings) != 0 {
		t.Errorf("expected no warnings, got %+v", outcome.Warnings)
	}
}

func TestCalculate_ZeroSolutionCostIsStoredWithWarning(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil)

	in := exampleInput
	in.SolutionCost = 0
	outcome, err := svc.Calculate(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(store.records) != 1 {
		t.Fatalf("expected the record to be stored, got %d records", len(store.records))
	}
	if len(outcome.Warnings) != 1 || outcome.Warnings[0].Field != "roi" {
		t.Errorf("unexpected warnings: %+v", outcome.Warnings)
	}
}

func TestCalculate_StorageFailure(t *testing.T) {
	store := &fakeStore{saveErr: &repository.StorageError{Op: "save calculation", Err: repository.ErrUnavailable}}
	svc := newTestService(store, nil)

	_, err := svc.Calculate(context.Background(), exampleInput)
	if err == nil {
		t.Fatal("expected error")
	}
	var serr *repository.StorageError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *repository.StorageError in chain, got %v", err)
	}
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Errorf("expected ErrUnavailable in chain, got %v", err)
	}
}

func TestListRecent_CachesAndInvalidates(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, repository.NewMemoryCache())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.Calculate(ctx, exampleInput); err != nil {
			t.Fatalf("Calculate: %v", err)
		}
	}

	first, err := svc.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(first) != 2 {
		t.Fatalf("expected 2 records, got %d", len(first))
	}
	if store.lastLimit != MaxListLimit {
		t.Errorf("store queried with limit %d, want %d", store.lastLimit, MaxListLimit)
	}

	second, err := svc.ListRecent(ctx, 3)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if store.listCalls != 1 {
		t.Errorf("expected the second listing to come from cache, store called %d times", store.listCalls)
	}
	if len(second) != 3 || second[0].ID != first[0].ID {
		t.Errorf("unexpected cached listing: %+v", second)
	}

	latest, err := svc.Calculate(ctx, exampleInput)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	third, err := svc.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if store.listCalls != 2 {
		t.Errorf("expected a save to invalidate the cache, store called %d times", store.listCalls)
	}
	if len(third) != 4 || third[0].ID != latest.Record.ID {
		t.Errorf("expected newest record first, got %+v", third)
	}
}

func TestListRecent_Limits(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		if _, err := svc.Calculate(ctx, exampleInput); err != nil {
			t.Fatalf("Calculate: %v", err)
		}
	}

	tests := []struct {
		limit int
		want  int
	}{
		{0, repository.DefaultListLimit},
		{-3, repository.DefaultListLimit},
		{5, 5},
		{500, 12},
	}
	for _, tt := range tests {
		records, err := svc.ListRecent(ctx, tt.limit)
		if err != nil {
			t.Fatalf("ListRecent(%d): %v", tt.limit, err)
		}
		if len(records) != tt.want {
			t.Errorf("ListRecent(%d) returned %d records, want %d", tt.limit, len(records), tt.want)
		}
		for i := 1; i < len(records); i++ {
			if !records[i-1].CreatedAt.After(records[i].CreatedAt) {
				t.Errorf("ListRecent(%d) not sorted newest first at %d", tt.limit, i)
			}
		}
	}
}

func TestListRecent_StorageFailure(t *testing.T) {
	store := &fakeStore{listErr: &repository.StorageError{Op: "list calculations", Err: errors.New("boom")}}
	svc := newTestService(store, repository.NewMemoryCache())

	if _, err := svc.ListRecent(context.Background(), 10); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetReport(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(store, nil)
	ctx := context.Background()

	outcome, err := svc.Calculate(ctx, exampleInput)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}

	report, err := svc.GetReport(ctx, outcome.Record.ID)
	if err != nil {
		t.Fatalf("GetReport: %v", err)
	}
	if report.Calculation.ID != outcome.Record.ID {
		t.Errorf("report for wrong calculation: %s", report.Calculation.ID)
	}
	if len(report.Scenarios) != 3 || len(report.Charts.Timeline) != roi.TimelineYears {
		t.Errorf("incomplete report: %+v", report)
	}
	if report.Summary == "" {
		t.Error("expected a summary")
	}

	_, err = svc.GetReport(ctx, uuid.New())
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestScenarios_ReturnsCopy(t *testing.T) {
	custom := []model.Scenario{{Name: "Flat", Multiplier: 1}}
	svc := NewCalculationService(&fakeStore{}, nil, 0, custom, quietLogger())

	got := svc.Scenarios()
	got[0].Name = "changed"

	if svc.Scenarios()[0].Name != "Flat" {
		t.Error("Scenarios must not expose internal state")
	}
}

func TestListRecent_ReadDuringSaveIsNotCached(t *testing.T) {
	store := newBlockingListStore()
	svc := NewCalculationService(store, repository.NewMemoryCache(), time.Minute, nil, quietLogger())
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := svc.ListRecent(ctx, 10)
		done <- err
	}()

	<-store.read
	outcome, err := svc.Calculate(ctx, exampleInput)
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	close(store.release)
	if err := <-done; err != nil {
		t.Fatalf("ListRecent: %v", err)
	}

	records, err := svc.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent: %v", err)
	}
	if len(records) != 1 || records[0].ID != outcome.Record.ID {
		t.Fatalf("listing after a completed save = %+v, want record %s", records, outcome.Record.ID)
	}
}

func TestObserveStore_ReportsEveryCall(t *testing.T) {
	inner := &fakeStore{}
	observer := &recordingObserver{}
	store := ObserveStore(inner, observer)
	ctx := context.Background()

	record, err := store.Save(ctx, exampleInput, roi.Compute(exampleInput))
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := store.GetByID(ctx, record.ID); err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if _, err := store.GetByID(ctx, uuid.New()); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	unavailable := &repository.StorageError{Op: "list calculations", Err: repository.ErrUnavailable}
	inner.listErr = unavailable
	if _, err := store.ListRecent(ctx, 5); !errors.Is(err, repository.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}

	if len(observer.errs) != 4 {
		t.Fatalf("observed %d calls, want 4", len(observer.errs))
	}
	if observer.errs[0] != nil || observer.errs[1] != nil {
		t.Errorf("successful calls observed as %v", observer.errs[:2])
	}
	if observer.errs[3] != unavailable {
		t.Errorf("last observed error = %v", observer.errs[3])
	}
}
