package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"invoicing-roi-api/internal/model"
	"invoicing-roi-api/internal/repository"
	"invoicing-roi-api/internal/roi"
)

const (
	// MaxListLimit caps the number of records a listing may return.
	MaxListLimit = 100

	recentCacheKey = "roi:calculations:recent"
)

// CalculationService runs calculations and serves the saved history.
type CalculationService struct {
	store     repository.CalculationStore // Persistent calculation records
	cache     repository.CacheRepository  // Recent listing cache, may be nil
	cacheTTL  time.Duration               // Lifetime of a cached listing
	scenarios []model.Scenario            // Scenario set applied to every result
	logger    *logrus.Logger              // Logger

	// cacheMu orders cache fills against invalidations. generation is bumped
	// by every invalidation so a listing read before a save is never cached
	// after that save.
	cacheMu    sync.Mutex
	generation uint64
}

func NewCalculationService(
	store repository.CalculationStore,
	cache repository.CacheRepository,
	cacheTTL time.Duration,
	scenarios []model.Scenario,
	logger *logrus.Logger,
) *CalculationService {
	if len(scenarios) == 0 {
		scenarios = roi.DefaultScenarios()
	}
	return &CalculationService{
		store:     store,
		cache:     cache,
		cacheTTL:  cacheTTL,
		scenarios: scenarios,
		logger:    logger,
	}
}

// Calculate computes the ROI for input and stores the result. Every call
// creates a new record, so a retried request is stored twice.
func (s *CalculationService) Calculate(ctx context.Context, input model.CalculationInput) (*model.CalculationOutcome, error) {
	result := roi.Compute(input)
	warnings := roi.Undefined(result)

	if len(warnings) > 0 {
		fields := make([]string, 0, len(warnings))
		for _, w := range warnings {
			fields = append(fields, w.Field)
		}
		s.logger.WithFields(logrus.Fields{
			"undefined":     fields,
			"solution_cost": input.SolutionCost,
		}).Warn("Calculation has undefined metrics")
	}

	record, err := s.store.Save(ctx, input, result)
	if err != nil {
		s.logger.WithError(err).Error("Failed to save calculation")
		return nil, fmt.Errorf("saving calculation: %w", err)
	}
	s.invalidateRecent(ctx)

	s.logger.WithFields(logrus.Fields{
		"calculation_id": record.ID,
		"annual_savings": result.AnnualSavings,
		"roi":            result.ROI,
	}).Info("ROI calculated")

	return &model.CalculationOutcome{
		Record:    record,
		Scenarios: roi.ProjectAll(result, s.scenarios),
		Warnings:  warnings,
	}, nil
}

// ListRecent returns up to limit records, newest first. Non-positive limits
// fall back to the default, larger ones are capped at MaxListLimit.
func (s *CalculationService) ListRecent(ctx context.Context, limit int) ([]model.CalculationRecord, error) {
	if limit <= 0 {
		limit = repository.DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	if records, ok := s.cachedRecent(ctx); ok {
		s.logger.WithField("limit", limit).Debug("Recent calculations served from cache")
		return truncate(records, limit), nil
	}

	// Remember the generation before reading so a save that finishes during
	// the read keeps its invalidation.
	generation := s.currentGeneration()

	// The cache always holds the largest page so every limit can be served from it.
	records, err := s.store.ListRecent(ctx, MaxListLimit)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list calculations")
		return nil, fmt.Errorf("listing calculations: %w", err)
	}
	s.cacheRecent(ctx, generation, records)

	return truncate(records, limit), nil
}

// GetCalculation returns a single stored calculation.
func (s *CalculationService) GetCalculation(ctx context.Context, id uuid.UUID) (*model.CalculationRecord, error) {
	record, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting calculation %s: %w", id, err)
	}
	return record, nil
}

// GetReport bundles a stored calculation with its scenarios and chart series.
func (s *CalculationService) GetReport(ctx context.Context, id uuid.UUID) (*model.CalculationReport, error) {
	record, err := s.GetCalculation(ctx, id)
	if err != nil {
		return nil, err
	}

	projections := roi.ProjectAll(record.Results, s.scenarios)
	return &model.CalculationReport{
		Calculation: record,
		Scenarios:   projections,
		Charts:      roi.BuildCharts(record.CalculationInput, record.Results),
		Summary:     roi.Summary(projections),
	}, nil
}

// Scenarios returns the configured scenario set.
func (s *CalculationService) Scenarios() []model.Scenario {
	out := make([]model.Scenario, len(s.scenarios))
	copy(out, s.scenarios)
	return out
}

func (s *CalculationService) cachedRecent(ctx context.Context) ([]model.CalculationRecord, bool) {
	if s.cache == nil {
		return nil, false
	}
	raw, ok := s.cache.Get(ctx, recentCacheKey)
	if !ok {
		return nil, false
	}

	var records []model.CalculationRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.logger.WithError(err).Warn("Discarding unreadable cached calculations")
		return nil, false
	}
	return records, true
}

func (s *CalculationService) currentGeneration() uint64 {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	return s.generation
}

// cacheRecent stores records read at generation. The fill is skipped when a
// save invalidated the listing in the meantime.
func (s *CalculationService) cacheRecent(ctx context.Context, generation uint64, records []model.CalculationRecord) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(records)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to encode calculations for cache")
		return
	}

	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	if s.generation != generation {
		s.logger.Debug("Skipping cache fill, listing changed during read")
		return
	}
	if err := s.cache.Set(ctx, recentCacheKey, string(raw), s.cacheTTL); err != nil {
		s.logger.WithError(err).Warn("Failed to cache recent calculations")
	}
}

func (s *CalculationService) invalidateRecent(ctx context.Context) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.generation++
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, recentCacheKey); err != nil {
		s.logger.WithError(err).Warn("Failed to invalidate cached calculations")
	}
}

func truncate(records []model.CalculationRecord, limit int) []model.CalculationRecord {
	if len(records) > limit {
		return records[:limit]
	}
	return records
}
