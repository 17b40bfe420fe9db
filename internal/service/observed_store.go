package service

import (
	"context"

	"github.com/google/uuid"

	"invoicing-roi-api/internal/model"
	"invoicing-roi-api/internal/repository"
)

// StoreObserver is told the outcome of every store call.
type StoreObserver interface {
	Observe(err error)
}

// observedStore reports each store result to an observer.
type observedStore struct {
	store    repository.CalculationStore
	observer StoreObserver
}

// ObserveStore wraps store so that observer sees the result of every call.
// The connection monitor uses it to notice outages between scheduled checks.
func ObserveStore(store repository.CalculationStore, observer StoreObserver) repository.CalculationStore {
	return &observedStore{store: store, observer: observer}
}

func (o *observedStore) Save(ctx context.Context, input model.CalculationInput, result model.CalculationResult) (*model.CalculationRecord, error) {
	record, err := o.store.Save(ctx, input, result)
	o.observer.Observe(err)
	return record, err
}

func (o *observedStore) ListRecent(ctx context.Context, limit int) ([]model.CalculationRecord, error) {
	records, err := o.store.ListRecent(ctx, limit)
	o.observer.Observe(err)
	return records, err
}

func (o *observedStore) GetByID(ctx context.Context, id uuid.UUID) (*model.CalculationRecord, error) {
	record, err := o.store.GetByID(ctx, id)
	o.observer.Observe(err)
	return record, err
}
