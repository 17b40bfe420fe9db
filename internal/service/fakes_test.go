package service

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"invoicing-roi-api/internal/model"
	"invoicing-roi-api/internal/repository"
)

type fakeStore struct {
	mu        sync.Mutex
	records   []model.CalculationRecord
	saveErr   error
	listErr   error
	listCalls int
	lastLimit int
	clock     time.Time
}

func (f *fakeStore) Save(_ context.Context, input model.CalculationInput, result model.CalculationResult) (*model.CalculationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.saveErr != nil {
		return nil, f.saveErr
	}
	f.clock = f.clock.Add(time.Second)
	rec := model.CalculationRecord{
		ID:               uuid.New(),
		CalculationInput: input,
		Results:          result,
		CreatedAt:        f.clock,
	}
	f.records = append(f.records, rec)
	return &rec, nil
}

func (f *fakeStore) ListRecent(_ context.Context, limit int) ([]model.CalculationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	f.lastLimit = limit
	if f.listErr != nil {
		return nil, f.listErr
	}

	out := make([]model.CalculationRecord, len(f.records))
	copy(out, f.records)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*model.CalculationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, r := range f.records {
		if r.ID == id {
			rec := r
			return &rec, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakePinger struct {
	err error
}

func (p *fakePinger) Ping(context.Context) error {
	return p.err
}

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// blockingListStore pauses the first ListRecent after it has read the store
// until release is closed.
type blockingListStore struct {
	*fakeStore
	once    sync.Once
	read    chan struct{}
	release chan struct{}
}

func newBlockingListStore() *blockingListStore {
	return &blockingListStore{
		fakeStore: &fakeStore{},
		read:      make(chan struct{}),
		release:   make(chan struct{}),
	}
}

func (b *blockingListStore) ListRecent(ctx context.Context, limit int) ([]model.CalculationRecord, error) {
	records, err := b.fakeStore.ListRecent(ctx, limit)
	b.once.Do(func() {
		close(b.read)
		<-b.release
	})
	return records, err
}

type recordingObserver struct {
	mu   sync.Mutex
	errs []error
}

func (r *recordingObserver) Observe(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errs = append(r.errs, err)
}
