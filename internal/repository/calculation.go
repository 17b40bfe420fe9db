package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"invoicing-roi-api/internal/model"
)

// DefaultListLimit is used when ListRecent is called without a positive limit.
const DefaultListLimit = 10

// sqliteTimeLayout is fixed width so that text comparison orders by time.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000Z"

// CalculationStore persists calculations. There is no update or delete.
type CalculationStore interface {
	Save(ctx context.Context, input model.CalculationInput, result model.CalculationResult) (*model.CalculationRecord, error)
	ListRecent(ctx context.Context, limit int) ([]model.CalculationRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.CalculationRecord, error)
}

type CalculationRepository struct {
	db     *sql.DB
	info   Info
	logger *logrus.Logger
	now    func() time.Time

	schemaMu    sync.Mutex
	schemaReady bool
}

func NewCalculationRepository(db *sql.DB, info Info, logger *logrus.Logger) *CalculationRepository {
	return &CalculationRepository{
		db:     db,
		info:   info,
		logger: logger,
		now:    time.Now,
	}
}

// EnsureSchema creates the table if needed. It is retried on every call
// until it succeeds once.
func (r *CalculationRepository) EnsureSchema(ctx context.Context) error {
	r.schemaMu.Lock()
	defer r.schemaMu.Unlock()

	if r.schemaReady {
		return nil
	}
	if _, err := r.db.ExecContext(ctx, schemaFor(r.info.Driver)); err != nil {
		return storageError("create schema", err)
	}
	r.schemaReady = true
	r.logger.WithField("driver", r.info.Driver).Info("Calculation schema is ready")
	return nil
}

func (r *CalculationRepository) Save(
	ctx context.Context,
	input model.CalculationInput,
	result model.CalculationResult,
) (*model.CalculationRecord, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	record := &model.CalculationRecord{
		ID:               uuid.New(),
		CalculationInput: input,
		Results:          result,
		CreatedAt:        r.now().UTC().Truncate(time.Microsecond),
	}

	query := rebind(r.info.Driver, `
        INSERT INTO roi_calculations (id, monthly_invoices, time_per_invoice, hourly_rate,
                                      error_rate, error_cost, solution_cost,
                                      current_annual_cost, new_annual_cost, annual_savings,
                                      roi, payback_months, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `)

	_, err := r.db.ExecContext(
		ctx,
		query,
		record.ID,
		input.MonthlyInvoices,
		input.TimePerInvoice,
		input.HourlyRate,
		input.ErrorRate,
		input.ErrorCost,
		input.SolutionCost,
		result.CurrentAnnualCost,
		result.NewAnnualCost,
		result.AnnualSavings,
		result.ROI,
		result.PaybackMonths,
		r.timeArg(record.CreatedAt),
	)
	if err != nil {
		r.logger.WithError(err).WithField("calculation_id", record.ID).Error("Failed to insert calculation")
		return nil, storageError("save calculation", err)
	}

	r.logger.WithFields(logrus.Fields{
		"calculation_id": record.ID,
		"created_at":     record.CreatedAt,
	}).Debug("Calculation stored")
	return record, nil
}

// ListRecent returns at most limit records, newest first.
func (r *CalculationRepository) ListRecent(ctx context.Context, limit int) ([]model.CalculationRecord, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	query := rebind(r.info.Driver, selectCalculations+`
        ORDER BY created_at DESC, seq DESC
        LIMIT ?
    `)

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		r.logger.WithError(err).Error("Failed to query recent calculations")
		return nil, storageError("list calculations", err)
	}
	defer rows.Close()

	records := make([]model.CalculationRecord, 0, limit)
	for rows.Next() {
		record, err := scanCalculation(rows)
		if err != nil {
			return nil, storageError("scan calculation", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("list calculations", err)
	}

	r.logger.WithField("count", len(records)).Debug("Recent calculations loaded")
	return records, nil
}

func (r *CalculationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.CalculationRecord, error) {
	if err := r.EnsureSchema(ctx); err != nil {
		return nil, err
	}

	query := rebind(r.info.Driver, selectCalculations+`
        WHERE id = ?
    `)

	record, err := scanCalculation(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, storageError("get calculation", err)
	}
	return record, nil
}

// Ping checks that the database answers.
func (r *CalculationRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return storageError("ping", err)
	}
	return nil
}

func (r *CalculationRepository) Info() Info {
	return r.info
}

func (r *CalculationRepository) Close() error {
	return r.db.Close()
}

func (r *CalculationRepository) timeArg(t time.Time) any {
	if r.info.Driver == DriverSQLite {
		return t.UTC().Format(sqliteTimeLayout)
	}
	return t
}

const selectCalculations = `
        SELECT id, monthly_invoices, time_per_invoice, hourly_rate, error_rate, error_cost,
               solution_cost, current_annual_cost, new_annual_cost, annual_savings,
               roi, payback_months, created_at
        FROM roi_calculations`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCalculation(row rowScanner) (*model.CalculationRecord, error) {
	var (
		record    model.CalculationRecord
		createdAt timestamp
	)
	err := row.Scan(
		&record.ID,
		&record.MonthlyInvoices,
		&record.TimePerInvoice,
		&record.HourlyRate,
		&record.ErrorRate,
		&record.ErrorCost,
		&record.SolutionCost,
		&record.Results.CurrentAnnualCost,
		&record.Results.NewAnnualCost,
		&record.Results.AnnualSavings,
		&record.Results.ROI,
		&record.Results.PaybackMonths,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = time.Time(createdAt).UTC()
	return &record, nil
}

// timestamp scans both native time values and the sqlite text form.
type timestamp time.Time

func (t *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*t = timestamp(v)
		return nil
	case string:
		return t.parse(v)
	case []byte:
		return t.parse(string(v))
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", src)
	}
}

func (t *timestamp) parse(s string) error {
	parsed, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return fmt.Errorf("scan timestamp: %w", err)
	}
	*t = timestamp(parsed)
	return nil
}
