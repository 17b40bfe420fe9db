package repository

const postgresSchema = `
CREATE TABLE IF NOT EXISTS roi_calculations (
    seq                  BIGSERIAL PRIMARY KEY,
    id                   UUID NOT NULL UNIQUE,
    monthly_invoices     DOUBLE PRECISION NOT NULL,
    time_per_invoice     DOUBLE PRECISION NOT NULL,
    hourly_rate          DOUBLE PRECISION NOT NULL,
    error_rate           DOUBLE PRECISION NOT NULL,
    error_cost           DOUBLE PRECISION NOT NULL,
    solution_cost        DOUBLE PRECISION NOT NULL,
    current_annual_cost  DOUBLE PRECISION,
    new_annual_cost      DOUBLE PRECISION,
    annual_savings       DOUBLE PRECISION,
    roi                  DOUBLE PRECISION,
    payback_months       DOUBLE PRECISION,
    created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_roi_calculations_created ON roi_calculations (created_at DESC, seq DESC);
`

// created_at is stored as fixed width UTC text so that it sorts lexically.
const sqliteSchema = `
CREATE TABLE IF NOT EXISTS roi_calculations (
    seq                  INTEGER PRIMARY KEY AUTOINCREMENT,
    id                   TEXT NOT NULL UNIQUE,
    monthly_invoices     REAL NOT NULL,
    time_per_invoice     REAL NOT NULL,
    hourly_rate          REAL NOT NULL,
    error_rate           REAL NOT NULL,
    error_cost           REAL NOT NULL,
    solution_cost        REAL NOT NULL,
    current_annual_cost  REAL,
    new_annual_cost      REAL,
    annual_savings       REAL,
    roi                  REAL,
    payback_months       REAL,
    created_at           TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_roi_calculations_created ON roi_calculations (created_at DESC, seq DESC);
`

func schemaFor(driver string) string {
	if driver == DriverSQLite {
		return sqliteSchema
	}
	return postgresSchema
}
