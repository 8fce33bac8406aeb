package migration

import (
	"context"
	"fmt"
	"strings"

	"hrdash/adapters/postgres"
	"hrdash/internal"
	"hrdash/internal/errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Migrator defines the interface for database migration operations
type Migrator interface {
	Run(ctx context.Context, db *sqlx.DB) error
	Version() string
}

var _ Migrator = (*MigrationRunner)(nil)

// MigrationRunner creates the employees table the postgres source reads.
// It only creates schema; loading rows is left to the operator (e.g. COPY).
type MigrationRunner struct {
	version string
	table   string
	logger  *internal.Logger
}

// NewRunner creates a new migration runner for table
func NewRunner(table string, logger *internal.Logger) *MigrationRunner {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &MigrationRunner{
		version: "1.0.0",
		table:   table,
		logger:  logger,
	}
}

// Version returns the migration version
func (r *MigrationRunner) Version() string {
	return r.version
}

// Run executes all database migrations in the correct order
func (r *MigrationRunner) Run(ctx context.Context, db *sqlx.DB) error {
	if err := r.createEmployeesTable(ctx, db); err != nil {
		return errors.Wrapf(errors.WithCode(errors.CodeDatabaseError, err), "failed to create %s table", r.table)
	}

	r.createIndexes(ctx, db)
	r.logger.Info("[Migration] schema %s ready for table %s", r.version, r.table)
	return nil
}

func (r *MigrationRunner) createEmployeesTable(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id BIGSERIAL PRIMARY KEY,
			gender TEXT NOT NULL,
			job_role TEXT NOT NULL,
			education SMALLINT NOT NULL CHECK (education BETWEEN 1 AND 5),
			department TEXT NOT NULL,
			attrition TEXT NOT NULL CHECK (attrition IN ('Yes', 'No')),
			age INTEGER NOT NULL,
			monthly_income INTEGER NOT NULL,
			job_satisfaction SMALLINT NOT NULL,
			environment_satisfaction SMALLINT NOT NULL,
			relationship_satisfaction SMALLINT NOT NULL,
			work_life_balance SMALLINT NOT NULL,
			job_involvement SMALLINT NOT NULL,
			over_time TEXT NOT NULL CHECK (over_time IN ('Yes', 'No')),
			education_field TEXT NOT NULL,
			years_at_company INTEGER NOT NULL
		)
	`, postgres.QuoteTable(r.table)))
	return err
}

// createIndexes adds one index per filter column. Failures are logged only;
// the source works without them.
func (r *MigrationRunner) createIndexes(ctx context.Context, db *sqlx.DB) {
	base := strings.ReplaceAll(r.table, ".", "_")
	for _, column := range []string{"gender", "job_role", "education", "department"} {
		idxSQL := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s(%s)",
			pq.QuoteIdentifier("idx_"+base+"_"+column), postgres.QuoteTable(r.table), column)
		if _, err := db.ExecContext(ctx, idxSQL); err != nil {
			r.logger.Warn("[Migration] failed to create index on %s: %v", column, err)
		}
	}
}
