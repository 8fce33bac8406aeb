package migration

import (
	"context"
	"fmt"
	"testing"

	"hrdash/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestMigrationRunner_Run(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS "hr"."employees"`).WillReturnResult(sqlmock.NewResult(0, 0))
	for _, column := range []string{"gender", "job_role", "education", "department"} {
		mock.ExpectExec(`CREATE INDEX IF NOT EXISTS "idx_hr_employees_` + column + `"`).
			WillReturnResult(sqlmock.NewResult(0, 0))
	}

	runner := NewRunner("hr.employees", nil)
	require.NoError(t, runner.Run(context.Background(), db))
	assert.Equal(t, "1.0.0", runner.Version())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrationRunner_IndexFailureIsNotFatal(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("CREATE INDEX").WillReturnError(fmt.Errorf("permission denied"))
	for i := 0; i < 3; i++ {
		mock.ExpectExec("CREATE INDEX").WillReturnResult(sqlmock.NewResult(0, 0))
	}

	require.NoError(t, NewRunner("employees", nil).Run(context.Background(), db))
}

func TestMigrationRunner_TableFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("CREATE TABLE").WillReturnError(fmt.Errorf("permission denied"))

	err := NewRunner("employees", nil).Run(context.Background(), db)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeDatabaseError))
}
