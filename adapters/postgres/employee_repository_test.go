package postgres

import (
	"context"
	"database/sql/driver"
	"fmt"
	"regexp"
	"testing"

	"hrdash/domain/employee"
	"hrdash/internal/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildEmployeeQuery(t *testing.T) {
	t.Run("no filters", func(t *testing.T) {
		query, args := buildEmployeeQuery("employees", employee.Criteria{})
		assert.Empty(t, args)
		assert.NotContains(t, query, "WHERE")
		assert.Contains(t, query, `FROM "employees" ORDER BY id`)
		assert.Contains(t, query, "years_at_company::text AS years_at_company")
	})

	t.Run("filters in fixed order", func(t *testing.T) {
		query, args := buildEmployeeQuery("hr.employees", employee.Criteria{
			Department: "Sales",
			Gender:     "Female",
			Education:  "3",
		})
		assert.Equal(t, []interface{}{"Female", "3", "Sales"}, args)
		assert.Contains(t, query, `FROM "hr"."employees" WHERE gender::text = $1 AND education::text = $2 AND department::text = $3 ORDER BY id`)
	})

	t.Run("table name is quoted", func(t *testing.T) {
		query, _ := buildEmployeeQuery(`emp"; DROP TABLE x; --`, employee.Criteria{})
		assert.Contains(t, query, `FROM "emp""; DROP TABLE x; --"`)
	})
}

func newMockRepository(t *testing.T) (*EmployeeRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewEmployeeRepository(sqlx.NewDb(db, "postgres"), "employees", nil), mock
}

func tableColumns() []string {
	cols := []string{"id"}
	for _, c := range columns {
		cols = append(cols, c.column)
	}
	return cols
}

func rowValues(id int64, overrides map[string]driver.Value) []driver.Value {
	base := map[string]driver.Value{
		"gender": "Female", "job_role": "Sales Executive", "education": "3",
		"department": "Sales", "attrition": "No", "age": "34",
		"monthly_income": "5200", "job_satisfaction": "3",
		"environment_satisfaction": "2", "relationship_satisfaction": "4",
		"work_life_balance": "3", "job_involvement": "2", "over_time": "Yes",
		"education_field": "Marketing", "years_at_company": "5",
	}
	for k, v := range overrides {
		base[k] = v
	}
	values := []driver.Value{id}
	for _, c := range columns {
		values = append(values, base[c.column])
	}
	return values
}

func TestEmployeeRepository_Load(t *testing.T) {
	repo, mock := newMockRepository(t)
	criteria := employee.Criteria{Department: "Sales"}
	query, _ := buildEmployeeQuery("employees", criteria)

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("Sales").
		WillReturnRows(sqlmock.NewRows(tableColumns()).
			AddRow(rowValues(1, nil)...).
			AddRow(rowValues(2, map[string]driver.Value{"attrition": "Yes", "age": "51"})...))

	records, err := repo.Load(context.Background(), criteria)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Sales Executive", records[0].JobRole)
	assert.True(t, records[0].OverTime)
	assert.True(t, records[1].Attrition)
	assert.Equal(t, 51, records[1].Age)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestEmployeeRepository_NullIsMalformed(t *testing.T) {
	repo, mock := newMockRepository(t)
	query, _ := buildEmployeeQuery("employees", employee.Criteria{})

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WillReturnRows(sqlmock.NewRows(tableColumns()).
			AddRow(rowValues(7, map[string]driver.Value{"monthly_income": nil})...))

	_, err := repo.Load(context.Background(), employee.Criteria{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeMalformedRow))
	assert.Contains(t, err.Error(), "row 7")
	assert.Contains(t, err.Error(), employee.FieldMonthlyIncome)
}

func TestEmployeeRepository_QueryError(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectQuery("SELECT").WillReturnError(fmt.Errorf("relation \"employees\" does not exist"))

	_, err := repo.Load(context.Background(), employee.Criteria{})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.CodeSourceUnavailable))
}

func TestEmployeeRepository_Probe(t *testing.T) {
	repo, mock := newMockRepository(t)
	query, _ := buildEmployeeQuery("employees", employee.Criteria{})
	mock.ExpectQuery(regexp.QuoteMeta(query + " LIMIT 0")).
		WillReturnRows(sqlmock.NewRows(tableColumns()))

	require.NoError(t, repo.Probe(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteTable(t *testing.T) {
	assert.Equal(t, `"employees"`, QuoteTable("employees"))
	assert.Equal(t, `"hr"."employees"`, QuoteTable("hr.employees"))
	assert.Equal(t, `"Weird""Name"`, QuoteTable(`Weird"Name`))
}

func TestEmployeeRepository_Close(t *testing.T) {
	repo, mock := newMockRepository(t)
	mock.ExpectClose()

	require.NoError(t, repo.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}
