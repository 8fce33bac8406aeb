package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/internal/errors"
	"hrdash/ports"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// columns maps dataset field names to their snake_case table columns.
var columns = []struct {
	field  string
	column string
}{
	{employee.FieldGender, "gender"},
	{employee.FieldJobRole, "job_role"},
	{employee.FieldEducation, "education"},
	{employee.FieldDepartment, "department"},
	{employee.FieldAttrition, "attrition"},
	{employee.FieldAge, "age"},
	{employee.FieldMonthlyIncome, "monthly_income"},
	{employee.FieldJobSatisfaction, "job_satisfaction"},
	{employee.FieldEnvironmentSatisfaction, "environment_satisfaction"},
	{employee.FieldRelationshipSatisfaction, "relationship_satisfaction"},
	{employee.FieldWorkLifeBalance, "work_life_balance"},
	{employee.FieldJobInvolvement, "job_involvement"},
	{employee.FieldOverTime, "over_time"},
	{employee.FieldEducationField, "education_field"},
	{employee.FieldYearsAtCompany, "years_at_company"},
}

// employeeRow is one table row with every value read as text, so the same
// parser and exact-match filters apply as for files.
type employeeRow struct {
	ID                       int64          `db:"id"`
	Gender                   sql.NullString `db:"gender"`
	JobRole                  sql.NullString `db:"job_role"`
	Education                sql.NullString `db:"education"`
	Department               sql.NullString `db:"department"`
	Attrition                sql.NullString `db:"attrition"`
	Age                      sql.NullString `db:"age"`
	MonthlyIncome            sql.NullString `db:"monthly_income"`
	JobSatisfaction          sql.NullString `db:"job_satisfaction"`
	EnvironmentSatisfaction  sql.NullString `db:"environment_satisfaction"`
	RelationshipSatisfaction sql.NullString `db:"relationship_satisfaction"`
	WorkLifeBalance          sql.NullString `db:"work_life_balance"`
	JobInvolvement           sql.NullString `db:"job_involvement"`
	OverTime                 sql.NullString `db:"over_time"`
	EducationField           sql.NullString `db:"education_field"`
	YearsAtCompany           sql.NullString `db:"years_at_company"`
}

// toRow converts the row to the raw field map; NULL becomes an empty value.
func (r employeeRow) toRow() employee.Row {
	return employee.Row{
		employee.FieldGender:                   r.Gender.String,
		employee.FieldJobRole:                  r.JobRole.String,
		employee.FieldEducation:                r.Education.String,
		employee.FieldDepartment:               r.Department.String,
		employee.FieldAttrition:                r.Attrition.String,
		employee.FieldAge:                      r.Age.String,
		employee.FieldMonthlyIncome:            r.MonthlyIncome.String,
		employee.FieldJobSatisfaction:          r.JobSatisfaction.String,
		employee.FieldEnvironmentSatisfaction:  r.EnvironmentSatisfaction.String,
		employee.FieldRelationshipSatisfaction: r.RelationshipSatisfaction.String,
		employee.FieldWorkLifeBalance:          r.WorkLifeBalance.String,
		employee.FieldJobInvolvement:           r.JobInvolvement.String,
		employee.FieldOverTime:                 r.OverTime.String,
		employee.FieldEducationField:           r.EducationField.String,
		employee.FieldYearsAtCompany:           r.YearsAtCompany.String,
	}
}

// EmployeeRepository serves employee records from a PostgreSQL table
type EmployeeRepository struct {
	db     *sqlx.DB
	table  string
	logger *internal.Logger
}

var _ ports.EmployeeSource = (*EmployeeRepository)(nil)

// Open connects to PostgreSQL and verifies the connection
func Open(ctx context.Context, url string) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", url)
	if err != nil {
		return nil, errors.SourceUnavailable("postgres", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// NewEmployeeRepository creates a repository reading from table, which may be
// schema-qualified ("hr.employees").
func NewEmployeeRepository(db *sqlx.DB, table string, logger *internal.Logger) *EmployeeRepository {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &EmployeeRepository{db: db, table: table, logger: logger}
}

// Name identifies the source in logs and metrics
func (r *EmployeeRepository) Name() string {
	return "postgres"
}

// Load selects the rows matching criteria in id order and parses them
func (r *EmployeeRepository) Load(ctx context.Context, criteria employee.Criteria) ([]employee.Record, error) {
	query, args := buildEmployeeQuery(r.table, criteria)
	r.logger.Trace("[EmployeeRepository] %s %v", query, args)

	var rows []employeeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.SourceUnavailable("postgres", fmt.Errorf("failed to query employees: %w", err))
	}

	records := make([]employee.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := employee.ParseRecord(row.toRow(), int(row.ID))
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	r.logger.Debug("[EmployeeRepository] loaded %d records for %+v", len(records), criteria)
	return records, nil
}

// Probe checks that the table exists with every required column
func (r *EmployeeRepository) Probe(ctx context.Context) error {
	query, _ := buildEmployeeQuery(r.table, employee.Criteria{})
	rows, err := r.db.QueryxContext(ctx, query+" LIMIT 0")
	if err != nil {
		return errors.SourceUnavailable("postgres", err)
	}
	return rows.Close()
}

// Close releases the connection pool
func (r *EmployeeRepository) Close() error {
	return r.db.Close()
}

// buildEmployeeQuery renders the SELECT for criteria. Every column is cast to
// text and compared as text, matching file sources exactly.
func buildEmployeeQuery(table string, criteria employee.Criteria) (string, []interface{}) {
	selects := make([]string, 0, len(columns)+1)
	selects = append(selects, "id")
	for _, c := range columns {
		selects = append(selects, fmt.Sprintf("%s::text AS %s", c.column, c.column))
	}

	var (
		conditions []string
		args       []interface{}
	)
	filter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf("%s::text = $%d", column, len(args)))
	}
	filter("gender", criteria.Gender)
	filter("job_role", criteria.JobRole)
	filter("education", criteria.Education)
	filter("department", criteria.Department)

	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(selects, ", "))
	b.WriteString(" FROM ")
	b.WriteString(QuoteTable(table))
	if len(conditions) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conditions, " AND "))
	}
	b.WriteString(" ORDER BY id")
	return b.String(), args
}

// QuoteTable quotes a possibly schema-qualified table name ("hr.employees")
func QuoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = pq.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}
