package ports

import (
	"context"

	"hrdash/domain/employee"
)

// EmployeeSource provides read-only access to the employee dataset.
// Implementations return matching records in source order and never mutate
// the underlying data.
type EmployeeSource interface {
	Load(ctx context.Context, criteria employee.Criteria) ([]employee.Record, error)
}
