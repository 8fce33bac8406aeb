package dataset

import (
	"context"
	"time"

	"hrdash/domain/employee"
	"hrdash/internal/errors"
	"hrdash/internal/usage"
	"hrdash/ports"
)

// InstrumentedSource records load counts, sizes and failures for another source.
type InstrumentedSource struct {
	name    string
	next    ports.EmployeeSource
	metrics *usage.Metrics
}

var _ ports.EmployeeSource = (*InstrumentedSource)(nil)

// NewInstrumentedSource wraps next; name labels the metrics (e.g. "file", "postgres")
func NewInstrumentedSource(name string, next ports.EmployeeSource, metrics *usage.Metrics) *InstrumentedSource {
	return &InstrumentedSource{name: name, next: next, metrics: metrics}
}

func (s *InstrumentedSource) Load(ctx context.Context, criteria employee.Criteria) ([]employee.Record, error) {
	start := time.Now()
	records, err := s.next.Load(ctx, criteria)
	if err != nil {
		s.metrics.ObserveLoadError(s.name, failureCode(ctx, err))
		return nil, err
	}
	s.metrics.ObserveLoad(s.name, len(records), time.Since(start))
	return records, nil
}

// failureCode labels a failed load. Errors from outside the application
// (a cancelled request, a driver panic turned error) have no code of their own.
func failureCode(ctx context.Context, err error) string {
	if errors.IsAppError(err) {
		return errors.GetCode(err)
	}
	if ctx.Err() != nil {
		return "CANCELED"
	}
	return errors.CodeInternalError
}
