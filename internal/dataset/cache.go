package dataset

import (
	"context"
	"slices"

	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/ports"

	"github.com/patrickmn/go-cache"
)

// CachedSource is a read-through cache over another source, keyed by filter
// criteria. Entries never expire; the dataset is treated as immutable for
// the life of the process. Errors are not cached.
type CachedSource struct {
	next   ports.EmployeeSource
	cache  *cache.Cache
	logger *internal.Logger
}

var _ ports.EmployeeSource = (*CachedSource)(nil)

// NewCachedSource wraps next with a never-expiring cache
func NewCachedSource(next ports.EmployeeSource, logger *internal.Logger) *CachedSource {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &CachedSource{
		next:   next,
		cache:  cache.New(cache.NoExpiration, 0),
		logger: logger,
	}
}

// Load returns a copy of the cached records for criteria, loading them on a miss.
func (s *CachedSource) Load(ctx context.Context, criteria employee.Criteria) ([]employee.Record, error) {
	key := criteria.Key()
	if v, ok := s.cache.Get(key); ok {
		s.logger.Trace("[CachedSource] hit %q", key)
		return slices.Clone(v.([]employee.Record)), nil
	}

	records, err := s.next.Load(ctx, criteria)
	if err != nil {
		return nil, err
	}
	s.cache.Set(key, slices.Clone(records), cache.NoExpiration)
	s.logger.Debug("[CachedSource] cached %d records for %q", len(records), key)
	return records, nil
}

// Len returns the number of cached criteria
func (s *CachedSource) Len() int {
	return s.cache.ItemCount()
}
