package analysis

import (
	"context"
	"sort"

	"hrdash/domain/employee"
	"hrdash/domain/report"
	"hrdash/internal"
	"hrdash/internal/errors"
	"hrdash/ports"
)

// ViewFunc computes one dashboard payload for a set of filter criteria.
type ViewFunc func(ctx context.Context, criteria employee.Criteria) (any, error)

// View is a named dashboard payload. Unfiltered views ignore criteria.
type View struct {
	Name       string
	Unfiltered bool
	Run        ViewFunc
}

// Service computes dashboard views over an employee source. It holds no
// per-request state; every call loads the records it needs.
type Service struct {
	source ports.EmployeeSource
	logger *internal.Logger
}

// NewService creates a new analysis service
func NewService(source ports.EmployeeSource, logger *internal.Logger) *Service {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Service{source: source, logger: logger}
}

func (s *Service) load(ctx context.Context, criteria employee.Criteria) ([]employee.Record, error) {
	records, err := s.source.Load(ctx, criteria)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load employee records")
	}
	s.logger.Trace("[AnalysisService] loaded %d records for %+v", len(records), criteria)
	return records, nil
}

// compute loads the filtered records and applies reduce to them.
func compute[T any](ctx context.Context, s *Service, criteria employee.Criteria, reduce func([]employee.Record) T) (T, error) {
	records, err := s.load(ctx, criteria)
	if err != nil {
		var zero T
		return zero, err
	}
	return reduce(records), nil
}

// FilterOptions lists the filter values over the whole dataset.
func (s *Service) FilterOptions(ctx context.Context) (report.FilterOptions, error) {
	return compute(ctx, s, employee.Criteria{}, FilterOptions)
}

func (s *Service) KPIs(ctx context.Context, c employee.Criteria) (report.KPISummary, error) {
	return compute(ctx, s, c, KPIs)
}

func (s *Service) AttritionByDepartment(ctx context.Context, c employee.Criteria) (report.CategoryAttrition, error) {
	return compute(ctx, s, c, func(rs []employee.Record) report.CategoryAttrition {
		return AttritionByCategory(rs, department)
	})
}

func (s *Service) AttritionByJobRole(ctx context.Context, c employee.Criteria) (report.CategoryAttrition, error) {
	return compute(ctx, s, c, func(rs []employee.Record) report.CategoryAttrition {
		return AttritionByCategory(rs, jobRole)
	})
}

func (s *Service) AgeDistribution(ctx context.Context, c employee.Criteria) (report.CategoryCounts, error) {
	return compute(ctx, s, c, AgeDistribution)
}

func (s *Service) GenderSplit(ctx context.Context, c employee.Criteria) (report.CategoryCounts, error) {
	return compute(ctx, s, c, func(rs []employee.Record) report.CategoryCounts {
		return CountsByCategory(rs, gender)
	})
}

func (s *Service) IncomeByRole(ctx context.Context, c employee.Criteria) (report.IncomeByRole, error) {
	return compute(ctx, s, c, IncomeByRole)
}

func (s *Service) SatisfactionDistribution(ctx context.Context, c employee.Criteria) (report.SplitCounts, error) {
	return compute(ctx, s, c, SatisfactionDistribution)
}

func (s *Service) OvertimeAttrition(ctx context.Context, c employee.Criteria) (report.SplitCounts, error) {
	return compute(ctx, s, c, OvertimeAttrition)
}

func (s *Service) EducationField(ctx context.Context, c employee.Criteria) (report.CategoryCounts, error) {
	return compute(ctx, s, c, func(rs []employee.Record) report.CategoryCounts {
		return CountsByCategory(rs, educationField)
	})
}

func (s *Service) YearsAttrition(ctx context.Context, c employee.Criteria) (report.YearsAttrition, error) {
	return compute(ctx, s, c, YearsAttrition)
}

func (s *Service) WorkLifeBalance(ctx context.Context, c employee.Criteria) (report.SplitAverages, error) {
	return compute(ctx, s, c, WorkLifeBalance)
}

// Views returns every dashboard view keyed by its route name, sorted by name.
func (s *Service) Views() []View {
	views := []View{
		{Name: "filters", Unfiltered: true, Run: func(ctx context.Context, _ employee.Criteria) (any, error) {
			return s.FilterOptions(ctx)
		}},
		{Name: "kpis", Run: erase(s.KPIs)},
		{Name: "attrition-by-department", Run: erase(s.AttritionByDepartment)},
		{Name: "attrition-by-jobrole", Run: erase(s.AttritionByJobRole)},
		{Name: "age-distribution", Run: erase(s.AgeDistribution)},
		{Name: "gender-split", Run: erase(s.GenderSplit)},
		{Name: "income-by-role", Run: erase(s.IncomeByRole)},
		{Name: "satisfaction-distribution", Run: erase(s.SatisfactionDistribution)},
		{Name: "overtime-attrition", Run: erase(s.OvertimeAttrition)},
		{Name: "education-field", Run: erase(s.EducationField)},
		{Name: "years-attrition", Run: erase(s.YearsAttrition)},
		{Name: "worklife-balance", Run: erase(s.WorkLifeBalance)},
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Name < views[j].Name })
	return views
}

// View looks up a view by route name.
func (s *Service) View(name string) (View, bool) {
	for _, v := range s.Views() {
		if v.Name == name {
			return v, true
		}
	}
	return View{}, false
}

func erase[T any](fn func(context.Context, employee.Criteria) (T, error)) ViewFunc {
	return func(ctx context.Context, c employee.Criteria) (any, error) {
		v, err := fn(ctx, c)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}
