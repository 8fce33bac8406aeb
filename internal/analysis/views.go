package analysis

import (
	"fmt"
	"math"
	"sort"

	"hrdash/domain/employee"
	"hrdash/domain/report"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/stat"
)

const (
	ageBinStart = 18
	ageBinWidth = 5
	ageBinCount = 10 // 18-22 .. 63-67, the last bin also takes everyone older
	maxTenure   = 40
)

var (
	satisfactionLabels = []string{"1 - Low", "2 - Medium", "3 - High", "4 - Very High"}
	overtimeLabels     = []string{"With Overtime", "Without Overtime"}
)

// wellbeingMetrics are averaged separately for stayed and left employees.
var wellbeingMetrics = []struct {
	label string
	value func(employee.Record) int
}{
	{"Job Satisfaction", func(r employee.Record) int { return r.JobSatisfaction }},
	{"Environment", func(r employee.Record) int { return r.EnvironmentSatisfaction }},
	{"Relationships", func(r employee.Record) int { return r.RelationshipSatisfaction }},
	{"Work-Life Balance", func(r employee.Record) int { return r.WorkLifeBalance }},
	{"Job Involvement", func(r employee.Record) int { return r.JobInvolvement }},
}

// AttritionByCategory counts total and leavers per key, with the attrition rate.
func AttritionByCategory(records []employee.Record, key func(employee.Record) string) report.CategoryAttrition {
	groups := GroupBy(records, key)
	out := report.CategoryAttrition{
		Labels:    make([]string, 0, len(groups)),
		Total:     make([]int, 0, len(groups)),
		Attrition: make([]int, 0, len(groups)),
		Rate:      make([]float64, 0, len(groups)),
	}
	for _, g := range groups {
		total := len(g.Records)
		left := CountWhere(g.Records, leftCompany)
		out.Labels = append(out.Labels, g.Key)
		out.Total = append(out.Total, total)
		out.Attrition = append(out.Attrition, left)
		out.Rate = append(out.Rate, Rate(left, total))
	}
	return out
}

// CountsByCategory counts total and leavers per key.
func CountsByCategory(records []employee.Record, key func(employee.Record) string) report.CategoryCounts {
	full := AttritionByCategory(records, key)
	return report.CategoryCounts{
		Labels:    full.Labels,
		Total:     full.Total,
		Attrition: full.Attrition,
	}
}

// AgeDistribution counts employees in five-year age bins starting at 18.
// Employees younger than 18 fall outside every bin.
func AgeDistribution(records []employee.Record) report.CategoryCounts {
	dividers := make([]float64, ageBinCount+1)
	labels := make([]string, ageBinCount)
	for i := 0; i < ageBinCount; i++ {
		low := ageBinStart + i*ageBinWidth
		dividers[i] = float64(low)
		labels[i] = fmt.Sprintf("%d-%d", low, low+ageBinWidth-1)
	}
	dividers[ageBinCount] = math.Inf(1)

	var all, left []float64
	for _, r := range records {
		if r.Age < ageBinStart {
			continue
		}
		all = append(all, float64(r.Age))
		if r.Attrition {
			left = append(left, float64(r.Age))
		}
	}

	return report.CategoryCounts{
		Labels:    labels,
		Total:     histogram(dividers, all),
		Attrition: histogram(dividers, left),
	}
}

func histogram(dividers, x []float64) []int {
	counts := make([]int, len(dividers)-1)
	if len(x) == 0 {
		return counts
	}
	sort.Float64s(x)
	for i, c := range stat.Histogram(nil, dividers, x, nil) {
		counts[i] = int(c)
	}
	return counts
}

// IncomeByRole averages monthly income per job role, rounded to whole units.
func IncomeByRole(records []employee.Record) report.IncomeByRole {
	groups := GroupBy(records, func(r employee.Record) string { return r.JobRole })
	out := report.IncomeByRole{
		Labels:    make([]string, 0, len(groups)),
		AvgIncome: make([]int64, 0, len(groups)),
	}
	for _, g := range groups {
		out.Labels = append(out.Labels, g.Key)
		out.AvgIncome = append(out.AvgIncome, int64(MeanOf(g.Records, monthlyIncome, 0)))
	}
	return out
}

// SatisfactionDistribution buckets stayed and left employees by job satisfaction.
func SatisfactionDistribution(records []employee.Record) report.SplitCounts {
	out := report.SplitCounts{
		Labels: satisfactionLabels,
		Stayed: make([]int, len(satisfactionLabels)),
		Left:   make([]int, len(satisfactionLabels)),
	}
	for _, r := range records {
		idx := r.JobSatisfaction - 1
		if idx < 0 || idx >= len(satisfactionLabels) {
			continue
		}
		if r.Attrition {
			out.Left[idx]++
		} else {
			out.Stayed[idx]++
		}
	}
	return out
}

// OvertimeAttrition splits stayed and left employees by overtime.
func OvertimeAttrition(records []employee.Record) report.SplitCounts {
	out := report.SplitCounts{
		Labels: overtimeLabels,
		Stayed: make([]int, 2),
		Left:   make([]int, 2),
	}
	for _, r := range records {
		idx := 1
		if r.OverTime {
			idx = 0
		}
		if r.Attrition {
			out.Left[idx]++
		} else {
			out.Stayed[idx]++
		}
	}
	return out
}

// WorkLifeBalance averages the wellbeing metrics within stayed and left, to two decimals.
func WorkLifeBalance(records []employee.Record) report.SplitAverages {
	stayed, left := Partition(records)
	out := report.SplitAverages{
		Labels: make([]string, 0, len(wellbeingMetrics)),
		Stayed: make([]float64, 0, len(wellbeingMetrics)),
		Left:   make([]float64, 0, len(wellbeingMetrics)),
	}
	for _, m := range wellbeingMetrics {
		out.Labels = append(out.Labels, m.label)
		out.Stayed = append(out.Stayed, MeanOf(stayed, m.value, 2))
		out.Left = append(out.Left, MeanOf(left, m.value, 2))
	}
	return out
}

// YearsAttrition reports attrition per year of tenure for years
// 0..min(longest tenure seen, 40). An empty input yields the single year 0.
func YearsAttrition(records []employee.Record) report.YearsAttrition {
	groups := GroupBy(records, func(r employee.Record) int { return r.YearsAtCompany })
	byYear := lo.SliceToMap(groups, func(g Group[int]) (int, []employee.Record) {
		return g.Key, g.Records
	})

	maxYear := 0
	if len(groups) > 0 {
		maxYear = groups[len(groups)-1].Key
	}
	n := min(maxYear+1, maxTenure+1)

	out := report.YearsAttrition{
		Labels:        make([]int, n),
		AttritionRate: make([]float64, n),
		Total:         make([]int, n),
	}
	for year := 0; year < n; year++ {
		members := byYear[year]
		out.Labels[year] = year
		out.Total[year] = len(members)
		out.AttritionRate[year] = Rate(CountWhere(members, leftCompany), len(members))
	}
	return out
}

// KPIs reduces the whole set to the headline numbers. All zero on empty input.
func KPIs(records []employee.Record) report.KPISummary {
	total := len(records)
	if total == 0 {
		return report.KPISummary{}
	}
	return report.KPISummary{
		Total:           total,
		AttritionRate:   Rate(CountWhere(records, leftCompany), total),
		AvgAge:          MeanOf(records, func(r employee.Record) int { return r.Age }, 1),
		AvgIncome:       int64(MeanOf(records, monthlyIncome, 0)),
		AvgSatisfaction: MeanOf(records, func(r employee.Record) int { return r.JobSatisfaction }, 2),
	}
}

// FilterOptions lists distinct filter values over an unfiltered record set.
func FilterOptions(records []employee.Record) report.FilterOptions {
	educations := make([]report.EducationOption, 0, len(employee.EducationLevels))
	for _, code := range employee.EducationCodes() {
		educations = append(educations, report.EducationOption{
			Value: fmt.Sprint(code),
			Label: employee.EducationLevels[code],
		})
	}
	return report.FilterOptions{
		Genders:     distinct(records, func(r employee.Record) string { return r.Gender }),
		JobRoles:    distinct(records, func(r employee.Record) string { return r.JobRole }),
		Educations:  educations,
		Departments: distinct(records, func(r employee.Record) string { return r.Department }),
	}
}

func distinct(records []employee.Record, key func(employee.Record) string) []string {
	values := lo.Uniq(lo.Map(records, func(r employee.Record, _ int) string { return key(r) }))
	sort.Strings(values)
	return values
}

func monthlyIncome(r employee.Record) int {
	return r.MonthlyIncome
}

func department(r employee.Record) string     { return r.Department }
func jobRole(r employee.Record) string        { return r.JobRole }
func gender(r employee.Record) string         { return r.Gender }
func educationField(r employee.Record) string { return r.EducationField }
