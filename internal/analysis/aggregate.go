package analysis

import (
	"cmp"
	"slices"
	"strconv"

	"hrdash/domain/employee"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"
)

// Group is the set of records sharing one key, in source order.
type Group[K cmp.Ordered] struct {
	Key     K
	Records []employee.Record
}

// GroupBy buckets records by key and returns the groups in ascending key order.
func GroupBy[K cmp.Ordered](records []employee.Record, key func(employee.Record) K) []Group[K] {
	grouped := lo.GroupBy(records, key)
	keys := lo.Keys(grouped)
	slices.Sort(keys)

	groups := make([]Group[K], len(keys))
	for i, k := range keys {
		groups[i] = Group[K]{Key: k, Records: grouped[k]}
	}
	return groups
}

// CountWhere counts records satisfying pred.
func CountWhere(records []employee.Record, pred func(employee.Record) bool) int {
	return lo.CountBy(records, pred)
}

// Rate returns part/total as a percentage rounded to one decimal, or 0 when total is 0.
func Rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return Round(float64(part)/float64(total)*100, 1)
}

// MeanOf averages value over records, rounded to places decimals. Empty input gives 0.
func MeanOf(records []employee.Record, value func(employee.Record) int, places int) float64 {
	if len(records) == 0 {
		return 0
	}
	data := make(stats.Float64Data, len(records))
	for i, r := range records {
		data[i] = float64(value(r))
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return 0
	}
	return Round(mean, places)
}

// Round rounds v to places decimals, ties to even on the exact binary value.
// FormatFloat is correctly rounded, so 0.125 -> 0.12 and 2.675 -> 2.67.
func Round(v float64, places int) float64 {
	rounded, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', places, 64), 64)
	if err != nil {
		return 0
	}
	return rounded
}

// Partition splits records into those who stayed and those who left.
func Partition(records []employee.Record) (stayed, left []employee.Record) {
	left, stayed = lo.FilterReject(records, func(r employee.Record, _ int) bool {
		return r.Attrition
	})
	return stayed, left
}

func leftCompany(r employee.Record) bool {
	return r.Attrition
}
