package analysis

import (
	"testing"

	"hrdash/domain/employee"

	"github.com/stretchr/testify/assert"
)

func baseRecord() employee.Record {
	return employee.Record{
		Gender:                   "Female",
		JobRole:                  "Research Scientist",
		Education:                3,
		Department:               "Research & Development",
		Age:                      35,
		MonthlyIncome:            5000,
		JobSatisfaction:          3,
		EnvironmentSatisfaction:  3,
		RelationshipSatisfaction: 3,
		WorkLifeBalance:          3,
		JobInvolvement:           3,
		EducationField:           "Life Sciences",
		YearsAtCompany:           5,
	}
}

func rec(mutate func(r *employee.Record)) employee.Record {
	r := baseRecord()
	mutate(&r)
	return r
}

func TestGroupBy_SortedKeysStableMembers(t *testing.T) {
	records := []employee.Record{
		rec(func(r *employee.Record) { r.Department = "Sales"; r.Age = 1 }),
		rec(func(r *employee.Record) { r.Department = "HR"; r.Age = 2 }),
		rec(func(r *employee.Record) { r.Department = "Sales"; r.Age = 3 }),
	}

	groups := GroupBy(records, department)

	assert.Len(t, groups, 2)
	assert.Equal(t, "HR", groups[0].Key)
	assert.Equal(t, "Sales", groups[1].Key)
	assert.Equal(t, []int{1, 3}, []int{groups[1].Records[0].Age, groups[1].Records[1].Age})
}

func TestGroupBy_NumericKeysSortNumerically(t *testing.T) {
	records := []employee.Record{
		rec(func(r *employee.Record) { r.YearsAtCompany = 10 }),
		rec(func(r *employee.Record) { r.YearsAtCompany = 9 }),
		rec(func(r *employee.Record) { r.YearsAtCompany = 1 }),
	}
	groups := GroupBy(records, func(r employee.Record) int { return r.YearsAtCompany })
	keys := []int{groups[0].Key, groups[1].Key, groups[2].Key}
	assert.Equal(t, []int{1, 9, 10}, keys)
}

func TestGroupBy_Empty(t *testing.T) {
	assert.Empty(t, GroupBy(nil, department))
}

func TestRate(t *testing.T) {
	assert.Equal(t, 0.0, Rate(0, 0))
	assert.Equal(t, 50.0, Rate(1, 2))
	assert.Equal(t, 33.3, Rate(1, 3))
	assert.Equal(t, 66.7, Rate(2, 3))
	assert.Equal(t, 100.0, Rate(7, 7))
	assert.Equal(t, 6.2, Rate(1, 16))
}

func TestMeanOf(t *testing.T) {
	records := []employee.Record{
		rec(func(r *employee.Record) { r.MonthlyIncome = 1000 }),
		rec(func(r *employee.Record) { r.MonthlyIncome = 2001 }),
	}
	assert.Equal(t, 1500.0, MeanOf(records, monthlyIncome, 0), "ties round to even")
	assert.Equal(t, 1500.5, MeanOf(records, monthlyIncome, 1))
	assert.Equal(t, 0.0, MeanOf(nil, monthlyIncome, 2))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 2.67, Round(8.0/3.0, 2))
	assert.Equal(t, 2.0, Round(2.5, 0))
	assert.Equal(t, 4.0, Round(3.5, 0))
	assert.Equal(t, -2.0, Round(-2.5, 0))
	assert.Equal(t, 6.2, Round(6.25, 1))
	assert.Equal(t, 2.67, Round(2.675, 2), "2.675 is stored just below the tie")
	assert.Equal(t, 0.0, Round(0, 2))
}

func TestPartition(t *testing.T) {
	records := []employee.Record{
		rec(func(r *employee.Record) { r.Attrition = true; r.Age = 1 }),
		rec(func(r *employee.Record) { r.Age = 2 }),
		rec(func(r *employee.Record) { r.Attrition = true; r.Age = 3 }),
	}
	stayed, left := Partition(records)
	assert.Len(t, stayed, 1)
	assert.Len(t, left, 2)
	assert.Equal(t, 3, left[1].Age)
}
