// Package report holds the JSON payloads returned by each dashboard view.
// Every numeric series has the same length as Labels.
package report

// EducationOption is one entry of the education filter dropdown.
type EducationOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FilterOptions lists the values the frontend offers as filters.
type FilterOptions struct {
	Genders     []string          `json:"genders"`
	JobRoles    []string          `json:"job_roles"`
	Educations  []EducationOption `json:"educations"`
	Departments []string          `json:"departments"`
}

// KPISummary is the ungrouped reduction over the filtered set.
type KPISummary struct {
	Total           int     `json:"total"`
	AttritionRate   float64 `json:"attrition_rate"`
	AvgAge          float64 `json:"avg_age"`
	AvgIncome       int64   `json:"avg_income"`
	AvgSatisfaction float64 `json:"avg_satisfaction"`
}

// CategoryCounts is a category x attrition count series.
type CategoryCounts struct {
	Labels    []string `json:"labels"`
	Total     []int    `json:"total"`
	Attrition []int    `json:"attrition"`
}

// CategoryAttrition adds the per-label attrition rate.
type CategoryAttrition struct {
	Labels    []string  `json:"labels"`
	Total     []int     `json:"total"`
	Attrition []int     `json:"attrition"`
	Rate      []float64 `json:"rate"`
}

// IncomeByRole is the mean monthly income per job role.
type IncomeByRole struct {
	Labels    []string `json:"labels"`
	AvgIncome []int64  `json:"avg_income"`
}

// SplitCounts buckets stayed/left employees by a second dimension.
type SplitCounts struct {
	Labels []string `json:"labels"`
	Stayed []int    `json:"stayed"`
	Left   []int    `json:"left"`
}

// SplitAverages holds per-metric means within the stayed and left partitions.
type SplitAverages struct {
	Labels []string  `json:"labels"`
	Stayed []float64 `json:"stayed"`
	Left   []float64 `json:"left"`
}

// YearsAttrition is attrition by tenure in whole years.
type YearsAttrition struct {
	Labels        []int     `json:"labels"`
	AttritionRate []float64 `json:"attrition_rate"`
	Total         []int     `json:"total"`
}
