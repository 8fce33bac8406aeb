package employee

import (
	"sort"
	"strings"
)

// Source column names. The dataset may carry more columns; only these are read.
const (
	FieldGender                   = "Gender"
	FieldJobRole                  = "JobRole"
	FieldEducation                = "Education"
	FieldDepartment               = "Department"
	FieldAttrition                = "Attrition"
	FieldAge                      = "Age"
	FieldMonthlyIncome            = "MonthlyIncome"
	FieldJobSatisfaction          = "JobSatisfaction"
	FieldEnvironmentSatisfaction  = "EnvironmentSatisfaction"
	FieldRelationshipSatisfaction = "RelationshipSatisfaction"
	FieldWorkLifeBalance          = "WorkLifeBalance"
	FieldJobInvolvement           = "JobInvolvement"
	FieldOverTime                 = "OverTime"
	FieldEducationField           = "EducationField"
	FieldYearsAtCompany           = "YearsAtCompany"
)

// RequiredFields lists every column ParseRecord reads, in a stable order.
var RequiredFields = []string{
	FieldGender,
	FieldJobRole,
	FieldEducation,
	FieldDepartment,
	FieldAttrition,
	FieldAge,
	FieldMonthlyIncome,
	FieldJobSatisfaction,
	FieldEnvironmentSatisfaction,
	FieldRelationshipSatisfaction,
	FieldWorkLifeBalance,
	FieldJobInvolvement,
	FieldOverTime,
	FieldEducationField,
	FieldYearsAtCompany,
}

// Row is one raw dataset row keyed by column header.
type Row map[string]string

// Record is a parsed employee row.
type Record struct {
	Gender                   string
	JobRole                  string
	Education                int
	Department               string
	Attrition                bool
	Age                      int
	MonthlyIncome            int
	JobSatisfaction          int
	EnvironmentSatisfaction  int
	RelationshipSatisfaction int
	WorkLifeBalance          int
	JobInvolvement           int
	OverTime                 bool
	EducationField           string
	YearsAtCompany           int
}

// Criteria holds the optional equality filters. An empty field is no constraint.
type Criteria struct {
	Gender     string `form:"gender" json:"gender,omitempty"`
	JobRole    string `form:"job_role" json:"job_role,omitempty"`
	Education  string `form:"education" json:"education,omitempty"`
	Department string `form:"department" json:"department,omitempty"`
}

// IsEmpty reports whether no constraint is set.
func (c Criteria) IsEmpty() bool {
	return c == Criteria{}
}

// Matches compares the raw row against every set constraint. Comparison is
// exact and case-sensitive.
func (c Criteria) Matches(row Row) bool {
	if c.Gender != "" && row[FieldGender] != c.Gender {
		return false
	}
	if c.JobRole != "" && row[FieldJobRole] != c.JobRole {
		return false
	}
	if c.Education != "" && row[FieldEducation] != c.Education {
		return false
	}
	if c.Department != "" && row[FieldDepartment] != c.Department {
		return false
	}
	return true
}

// Key returns a canonical string for the criteria, distinct for distinct criteria.
func (c Criteria) Key() string {
	var b strings.Builder
	for _, part := range []string{c.Gender, c.JobRole, c.Education, c.Department} {
		b.WriteString(escapeKeyPart(part))
		b.WriteByte('|')
	}
	return b.String()
}

func escapeKeyPart(s string) string {
	return strings.NewReplacer(`\`, `\\`, `|`, `\|`).Replace(s)
}

// EducationLevels maps the Education ordinal code to its label.
var EducationLevels = map[int]string{
	1: "Below College",
	2: "College",
	3: "Bachelor",
	4: "Master",
	5: "Doctor",
}

// EducationCodes returns the EducationLevels keys in ascending order.
func EducationCodes() []int {
	codes := make([]int, 0, len(EducationLevels))
	for code := range EducationLevels {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	return codes
}
