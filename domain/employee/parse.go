package employee

import (
	"fmt"
	"strconv"
	"strings"

	"hrdash/internal/errors"
)

// ParseRecord converts a raw row into a Record. line is the 1-based data row
// number used in error messages. Any missing column, non-integer value,
// out-of-range ordinal or non Yes/No flag is a malformed-row error.
func ParseRecord(row Row, line int) (Record, error) {
	p := rowParser{row: row, line: line}

	rec := Record{
		Gender:                   p.text(FieldGender),
		JobRole:                  p.text(FieldJobRole),
		Education:                p.intIn(FieldEducation, 1, 5),
		Department:               p.text(FieldDepartment),
		Attrition:                p.yesNo(FieldAttrition),
		Age:                      p.intIn(FieldAge, 0, -1),
		MonthlyIncome:            p.intIn(FieldMonthlyIncome, 0, -1),
		JobSatisfaction:          p.intIn(FieldJobSatisfaction, 1, 4),
		EnvironmentSatisfaction:  p.intIn(FieldEnvironmentSatisfaction, 1, 4),
		RelationshipSatisfaction: p.intIn(FieldRelationshipSatisfaction, 1, 4),
		WorkLifeBalance:          p.intIn(FieldWorkLifeBalance, 1, 4),
		JobInvolvement:           p.intIn(FieldJobInvolvement, 1, 4),
		OverTime:                 p.yesNo(FieldOverTime),
		EducationField:           p.text(FieldEducationField),
		YearsAtCompany:           p.intIn(FieldYearsAtCompany, 0, -1),
	}
	if p.err != nil {
		return Record{}, p.err
	}
	return rec, nil
}

// rowParser keeps the first error so ParseRecord reads as a single struct literal.
type rowParser struct {
	row  Row
	line int
	err  error
}

func (p *rowParser) raw(field string) (string, bool) {
	if p.err != nil {
		return "", false
	}
	v, ok := p.row[field]
	if !ok {
		p.err = errors.New(errors.CodeMalformedRow, fmt.Sprintf("row %d: missing column %s", p.line, field))
		return "", false
	}
	return v, true
}

func (p *rowParser) text(field string) string {
	v, _ := p.raw(field)
	return v
}

// intIn parses an integer and checks lo <= n, and n <= hi when hi >= lo.
func (p *rowParser) intIn(field string, lo, hi int) int {
	v, ok := p.raw(field)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || n < lo || (hi >= lo && n > hi) {
		p.err = errors.MalformedRow(p.line, field, v)
		return 0
	}
	return n
}

func (p *rowParser) yesNo(field string) bool {
	v, ok := p.raw(field)
	if !ok {
		return false
	}
	switch v {
	case "Yes":
		return true
	case "No":
		return false
	default:
		p.err = errors.MalformedRow(p.line, field, v)
		return false
	}
}
