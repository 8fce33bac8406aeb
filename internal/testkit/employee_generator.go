package testkit

import (
	"encoding/csv"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"

	"hrdash/domain/employee"
)

// EmployeeGeneratorConfig configures the synthetic employee dataset
type EmployeeGeneratorConfig struct {
	Rows          int     `json:"rows"`
	AttritionBase float64 `json:"attrition_base"`
	Seed          int64   `json:"seed"`
}

// DefaultEmployeeConfig returns defaults close to the public IBM attrition sample
func DefaultEmployeeConfig() EmployeeGeneratorConfig {
	return EmployeeGeneratorConfig{
		Rows:          1470,
		AttritionBase: 0.12,
		Seed:          42,
	}
}

// Headers is the column order written by WriteCSV
var Headers = append([]string{"EmployeeNumber"}, employee.RequiredFields...)

var (
	departmentRoles = map[string][]string{
		"Human Resources":        {"Human Resources", "Manager"},
		"Research & Development": {"Healthcare Representative", "Laboratory Technician", "Manager", "Manufacturing Director", "Research Director", "Research Scientist"},
		"Sales":                  {"Manager", "Sales Executive", "Sales Representative"},
	}
	departments     = []string{"Human Resources", "Research & Development", "Sales"}
	educationFields = []string{"Human Resources", "Life Sciences", "Marketing", "Medical", "Other", "Technical Degree"}
)

// EmployeeGenerator produces deterministic employee rows for a seed
type EmployeeGenerator struct {
	config EmployeeGeneratorConfig
	rng    *rand.Rand
}

// NewEmployeeGenerator creates a new generator
func NewEmployeeGenerator(config EmployeeGeneratorConfig) *EmployeeGenerator {
	return &EmployeeGenerator{
		config: config,
		rng:    rand.New(rand.NewSource(config.Seed)),
	}
}

// Generate returns config.Rows raw rows, all of which parse cleanly
func (g *EmployeeGenerator) Generate() []employee.Row {
	rows := make([]employee.Row, 0, g.config.Rows)
	for i := 0; i < g.config.Rows; i++ {
		rows = append(rows, g.generateRow(i+1))
	}
	return rows
}

func (g *EmployeeGenerator) generateRow(number int) employee.Row {
	dept := departments[g.rng.Intn(len(departments))]
	roles := departmentRoles[dept]
	role := roles[g.rng.Intn(len(roles))]

	age := 18 + g.rng.Intn(43) // 18-60
	years := g.rng.Intn(age - 17)
	if years > 40 {
		years = 40
	}
	overtime := g.rng.Float64() < 0.28
	jobSat := 1 + g.rng.Intn(4)

	// Overtime, low satisfaction and short tenure push attrition up.
	p := g.config.AttritionBase
	if overtime {
		p += 0.15
	}
	if jobSat == 1 {
		p += 0.08
	}
	if years < 2 {
		p += 0.1
	}
	attrition := g.rng.Float64() < p

	gender := "Male"
	if g.rng.Float64() < 0.4 {
		gender = "Female"
	}

	return employee.Row{
		"EmployeeNumber":                       strconv.Itoa(number),
		employee.FieldGender:                   gender,
		employee.FieldJobRole:                  role,
		employee.FieldEducation:                strconv.Itoa(1 + g.rng.Intn(5)),
		employee.FieldDepartment:               dept,
		employee.FieldAttrition:                yesNo(attrition),
		employee.FieldAge:                      strconv.Itoa(age),
		employee.FieldMonthlyIncome:            strconv.Itoa(1000 + g.rng.Intn(19000)),
		employee.FieldJobSatisfaction:          strconv.Itoa(jobSat),
		employee.FieldEnvironmentSatisfaction:  strconv.Itoa(1 + g.rng.Intn(4)),
		employee.FieldRelationshipSatisfaction: strconv.Itoa(1 + g.rng.Intn(4)),
		employee.FieldWorkLifeBalance:          strconv.Itoa(1 + g.rng.Intn(4)),
		employee.FieldJobInvolvement:           strconv.Itoa(1 + g.rng.Intn(4)),
		employee.FieldOverTime:                 yesNo(overtime),
		employee.FieldEducationField:           educationFields[g.rng.Intn(len(educationFields))],
		employee.FieldYearsAtCompany:           strconv.Itoa(years),
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

// ValidRow returns a row that parses cleanly, with overrides applied.
// Use delete() on the result to drop a column.
func ValidRow(overrides map[string]string) employee.Row {
	row := employee.Row{
		employee.FieldGender:                   "Female",
		employee.FieldJobRole:                  "Research Scientist",
		employee.FieldEducation:                "3",
		employee.FieldDepartment:               "Research & Development",
		employee.FieldAttrition:                "No",
		employee.FieldAge:                      "35",
		employee.FieldMonthlyIncome:            "5000",
		employee.FieldJobSatisfaction:          "3",
		employee.FieldEnvironmentSatisfaction:  "3",
		employee.FieldRelationshipSatisfaction: "3",
		employee.FieldWorkLifeBalance:          "3",
		employee.FieldJobInvolvement:           "3",
		employee.FieldOverTime:                 "No",
		employee.FieldEducationField:           "Life Sciences",
		employee.FieldYearsAtCompany:           "5",
	}
	for k, v := range overrides {
		row[k] = v
	}
	return row
}

// WriteCSV writes rows with the given header order. Columns a row lacks are
// written as empty cells.
func WriteCSV(w io.Writer, headers []string, rows []employee.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(headers); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	record := make([]string, len(headers))
	for i, row := range rows {
		for j, h := range headers {
			record[j] = row[h]
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSVFile writes rows to path using the standard Headers
func WriteCSVFile(path string, rows []employee.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := WriteCSV(f, Headers, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
