package excel

import "hrdash/domain/employee"

// DatasetTable is a whole tabular file read into memory
type DatasetTable struct {
	Headers []string       // Column headers, trimmed
	Rows    []employee.Row // Data rows in file order
}

// MissingColumns returns the names in required that the header row lacks
func (t *DatasetTable) MissingColumns(required []string) []string {
	present := make(map[string]bool, len(t.Headers))
	for _, h := range t.Headers {
		present[h] = true
	}
	var missing []string
	for _, name := range required {
		if !present[name] {
			missing = append(missing, name)
		}
	}
	return missing
}
