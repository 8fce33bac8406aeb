package excel

import (
	"context"

	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/ports"
)

// FileSource serves employee records from a CSV or XLSX file. The file is
// re-read on every Load, so edits to it show up without a restart.
type FileSource struct {
	reader *DataReader
	logger *internal.Logger
}

var _ ports.EmployeeSource = (*FileSource)(nil)

// NewFileSource creates a file-backed employee source
func NewFileSource(config ReaderConfig, logger *internal.Logger) *FileSource {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &FileSource{
		reader: NewDataReader(config, logger),
		logger: logger,
	}
}

// Name identifies the source in logs and metrics
func (s *FileSource) Name() string {
	return "file"
}

// Load reads the file, keeps rows matching criteria and parses them.
// Only matching rows are parsed, so a malformed row outside the filter does
// not fail the call.
func (s *FileSource) Load(ctx context.Context, criteria employee.Criteria) ([]employee.Record, error) {
	table, err := s.reader.ReadData()
	if err != nil {
		return nil, err
	}

	filter := !criteria.IsEmpty()
	records := make([]employee.Record, 0, len(table.Rows))
	for i, row := range table.Rows {
		if i%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		if filter && !criteria.Matches(row) {
			continue
		}
		rec, err := employee.ParseRecord(row, i+1)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if filter {
		s.logger.Debug("[FileSource] %s: %d of %d rows matched %+v", s.reader.Path(), len(records), len(table.Rows), criteria)
	} else {
		s.logger.Debug("[FileSource] %s: loaded %d rows", s.reader.Path(), len(records))
	}
	return records, nil
}

// Probe reads the file once and returns the required columns its header lacks.
// It fails when the file cannot be read at all.
func (s *FileSource) Probe() ([]string, error) {
	table, err := s.reader.ReadData()
	if err != nil {
		return nil, err
	}
	return table.MissingColumns(employee.RequiredFields), nil
}
