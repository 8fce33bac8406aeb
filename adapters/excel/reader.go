package excel

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"hrdash/domain/employee"
	"hrdash/internal"
	"hrdash/internal/errors"

	"github.com/xuri/excelize/v2"
)

const utf8BOM = "\ufeff"

// DataReader handles reading Excel and CSV files
type DataReader struct {
	config   ReaderConfig
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files.
// Anything that is not .xlsx/.xlsm is read as CSV.
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xlsm" {
		fileType = "xlsx"
	}
	if config.Comma == 0 {
		config.Comma = ','
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{config: config, fileType: fileType, logger: logger}
}

// Path returns the file this reader reads
func (r *DataReader) Path() string {
	return r.config.FilePath
}

// ReadData reads the whole file into a DatasetTable
func (r *DataReader) ReadData() (*DatasetTable, error) {
	r.logger.Trace("[DataReader] reading %s file: %s", r.fileType, r.config.FilePath)

	switch r.fileType {
	case "csv":
		return r.readCSVData()
	case "xlsx":
		return r.readExcelData()
	default:
		return nil, errors.InternalError(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
}

// readExcelData reads the configured sheet (or the first one) into structured format
func (r *DataReader) readExcelData() (*DatasetTable, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.config.FilePath)
	if err != nil {
		return nil, errors.SourceUnavailable(r.config.FilePath, err)
	}
	defer f.Close()

	sheet := r.config.Sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.SourceUnavailable(r.config.FilePath, fmt.Errorf("workbook has no sheets"))
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.SourceUnavailable(r.config.FilePath, fmt.Errorf("failed to read sheet %s: %w", sheet, err))
	}
	r.logger.Debug("[DataReader] sheet %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData() (*DatasetTable, error) {
	file, err := os.Open(r.config.FilePath)
	if err != nil {
		return nil, errors.SourceUnavailable(r.config.FilePath, err)
	}
	defer file.Close()

	readStart := time.Now()
	rows, err := ReadCSV(file, r.config.Comma)
	if err != nil {
		return nil, errors.SourceUnavailable(r.config.FilePath, err)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	return r.processRows(rows)
}

// ReadCSV reads every record from src, skipping a UTF-8 byte order mark.
// Rows may have differing field counts; a missing trailing cell surfaces later
// as a missing column.
func ReadCSV(src io.Reader, comma rune) ([][]string, error) {
	br := bufio.NewReader(src)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && string(prefix) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}
	reader := csv.NewReader(br)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return rows, nil
}

// processRows converts raw string rows into a DatasetTable. Header names are
// trimmed and a leading byte order mark is dropped; cell values are kept as-is
// so filters compare against the exact source text.
func (r *DataReader) processRows(rows [][]string) (*DatasetTable, error) {
	if len(rows) == 0 {
		return nil, errors.SourceUnavailable(r.config.FilePath, fmt.Errorf("file has no header row"))
	}

	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		if i == 0 {
			header = strings.TrimPrefix(header, utf8BOM)
		}
		headers[i] = strings.TrimSpace(header)
	}

	dataRows := make([]employee.Row, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(employee.Row, len(headers))

		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = cell
			}
		}

		dataRows = append(dataRows, rowData)
	}

	r.logger.Trace("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &DatasetTable{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}
