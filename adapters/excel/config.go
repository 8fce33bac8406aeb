package excel

// ReaderConfig holds configuration for a tabular file data source
type ReaderConfig struct {
	FilePath string `json:"file_path"`
	// Sheet selects the worksheet of an .xlsx file; empty means the first sheet.
	Sheet string `json:"sheet"`
	// Comma is the CSV field delimiter; zero means ','.
	Comma rune `json:"comma"`
}

// DefaultReaderConfig returns sensible defaults for reading path
func DefaultReaderConfig(path string) ReaderConfig {
	return ReaderConfig{
		FilePath: path,
		Comma:    ',',
	}
}
