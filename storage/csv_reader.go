package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"boxoffice-tracker/models"
)

// CSVReader reads a delimited table with a header row.
type CSVReader struct {
	Comma rune
}

// NewCSVReader returns a comma-delimited reader.
func NewCSVReader() *CSVReader {
	return &CSVReader{Comma: ','}
}

// NewTSVReader returns a tab-delimited reader.
func NewTSVReader() *CSVReader {
	return &CSVReader{Comma: '\t'}
}

// Read parses the file at path into a Table.
func (r *CSVReader) Read(path string) (*models.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	if r.Comma != 0 {
		cr.Comma = r.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %q: %w", path, err)
	}
	return buildTable(path, records)
}
