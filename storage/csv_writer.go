package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"boxoffice-tracker/models"
)

// CSVWriter exports a dataset as a delimited table: the source columns
// verbatim followed by the derived columns.
type CSVWriter struct {
	Comma rune
}

// NewCSVWriter returns a comma-delimited writer.
func NewCSVWriter() *CSVWriter {
	return &CSVWriter{Comma: ','}
}

// WriteDataset creates (or truncates) path and writes ds to it.
// Intermediate directories are created automatically.
func (c *CSVWriter) WriteDataset(path string, ds *models.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if c.Comma != 0 {
		w.Comma = c.Comma
	}

	if err := w.Write(ds.ExportHeader()); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: write header: %w", err)
	}
	if err := w.WriteAll(ds.ExportRecords()); err != nil {
		_ = f.Close()
		return fmt.Errorf("csv: write rows: %w", err)
	}

	return f.Close()
}
