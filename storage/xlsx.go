package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"boxoffice-tracker/models"
)

const exportSheet = "Movies"

// XLSXReader reads the first worksheet of a workbook as a table.
type XLSXReader struct{}

// NewXLSXReader returns a workbook reader.
func NewXLSXReader() *XLSXReader { return &XLSXReader{} }

// Read parses the first sheet of the workbook at path.
func (r *XLSXReader) Read(path string) (*models.Table, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", models.ErrFileNotFound, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("xlsx: open %q: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: %s has no worksheets", models.ErrEmptyDataset, path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("xlsx: read sheet %q: %w", sheets[0], err)
	}
	return buildTable(path, rows)
}

// XLSXWriter exports a dataset to a single-sheet workbook.
type XLSXWriter struct{}

// NewXLSXWriter returns a workbook writer.
func NewXLSXWriter() *XLSXWriter { return &XLSXWriter{} }

// WriteDataset writes ds to path with the same layout as CSVWriter. Cells are
// stored as text so the export reloads losslessly.
func (w *XLSXWriter) WriteDataset(path string, ds *models.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("xlsx: create output dir: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return fmt.Errorf("xlsx: rename sheet: %w", err)
	}

	rows := append([][]string{ds.ExportHeader()}, ds.ExportRecords()...)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("xlsx: cell name: %w", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return fmt.Errorf("xlsx: write row %d: %w", i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("xlsx: save %q: %w", path, err)
	}
	return nil
}
