package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"boxoffice-tracker/models"
	"boxoffice-tracker/utils"
)

// TableReader reads a raw table from a file.
type TableReader interface {
	Read(path string) (*models.Table, error)
}

// Loader reads a table, cleans it and maps failures to the load error
// taxonomy: ErrFileNotFound, ErrEmptyDataset or *models.LoadError.
type Loader struct {
	logger   *utils.Logger
	cleaner  *Cleaner
	readers  map[string]TableReader
	fallback TableReader
}

// NewLoader creates a Loader. readers is keyed by lower-case file extension
// (".csv", ".xlsx", ...); fallback handles every other extension.
func NewLoader(logger *utils.Logger, fallback TableReader, readers map[string]TableReader) *Loader {
	return &Loader{
		logger:   logger,
		cleaner:  NewCleaner(logger),
		readers:  readers,
		fallback: fallback,
	}
}

// Load reads and cleans the dataset at path. A failure never yields a
// partially initialized dataset.
func (l *Loader) Load(path string) (*models.Dataset, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		l.logger.Error("[loader] Dataset file %q not found", path)
		return nil, fmt.Errorf("%w: %s", models.ErrFileNotFound, path)
	case err != nil:
		return nil, &models.LoadError{Path: path, Err: err}
	case info.IsDir():
		return nil, &models.LoadError{Path: path, Err: errors.New("path is a directory")}
	case info.Size() == 0:
		l.logger.Error("[loader] Dataset %q is empty", path)
		return nil, fmt.Errorf("%w: %s", models.ErrEmptyDataset, path)
	}

	table, err := l.readerFor(path).Read(path)
	if err != nil {
		return nil, l.classify(path, err)
	}

	l.logger.Info("[loader] Read %d rows × %d columns from %s", len(table.Rows), len(table.Columns), path)
	return l.FromTable(table)
}

// FromTable cleans an already-read table, e.g. one fetched from a database.
func (l *Loader) FromTable(table *models.Table) (*models.Dataset, error) {
	for _, col := range []string{models.ColWorldwide, models.ColYear} {
		if !table.HasColumn(col) {
			return nil, &models.LoadError{
				Path: table.Source,
				Err:  fmt.Errorf("%w: %q", models.ErrMissingColumn, col),
			}
		}
	}

	ds := l.cleaner.Clean(table)
	if ds.Empty() {
		l.logger.Error("[loader] No row in %s has both a worldwide figure and a year", table.Source)
		return nil, fmt.Errorf("%w: no valid rows in %s", models.ErrEmptyDataset, table.Source)
	}
	return ds, nil
}

func (l *Loader) readerFor(path string) TableReader {
	if r, ok := l.readers[strings.ToLower(filepath.Ext(path))]; ok {
		return r
	}
	return l.fallback
}

func (l *Loader) classify(path string, err error) error {
	if errors.Is(err, models.ErrFileNotFound) || errors.Is(err, models.ErrEmptyDataset) {
		l.logger.Error("[loader] %v", err)
		return err
	}
	l.logger.Error("[loader] Error loading data: %v", err)
	return &models.LoadError{Path: path, Err: err}
}
