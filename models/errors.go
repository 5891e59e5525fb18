package models

import (
	"errors"
	"fmt"
)

var (
	ErrFileNotFound      = errors.New("dataset file not found")
	ErrEmptyDataset      = errors.New("dataset is empty")
	ErrNoMatchingRecords = errors.New("no records match the current filters")
	ErrInvalidCriteria   = errors.New("invalid filter criteria")
	ErrMissingColumn     = errors.New("required column missing")
)

// LoadError wraps any load failure that is neither a missing file nor an
// empty dataset.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("error loading data from %q: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
