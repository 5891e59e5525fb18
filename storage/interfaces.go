package storage

import "boxoffice-tracker/models"

// TableReader loads a raw table from a file.
type TableReader interface {
	Read(path string) (*models.Table, error)
}

// DatasetWriter exports a cleaned dataset to a file.
type DatasetWriter interface {
	WriteDataset(path string, ds *models.Dataset) error
}
