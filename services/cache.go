package services

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"boxoffice-tracker/models"
	"boxoffice-tracker/utils"
)

// DatasetLoader loads a cleaned dataset from a path.
type DatasetLoader interface {
	Load(path string) (*models.Dataset, error)
}

type cacheEntry struct {
	modTime time.Time
	size    int64
	ds      *models.Dataset
}

// DatasetCache memoizes loaded datasets by path and file modification
// state. Cached datasets are shared and must be treated as read-only.
// It is safe for concurrent use.
type DatasetCache struct {
	loader DatasetLoader
	logger *utils.Logger

	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewDatasetCache wraps loader with memoization.
func NewDatasetCache(loader DatasetLoader, logger *utils.Logger) *DatasetCache {
	return &DatasetCache{
		loader:  loader,
		logger:  logger,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached dataset for path when the file is unchanged,
// otherwise it loads and caches a fresh one. Failures are never cached.
func (c *DatasetCache) Get(path string) (*models.Dataset, error) {
	info, err := os.Stat(path)
	if err != nil {
		c.Invalidate(path)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", models.ErrFileNotFound, path)
		}
		return nil, &models.LoadError{Path: path, Err: err}
	}

	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()
	if ok && entry.modTime.Equal(info.ModTime()) && entry.size == info.Size() {
		c.logger.Debug("[cache] Hit for %s", path)
		return entry.ds, nil
	}

	c.logger.Debug("[cache] Miss for %s", path)
	ds, err := c.loader.Load(path)
	if err != nil {
		c.Invalidate(path)
		return nil, err
	}

	c.mu.Lock()
	c.entries[path] = cacheEntry{modTime: info.ModTime(), size: info.Size(), ds: ds}
	c.mu.Unlock()
	return ds, nil
}

// Invalidate drops the cached dataset for path so the next Get reloads it.
func (c *DatasetCache) Invalidate(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
}

// Len returns the number of cached datasets.
func (c *DatasetCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
