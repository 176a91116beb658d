package analysis

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"
)

// Cache loads the dataset at a fixed path and reuses the parsed Table until
// the file's size or modification time changes.
type Cache struct {
	path string

	mu      sync.Mutex
	modTime time.Time
	size    int64
	table   *Table
}

// NewCache returns a Cache for the CSV file at path.
func NewCache(path string) *Cache { return &Cache{path: path} }

// Path returns the dataset path.
func (c *Cache) Path() string { return c.path }

// Table returns the current Table, reloading it when the file changed.
func (c *Cache) Table() (*Table, error) {
	info, err := os.Stat(c.path)
	if err != nil {
		c.reset()
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: c.path, Err: err}
		}
		return nil, fmt.Errorf("stat dataset: %w", err)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.table != nil && info.ModTime().Equal(c.modTime) && info.Size() == c.size {
		return c.table, nil
	}
	t, err := Load(c.path)
	if err != nil {
		c.table = nil
		return nil, err
	}
	c.table, c.modTime, c.size = t, info.ModTime(), info.Size()
	return t, nil
}

func (c *Cache) reset() {
	c.mu.Lock()
	c.table = nil
	c.mu.Unlock()
}
