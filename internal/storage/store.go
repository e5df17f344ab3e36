package storage

import (
	"errors"
	"fmt"
)

// ReportDir is the table the evaluation reports are stored in.
const ReportDir = "reports"

var (
	// DefaultDir is the root directory for file based storage.
	DefaultDir = "file-storage"
)

var (
	NotFoundErr     = errors.New("not found")
	CouldNotLoadErr = errors.New("could not load")
)

// Key is the storage key for a general implementation
type Key struct {
	Dataset string `json:"dataset"`
	Label   string `json:"label"`
}

// Path returns the file name for the key.
func (k Key) Path() string {
	if k.Label == "" {
		return k.Dataset
	}
	return fmt.Sprintf("%s_%s", k.Dataset, k.Label)
}

// Persistence stores and loads values by key.
type Persistence interface {
	Store(k Key, value interface{}) error
	Load(k Key, value interface{}) error
}
