package json

import (
	"path/filepath"

	"github.com/drakos74/go-calibration/internal/storage"
	"github.com/rs/zerolog/log"
)

// BlobStorage stores each key as a json file in the table directory.
type BlobStorage struct {
	path  string
	table string
	debug bool
}

// NewJsonBlob creates a blob storage for the given table under the root path.
// An empty root falls back to storage.DefaultDir.
func NewJsonBlob(root, table string, debug bool) *BlobStorage {
	if root == "" {
		root = storage.DefaultDir
	}
	return &BlobStorage{
		path:  root,
		table: table,
		debug: debug,
	}
}

// Dir returns the directory the files are stored in.
func (s BlobStorage) Dir() string {
	return filepath.Join(s.path, s.table)
}

func (s BlobStorage) Store(k storage.Key, value interface{}) error {
	p := s.Dir()
	err := Save(p, k.Path(), value)
	if err == nil && s.debug {
		log.Debug().Str("path", p).Str("file", k.Path()).Msg("stored json file")
	}
	return err
}

func (s BlobStorage) Load(k storage.Key, value interface{}) error {
	return Load(s.Dir(), k.Path(), value)
}
