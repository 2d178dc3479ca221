package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource loads a price catalog from a YAML file. It backs local
// development and tests where no pricing backend is reachable.
type FileSource struct {
	path string
}

// NewFileSource returns a FileSource reading the given YAML file on every
// Load call, so edits are picked up without a restart.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Load reads and validates the catalog file.
func (s *FileSource) Load(ctx context.Context) (*PriceCatalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", s.path, err)
	}

	var c PriceCatalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Join(ErrInvalidCatalog, err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return &c, nil
}
