package store

import (
	"fmt"
	"path/filepath"

	"chromactl/internal/domain"
)

const (
	catalogFile    = "catalog.json"
	catalogVersion = 1
)

// catalog is the on-disk index of collections.
type catalog struct {
	Version     int     `json:"version"`
	Collections []entry `json:"collections"`
}

// entry is a collection plus the bookkeeping for its current segment.
type entry struct {
	domain.Collection
	Segment  string `json:"segment,omitempty"`
	Checksum string `json:"checksum,omitempty"`
	Count    int    `json:"count"`
}

func (c *catalog) find(name string) int {
	for i := range c.Collections {
		if c.Collections[i].Name == name {
			return i
		}
	}
	return -1
}

func (s *Store) loadCatalog() (*catalog, error) {
	c := &catalog{Version: catalogVersion}
	if _, err := readJSON(filepath.Join(s.dir, catalogFile), c); err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	if c.Version > catalogVersion {
		return nil, fmt.Errorf("catalog version %d is newer than supported version %d", c.Version, catalogVersion)
	}
	return c, nil
}

func (s *Store) saveCatalog(c *catalog) error {
	c.Version = catalogVersion
	if err := writeJSON(filepath.Join(s.dir, catalogFile), c, 0o600); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

func notFound(name string) error {
	return fmt.Errorf("%w: %s", domain.ErrCollectionNotFound, name)
}
