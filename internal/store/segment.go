package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"chromactl/internal/digest"
	"chromactl/internal/domain"
)

// Segments are immutable: each write produces a new file named after its
// checksum, and the catalog is switched to it before the old one is removed.

func (s *Store) collectionDir(id string) string {
	return filepath.Join(s.dir, id)
}

func (s *Store) readSegment(e entry) ([]domain.Record, error) {
	if e.Segment == "" {
		return nil, nil
	}
	path := filepath.Join(s.collectionDir(e.ID), e.Segment)
	b, err := readFile(path)
	if err != nil {
		return nil, err
	}
	if b == nil || !digest.Verify(b, e.Checksum) {
		return nil, fmt.Errorf("%w: collection %s segment %s", domain.ErrCorruptSegment, e.Name, e.Segment)
	}
	raw, err := s.dec.DecodeAll(b, nil)
	if err != nil {
		return nil, fmt.Errorf("decompressing segment %s: %w", path, err)
	}
	var records []domain.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("decoding segment %s: %w", path, err)
	}
	return records, nil
}

// writeSegment persists records and returns the new segment file name and checksum.
func (s *Store) writeSegment(id string, records []domain.Record) (string, string, error) {
	raw, err := json.Marshal(records)
	if err != nil {
		return "", "", err
	}
	b := s.enc.EncodeAll(raw, nil)
	sum := digest.Sum(b)
	name := "records-" + sum[:16] + ".json.zst"

	dir := s.collectionDir(id)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", "", err
	}
	if err := writeFile(filepath.Join(dir, name), b, 0o600); err != nil {
		return "", "", fmt.Errorf("writing segment: %w", err)
	}
	return name, sum, nil
}

func (s *Store) removeSegment(id, name string) {
	if name == "" {
		return
	}
	if err := os.Remove(filepath.Join(s.collectionDir(id), name)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("removing stale segment", "collection_id", id, "segment", name, "error", err)
	}
}
