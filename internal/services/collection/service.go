package collection

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"chromactl/internal/domain"
	"chromactl/internal/logging"
)

var _ domain.CollectionService = (*Service)(nil)

// Service manages collections through a backing store.
type Service struct {
	store domain.CollectionStore
	log   *slog.Logger
}

// New returns a collection service backed by s. A nil logger discards output.
func New(s domain.CollectionStore, log *slog.Logger) *Service {
	if log == nil {
		log = logging.Discard()
	}
	return &Service{store: s, log: log}
}

// List returns every collection.
func (s *Service) List(ctx context.Context) ([]domain.Collection, error) {
	cols, err := s.store.ListCollections(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing collections: %w", err)
	}
	return cols, nil
}

// Delete removes name. With ignoreMissing a missing collection is not an error.
func (s *Service) Delete(ctx context.Context, name string, ignoreMissing bool) error {
	err := s.store.DeleteCollection(ctx, name)
	if ignoreMissing && errors.Is(err, domain.ErrCollectionNotFound) {
		s.log.Debug("collection already absent", "name", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting collection %q: %w", name, err)
	}
	return nil
}

// Create creates name and fails if it already exists.
func (s *Service) Create(ctx context.Context, name string, metadata map[string]any) (domain.Collection, error) {
	col, err := s.store.CreateCollection(ctx, name, metadata, false)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("creating collection %q: %w", name, err)
	}
	return col, nil
}

// GetOrCreate returns name, creating it first if needed.
func (s *Service) GetOrCreate(ctx context.Context, name string, metadata map[string]any) (domain.Collection, error) {
	col, err := s.store.CreateCollection(ctx, name, metadata, true)
	if err != nil {
		return domain.Collection{}, fmt.Errorf("getting or creating collection %q: %w", name, err)
	}
	return col, nil
}

// Add puts records into collection.
func (s *Service) Add(ctx context.Context, collection string, records []domain.Record) error {
	if err := s.store.Add(ctx, collection, records); err != nil {
		return fmt.Errorf("adding to %q: %w", collection, err)
	}
	return nil
}

// Get returns records by id, or all records when ids is empty.
func (s *Service) Get(ctx context.Context, collection string, ids []string) ([]domain.Record, error) {
	recs, err := s.store.Get(ctx, collection, ids)
	if err != nil {
		return nil, fmt.Errorf("getting from %q: %w", collection, err)
	}
	return recs, nil
}

// Query returns the n nearest records to embedding.
func (s *Service) Query(ctx context.Context, collection string, embedding []float32, n int) ([]domain.Match, error) {
	matches, err := s.store.Query(ctx, collection, embedding, n)
	if err != nil {
		return nil, fmt.Errorf("querying %q: %w", collection, err)
	}
	return matches, nil
}

// Count returns the number of records in collection.
func (s *Service) Count(ctx context.Context, collection string) (int, error) {
	n, err := s.store.Count(ctx, collection)
	if err != nil {
		return 0, fmt.Errorf("counting %q: %w", collection, err)
	}
	return n, nil
}
