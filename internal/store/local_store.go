package store

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"

	"chromactl/internal/domain"
	"chromactl/internal/logging"
)

var _ domain.CollectionStore = (*Store)(nil)

// Store is a persistent local collection store rooted at a directory.
type Store struct {
	dir string
	log *slog.Logger
	mu  sync.Mutex

	enc *zstd.Encoder
	dec *zstd.Decoder
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger; the default discards output.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open opens the store at dir, creating the directory if needed.
func Open(dir string, opts ...Option) (*Store, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault), zstd.WithEncoderConcurrency(1))
	if err != nil {
		return nil, err
	}
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		_ = enc.Close()
		return nil, err
	}
	s := &Store{dir: dir, log: logging.Discard(), enc: enc, dec: dec}
	for _, opt := range opts {
		opt(s)
	}
	s.log.Debug("opened local store", "path", dir)
	return s, nil
}

// Close releases the codec resources.
func (s *Store) Close() error {
	s.dec.Close()
	return s.enc.Close()
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

// ListCollections returns all collections sorted by name.
func (s *Store) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadCatalog()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Collection, 0, len(c.Collections))
	for _, e := range c.Collections {
		out = append(out, e.Collection)
	}
	slices.SortFunc(out, func(a, b domain.Collection) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

// GetCollection returns the named collection.
func (s *Store) GetCollection(ctx context.Context, name string) (domain.Collection, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadCatalog()
	if err != nil {
		return domain.Collection{}, err
	}
	i := c.find(name)
	if i < 0 {
		return domain.Collection{}, notFound(name)
	}
	return c.Collections[i].Collection, nil
}

// CreateCollection creates name. If it exists, getOrCreate returns the
// existing collection, otherwise ErrCollectionExists.
func (s *Store) CreateCollection(ctx context.Context, name string, metadata map[string]any, getOrCreate bool) (domain.Collection, error) {
	if err := domain.ValidateName(name); err != nil {
		return domain.Collection{}, err
	}
	space, err := spaceFromMetadata(metadata)
	if err != nil {
		return domain.Collection{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadCatalog()
	if err != nil {
		return domain.Collection{}, err
	}
	if i := c.find(name); i >= 0 {
		if getOrCreate {
			return c.Collections[i].Collection, nil
		}
		return domain.Collection{}, fmt.Errorf("%w: %s", domain.ErrCollectionExists, name)
	}

	col := domain.Collection{
		ID:        uuid.NewString(),
		Name:      name,
		Metadata:  maps.Clone(metadata),
		Space:     space,
		CreatedAt: time.Now().UTC(),
	}
	c.Collections = append(c.Collections, entry{Collection: col})
	if err := s.saveCatalog(c); err != nil {
		return domain.Collection{}, err
	}
	s.log.Info("created collection", "name", name, "id", col.ID, "space", space)
	return col, nil
}

// DeleteCollection removes name and all of its records.
func (s *Store) DeleteCollection(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadCatalog()
	if err != nil {
		return err
	}
	i := c.find(name)
	if i < 0 {
		return notFound(name)
	}
	e := c.Collections[i]
	c.Collections = slices.Delete(c.Collections, i, i+1)
	if err := s.saveCatalog(c); err != nil {
		return err
	}
	if err := os.RemoveAll(s.collectionDir(e.ID)); err != nil {
		s.log.Warn("removing collection data", "name", name, "id", e.ID, "error", err)
	}
	s.log.Info("deleted collection", "name", name, "id", e.ID, "records", e.Count)
	return nil
}

// Add appends records. Ids already present in the collection are skipped.
func (s *Store) Add(ctx context.Context, collection string, records []domain.Record) error {
	dim, err := validateRecords(records)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadCatalog()
	if err != nil {
		return err
	}
	i := c.find(collection)
	if i < 0 {
		return notFound(collection)
	}
	e := &c.Collections[i]
	if e.Dimension > 0 && e.Dimension != dim {
		return &domain.DimensionError{ID: records[0].ID, Want: e.Dimension, Got: dim}
	}

	existing, err := s.readSegment(*e)
	if err != nil {
		return err
	}
	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[r.ID] = struct{}{}
	}
	added := 0
	for _, r := range records {
		if _, dup := seen[r.ID]; dup {
			s.log.Warn("skipping existing record id", "collection", collection, "id", r.ID)
			continue
		}
		existing = append(existing, r)
		added++
	}
	if added == 0 {
		return nil
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	segment, sum, err := s.writeSegment(e.ID, existing)
	if err != nil {
		return err
	}
	old := e.Segment
	e.Segment, e.Checksum, e.Count, e.Dimension = segment, sum, len(existing), dim
	if err := s.saveCatalog(c); err != nil {
		s.removeSegment(e.ID, segment)
		return err
	}
	if old != segment {
		s.removeSegment(e.ID, old)
	}
	s.log.Debug("added records", "collection", collection, "added", added, "count", e.Count)
	return nil
}

// Get returns records for ids in request order, omitting unknown ids. With no
// ids it returns every record in insertion order.
func (s *Store) Get(ctx context.Context, collection string, ids []string) ([]domain.Record, error) {
	records, _, err := s.records(collection)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return records, nil
	}
	byID := make(map[string]domain.Record, len(records))
	for _, r := range records {
		byID[r.ID] = r
	}
	out := make([]domain.Record, 0, len(ids))
	for _, id := range ids {
		if r, ok := byID[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

// Query returns the n records closest to embedding.
func (s *Store) Query(ctx context.Context, collection string, embedding []float32, n int) ([]domain.Match, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", domain.ErrInvalidRecord, n)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: empty query embedding", domain.ErrInvalidRecord)
	}
	records, e, err := s.records(collection)
	if err != nil {
		return nil, err
	}
	if e.Dimension > 0 && e.Dimension != len(embedding) {
		return nil, &domain.DimensionError{ID: "query", Want: e.Dimension, Got: len(embedding)}
	}
	return rank(ctx, records, embedding, n, e.Space)
}

// Count returns the number of records in collection.
func (s *Store) Count(ctx context.Context, collection string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadCatalog()
	if err != nil {
		return 0, err
	}
	i := c.find(collection)
	if i < 0 {
		return 0, notFound(collection)
	}
	return c.Collections[i].Count, nil
}

func (s *Store) records(collection string) ([]domain.Record, entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := s.loadCatalog()
	if err != nil {
		return nil, entry{}, err
	}
	i := c.find(collection)
	if i < 0 {
		return nil, entry{}, notFound(collection)
	}
	records, err := s.readSegment(c.Collections[i])
	if err != nil {
		return nil, entry{}, err
	}
	return records, c.Collections[i], nil
}

// validateRecords checks a batch and returns its common dimension.
func validateRecords(records []domain.Record) (int, error) {
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: no records", domain.ErrInvalidRecord)
	}
	dim := len(records[0].Embedding)
	ids := make(map[string]struct{}, len(records))
	for _, r := range records {
		if r.ID == "" {
			return 0, fmt.Errorf("%w: empty id", domain.ErrInvalidRecord)
		}
		if _, dup := ids[r.ID]; dup {
			return 0, fmt.Errorf("%w: duplicate id %q in batch", domain.ErrInvalidRecord, r.ID)
		}
		ids[r.ID] = struct{}{}
		if len(r.Embedding) == 0 {
			return 0, fmt.Errorf("%w: record %q has no embedding", domain.ErrInvalidRecord, r.ID)
		}
		if len(r.Embedding) != dim {
			return 0, &domain.DimensionError{ID: r.ID, Want: dim, Got: len(r.Embedding)}
		}
	}
	return dim, nil
}

func spaceFromMetadata(metadata map[string]any) (domain.Space, error) {
	v, ok := metadata[domain.SpaceMetadataKey]
	if !ok {
		return domain.SpaceL2, nil
	}
	str, ok := v.(string)
	if !ok {
		return "", &domain.SpaceError{Value: fmt.Sprint(v)}
	}
	return domain.ParseSpace(str)
}
