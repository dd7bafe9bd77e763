package remote

import (
	"cmp"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"

	"chromactl/internal/domain"
)

var _ domain.CollectionStore = (*HTTP)(nil)

type collectionJSON struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Metadata  map[string]any `json:"metadata"`
	Dimension int            `json:"dimension,omitempty"`
}

func (c collectionJSON) toDomain() domain.Collection {
	col := domain.Collection{
		ID:        c.ID,
		Name:      c.Name,
		Metadata:  c.Metadata,
		Dimension: c.Dimension,
		Space:     domain.SpaceL2,
	}
	if v, ok := c.Metadata[domain.SpaceMetadataKey].(string); ok {
		if s, err := domain.ParseSpace(v); err == nil {
			col.Space = s
		}
	}
	return col
}

type createRequest struct {
	Name        string         `json:"name"`
	Metadata    map[string]any `json:"metadata,omitempty"`
	GetOrCreate bool           `json:"get_or_create"`
}

type addRequest struct {
	IDs        []string         `json:"ids"`
	Embeddings [][]float32      `json:"embeddings"`
	Documents  []*string        `json:"documents,omitempty"`
	Metadatas  []map[string]any `json:"metadatas,omitempty"`
}

type getRequest struct {
	IDs     []string `json:"ids,omitempty"`
	Include []string `json:"include"`
}

type getResponse struct {
	IDs        []string         `json:"ids"`
	Embeddings [][]float32      `json:"embeddings"`
	Documents  []*string        `json:"documents"`
	Metadatas  []map[string]any `json:"metadatas"`
}

type queryRequest struct {
	QueryEmbeddings [][]float32 `json:"query_embeddings"`
	NResults        int         `json:"n_results"`
	Include         []string    `json:"include"`
}

type queryResponse struct {
	IDs        [][]string         `json:"ids"`
	Distances  [][]float32        `json:"distances"`
	Embeddings [][][]float32      `json:"embeddings"`
	Documents  [][]*string        `json:"documents"`
	Metadatas  [][]map[string]any `json:"metadatas"`
}

var recordFields = []string{"embeddings", "documents", "metadatas"}

// ListCollections returns all collections sorted by name.
func (c *HTTP) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	var raw []collectionJSON
	if err := c.do(ctx, http.MethodGet, "/collections", nil, &raw); err != nil {
		return nil, err
	}
	out := make([]domain.Collection, 0, len(raw))
	for _, r := range raw {
		out = append(out, r.toDomain())
	}
	slices.SortFunc(out, func(a, b domain.Collection) int { return cmp.Compare(a.Name, b.Name) })
	return out, nil
}

// GetCollection returns the named collection.
func (c *HTTP) GetCollection(ctx context.Context, name string) (domain.Collection, error) {
	var raw collectionJSON
	if err := c.do(ctx, http.MethodGet, "/collections/"+url.PathEscape(name), nil, &raw); err != nil {
		return domain.Collection{}, err
	}
	return raw.toDomain(), nil
}

// CreateCollection creates name on the server.
func (c *HTTP) CreateCollection(ctx context.Context, name string, metadata map[string]any, getOrCreate bool) (domain.Collection, error) {
	if err := domain.ValidateName(name); err != nil {
		return domain.Collection{}, err
	}
	var raw collectionJSON
	req := createRequest{Name: name, Metadata: metadata, GetOrCreate: getOrCreate}
	if err := c.do(ctx, http.MethodPost, "/collections", req, &raw); err != nil {
		return domain.Collection{}, err
	}
	return raw.toDomain(), nil
}

// DeleteCollection deletes name on the server.
func (c *HTTP) DeleteCollection(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/collections/"+url.PathEscape(name), nil, nil)
}

// Add uploads records to collection.
func (c *HTTP) Add(ctx context.Context, collection string, records []domain.Record) error {
	if len(records) == 0 {
		return fmt.Errorf("%w: no records", domain.ErrInvalidRecord)
	}
	id, err := c.collectionID(ctx, collection)
	if err != nil {
		return err
	}
	req := addRequest{
		IDs:        make([]string, len(records)),
		Embeddings: make([][]float32, len(records)),
		Documents:  make([]*string, len(records)),
		Metadatas:  make([]map[string]any, len(records)),
	}
	for i, r := range records {
		req.IDs[i] = r.ID
		req.Embeddings[i] = r.Embedding
		if r.Document != "" {
			req.Documents[i] = &r.Document
		}
		if len(r.Metadata) > 0 {
			req.Metadatas[i] = r.Metadata
		}
	}
	return c.do(ctx, http.MethodPost, "/collections/"+id+"/add", req, nil)
}

// Get fetches records by id; no ids fetches every record.
func (c *HTTP) Get(ctx context.Context, collection string, ids []string) ([]domain.Record, error) {
	id, err := c.collectionID(ctx, collection)
	if err != nil {
		return nil, err
	}
	var resp getResponse
	if err := c.do(ctx, http.MethodPost, "/collections/"+id+"/get", getRequest{IDs: ids, Include: recordFields}, &resp); err != nil {
		return nil, err
	}
	out := make([]domain.Record, len(resp.IDs))
	for i, rid := range resp.IDs {
		out[i] = domain.Record{ID: rid}
		if i < len(resp.Embeddings) {
			out[i].Embedding = resp.Embeddings[i]
		}
		if i < len(resp.Documents) && resp.Documents[i] != nil {
			out[i].Document = *resp.Documents[i]
		}
		if i < len(resp.Metadatas) {
			out[i].Metadata = resp.Metadatas[i]
		}
	}
	return out, nil
}

// Query runs a single-embedding nearest-neighbour query.
func (c *HTTP) Query(ctx context.Context, collection string, embedding []float32, n int) ([]domain.Match, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: n must be positive, got %d", domain.ErrInvalidRecord, n)
	}
	id, err := c.collectionID(ctx, collection)
	if err != nil {
		return nil, err
	}
	req := queryRequest{
		QueryEmbeddings: [][]float32{embedding},
		NResults:        n,
		Include:         append([]string{"distances"}, recordFields...),
	}
	var resp queryResponse
	if err := c.do(ctx, http.MethodPost, "/collections/"+id+"/query", req, &resp); err != nil {
		return nil, err
	}
	if len(resp.IDs) == 0 {
		return []domain.Match{}, nil
	}
	out := make([]domain.Match, len(resp.IDs[0]))
	for i, rid := range resp.IDs[0] {
		out[i].ID = rid
		if len(resp.Distances) > 0 && i < len(resp.Distances[0]) {
			out[i].Distance = resp.Distances[0][i]
		}
		if len(resp.Embeddings) > 0 && i < len(resp.Embeddings[0]) {
			out[i].Embedding = resp.Embeddings[0][i]
		}
		if len(resp.Documents) > 0 && i < len(resp.Documents[0]) && resp.Documents[0][i] != nil {
			out[i].Document = *resp.Documents[0][i]
		}
		if len(resp.Metadatas) > 0 && i < len(resp.Metadatas[0]) {
			out[i].Metadata = resp.Metadatas[0][i]
		}
	}
	return out, nil
}

// Count returns the number of records in collection.
func (c *HTTP) Count(ctx context.Context, collection string) (int, error) {
	id, err := c.collectionID(ctx, collection)
	if err != nil {
		return 0, err
	}
	var n int
	if err := c.do(ctx, http.MethodGet, "/collections/"+id+"/count", nil, &n); err != nil {
		return 0, err
	}
	return n, nil
}

func (c *HTTP) collectionID(ctx context.Context, name string) (string, error) {
	col, err := c.GetCollection(ctx, name)
	if err != nil {
		return "", err
	}
	return url.PathEscape(col.ID), nil
}
