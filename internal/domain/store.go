package domain

import "context"

// CollectionStore is a vector database holding named collections. The local
// persistent store and the remote HTTP client both implement it.
type CollectionStore interface {
	ListCollections(ctx context.Context) ([]Collection, error)
	GetCollection(ctx context.Context, name string) (Collection, error)
	CreateCollection(ctx context.Context, name string, metadata map[string]any, getOrCreate bool) (Collection, error)
	DeleteCollection(ctx context.Context, name string) error

	Add(ctx context.Context, collection string, records []Record) error
	// Get returns records by id; an empty ids slice returns every record.
	Get(ctx context.Context, collection string, ids []string) ([]Record, error)
	Query(ctx context.Context, collection string, embedding []float32, n int) ([]Match, error)
	Count(ctx context.Context, collection string) (int, error)
}

// CollectionService is the use-case layer the CLI talks to.
type CollectionService interface {
	List(ctx context.Context) ([]Collection, error)
	Delete(ctx context.Context, name string, ignoreMissing bool) error
	Create(ctx context.Context, name string, metadata map[string]any) (Collection, error)
	GetOrCreate(ctx context.Context, name string, metadata map[string]any) (Collection, error)
	Add(ctx context.Context, collection string, records []Record) error
	Get(ctx context.Context, collection string, ids []string) ([]Record, error)
	Query(ctx context.Context, collection string, embedding []float32, n int) ([]Match, error)
	Count(ctx context.Context, collection string) (int, error)
}
