package app

import (
	"io"
	"log/slog"
	"net/http"

	"chromactl/internal/domain"
	"chromactl/internal/remote"
	collectionsvc "chromactl/internal/services/collection"
	"chromactl/internal/store"
)

// Wire bundles the backing store and services for the CLI.
type Wire struct {
	Store       domain.CollectionStore
	Collections domain.CollectionService
	HTTP        *http.Client

	closer io.Closer
}

// NewWire constructs the dependency graph from cfg: a remote client when a
// Chroma host is configured, otherwise the local store at cfg.Path.
func NewWire(cfg Config, log *slog.Logger) (*Wire, error) {
	w := &Wire{}

	if cfg.Remote() {
		httpClient := cfg.HTTP
		if httpClient == nil {
			httpClient = &http.Client{Timeout: cfg.Chroma.Timeout}
		}
		log.Debug("using chroma server", "url", cfg.ChromaURL())
		w.Store = remote.NewHTTP(cfg.ChromaURL(), httpClient)
		w.HTTP = httpClient
	} else {
		s, err := store.Open(cfg.Path, store.WithLogger(log))
		if err != nil {
			return nil, err
		}
		w.Store = s
		w.closer = s
	}

	w.Collections = collectionsvc.New(w.Store, log)
	return w, nil
}

// Close releases the store.
func (w *Wire) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer.Close()
}
