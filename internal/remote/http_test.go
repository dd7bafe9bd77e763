package remote_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromactl/internal/domain"
	"chromactl/internal/remote"
)

type call struct {
	Method string
	Path   string
	Body   map[string]any
}

// fakeChroma answers the v1 routes the client uses and records every call.
func fakeChroma(t *testing.T) (*remote.HTTP, *[]call) {
	t.Helper()
	var calls []call
	mux := http.NewServeMux()
	record := func(r *http.Request) {
		c := call{Method: r.Method, Path: r.URL.Path}
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&c.Body)
		}
		calls = append(calls, c)
	}
	writeJSON := func(w http.ResponseWriter, v any) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(v)
	}

	mux.HandleFunc("GET /api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, []map[string]any{
			{"id": "2", "name": "text_embeddings", "metadata": nil},
			{"id": "1", "name": "face_embeddings", "metadata": map[string]any{"hnsw:space": "cosine"}},
		})
	})
	mux.HandleFunc("POST /api/v1/collections", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, map[string]any{"id": "3", "name": calls[len(calls)-1].Body["name"], "metadata": nil})
	})
	mux.HandleFunc("GET /api/v1/collections/{name}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.PathValue("name") != "docs" {
			http.Error(w, `{"error":"ValueError('Collection nope does not exist.')"}`, http.StatusInternalServerError)
			return
		}
		writeJSON(w, map[string]any{"id": "c-1", "name": "docs"})
	})
	mux.HandleFunc("DELETE /api/v1/collections/{name}", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		if r.PathValue("name") != "text_embeddings" {
			http.Error(w, `{"error":"NotFoundError"}`, http.StatusNotFound)
			return
		}
		writeJSON(w, nil)
	})
	mux.HandleFunc("POST /api/v1/collections/c-1/add", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		w.WriteHeader(http.StatusCreated)
		writeJSON(w, true)
	})
	mux.HandleFunc("POST /api/v1/collections/c-1/get", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, map[string]any{
			"ids":        []string{"a"},
			"embeddings": [][]float32{{1, 2}},
			"documents":  []any{`{"post":1}`},
			"metadatas":  []any{nil},
		})
	})
	mux.HandleFunc("POST /api/v1/collections/c-1/query", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, map[string]any{
			"ids":       [][]string{{"a", "b"}},
			"distances": [][]float32{{0.5, 1.5}},
			"documents": [][]any{{"doc-a", nil}},
		})
	})
	mux.HandleFunc("GET /api/v1/collections/c-1/count", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, 7)
	})
	mux.HandleFunc("GET /api/v1/heartbeat", func(w http.ResponseWriter, r *http.Request) {
		record(r)
		writeJSON(w, map[string]any{"nanosecond heartbeat": 1})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return remote.NewHTTP(srv.URL+"/", srv.Client()), &calls
}

func TestListCollections(t *testing.T) {
	c, _ := fakeChroma(t)
	cols, err := c.ListCollections(context.Background())
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "face_embeddings", cols[0].Name)
	assert.Equal(t, domain.SpaceCosine, cols[0].Space)
	assert.Equal(t, "text_embeddings", cols[1].Name)
	assert.Equal(t, domain.SpaceL2, cols[1].Space)
}

func TestDeleteCollection(t *testing.T) {
	c, calls := fakeChroma(t)
	require.NoError(t, c.DeleteCollection(context.Background(), "text_embeddings"))
	require.Len(t, *calls, 1)
	assert.Equal(t, http.MethodDelete, (*calls)[0].Method)
	assert.Equal(t, "/api/v1/collections/text_embeddings", (*calls)[0].Path)
}

func TestDeleteCollection_NotFound(t *testing.T) {
	c, _ := fakeChroma(t)
	err := c.DeleteCollection(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCollectionNotFound))

	var apiErr *remote.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}

func TestCreateCollection_SendsGetOrCreate(t *testing.T) {
	c, calls := fakeChroma(t)
	col, err := c.CreateCollection(context.Background(), "docs", map[string]any{"k": "v"}, true)
	require.NoError(t, err)
	assert.Equal(t, "docs", col.Name)
	assert.Equal(t, true, (*calls)[0].Body["get_or_create"])
	assert.Equal(t, map[string]any{"k": "v"}, (*calls)[0].Body["metadata"])
}

func TestCreateCollection_ValidatesName(t *testing.T) {
	c, calls := fakeChroma(t)
	_, err := c.CreateCollection(context.Background(), "x", nil, false)
	assert.True(t, errors.Is(err, domain.ErrInvalidName))
	assert.Empty(t, *calls)
}

func TestAdd_ResolvesIDThenPosts(t *testing.T) {
	c, calls := fakeChroma(t)
	err := c.Add(context.Background(), "docs", []domain.Record{
		{ID: "a", Embedding: []float32{1, 2}, Document: "hello"},
	})
	require.NoError(t, err)
	require.Len(t, *calls, 2)
	assert.Equal(t, "/api/v1/collections/docs", (*calls)[0].Path)
	assert.Equal(t, "/api/v1/collections/c-1/add", (*calls)[1].Path)
	assert.Equal(t, []any{"a"}, (*calls)[1].Body["ids"])
	assert.Equal(t, []any{"hello"}, (*calls)[1].Body["documents"])
}

func TestGet(t *testing.T) {
	c, _ := fakeChroma(t)
	recs, err := c.Get(context.Background(), "docs", []string{"a"})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, []float32{1, 2}, recs[0].Embedding)
	assert.Equal(t, `{"post":1}`, recs[0].Document)
}

func TestQuery(t *testing.T) {
	c, calls := fakeChroma(t)
	matches, err := c.Query(context.Background(), "docs", []float32{1, 2}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "a", matches[0].ID)
	assert.Equal(t, "doc-a", matches[0].Document)
	assert.InDelta(t, 1.5, matches[1].Distance, 1e-6)
	assert.Equal(t, "", matches[1].Document)
	assert.EqualValues(t, 2, (*calls)[1].Body["n_results"])
}

func TestQuery_MissingCollection(t *testing.T) {
	c, _ := fakeChroma(t)
	_, err := c.Query(context.Background(), "nope", []float32{1}, 1)
	assert.True(t, errors.Is(err, domain.ErrCollectionNotFound))
}

func TestCount(t *testing.T) {
	c, _ := fakeChroma(t)
	n, err := c.Count(context.Background(), "docs")
	require.NoError(t, err)
	assert.Equal(t, 7, n)
}

func TestHeartbeat(t *testing.T) {
	c, calls := fakeChroma(t)
	require.NoError(t, c.Heartbeat(context.Background()))
	assert.Equal(t, "/api/v1/heartbeat", (*calls)[0].Path)
}
