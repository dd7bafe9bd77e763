package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromactl/internal/domain"
)

// run executes the CLI against a local store at dir and returns stdout.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--path", dir}, args...))
	err := root.ExecuteContext(context.Background())
	require.NoError(t, closeApp())
	return stdout.String(), err
}

func isolate(t *testing.T) string {
	t.Helper()
	for _, k := range []string{"CHROMACTL_CONFIG", "CHROMA_PATH", "CHROMA_HOST", "CHROMA_PORT",
		"CHROMACTL_COLLECTION", "CHROMACTL_LOG_LEVEL", "CHROMACTL_LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	t.Chdir(t.TempDir())
	return filepath.Join(t.TempDir(), "chroma", "chroma_db")
}

func TestList_Empty(t *testing.T) {
	dir := isolate(t)
	out, err := run(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "Available collections: []\n", out)
}

func TestCreateListDelete(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, dir, "create", "text_embeddings")
	require.NoError(t, err)
	_, err = run(t, dir, "create", "face_embeddings", "--space", "cosine")
	require.NoError(t, err)

	out, err := run(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "Available collections: [face_embeddings text_embeddings]\n", out)

	out, err = run(t, dir, "delete", "face_embeddings")
	require.NoError(t, err)
	assert.Equal(t, "Deleted collection \"face_embeddings\"\n", out)

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "Available collections: [text_embeddings]\n", out)
}

func TestDelete_DefaultsToConfiguredCollection(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, dir, "create", "text_embeddings")
	require.NoError(t, err)

	out, err := run(t, dir, "delete")
	require.NoError(t, err)
	assert.Contains(t, out, "text_embeddings")

	out, err = run(t, dir, "list")
	require.NoError(t, err)
	assert.Equal(t, "Available collections: []\n", out)
}

func TestDelete_Missing(t *testing.T) {
	dir := isolate(t)

	_, err := run(t, dir, "delete", "text_embeddings")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrCollectionNotFound)

	_, err = run(t, dir, "delete", "text_embeddings", "--ignore-missing")
	assert.NoError(t, err)
}

func TestCreate_GetOrCreate(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, dir, "create", "docs")
	require.NoError(t, err)

	_, err = run(t, dir, "create", "docs")
	assert.ErrorIs(t, err, domain.ErrCollectionExists)

	_, err = run(t, dir, "create", "docs", "--get-or-create")
	assert.NoError(t, err)
}

func TestAddGetQueryCount(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, dir, "create", "docs")
	require.NoError(t, err)

	out, err := run(t, dir, "add", "docs", "--id", "a", "--embedding", "1,0", "--document", "alpha")
	require.NoError(t, err)
	assert.Equal(t, "Added 1 record(s) to \"docs\"\n", out)

	file := filepath.Join(t.TempDir(), "records.jsonl")
	require.NoError(t, os.WriteFile(file, []byte(
		`{"id":"b","embedding":[0,1],"document":"beta"}`+"\n\n"+
			`{"id":"c","embedding":[5,5],"document":"gamma","metadata":{"k":"v"}}`+"\n"), 0o600))
	out, err = run(t, dir, "add", "docs", "--file", file)
	require.NoError(t, err)
	assert.Contains(t, out, "Added 2 record(s)")

	out, err = run(t, dir, "count", "docs")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, err = run(t, dir, "get", "docs", "b", "a")
	require.NoError(t, err)
	assert.Equal(t, "b\tbeta\na\talpha\n", out)

	out, err = run(t, dir, "get", "docs", "c", "-o", "json")
	require.NoError(t, err)
	var recs []domain.Record
	require.NoError(t, json.Unmarshal([]byte(out), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, "v", recs[0].Metadata["k"])

	out, err = run(t, dir, "query", "docs", "--embedding", "0.9,0.1", "-n", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "1\ta\t"))
	assert.True(t, strings.HasPrefix(lines[1], "2\tb\t"))
}

func TestAdd_RequiresInput(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, dir, "create", "docs")
	require.NoError(t, err)

	_, err = run(t, dir, "add", "docs")
	assert.Error(t, err)
}

func TestList_JSON(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, dir, "create", "docs")
	require.NoError(t, err)

	out, err := run(t, dir, "list", "-o", "json")
	require.NoError(t, err)
	var cols []domain.Collection
	require.NoError(t, json.Unmarshal([]byte(out), &cols))
	require.Len(t, cols, 1)
	assert.Equal(t, "docs", cols[0].Name)
	assert.Equal(t, domain.SpaceL2, cols[0].Space)

	_, err = run(t, dir, "list", "-o", "yaml")
	assert.Error(t, err)
}

func TestInvalidLogLevel(t *testing.T) {
	dir := isolate(t)
	_, err := run(t, dir, "list", "--log-level", "loud")
	assert.Error(t, err)
}
