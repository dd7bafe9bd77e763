package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chromactl/internal/domain"
)

func TestValidateName(t *testing.T) {
	valid := []string{"text_embeddings", "abc", "a.b-c_d", "Face2Vec", "x1234567890123456789012345678901234567890123456789012345678901"}
	for _, name := range valid {
		assert.NoError(t, domain.ValidateName(name), name)
	}

	invalid := []string{"", "ab", "-abc", "abc_", "a..b", "has space", "192.168.0.1", "ü-name",
		"x123456789012345678901234567890123456789012345678901234567890123"}
	for _, name := range invalid {
		err := domain.ValidateName(name)
		require.Error(t, err, name)
		assert.True(t, errors.Is(err, domain.ErrInvalidName), name)
	}
}

func TestParseSpace(t *testing.T) {
	s, err := domain.ParseSpace("")
	require.NoError(t, err)
	assert.Equal(t, domain.SpaceL2, s)

	s, err = domain.ParseSpace("Cosine")
	require.NoError(t, err)
	assert.Equal(t, domain.SpaceCosine, s)

	_, err = domain.ParseSpace("jaccard")
	assert.True(t, errors.Is(err, domain.ErrInvalidSpace))
}

func TestDimensionError(t *testing.T) {
	err := error(&domain.DimensionError{ID: "a", Want: 3, Got: 2})
	assert.True(t, errors.Is(err, domain.ErrDimensionMismatch))
	assert.Contains(t, err.Error(), `"a" has dimension 2`)
}
