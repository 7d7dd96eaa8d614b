package ai

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalEmbedderDeterministic(t *testing.T) {
	e := NewLocalEmbedder(64)

	a, err := e.Embed(context.Background(), "retrieval augmented generation")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "retrieval augmented generation")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
}

func TestLocalEmbedderUnitNorm(t *testing.T) {
	e := NewLocalEmbedder(0)

	vec, err := e.Embed(context.Background(), "the quick brown fox jumps over the lazy dog")
	require.NoError(t, err)
	require.Len(t, vec, 256)

	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, math.Sqrt(norm), 1e-5)
}

func TestLocalEmbedderCaseInsensitive(t *testing.T) {
	e := NewLocalEmbedder(32)

	a, err := e.Embed(context.Background(), "Hello World")
	require.NoError(t, err)
	b, err := e.Embed(context.Background(), "hello world")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestLocalEmbedderEmptyInput(t *testing.T) {
	e := NewLocalEmbedder(32)

	_, err := e.Embed(context.Background(), "   \n\t ")
	assert.Error(t, err)
}

func TestLocalEmbedderBatch(t *testing.T) {
	e := NewLocalEmbedder(32)

	vecs, err := e.EmbedBatch(context.Background(), []string{"one", "two", "three"})
	require.NoError(t, err)
	require.Len(t, vecs, 3)

	single, err := e.Embed(context.Background(), "two")
	require.NoError(t, err)
	assert.Equal(t, single, vecs[1])
}
