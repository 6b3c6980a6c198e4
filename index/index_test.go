package index

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/recommendit/ai/mock"
	"github.com/poiesic/recommendit/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRecords() []*core.Assessment {
	return []*core.Assessment{
		{Name: "Java Developer Test", Category: "Coding", Skills: "java"},
		{Name: "Verbal Reasoning", Category: "Cognitive", Skills: "verbal reasoning"},
		{Name: "Personality Profile", Category: "Personality"},
	}
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	embedder := mock.NewMockEmbedder()

	ix, err := Build(ctx, sampleRecords(), embedder)
	require.NoError(t, err)

	t.Run("vectors aligned with records", func(t *testing.T) {
		assert.Equal(t, 3, ix.Len())
		for i := 0; i < ix.Len(); i++ {
			assert.Len(t, ix.Vector(i), ix.Dim())
		}
	})

	t.Run("dimension is constant", func(t *testing.T) {
		assert.Equal(t, 384, ix.Dim())
	})

	t.Run("rebuild is equivalent", func(t *testing.T) {
		again, err := Build(ctx, sampleRecords(), mock.NewMockEmbedder())
		require.NoError(t, err)
		for i := 0; i < ix.Len(); i++ {
			assert.Equal(t, ix.Vector(i), again.Vector(i))
		}
	})
}

func TestBuild_EmptyCatalog(t *testing.T) {
	ix, err := Build(context.Background(), nil, mock.NewMockEmbedder())
	require.NoError(t, err)
	assert.Equal(t, 0, ix.Len())
	assert.Equal(t, 0, ix.Dim())
}

func TestBuild_NilEmbedder(t *testing.T) {
	_, err := Build(context.Background(), sampleRecords(), nil)
	assert.ErrorIs(t, err, ErrEmbedderRequired)
}

func TestBuild_EmbedderFailure(t *testing.T) {
	failure := errors.New("service down")
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, failure
	}

	_, err := Build(context.Background(), sampleRecords(), embedder)
	assert.ErrorIs(t, err, failure)
}

func TestBuild_DimensionMismatch(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	call := 0
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		out := make([][]float32, len(texts))
		for i := range texts {
			call++
			out[i] = make([]float32, 3+call%2) // alternating widths
		}
		return out, nil
	}

	_, err := Build(context.Background(), sampleRecords(), embedder, WithBatchSize(1), WithPoolSize(1))
	assert.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestBuild_SmallBatches(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	ix, err := Build(context.Background(), sampleRecords(), embedder, WithBatchSize(1), WithPoolSize(2))
	require.NoError(t, err)

	// Results must land in record order no matter how batches interleave.
	reference, err := Build(context.Background(), sampleRecords(), mock.NewMockEmbedder())
	require.NoError(t, err)
	for i := 0; i < ix.Len(); i++ {
		assert.Equal(t, reference.Vector(i), ix.Vector(i))
	}
}
