package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/recommendit/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder implements ai.Embedder against an OpenAI-compatible embeddings
// endpoint. One instance serves both catalog encoding at startup and
// query encoding per request; it is safe for concurrent use.
type Embedder struct {
	embedder embeddings.Embedder
	logger   *slog.Logger
}

func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Local OpenAI-compatible servers accept any bearer token.
	client, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}

	embedder, err := embeddings.NewEmbedder(client, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{
		embedder: embedder,
		logger:   slog.Default().With("component", "openai-embedder"),
	}, nil
}

// NewEmbedder creates an embedder for the configured embedding service.
// A construction error means the encoder is unavailable; callers downgrade
// to lexical ranking rather than failing.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText encodes a single query string.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	e.logger.Debug("encoding query", "chars", len(text))

	vectors, err := e.embedder.EmbedDocuments(ctx, []string{text})
	if err != nil {
		e.logger.Error("query encoding failed", "err", err)
		return nil, err
	}
	if len(vectors) == 0 {
		e.logger.Warn("embedding service returned no vector")
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedTexts encodes a batch of catalog texts in one call.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("encoding batch", "texts", len(texts))

	vectors, err := e.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("batch encoding failed", "texts", len(texts), "err", err)
		return nil, err
	}
	return vectors, nil
}
