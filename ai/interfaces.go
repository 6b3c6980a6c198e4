package ai

import (
	"context"

	"github.com/poiesic/recommendit/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// RequirementExtractor turns raw job-posting or query text into a structured
// requirement summary. Implementations must be thread-safe for concurrent use.
//
// Extraction is best-effort enrichment: callers are expected to fall back to
// HeuristicRequirements when an implementation returns an error.
type RequirementExtractor interface {
	// ExtractRequirements analyzes text and extracts the skills, experience
	// level, suggested test categories and duration preference it implies.
	// Returns an error if the extraction service fails or returns an
	// unparseable response.
	ExtractRequirements(ctx context.Context, text string) (*core.QueryRequirements, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and RequirementExtractor instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// RequirementExtractor returns the requirement extraction service.
	// The returned RequirementExtractor is safe for concurrent use.
	RequirementExtractor() RequirementExtractor

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
