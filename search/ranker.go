package search

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/poiesic/recommendit/ai"
	"github.com/poiesic/recommendit/core"
	"github.com/poiesic/recommendit/index"
)

// Ranker scores catalog records against a query and returns them in
// relevance order. Scores are scaled to [0, 100].
//
// The primary strategy is vector similarity against a pre-built index.
// When no index or embedder is available, or query embedding fails at
// request time, the ranker downgrades to lexical token-overlap scoring.
// Both strategies produce the same output shape, so callers are
// strategy-agnostic.
type Ranker struct {
	records  []*core.Assessment
	index    *index.Index
	embedder ai.Embedder
	logger   *slog.Logger
}

// Option configures a Ranker.
type Option func(*Ranker) error

// WithSemanticIndex enables vector-similarity ranking using the given index
// and embedder. Passing nil for either leaves the ranker in lexical mode.
func WithSemanticIndex(ix *index.Index, embedder ai.Embedder) Option {
	return func(r *Ranker) error {
		if ix == nil || embedder == nil {
			return nil
		}
		if ix.Len() != len(r.records) {
			return ErrIndexMismatch
		}
		r.index = ix
		r.embedder = embedder
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Ranker) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// NewRanker creates a ranker over the catalog records.
func NewRanker(records []*core.Assessment, opts ...Option) (*Ranker, error) {
	r := &Ranker{
		records: records,
		logger:  slog.Default().With("component", "ranker"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// SemanticEnabled reports whether vector-similarity ranking is active.
// False means every request is served by the lexical fallback. The flag
// exists for health reporting; the downgrade is silent to end users.
func (r *Ranker) SemanticEnabled() bool {
	return r.index != nil && r.embedder != nil
}

// Rank scores every record against the query and returns the top topK in
// non-increasing score order, ties broken by catalog order. An empty
// catalog yields an empty list, never an error.
func (r *Ranker) Rank(ctx context.Context, query string, topK int) []core.Recommendation {
	if len(r.records) == 0 || topK <= 0 {
		return []core.Recommendation{}
	}

	var scores []float32
	if r.SemanticEnabled() {
		if vec, err := r.embedder.EmbedText(ctx, query); err != nil {
			// Request-time embedding failure degrades this one request,
			// it does not fail it.
			r.logger.Warn("query embedding failed, using lexical fallback", "err", err)
		} else if len(vec) != r.index.Dim() {
			r.logger.Warn("query embedding has wrong width, using lexical fallback",
				"got", len(vec), "want", r.index.Dim())
		} else {
			scores = r.scoreSemantic(vec)
		}
	}
	if scores == nil {
		scores = r.scoreLexical(query)
	}

	order := make([]int, len(r.records))
	for i := range order {
		order[i] = i
	}
	// Stable sort keeps catalog order on ties, which makes rankings deterministic.
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if topK > len(order) {
		topK = len(order)
	}
	results := make([]core.Recommendation, 0, topK)
	for _, idx := range order[:topK] {
		results = append(results, core.Recommendation{
			Assessment: r.records[idx],
			Score:      scores[idx],
		})
	}
	return results
}

// scoreSemantic computes cosine similarity against every indexed vector,
// rescaled from [-1, 1] to a clamped [0, 100] relevance score.
func (r *Ranker) scoreSemantic(query []float32) []float32 {
	scores := make([]float32, r.index.Len())
	for i := range scores {
		score := cosineSimilarity(query, r.index.Vector(i)) * 100
		if score < 0 {
			score = 0
		} else if score > 100 {
			score = 100
		}
		scores[i] = score
	}
	return scores
}

// scoreLexical counts how many query tokens appear as substrings of each
// record's combined text, normalized by the best raw count across the
// catalog. A query with no tokens yields all-zero scores.
func (r *Ranker) scoreLexical(query string) []float32 {
	tokens := tokenize(query)

	raw := make([]int, len(r.records))
	maxRaw := 0
	for i, record := range r.records {
		raw[i] = countTokenHits(record.CombinedText(), tokens)
		if raw[i] > maxRaw {
			maxRaw = raw[i]
		}
	}
	if maxRaw == 0 {
		maxRaw = 1
	}

	scores := make([]float32, len(raw))
	for i, count := range raw {
		scores[i] = float32(count) / float32(maxRaw) * 100
	}
	return scores
}

// cosineSimilarity returns the normalized dot product of two equal-length
// vectors, or 0 when either has zero magnitude.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return float32(dot / (math.Sqrt(normA) * math.Sqrt(normB)))
}
