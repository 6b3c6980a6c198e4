// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package recommend

import (
	"context"
	"log/slog"
	"strings"

	"github.com/poiesic/recommendit/ai"
	"github.com/poiesic/recommendit/catalog"
	"github.com/poiesic/recommendit/core"
	"github.com/poiesic/recommendit/search"
	"github.com/poiesic/recommendit/webtext"
)

const (
	defaultTopK = 10

	// Ranking oversamples so that post-filters can drop high-ranked
	// records without starving the final result list.
	oversampleFactor = 2
	oversampleCap    = 50
)

// Engine answers recommendation requests over an immutable catalog.
// All shared state (catalog, ranker, AI services) is read-only after
// construction, so one Engine serves concurrent requests without locking.
type Engine struct {
	records   []*core.Assessment
	ranker    *search.Ranker
	extractor ai.RequirementExtractor // optional enrichment
	fetcher   *webtext.Fetcher        // optional enrichment
	logger    *slog.Logger
}

// Option configures an Engine.
type Option func(*Engine) error

// WithExtractor enables LLM-backed requirement extraction. Without it (or
// whenever it fails) requests use the deterministic heuristic extractor.
func WithExtractor(extractor ai.RequirementExtractor) Option {
	return func(e *Engine) error {
		e.extractor = extractor
		return nil
	}
}

// WithFetcher enables URL-based requests.
func WithFetcher(fetcher *webtext.Fetcher) Option {
	return func(e *Engine) error {
		e.fetcher = fetcher
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewEngine creates an engine over the loaded catalog.
func NewEngine(records []*core.Assessment, ranker *search.Ranker, opts ...Option) (*Engine, error) {
	if ranker == nil {
		return nil, ErrRankerRequired
	}

	e := &Engine{
		records: records,
		ranker:  ranker,
		logger:  slog.Default().With("component", "recommend-engine"),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// SemanticEnabled reports whether vector-similarity ranking is active.
func (e *Engine) SemanticEnabled() bool {
	return e.ranker.SemanticEnabled()
}

// AIEnabled reports whether LLM-backed requirement extraction is configured.
func (e *Engine) AIEnabled() bool {
	return e.extractor != nil
}

// CatalogSize returns the number of loaded records.
func (e *Engine) CatalogSize() int {
	return len(e.records)
}

// Categories returns the sorted distinct test-type labels in the catalog.
func (e *Engine) Categories() []string {
	return catalog.Categories(e.records)
}

// Stats returns aggregate statistics over the catalog.
func (e *Engine) Stats() *core.CatalogStats {
	return catalog.Stats(e.records)
}

// Recommend resolves a request into an ordered, filtered recommendation
// list. Enrichment failures (URL fetch, requirement extraction, query
// embedding) degrade the response quality, never its success: the only
// request-scoped error is a request carrying neither query nor URL.
func (e *Engine) Recommend(ctx context.Context, req *Request) (*Response, error) {
	query := strings.TrimSpace(req.Query)
	pageURL := strings.TrimSpace(req.URL)
	if query == "" && pageURL == "" {
		return nil, ErrNoQuery
	}

	topK := req.TopK
	if topK <= 0 {
		topK = defaultTopK
	}

	searchQuery := query
	categories := req.TestTypes
	var requirements *core.QueryRequirements

	if pageURL != "" {
		text := e.fetchPage(ctx, pageURL)
		if text != "" {
			requirements = e.extractRequirements(ctx, text)
			if skills := requirements.SkillsQuery(); skills != "" {
				searchQuery = skills
			} else if searchQuery == "" {
				// No skill signal extracted; rank on the page text itself.
				searchQuery = text
			}
			if len(categories) == 0 && len(requirements.SuggestedCategories) > 0 {
				categories = requirements.SuggestedCategories
			}
		}
	}

	var ranked []core.Recommendation
	if searchQuery == "" {
		// Enrichment lost the only input we had. Serve the catalog head at
		// full score rather than failing the request.
		ranked = e.catalogHead(topK)
	} else {
		ranked = e.ranker.Rank(ctx, searchQuery, oversample(topK))
	}

	results := applyFilters(ranked, req.MaxDuration, categories, req.RemoteOnly)
	if len(results) > topK {
		results = results[:topK]
	}

	resp := &Response{
		Recommendations: make([]ScoredAssessment, 0, len(results)),
		JobRequirements: requirements,
		TotalFound:      len(results),
	}
	if searchQuery != "" {
		resp.SearchQuery = &searchQuery
	}
	for _, rec := range results {
		resp.Recommendations = append(resp.Recommendations, newScoredAssessment(rec))
	}

	e.logger.Debug("request served",
		"query", searchQuery != "",
		"url", pageURL != "",
		"found", resp.TotalFound)
	return resp, nil
}

// oversample widens the candidate pool handed to the filters.
func oversample(topK int) int {
	n := min(topK*oversampleFactor, oversampleCap)
	return max(n, topK)
}

// fetchPage retrieves the page text, returning "" on any failure.
func (e *Engine) fetchPage(ctx context.Context, pageURL string) string {
	if e.fetcher == nil {
		e.logger.Warn("url request received but no fetcher configured", "url", pageURL)
		return ""
	}
	text, err := e.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		e.logger.Warn("page fetch failed, proceeding without page text", "url", pageURL, "err", err)
		return ""
	}
	return text
}

// extractRequirements runs the LLM extractor when configured, falling back
// to the deterministic heuristic on any failure. It never returns nil.
func (e *Engine) extractRequirements(ctx context.Context, text string) *core.QueryRequirements {
	if e.extractor != nil {
		requirements, err := e.extractor.ExtractRequirements(ctx, text)
		if err == nil && requirements != nil {
			return requirements
		}
		e.logger.Warn("requirement extraction failed, using heuristic", "err", err)
	}
	return ai.HeuristicRequirements(text)
}

// catalogHead returns the first topK records at full relevance.
func (e *Engine) catalogHead(topK int) []core.Recommendation {
	n := min(topK, len(e.records))
	head := make([]core.Recommendation, 0, n)
	for _, record := range e.records[:n] {
		head = append(head, core.Recommendation{Assessment: record, Score: 100})
	}
	return head
}
