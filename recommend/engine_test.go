package recommend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/poiesic/recommendit/ai/mock"
	"github.com/poiesic/recommendit/core"
	"github.com/poiesic/recommendit/index"
	"github.com/poiesic/recommendit/search"
	"github.com/poiesic/recommendit/webtext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engineRecords() []*core.Assessment {
	return []*core.Assessment{
		{Name: "A", Category: "Coding", DurationMinutes: 30, RemoteCapable: true, Skills: "python, coding"},
		{Name: "B", Category: "Personality", DurationMinutes: 60, Skills: "teamwork"},
		{Name: "C", Category: "Coding", DurationMinutes: 45, RemoteCapable: true, Skills: "java, coding"},
	}
}

func newTestEngine(t *testing.T, records []*core.Assessment, opts ...Option) *Engine {
	t.Helper()
	embedder := mock.NewMockEmbedder()
	ix, err := index.Build(context.Background(), records, embedder)
	require.NoError(t, err)
	ranker, err := search.NewRanker(records, search.WithSemanticIndex(ix, embedder))
	require.NoError(t, err)
	engine, err := NewEngine(records, ranker, opts...)
	require.NoError(t, err)
	return engine
}

func TestNewEngine_RequiresRanker(t *testing.T) {
	_, err := NewEngine(engineRecords(), nil)
	assert.ErrorIs(t, err, ErrRankerRequired)
}

func TestRecommend_NoInput(t *testing.T) {
	engine := newTestEngine(t, engineRecords())
	_, err := engine.Recommend(context.Background(), &Request{})
	assert.ErrorIs(t, err, ErrNoQuery)

	_, err = engine.Recommend(context.Background(), &Request{Query: "   "})
	assert.ErrorIs(t, err, ErrNoQuery)
}

func TestRecommend_FiltersToSingleMatch(t *testing.T) {
	// Catalog of three: only A survives duration<=40 plus remote-only.
	engine := newTestEngine(t, engineRecords())

	maxDuration := 40
	resp, err := engine.Recommend(context.Background(), &Request{
		Query:       "coding test under 40 minutes remote",
		MaxDuration: &maxDuration,
		RemoteOnly:  true,
	})
	require.NoError(t, err)
	require.Equal(t, 1, resp.TotalFound)
	assert.Equal(t, "A", resp.Recommendations[0].Name)
}

func TestRecommend_DurationBoundaryInclusive(t *testing.T) {
	engine := newTestEngine(t, engineRecords())

	maxDuration := 45
	resp, err := engine.Recommend(context.Background(), &Request{
		Query:       "coding",
		MaxDuration: &maxDuration,
		RemoteOnly:  true,
	})
	require.NoError(t, err)
	names := recommendationNames(resp)
	assert.Contains(t, names, "C") // exactly at the limit
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	engine := newTestEngine(t, nil)

	resp, err := engine.Recommend(context.Background(), &Request{Query: "anything"})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.TotalFound)
	assert.Empty(t, resp.Recommendations)
}

func TestRecommend_TopKDefaultsAndTruncates(t *testing.T) {
	engine := newTestEngine(t, engineRecords())

	t.Run("default top k", func(t *testing.T) {
		resp, err := engine.Recommend(context.Background(), &Request{Query: "coding"})
		require.NoError(t, err)
		assert.Equal(t, 3, resp.TotalFound) // min(10, N)
	})

	t.Run("truncates to top k", func(t *testing.T) {
		resp, err := engine.Recommend(context.Background(), &Request{Query: "coding", TopK: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.TotalFound)
	})
}

func TestRecommend_ScoresNonIncreasing(t *testing.T) {
	engine := newTestEngine(t, engineRecords())
	resp, err := engine.Recommend(context.Background(), &Request{Query: "coding skills"})
	require.NoError(t, err)
	for i := 1; i < len(resp.Recommendations); i++ {
		assert.GreaterOrEqual(t,
			resp.Recommendations[i-1].RelevanceScore,
			resp.Recommendations[i].RelevanceScore)
	}
}

func TestRecommend_FilteredIsSubsetOfRanked(t *testing.T) {
	engine := newTestEngine(t, engineRecords())

	unfiltered, err := engine.Recommend(context.Background(), &Request{Query: "coding"})
	require.NoError(t, err)

	filtered, err := engine.Recommend(context.Background(), &Request{Query: "coding", RemoteOnly: true})
	require.NoError(t, err)

	assert.LessOrEqual(t, filtered.TotalFound, unfiltered.TotalFound)
	assert.Subset(t, recommendationNames(unfiltered), recommendationNames(filtered))
}

func TestRecommend_URLFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Hiring now: python and java engineers with teamwork skills.</p></body></html>"))
	}))
	defer srv.Close()

	extractor := mock.NewMockRequirementExtractor()
	engine := newTestEngine(t, engineRecords(),
		WithFetcher(webtext.NewFetcher()),
		WithExtractor(extractor),
	)

	resp, err := engine.Recommend(context.Background(), &Request{URL: srv.URL})
	require.NoError(t, err)

	assert.Equal(t, 1, extractor.CallCount())
	require.NotNil(t, resp.JobRequirements)
	assert.Contains(t, resp.JobRequirements.Skills, "python")

	// Search query is steered by the extracted skills, and the extractor's
	// suggested categories apply because the caller supplied none.
	require.NotNil(t, resp.SearchQuery)
	assert.Contains(t, *resp.SearchQuery, "python")
	for _, rec := range resp.Recommendations {
		assert.Contains(t, []string{"Coding", "Cognitive"}, rec.Category)
	}
}

func TestRecommend_ExplicitCategoriesWinOverSuggested(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>python role</body></html>"))
	}))
	defer srv.Close()

	engine := newTestEngine(t, engineRecords(),
		WithFetcher(webtext.NewFetcher()),
		WithExtractor(mock.NewMockRequirementExtractor()),
	)

	resp, err := engine.Recommend(context.Background(), &Request{
		URL:       srv.URL,
		TestTypes: []string{"Personality"},
	})
	require.NoError(t, err)
	for _, rec := range resp.Recommendations {
		assert.Equal(t, "Personality", rec.Category)
	}
}

func TestRecommend_ExtractorFailureFallsBackToHeuristic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>We need a great sql analyst.</body></html>"))
	}))
	defer srv.Close()

	extractor := mock.NewMockRequirementExtractor()
	extractor.ExtractRequirementsFunc = func(ctx context.Context, text string) (*core.QueryRequirements, error) {
		return nil, errors.New("service unavailable")
	}
	engine := newTestEngine(t, engineRecords(),
		WithFetcher(webtext.NewFetcher()),
		WithExtractor(extractor),
	)

	resp, err := engine.Recommend(context.Background(), &Request{URL: srv.URL})
	require.NoError(t, err)
	require.NotNil(t, resp.JobRequirements)
	assert.Contains(t, resp.JobRequirements.Skills, "sql")
}

func TestRecommend_FetchFailureServesCatalogHead(t *testing.T) {
	engine := newTestEngine(t, engineRecords(), WithFetcher(webtext.NewFetcher()))

	resp, err := engine.Recommend(context.Background(), &Request{URL: "http://127.0.0.1:1"})
	require.NoError(t, err)
	assert.Nil(t, resp.SearchQuery)
	require.Equal(t, 3, resp.TotalFound)
	for _, rec := range resp.Recommendations {
		assert.Equal(t, float32(100), rec.RelevanceScore)
	}
}

func TestRecommend_NoFetcherConfigured(t *testing.T) {
	engine := newTestEngine(t, engineRecords())

	resp, err := engine.Recommend(context.Background(), &Request{URL: "https://example.com/job"})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.TotalFound) // catalog head fallback
}

func TestEngine_StatusFlags(t *testing.T) {
	t.Run("semantic and ai enabled", func(t *testing.T) {
		engine := newTestEngine(t, engineRecords(), WithExtractor(mock.NewMockRequirementExtractor()))
		assert.True(t, engine.SemanticEnabled())
		assert.True(t, engine.AIEnabled())
	})

	t.Run("degraded engine", func(t *testing.T) {
		ranker, err := search.NewRanker(engineRecords())
		require.NoError(t, err)
		engine, err := NewEngine(engineRecords(), ranker)
		require.NoError(t, err)
		assert.False(t, engine.SemanticEnabled())
		assert.False(t, engine.AIEnabled())
	})
}

func TestEngine_CatalogViews(t *testing.T) {
	engine := newTestEngine(t, engineRecords())
	assert.Equal(t, []string{"Coding", "Personality"}, engine.Categories())
	assert.Equal(t, 3, engine.CatalogSize())
	assert.Equal(t, 3, engine.Stats().TotalAssessments)
}

func recommendationNames(resp *Response) []string {
	names := make([]string, 0, len(resp.Recommendations))
	for _, rec := range resp.Recommendations {
		names = append(names, rec.Name)
	}
	return names
}
