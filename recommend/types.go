package recommend

import "github.com/poiesic/recommendit/core"

// Request is one recommendation query. Exactly one of Query/URL should be
// meaningfully present.
type Request struct {
	Query       string   `json:"query"`
	URL         string   `json:"url"`
	MaxDuration *int     `json:"max_duration"` // nil means no duration filter
	TestTypes   []string `json:"test_types"`
	RemoteOnly  bool     `json:"remote_only"`
	TopK        int      `json:"top_k"` // defaults to 10 when <= 0
}

// ScoredAssessment is one recommendation in wire form.
type ScoredAssessment struct {
	Name            string  `json:"name"`
	URL             string  `json:"url"`
	DurationMinutes int     `json:"duration_minutes"`
	RemoteCapable   bool    `json:"remote_capable"`
	Adaptive        bool    `json:"adaptive"`
	Category        string  `json:"category"`
	Skills          string  `json:"skills"`
	Description     string  `json:"description"`
	RelevanceScore  float32 `json:"relevance_score"`
}

// Response is the answer to one recommendation request. An empty
// recommendation list with TotalFound 0 is a valid outcome, not an error.
type Response struct {
	Recommendations []ScoredAssessment      `json:"recommendations"`
	JobRequirements *core.QueryRequirements `json:"job_requirements"`
	SearchQuery     *string                 `json:"search_query"`
	TotalFound      int                     `json:"total_found"`
}

func newScoredAssessment(rec core.Recommendation) ScoredAssessment {
	a := rec.Assessment
	return ScoredAssessment{
		Name:            a.Name,
		URL:             a.URL,
		DurationMinutes: a.DurationMinutes,
		RemoteCapable:   a.RemoteCapable,
		Adaptive:        a.Adaptive,
		Category:        a.Category,
		Skills:          a.Skills,
		Description:     a.Description,
		RelevanceScore:  rec.Score,
	}
}
