package core

import (
	"encoding/binary"
	"strings"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for derived artifacts such as cached embeddings.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Assessment is one catalog entry describing a single test.
// Records are loaded once at startup and are immutable for the life of
// the process. Fields that are absent in the source default to the zero
// value; there is no distinct missing-field state.
type Assessment struct {
	Name            string
	URL             string
	DurationMinutes int
	RemoteCapable   bool
	Adaptive        bool
	Category        string // test type label, e.g. "Coding", "Personality"
	Skills          string // free text, comma-separated terms
	Description     string
}

// CombinedText returns the concatenation of the semantically informative
// fields. It is the text that gets embedded for the catalog index and the
// text the lexical fallback matches against.
func (a *Assessment) CombinedText() string {
	return a.Name + " " + a.Category + " " + a.Skills + " " + a.Description
}

// ExperienceLevel classifies the seniority a job posting asks for.
type ExperienceLevel string

const (
	ExperienceJunior      ExperienceLevel = "junior"
	ExperienceMid         ExperienceLevel = "mid"
	ExperienceSenior      ExperienceLevel = "senior"
	ExperienceUnspecified ExperienceLevel = "unspecified"
)

// DurationPreference classifies how long an assessment should take.
type DurationPreference string

const (
	DurationShort       DurationPreference = "short"  // under 30 minutes
	DurationMedium      DurationPreference = "medium" // 30-45 minutes
	DurationLong        DurationPreference = "long"   // over 45 minutes
	DurationUnspecified DurationPreference = "unspecified"
)

// QueryRequirements is the structured summary extracted from a job posting
// or free-text query. It is computed fresh per request, never persisted,
// and consumed immediately by result assembly.
type QueryRequirements struct {
	Skills              []string           `json:"skills"`
	ExperienceLevel     ExperienceLevel    `json:"experience_level"`
	SuggestedCategories []string           `json:"test_types"`
	DurationPreference  DurationPreference `json:"duration_preference"`
	KeyResponsibilities []string           `json:"key_responsibilities"`
}

// SkillsQuery joins the extracted skills into a search query string.
// Returns "" when no skills were extracted.
func (q *QueryRequirements) SkillsQuery() string {
	if q == nil || len(q.Skills) == 0 {
		return ""
	}
	return strings.Join(q.Skills, " ")
}

// Recommendation pairs a catalog record with its relevance score.
// The record is a shared read-only view into the catalog, not a copy.
type Recommendation struct {
	Assessment *Assessment
	Score      float32 // relevance in [0, 100], non-increasing within one response
}

// CatalogStats aggregates read-only statistics over the loaded catalog.
type CatalogStats struct {
	TotalAssessments   int            `json:"total_assessments"`
	AvgDurationMinutes float64        `json:"avg_duration"`
	RemoteCapable      int            `json:"remote_supported"`
	Adaptive           int            `json:"adaptive_tests"`
	PerCategory        map[string]int `json:"test_types"`
}
