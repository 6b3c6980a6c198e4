package ai

import (
	"regexp"
	"strings"

	"github.com/poiesic/recommendit/core"
)

// skillPatterns is the fixed keyword set the heuristic extractor scans for.
// Matching is case-insensitive; patterns are grouped roughly by kind.
var skillPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(python|java|javascript|sql|react|node\.?js|angular|typescript)\b`),
	regexp.MustCompile(`(?i)\b(problem solving|communication|teamwork|leadership|analytical)\b`),
	regexp.MustCompile(`(?i)\b(data analysis|machine learning|cloud|aws|azure|gcp)\b`),
}

// HeuristicRequirements extracts requirements from text using fixed keyword
// patterns. It is the deterministic fallback used when no LLM-backed
// extractor is available; it never fails.
//
// When the text contains no recognizable skill language the result still
// carries conservative defaults: mid experience, Coding and Cognitive test
// types, and a medium duration preference.
func HeuristicRequirements(text string) *core.QueryRequirements {
	lower := strings.ToLower(text)

	seen := make(map[string]bool)
	skills := []string{}
	for _, pattern := range skillPatterns {
		for _, match := range pattern.FindAllString(lower, -1) {
			if !seen[match] {
				seen[match] = true
				skills = append(skills, match)
			}
		}
	}

	return &core.QueryRequirements{
		Skills:              skills,
		ExperienceLevel:     core.ExperienceMid,
		SuggestedCategories: []string{"Coding", "Cognitive"},
		DurationPreference:  core.DurationMedium,
		KeyResponsibilities: []string{},
	}
}
