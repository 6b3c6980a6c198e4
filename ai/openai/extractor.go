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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/poiesic/recommendit/ai"
	"github.com/poiesic/recommendit/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// maxExtractionInput caps the job-description text sent to the model, in
// runes. Longer postings carry little additional signal past this point.
const maxExtractionInput = 3000

// RequirementExtractor implements ai.RequirementExtractor using
// OpenAI-compatible chat APIs.
type RequirementExtractor struct {
	client llms.Model
	logger *slog.Logger
}

// requirements is an internal type used for JSON unmarshaling.
// It matches the structure requested from the LLM.
type requirements struct {
	Skills              []string `json:"skills"`
	ExperienceLevel     string   `json:"experience_level"`
	TestTypes           []string `json:"test_types"`
	DurationPreference  string   `json:"duration_preference"`
	KeyResponsibilities []string `json:"key_responsibilities"`
}

// newRequirementExtractor is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newRequirementExtractor(config *ai.Config) (*RequirementExtractor, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Create OpenAI client configured for chat/extraction
	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.ExtractorHost),
		openai.WithToken("none"),
		openai.WithModel(config.ExtractorModel),
	)
	if err != nil {
		return nil, err
	}

	return &RequirementExtractor{
		client: client,
		logger: slog.Default().With("component", "openai-extractor"),
	}, nil
}

// NewRequirementExtractor creates a new requirement extractor using the provided configuration.
//
// Returns ai.RequirementExtractor interface to enforce abstraction.
func NewRequirementExtractor(config *ai.Config) (ai.RequirementExtractor, error) {
	return newRequirementExtractor(config)
}

// ExtractRequirements extracts a structured requirement summary from job text
// using an LLM. The request is made exactly once; callers handle any error by
// falling back to ai.HeuristicRequirements.
func (e *RequirementExtractor) ExtractRequirements(ctx context.Context, text string) (*core.QueryRequirements, error) {
	text = truncateRunes(text, maxExtractionInput)

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildExtractionPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(text),
			},
		},
	}

	response, err := e.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		e.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		e.logger.Debug("no choices returned from model")
		return nil, ErrEmptyResponse
	}

	// Strip markdown code fences if present
	responseText := strings.TrimSpace(response.Choices[0].Content)
	responseText = strings.TrimPrefix(responseText, "```json")
	responseText = strings.TrimPrefix(responseText, "```")
	responseText = strings.TrimSuffix(responseText, "```")
	responseText = strings.TrimSpace(responseText)

	// Try to repair common JSON issues
	responseText = repairJSON(responseText)

	var result requirements
	if err := json.Unmarshal([]byte(responseText), &result); err != nil {
		e.logger.Warn("error parsing extractor response", "response", responseText, "err", err)
		return nil, err
	}

	extracted := &core.QueryRequirements{
		Skills:              normalizeSkills(result.Skills),
		ExperienceLevel:     parseExperienceLevel(result.ExperienceLevel),
		SuggestedCategories: result.TestTypes,
		DurationPreference:  parseDurationPreference(result.DurationPreference),
		KeyResponsibilities: result.KeyResponsibilities,
	}
	if extracted.SuggestedCategories == nil {
		extracted.SuggestedCategories = []string{}
	}
	if extracted.KeyResponsibilities == nil {
		extracted.KeyResponsibilities = []string{}
	}

	e.logger.Debug("extracted requirements",
		"skills", len(extracted.Skills),
		"testTypes", len(extracted.SuggestedCategories))

	return extracted, nil
}

// normalizeSkills lowercases, trims and deduplicates the skills returned by the model.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

func parseExperienceLevel(s string) core.ExperienceLevel {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "junior":
		return core.ExperienceJunior
	case "mid":
		return core.ExperienceMid
	case "senior":
		return core.ExperienceSenior
	default:
		return core.ExperienceUnspecified
	}
}

func parseDurationPreference(s string) core.DurationPreference {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "short":
		return core.DurationShort
	case "medium":
		return core.DurationMedium
	case "long":
		return core.DurationLong
	default:
		return core.DurationUnspecified
	}
}

// truncateRunes caps s at n runes, never splitting a multi-byte sequence.
func truncateRunes(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}
