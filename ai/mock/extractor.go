package mock

import (
	"context"
	"sync/atomic"

	"github.com/poiesic/recommendit/ai"
	"github.com/poiesic/recommendit/core"
)

// MockRequirementExtractor is a test double for ai.RequirementExtractor.
// It allows custom behavior injection via function fields.
type MockRequirementExtractor struct {
	// ExtractRequirementsFunc is called by ExtractRequirements if set.
	// If nil, the heuristic keyword extractor is used, which keeps the
	// default behavior deterministic and offline.
	ExtractRequirementsFunc func(ctx context.Context, text string) (*core.QueryRequirements, error)

	callCount atomic.Int64
}

// NewMockRequirementExtractor creates a mock extractor with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockExtractor().
func NewMockRequirementExtractor() *MockRequirementExtractor {
	return &MockRequirementExtractor{}
}

// ExtractRequirements extracts requirements from text.
// Default behavior delegates to ai.HeuristicRequirements.
func (m *MockRequirementExtractor) ExtractRequirements(ctx context.Context, text string) (*core.QueryRequirements, error) {
	m.callCount.Add(1)

	if m.ExtractRequirementsFunc != nil {
		return m.ExtractRequirementsFunc(ctx, text)
	}

	return ai.HeuristicRequirements(text), nil
}

// CallCount returns the number of times ExtractRequirements was called.
func (m *MockRequirementExtractor) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockRequirementExtractor) Reset() {
	m.callCount.Store(0)
	m.ExtractRequirementsFunc = nil
}
