// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.RequirementExtractor, and ai.AIProvider for use in unit tests. The mocks
// allow tests to run without external AI service dependencies and enable
// controlled, deterministic behavior.
//
// # Default Behavior
//
//   - MockEmbedder: Returns deterministic vectors based on text hash
//   - MockRequirementExtractor: Delegates to the heuristic keyword extractor
//   - MockProvider: Aggregates mock embedder and extractor
//
// Custom behavior can be injected via the function fields on each mock, and
// call counts are tracked for assertions.
package mock
