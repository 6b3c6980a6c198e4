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


// Package ai provides abstractions for the AI services used in Recommendit.
//
// This package defines interfaces for text embedding and job-requirement
// extraction. It follows the dependency inversion principle, allowing the
// ranking and assembly logic to depend on abstractions rather than concrete
// implementations.
//
// Two implementation sub-packages are provided:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// Both AI services are optional enrichments. When no Embedder can be
// constructed the system serves lexical fallback rankings; when no
// RequirementExtractor is available, HeuristicRequirements provides a
// deterministic keyword-based fallback. Construction failures are therefore
// surfaced to the caller but must never be treated as fatal.
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// interface types to enforce abstraction. Mock constructors return concrete
// types to enable behavior injection and call-count assertions in tests.
package ai
