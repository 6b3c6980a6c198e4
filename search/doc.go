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


// Package search ranks catalog records against a query.
//
// The Ranker supports two strategies with identical output shapes:
//
//   - Vector similarity: cosine similarity between the query embedding and
//     the pre-built catalog index, rescaled to a 0-100 relevance score.
//   - Lexical overlap: token-in-text counting, normalized against the best
//     match in the catalog, used whenever no embedding model is available.
//
// Ranking is deterministic: equal scores keep catalog order.
package search
