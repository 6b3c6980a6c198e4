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


// Package index pre-computes the embedding of every catalog record into an
// immutable, read-only vector index.
//
// Building runs once at startup with O(N) encoder calls, batched across a
// worker pool. An optional BadgerDB-backed cache keyed by content hash lets
// restarts skip re-encoding unchanged records.
package index
