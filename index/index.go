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


package index

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/recommendit/ai"
	"github.com/poiesic/recommendit/core"
)

// Index holds the pre-computed embedding for every catalog record,
// aligned 1:1 with the record ordering. It is built once at startup and
// shared read-only across requests; it never changes afterward.
type Index struct {
	records []*core.Assessment
	vectors [][]float32
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Dim returns the embedding dimensionality, or 0 for an empty index.
func (ix *Index) Dim() int {
	if len(ix.vectors) == 0 {
		return 0
	}
	return len(ix.vectors[0])
}

// Records returns the indexed records in catalog order.
// The returned slice is shared and must not be mutated.
func (ix *Index) Records() []*core.Assessment {
	return ix.records
}

// Vector returns the embedding for the record at position i.
func (ix *Index) Vector(i int) []float32 {
	return ix.vectors[i]
}

// builder carries the configuration for one Build call.
type builder struct {
	poolSize   int
	batchSize  int
	cache      *Cache
	cacheModel string
	logger     *slog.Logger
}

// Option configures index building.
type Option func(*builder) error

// WithPoolSize sets the worker pool size for concurrent embedding batches.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(b *builder) error {
		if size < 1 {
			size = 1
		}
		b.poolSize = size
		return nil
	}
}

// WithBatchSize sets how many records are embedded per batch call.
// Default is 32.
func WithBatchSize(size int) Option {
	return func(b *builder) error {
		if size < 1 {
			size = 1
		}
		b.batchSize = size
		return nil
	}
}

// WithCache attaches an embedding cache. Cached vectors are reused instead
// of re-encoded; freshly computed vectors are written back. The model string
// identifies the embedding model that produced the vectors: it is part of
// the cache key, so vectors encoded by a different model never hit. A nil
// cache is allowed and means no caching.
func WithCache(cache *Cache, model string) Option {
	return func(b *builder) error {
		b.cache = cache
		b.cacheModel = model
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(b *builder) error {
		if logger == nil {
			logger = slog.Default()
		}
		b.logger = logger
		return nil
	}
}

// Build encodes the combined text of every record and returns the resulting
// index. Encoding runs in batches on a worker pool; result order always
// matches record order. Rebuilding from the same records yields functionally
// equivalent rankings.
//
// Any embedding failure aborts the build: the caller is expected to treat
// that as model unavailability and downgrade to lexical ranking.
func Build(ctx context.Context, records []*core.Assessment, embedder ai.Embedder, opts ...Option) (*Index, error) {
	if embedder == nil {
		return nil, ErrEmbedderRequired
	}

	b := &builder{
		poolSize:  max(runtime.NumCPU()/2, 1),
		batchSize: 32,
		logger:    slog.Default().With("component", "index-builder"),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}

	vectors := make([][]float32, len(records))

	// Satisfy what we can from the cache first.
	var pending []int // record positions still needing an embedding
	for i, record := range records {
		if b.cache != nil {
			if vec, ok := b.cache.Get(b.cacheKey(record)); ok {
				vectors[i] = vec
				continue
			}
		}
		pending = append(pending, i)
	}
	if b.cache != nil {
		b.logger.Info("embedding cache consulted",
			"records", len(records),
			"hits", len(records)-len(pending))
	}

	if len(pending) > 0 {
		if err := b.embedPending(ctx, records, vectors, pending, embedder); err != nil {
			return nil, err
		}
	}

	// Dimensionality must be constant across the whole index.
	dim := -1
	for i, vec := range vectors {
		if dim == -1 {
			dim = len(vec)
			continue
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("%w: record %d has dim %d, expected %d",
				ErrDimensionMismatch, i, len(vec), dim)
		}
	}

	b.logger.Info("catalog index built", "records", len(records), "dim", max(dim, 0))
	return &Index{records: records, vectors: vectors}, nil
}

// embedPending encodes the records at the pending positions in batches on a
// worker pool, writing results into their slots in vectors.
func (b *builder) embedPending(ctx context.Context, records []*core.Assessment, vectors [][]float32, pending []int, embedder ai.Embedder) error {
	pool, err := ants.NewPool(b.poolSize)
	if err != nil {
		return err
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	for start := 0; start < len(pending); start += b.batchSize {
		batch := pending[start:min(start+b.batchSize, len(pending))]

		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()

			texts := make([]string, len(batch))
			for i, pos := range batch {
				texts[i] = records[pos].CombinedText()
			}

			embeddings, err := embedder.EmbedTexts(ctx, texts)
			if err == nil && len(embeddings) != len(texts) {
				err = fmt.Errorf("embedding result mismatch. expected %d, received %d", len(texts), len(embeddings))
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for i, pos := range batch {
				vectors[pos] = embeddings[i]
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		b.logger.Error("catalog embedding failed", "err", firstErr)
		return firstErr
	}

	if b.cache != nil {
		for _, pos := range pending {
			b.cache.Put(b.cacheKey(records[pos]), vectors[pos])
		}
	}
	return nil
}

// cacheKey derives the deterministic cache identity of a record's embedding.
// The key covers both the embedded text and the model that encoded it: a
// change to either misses and re-encodes, so stale vectors are never reused
// across catalog edits or model swaps.
func (b *builder) cacheKey(record *core.Assessment) core.ID {
	return core.IDFromContent(b.cacheModel + "\x00" + record.CombinedText())
}
