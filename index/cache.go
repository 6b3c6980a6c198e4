package index

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/poiesic/recommendit/core"
)

const vectorKeyPrefix = "embvec"

// vectorSer serializes embedding vectors as length-prefixed fixed-width floats.
var vectorSer = ord.NewSliceSer[float32](raw.Float32)

// Cache is an on-disk store of catalog embeddings keyed by content hash,
// so a process restart does not re-encode an unchanged catalog. All
// operations are best-effort: a broken cache degrades to recomputation,
// never to a failed build.
type Cache struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger interface.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Info(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// OpenCache opens the embedding cache at the specified directory,
// creating it if needed.
func OpenCache(dir string) (*Cache, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	opts := badger.DefaultOptions(dir)
	return openCache(opts)
}

// OpenMemoryCache creates an in-memory embedding cache for testing.
func OpenMemoryCache() (*Cache, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	return openCache(opts)
}

func openCache(opts badger.Options) (*Cache, error) {
	logger := slog.Default().With("component", "embedding-cache")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, logger: logger}, nil
}

// Get returns the cached vector for the given content ID, if present.
// Read failures are logged and reported as a miss.
func (c *Cache) Get(id core.ID) ([]float32, bool) {
	var vec []float32
	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(makeVectorKey(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, _, err := vectorSer.Unmarshal(val)
			if err != nil {
				return err
			}
			vec = decoded
			return nil
		})
	})
	if err != nil {
		if err != badger.ErrKeyNotFound {
			c.logger.Warn("cache read failed", "id", uint64(id), "err", err)
		}
		return nil, false
	}
	return vec, true
}

// Put stores a vector under the given content ID. Write failures are
// logged and otherwise ignored.
func (c *Cache) Put(id core.ID, vec []float32) {
	buf := make([]byte, vectorSer.Size(vec))
	vectorSer.Marshal(vec, buf)

	err := c.db.Update(func(txn *badger.Txn) error {
		return txn.Set(makeVectorKey(id), buf)
	})
	if err != nil {
		c.logger.Warn("cache write failed", "id", uint64(id), "err", err)
	}
}

// Close releases the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// makeVectorKey generates the storage key for a cached vector.
func makeVectorKey(id core.ID) []byte {
	return []byte(fmt.Sprintf("%s:%d", vectorKeyPrefix, id))
}
