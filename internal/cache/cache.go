package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/zenkai/internal/config"
	"github.com/mmcdole/zenkai/internal/domain"
)

var bucketQueries = []byte("queries")

// Flag names a "has been loaded at least once" marker
type Flag string

// FlagStats is set once every catalog total has been fetched
const FlagStats Flag = "stats"

// TabFlag returns the loaded flag for a catalog
func TabFlag(tab domain.Tab) Flag {
	return Flag(tab)
}

// Key builds the cache key for a query. Catalog names contain no dash and
// the page is numeric, so the search term can be appended verbatim.
func Key(tab domain.Tab, page int, searchTerm string) string {
	return fmt.Sprintf("%s-%d-%s", tab, page, searchTerm)
}

// itemWrapper tags an Item with its concrete type for JSON serialization
type itemWrapper struct {
	Type           domain.ItemType        `json:"type"`
	Character      *domain.Character      `json:"character,omitempty"`
	Planet         *domain.Planet         `json:"planet,omitempty"`
	Transformation *domain.Transformation `json:"transformation,omitempty"`
}

// Cache maps query keys to item lists for the lifetime of the process.
// Entries never expire. Values live in a memory tier that may be bounded;
// with a disk tier every entry is also written to a session-scoped bbolt
// file, so entries pushed out of memory are still served from disk.
//
// Cache is owned by the orchestrator's state thread and is not meant to be
// shared across goroutines.
type Cache struct {
	memory *lru.Cache[string, []byte]
	db     *bolt.DB
	dir    string // session directory removed on Close
	loaded map[Flag]bool
	logger *slog.Logger
}

// NewMemory returns an unbounded cache with no disk tier
func NewMemory() *Cache {
	c, _ := newCache(0, nil)
	return c
}

func newCache(memoryEntries int, logger *slog.Logger) (*Cache, error) {
	if logger == nil {
		logger = slog.Default()
	}
	size := memoryEntries
	if size <= 0 {
		size = math.MaxInt32
	}
	memory, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory tier: %w", err)
	}
	return &Cache{
		memory: memory,
		loaded: make(map[Flag]bool),
		logger: logger,
	}, nil
}

// Open creates a cache according to cfg. An empty Dir keeps everything in
// memory; config.SessionCacheDir places the bbolt file under the system temp
// dir; any other Dir is used as the parent of a fresh session directory.
func Open(cfg config.CacheConfig, logger *slog.Logger) (*Cache, error) {
	if cfg.Dir == "" {
		if cfg.MemoryEntries > 0 {
			// Without a disk tier a bound would drop queries for good.
			if logger == nil {
				logger = slog.Default()
			}
			logger.Warn("cache.memory_entries ignored without cache.dir", "memory_entries", cfg.MemoryEntries)
		}
		return newCache(0, logger)
	}

	c, err := newCache(cfg.MemoryEntries, logger)
	if err != nil {
		return nil, err
	}

	parent := cfg.Dir
	if parent == config.SessionCacheDir {
		parent = ""
	} else if err := os.MkdirAll(parent, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	dir, err := os.MkdirTemp(parent, "zenkai-cache-")
	if err != nil {
		return nil, fmt.Errorf("failed to create session cache directory: %w", err)
	}

	db, err := bolt.Open(filepath.Join(dir, "zenkai.db"), 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		os.RemoveAll(dir)
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketQueries)
		return err
	})
	if err != nil {
		db.Close()
		os.RemoveAll(dir)
		return nil, err
	}

	c.db = db
	c.dir = dir
	c.logger.Debug("cache opened", "dir", dir, "memory_entries", cfg.MemoryEntries)
	return c, nil
}

// Close releases the disk tier and removes the session directory
func (c *Cache) Close() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	if rmErr := os.RemoveAll(c.dir); rmErr != nil && err == nil {
		err = rmErr
	}
	c.db = nil
	return err
}

// Get returns the items stored under key. Each call decodes a fresh copy.
func (c *Cache) Get(key string) ([]domain.Item, bool) {
	data, ok := c.load(key)
	if !ok {
		return nil, false
	}

	var wrappers []itemWrapper
	if err := json.Unmarshal(data, &wrappers); err != nil {
		c.logger.Error("failed to decode cache entry", "key", key, "error", err)
		return nil, false
	}
	return unwrapItems(wrappers), true
}

// Has reports whether key holds an entry
func (c *Cache) Has(key string) bool {
	if c.memory.Contains(key) {
		return true
	}
	_, ok := c.readDisk(key)
	return ok
}

// Set stores items under key, overwriting any previous entry
func (c *Cache) Set(key string, items []domain.Item) error {
	data, err := json.Marshal(wrapItems(items))
	if err != nil {
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}

	c.memory.Add(key, data)

	if c.db == nil {
		return nil // Memory-only mode
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketQueries).Put([]byte(key), data)
	})
}

// SetLoaded marks flag as loaded
func (c *Cache) SetLoaded(flag Flag) {
	c.loaded[flag] = true
}

// IsLoaded reports whether flag was marked
func (c *Cache) IsLoaded(flag Flag) bool {
	return c.loaded[flag]
}

// load reads key from memory, falling back to disk and promoting on hit
func (c *Cache) load(key string) ([]byte, bool) {
	if data, ok := c.memory.Get(key); ok {
		return data, true
	}
	data, ok := c.readDisk(key)
	if !ok {
		return nil, false
	}
	c.memory.Add(key, data)
	return data, true
}

func (c *Cache) readDisk(key string) ([]byte, bool) {
	if c.db == nil {
		return nil, false
	}

	var data []byte
	err := c.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucketQueries).Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})
	if err != nil {
		c.logger.Error("failed to read cache entry", "key", key, "error", err)
		return nil, false
	}
	return data, data != nil
}

func wrapItems(items []domain.Item) []itemWrapper {
	wrappers := make([]itemWrapper, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case *domain.Character:
			wrappers = append(wrappers, itemWrapper{Type: domain.ItemCharacter, Character: v})
		case *domain.Planet:
			wrappers = append(wrappers, itemWrapper{Type: domain.ItemPlanet, Planet: v})
		case *domain.Transformation:
			wrappers = append(wrappers, itemWrapper{Type: domain.ItemTransformation, Transformation: v})
		}
	}
	return wrappers
}

func unwrapItems(wrappers []itemWrapper) []domain.Item {
	items := make([]domain.Item, 0, len(wrappers))
	for _, w := range wrappers {
		switch w.Type {
		case domain.ItemCharacter:
			if w.Character != nil {
				items = append(items, w.Character)
			}
		case domain.ItemPlanet:
			if w.Planet != nil {
				items = append(items, w.Planet)
			}
		case domain.ItemTransformation:
			if w.Transformation != nil {
				items = append(items, w.Transformation)
			}
		}
	}
	return items
}
