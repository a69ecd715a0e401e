package driver

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"

	"gaia/internal/project"
)

// Increment when the payload format changes.
const cacheSchemaVersion uint16 = 1

// Cache persists per-item solutions on disk, keyed by the digest of
// the item spec. Only clean items are cached; failing items are
// re-checked every run. Safe for concurrent use.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// CacheBinding is one solved variable binding in rendered form.
type CacheBinding struct {
	Name string
	Type string
}

// CachePayload is the stored result of one clean item check.
type CachePayload struct {
	Schema    uint16
	Item      string
	Bindings  []CacheBinding
	ExprTypes []string
}

// OpenCache initializes a cache rooted at dir. An empty dir selects
// the XDG cache location.
func OpenCache(dir string) (*Cache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, "gaia")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

func (c *Cache) pathFor(key project.Digest) string {
	// Items live under "items" so the directory stays easy to sweep.
	return filepath.Join(c.dir, "items", hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes a payload.
func (c *Cache) Put(key project.Digest, payload *CachePayload) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get reads a payload; the bool reports a usable hit. Stale schemas
// and unreadable entries count as misses.
func (c *Cache) Get(key project.Digest, out *CachePayload) (bool, error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer f.Close()

	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, nil
	}
	if out.Schema != cacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// itemDigest keys an item by its canonical wire form.
func itemDigest(spec *ItemSpec) (project.Digest, error) {
	data, err := json.Marshal(spec)
	if err != nil {
		return project.Digest{}, err
	}
	return project.HashBytes(data), nil
}
