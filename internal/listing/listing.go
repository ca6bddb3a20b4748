package listing

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Cache memoizes directory listings for the lifetime of the cache. There is
// no invalidation; files added after the first List call are not seen.
// A Cache is not safe for concurrent use.
type Cache struct {
	ignore  []string
	entries map[string][]string
}

// NewCache creates a listing cache. Entries whose name matches one of the
// ignore globs are left out of every listing.
func NewCache(ignore []string) *Cache {
	return &Cache{
		ignore:  ignore,
		entries: make(map[string][]string),
	}
}

// List returns the file names of dir in lexicographic order. Directories
// are skipped.
func (c *Cache) List(dir string) ([]string, error) {
	key := filepath.Clean(dir)
	if files, ok := c.entries[key]; ok {
		return files, nil
	}

	entries, err := os.ReadDir(key)
	if err != nil {
		return nil, fmt.Errorf("error reading image directory: %w", err)
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ignored, err := c.ignored(entry.Name())
		if err != nil {
			return nil, err
		}
		if !ignored {
			files = append(files, entry.Name())
		}
	}

	c.entries[key] = files
	return files, nil
}

// Len returns the number of cached directories
func (c *Cache) Len() int {
	return len(c.entries)
}

func (c *Cache) ignored(name string) (bool, error) {
	for _, pattern := range c.ignore {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return false, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}
