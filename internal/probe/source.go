package probe

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// SourceCache answers literal substring queries against files, reading
// each path at most once for the cache's lifetime.
type SourceCache struct {
	log *slog.Logger

	mu      sync.Mutex
	content map[string]string
	reads   int
}

// NewSourceCache creates an empty cache.
func NewSourceCache(log *slog.Logger) *SourceCache {
	return &SourceCache{log: log, content: map[string]string{}}
}

// Contains reports whether literal occurs in the file at path.
// Read errors are returned, not recovered.
func (c *SourceCache) Contains(path, literal string) (bool, error) {
	c.log.Info(fmt.Sprintf("Checking whether string %q is in %s", literal, path))

	content, err := c.Read(path)
	if err != nil {
		return false, err
	}

	found := strings.Contains(content, literal)
	c.log.Info(fmt.Sprintf("--> %s", pyBool(found)))
	return found, nil
}

// Read returns the cached content of path, loading it on first access.
func (c *SourceCache) Read(path string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if s, ok := c.content[path]; ok {
		return s, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // target path comes from harness configuration
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	c.reads++
	c.content[path] = string(data)
	return c.content[path], nil
}

// Reads returns how many times the cache went to disk.
func (c *SourceCache) Reads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads
}
