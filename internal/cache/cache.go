// Package cache persists per-file pipeline reports keyed by content hash,
// so unchanged stylesheets are not re-parsed across runs.
package cache

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/obinexus/stylecore/automaton"
	"github.com/obinexus/stylecore/diag"
)

const cacheFileName = "stylecore_cache.gob"

// Report is the cached slice of a pipeline run for one file.
type Report struct {
	Errors  []diag.Diagnostic
	Metrics *automaton.Metrics
}

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

type entry struct {
	Metadata     fileMetadata
	Report       Report
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache is a gob-backed report store. Entries are invalidated when the file
// content changes or the entry outlives MaxAge.
type Cache struct {
	dir     string
	entries map[string]entry
	mutex   sync.Mutex
	maxAge  time.Duration
}

// New opens (or creates) a cache rooted at dir.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	c := &Cache{
		dir:     dir,
		entries: make(map[string]entry),
		maxAge:  24 * time.Hour,
	}
	if err := c.load(); err != nil {
		return nil, fmt.Errorf("load cache: %w", err)
	}
	return c, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.dir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // first run, nothing cached yet
	}
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewDecoder(file).Decode(&c.entries)
}

func (c *Cache) save() error {
	file, err := os.Create(filepath.Join(c.dir, cacheFileName))
	if err != nil {
		return err
	}
	defer file.Close()

	return gob.NewEncoder(file).Encode(c.entries)
}

// Set records the report for a file at its current content hash.
func (c *Cache) Set(filename string, report Report) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	metadata, err := getFileMetadata(filename)
	if err != nil {
		return fmt.Errorf("stat %s: %w", filename, err)
	}

	now := time.Now()
	c.entries[filename] = entry{
		Metadata:     metadata,
		Report:       report,
		CreatedAt:    now,
		LastAccessed: now,
	}
	return c.save()
}

// Get returns the cached report for a file if it is still valid.
func (c *Cache) Get(filename string) (Report, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	e, exists := c.entries[filename]
	if !exists {
		return Report{}, false
	}
	if c.isEntryInvalid(filename, e) {
		delete(c.entries, filename)
		return Report{}, false
	}

	e.LastAccessed = time.Now()
	c.entries[filename] = e
	return e.Report, true
}

func (c *Cache) isEntryInvalid(filename string, e entry) bool {
	if time.Since(e.CreatedAt) > c.maxAge {
		return true
	}
	current, err := getFileMetadata(filename)
	return err != nil || current != e.Metadata
}

// SetMaxAge overrides the default 24h entry lifetime.
func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]entry)
	_ = c.save() // manual operation, error is not actionable
}

func getFileMetadata(filename string) (fileMetadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return fileMetadata{}, err
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileMetadata{}, err
	}
	info, err := file.Stat()
	if err != nil {
		return fileMetadata{}, err
	}

	return fileMetadata{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}
