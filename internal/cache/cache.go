// Package cache stores per-file parse results on disk so unchanged files
// are not re-parsed on the next scan. Entries are keyed by content hash,
// JSON-encoded and LZ4-compressed. The cache is strictly best-effort: any
// I/O or decode problem degrades to a miss.
package cache

import (
	"encoding/json"
	"fmt"
	"hash/fnv"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pierrec/lz4/v4"

	"github.com/Sumatoshi-tech/depfang/internal/pysrc"
)

const entryExt = ".lz4"

// Store is a directory-backed parse result cache.
type Store struct {
	dir string
}

// NewStore opens (creating if needed) a cache directory.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	return &Store{dir: dir}, nil
}

// Key derives the cache key for a source file's contents.
func Key(content []byte) string {
	h := fnv.New64a()
	_, _ = h.Write(content)

	return fmt.Sprintf("%016x", h.Sum64())
}

// Get returns the cached records for key, reporting whether the entry was
// present and readable.
func (s *Store) Get(key string) ([]pysrc.ImportRecord, bool) {
	file, err := os.Open(s.entryPath(key))
	if err != nil {
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(lz4.NewReader(file))
	if err != nil {
		slog.Debug("cache entry unreadable", "key", key, "error", err)

		return nil, false
	}

	var records []pysrc.ImportRecord

	if err := json.Unmarshal(data, &records); err != nil {
		slog.Debug("cache entry corrupt", "key", key, "error", err)

		return nil, false
	}

	return records, true
}

// Put stores the records for key. Failures are logged and swallowed; the
// cache never fails a scan.
func (s *Store) Put(key string, records []pysrc.ImportRecord) {
	data, err := json.Marshal(records)
	if err != nil {
		slog.Debug("cache encode failed", "key", key, "error", err)

		return
	}

	file, err := os.Create(s.entryPath(key))
	if err != nil {
		slog.Debug("cache write failed", "key", key, "error", err)

		return
	}
	defer file.Close()

	w := lz4.NewWriter(file)

	if _, err := w.Write(data); err != nil {
		slog.Debug("cache write failed", "key", key, "error", err)

		return
	}

	if err := w.Close(); err != nil {
		slog.Debug("cache write failed", "key", key, "error", err)
	}
}

func (s *Store) entryPath(key string) string {
	return filepath.Join(s.dir, key+entryExt)
}
