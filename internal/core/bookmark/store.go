// Package bookmark maps single-character mnemonic keys to filesystem paths and
// persists the mapping to a flat text file.
package bookmark

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// PathResolver supplies the location of the bookmark file.
type PathResolver interface {
	BookmarkPath() (string, error)
}

// PathResolverFunc adapts a function to a PathResolver.
type PathResolverFunc func() (string, error)

// BookmarkPath implements PathResolver.
func (f PathResolverFunc) BookmarkPath() (string, error) {
	return f()
}

// StaticPath is a PathResolver that always returns the same path.
type StaticPath string

// BookmarkPath implements PathResolver.
func (p StaticPath) BookmarkPath() (string, error) {
	return string(p), nil
}

// Entry is a single key to path association.
type Entry struct {
	Key  rune
	Path string
}

type entryJSON struct {
	Key  string `json:"key"`
	Path string `json:"path"`
}

// MarshalJSON encodes the key as a one character string.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(entryJSON{Key: string(e.Key), Path: e.Path})
}

// Store holds the key to path mapping. It is owned by a single overlay and
// is not safe for concurrent use.
type Store struct {
	resolver PathResolver
	mapping  map[rune]string
}

// New creates an empty store backed by the file the resolver points to.
// Nothing is read until Load is called.
func New(resolver PathResolver) *Store {
	return &Store{
		resolver: resolver,
		mapping:  make(map[rune]string),
	}
}

// Open creates a store and attempts to load it. A failed load leaves the
// store empty; the failure is logged and not returned.
func Open(resolver PathResolver, logger zerolog.Logger) *Store {
	s := New(resolver)
	if err := s.Load(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug().Err(err).Msg("no bookmark file yet")
		} else {
			logger.Warn().Err(err).Msg("failed to load bookmarks")
		}
	}
	return s
}

// Load reads the bookmark file and replaces the current mapping with its
// contents. Lines are read in pairs: a key line followed by a path line. Only
// the first character of a key line is used and pairs with an empty key line
// are skipped.
func (s *Store) Load() error {
	path, err := s.resolver.BookmarkPath()
	if err != nil {
		return fmt.Errorf("resolve bookmark path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read bookmarks: %w", err)
	}

	mapping, err := parse(string(data))
	if err != nil {
		return fmt.Errorf("parse bookmarks %s: %w", path, err)
	}

	s.mapping = mapping
	return nil
}

func parse(content string) (map[rune]string, error) {
	mapping := make(map[rune]string)

	scanner := bufio.NewScanner(strings.NewReader(content))
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)

	var (
		key    string
		hasKey bool
	)
	for scanner.Scan() {
		line := scanner.Text()
		if !hasKey {
			key, hasKey = line, true
			continue
		}
		hasKey = false

		r, size := utf8.DecodeRuneInString(key)
		if size == 0 {
			continue
		}
		mapping[r] = line
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return mapping, nil
}

// Save writes the whole mapping to the bookmark file, replacing it.
func (s *Store) Save() error {
	path, err := s.resolver.BookmarkPath()
	if err != nil {
		return fmt.Errorf("resolve bookmark path: %w", err)
	}

	var b strings.Builder
	for _, e := range s.Entries() {
		b.WriteRune(e.Key)
		b.WriteByte('\n')
		b.WriteString(e.Path)
		b.WriteByte('\n')
	}

	if err := writeFile(path, []byte(b.String())); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}

// writeFile replaces path with data using write-to-temp-then-rename so a
// failed write never leaves a truncated bookmark file behind.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Add maps key to path, overwriting any previous path, and saves the store.
func (s *Store) Add(key rune, path string) error {
	s.mapping[key] = path
	return s.Save()
}

// Get returns the path stored for key or an error wrapping ErrNotFound.
func (s *Store) Get(key rune) (string, error) {
	path, ok := s.mapping[key]
	if !ok {
		return "", fmt.Errorf("bookmark %q: %w", key, ErrNotFound)
	}
	return path, nil
}

// Delete removes key from the in-memory mapping. The file is left untouched
// until the next Save.
func (s *Store) Delete(key rune) {
	delete(s.mapping, key)
}

// Len returns the number of bookmarks.
func (s *Store) Len() int {
	return len(s.mapping)
}

// Entries returns all bookmarks ordered by key.
func (s *Store) Entries() []Entry {
	entries := make([]Entry, 0, len(s.mapping))
	for k, p := range s.mapping {
		entries = append(entries, Entry{Key: k, Path: p})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return int(a.Key) - int(b.Key)
	})
	return entries
}
