package cache

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	ioutils "github.com/ravden/gphotos-downloader/internal/io"
	"github.com/ravden/gphotos-downloader/internal/model"
)

// ErrNotFound is returned by Load when no cache file exists for the
// scope. It is expected and recoverable: the caller falls back to
// enumerating the remote service.
var ErrNotFound = errors.New("no cached listing for scope")

// header is the first row of every cache file. Column order matches
// the record fields persisted per item; mimeType is intentionally not
// persisted, so items loaded from cache carry an empty mime type and
// their download URL degrades to the photo suffix.
var header = []string{"id", "filename", "creationTime", "baseUrl"}

// Store persists one CSV listing per scope under a directory.
//
// A listing, once written, is treated as authoritative for its scope:
// Load never consults the remote service and no merging with fresher
// remote state happens. Note that the cached baseUrl capability tokens
// are short-lived; a listing older than roughly an hour yields
// downloads that fail until the cache is bypassed or rewritten.
type Store struct {
	dir string
}

// NewStore creates a Store rooted at dir. The directory is created on
// the first Save.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the cache file location for a scope.
func (s *Store) Path(scope model.Scope) string {
	return filepath.Join(s.dir, scope.CacheKey()+".csv")
}

// Exists reports whether a listing is cached for the scope.
func (s *Store) Exists(scope model.Scope) bool {
	_, err := os.Stat(s.Path(scope))
	return err == nil
}

// Save writes the scope's listing, overwriting any previous file.
// Records are written in order: a header row, then one row per item.
func (s *Store) Save(scope model.Scope, items []model.MediaItem) error {
	if err := ioutils.EnsureDir(s.dir); err != nil {
		return err
	}

	f, err := os.Create(s.Path(scope))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, item := range items {
		if err := w.Write([]string{item.ID, item.Filename, item.CreationTime, item.BaseURL}); err != nil {
			return err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// Load reads the scope's listing back in file order. Returns
// ErrNotFound (wrapped) when no file exists for the scope.
func (s *Store) Load(scope model.Scope) ([]model.MediaItem, error) {
	f, err := os.Open(s.Path(scope))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, scope)
		}
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(header)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Path(scope), err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	items := make([]model.MediaItem, 0, len(rows)-1)
	for _, row := range rows[1:] { // skip header
		items = append(items, model.MediaItem{
			ID:           row[0],
			Filename:     row[1],
			CreationTime: row[2],
			BaseURL:      row[3],
		})
	}
	return items, nil
}
