// Package images stores property image files beneath the configured upload
// directory and maps them to the URLs recorded on PropertyImage rows.
package images

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"

	"github.com/beesaferoot/tenancy/internal/config"
)

// Store writes image files to a billy filesystem.
type Store struct {
	fs        billy.Filesystem
	urlPrefix string
}

// New returns a Store over fs. URLs are rooted at urlPrefix.
func New(fs billy.Filesystem, urlPrefix string) *Store {
	return &Store{fs: fs, urlPrefix: "/" + strings.Trim(urlPrefix, "/")}
}

// NewFromConfig roots the store at the configured upload directory on disk.
func NewFromConfig(cfg config.UploadConfig) *Store {
	return New(osfs.New(cfg.Dir), cfg.URLPrefix)
}

// Save writes r as a new file for the property and returns its URL. The
// stored name is random; only the extension of name is kept.
func (s *Store) Save(propertyID uint, name string, r io.Reader) (string, error) {
	dir := path.Join("properties", fmt.Sprint(propertyID))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	rel := path.Join(dir, uuid.NewString()+strings.ToLower(path.Ext(name)))
	f, err := s.fs.Create(rel)
	if err != nil {
		return "", fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(rel)
		return "", fmt.Errorf("write image file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(rel)
		return "", fmt.Errorf("close image file: %w", err)
	}

	return s.urlPrefix + "/" + rel, nil
}

// Remove deletes the file behind url. Removing a missing file is not an
// error.
func (s *Store) Remove(url string) error {
	rel, ok := strings.CutPrefix(url, s.urlPrefix+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return fmt.Errorf("image url %q is outside %s", url, s.urlPrefix)
	}
	if _, err := s.fs.Stat(rel); err != nil {
		return nil
	}
	return s.fs.Remove(rel)
}
