package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Sum1ght/schand/pkg/config"
	pkgerrors "github.com/Sum1ght/schand/pkg/errors"
)

// DiskStore persists uploaded files under a single root directory. Names are
// flattened to their base component so a caller can never escape the root.
type DiskStore struct {
	root     string
	maxBytes int64
}

// NewDiskStore ensures the root directory exists and returns a store bound to it.
func NewDiskStore(cfg config.StorageConfig) (*DiskStore, error) {
	if strings.TrimSpace(cfg.RootDir) == "" {
		return nil, fmt.Errorf("storage root dir is required")
	}
	if err := os.MkdirAll(cfg.RootDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage root: %w", err)
	}
	maxBytes := int64(cfg.MaxUploadMB) * 1024 * 1024
	return &DiskStore{root: cfg.RootDir, maxBytes: maxBytes}, nil
}

// MaxBytes returns the configured upload size cap in bytes (0 = unlimited).
func (s *DiskStore) MaxBytes() int64 {
	return s.maxBytes
}

// Save writes the reader's contents under the given name, overwriting any
// existing file with the same name.
func (s *DiskStore) Save(name string, r io.Reader) (string, error) {
	cleaned, err := s.cleanName(name)
	if err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(s.root, cleaned))
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create file")
	}
	defer dst.Close()

	src := r
	if s.maxBytes > 0 {
		src = io.LimitReader(r, s.maxBytes+1)
	}
	written, err := io.Copy(dst, src)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write file")
	}
	if s.maxBytes > 0 && written > s.maxBytes {
		_ = os.Remove(filepath.Join(s.root, cleaned))
		return "", pkgerrors.New(pkgerrors.CodeValidation, "file exceeds upload size limit")
	}
	return cleaned, nil
}

// SaveUnique stores the file under a millisecond-timestamp-prefixed name so
// repeated uploads of the same filename never collide.
func (s *DiskStore) SaveUnique(name string, r io.Reader) (string, error) {
	cleaned, err := s.cleanName(name)
	if err != nil {
		return "", err
	}
	prefixed := strconv.FormatInt(time.Now().UnixMilli(), 10) + "-" + cleaned
	return s.Save(prefixed, r)
}

// Open returns a reader for the stored file.
func (s *DiskStore) Open(name string) (io.ReadCloser, error) {
	cleaned, err := s.cleanName(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(s.root, cleaned))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "file not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "open file")
	}
	return f, nil
}

// Delete removes the stored file. Deleting a missing file is not an error.
func (s *DiskStore) Delete(name string) error {
	cleaned, err := s.cleanName(name)
	if err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.root, cleaned)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete file")
	}
	return nil
}

func (s *DiskStore) cleanName(name string) (string, error) {
	base := filepath.Base(strings.TrimSpace(name))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "file name is required")
	}
	return base, nil
}
