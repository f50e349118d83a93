// Package blobstore stores package archives as files in a single directory.
// Uploads are written to an exclusively created temporary name and renamed
// to the canonical {id}.{version}.nupkg once validated, so a partially
// written archive is never visible under its final name.
package blobstore

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/tansive/pkgfeed/internal/common/apperrors"
)

var (
	ErrBlobStore apperrors.Error = apperrors.New("blob store error").SetStatusCode(http.StatusInternalServerError)
	ErrExists    apperrors.Error = ErrBlobStore.New("blob already exists").SetStatusCode(http.StatusConflict)
	ErrNotFound  apperrors.Error = ErrBlobStore.New("blob not found").SetStatusCode(http.StatusNotFound)
)

const PackageExtension = ".nupkg"

type Store struct {
	dir string
}

func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// PackageFileName is the canonical blob name for a package version.
func PackageFileName(id, version string) string {
	return fmt.Sprintf("%s.%s%s", id, version, PackageExtension)
}

// TempFileName returns a random name for an upload in flight.
func TempFileName() string {
	n, _ := gonanoid.New(16)
	return "upload-" + n + ".tmp"
}

func (s *Store) path(name string) string {
	// blobs live directly in the store directory; reject names that
	// escape it
	return filepath.Join(s.dir, filepath.Base(name))
}

// CreateExclusive writes r to a freshly created file. It fails with
// ErrExists if the name is already taken and never overwrites.
func (s *Store) CreateExclusive(name string, r io.Reader) apperrors.Error {
	f, err := os.OpenFile(s.path(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return ErrExists.New("blob already exists").Err(err)
		}
		return ErrBlobStore.New("unable to create blob").Err(err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(s.path(name))
		return ErrBlobStore.New("unable to write blob").Err(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(s.path(name))
		return ErrBlobStore.New("unable to write blob").Err(err)
	}
	return nil
}

// Rename moves a blob to its canonical name. It refuses to replace an
// existing blob: whatever already occupies the target name stays
// authoritative. The exists check and the rename are not atomic; callers
// treat ErrExists as a duplicate-upload conflict.
func (s *Store) Rename(oldName, newName string) apperrors.Error {
	if s.Exists(newName) {
		return ErrExists
	}
	if err := os.Rename(s.path(oldName), s.path(newName)); err != nil {
		return ErrBlobStore.New("unable to rename blob").Err(err)
	}
	return nil
}

func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// Open returns a read handle for a stored blob.
func (s *Store) Open(name string) (*os.File, apperrors.Error) {
	f, err := os.Open(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, ErrBlobStore.New("unable to open blob").Err(err)
	}
	return f, nil
}

// Remove deletes a blob. Removing a missing blob is not an error so
// best-effort cleanup paths can call it unconditionally.
func (s *Store) Remove(name string) apperrors.Error {
	if err := os.Remove(s.path(name)); err != nil && !os.IsNotExist(err) {
		return ErrBlobStore.New("unable to remove blob").Err(err)
	}
	return nil
}

// ValidBlobName rejects path separators and traversal in client-derived
// name/version segments before they reach the filesystem.
func ValidBlobName(segment string) bool {
	if segment == "" || segment == "." || segment == ".." {
		return false
	}
	return !strings.ContainsAny(segment, "/\\")
}
