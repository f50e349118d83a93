package feedmanager

import (
	"context"
	"errors"
	"io"
	"os"

	"github.com/tansive/pkgfeed/internal/common/apperrors"
	"github.com/tansive/pkgfeed/internal/feedsrv/blobstore"
	"github.com/tansive/pkgfeed/internal/feedsrv/db"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/dberror"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/models"
	"github.com/tansive/pkgfeed/internal/feedsrv/feedcontext"
	"github.com/tansive/pkgfeed/internal/feedsrv/nupkg"
	"github.com/tansive/pkgfeed/internal/feedsrv/registration"
)

// ListVersions returns all stored versions of a package, matched
// case-insensitively. An unknown package is a not-found error, not an empty
// list.
func ListVersions(ctx context.Context, name string) ([]string, apperrors.Error) {
	packages, err := listPackages(ctx, name)
	if err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(packages))
	for _, p := range packages {
		versions = append(versions, p.Version)
	}
	return versions, nil
}

// DownloadPackage opens the stored archive for a package version. The
// lookup is case-insensitive; the blob path derives from the stored casing
// so case-variant URLs still resolve.
func DownloadPackage(ctx context.Context, name, version string) (io.ReadCloser, apperrors.Error) {
	f, _, err := openPackageBlob(ctx, name, version)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// DownloadManifest streams the manifest entry out of the stored archive
// without extracting the rest of it. A stored archive with no manifest is a
// data-integrity violation surfaced as an internal error.
func DownloadManifest(ctx context.Context, name, version string) (io.ReadCloser, apperrors.Error) {
	f, info, err := openPackageBlob(ctx, name, version)
	if err != nil {
		return nil, err
	}
	rc, merr := nupkg.OpenManifest(f, info.Size())
	if merr != nil {
		f.Close()
		if errors.Is(merr, nupkg.ErrManifestMissing) {
			return nil, ErrManifestIntegrity
		}
		return nil, ErrFeed.New("unable to read stored package").Err(merr)
	}
	return &manifestReadCloser{ReadCloser: rc, archive: f}, nil
}

// RenderRegistration builds the registration index document for a package.
func RenderRegistration(ctx context.Context, name, origin, requestPath string) (*registration.Document, apperrors.Error) {
	packages, err := listPackages(ctx, name)
	if err != nil {
		return nil, err
	}
	doc := registration.Render(origin, requestPath, packages)
	return &doc, nil
}

func listPackages(ctx context.Context, name string) ([]*models.Package, apperrors.Error) {
	packages, err := db.DB(ctx).ListPackagesByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(packages) == 0 {
		return nil, ErrPackageNotFound
	}
	return packages, nil
}

func openPackageBlob(ctx context.Context, name, version string) (*os.File, os.FileInfo, apperrors.Error) {
	blobs := feedcontext.BlobStore(ctx)
	if blobs == nil {
		return nil, nil, ErrFeed.New("blob store not configured")
	}
	pkg, err := db.DB(ctx).GetPackage(ctx, name, version)
	if err != nil {
		if errors.Is(err, dberror.ErrNotFound) {
			return nil, nil, ErrPackageNotFound
		}
		return nil, nil, err
	}
	f, berr := blobs.Open(blobstore.PackageFileName(pkg.Name, pkg.Version))
	if berr != nil {
		if errors.Is(berr, blobstore.ErrNotFound) {
			return nil, nil, ErrPackageNotFound
		}
		return nil, nil, berr
	}
	info, serr := f.Stat()
	if serr != nil {
		f.Close()
		return nil, nil, ErrFeed.New("unable to stat stored package").Err(serr)
	}
	return f, info, nil
}

// manifestReadCloser closes the underlying archive together with the
// manifest entry stream.
type manifestReadCloser struct {
	io.ReadCloser
	archive *os.File
}

func (m *manifestReadCloser) Close() error {
	err := m.ReadCloser.Close()
	if cerr := m.archive.Close(); err == nil {
		err = cerr
	}
	return err
}
