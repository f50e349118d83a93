package feedmanager

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tansive/pkgfeed/internal/common/apperrors"
	"github.com/tansive/pkgfeed/internal/feedsrv/blobstore"
	"github.com/tansive/pkgfeed/internal/feedsrv/db"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/dberror"
	"github.com/tansive/pkgfeed/internal/feedsrv/feedcontext"
)

// Delete removes a package version on behalf of userID. Existence is
// checked before ownership: a missing package is not-found regardless of
// the credential, and a package uploaded by someone else is unauthorized
// rather than not-found.
func Delete(ctx context.Context, name, version string, userID uuid.UUID) apperrors.Error {
	blobs := feedcontext.BlobStore(ctx)
	if blobs == nil {
		return ErrFeed.New("blob store not configured")
	}

	pkg, err := db.DB(ctx).GetPackage(ctx, name, version)
	if err != nil {
		if errors.Is(err, dberror.ErrNotFound) {
			return ErrPackageNotFound
		}
		return err
	}
	if pkg.UploadUserID != userID {
		log.Ctx(ctx).Info().Str("name", pkg.Name).Str("version", pkg.Version).Msg("delete rejected: not the uploader")
		return ErrNotOwner
	}

	blobName := blobstore.PackageFileName(pkg.Name, pkg.Version)
	if !blobs.Exists(blobName) {
		return ErrPackageNotFound
	}
	if err := blobs.Remove(blobName); err != nil {
		return err
	}
	if err := db.DB(ctx).DeletePackage(ctx, pkg.Name, pkg.Version); err != nil {
		if errors.Is(err, dberror.ErrNotFound) {
			return ErrPackageNotFound
		}
		return err
	}

	log.Ctx(ctx).Info().Str("name", pkg.Name).Str("version", pkg.Version).Msg("package deleted")
	return nil
}
