// Package feedmanager orchestrates the feed's package operations: the
// ingestion pipeline, the download and listing paths, and deletion.
package feedmanager

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tansive/pkgfeed/internal/common/apperrors"
	"github.com/tansive/pkgfeed/internal/feedsrv/blobstore"
	"github.com/tansive/pkgfeed/internal/feedsrv/db"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/dberror"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/models"
	"github.com/tansive/pkgfeed/internal/feedsrv/feedcontext"
	"github.com/tansive/pkgfeed/internal/feedsrv/nupkg"
)

// Push ingests one uploaded archive on behalf of userID and returns the
// extracted package identity.
//
// The upload lands in an exclusively created temporary blob, is inspected
// there, and is renamed to its canonical {id}.{version}.nupkg name only
// after validation, so a partial upload is never visible under a canonical
// name. The duplicate check ahead of the insert is advisory; the packages
// primary key is the authoritative guard, and a late unique violation is
// still reported as a conflict. A crash between rename and insert leaves an
// orphaned blob with no record; that leak is reconciled out of band.
func Push(ctx context.Context, content io.Reader, userID uuid.UUID) (*models.Package, apperrors.Error) {
	blobs := feedcontext.BlobStore(ctx)
	if blobs == nil {
		return nil, ErrFeed.New("blob store not configured")
	}

	tmpName := blobstore.TempFileName()
	if err := blobs.CreateExclusive(tmpName, content); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to store upload")
		return nil, err
	}

	manifest, err := inspectBlob(blobs, tmpName)
	if err != nil {
		cleanupTemp(ctx, blobs, tmpName)
		if errors.Is(err, nupkg.ErrPackageArchive) {
			return nil, ErrBadUpload.New("unable to read package archive").Err(err)
		}
		// the blob store failing to reopen its own temp file is a
		// server-side fault, not a bad upload
		return nil, err
	}

	if _, err := db.DB(ctx).GetPackage(ctx, manifest.ID, manifest.Version); err == nil {
		cleanupTemp(ctx, blobs, tmpName)
		return nil, ErrPackageExists
	} else if !errors.Is(err, dberror.ErrNotFound) {
		cleanupTemp(ctx, blobs, tmpName)
		return nil, err
	}

	canonical := blobstore.PackageFileName(manifest.ID, manifest.Version)
	if err := blobs.Rename(tmpName, canonical); err != nil {
		cleanupTemp(ctx, blobs, tmpName)
		if errors.Is(err, blobstore.ErrExists) {
			// a concurrent push won the rename; its blob stays
			// authoritative
			return nil, ErrPackageExists
		}
		return nil, err
	}

	pkg := &models.Package{
		Name:             manifest.ID,
		Version:          manifest.Version,
		TargetFrameworks: manifest.TargetFrameworks,
		UploadTime:       time.Now(),
		UploadUserID:     userID,
	}
	if err := db.DB(ctx).CreatePackage(ctx, pkg); err != nil {
		if errors.Is(err, dberror.ErrAlreadyExists) {
			// lost the insert race after winning the rename; the blob
			// under the canonical name serves the winning record
			return nil, ErrPackageExists
		}
		// no record refers to the blob; clean it up
		cleanupTemp(ctx, blobs, canonical)
		return nil, err
	}

	log.Ctx(ctx).Info().Str("name", pkg.Name).Str("version", pkg.Version).Msg("package published")
	return pkg, nil
}

func inspectBlob(blobs *blobstore.Store, name string) (*nupkg.Manifest, apperrors.Error) {
	f, err := blobs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return nupkg.InspectFile(f)
}

func cleanupTemp(ctx context.Context, blobs *blobstore.Store, name string) {
	if err := blobs.Remove(name); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("blob", name).Msg("unable to clean up blob")
	}
}
