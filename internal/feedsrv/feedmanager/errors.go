package feedmanager

import (
	"net/http"

	"github.com/tansive/pkgfeed/internal/common/apperrors"
)

var (
	ErrFeed apperrors.Error = apperrors.New("feed error").SetStatusCode(http.StatusInternalServerError)

	ErrBadUpload       apperrors.Error = ErrFeed.New("invalid package upload").SetStatusCode(http.StatusBadRequest)
	ErrPackageExists   apperrors.Error = ErrFeed.New("package version already exists").SetStatusCode(http.StatusConflict)
	ErrPackageNotFound apperrors.Error = ErrFeed.New("package not found").SetStatusCode(http.StatusNotFound)
	ErrNotOwner        apperrors.Error = ErrFeed.New("api key does not own this package").SetStatusCode(http.StatusUnauthorized)

	// ErrManifestIntegrity marks a stored archive without a manifest entry.
	// Ingestion guarantees should make this unreachable; it is surfaced as
	// an internal error rather than a crash.
	ErrManifestIntegrity apperrors.Error = ErrFeed.New("stored package has no manifest").SetStatusCode(http.StatusInternalServerError)
)
