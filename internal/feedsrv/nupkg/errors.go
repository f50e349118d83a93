package nupkg

import (
	"net/http"

	"github.com/tansive/pkgfeed/internal/common/apperrors"
)

var (
	ErrPackageArchive   apperrors.Error = apperrors.New("package archive error").SetStatusCode(http.StatusBadRequest)
	ErrMalformedArchive apperrors.Error = ErrPackageArchive.New("unable to open package archive")
	ErrManifestMissing  apperrors.Error = ErrPackageArchive.New("no manifest in package archive")
	ErrManifestInvalid  apperrors.Error = ErrPackageArchive.New("invalid package manifest")
)
