package apis

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/tansive/pkgfeed/internal/common/httpx"
	"github.com/tansive/pkgfeed/internal/feedsrv/blobstore"
	"github.com/tansive/pkgfeed/internal/feedsrv/feedmanager"
	"github.com/tansive/pkgfeed/internal/feedsrv/nupkg"
	"github.com/tansive/pkgfeed/internal/feedsrv/serviceindex"
)

type packageVersionsRsp struct {
	Versions []string `json:"versions"`
}

func listVersions(r *http.Request) (*httpx.Response, error) {
	name := chi.URLParam(r, "packageName")
	versions, err := feedmanager.ListVersions(r.Context(), name)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   &packageVersionsRsp{Versions: versions},
	}, nil
}

// downloadFile serves both the archive and the manifest. The protocol
// encodes the package identity twice in the URL; the file segment must
// restate the name (and, for archives, the version) exactly or the lookup
// is a not-found, matching upstream client expectations.
func downloadFile(r *http.Request) (*httpx.Response, error) {
	name := chi.URLParam(r, "packageName")
	version := chi.URLParam(r, "packageVersion")
	fileName := chi.URLParam(r, "fileName")

	if !blobstore.ValidBlobName(name) || !blobstore.ValidBlobName(version) {
		return nil, httpx.ErrNotFound()
	}

	switch {
	case strings.HasSuffix(fileName, blobstore.PackageExtension):
		if fileName != blobstore.PackageFileName(name, version) {
			return nil, httpx.ErrNotFound()
		}
		stream, err := feedmanager.DownloadPackage(r.Context(), name, version)
		if err != nil {
			return nil, err
		}
		return &httpx.Response{
			StatusCode:  http.StatusOK,
			ContentType: "application/zip",
			Stream:      stream,
		}, nil
	case strings.HasSuffix(fileName, nupkg.ManifestExtension):
		if fileName != name+nupkg.ManifestExtension {
			return nil, httpx.ErrNotFound()
		}
		stream, err := feedmanager.DownloadManifest(r.Context(), name, version)
		if err != nil {
			return nil, err
		}
		return &httpx.Response{
			StatusCode:  http.StatusOK,
			ContentType: "application/xml",
			Stream:      stream,
		}, nil
	default:
		return nil, httpx.ErrNotFound()
	}
}

func getMetadata(r *http.Request) (*httpx.Response, error) {
	name := chi.URLParam(r, "packageName")
	doc, err := feedmanager.RenderRegistration(r.Context(), name, serviceindex.Origin(r), r.URL.Path)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   doc,
	}, nil
}
