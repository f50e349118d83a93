package apis

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tansive/pkgfeed/internal/common/httpx"
	"github.com/tansive/pkgfeed/internal/feedsrv/apikeys"
	"github.com/tansive/pkgfeed/internal/feedsrv/feedmanager"
)

// uploads beyond this spill to disk while the multipart form is parsed
const maxUploadMemory = 32 << 20

// pushPackage ingests an uploaded package archive. The api key is verified
// before the request body is touched.
func pushPackage(r *http.Request) (*httpx.Response, error) {
	userID, err := apikeys.Authorize(r)
	if err != nil {
		return nil, err
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		return nil, httpx.ErrInvalidRequest("expected a multipart form upload")
	}
	var files []*multipart.FileHeader
	for _, headers := range r.MultipartForm.File {
		files = append(files, headers...)
	}
	if len(files) != 1 {
		return nil, httpx.ErrInvalidRequest("expected exactly one package file")
	}

	f, ferr := files[0].Open()
	if ferr != nil {
		return nil, httpx.ErrUnableToReadRequest()
	}
	defer f.Close()

	if _, err := feedmanager.Push(r.Context(), f, userID); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusCreated,
	}, nil
}

func deletePackage(r *http.Request) (*httpx.Response, error) {
	userID, err := apikeys.Authorize(r)
	if err != nil {
		return nil, err
	}

	name := chi.URLParam(r, "packageName")
	version := chi.URLParam(r, "packageVersion")
	if err := feedmanager.Delete(r.Context(), name, version, userID); err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusNoContent,
	}, nil
}
