package apis

import (
	"net/http"

	"github.com/tansive/pkgfeed/internal/common/httpx"
	"github.com/tansive/pkgfeed/internal/feedsrv/feedcontext"
	"github.com/tansive/pkgfeed/internal/feedsrv/serviceindex"
)

// getServiceIndex serves the discovery document. Resolution against the
// request origin happens on a per-request copy; the registry itself is
// never mutated.
func getServiceIndex(r *http.Request) (*httpx.Response, error) {
	reg := feedcontext.Registry(r.Context())
	if reg == nil {
		return nil, httpx.ErrApplicationError("service index not configured")
	}
	doc := reg.Render(serviceindex.Origin(r))
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   doc,
	}, nil
}
