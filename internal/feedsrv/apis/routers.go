package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tansive/pkgfeed/internal/common/httpx"
)

var feedHandlers = []httpx.ResponseHandlerParam{
	{
		Method:  http.MethodGet,
		Path:    "/v3/index.json",
		Handler: getServiceIndex,
	},
	{
		Method:  http.MethodGet,
		Path:    "/v3/package/{packageName}/index.json",
		Handler: listVersions,
	},
	{
		Method:  http.MethodGet,
		Path:    "/v3/package/{packageName}/{packageVersion}/{fileName}",
		Handler: downloadFile,
	},
	{
		Method:  http.MethodPut,
		Path:    "/v3/package",
		Handler: pushPackage,
	},
	{
		Method:  http.MethodDelete,
		Path:    "/v3/package/{packageName}/{packageVersion}",
		Handler: deletePackage,
	},
	{
		Method:  http.MethodGet,
		Path:    "/v3/metadata/{packageName}/index.json",
		Handler: getMetadata,
	},
	{
		Method:  http.MethodPost,
		Path:    "/api-key",
		Handler: addApiKey,
	},
	{
		Method:  http.MethodDelete,
		Path:    "/api-key/{userName}/{keyName}",
		Handler: deleteApiKey,
	},
}

func Router(r chi.Router) {
	for _, handler := range feedHandlers {
		r.Method(handler.Method, handler.Path, httpx.WrapHttpRsp(handler.Handler))
	}
}
