package apis

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/tansive/pkgfeed/internal/common/httpx"
	"github.com/tansive/pkgfeed/internal/feedsrv/apikeys"
)

var validate = validator.New()

type addApiKeyReq struct {
	UserID  uuid.UUID `json:"userId" validate:"required"`
	KeyName string    `json:"keyName" validate:"required"`
}

type addApiKeyRsp struct {
	ApiKey string `json:"apiKey"`
}

// addApiKey issues a new key and returns its plaintext; this is the only
// time the plaintext is available.
func addApiKey(r *http.Request) (*httpx.Response, error) {
	var req addApiKeyReq
	if err := httpx.GetRequestData(r, &req); err != nil {
		return nil, err
	}
	if err := validate.Struct(&req); err != nil {
		return nil, httpx.ErrInvalidRequest("userId and keyName are required")
	}

	token, err := apikeys.Issue(r.Context(), req.UserID, req.KeyName)
	if err != nil {
		return nil, err
	}
	return &httpx.Response{
		StatusCode: http.StatusOK,
		Response:   &addApiKeyRsp{ApiKey: token},
	}, nil
}

func deleteApiKey(r *http.Request) (*httpx.Response, error) {
	userID, err := uuid.Parse(chi.URLParam(r, "userName"))
	if err != nil {
		return nil, httpx.ErrNotFound()
	}
	keyName := chi.URLParam(r, "keyName")
	if aerr := apikeys.Revoke(r.Context(), userID, keyName); aerr != nil {
		return nil, aerr
	}
	return &httpx.Response{
		StatusCode: http.StatusNoContent,
	}, nil
}
