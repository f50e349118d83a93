package apikeys

import (
	"net/http"

	"github.com/tansive/pkgfeed/internal/common/apperrors"
)

var (
	ErrApiKey       apperrors.Error = apperrors.New("api key error").SetStatusCode(http.StatusInternalServerError)
	ErrKeyExists    apperrors.Error = ErrApiKey.New("api key already exists").SetStatusCode(http.StatusConflict)
	ErrKeyNotFound  apperrors.Error = ErrApiKey.New("api key not found").SetStatusCode(http.StatusNotFound)
	ErrUnauthorized apperrors.Error = ErrApiKey.New("invalid or missing api key").SetStatusCode(http.StatusUnauthorized)
)
