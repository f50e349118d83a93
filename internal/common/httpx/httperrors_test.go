package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tansive/pkgfeed/internal/common/apperrors"
)

func TestSendError(t *testing.T) {
	rr := httptest.NewRecorder()
	SendError(rr, apperrors.New("no such thing").SetStatusCode(http.StatusNotFound))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "no such thing")
}

func TestSendErrorDefaultsToInternal(t *testing.T) {
	rr := httptest.NewRecorder()
	SendError(rr, apperrors.New("unclassified"))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestWrapHttpRspRendersAppError(t *testing.T) {
	handler := WrapHttpRsp(func(r *http.Request) (*Response, error) {
		return nil, apperrors.New("teapot refused").SetStatusCode(http.StatusTeapot)
	})
	rr := httptest.NewRecorder()
	handler(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.Contains(t, rr.Body.String(), "teapot refused")
}
