package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApiKeyLifecycle(t *testing.T) {
	setupTest(t)

	userID := uuid.New().String()
	keyName := "lifecycle-" + uuid.New().String()[:8]
	t.Cleanup(func() { revokeTestKey(t, userID, keyName) })

	key := issueTestKey(t, userID, keyName)
	assert.Len(t, key, 48)

	// Duplicate names for a user are rejected.
	req := httptest.NewRequest(http.MethodPost, "/api-key", nil)
	setRequestBodyAndHeader(t, req, map[string]string{
		"userId":  userID,
		"keyName": keyName,
	})
	rr := executeTestRequest(t, req)
	require.Equal(t, http.StatusConflict, rr.Code, rr.Body.String())

	req = httptest.NewRequest(http.MethodDelete, "/api-key/"+userID+"/"+keyName, nil)
	rr = executeTestRequest(t, req)
	require.Equal(t, http.StatusNoContent, rr.Code, rr.Body.String())

	// A second delete has nothing to remove.
	req = httptest.NewRequest(http.MethodDelete, "/api-key/"+userID+"/"+keyName, nil)
	rr = executeTestRequest(t, req)
	require.Equal(t, http.StatusNotFound, rr.Code, rr.Body.String())

	// The revoked key no longer authorizes anything.
	rr = executeTestRequest(t, newUploadRequest(t, key, buildTestPackage(t, "RevokedKeyPkg", "1.0.0")))
	assert.Equal(t, http.StatusUnauthorized, rr.Code, rr.Body.String())
}

func TestApiKeyValidation(t *testing.T) {
	setupTest(t)

	// Missing keyName.
	req := httptest.NewRequest(http.MethodPost, "/api-key", nil)
	setRequestBodyAndHeader(t, req, map[string]string{
		"userId": uuid.New().String(),
	})
	rr := executeTestRequest(t, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

	// userId that is not a uuid fails to decode.
	req = httptest.NewRequest(http.MethodPost, "/api-key", nil)
	setRequestBodyAndHeader(t, req, map[string]string{
		"userId":  "not-a-uuid",
		"keyName": "somekey",
	})
	rr = executeTestRequest(t, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

	// Deleting under a malformed user id is a not-found.
	req = httptest.NewRequest(http.MethodDelete, "/api-key/not-a-uuid/somekey", nil)
	rr = executeTestRequest(t, req)
	assert.Equal(t, http.StatusNotFound, rr.Code, rr.Body.String())
}
