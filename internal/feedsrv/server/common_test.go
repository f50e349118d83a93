package server

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tansive/pkgfeed/internal/feedsrv/config"
	"github.com/tansive/pkgfeed/internal/feedsrv/db"
)

var (
	dbOnce      sync.Once
	dbAvailable bool
)

// newDb initializes the shared pool once and skips the test when the feed
// database is not reachable.
func newDb(t *testing.T) context.Context {
	t.Helper()
	ctx := log.Logger.WithContext(context.Background())
	dbOnce.Do(func() {
		dbAvailable = db.Init(ctx) == nil
	})
	if !dbAvailable {
		t.Skip("feed database not available")
	}
	return ctx
}

func setupTest(t *testing.T) {
	t.Helper()
	newDb(t)
	config.Config().PackagesDir = t.TempDir()
}

func executeTestRequest(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	s, err := CreateNewServer()
	require.NoError(t, err, "create new server")
	s.MountHandlers()

	rr := httptest.NewRecorder()
	s.Router.ServeHTTP(rr, req)
	return rr
}

func checkHeader(t *testing.T, h http.Header) {
	t.Helper()
	expected := "application/json"
	got := h.Get("Content-Type")
	assert.Equal(t, expected, got, "Content-Type expected %s, got %s", expected, got)
	assert.NotEmpty(t, h.Get("X-Request-ID"), "No Request Id")
}

func setRequestBodyAndHeader(t *testing.T, req *http.Request, data interface{}) {
	t.Helper()
	jsonData, err := json.Marshal(data)
	require.NoError(t, err, "Failed to marshal data into JSON")
	req.Body = io.NopCloser(bytes.NewReader(jsonData))
	req.ContentLength = int64(len(jsonData))
	req.Header.Set("Content-Type", "application/json")
}

// buildTestPackage builds a minimal valid .nupkg archive in memory.
func buildTestPackage(t *testing.T, id, version string, frameworks ...string) []byte {
	t.Helper()
	groups := ""
	for _, fw := range frameworks {
		groups += fmt.Sprintf(`<group targetFramework=%q />`, fw)
	}
	nuspec := fmt.Sprintf(`<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://schemas.microsoft.com/packaging/2013/05/nuspec.xsd">
  <metadata>
    <id>%s</id>
    <version>%s</version>
    <authors>pkgfeed tests</authors>
    <dependencies>%s</dependencies>
  </metadata>
</package>`, id, version, groups)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(id + ".nuspec")
	require.NoError(t, err)
	_, err = w.Write([]byte(nuspec))
	require.NoError(t, err)
	w, err = zw.Create("lib/net6.0/" + id + ".dll")
	require.NoError(t, err)
	_, err = w.Write([]byte("test assembly payload"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// buildManifestlessArchive builds a zip with no .nuspec entry anywhere.
func buildManifestlessArchive(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("lib/net6.0/payload.dll")
	require.NoError(t, err)
	_, err = w.Write([]byte("payload only"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// newUploadRequest builds the multipart PUT the publish endpoint expects.
func newUploadRequest(t *testing.T, apiKey string, files ...[]byte) *http.Request {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for i, f := range files {
		fw, err := mw.CreateFormFile("package", fmt.Sprintf("upload-%d.nupkg", i))
		require.NoError(t, err)
		_, err = fw.Write(f)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPut, "/v3/package", body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if apiKey != "" {
		req.Header.Set("X-NuGet-ApiKey", apiKey)
	}
	return req
}

// issueTestKey creates an api key through the API and returns its
// plaintext.
func issueTestKey(t *testing.T, userID, keyName string) string {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api-key", nil)
	setRequestBodyAndHeader(t, req, map[string]string{
		"userId":  userID,
		"keyName": keyName,
	})
	rr := executeTestRequest(t, req)
	require.Equal(t, http.StatusOK, rr.Code, "issue api key: %s", rr.Body.String())

	var rsp struct {
		ApiKey string `json:"apiKey"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &rsp))
	require.NotEmpty(t, rsp.ApiKey)
	return rsp.ApiKey
}

func revokeTestKey(t *testing.T, userID, keyName string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodDelete, "/api-key/"+userID+"/"+keyName, nil)
	executeTestRequest(t, req)
}
