package feedmanager

import (
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tansive/pkgfeed/internal/feedsrv/blobstore"
	"github.com/tansive/pkgfeed/internal/feedsrv/feedcontext"
	"github.com/tansive/pkgfeed/internal/feedsrv/nupkg"
)

func TestPushRejectsMalformedArchive(t *testing.T) {
	blobs, err := blobstore.New(t.TempDir())
	require.NoError(t, err)
	ctx := feedcontext.SetBlobStore(context.Background(), blobs)

	_, aerr := Push(ctx, strings.NewReader("not a package archive"), uuid.New())
	require.Error(t, aerr)
	assert.True(t, errors.Is(aerr, ErrBadUpload))
	assert.Equal(t, http.StatusBadRequest, aerr.StatusCode())

	// the shared error value stays pristine; failures wrap a derived copy
	assert.Equal(t, "invalid package upload", ErrBadUpload.Error())
	assert.Empty(t, ErrBadUpload.Unwrap())

	// the temporary blob is cleaned up
	entries, derr := os.ReadDir(blobs.Dir())
	require.NoError(t, derr)
	assert.Empty(t, entries)
}

func TestInspectBlobKeepsStoreErrors(t *testing.T) {
	blobs, err := blobstore.New(t.TempDir())
	require.NoError(t, err)

	_, aerr := inspectBlob(blobs, "never-written.tmp")
	require.Error(t, aerr)
	assert.True(t, errors.Is(aerr, blobstore.ErrNotFound))
	assert.False(t, errors.Is(aerr, nupkg.ErrPackageArchive))
}

func TestInspectBlobClassifiesArchiveErrors(t *testing.T) {
	blobs, err := blobstore.New(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, blobs.CreateExclusive("garbled.tmp", strings.NewReader("garbage bytes")))

	_, aerr := inspectBlob(blobs, "garbled.tmp")
	require.Error(t, aerr)
	assert.True(t, errors.Is(aerr, nupkg.ErrPackageArchive))
}
