package blobstore

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExclusive(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.Nil(t, s.CreateExclusive("a.1.0.0.nupkg", strings.NewReader("first")))
	assert.True(t, s.Exists("a.1.0.0.nupkg"))

	// second create on the same name must fail, not overwrite
	err2 := s.CreateExclusive("a.1.0.0.nupkg", strings.NewReader("second"))
	assert.ErrorIs(t, err2, ErrExists)

	f, aerr := s.Open("a.1.0.0.nupkg")
	require.Nil(t, aerr)
	defer f.Close()
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "first", string(content))
}

func TestRenameRefusesOverwrite(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.Nil(t, s.CreateExclusive("tmp1", strings.NewReader("one")))
	require.Nil(t, s.CreateExclusive("occupied", strings.NewReader("keep me")))

	assert.ErrorIs(t, s.Rename("tmp1", "occupied"), ErrExists)

	f, aerr := s.Open("occupied")
	require.Nil(t, aerr)
	defer f.Close()
	content, _ := io.ReadAll(f)
	assert.Equal(t, "keep me", string(content))

	require.Nil(t, s.Rename("tmp1", "free"))
	assert.True(t, s.Exists("free"))
	assert.False(t, s.Exists("tmp1"))
}

func TestOpenMissing(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, aerr := s.Open("nope.nupkg")
	assert.ErrorIs(t, aerr, ErrNotFound)
}

func TestRemoveMissingIsNoError(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, s.Remove("never-existed"))
}

func TestValidBlobName(t *testing.T) {
	assert.True(t, ValidBlobName("Newtonsoft.Json"))
	assert.True(t, ValidBlobName("1.0.0-beta.1"))
	assert.False(t, ValidBlobName(""))
	assert.False(t, ValidBlobName(".."))
	assert.False(t, ValidBlobName("a/b"))
	assert.False(t, ValidBlobName(`a\b`))
}

func TestTempFileName(t *testing.T) {
	a := TempFileName()
	b := TempFileName()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "upload-"))
	assert.True(t, strings.HasSuffix(a, ".tmp"))
}
