package apikeys

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/models"
)

func TestHashKey(t *testing.T) {
	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}

	h1 := hashKey("some-api-key", salt)
	h2 := hashKey("some-api-key", salt)
	assert.Equal(t, h1, h2)

	// different key or different salt changes the digest
	assert.NotEqual(t, h1, hashKey("other-api-key", salt))
	otherSalt := append([]byte{99}, salt[1:]...)
	assert.NotEqual(t, h1, hashKey("some-api-key", otherSalt))

	// base64 of a SHA-512 digest
	assert.Len(t, h1, 88)
}

func TestGenerateToken(t *testing.T) {
	token, err := generateToken()
	require.Nil(t, err)
	assert.Len(t, token, 48)
	for _, c := range token {
		assert.True(t, strings.ContainsRune(keyAlphabet, c), "token contains %q outside alphabet", c)
	}

	other, err := generateToken()
	require.Nil(t, err)
	assert.NotEqual(t, token, other)
}

func TestGenerateSalt(t *testing.T) {
	salt, err := generateSalt()
	require.Nil(t, err)
	assert.Len(t, salt, saltLength)

	other, err := generateSalt()
	require.Nil(t, err)
	assert.NotEqual(t, salt, other)
}

func TestHashSaltInUse(t *testing.T) {
	salt, err := generateSalt()
	require.Nil(t, err)
	token, err := generateToken()
	require.Nil(t, err)
	hash := hashKey(token, salt)

	assert.False(t, hashSaltInUse(nil, hash, salt))

	stored := []*models.ApiKey{{UserID: uuid.New(), KeyName: "ci", Hash: hash, Salt: salt}}
	assert.True(t, hashSaltInUse(stored, hash, salt))

	otherSalt, err := generateSalt()
	require.Nil(t, err)
	assert.False(t, hashSaltInUse(stored, hash, otherSalt))
}
