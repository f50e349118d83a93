// Package apikeys issues and verifies the opaque bearer keys that gate
// publish and delete. Keys are stored only as SHA-512(key ‖ salt) with a
// per-record random salt; the plaintext is handed out once at issuance.
package apikeys

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/sha512"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog/log"
	"github.com/tansive/pkgfeed/internal/common/apperrors"
	"github.com/tansive/pkgfeed/internal/feedsrv/config"
	"github.com/tansive/pkgfeed/internal/feedsrv/db"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/dberror"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/models"
)

// ApiKeyHeader carries the bearer key on publish and delete requests.
const ApiKeyHeader = "X-NuGet-ApiKey"

const keyAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const saltLength = 16

// hashKey computes base64(SHA-512(key ‖ salt)).
func hashKey(key string, salt []byte) string {
	payload := make([]byte, 0, len(key)+len(salt))
	payload = append(payload, []byte(key)...)
	payload = append(payload, salt...)
	digest := sha512.Sum512(payload)
	return base64.StdEncoding.EncodeToString(digest[:])
}

func generateToken() (string, apperrors.Error) {
	token, err := gonanoid.Generate(keyAlphabet, config.Config().ApiKeyLength)
	if err != nil {
		return "", ErrApiKey.New("unable to generate api key").Err(err)
	}
	return token, nil
}

func generateSalt() ([]byte, apperrors.Error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, ErrApiKey.New("unable to generate salt").Err(err)
	}
	return salt, nil
}

// Issue creates a new api key for (userID, keyName) and returns the
// plaintext exactly once; it is unrecoverable afterward. Generation retries
// until the (hash, salt) pair is unused anywhere in the store, so two
// distinct plaintexts can never verify against the same record.
func Issue(ctx context.Context, userID uuid.UUID, keyName string) (string, apperrors.Error) {
	if _, err := db.DB(ctx).GetApiKey(ctx, userID, keyName); err == nil {
		return "", ErrKeyExists
	} else if !errors.Is(err, dberror.ErrNotFound) {
		return "", err
	}

	existing, err := db.DB(ctx).ListApiKeys(ctx)
	if err != nil {
		return "", err
	}

	var token string
	var salt []byte
	var hash string
	for {
		token, err = generateToken()
		if err != nil {
			return "", err
		}
		salt, err = generateSalt()
		if err != nil {
			return "", err
		}
		hash = hashKey(token, salt)
		if !hashSaltInUse(existing, hash, salt) {
			break
		}
	}

	key := &models.ApiKey{
		UserID:  userID,
		KeyName: keyName,
		Hash:    hash,
		Salt:    salt,
	}
	if err := db.DB(ctx).CreateApiKey(ctx, key); err != nil {
		if errors.Is(err, dberror.ErrAlreadyExists) {
			return "", ErrKeyExists
		}
		return "", err
	}
	return token, nil
}

func hashSaltInUse(keys []*models.ApiKey, hash string, salt []byte) bool {
	for _, k := range keys {
		if k.Hash == hash && bytes.Equal(k.Salt, salt) {
			return true
		}
	}
	return false
}

// Verify returns the owner of the presented key. This is a linear scan over
// all stored keys: each record has its own salt, so the salted hash must be
// recomputed per record. Fine at small key counts; a known scalability
// ceiling.
func Verify(ctx context.Context, presented string) (uuid.UUID, apperrors.Error) {
	if strings.TrimSpace(presented) == "" {
		return uuid.Nil, ErrUnauthorized
	}
	keys, err := db.DB(ctx).ListApiKeys(ctx)
	if err != nil {
		return uuid.Nil, err
	}
	for _, k := range keys {
		if hashKey(presented, k.Salt) == k.Hash {
			return k.UserID, nil
		}
	}
	return uuid.Nil, ErrUnauthorized
}

// Revoke deletes an api key. A revoked key never verifies again.
func Revoke(ctx context.Context, userID uuid.UUID, keyName string) apperrors.Error {
	if err := db.DB(ctx).DeleteApiKey(ctx, userID, keyName); err != nil {
		if errors.Is(err, dberror.ErrNotFound) {
			return ErrKeyNotFound
		}
		return err
	}
	return nil
}

// Authorize is the gate in front of mutating routes: it extracts the key
// header and verifies it, returning the caller's user id. Missing or
// unverifiable keys fail with ErrUnauthorized before any storage is
// touched.
func Authorize(r *http.Request) (uuid.UUID, apperrors.Error) {
	ctx := r.Context()
	presented := r.Header.Get(ApiKeyHeader)
	userID, err := Verify(ctx, presented)
	if err != nil {
		log.Ctx(ctx).Info().Msg("rejected request with invalid api key")
		return uuid.Nil, err
	}
	return userID, nil
}
