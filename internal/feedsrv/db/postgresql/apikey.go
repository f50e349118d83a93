package postgresql

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/rs/zerolog/log"
	"github.com/tansive/pkgfeed/internal/common/apperrors"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/dberror"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/models"
)

// CreateApiKey inserts a new api key record. Only the salted hash is
// stored; the plaintext key never reaches this layer.
func (km *keyManager) CreateApiKey(ctx context.Context, key *models.ApiKey) apperrors.Error {
	query := `
		INSERT INTO api_keys (user_id, key_name, hash, salt)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`

	row := km.conn().QueryRowContext(ctx, query, key.UserID, key.KeyName, key.Hash, key.Salt)
	err := row.Scan(&key.CreatedAt)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" {
				log.Ctx(ctx).Info().Str("key_name", key.KeyName).Msg("api key already exists")
				return dberror.ErrAlreadyExists.New("api key already exists")
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("key_name", key.KeyName).Msg("failed to insert api key")
		return dberror.ErrDatabase.New("db error").Err(err)
	}
	return nil
}

// GetApiKey retrieves an api key by its primary key.
func (km *keyManager) GetApiKey(ctx context.Context, userID uuid.UUID, keyName string) (*models.ApiKey, apperrors.Error) {
	query := `
		SELECT user_id, key_name, hash, salt, created_at
		FROM api_keys
		WHERE user_id = $1 AND key_name = $2`

	var key models.ApiKey
	row := km.conn().QueryRowContext(ctx, query, userID, keyName)
	err := row.Scan(&key.UserID, &key.KeyName, &key.Hash, &key.Salt, &key.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.New("api key not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("key_name", keyName).Msg("failed to get api key")
		return nil, dberror.ErrDatabase.New("db error").Err(err)
	}
	return &key, nil
}

// ListApiKeys returns every stored api key. Verification is a linear scan
// over these records because each hash is computed with a per-record salt.
func (km *keyManager) ListApiKeys(ctx context.Context) ([]*models.ApiKey, apperrors.Error) {
	query := `
		SELECT user_id, key_name, hash, salt, created_at
		FROM api_keys`

	rows, err := km.conn().QueryContext(ctx, query)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to list api keys")
		return nil, dberror.ErrDatabase.New("db error").Err(err)
	}
	defer rows.Close()

	var keys []*models.ApiKey
	for rows.Next() {
		var key models.ApiKey
		if err := rows.Scan(&key.UserID, &key.KeyName, &key.Hash, &key.Salt, &key.CreatedAt); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan api key row")
			return nil, dberror.ErrDatabase.New("db error").Err(err)
		}
		keys = append(keys, &key)
	}
	if err := rows.Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to iterate api key rows")
		return nil, dberror.ErrDatabase.New("db error").Err(err)
	}
	return keys, nil
}

// DeleteApiKey removes an api key by its primary key.
func (km *keyManager) DeleteApiKey(ctx context.Context, userID uuid.UUID, keyName string) apperrors.Error {
	query := `
		DELETE FROM api_keys
		WHERE user_id = $1 AND key_name = $2
		RETURNING key_name`

	row := km.conn().QueryRowContext(ctx, query, userID, keyName)
	var deletedName string
	err := row.Scan(&deletedName)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.New("api key not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("key_name", keyName).Msg("failed to delete api key")
		return dberror.ErrDatabase.New("db error").Err(err)
	}
	return nil
}
