package postgresql

import (
	"context"
	"database/sql"

	"github.com/jackc/pgconn"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	"github.com/tansive/pkgfeed/internal/common/apperrors"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/dberror"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/models"
)

// CreatePackage inserts a new package record. The (name, version) primary
// key is the authoritative duplicate guard: a unique violation maps to
// ErrAlreadyExists even when a prior existence check passed.
func (pm *packageManager) CreatePackage(ctx context.Context, pkg *models.Package) apperrors.Error {
	query := `
		INSERT INTO packages (name, version, target_frameworks, upload_time, upload_user_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING upload_time`

	row := pm.conn().QueryRowContext(ctx, query,
		pkg.Name, pkg.Version, pq.Array(pkg.TargetFrameworks), pkg.UploadTime, pkg.UploadUserID)
	err := row.Scan(&pkg.UploadTime)
	if err != nil {
		if pgErr, ok := err.(*pgconn.PgError); ok {
			if pgErr.Code == "23505" {
				log.Ctx(ctx).Info().Str("name", pkg.Name).Str("version", pkg.Version).Msg("package already exists")
				return dberror.ErrAlreadyExists.New("package already exists")
			}
		}
		log.Ctx(ctx).Error().Err(err).Str("name", pkg.Name).Str("version", pkg.Version).Msg("failed to insert package")
		return dberror.ErrDatabase.New("db error").Err(err)
	}
	return nil
}

// GetPackage retrieves a package by name and version, compared
// case-insensitively. The stored casing is returned.
func (pm *packageManager) GetPackage(ctx context.Context, name, version string) (*models.Package, apperrors.Error) {
	query := `
		SELECT name, version, target_frameworks, upload_time, upload_user_id
		FROM packages
		WHERE lower(name) = lower($1) AND lower(version) = lower($2)`

	var pkg models.Package
	row := pm.conn().QueryRowContext(ctx, query, name, version)
	err := row.Scan(&pkg.Name, &pkg.Version, pq.Array(&pkg.TargetFrameworks), &pkg.UploadTime, &pkg.UploadUserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, dberror.ErrNotFound.New("package not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("name", name).Msg("failed to get package")
		return nil, dberror.ErrDatabase.New("db error").Err(err)
	}
	return &pkg, nil
}

// ListPackagesByName returns all versions of a package, compared
// case-insensitively, ordered by version string.
func (pm *packageManager) ListPackagesByName(ctx context.Context, name string) ([]*models.Package, apperrors.Error) {
	query := `
		SELECT name, version, target_frameworks, upload_time, upload_user_id
		FROM packages
		WHERE lower(name) = lower($1)
		ORDER BY version`

	rows, err := pm.conn().QueryContext(ctx, query, name)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("name", name).Msg("failed to list packages")
		return nil, dberror.ErrDatabase.New("db error").Err(err)
	}
	defer rows.Close()

	var packages []*models.Package
	for rows.Next() {
		var pkg models.Package
		if err := rows.Scan(&pkg.Name, &pkg.Version, pq.Array(&pkg.TargetFrameworks), &pkg.UploadTime, &pkg.UploadUserID); err != nil {
			log.Ctx(ctx).Error().Err(err).Msg("failed to scan package row")
			return nil, dberror.ErrDatabase.New("db error").Err(err)
		}
		packages = append(packages, &pkg)
	}
	if err := rows.Err(); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to iterate package rows")
		return nil, dberror.ErrDatabase.New("db error").Err(err)
	}
	return packages, nil
}

// DeletePackage removes a package record by name and version, compared
// case-insensitively.
func (pm *packageManager) DeletePackage(ctx context.Context, name, version string) apperrors.Error {
	query := `
		DELETE FROM packages
		WHERE lower(name) = lower($1) AND lower(version) = lower($2)
		RETURNING name`

	row := pm.conn().QueryRowContext(ctx, query, name, version)
	var deletedName string
	err := row.Scan(&deletedName)
	if err != nil {
		if err == sql.ErrNoRows {
			return dberror.ErrNotFound.New("package not found")
		}
		log.Ctx(ctx).Error().Err(err).Str("name", name).Msg("failed to delete package")
		return dberror.ErrDatabase.New("db error").Err(err)
	}
	return nil
}
