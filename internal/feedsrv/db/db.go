package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/tansive/pkgfeed/internal/common/apperrors"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/config"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/dbmanager"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/models"
	"github.com/tansive/pkgfeed/internal/feedsrv/db/postgresql"
)

// The two managers are separate interfaces so each can be wrapped
// independently; FeedDb combines them with connection lifecycle.

type PackageManager interface {
	CreatePackage(ctx context.Context, pkg *models.Package) apperrors.Error
	GetPackage(ctx context.Context, name, version string) (*models.Package, apperrors.Error)
	ListPackagesByName(ctx context.Context, name string) ([]*models.Package, apperrors.Error)
	DeletePackage(ctx context.Context, name, version string) apperrors.Error
}

type ApiKeyManager interface {
	CreateApiKey(ctx context.Context, key *models.ApiKey) apperrors.Error
	GetApiKey(ctx context.Context, userID uuid.UUID, keyName string) (*models.ApiKey, apperrors.Error)
	ListApiKeys(ctx context.Context) ([]*models.ApiKey, apperrors.Error)
	DeleteApiKey(ctx context.Context, userID uuid.UUID, keyName string) apperrors.Error
}

type ConnectionManager interface {
	// Close returns the connection to the pool.
	Close(ctx context.Context)
}

type FeedDb interface {
	PackageManager
	ApiKeyManager
	ConnectionManager
}

var pool dbmanager.Pool

var ErrNoConnection apperrors.Error = apperrors.New("unable to get db connection")

// Init creates the connection pool. It must be called once after the
// configuration is loaded and before any request is served.
func Init(ctx context.Context) apperrors.Error {
	pg := dbmanager.NewPool(ctx, "postgresql", config.FeedDsn())
	if pg == nil {
		return ErrNoConnection.New("unable to create db pool")
	}
	pool = pg
	return nil
}

func Conn(ctx context.Context) (dbmanager.Conn, apperrors.Error) {
	if pool == nil {
		return nil, ErrNoConnection.New("db pool not initialized")
	}
	conn, err := pool.Conn(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("unable to get db connection")
		return nil, ErrNoConnection.New("unable to get db connection").Err(err)
	}
	return conn, nil
}

type ctxDbKeyType string

const ctxDbKey ctxDbKeyType = "FeedDb"

// ConnCtx obtains a connection from the pool and stashes it in the context.
// The caller owns the connection and must close it via DB(ctx).Close.
func ConnCtx(ctx context.Context) (context.Context, apperrors.Error) {
	conn, err := Conn(ctx)
	if err != nil {
		return ctx, err
	}
	return context.WithValue(ctx, ctxDbKey, conn), nil
}

type feedDb struct {
	PackageManager
	ApiKeyManager
	ConnectionManager
}

// DB returns the store bound to the connection carried by the context, or
// nil when the context has none.
func DB(ctx context.Context) FeedDb {
	if conn, ok := ctx.Value(ctxDbKey).(dbmanager.Conn); ok {
		pm, km := postgresql.NewFeedDb(conn)
		return &feedDb{
			PackageManager:    pm,
			ApiKeyManager:     km,
			ConnectionManager: conn,
		}
	}
	log.Ctx(ctx).Error().Msg("unable to get db connection from context")
	return nil
}
