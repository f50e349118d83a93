// Package feedcontext carries the request-scoped handles that the route
// handlers need: the blob store and the service index registry. Both are
// built once at startup and injected by server middleware; the context only
// passes them by reference.
package feedcontext

import (
	"context"

	"github.com/tansive/pkgfeed/internal/feedsrv/blobstore"
	"github.com/tansive/pkgfeed/internal/feedsrv/serviceindex"
)

type ctxKeyType string

const (
	blobStoreKey ctxKeyType = "blobStore"
	registryKey  ctxKeyType = "serviceIndexRegistry"
)

func SetBlobStore(ctx context.Context, s *blobstore.Store) context.Context {
	return context.WithValue(ctx, blobStoreKey, s)
}

func BlobStore(ctx context.Context) *blobstore.Store {
	s, _ := ctx.Value(blobStoreKey).(*blobstore.Store)
	return s
}

func SetRegistry(ctx context.Context, r *serviceindex.Registry) context.Context {
	return context.WithValue(ctx, registryKey, r)
}

func Registry(ctx context.Context) *serviceindex.Registry {
	r, _ := ctx.Value(registryKey).(*serviceindex.Registry)
	return r
}
