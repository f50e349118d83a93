package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/tansive/pkgfeed/internal/common/httpx"
	commonmiddleware "github.com/tansive/pkgfeed/internal/common/middleware"
	"github.com/tansive/pkgfeed/internal/feedsrv/apis"
	"github.com/tansive/pkgfeed/internal/feedsrv/blobstore"
	"github.com/tansive/pkgfeed/internal/feedsrv/config"
	"github.com/tansive/pkgfeed/internal/feedsrv/db"
	"github.com/tansive/pkgfeed/internal/feedsrv/feedcontext"
	"github.com/tansive/pkgfeed/internal/feedsrv/serviceindex"
)

type FeedServer struct {
	Router   *chi.Mux
	registry *serviceindex.Registry
	blobs    *blobstore.Store
}

// CreateNewServer builds the immutable startup state: the service index
// registry and the blob store. Misconfigured capabilities fail here, never
// at request time.
func CreateNewServer() (*FeedServer, error) {
	registry, err := serviceindex.NewRegistry(
		serviceindex.Descriptor{Capability: serviceindex.PackageBaseAddress, Location: "/v3/package"},
		serviceindex.Descriptor{Capability: serviceindex.PackagePublish, Location: "/v3/package"},
		serviceindex.Descriptor{Capability: serviceindex.RegistrationsBaseUrl, Location: "/v3/metadata"},
	)
	if err != nil {
		return nil, err
	}
	blobs, berr := blobstore.New(config.Config().PackagesDir)
	if berr != nil {
		return nil, berr
	}
	s := &FeedServer{
		Router:   chi.NewRouter(),
		registry: registry,
		blobs:    blobs,
	}
	return s, nil
}

func (s *FeedServer) MountHandlers() {
	s.Router.Use(commonmiddleware.RequestLogger)
	s.Router.Use(commonmiddleware.PanicHandler)
	if config.Config().HandleCORS {
		s.Router.Use(s.HandleCORS)
	}
	s.Router.Route("/", s.mountResourceHandlers)
}

func (s *FeedServer) mountResourceHandlers(r chi.Router) {
	r.Use(db.LoadFeedDBMiddleware)
	r.Use(s.loadFeedContext)
	apis.Router(r)
}

// loadFeedContext hands the startup state to the handlers by reference.
func (s *FeedServer) loadFeedContext(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if s.blobs == nil || s.registry == nil {
			httpx.ErrApplicationError("server not fully configured").Send(w)
			return
		}
		ctx = feedcontext.SetBlobStore(ctx, s.blobs)
		ctx = feedcontext.SetRegistry(ctx, s.registry)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// HandleCORS mirrors the permissive policy of the original deployment.
func (s *FeedServer) HandleCORS(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "X-NuGet-ApiKey"},
		AllowCredentials: false,
		MaxAge:           300,
	})(next)
}
