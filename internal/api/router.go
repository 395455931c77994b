// Package api wires the HTTP surface: routes, middleware chain and the
// per-kind content handlers.
package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hirotalab/cms-server/internal/api/handlers"
	"github.com/hirotalab/cms-server/internal/api/middleware"
	"github.com/hirotalab/cms-server/internal/auth"
	"github.com/hirotalab/cms-server/internal/config"
	"github.com/hirotalab/cms-server/internal/domain/content"
	"github.com/hirotalab/cms-server/internal/metrics"
	"github.com/hirotalab/cms-server/internal/storage"
)

// NewRouter assembles the full handler tree. The object store is injected
// by the caller so serve picks Drive or the in-memory fallback and tests
// pass their own.
func NewRouter(cfg config.Config, logger zerolog.Logger, objects storage.ObjectStore) http.Handler {
	gate := auth.NewGate(newVerifier(cfg.Auth), cfg.Auth.OAuthClientID, cfg.Auth.AllowEmails)
	admin := middleware.AdminAuth(gate)
	docs := content.NewDocumentStore(objects, cfg.Storage.CMSPrefix)

	mux := http.NewServeMux()
	mux.Handle("/", handlers.Root())
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(objects))
	mux.Handle("/metrics", metrics.Handler())

	mountKind(mux, "news", content.NewNewsService(docs), admin)
	mountKind(mux, "events", content.NewEventsService(docs), admin)
	mountKind(mux, "members", content.NewMembersService(docs), admin)
	mountKind(mux, "publications", content.NewPublicationService(docs), admin)
	mountKind(mux, "research", content.NewResearchService(docs), admin)

	files := handlers.NewFilesHandler(objects)
	mux.Handle("/files", methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(files.List),
	}))
	mux.Handle("/files/{name}", methodMux(map[string]http.Handler{
		http.MethodGet:    http.HandlerFunc(files.Download),
		http.MethodDelete: admin(http.HandlerFunc(files.Delete)),
	}))
	mux.Handle("/upload", methodMux(map[string]http.Handler{
		http.MethodPost: admin(http.HandlerFunc(files.Upload)),
	}))

	var handler http.Handler = mux
	handler = middleware.RequestSize(cfg.MaxBodyBytes)(handler)
	handler = middleware.RateLimit(cfg.RateLimit)(handler)
	handler = metrics.Instrument(handler)
	handler = middleware.RequestLogging()(handler)
	handler = middleware.CorrelationID(logger)(handler)
	handler = middleware.CORS(cfg.CORS, logger)(handler)
	return handler
}

func newVerifier(cfg config.AuthConfig) auth.TokenVerifier {
	if cfg.DevTokenSecret != "" {
		return auth.NewStaticVerifier(cfg.DevTokenSecret)
	}
	return auth.NewGoogleVerifier(cfg.OAuthClientID)
}

// mountKind registers the five routes one collection kind owns. Reads are
// open; every mutation goes through the admin gate.
func mountKind[T any, PT content.Entry[T], I content.Input[T]](mux *http.ServeMux, kind string, svc *content.Service[T, PT, I], admin func(http.Handler) http.Handler) {
	h := handlers.NewContentHandler(svc)
	mux.Handle("/content/"+kind, methodMux(map[string]http.Handler{
		http.MethodGet:  http.HandlerFunc(h.List),
		http.MethodPost: admin(http.HandlerFunc(h.Create)),
	}))
	mux.Handle("/content/"+kind+"/{id}", methodMux(map[string]http.Handler{
		http.MethodPut:    admin(http.HandlerFunc(h.Update)),
		http.MethodDelete: admin(http.HandlerFunc(h.Delete)),
	}))
	mux.Handle("/public/"+kind, methodMux(map[string]http.Handler{
		http.MethodGet: http.HandlerFunc(h.Public),
	}))
}

func methodMux(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := routes[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(routes))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowedMethods(routes map[string]http.Handler) string {
	methods := make([]string, 0, len(routes))
	for method := range routes {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
