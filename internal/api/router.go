package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/nexusnova/atlas/internal/api/handlers"
	mw "github.com/nexusnova/atlas/internal/api/middleware"
)

type Dependencies struct {
	FeatureSetsHandler *handlers.FeatureSetsHandler
	SessionHandler     *handlers.SessionHandler
	OverviewHandler    *handlers.OverviewHandler
	TracesHandler      *handlers.TracesHandler
	EventsHandler      *handlers.EventsHandler
}

func NewRouter(dep Dependencies) http.Handler {
	r := chi.NewRouter()

	// Built-in middleware
	r.Use(mw.RequestID)
	r.Use(mw.Recovery)
	r.Use(mw.Logging)
	r.Use(mw.CORS)
	r.Use(mw.RateLimit(10, 20))

	// Health endpoints
	hh := handlers.NewHealthHandler()
	r.Get("/healthz", hh.Liveness)
	r.Get("/readyz", hh.Readiness)

	// Swagger documentation
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("http://localhost:8080/docs/doc.json"),
	))

	r.Route("/api/v1", func(api chi.Router) {
		// Event stream. Mounted outside the compression wrapper: the
		// websocket upgrade hijacks the connection, which a compressed
		// writer cannot offer.
		api.Get("/events", dep.EventsHandler.Stream)

		api.Group(func(api chi.Router) {
			api.Use(chimid.Compress(5))

			// Feature sets (committed graphs)
			api.Route("/featuresets", func(fr chi.Router) {
				fr.Get("/", dep.FeatureSetsHandler.List)
				fr.Post("/", dep.FeatureSetsHandler.Create)
				fr.Get("/{name}", dep.FeatureSetsHandler.Get)
				fr.Get("/{name}/view", dep.FeatureSetsHandler.View)
				fr.Get("/{name}/path", dep.FeatureSetsHandler.Path)
			})

			api.Get("/modes", dep.FeatureSetsHandler.Modes)

			// Edit session
			api.Route("/session", func(sr chi.Router) {
				sr.Get("/", dep.SessionHandler.State)
				sr.Post("/checkout", dep.SessionHandler.Checkout)
				sr.Post("/editing", dep.SessionHandler.Editing)
				sr.Get("/view", dep.SessionHandler.View)
				sr.Get("/path", dep.SessionHandler.Path)
				sr.Post("/nodes", dep.SessionHandler.AddNode)
				sr.Delete("/nodes/{id}", dep.SessionHandler.RemoveNode)
				sr.Post("/edges", dep.SessionHandler.AddEdge)
				sr.Delete("/edges/{id}", dep.SessionHandler.RemoveEdge)
				sr.Post("/import", dep.SessionHandler.Import)
				sr.Get("/export", dep.SessionHandler.Export)
				sr.Post("/sync", dep.SessionHandler.Sync)
				sr.Post("/pick", dep.SessionHandler.Pick)
			})

			// Overview
			api.Get("/overview", dep.OverviewHandler.Get)

			// Traces
			api.Route("/traces", func(tr chi.Router) {
				tr.Get("/", dep.TracesHandler.List)
				tr.Get("/{id}", dep.TracesHandler.Get)
			})
		})
	})

	return r
}
