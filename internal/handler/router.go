package handler

import (
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/cityalgo/cityalgo/internal/api"
	"github.com/cityalgo/cityalgo/internal/catalog"
	"github.com/cityalgo/cityalgo/internal/highlight"
	"github.com/cityalgo/cityalgo/internal/theme"
	"github.com/cityalgo/cityalgo/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	SessionManager *scs.SessionManager
	Catalog        *catalog.Catalog
	Highlighter    *highlight.Highlighter
	Logger         *zap.Logger
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	hl := deps.Highlighter
	if hl == nil {
		hl = highlight.New(highlight.DefaultStyle)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(requestLogFormatter{logger: logger}))
	r.Use(middleware.Recoverer)

	// Static assets (embedded), served without touching the session store.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))
	r.Handle("/metrics", promhttp.Handler())

	// JSON API: read-only catalog access, no session.
	r.Mount("/api/v1", api.NewAPIRouter(api.Deps{Catalog: deps.Catalog}))

	themes := theme.NewSessionStore(deps.SessionManager)
	site := NewSiteHandler(deps.Catalog, themes, logger)
	sections := NewSectionsHandler(deps.Catalog)
	problems := NewProblemsHandler(deps.Catalog, hl, logger)
	themeHandler := NewThemeHandler(themes, logger)

	r.Group(func(r chi.Router) {
		r.Use(deps.SessionManager.LoadAndSave)

		r.Get("/", site.Index)
		r.Post("/theme", themeHandler.Toggle)
	})

	// chi matches the static start/history segments ahead of {id}; the
	// catalog also rejects them as section ids.
	r.Get("/sections/start", sections.Start)
	r.Get("/sections/start/{fragment}", sections.Start)
	r.Get("/sections/history", sections.History)
	r.Get("/sections/history/{id}", sections.History)
	r.Get("/sections/{id}", sections.Navigate)

	r.Post("/problems/modal/close", problems.Close)
	r.Get("/problems/{id}/modal", problems.Modal)

	return r
}
