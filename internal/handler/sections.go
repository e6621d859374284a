package handler

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/cityalgo/cityalgo/internal/catalog"
	"github.com/cityalgo/cityalgo/internal/metrics"
	"github.com/cityalgo/cityalgo/internal/page"
)

// SectionsHandler renders the main region after a router transition.
type SectionsHandler struct {
	catalog *catalog.Catalog
}

// NewSectionsHandler creates a new SectionsHandler.
func NewSectionsHandler(c *catalog.Catalog) *SectionsHandler {
	return &SectionsHandler{catalog: c}
}

// Navigate handles GET /sections/{id}. An unknown id renders every section
// hidden rather than failing. Outside htmx the visitor is sent to the full
// page with the section in the location fragment.
func (h *SectionsHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	if !isHTMX(r) {
		redirectToSection(w, r, chi.URLParam(r, "id"))
		return
	}
	router := page.NewRouter(h.catalog)
	result := metrics.ResultShown
	if !router.NavigateTo(chi.URLParam(r, "id")) {
		result = metrics.ResultEmpty
	}
	metrics.NavigationsTotal.WithLabelValues("navigate", result).Inc()
	h.write(w, router)
}

// Start handles GET /sections/start/{fragment}: the page-load route.
func (h *SectionsHandler) Start(w http.ResponseWriter, r *http.Request) {
	if !isHTMX(r) {
		redirectToSection(w, r, chi.URLParam(r, "fragment"))
		return
	}
	router := page.NewRouter(h.catalog)
	router.Start(chi.URLParam(r, "fragment"))
	metrics.NavigationsTotal.WithLabelValues("start", resultFor(router)).Inc()
	h.write(w, router)
}

// History handles GET /sections/history/{id}: back/forward navigation.
func (h *SectionsHandler) History(w http.ResponseWriter, r *http.Request) {
	if !isHTMX(r) {
		redirectToSection(w, r, chi.URLParam(r, "id"))
		return
	}
	router := page.NewRouter(h.catalog)
	router.PopState(chi.URLParam(r, "id"))
	metrics.NavigationsTotal.WithLabelValues("history", resultFor(router)).Inc()
	h.write(w, router)
}

func (h *SectionsHandler) write(w http.ResponseWriter, router *page.Router) {
	if router.ScrollTop() {
		w.Header().Set("X-Scroll-Top", "true")
	}
	renderFragment(w, "main", buildMain(h.catalog, router))
}

// redirectToSection sends a non-htmx request to the full page; the page script
// routes from the location fragment.
func redirectToSection(w http.ResponseWriter, r *http.Request, id string) {
	target := "/"
	if id != "" {
		target += "#" + url.PathEscape(id)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func resultFor(router *page.Router) string {
	if router.Visible() == router.Home() {
		return metrics.ResultHome
	}
	return metrics.ResultShown
}
