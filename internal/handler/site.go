package handler

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/cityalgo/cityalgo/internal/build"
	"github.com/cityalgo/cityalgo/internal/catalog"
	"github.com/cityalgo/cityalgo/internal/metrics"
	"github.com/cityalgo/cityalgo/internal/modal"
	"github.com/cityalgo/cityalgo/internal/page"
	"github.com/cityalgo/cityalgo/internal/theme"
)

// Section kinds select the body rendered inside a section container.
const (
	kindTrack = "track"
	kindHome  = "home"
	kindTeam  = "team"
	kindPlain = "plain"
)

type trackSummary struct {
	catalog.Track
	Section string
	Count   int
}

type sectionData struct {
	page.SectionView
	Kind      string
	TrackInfo catalog.Track
	Problems  []catalog.Problem
	Tracks    []trackSummary
}

// mainData is the swappable region: mobile menu plus every section.
type mainData struct {
	Tagline   string
	MenuOpen  bool
	ScrollTop bool
	Visible   string
	Sections  []sectionData
}

type modalData struct {
	Open  bool
	Slots modal.Slots
}

type indexPage struct {
	BasePage
	Main  mainData
	Modal modalData
}

// SiteHandler serves the full single-page layout.
type SiteHandler struct {
	catalog *catalog.Catalog
	themes  theme.Store
	logger  *zap.Logger
}

// NewSiteHandler creates a new SiteHandler.
func NewSiteHandler(c *catalog.Catalog, themes theme.Store, logger *zap.Logger) *SiteHandler {
	return &SiteHandler{catalog: c, themes: themes, logger: logger}
}

// Index serves GET /. The URL fragment never reaches the server, so the page
// starts on the home section and the script re-routes from the fragment.
func (h *SiteHandler) Index(w http.ResponseWriter, r *http.Request) {
	view, err := theme.ViewFor(r.Context(), h.themes, theme.AmbientFromRequest(r))
	if err != nil {
		h.logger.Error("resolve theme", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	router := page.NewRouter(h.catalog)
	router.Start("")
	metrics.NavigationsTotal.WithLabelValues("start", metrics.ResultHome).Inc()

	// Ask the browser for its color scheme; Critical-CH makes Chromium retry
	// the first request with the hint. Other browsers never send it and the
	// page script applies the system preference when the source is ambient.
	w.Header().Set("Accept-CH", theme.AmbientHeader)
	w.Header().Set("Critical-CH", theme.AmbientHeader)
	w.Header().Add("Vary", theme.AmbientHeader)

	render(w, "index.html", indexPage{
		BasePage: BasePage{Theme: view, Site: h.catalog.Site(), Version: build.Version},
		Main:     buildMain(h.catalog, router),
	})
}

// buildMain turns router state into the template data for the main region.
func buildMain(c *catalog.Catalog, router *page.Router) mainData {
	tracks := c.Tracks()
	summaries := make([]trackSummary, 0, len(tracks))
	trackSection := make(map[string]string)
	for _, s := range c.Sections() {
		if s.Track != "" {
			trackSection[s.Track] = s.ID
		}
	}
	for _, t := range tracks {
		summaries = append(summaries, trackSummary{
			Track:   t,
			Section: trackSection[t.ID],
			Count:   len(c.ProblemsByTrack(t.ID)),
		})
	}

	views := router.Views()
	sections := make([]sectionData, 0, len(views))
	for _, v := range views {
		sd := sectionData{SectionView: v, Kind: kindPlain}
		switch {
		case v.Track != "":
			sd.Kind = kindTrack
			sd.TrackInfo, _ = c.Track(v.Track)
			sd.Problems = c.ProblemsByTrack(v.Track)
		case v.ID == c.Home():
			sd.Kind = kindHome
			sd.Tracks = summaries
		case v.ID == kindTeam:
			sd.Kind = kindTeam
			sd.Tracks = summaries
		}
		sections = append(sections, sd)
	}

	return mainData{
		Tagline:   c.Site().Tagline,
		MenuOpen:  router.MenuOpen(),
		ScrollTop: router.ScrollTop(),
		Visible:   router.Visible(),
		Sections:  sections,
	}
}
