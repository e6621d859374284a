package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cityalgo/cityalgo/internal/catalog"
	"github.com/cityalgo/cityalgo/internal/highlight"
	"github.com/cityalgo/cityalgo/internal/session"
	"github.com/cityalgo/cityalgo/internal/testutil"
	"github.com/cityalgo/cityalgo/internal/theme"
)

type testEnv struct {
	router  http.Handler
	catalog *catalog.Catalog
	cookie  *http.Cookie
}

// newTestEnv wires the full router over the embedded catalog plus a
// "pricing" section, backed by an in-memory SQLite session store.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	base, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	sections := append(base.Sections(), catalog.Section{ID: "pricing", Title: "Pricing"})
	c, err := catalog.New(base.Site(), base.Tracks(), sections, base.Problems())
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	sm := session.NewManager(testutil.NewTestDB(t), "sqlite3", time.Hour, false)
	return &testEnv{
		router: NewRouter(Deps{
			SessionManager: sm,
			Catalog:        c,
			Highlighter:    highlight.New("github"),
		}),
		catalog: c,
	}
}

// do sends a request, carrying and capturing the session cookie.
func (e *testEnv) do(t *testing.T, method, path string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			e.cookie = c
		}
	}
	return w
}

// hx marks a request as sent by htmx.
var hx = map[string]string{"HX-Request": "true"}

func visibleSections(body string) int {
	return strings.Count(body, `class="page-section"`)
}

func TestIndexStartsOnHome(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if visibleSections(body) != 1 {
		t.Errorf("visible sections = %d, want 1", visibleSections(body))
	}
	if !strings.Contains(body, `<section id="home" class="page-section">`) {
		t.Error("home section not visible")
	}
	if !strings.Contains(body, `<html lang="en" class="dark"`) {
		t.Error("default theme is not dark")
	}
	if !strings.Contains(body, `data-problem="shortest-path-navigation"`) {
		t.Error("problem cards not keyed by stable id")
	}
	if got := w.Header().Get("Accept-CH"); got != theme.AmbientHeader {
		t.Errorf("Accept-CH = %q", got)
	}
}

func TestIndexFirstVisitWithoutHint(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/", nil)
	body := w.Body.String()
	if !strings.Contains(body, `<html lang="en" class="dark" data-theme-source="ambient">`) {
		t.Error("first visit without a hint is not marked for the client color scheme")
	}
	if got := w.Header().Get("Critical-CH"); got != theme.AmbientHeader {
		t.Errorf("Critical-CH = %q, want %q", got, theme.AmbientHeader)
	}
	if env.cookie != nil {
		t.Error("first visit persisted a session")
	}

	js := env.do(t, http.MethodGet, "/static/js/app.js", nil).Body.String()
	for _, want := range []string{"data-theme-source", "prefers-color-scheme: light", "themeChanged"} {
		if !strings.Contains(js, want) {
			t.Errorf("app.js does not handle %q", want)
		}
	}
}

func TestIndexAmbientLight(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/", map[string]string{theme.AmbientHeader: `"light"`})
	body := w.Body.String()
	if !strings.Contains(body, `<html lang="en" class="" data-theme-source="hint">`) {
		t.Error("ambient light not applied to root")
	}
	if !strings.Contains(body, `id="theme-icon" class="fas fa-moon text-gray-600"`) {
		t.Error("desktop icon not in light state")
	}
}

func TestThemeToggleRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/theme", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var state themeState
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Theme != "light" || state.RootClass != "" || state.IconClass != "fas fa-moon text-gray-600" {
		t.Errorf("first toggle = %+v", state)
	}
	if !strings.Contains(w.Header().Get("HX-Trigger"), `"themeChanged"`) {
		t.Errorf("HX-Trigger = %q", w.Header().Get("HX-Trigger"))
	}

	// Persisted light beats an ambient dark signal.
	w = env.do(t, http.MethodGet, "/", map[string]string{theme.AmbientHeader: "dark"})
	if !strings.Contains(w.Body.String(), `<html lang="en" class="" data-theme-source="stored">`) {
		t.Error("persisted light theme not rendered")
	}

	w = env.do(t, http.MethodPost, "/theme", nil)
	state = themeState{}
	if err := json.NewDecoder(w.Body).Decode(&state); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if state.Theme != "dark" || state.RootClass != "dark" {
		t.Errorf("second toggle = %+v", state)
	}

	w = env.do(t, http.MethodGet, "/", map[string]string{theme.AmbientHeader: "light"})
	if !strings.Contains(w.Body.String(), `<html lang="en" class="dark"`) {
		t.Error("persisted dark theme not rendered after reload")
	}
}

func TestSectionsNavigate(t *testing.T) {
	env := newTestEnv(t)
	for _, s := range env.catalog.Sections() {
		w := env.do(t, http.MethodGet, "/sections/"+s.ID, hx)
		if w.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", s.ID, w.Code)
		}
		body := w.Body.String()
		if visibleSections(body) != 1 {
			t.Errorf("%s: visible sections = %d, want 1", s.ID, visibleSections(body))
		}
		if !strings.Contains(body, `<section id="`+s.ID+`" class="page-section">`) {
			t.Errorf("%s: section not visible", s.ID)
		}
		if w.Header().Get("X-Scroll-Top") != "true" {
			t.Errorf("%s: scroll reset not requested", s.ID)
		}
		if !strings.Contains(body, `class="mobile-menu hidden"`) {
			t.Errorf("%s: mobile menu not closed", s.ID)
		}
	}
}

func TestSectionsNavigateUnknown(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/sections/nope", hx)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if n := visibleSections(w.Body.String()); n != 0 {
		t.Errorf("visible sections = %d, want 0", n)
	}
	if w.Header().Get("X-Scroll-Top") != "" {
		t.Error("scroll reset requested for unknown section")
	}
}

func TestSectionsStartAndHistory(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/sections/start/pricing", "pricing"},
		{"/sections/start/nope", "home"},
		{"/sections/start", "home"},
		{"/sections/history/energy", "energy"},
		{"/sections/history/nope", "home"},
		{"/sections/history", "home"},
	}
	env := newTestEnv(t)
	for _, tt := range tests {
		w := env.do(t, http.MethodGet, tt.path, hx)
		body := w.Body.String()
		if visibleSections(body) != 1 {
			t.Errorf("%s: visible sections = %d, want 1", tt.path, visibleSections(body))
		}
		if !strings.Contains(body, `<section id="`+tt.want+`" class="page-section">`) {
			t.Errorf("%s: %q not visible", tt.path, tt.want)
		}
	}
}

func TestSectionsOutsideHTMXRedirect(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/sections/pricing", "/#pricing"},
		{"/sections/start/energy", "/#energy"},
		{"/sections/history", "/"},
	}
	env := newTestEnv(t)
	for _, tt := range tests {
		w := env.do(t, http.MethodGet, tt.path, nil)
		if w.Code != http.StatusSeeOther {
			t.Errorf("%s: status = %d, want %d", tt.path, w.Code, http.StatusSeeOther)
		}
		if got := w.Header().Get("Location"); got != tt.want {
			t.Errorf("%s: Location = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestHTMXAttributes(t *testing.T) {
	env := newTestEnv(t)
	body := env.do(t, http.MethodGet, "/", nil).Body.String()
	for _, want := range []string{
		`htmx.min.js`,
		`hx-get="/sections/pricing" hx-target="#app-main"`,
		`hx-get="/problems/shortest-path-navigation/modal" hx-target="#problemModal"`,
		`hx-post="/problems/modal/close" hx-trigger="keyup[key=='Escape'] from:body"`,
		`hx-post="/theme" hx-swap="none"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %s", want)
		}
	}
}

func TestRequestsLogThroughZap(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	c, err := catalog.Default()
	if err != nil {
		t.Fatalf("catalog.Default: %v", err)
	}
	h := NewRouter(Deps{
		SessionManager: session.NewManager(testutil.NewTestDB(t), "sqlite3", time.Hour, false),
		Catalog:        c,
		Logger:         zap.New(core),
	})
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/tracks", nil))

	entries := logs.FilterMessage("request").All()
	if len(entries) != 1 {
		t.Fatalf("request log entries = %d, want 1", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["path"] != "/api/v1/tracks" || fields["status"] != int64(http.StatusOK) {
		t.Errorf("fields = %v", fields)
	}
}

func TestProblemModal(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/problems/shortest-path-navigation/modal", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, `class="modal active"`) {
		t.Error("modal not open")
	}
	if !strings.Contains(body, `<h3 id="modalTitle">Shortest Path Navigation</h3>`) {
		t.Error("title slot not populated")
	}
	if !strings.Contains(body, "dijkstra") || !strings.Contains(body, "<pre") {
		t.Error("code slot not highlighted")
	}
}

func TestProblemModalMiss(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/problems/nonexistent-title/modal", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
	if w.Header().Get("HX-Reswap") != "none" {
		t.Errorf("HX-Reswap = %q, want none", w.Header().Get("HX-Reswap"))
	}
	if w.Body.Len() != 0 {
		t.Errorf("body = %q, want empty", w.Body.String())
	}
}

func TestProblemModalClose(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 2; i++ {
		w := env.do(t, http.MethodPost, "/problems/modal/close", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d", w.Code)
		}
		if !strings.Contains(w.Body.String(), `class="modal"`) {
			t.Errorf("close #%d did not render a closed modal", i+1)
		}
	}
}

func TestStaticAndMetrics(t *testing.T) {
	env := newTestEnv(t)
	for _, path := range []string{"/static/js/app.js", "/static/css/app.css", "/metrics"} {
		w := env.do(t, http.MethodGet, path, nil)
		if w.Code != http.StatusOK {
			t.Errorf("%s: status = %d", path, w.Code)
		}
	}
}
