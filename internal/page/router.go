// Package page implements the section router of the single-page layout:
// exactly one section is visible after every successful navigation.
package page

import (
	"strings"

	"github.com/cityalgo/cityalgo/internal/catalog"
)

// Sections is the closed set of section ids the router can show.
type Sections interface {
	Sections() []catalog.Section
	Home() string
}

// Router tracks which section is visible and the mobile menu state.
// A Router is built per request and is not safe for concurrent use.
type Router struct {
	order   []catalog.Section
	known   map[string]bool
	home    string
	visible string

	menuOpen  bool
	scrollTop bool
}

// NewRouter creates a router over the given sections. Nothing is visible
// until Start, NavigateTo or PopState runs.
func NewRouter(s Sections) *Router {
	order := s.Sections()
	known := make(map[string]bool, len(order))
	for _, sec := range order {
		known[sec.ID] = true
	}
	return &Router{order: order, known: known, home: s.Home()}
}

// NavigateTo hides every section and shows id when it is known. An unknown
// id leaves nothing visible. The mobile menu is always closed.
func (r *Router) NavigateTo(id string) bool {
	r.visible = ""
	r.scrollTop = false
	r.menuOpen = false
	if !r.known[id] {
		return false
	}
	r.visible = id
	r.scrollTop = true
	return true
}

// Start routes from the URL fragment at page load. Unknown or empty
// fragments land on the home section.
func (r *Router) Start(fragment string) {
	id := strings.TrimPrefix(fragment, "#")
	if id != "" && r.known[id] {
		r.NavigateTo(id)
		return
	}
	r.NavigateTo(r.home)
}

// PopState restores the section recorded in a history entry, or home when
// the entry carries none.
func (r *Router) PopState(id string) {
	if id == "" || !r.known[id] {
		r.NavigateTo(r.home)
		return
	}
	r.NavigateTo(id)
}

// ToggleMenu opens or closes the mobile navigation menu.
func (r *Router) ToggleMenu() { r.menuOpen = !r.menuOpen }

// Visible returns the visible section id, or "" when none is.
func (r *Router) Visible() string { return r.visible }

// Home returns the default section id.
func (r *Router) Home() string { return r.home }

// MenuOpen reports whether the mobile menu is expanded.
func (r *Router) MenuOpen() bool { return r.menuOpen }

// ScrollTop reports whether the last navigation asked for a scroll reset.
func (r *Router) ScrollTop() bool { return r.scrollTop }

// SectionView is the render state of one section container.
type SectionView struct {
	catalog.Section
	Hidden bool
}

// Views returns every section in order with its hidden flag.
func (r *Router) Views() []SectionView {
	out := make([]SectionView, len(r.order))
	for i, s := range r.order {
		out[i] = SectionView{Section: s, Hidden: s.ID != r.visible}
	}
	return out
}

// VisibleCount returns how many sections are shown (0 or 1).
func (r *Router) VisibleCount() int {
	n := 0
	for _, v := range r.Views() {
		if !v.Hidden {
			n++
		}
	}
	return n
}
