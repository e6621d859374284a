package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cityalgo/cityalgo/internal/catalog"
)

// SectionListResponse is returned by GET /sections.
type SectionListResponse struct {
	Home     string            `json:"home"`
	Sections []catalog.Section `json:"sections"`
}

// TrackListResponse is returned by GET /tracks.
type TrackListResponse struct {
	Tracks []catalog.Track `json:"tracks"`
}

// ProblemListResponse is returned by GET /problems. Code is omitted from
// list items; fetch a single problem for it.
type ProblemListResponse struct {
	Problems   []ProblemSummary `json:"problems"`
	NextCursor string           `json:"next_cursor,omitempty"`
}

// ProblemSummary is a list item.
type ProblemSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Track string `json:"track"`
}

type catalogHandler struct {
	catalog *catalog.Catalog
}

// ListSections handles GET /api/v1/sections.
func (h *catalogHandler) ListSections(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SectionListResponse{
		Home:     h.catalog.Home(),
		Sections: h.catalog.Sections(),
	})
}

// ListTracks handles GET /api/v1/tracks.
func (h *catalogHandler) ListTracks(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, TrackListResponse{Tracks: h.catalog.Tracks()})
}

// ListProblems handles GET /api/v1/problems?track=&cursor=&limit=.
func (h *catalogHandler) ListProblems(w http.ResponseWriter, r *http.Request) {
	cursor, limit := parsePagination(r)
	after, err := decodeCursor(cursor)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid cursor", "BAD_REQUEST")
		return
	}

	var problems []catalog.Problem
	if track := r.URL.Query().Get("track"); track != "" {
		if _, err := h.catalog.Track(track); err != nil {
			writeError(w, http.StatusNotFound, "track not found", "NOT_FOUND")
			return
		}
		problems = h.catalog.ProblemsByTrack(track)
	} else {
		problems = h.catalog.Problems()
	}

	start := 0
	if after != "" {
		start = -1
		for i, p := range problems {
			if p.ID == after {
				start = i + 1
				break
			}
		}
		if start < 0 {
			writeError(w, http.StatusBadRequest, "invalid cursor", "BAD_REQUEST")
			return
		}
	}

	end := min(start+limit, len(problems))
	resp := ProblemListResponse{Problems: make([]ProblemSummary, 0, end-start)}
	for _, p := range problems[start:end] {
		resp.Problems = append(resp.Problems, ProblemSummary{ID: p.ID, Title: p.Title, Track: p.Track})
	}
	if end < len(problems) {
		resp.NextCursor = encodeCursor(problems[end-1].ID)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetProblem handles GET /api/v1/problems/{id}.
func (h *catalogHandler) GetProblem(w http.ResponseWriter, r *http.Request) {
	p, err := h.catalog.Problem(chi.URLParam(r, "id"))
	if errors.Is(err, catalog.ErrNotFound) {
		writeError(w, http.StatusNotFound, "problem not found", "NOT_FOUND")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error", "INTERNAL_ERROR")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
