package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cityalgo/cityalgo/internal/metrics"
	"github.com/cityalgo/cityalgo/internal/modal"
)

// ProblemsHandler serves the problem modal fragments.
type ProblemsHandler struct {
	lookup modal.Lookup
	hl     modal.Highlighter
	logger *zap.Logger
}

// NewProblemsHandler creates a new ProblemsHandler.
func NewProblemsHandler(lookup modal.Lookup, hl modal.Highlighter, logger *zap.Logger) *ProblemsHandler {
	return &ProblemsHandler{lookup: lookup, hl: hl, logger: logger}
}

// Modal handles GET /problems/{id}/modal. On a miss the response is empty
// and tells the client not to swap, so whatever modal is showing stays.
func (h *ProblemsHandler) Modal(w http.ResponseWriter, r *http.Request) {
	m := modal.New(h.lookup, h.hl, h.logger)
	if !m.Open(chi.URLParam(r, "id")) {
		metrics.ModalOpensTotal.WithLabelValues(metrics.ResultMiss).Inc()
		w.Header().Set("HX-Reswap", "none")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	metrics.ModalOpensTotal.WithLabelValues(metrics.ResultHit).Inc()
	renderFragment(w, "modal", modalData{Open: m.IsOpen(), Slots: m.Slots()})
}

// Close handles POST /problems/modal/close.
func (h *ProblemsHandler) Close(w http.ResponseWriter, r *http.Request) {
	m := modal.New(h.lookup, h.hl, h.logger)
	m.Close()
	renderFragment(w, "modal", modalData{Open: m.IsOpen(), Slots: m.Slots()})
}
