package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/cityalgo/cityalgo/internal/metrics"
	"github.com/cityalgo/cityalgo/internal/theme"
)

// ThemeHandler handles the theme toggle endpoint.
type ThemeHandler struct {
	store  theme.Store
	logger *zap.Logger
}

// NewThemeHandler creates a new ThemeHandler.
func NewThemeHandler(store theme.Store, logger *zap.Logger) *ThemeHandler {
	return &ThemeHandler{store: store, logger: logger}
}

// themeState is the toggle response: the new theme plus the classes the
// client copies onto the root element and both icons.
type themeState struct {
	Theme     string `json:"theme"`
	RootClass string `json:"root_class"`
	IconClass string `json:"icon_class"`
}

// Toggle handles POST /theme. No form input: the server flips whatever the
// session holds (or the ambient default) and persists the result.
func (h *ThemeHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	view := theme.NewView()
	c := theme.NewController(h.store, view)
	if _, err := c.Initialize(r.Context(), theme.AmbientFromRequest(r)); err != nil {
		h.logger.Error("load theme", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	next, err := c.Toggle(r.Context())
	if err != nil {
		h.logger.Error("toggle theme", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	metrics.ThemeTogglesTotal.WithLabelValues(next.String()).Inc()

	state := themeState{
		Theme:     next.String(),
		RootClass: view.Root.Class(),
		IconClass: view.Icon.Class(),
	}
	trigger, _ := json.Marshal(map[string]any{"themeChanged": state})
	w.Header().Set("HX-Trigger", string(trigger))
	writeJSON(w, http.StatusOK, state)
}
