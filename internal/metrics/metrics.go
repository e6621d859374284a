// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Navigation results.
const (
	ResultShown = "shown"
	ResultEmpty = "empty"
	ResultHome  = "home"
)

// Modal open results.
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

var (
	NavigationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityalgo_navigations_total",
		Help: "Section navigations by kind (navigate, start, history) and result.",
	}, []string{"kind", "result"})

	ModalOpensTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityalgo_modal_opens_total",
		Help: "Problem modal open attempts by result.",
	}, []string{"result"})

	ThemeTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cityalgo_theme_toggles_total",
		Help: "Theme toggles by resulting theme.",
	}, []string{"theme"})

	ProblemsLoaded = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cityalgo_problems_loaded",
		Help: "Number of problem entries in the loaded catalog.",
	})
)
