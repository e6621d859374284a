// Package theme owns the light/dark preference: one persisted flag and one
// set of visual indicators that always mirror it.
package theme

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Theme is the presentation mode.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse accepts exactly "light" or "dark".
func Parse(s string) (Theme, bool) {
	switch Theme(s) {
	case Light, Dark:
		return Theme(s), true
	}
	return "", false
}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) String() string { return string(t) }

// Ambient is the environment's light/dark signal, consulted only when no
// preference has been stored.
type Ambient int

const (
	AmbientUnknown Ambient = iota
	AmbientLight
	AmbientDark
)

// AmbientHeader is the user-agent client hint carrying the OS color scheme.
const AmbientHeader = "Sec-CH-Prefers-Color-Scheme"

// AmbientFromRequest reads the color scheme client hint.
func AmbientFromRequest(r *http.Request) Ambient {
	v := strings.Trim(strings.TrimSpace(r.Header.Get(AmbientHeader)), `"`)
	switch strings.ToLower(v) {
	case "light":
		return AmbientLight
	case "dark":
		return AmbientDark
	}
	return AmbientUnknown
}

// Source records where the displayed theme came from.
type Source string

const (
	// SourceStored is a persisted preference.
	SourceStored Source = "stored"
	// SourceHint is the ambient signal the request carried.
	SourceHint Source = "hint"
	// SourceAmbient means neither was available: the rendered theme is the
	// dark default and the client applies its own color scheme preference.
	SourceAmbient Source = "ambient"
)

// SourceOf reports which input Resolve used for the same arguments.
func SourceOf(hasStored bool, ambient Ambient) Source {
	switch {
	case hasStored:
		return SourceStored
	case ambient != AmbientUnknown:
		return SourceHint
	}
	return SourceAmbient
}

// Resolve picks the theme to display: the stored preference when present,
// light when the ambient signal asks for light, dark otherwise.
func Resolve(stored Theme, hasStored bool, ambient Ambient) Theme {
	if hasStored {
		return stored
	}
	if ambient == AmbientLight {
		return Light
	}
	return Dark
}

// Store is the single durable slot holding the preference.
type Store interface {
	Load(ctx context.Context) (Theme, bool, error)
	Save(ctx context.Context, t Theme) error
}

// Indicator is a visual element that reflects the current theme.
type Indicator interface {
	Apply(t Theme)
}

// Controller is the only component that reads or writes the preference.
// A Controller is built per request and is not safe for concurrent use.
type Controller struct {
	store      Store
	indicators []Indicator
	current    Theme
	source     Source
}

// NewController wires a store to the indicators it keeps in sync.
func NewController(store Store, indicators ...Indicator) *Controller {
	return &Controller{store: store, indicators: indicators}
}

// Initialize reconciles indicators with the stored preference, falling back
// to the ambient signal. It never writes to the store.
func (c *Controller) Initialize(ctx context.Context, ambient Ambient) (Theme, error) {
	stored, ok, err := c.store.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load theme: %w", err)
	}
	c.current = Resolve(stored, ok, ambient)
	c.source = SourceOf(ok, ambient)
	c.apply()
	return c.current, nil
}

// Toggle flips the theme, persists it and updates every indicator.
// Without a prior Initialize the stored value (or dark) is the starting point.
func (c *Controller) Toggle(ctx context.Context) (Theme, error) {
	if c.current == "" {
		if _, err := c.Initialize(ctx, AmbientUnknown); err != nil {
			return "", err
		}
	}
	next := c.current.Toggle()
	if err := c.store.Save(ctx, next); err != nil {
		return "", fmt.Errorf("save theme: %w", err)
	}
	c.current = next
	c.source = SourceStored
	c.apply()
	return c.current, nil
}

// Current returns the displayed theme, or "" before Initialize.
func (c *Controller) Current() Theme { return c.current }

// Source returns where the displayed theme came from, or "" before Initialize.
func (c *Controller) Source() Source { return c.source }

func (c *Controller) apply() {
	for _, ind := range c.indicators {
		if ind != nil {
			ind.Apply(c.current)
		}
	}
}
