package theme

import "context"

// Icon glyphs and colors used by the toggle buttons.
const (
	GlyphSun      = "fa-sun"
	GlyphMoon     = "fa-moon"
	ColorSun      = "text-yellow-500"
	ColorMoon     = "text-gray-600"
	RootDark      = "dark"
	IconDesktopID = "theme-icon"
	IconMobileID  = "mobile-theme-icon"
)

// Root mirrors the "dark" class on the document root.
type Root struct {
	Dark bool
}

// Apply is a no-op on a nil Root.
func (r *Root) Apply(t Theme) {
	if r == nil {
		return
	}
	r.Dark = t == Dark
}

// Class returns the root element's class attribute.
func (r *Root) Class() string {
	if r != nil && r.Dark {
		return RootDark
	}
	return ""
}

// Icon is a toggle button glyph. Dark mode shows a yellow sun (click for
// light); light mode shows a gray moon.
type Icon struct {
	ID    string
	Glyph string
	Color string
}

// Apply is a no-op on a nil Icon.
func (i *Icon) Apply(t Theme) {
	if i == nil {
		return
	}
	if t == Dark {
		i.Glyph, i.Color = GlyphSun, ColorSun
		return
	}
	i.Glyph, i.Color = GlyphMoon, ColorMoon
}

// Class returns the icon's class attribute.
func (i *Icon) Class() string {
	if i == nil {
		return ""
	}
	return "fas " + i.Glyph + " " + i.Color
}

// View is the full set of theme indicators rendered into every page.
type View struct {
	Theme  Theme
	Source Source
	Root   Root
	Icon   Icon
	Mobile Icon
}

// Apply implements Indicator by updating every element of the view.
func (v *View) Apply(t Theme) {
	v.Theme = t
	v.Root.Apply(t)
	v.Icon.Apply(t)
	v.Mobile.Apply(t)
}

// NewView returns a view with the static markup defaults (dark: sun icons).
func NewView() *View {
	v := &View{
		Icon:   Icon{ID: IconDesktopID},
		Mobile: Icon{ID: IconMobileID},
	}
	v.Apply(Dark)
	return v
}

// ViewFor initializes a controller over store and returns the resulting view.
func ViewFor(ctx context.Context, store Store, ambient Ambient) (*View, error) {
	v := NewView()
	c := NewController(store, v)
	if _, err := c.Initialize(ctx, ambient); err != nil {
		return nil, err
	}
	v.Source = c.Source()
	return v, nil
}
