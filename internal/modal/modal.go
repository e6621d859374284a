// Package modal implements the problem dialog: open it on a known problem,
// close it unconditionally.
package modal

import (
	"html/template"

	"go.uber.org/zap"

	"github.com/cityalgo/cityalgo/internal/catalog"
	"github.com/cityalgo/cityalgo/internal/highlight"
)

// State is the open/closed status of the dialog.
type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// EscapeKey closes the dialog.
const EscapeKey = "Escape"

// Lookup resolves a stable problem id.
type Lookup interface {
	Problem(id string) (catalog.Problem, error)
}

// Highlighter renders code into HTML.
type Highlighter interface {
	Highlight(code, lang string) (template.HTML, error)
}

// Slots are the display fields of the dialog.
type Slots struct {
	ID       string
	Title    string
	Problem  string
	Solution string
	Code     string
	Language string
	CodeHTML template.HTML
}

// Modal is the dialog state machine. It is built per request and is not safe
// for concurrent use.
type Modal struct {
	lookup Lookup
	hl     Highlighter
	logger *zap.Logger

	state State
	slots Slots
}

// New creates a closed Modal. A nil logger discards diagnostics.
func New(lookup Lookup, hl Highlighter, logger *zap.Logger) *Modal {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Modal{lookup: lookup, hl: hl, logger: logger}
}

// Open shows the problem with the given id. On a miss it logs and returns
// false, leaving state and slots exactly as they were.
func (m *Modal) Open(id string) bool {
	p, err := m.lookup.Problem(id)
	if err != nil {
		m.logger.Warn("no problem data found",
			zap.String("id", id),
			zap.Error(err),
		)
		return false
	}

	m.slots = Slots{
		ID:       p.ID,
		Title:    p.Title,
		Problem:  p.Problem,
		Solution: p.Solution,
		Code:     p.Code,
		Language: p.Language,
	}
	m.slots.CodeHTML = m.render(p)
	m.state = Open
	return true
}

func (m *Modal) render(p catalog.Problem) template.HTML {
	if m.hl == nil {
		return highlight.Plain(p.Code)
	}
	out, err := m.hl.Highlight(p.Code, p.Language)
	if err != nil {
		m.logger.Warn("code highlighting failed",
			zap.String("id", p.ID),
			zap.Error(err),
		)
		return highlight.Plain(p.Code)
	}
	return out
}

// Close hides the dialog. Closing a closed dialog does nothing.
func (m *Modal) Close() {
	m.state = Closed
}

// HandleKey closes the dialog on Escape regardless of state.
func (m *Modal) HandleKey(key string) {
	if key == EscapeKey {
		m.Close()
	}
}

// State returns the current state.
func (m *Modal) State() State { return m.state }

// IsOpen reports whether the dialog is shown.
func (m *Modal) IsOpen() bool { return m.state == Open }

// Slots returns the displayed content. Slots keep their last value after
// Close.
func (m *Modal) Slots() Slots { return m.slots }
