package highlight

import (
	"strings"
	"testing"
)

func TestHighlight(t *testing.T) {
	h := New("")
	if h.Style() != DefaultStyle {
		t.Errorf("style = %q, want %q", h.Style(), DefaultStyle)
	}

	out, err := h.Highlight("vector<int> dist(n, INT_MAX);", "cpp")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, "<pre") {
		t.Errorf("missing <pre>: %s", s)
	}
	if !strings.Contains(s, "&lt;") {
		t.Errorf("angle brackets not escaped: %s", s)
	}
	if !strings.Contains(s, "INT_MAX") {
		t.Errorf("code text missing: %s", s)
	}
}

func TestHighlightCodeWithBackticks(t *testing.T) {
	out, err := New("monokai").Highlight("s := `raw ``` string`", "go")
	if err != nil {
		t.Fatalf("Highlight: %v", err)
	}
	if !strings.Contains(string(out), "raw") {
		t.Errorf("code truncated: %s", out)
	}
}

func TestFenceFor(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"plain", "```"},
		{"a `b` c", "```"},
		{"x ``` y", "````"},
		{"`````", "``````"},
	}
	for _, tt := range tests {
		if got := fenceFor(tt.code); got != tt.want {
			t.Errorf("fenceFor(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestPlain(t *testing.T) {
	got := string(Plain("a < b"))
	if got != "<pre><code>a &lt; b</code></pre>" {
		t.Errorf("Plain = %q", got)
	}
}
