package render

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

const svgFixture = `<?xml version="1.0"?>
<svg xmlns="http://www.w3.org/2000/svg" class="graph">
<g id="graph0" class="graph">
<g id="node1" class="node node0"><title>root</title></g>
</g>
</svg>`

func TestInjectHighlight(t *testing.T) {
	out, err := InjectHighlight([]byte(svgFixture), []int{0, 2}, 0.25)
	if err != nil {
		t.Fatalf("InjectHighlight: %v", err)
	}

	text := string(out)
	for _, rule := range []string{
		".graph:has(.node0:hover) > g:not(.node0) { opacity: 0.75 }",
		".graph:has(.node2:hover) > g:not(.node2) { opacity: 0.75 }",
	} {
		if !strings.Contains(text, rule) {
			t.Errorf("output missing rule %q:\n%s", rule, text)
		}
	}

	// The style block must precede the graph group so browsers apply it to
	// the groups that follow.
	style := strings.Index(text, "<style>")
	marker := strings.Index(text, `<g id="graph0"`)
	if style < 0 || marker < 0 || style > marker {
		t.Errorf("style block at %d, graph group at %d; want style first", style, marker)
	}

	// The original document survives intact around the insertion.
	if !bytes.HasSuffix(out, []byte("</svg>")) {
		t.Error("document tail should be preserved")
	}
}

func TestInjectHighlightClampsAmount(t *testing.T) {
	out, err := InjectHighlight([]byte(svgFixture), []int{0}, 2)
	if err != nil {
		t.Fatalf("InjectHighlight: %v", err)
	}
	if !strings.Contains(string(out), "{ opacity: 0 }") {
		t.Errorf("amount above 1 should clamp to full dimming:\n%s", out)
	}
}

func TestInjectHighlightNoGraphElement(t *testing.T) {
	_, err := InjectHighlight([]byte("<svg></svg>"), []int{0}, 0.5)
	if !errors.Is(err, ErrNoGraphElement) {
		t.Errorf("error = %v, want ErrNoGraphElement", err)
	}
}
