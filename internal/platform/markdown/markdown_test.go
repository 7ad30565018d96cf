package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	out, err := Render("Pick **one**:\n\n- cats\n- dogs")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<strong>one</strong>", "<li>cats</li>", "<ul>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}

func TestRenderDropsRawHTML(t *testing.T) {
	out, err := Render("<script>alert(1)</script>\n\nhello")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("raw html must not pass through: %q", out)
	}
}

func TestRenderEmpty(t *testing.T) {
	out, err := Render("")
	if err != nil || out != "" {
		t.Fatalf("expected empty output, got %q, %v", out, err)
	}
}
