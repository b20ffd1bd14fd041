package markdown

import (
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestGoldmarkParser_Parse(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.Parse([]byte("# Heading\n\nHello **world**"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "Heading</h1>") {
		t.Fatalf("expected rendered HTML to include <h1>Heading</h1>, got %q", got)
	}
	if !strings.Contains(got, "<strong>world</strong>") {
		t.Fatalf("expected rendered HTML to include <strong>, got %q", got)
	}
}

func TestGoldmarkParser_ParseWithOptions(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	html, err := parser.ParseWithOptions([]byte("line one\nline two"), interfaces.ParseOptions{
		HardWraps: true,
	})
	if err != nil {
		t.Fatalf("ParseWithOptions: %v", err)
	}

	if !strings.Contains(string(html), "line one<br>") {
		t.Fatalf("expected hard wraps in HTML output, got %q", string(html))
	}
}

func TestGoldmarkParser_CodeBlockLanguageHint(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	source := "```go\nfmt.Println(\"hi\")\n```\n"
	html, err := parser.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := string(html)
	if !strings.Contains(got, `<code class="language-go">`) {
		t.Fatalf("expected language hint to survive as class metadata, got %q", got)
	}
	if !strings.Contains(got, "fmt.Println(&quot;hi&quot;)") {
		t.Fatalf("expected code content preserved verbatim, got %q", got)
	}
}

func TestGoldmarkParser_HeadingAnchors(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	source := "# Intro\n\n## Setup\n\ntext\n\n## Setup\n\nmore text\n"
	result, err := parser.RenderWithHeadings([]byte(source), interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("RenderWithHeadings: %v", err)
	}

	wantAnchors := []string{"intro", "setup", "setup-2"}
	if len(result.Headings) != len(wantAnchors) {
		t.Fatalf("expected %d headings, got %#v", len(wantAnchors), result.Headings)
	}
	for i, want := range wantAnchors {
		if result.Headings[i].AnchorID != want {
			t.Fatalf("heading %d anchor mismatch: want %q got %q", i, want, result.Headings[i].AnchorID)
		}
	}

	got := string(result.HTML)
	for _, want := range wantAnchors {
		if !strings.Contains(got, `id="`+want+`"`) {
			t.Fatalf("rendered HTML missing id %q: %q", want, got)
		}
	}
}

func TestGoldmarkParser_HeadingTextWithInlineMarkup(t *testing.T) {
	parser := NewGoldmarkParser(interfaces.ParseOptions{})

	result, err := parser.RenderWithHeadings([]byte("## Using `kubectl` Proxy\n"), interfaces.ParseOptions{})
	if err != nil {
		t.Fatalf("RenderWithHeadings: %v", err)
	}
	if len(result.Headings) != 1 {
		t.Fatalf("expected a single heading, got %#v", result.Headings)
	}
	if result.Headings[0].Text != "Using kubectl Proxy" {
		t.Fatalf("expected inline markup stripped from heading text, got %q", result.Headings[0].Text)
	}
}
