package markdown

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseFrontMatter(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	if meta.Title != "Deploy Previews Are Generally Available" {
		t.Fatalf("FrontMatter Title mismatch, got %q", meta.Title)
	}
	if meta.AuthorName != "Ana Duarte" {
		t.Fatalf("FrontMatter AuthorName mismatch, got %q", meta.AuthorName)
	}
	if !meta.TOC || !meta.TOCSticky {
		t.Fatalf("expected toc flags to be set: %#v", meta)
	}
	if meta.Custom["category"] != "announcements" {
		t.Fatalf("FrontMatter Custom category missing: %#v", meta.Custom)
	}
	if meta.Raw["title"] != "Deploy Previews Are Generally Available" {
		t.Fatalf("FrontMatter Raw title missing: %#v", meta.Raw)
	}
	if len(body) == 0 || !strings.Contains(string(body), "# Deploy Previews") {
		t.Fatalf("Markdown body not returned correctly: %q", string(body))
	}
}

func TestParseFrontMatter_NoDelimiter(t *testing.T) {
	source := []byte("# Plain Document\n\nNo metadata here.\n")

	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}
	if string(body) != string(source) {
		t.Fatalf("expected whole input as body, got %q", string(body))
	}
	if meta.Title != "" || meta.TOC || len(meta.Custom) != 0 {
		t.Fatalf("expected empty front matter, got %#v", meta)
	}
}

func TestParseFrontMatter_Unterminated(t *testing.T) {
	source := []byte("---\ntitle: Broken Post\nbody text without a closing delimiter\n")

	if _, _, err := ParseFrontMatter(source); err == nil {
		t.Fatalf("expected error for unterminated front matter")
	}
}

func TestEncodeFrontMatter_RoundTrip(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		t.Fatalf("ParseFrontMatter: %v", err)
	}

	encoded, err := EncodeFrontMatter(meta.Raw, body)
	if err != nil {
		t.Fatalf("EncodeFrontMatter: %v", err)
	}

	again, againBody, err := ParseFrontMatter(encoded)
	if err != nil {
		t.Fatalf("reparse encoded document: %v", err)
	}

	if !reflect.DeepEqual(meta.Raw, again.Raw) {
		t.Fatalf("front matter mapping changed across round trip:\nbefore %#v\nafter  %#v", meta.Raw, again.Raw)
	}
	if string(againBody) != string(body) {
		t.Fatalf("body changed across round trip:\nbefore %q\nafter  %q", string(body), string(againBody))
	}
}

func TestParseDocument(t *testing.T) {
	data := readFixture(t, "testdata/basic.md")
	modified := time.Now().UTC()
	checksum := []byte{0xde, 0xad, 0xbe, 0xef}

	doc, err := ParseDocument(&FileResult{
		Path:     "testdata/basic.md",
		Source:   data,
		Modified: modified,
		Checksum: checksum,
	})
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}

	if doc.FilePath != "testdata/basic.md" {
		t.Fatalf("expected FilePath to be set, got %q", doc.FilePath)
	}
	if doc.LastModified != modified {
		t.Fatalf("expected LastModified to equal the loader timestamp")
	}
	if string(doc.Checksum) != string(checksum) {
		t.Fatalf("expected Checksum to carry over from the loader")
	}
	if doc.FrontMatter.Title != "Deploy Previews Are Generally Available" {
		t.Fatalf("front matter title mismatch, got %q", doc.FrontMatter.Title)
	}
	if len(doc.Body) == 0 {
		t.Fatalf("expected Body to contain markdown content")
	}
}

func TestParseDocument_MalformedFrontMatter(t *testing.T) {
	source := []byte("---\ntitle: Broken Post\nbody text without a closing delimiter\n")

	doc, err := ParseDocument(&FileResult{Path: "broken.md", Source: source})
	if err == nil {
		t.Fatalf("expected error for unterminated front matter")
	}
	if doc == nil {
		t.Fatalf("expected a body-only document alongside the error")
	}
	if string(doc.Body) != string(source) {
		t.Fatalf("expected whole source as body, got %q", string(doc.Body))
	}
	if doc.FrontMatter.Title != "" || len(doc.FrontMatter.Raw) != 0 {
		t.Fatalf("expected empty front matter, got %#v", doc.FrontMatter)
	}
}

func readFixture(tb testing.TB, path string) []byte {
	tb.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		tb.Fatalf("read fixture %s: %v", path, err)
	}
	return data
}
