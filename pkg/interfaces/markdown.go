package interfaces

import "time"

// FrontMatter captures the metadata header recognised at the top of a post.
// Raw holds every key exactly as parsed so custom fields survive round trips.
type FrontMatter struct {
	Title      string
	AuthorName string
	TOC        bool
	TOCSticky  bool
	Draft      bool
	Custom     map[string]any
	Raw        map[string]any
}

// Document is the parsed representation of a single Markdown source file:
// the front matter split from the raw body, plus the file metadata the post
// pipeline carries forward. Rendered HTML is a per-post artifact and lives on
// the post, not here.
type Document struct {
	FilePath     string
	FrontMatter  FrontMatter
	Body         []byte
	LastModified time.Time
	Checksum     []byte
}

// ParseOptions controls Markdown rendering behaviour.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
	Sanitize   bool
}

// MarkdownParser converts Markdown bytes into rendered HTML.
type MarkdownParser interface {
	Parse(markdown []byte) ([]byte, error)
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// Heading is a rendered heading reference used to build tables of contents.
// Children preserve document nesting: a heading of level N is nested under the
// nearest preceding heading of a lower level.
type Heading struct {
	Level    int
	Text     string
	AnchorID string
	Children []Heading
}
