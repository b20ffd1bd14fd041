package posts

import (
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Post is the central pipeline entity. Instances are built once during
// discovery and treated as read-only afterwards; rebuilding the index means
// re-running discovery from scratch.
type Post struct {
	ID          uuid.UUID
	Slug        string
	Title       string
	AuthorName  string
	PublishDate time.Time
	TOCEnabled  bool
	// TOCSticky is a presentation flag carried through unchanged.
	TOCSticky bool
	Draft     bool
	// SourcePath is the file the post was loaded from, relative to the
	// content root.
	SourcePath string
	// Body is the raw Markdown text, owned exclusively by the post.
	Body []byte
	// RenderedBody is derived output, recomputed on each load pass.
	RenderedBody []byte
	// TOC is populated only when TOCEnabled is true.
	TOC          []interfaces.Heading
	Custom       map[string]any
	LastModified time.Time
	Checksum     []byte
}

// PageView is one slice of the index listing.
type PageView struct {
	Number     int
	Size       int
	TotalPages int
	TotalPosts int
	Posts      []*Post
	HasNext    bool
	HasPrev    bool
}
