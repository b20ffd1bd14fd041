package generator

import (
	"time"

	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Template names resolved through the configured TemplateRenderer.
const (
	postTemplate    = "post"
	listingTemplate = "list"
)

// SiteMetadata exposes site-wide information to templates.
type SiteMetadata struct {
	Title       string
	Description string
	BaseURL     string
}

// PostPageContext is the data contract for a single post page.
type PostPageContext struct {
	Site        SiteMetadata
	Post        *posts.Post
	TOC         []interfaces.Heading
	TOCSticky   bool
	Permalink   string
	GeneratedAt time.Time
}

// ListingPageContext is the data contract for one paginated index view.
type ListingPageContext struct {
	Site        SiteMetadata
	Page        posts.PageView
	Route       string
	PrevRoute   string
	NextRoute   string
	GeneratedAt time.Time
}

func newPostPageContext(site SiteMetadata, post *posts.Post, generatedAt time.Time) PostPageContext {
	return PostPageContext{
		Site:        site,
		Post:        post,
		TOC:         post.TOC,
		TOCSticky:   post.TOCSticky,
		Permalink:   absoluteURL(site.BaseURL, postRoute(post.Slug)),
		GeneratedAt: generatedAt,
	}
}

func newListingPageContext(site SiteMetadata, page posts.PageView, generatedAt time.Time) ListingPageContext {
	ctx := ListingPageContext{
		Site:        site,
		Page:        page,
		Route:       listingRoute(page.Number),
		GeneratedAt: generatedAt,
	}
	if page.HasPrev {
		ctx.PrevRoute = listingRoute(page.Number - 1)
	}
	if page.HasNext {
		ctx.NextRoute = listingRoute(page.Number + 1)
	}
	return ctx
}
