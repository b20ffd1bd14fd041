package posts

import (
	"fmt"
	"sort"
)

// DefaultPageSize is the listing page size used when none is configured.
const DefaultPageSize = 10

// Index is the immutable, ordered view over the successfully parsed posts:
// publish date descending, ties broken by slug ascending for determinism.
type Index struct {
	posts  []*Post
	bySlug map[string]*Post
}

// NewIndex orders the supplied posts and builds the slug lookup table. When
// two posts share a slug the first one in sorted order wins; callers surface
// the duplicate as a diagnostic before construction.
func NewIndex(input []*Post) *Index {
	posts := make([]*Post, 0, len(input))
	for _, post := range input {
		if post == nil {
			continue
		}
		posts = append(posts, post)
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PublishDate.Equal(posts[j].PublishDate) {
			return posts[i].PublishDate.After(posts[j].PublishDate)
		}
		return posts[i].Slug < posts[j].Slug
	})

	bySlug := make(map[string]*Post, len(posts))
	deduped := posts[:0]
	for _, post := range posts {
		if _, exists := bySlug[post.Slug]; exists {
			continue
		}
		bySlug[post.Slug] = post
		deduped = append(deduped, post)
	}

	return &Index{
		posts:  deduped,
		bySlug: bySlug,
	}
}

// Len reports the number of indexed posts.
func (ix *Index) Len() int {
	return len(ix.posts)
}

// All returns the ordered posts. The returned slice is a copy; the posts it
// points at remain shared and read-only.
func (ix *Index) All() []*Post {
	out := make([]*Post, len(ix.posts))
	copy(out, ix.posts)
	return out
}

// BySlug resolves a post by its slug, failing with a NotFoundError when the
// slug is absent.
func (ix *Index) BySlug(slug string) (*Post, error) {
	post, ok := ix.bySlug[slug]
	if !ok {
		return nil, &NotFoundError{Slug: slug}
	}
	return post, nil
}

// TotalPages reports how many listing pages the index produces for the given
// page size.
func (ix *Index) TotalPages(size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if len(ix.posts) == 0 {
		return 1
	}
	return (len(ix.posts) + size - 1) / size
}

// Page returns the requested 1-based listing page.
func (ix *Index) Page(number, size int) (PageView, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := ix.TotalPages(size)
	if number < 1 || number > total {
		return PageView{}, fmt.Errorf("%w: page=%d total=%d", ErrPageOutOfRange, number, total)
	}

	start := (number - 1) * size
	end := start + size
	if end > len(ix.posts) {
		end = len(ix.posts)
	}

	slice := make([]*Post, end-start)
	copy(slice, ix.posts[start:end])

	return PageView{
		Number:     number,
		Size:       size,
		TotalPages: total,
		TotalPosts: len(ix.posts),
		Posts:      slice,
		HasNext:    number < total,
		HasPrev:    number > 1,
	}, nil
}
