package generator

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-blog/internal/posts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
	meta  map[string]map[string]string
	dirs  map[string]struct{}
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{
		files: map[string][]byte{},
		meta:  map[string]map[string]string{},
		dirs:  map[string]struct{}{},
	}
}

func (m *memoryStorage) EnsureDir(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = struct{}{}
	return nil
}

func (m *memoryStorage) WriteFile(_ context.Context, path string, content io.Reader, metadata map[string]string) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = data
	m.meta[path] = metadata
	return nil
}

func (m *memoryStorage) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

func (m *memoryStorage) Clean(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = map[string][]byte{}
	m.meta = map[string]map[string]string{}
	return nil
}

type stubRenderer struct {
	failSlug string
}

func (r *stubRenderer) Render(name string, data any) ([]byte, error) {
	switch name {
	case "post":
		ctx, ok := data.(PostPageContext)
		if !ok {
			return nil, fmt.Errorf("unexpected data for %q", name)
		}
		if r.failSlug != "" && ctx.Post.Slug == r.failSlug {
			return nil, fmt.Errorf("template exploded for %s", ctx.Post.Slug)
		}
		return []byte("<article>" + ctx.Post.Title + "</article>"), nil
	case "list":
		ctx, ok := data.(ListingPageContext)
		if !ok {
			return nil, fmt.Errorf("unexpected data for %q", name)
		}
		return []byte(fmt.Sprintf("<ul data-page=%d data-total=%d></ul>", ctx.Page.Number, ctx.Page.TotalPages)), nil
	default:
		return nil, fmt.Errorf("unknown template %q", name)
	}
}

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"2024-11-12-release-notes.md": &fstest.MapFile{Data: []byte(
			"---\ntitle: Release Notes\nauthor_name: Ana\n---\n\nShipped things.\n")},
		"2024-04-23-getting-started.md": &fstest.MapFile{Data: []byte(
			"---\ntitle: Getting Started\n---\n\nFirst steps.\n")},
	}
}

func newTestService(t *testing.T, cfg Config, storage *memoryStorage, renderer *stubRenderer) *Service {
	t.Helper()
	postsSvc := posts.NewServiceWithFS(posts.Config{ContentDir: "content"}, contentFS())
	svc, err := NewService(cfg, Dependencies{
		Posts:    postsSvc,
		Renderer: renderer,
		Storage:  storage,
	})
	require.NoError(t, err)
	return svc
}

func TestBuildWritesSiteTree(t *testing.T) {
	storage := newMemoryStorage()
	svc := newTestService(t, Config{
		SiteTitle:       "Engineering Blog",
		BaseURL:         "https://blog.example.com",
		GenerateSitemap: true,
		GenerateRobots:  true,
		GenerateFeeds:   true,
	}, storage, &stubRenderer{})

	result, err := svc.Build(context.Background(), BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.PostsBuilt)
	assert.Equal(t, 1, result.ListingsBuilt)
	assert.Equal(t, 2, result.FeedsBuilt)
	assert.Empty(t, result.Skipped)

	for _, path := range []string{
		"posts/release-notes/index.html",
		"posts/getting-started/index.html",
		"index.html",
		"feed.xml",
		"feed.atom.xml",
		"sitemap.xml",
		"robots.txt",
	} {
		assert.Contains(t, storage.files, path)
	}

	assert.Equal(t, "<article>Release Notes</article>", string(storage.files["posts/release-notes/index.html"]))
	assert.Equal(t, "post", storage.meta["posts/release-notes/index.html"]["category"])
	assert.NotEmpty(t, storage.meta["index.html"]["checksum"])
}

func TestBuildSitemapCoversPagesOnly(t *testing.T) {
	storage := newMemoryStorage()
	svc := newTestService(t, Config{
		BaseURL:         "https://blog.example.com",
		GenerateSitemap: true,
		GenerateFeeds:   true,
	}, storage, &stubRenderer{})

	_, err := svc.Build(context.Background(), BuildOptions{})
	require.NoError(t, err)

	sitemap := string(storage.files["sitemap.xml"])
	assert.Contains(t, sitemap, "<loc>https://blog.example.com/posts/release-notes/</loc>")
	assert.Contains(t, sitemap, "<loc>https://blog.example.com/</loc>")
	assert.NotContains(t, sitemap, "feed.xml")
}

func TestBuildFeedsNewestFirst(t *testing.T) {
	storage := newMemoryStorage()
	svc := newTestService(t, Config{
		SiteTitle:     "Engineering Blog",
		BaseURL:       "https://blog.example.com",
		GenerateFeeds: true,
	}, storage, &stubRenderer{})

	_, err := svc.Build(context.Background(), BuildOptions{})
	require.NoError(t, err)

	rss := string(storage.files["feed.xml"])
	release := strings.Index(rss, "Release Notes")
	started := strings.Index(rss, "Getting Started")
	require.Greater(t, release, 0)
	require.Greater(t, started, 0)
	assert.Less(t, release, started, "newer post should appear first")

	atom := string(storage.files["feed.atom.xml"])
	assert.Contains(t, atom, "<name>Ana</name>")
}

func TestBuildDryRunWritesNothing(t *testing.T) {
	storage := newMemoryStorage()
	svc := newTestService(t, Config{BaseURL: "https://blog.example.com"}, storage, &stubRenderer{})

	result, err := svc.Build(context.Background(), BuildOptions{DryRun: true})
	require.NoError(t, err)

	assert.True(t, result.DryRun)
	assert.Equal(t, 2, result.PostsBuilt)
	assert.NotEmpty(t, result.Pages)
	assert.Empty(t, storage.files)
}

func TestBuildSlugFilter(t *testing.T) {
	storage := newMemoryStorage()
	svc := newTestService(t, Config{BaseURL: "https://blog.example.com"}, storage, &stubRenderer{})

	result, err := svc.Build(context.Background(), BuildOptions{Slugs: []string{"getting-started"}})
	require.NoError(t, err)

	assert.Equal(t, 1, result.PostsBuilt)
	assert.Contains(t, storage.files, "posts/getting-started/index.html")
	assert.NotContains(t, storage.files, "posts/release-notes/index.html")
	// Listings still cover the whole index.
	assert.Contains(t, storage.files, "index.html")
}

func TestBuildIsolatesPostRenderFailure(t *testing.T) {
	storage := newMemoryStorage()
	svc := newTestService(t, Config{BaseURL: "https://blog.example.com"}, storage, &stubRenderer{failSlug: "release-notes"})

	result, err := svc.Build(context.Background(), BuildOptions{})
	require.NoError(t, err)

	assert.Equal(t, 1, result.PostsBuilt)
	assert.Equal(t, 1, result.PostsSkipped)
	require.Len(t, result.Skipped, 1)
	assert.Contains(t, result.Skipped[0].Err.Error(), "release-notes")
	assert.Contains(t, storage.files, "posts/getting-started/index.html")
}

func TestBuildCleanBuildResetsStorage(t *testing.T) {
	storage := newMemoryStorage()
	storage.files["stale.html"] = []byte("old")

	svc := newTestService(t, Config{BaseURL: "https://blog.example.com", CleanBuild: true}, storage, &stubRenderer{})

	_, err := svc.Build(context.Background(), BuildOptions{})
	require.NoError(t, err)

	assert.NotContains(t, storage.files, "stale.html")
	assert.Contains(t, storage.files, "index.html")
}

func TestPathHelpers(t *testing.T) {
	assert.Equal(t, "posts/my-post/index.html", postOutputPath("my-post"))
	assert.Equal(t, "/posts/my-post/", postRoute("my-post"))
	assert.Equal(t, "index.html", listingOutputPath(1))
	assert.Equal(t, "page/2/index.html", listingOutputPath(2))
	assert.Equal(t, "/", listingRoute(1))
	assert.Equal(t, "/page/3/", listingRoute(3))
	assert.Equal(t, "https://x.dev/posts/a/", absoluteURL("https://x.dev/", "/posts/a/"))
	assert.Equal(t, "http://localhost/posts/a/", absoluteURL("", "posts/a/"))
}
