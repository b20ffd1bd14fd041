package generator

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"path"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const maxDefaultWorkers = 8

// Config controls one site build.
type Config struct {
	SiteTitle       string
	SiteDescription string
	BaseURL         string
	PageSize        int
	CleanBuild      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	Workers         int
}

// Dependencies carries the collaborators a Service needs. Posts and Renderer
// are required; a nil Storage turns the build into a render-only pass.
type Dependencies struct {
	Posts    *posts.Service
	Renderer interfaces.TemplateRenderer
	Storage  interfaces.StorageProvider
	Logger   interfaces.Logger
}

// BuildOptions tweaks a single Build invocation.
type BuildOptions struct {
	// DryRun renders everything but writes nothing.
	DryRun bool
	// Slugs restricts post page generation to the named posts. Listings,
	// feeds and sitemap still cover the full index.
	Slugs []string
}

// RenderedPage is one artifact produced by a build.
type RenderedPage struct {
	Slug         string
	Route        string
	Output       string
	Category     string
	HTML         []byte
	Checksum     string
	LastModified time.Time
}

// BuildResult summarizes a build run.
type BuildResult struct {
	PostsBuilt     int
	PostsSkipped   int
	ListingsBuilt  int
	FeedsBuilt     int
	DraftsExcluded int
	Pages          []RenderedPage
	Skipped        []posts.Diagnostic
	Warnings       []posts.Diagnostic
	Duration       time.Duration
	DryRun         bool
}

// Service renders the post index into a static site tree.
type Service struct {
	cfg      Config
	posts    *posts.Service
	renderer interfaces.TemplateRenderer
	logger   interfaces.Logger
	storage  interfaces.StorageProvider
	now      func() time.Time
}

// NewService wires a generator service. It fails fast on missing required
// dependencies so a misconfigured build surfaces at startup, not mid-run.
func NewService(cfg Config, deps Dependencies) (*Service, error) {
	if deps.Posts == nil {
		return nil, errors.New("generator: posts service is required")
	}
	if deps.Renderer == nil {
		return nil, errors.New("generator: template renderer is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NoOp()
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = posts.DefaultPageSize
	}
	return &Service{
		cfg:      cfg,
		posts:    deps.Posts,
		renderer: deps.Renderer,
		logger:   logger,
		storage:  deps.Storage,
		now:      time.Now,
	}, nil
}

// Build loads the content directory and renders post pages, listings, feeds,
// the sitemap and robots.txt. Per-post render failures become diagnostics;
// the build keeps going and reports them in the result.
func (s *Service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := s.now()

	load, err := s.posts.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: load posts: %w", err)
	}

	writer := newArtifactWriter(s.storage)
	if opts.DryRun {
		writer = noopWriter{}
	}

	if s.cfg.CleanBuild && !opts.DryRun && s.storage != nil {
		if err := s.storage.Clean(ctx); err != nil {
			return nil, fmt.Errorf("generator: clean output: %w", err)
		}
	}

	site := SiteMetadata{
		Title:       s.cfg.SiteTitle,
		Description: s.cfg.SiteDescription,
		BaseURL:     s.cfg.BaseURL,
	}
	generatedAt := s.now().UTC()

	result := &BuildResult{
		DraftsExcluded: load.DraftsExcluded,
		Skipped:        append([]posts.Diagnostic(nil), load.Skipped...),
		Warnings:       append([]posts.Diagnostic(nil), load.Warnings...),
		DryRun:         opts.DryRun,
	}

	pages, diags := s.renderPostPages(ctx, site, load.Index, opts.Slugs, generatedAt)
	result.PostsBuilt = len(pages)
	result.PostsSkipped = len(diags)
	result.Skipped = append(result.Skipped, diags...)

	listingPages, err := s.renderListings(site, load.Index, generatedAt)
	if err != nil {
		return nil, err
	}
	result.ListingsBuilt = len(listingPages)
	pages = append(pages, listingPages...)

	if s.cfg.GenerateSitemap {
		// Only navigable HTML pages belong in the sitemap, not feeds.
		pages = append(pages, textPage("sitemap.xml", string(categorySitemap),
			buildSitemap(s.cfg.BaseURL, pages, generatedAt), generatedAt))
	}
	if s.cfg.GenerateFeeds {
		pages = append(pages,
			textPage("feed.xml", string(categoryFeed), buildRSSFeed(site, load.Index, generatedAt), generatedAt),
			textPage("feed.atom.xml", string(categoryFeed), buildAtomFeed(site, load.Index, generatedAt), generatedAt),
		)
		result.FeedsBuilt = 2
	}
	if s.cfg.GenerateRobots {
		pages = append(pages, textPage("robots.txt", string(categoryRobots),
			buildRobots(s.cfg.BaseURL, s.cfg.GenerateSitemap), generatedAt))
	}

	sort.Slice(pages, func(i, j int) bool { return pages[i].Output < pages[j].Output })
	result.Pages = pages

	if err := s.writePages(ctx, writer, pages); err != nil {
		return nil, err
	}

	result.Duration = s.now().Sub(start)
	s.logger.Info("generator.build.complete",
		"posts", result.PostsBuilt,
		"listings", result.ListingsBuilt,
		"skipped", result.PostsSkipped,
		"dry_run", opts.DryRun,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// Clean removes every artifact from the configured storage provider.
func (s *Service) Clean(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return s.storage.Clean(ctx)
}

func (s *Service) renderPostPages(ctx context.Context, site SiteMetadata, index *posts.Index, slugs []string, generatedAt time.Time) ([]RenderedPage, []posts.Diagnostic) {
	selected := index.All()
	if len(slugs) > 0 {
		wanted := make(map[string]struct{}, len(slugs))
		for _, slug := range slugs {
			wanted[slug] = struct{}{}
		}
		filtered := selected[:0]
		for _, post := range selected {
			if _, ok := wanted[post.Slug]; ok {
				filtered = append(filtered, post)
			}
		}
		selected = filtered
	}

	type outcome struct {
		page RenderedPage
		diag *posts.Diagnostic
	}

	jobs := make(chan *posts.Post)
	outcomes := make([]outcome, 0, len(selected))

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	workers := s.effectiveWorkerCount(len(selected))
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for post := range jobs {
				page, err := s.renderPostPage(site, post, generatedAt)
				mu.Lock()
				if err != nil {
					outcomes = append(outcomes, outcome{diag: &posts.Diagnostic{Path: post.SourcePath, Err: err}})
				} else {
					outcomes = append(outcomes, outcome{page: page})
				}
				mu.Unlock()
			}
		}()
	}

feed:
	for _, post := range selected {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- post:
		}
	}
	close(jobs)
	wg.Wait()

	pages := make([]RenderedPage, 0, len(outcomes))
	var diags []posts.Diagnostic
	for _, out := range outcomes {
		if out.diag != nil {
			s.logger.Warn("generator.post.render_failed", "path", out.diag.Path, "error", out.diag.Err)
			diags = append(diags, *out.diag)
			continue
		}
		pages = append(pages, out.page)
	}
	sort.Slice(diags, func(i, j int) bool { return diags[i].Path < diags[j].Path })
	return pages, diags
}

func (s *Service) renderPostPage(site SiteMetadata, post *posts.Post, generatedAt time.Time) (RenderedPage, error) {
	html, err := s.renderer.Render(postTemplate, newPostPageContext(site, post, generatedAt))
	if err != nil {
		return RenderedPage{}, fmt.Errorf("render post %q: %w", post.Slug, err)
	}
	lastMod := post.LastModified
	if lastMod.IsZero() {
		lastMod = post.PublishDate
	}
	return RenderedPage{
		Slug:         post.Slug,
		Route:        postRoute(post.Slug),
		Output:       postOutputPath(post.Slug),
		Category:     string(categoryPost),
		HTML:         html,
		Checksum:     checksumHex(html),
		LastModified: lastMod,
	}, nil
}

func (s *Service) renderListings(site SiteMetadata, index *posts.Index, generatedAt time.Time) ([]RenderedPage, error) {
	total := index.TotalPages(s.cfg.PageSize)
	pages := make([]RenderedPage, 0, total)
	for number := 1; number <= total; number++ {
		view, err := index.Page(number, s.cfg.PageSize)
		if err != nil {
			return nil, fmt.Errorf("generator: paginate index: %w", err)
		}
		html, err := s.renderer.Render(listingTemplate, newListingPageContext(site, view, generatedAt))
		if err != nil {
			return nil, fmt.Errorf("generator: render listing page %d: %w", number, err)
		}
		pages = append(pages, RenderedPage{
			Route:        listingRoute(number),
			Output:       listingOutputPath(number),
			Category:     string(categoryListing),
			HTML:         html,
			Checksum:     checksumHex(html),
			LastModified: generatedAt,
		})
	}
	return pages, nil
}

func (s *Service) writePages(ctx context.Context, writer artifactWriter, pages []RenderedPage) error {
	dirs := map[string]struct{}{}
	var errs []error
	for _, page := range pages {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := ensureDir(ctx, writer, dirs, path.Dir(page.Output)); err != nil {
			errs = append(errs, fmt.Errorf("generator: ensure dir for %s: %w", page.Output, err))
			continue
		}
		req := writeFileRequest{
			Path:        page.Output,
			Content:     bytes.NewReader(page.HTML),
			Size:        int64(len(page.HTML)),
			Category:    writeCategory(page.Category),
			ContentType: contentTypeFor(page.Output),
			Checksum:    page.Checksum,
		}
		if err := writer.WriteFile(ctx, req); err != nil {
			errs = append(errs, fmt.Errorf("generator: write %s: %w", page.Output, err))
		}
	}
	return errors.Join(errs...)
}

func (s *Service) effectiveWorkerCount(jobs int) int {
	workers := s.cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
		if workers > maxDefaultWorkers {
			workers = maxDefaultWorkers
		}
	}
	if jobs > 0 && workers > jobs {
		workers = jobs
	}
	if workers < 1 {
		workers = 1
	}
	return workers
}

func textPage(output, category, body string, lastMod time.Time) RenderedPage {
	content := []byte(body)
	return RenderedPage{
		Route:        "/" + output,
		Output:       output,
		Category:     category,
		HTML:         content,
		Checksum:     checksumHex(content),
		LastModified: lastMod,
	}
}

func contentTypeFor(output string) string {
	switch path.Ext(output) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".xml":
		return "application/xml"
	case ".txt":
		return "text/plain; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func checksumHex(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
