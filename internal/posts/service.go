package posts

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/markdown"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const maxDefaultWorkers = 8

// Config controls how the post pipeline discovers, parses, and renders files.
type Config struct {
	ContentDir    string
	Pattern       string
	Recursive     bool
	BaseURL       string
	IncludeDrafts bool
	Workers       int
	Parser        interfaces.ParseOptions
}

// Diagnostic records a per-file failure that did not abort the batch.
type Diagnostic struct {
	Path string
	Err  error
}

// LoadResult aggregates one discovery run over the content directory.
type LoadResult struct {
	Index          *Index
	Skipped        []Diagnostic
	Warnings       []Diagnostic
	DraftsExcluded int
	Duration       time.Duration
}

// Service turns a directory snapshot of Markdown files into an immutable post
// index. Each post is parsed and rendered independently; a malformed post is
// logged and skipped, never blocking the others.
type Service struct {
	cfg    Config
	loader *markdown.Loader
	parser *markdown.GoldmarkParser
	logger interfaces.Logger
	now    func() time.Time
}

// Option configures a Service instance.
type Option func(*Service)

// WithLogger injects the logger used during loads. Defaults to a no-op logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLoggerProvider scopes a module logger off the supplied provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Service) {
		s.logger = logging.PostsLogger(provider)
	}
}

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewService constructs a post service rooted at cfg.ContentDir.
func NewService(cfg Config, opts ...Option) (*Service, error) {
	filesystem, err := prepareFilesystem(cfg.ContentDir)
	if err != nil {
		return nil, err
	}
	return NewServiceWithFS(cfg, filesystem, opts...), nil
}

// NewServiceWithFS constructs a post service over the provided filesystem.
// The ContentDir config is only used for path reporting in this mode.
func NewServiceWithFS(cfg Config, filesystem fs.FS, opts ...Option) *Service {
	svc := &Service{
		cfg: cfg,
		loader: markdown.NewLoader(filesystem, markdown.LoaderConfig{
			BasePath:  cfg.ContentDir,
			Pattern:   cfg.Pattern,
			Recursive: cfg.Recursive,
		}),
		parser: markdown.NewGoldmarkParser(cfg.Parser),
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Load discovers every Markdown file under the content root and builds the
// post index. Per-file failures are reported as diagnostics; only directory
// discovery itself is fatal.
func (s *Service) Load(ctx context.Context) (*LoadResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := s.now()

	files, err := s.loader.LoadDirectory(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("posts: discover content: %w", err)
	}

	type outcome struct {
		post  *Post
		path  string
		warn  error
		skip  error
		draft bool
	}

	var (
		mu       sync.Mutex
		outcomes = make([]outcome, 0, len(files))
	)
	collect := func(o outcome) {
		mu.Lock()
		defer mu.Unlock()
		outcomes = append(outcomes, o)
	}

	workers := s.effectiveWorkerCount(len(files))
	jobs := make(chan *markdown.FileResult)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range jobs {
				post, warn, skip, draft := s.buildPost(file)
				collect(outcome{post: post, path: file.Path, warn: warn, skip: skip, draft: draft})
			}
		}()
	}

feed:
	for _, file := range files {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- file:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Deterministic diagnostics and duplicate handling regardless of worker
	// completion order.
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].path < outcomes[j].path })

	result := &LoadResult{}
	seen := map[string]string{}
	built := make([]*Post, 0, len(outcomes))
	for _, o := range outcomes {
		if o.warn != nil {
			result.Warnings = append(result.Warnings, Diagnostic{Path: o.path, Err: o.warn})
			s.logger.Warn("posts.load.front_matter_fallback", "path", o.path, "error", o.warn)
		}
		if o.skip != nil {
			result.Skipped = append(result.Skipped, Diagnostic{Path: o.path, Err: o.skip})
			s.logger.Warn("posts.load.skipped", "path", o.path, "error", o.skip)
			continue
		}
		if o.draft {
			result.DraftsExcluded++
			s.logger.Debug("posts.load.draft_excluded", "path", o.path)
			continue
		}
		if prev, dup := seen[o.post.Slug]; dup {
			err := fmt.Errorf("%w: slug=%s first=%s", ErrDuplicateSlug, o.post.Slug, prev)
			result.Skipped = append(result.Skipped, Diagnostic{Path: o.path, Err: err})
			s.logger.Warn("posts.load.skipped", "path", o.path, "error", err)
			continue
		}
		seen[o.post.Slug] = o.path
		built = append(built, o.post)
	}

	result.Index = NewIndex(built)
	result.Duration = time.Since(start)

	s.logger.Info("posts.load.complete",
		"posts", result.Index.Len(),
		"skipped", len(result.Skipped),
		"drafts_excluded", result.DraftsExcluded,
	)
	return result, nil
}

// buildPost is a pure computation over one file's content plus the immutable
// service configuration; it shares no state with other posts.
func (s *Service) buildPost(file *markdown.FileResult) (post *Post, warn, skip error, draft bool) {
	meta, err := ResolveFilename(file.Path)
	if err != nil {
		return nil, nil, err, false
	}

	doc, err := markdown.ParseDocument(file)
	if err != nil {
		// The document still carries the whole file as body; the post
		// publishes, the failure surfaces as a warning.
		warn = &MalformedFrontMatterError{Filename: doc.FilePath, Err: err}
	}
	fm := doc.FrontMatter

	if fm.Draft && !s.cfg.IncludeDrafts {
		return nil, warn, nil, true
	}

	title := strings.TrimSpace(fm.Title)
	if title == "" {
		if len(fm.Raw) > 0 {
			return nil, warn, fmt.Errorf("%w: path=%s", ErrTitleRequired, doc.FilePath), false
		}
		title = titleFromSlug(meta.Slug)
	}

	body := markdown.ReplaceBaseURL(doc.Body, s.cfg.BaseURL)

	rendered, err := s.parser.RenderWithHeadings(body, s.cfg.Parser)
	if err != nil {
		return nil, warn, fmt.Errorf("posts: render %s: %w", doc.FilePath, err), false
	}

	var toc []interfaces.Heading
	if fm.TOC {
		toc = markdown.BuildTOC(rendered.Headings)
	}

	return &Post{
		ID:           identity.PostUUID(meta.Slug),
		Slug:         meta.Slug,
		Title:        title,
		AuthorName:   fm.AuthorName,
		PublishDate:  meta.PublishDate,
		TOCEnabled:   fm.TOC,
		TOCSticky:    fm.TOCSticky,
		Draft:        fm.Draft,
		SourcePath:   doc.FilePath,
		Body:         body,
		RenderedBody: rendered.HTML,
		TOC:          toc,
		Custom:       fm.Custom,
		LastModified: doc.LastModified,
		Checksum:     doc.Checksum,
	}, warn, nil, false
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

func titleFromSlug(slug string) string {
	title := strings.ReplaceAll(slug, "-", " ")
	runes := []rune(title)
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

func prepareFilesystem(basePath string) (fs.FS, error) {
	if strings.TrimSpace(basePath) == "" {
		basePath = "."
	}
	if _, err := os.Stat(basePath); err != nil {
		return nil, fmt.Errorf("posts: stat content dir %s: %w", basePath, err)
	}
	return os.DirFS(basePath), nil
}
