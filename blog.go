// Package blog turns a directory of Markdown posts into a static site. The
// module wires the post pipeline (front matter, filename resolution,
// rendering) together with an index, listing pages, feeds and a sitemap.
package blog

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-blog/internal/commands"
	sitecmd "github.com/goliatone/go-blog/internal/commands/site"
	"github.com/goliatone/go-blog/internal/generator"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/logging/gologger"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/internal/runtimeconfig"
	"github.com/goliatone/go-blog/pkg/interfaces"
	"github.com/goliatone/go-blog/pkg/render"
	"github.com/goliatone/go-blog/pkg/storage"
)

// Re-exported service and result types so hosts can consume the pipeline
// without importing internal packages.
type (
	PostService      = posts.Service
	Post             = posts.Post
	PostIndex        = posts.Index
	PageView         = posts.PageView
	LoadResult       = posts.LoadResult
	Diagnostic       = posts.Diagnostic
	GeneratorService = generator.Service
	BuildOptions     = generator.BuildOptions
	BuildResult      = generator.BuildResult
	RenderedPage     = generator.RenderedPage
	SiteMetadata     = generator.SiteMetadata
)

// Command messages and handlers for dispatcher integration.
type (
	BuildSiteCommand = sitecmd.BuildSiteCommand
	DiffSiteCommand  = sitecmd.DiffSiteCommand
	CleanSiteCommand = sitecmd.CleanSiteCommand
	BuildSiteHandler = sitecmd.BuildSiteHandler
	DiffSiteHandler  = sitecmd.DiffSiteHandler
	CleanSiteHandler = sitecmd.CleanSiteHandler
	ResultEnvelope   = sitecmd.ResultEnvelope
	ResultCallback   = sitecmd.ResultCallback
)

// Errors surfaced by the post pipeline.
var (
	ErrNotFound             = posts.ErrNotFound
	ErrUnrecognizedFilename = posts.ErrUnrecognizedFilename
	ErrMalformedFrontMatter = posts.ErrMalformedFrontMatter
	ErrTitleRequired        = posts.ErrTitleRequired
	ErrDuplicateSlug        = posts.ErrDuplicateSlug
	ErrPageOutOfRange       = posts.ErrPageOutOfRange
)

// Module is the assembled blog runtime: a post service plus a site generator
// sharing one configuration and logger provider.
type Module struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	posts     *posts.Service
	generator *generator.Service
	renderer  interfaces.TemplateRenderer
	storage   interfaces.StorageProvider
}

// Option adjusts module assembly.
type Option func(*moduleOptions)

type moduleOptions struct {
	provider  interfaces.LoggerProvider
	renderer  interfaces.TemplateRenderer
	storage   interfaces.StorageProvider
	contentFS fs.FS
}

// WithLoggerProvider overrides the logger provider derived from configuration.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.provider = provider
	}
}

// WithRenderer overrides the default embedded template theme.
func WithRenderer(renderer interfaces.TemplateRenderer) Option {
	return func(o *moduleOptions) {
		o.renderer = renderer
	}
}

// WithStorage overrides the filesystem storage derived from the output
// directory. Useful for in-memory builds and previews.
func WithStorage(provider interfaces.StorageProvider) Option {
	return func(o *moduleOptions) {
		o.storage = provider
	}
}

// WithContentFS reads posts from the supplied filesystem instead of the
// configured content directory on disk.
func WithContentFS(filesystem fs.FS) Option {
	return func(o *moduleOptions) {
		o.contentFS = filesystem
	}
}

// New validates cfg and assembles the module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{}
	for _, opt := range opts {
		opt(&options)
	}

	provider := options.provider
	if provider == nil {
		built, err := loggerProviderFromConfig(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	renderer := options.renderer
	if renderer == nil {
		renderer = render.NewGoTemplateRenderer()
	}

	store := options.storage
	if store == nil {
		built, err := storage.NewFilesystem(cfg.Generator.OutputDir)
		if err != nil {
			return nil, err
		}
		store = built
	}

	postsCfg := posts.Config{
		ContentDir:    cfg.Content.Dir,
		Pattern:       cfg.Content.Pattern,
		Recursive:     cfg.Content.Recursive,
		BaseURL:       cfg.Site.BaseURL,
		IncludeDrafts: cfg.Content.IncludeDrafts,
		Workers:       cfg.Content.Workers,
		Parser: interfaces.ParseOptions{
			Extensions: cfg.Content.Parser.Extensions,
			Sanitize:   cfg.Content.Parser.Sanitize,
			HardWraps:  cfg.Content.Parser.HardWraps,
			SafeMode:   cfg.Content.Parser.SafeMode,
		},
	}

	var postService *posts.Service
	postOpts := []posts.Option{posts.WithLoggerProvider(provider)}
	if options.contentFS != nil {
		postService = posts.NewServiceWithFS(postsCfg, options.contentFS, postOpts...)
	} else {
		built, err := posts.NewService(postsCfg, postOpts...)
		if err != nil {
			return nil, fmt.Errorf("blog: content directory: %w", err)
		}
		postService = built
	}

	generatorService, err := generator.NewService(generator.Config{
		SiteTitle:       cfg.Site.Title,
		SiteDescription: cfg.Site.Description,
		BaseURL:         cfg.Site.BaseURL,
		PageSize:        cfg.Generator.PageSize,
		CleanBuild:      cfg.Generator.CleanBuild,
		GenerateSitemap: cfg.Generator.GenerateSitemap,
		GenerateRobots:  cfg.Generator.GenerateRobots,
		GenerateFeeds:   cfg.Generator.GenerateFeeds,
		Workers:         cfg.Generator.Workers,
	}, generator.Dependencies{
		Posts:    postService,
		Renderer: renderer,
		Storage:  store,
		Logger:   logging.GeneratorLogger(provider),
	})
	if err != nil {
		return nil, err
	}

	return &Module{
		cfg:       cfg,
		provider:  provider,
		posts:     postService,
		generator: generatorService,
		renderer:  renderer,
		storage:   store,
	}, nil
}

// Posts exposes the post pipeline service.
func (m *Module) Posts() *PostService {
	return m.posts
}

// Generator exposes the site build service.
func (m *Module) Generator() *GeneratorService {
	return m.generator
}

// Load parses the content directory and returns the immutable post index
// along with per-file diagnostics.
func (m *Module) Load(ctx context.Context) (*LoadResult, error) {
	return m.posts.Load(ctx)
}

// Build renders the full site into the configured storage.
func (m *Module) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	return m.generator.Build(ctx, opts)
}

// Clean removes every generated artifact.
func (m *Module) Clean(ctx context.Context) error {
	return m.generator.Clean(ctx)
}

// BuildHandler returns a command handler for site builds.
func (m *Module) BuildHandler() *BuildSiteHandler {
	return sitecmd.NewBuildSiteHandler(m.generator, commands.CommandLogger(m.provider, "site"))
}

// DiffHandler returns a command handler for dry-run builds.
func (m *Module) DiffHandler() *DiffSiteHandler {
	return sitecmd.NewDiffSiteHandler(m.generator, commands.CommandLogger(m.provider, "site"))
}

// CleanHandler returns a command handler that clears generated output.
func (m *Module) CleanHandler() *CleanSiteHandler {
	return sitecmd.NewCleanSiteHandler(m.generator, commands.CommandLogger(m.provider, "site"))
}

func loggerProviderFromConfig(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	if !cfg.Enabled {
		return nil, nil
	}
	format := cfg.Format
	if format == "" && cfg.Provider == "console" {
		format = "console"
	}
	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Level,
		Format:    format,
		AddSource: cfg.AddSource,
		Focus:     cfg.Focus,
	})
	if err != nil {
		return nil, err
	}
	return provider, nil
}
