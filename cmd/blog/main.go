package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-blog"
	"github.com/joho/godotenv"
)

func main() {
	// Missing .env files are fine; environment variables still apply.
	_ = godotenv.Load()

	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("blog: %v", err)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: blog <build|diff|clean> [flags]")
	}

	switch args[0] {
	case "build":
		return runBuild(args[1:], false)
	case "diff":
		return runBuild(args[1:], true)
	case "clean":
		return runClean(args[1:])
	default:
		return fmt.Errorf("unknown command %q (expected build, diff or clean)", args[0])
	}
}

func runBuild(args []string, dryRun bool) error {
	fs := flag.NewFlagSet("blog-build", flag.ExitOnError)
	contentDir := fs.String("content", envOr("BLOG_CONTENT_DIR", "content/posts"), "Path to the markdown content root")
	outputDir := fs.String("out", envOr("BLOG_OUTPUT_DIR", "dist"), "Directory that receives the generated site")
	baseURL := fs.String("base-url", os.Getenv("BLOG_BASE_URL"), "Absolute site URL used for permalinks and feeds")
	title := fs.String("title", envOr("BLOG_TITLE", "Blog"), "Site title")
	description := fs.String("description", os.Getenv("BLOG_DESCRIPTION"), "Site description")
	pageSize := fs.Int("page-size", 10, "Posts per listing page")
	drafts := fs.Bool("drafts", false, "Include posts marked as drafts")
	noClean := fs.Bool("no-clean", false, "Keep existing files in the output directory")
	noFeeds := fs.Bool("no-feeds", false, "Skip RSS and Atom feed generation")
	noSitemap := fs.Bool("no-sitemap", false, "Skip sitemap.xml generation")
	slugs := fs.String("slugs", "", "Comma separated slugs to rebuild (default: all posts)")
	logLevel := fs.String("log-level", envOr("BLOG_LOG_LEVEL", "info"), "Log level (trace|debug|info|warn|error)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := blog.DefaultConfig()
	cfg.Site.Title = *title
	cfg.Site.Description = *description
	cfg.Site.BaseURL = *baseURL
	cfg.Content.Dir = *contentDir
	cfg.Content.IncludeDrafts = *drafts
	cfg.Generator.OutputDir = *outputDir
	cfg.Generator.PageSize = *pageSize
	cfg.Generator.CleanBuild = !*noClean
	cfg.Generator.GenerateFeeds = !*noFeeds
	cfg.Generator.GenerateSitemap = !*noSitemap
	cfg.Generator.GenerateRobots = !*noSitemap
	cfg.Logging.Level = *logLevel

	module, err := blog.New(cfg)
	if err != nil {
		return err
	}

	result, err := module.Build(context.Background(), blog.BuildOptions{
		DryRun: dryRun,
		Slugs:  splitList(*slugs),
	})
	if err != nil {
		return err
	}

	reportBuild(os.Stdout, result)
	return nil
}

func runClean(args []string) error {
	fs := flag.NewFlagSet("blog-clean", flag.ExitOnError)
	contentDir := fs.String("content", envOr("BLOG_CONTENT_DIR", "content/posts"), "Path to the markdown content root")
	outputDir := fs.String("out", envOr("BLOG_OUTPUT_DIR", "dist"), "Directory that receives the generated site")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := blog.DefaultConfig()
	cfg.Content.Dir = *contentDir
	cfg.Generator.OutputDir = *outputDir

	module, err := blog.New(cfg)
	if err != nil {
		return err
	}

	if err := module.Clean(context.Background()); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "cleaned %s\n", *outputDir)
	return nil
}

func reportBuild(out *os.File, result *blog.BuildResult) {
	verb := "built"
	if result.DryRun {
		verb = "would build"
	}
	fmt.Fprintf(out, "%s %d posts, %d listing pages in %s\n",
		verb, result.PostsBuilt, result.ListingsBuilt, result.Duration.Round(time.Millisecond))
	for _, diag := range result.Warnings {
		fmt.Fprintf(out, "warning: %s: %v\n", diag.Path, diag.Err)
	}
	for _, diag := range result.Skipped {
		fmt.Fprintf(out, "skipped: %s: %v\n", diag.Path, diag.Err)
	}
	if result.DraftsExcluded > 0 {
		fmt.Fprintf(out, "drafts excluded: %d\n", result.DraftsExcluded)
	}
}

func envOr(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
