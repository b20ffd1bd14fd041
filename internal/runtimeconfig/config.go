package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors surfaced by Config.Validate. These are sentinel values so
// hosts can branch on a specific misconfiguration.
var (
	ErrContentDirRequired      = errors.New("blog config: content directory is required")
	ErrOutputDirRequired       = errors.New("blog config: generator output directory is required")
	ErrPageSizeInvalid         = errors.New("blog config: page size must be zero or positive")
	ErrWorkersInvalid          = errors.New("blog config: worker count must be zero or positive")
	ErrBaseURLInvalid          = errors.New("blog config: base URL must include a scheme")
	ErrLoggingProviderRequired = errors.New("blog config: logging provider is required when logging is enabled")
	ErrLoggingProviderUnknown  = errors.New("blog config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("blog config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("blog config: logging format is invalid")
)

// Config aggregates runtime settings for the blog module. Fields intentionally
// use simple types so host applications can bind them from flags, env or file.
type Config struct {
	Site      SiteConfig
	Content   ContentConfig
	Generator GeneratorConfig
	Logging   LoggingConfig
}

// SiteConfig captures site-wide presentation metadata.
type SiteConfig struct {
	Title       string
	Description string
	BaseURL     string
}

// ContentConfig captures filesystem and parser behaviour for Markdown ingestion.
type ContentConfig struct {
	Dir           string
	Pattern       string
	Recursive     bool
	IncludeDrafts bool
	Workers       int
	Parser        ParserConfig
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Extensions []string
	Sanitize   bool
	HardWraps  bool
	SafeMode   bool
}

// GeneratorConfig captures behaviour for the static site build.
type GeneratorConfig struct {
	OutputDir       string
	PageSize        int
	CleanBuild      bool
	GenerateSitemap bool
	GenerateRobots  bool
	GenerateFeeds   bool
	Workers         int
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Enabled   bool
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns opinionated defaults for a local build.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Title: "Blog",
		},
		Content: ContentConfig{
			Dir:       "content/posts",
			Pattern:   "*.md",
			Recursive: true,
		},
		Generator: GeneratorConfig{
			OutputDir:       "dist",
			PageSize:        10,
			CleanBuild:      true,
			GenerateSitemap: true,
			GenerateRobots:  true,
			GenerateFeeds:   true,
		},
		Logging: LoggingConfig{
			Enabled:  true,
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if cfg.Content.Workers < 0 {
		return fmt.Errorf("%w: content", ErrWorkersInvalid)
	}
	if strings.TrimSpace(cfg.Generator.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if cfg.Generator.PageSize < 0 {
		return ErrPageSizeInvalid
	}
	if cfg.Generator.Workers < 0 {
		return fmt.Errorf("%w: generator", ErrWorkersInvalid)
	}
	if base := strings.TrimSpace(cfg.Site.BaseURL); base != "" {
		if !strings.Contains(base, "://") {
			return fmt.Errorf("%w: %s", ErrBaseURLInvalid, base)
		}
	}
	if cfg.Logging.Enabled {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
