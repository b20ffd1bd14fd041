package sitecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-blog/internal/generator"
)

const (
	buildSiteMessageType = "blog.site.build"
	diffSiteMessageType  = "blog.site.diff"
	cleanSiteMessageType = "blog.site.clean"
)

// ResultCallback receives build results produced by generator operations. The
// callback is optional and invoked synchronously from the handler when a
// BuildResult is available.
type ResultCallback func(ResultEnvelope)

// ResultEnvelope captures the outcome of a site command execution.
type ResultEnvelope struct {
	Result   *generator.BuildResult
	Metadata map[string]any
}

// BuildSiteCommand executes a full or filtered site build.
type BuildSiteCommand struct {
	Slugs          []string       `json:"slugs,omitempty"`
	DryRun         bool           `json:"dry_run,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (BuildSiteCommand) Type() string { return buildSiteMessageType }

// Validate ensures slug filters are well-formed.
func (m BuildSiteCommand) Validate() error {
	errs := validation.Errors{}
	for _, slug := range m.Slugs {
		if strings.TrimSpace(slug) == "" {
			errs["slugs"] = validation.NewError("blog.site.build.slug_invalid", "slugs must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// DiffSiteCommand performs a dry-run build to surface what would be written
// without touching storage.
type DiffSiteCommand struct {
	Slugs          []string       `json:"slugs,omitempty"`
	ResultCallback ResultCallback `json:"-"`
}

// Type implements command.Message.
func (DiffSiteCommand) Type() string { return diffSiteMessageType }

// Validate ensures slug filters are well-formed.
func (m DiffSiteCommand) Validate() error {
	errs := validation.Errors{}
	for _, slug := range m.Slugs {
		if strings.TrimSpace(slug) == "" {
			errs["slugs"] = validation.NewError("blog.site.diff.slug_invalid", "slugs must not contain empty values")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CleanSiteCommand clears generated artifacts from the configured storage.
type CleanSiteCommand struct{}

// Type implements command.Message.
func (CleanSiteCommand) Type() string { return cleanSiteMessageType }

// Validate satisfies command.Message; there are no payload constraints.
func (CleanSiteCommand) Validate() error { return nil }
