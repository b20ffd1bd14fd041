package blog

import "github.com/goliatone/go-blog/internal/runtimeconfig"

var (
	ErrContentDirRequired      = runtimeconfig.ErrContentDirRequired
	ErrOutputDirRequired       = runtimeconfig.ErrOutputDirRequired
	ErrPageSizeInvalid         = runtimeconfig.ErrPageSizeInvalid
	ErrWorkersInvalid          = runtimeconfig.ErrWorkersInvalid
	ErrBaseURLInvalid          = runtimeconfig.ErrBaseURLInvalid
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	SiteConfig      = runtimeconfig.SiteConfig
	ContentConfig   = runtimeconfig.ContentConfig
	ParserConfig    = runtimeconfig.ParserConfig
	GeneratorConfig = runtimeconfig.GeneratorConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

// DefaultConfig returns opinionated defaults for a local build.
func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
