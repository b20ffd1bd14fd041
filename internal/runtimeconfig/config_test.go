package runtimeconfig_test

import (
	"errors"
	"testing"

	"github.com/goliatone/go-blog/internal/runtimeconfig"
)

func TestConfigValidate_DefaultsAreValid(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate_RequiresContentDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Dir = " "

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestConfigValidate_RequiresOutputDir(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.OutputDir = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrOutputDirRequired) {
		t.Fatalf("expected ErrOutputDirRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativePageSize(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Generator.PageSize = -1

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrPageSizeInvalid) {
		t.Fatalf("expected ErrPageSizeInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsNegativeWorkers(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Content.Workers = -2

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrWorkersInvalid) {
		t.Fatalf("expected ErrWorkersInvalid, got %v", err)
	}
}

func TestConfigValidate_RejectsSchemelessBaseURL(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.BaseURL = "blog.example.com"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrBaseURLInvalid) {
		t.Fatalf("expected ErrBaseURLInvalid, got %v", err)
	}
}

func TestConfigValidate_RequiresLoggingProviderWhenEnabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = ""

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderRequired) {
		t.Fatalf("expected ErrLoggingProviderRequired, got %v", err)
	}
}

func TestConfigValidate_RejectsUnknownLoggingProvider(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "syslog"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

func TestConfigValidate_RejectsInvalidLoggingFormat(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "xml"

	err := cfg.Validate()
	if !errors.Is(err, runtimeconfig.ErrLoggingFormatInvalid) {
		t.Fatalf("expected ErrLoggingFormatInvalid, got %v", err)
	}
}

func TestConfigValidate_SkipsLoggingChecksWhenDisabled(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Enabled = false
	cfg.Logging.Provider = "syslog"

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}
