package commands

import (
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const commandLoggerName = "blog.site.commands"

// CommandLogger derives the logger shared by site command handlers. Build,
// diff and clean use one namespace so executions triggered by the same run
// interleave cleanly in output.
func CommandLogger(provider interfaces.LoggerProvider, scope string) interfaces.Logger {
	logger := logging.ModuleLogger(provider, commandLoggerName)
	fields := map[string]any{"component": "site_command"}
	if scope = strings.TrimSpace(scope); scope != "" {
		fields["command_scope"] = scope
	}
	return logging.WithFields(logger, fields)
}
