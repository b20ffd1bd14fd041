package commands

import (
	"context"
	"time"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

// TelemetryStatus labels how a site command execution ended.
type TelemetryStatus string

const (
	// TelemetryStatusSuccess marks an execution that completed without errors.
	TelemetryStatusSuccess TelemetryStatus = "success"
	// TelemetryStatusFailed marks an execution whose wrapped function returned an error.
	TelemetryStatusFailed TelemetryStatus = "failed"
	// TelemetryStatusContextError marks an execution cut short by cancellation or deadline.
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo is the execution record handed to telemetry callbacks after a
// site command finishes.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
}

// Telemetry observes finished executions; a handler invokes it exactly once
// per Execute call.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs outcomes as a single completion event carrying the
// status and duration, so slow site builds surface without extra tooling.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	if logger == nil {
		logger = logging.NoOp()
	}
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := logging.WithFields(logger, info.Fields)
		args := []any{
			"status", string(info.Status),
			"duration_ms", info.Duration.Milliseconds(),
		}
		if info.Error != nil {
			entry.Error("site.command.completed", append(args, "error", info.Error)...)
			return
		}
		entry.Info("site.command.completed", args...)
	}
}
