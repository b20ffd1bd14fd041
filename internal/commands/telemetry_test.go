package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type capturedEvent struct {
	level string
	msg   string
	args  []any
}

type captureLogger struct {
	events []capturedEvent
}

func (l *captureLogger) Trace(msg string, args ...any) { l.record("trace", msg, args) }
func (l *captureLogger) Debug(msg string, args ...any) { l.record("debug", msg, args) }
func (l *captureLogger) Info(msg string, args ...any)  { l.record("info", msg, args) }
func (l *captureLogger) Warn(msg string, args ...any)  { l.record("warn", msg, args) }
func (l *captureLogger) Error(msg string, args ...any) { l.record("error", msg, args) }
func (l *captureLogger) Fatal(msg string, args ...any) { l.record("fatal", msg, args) }

func (l *captureLogger) WithContext(ctx context.Context) interfaces.Logger { return l }

func (l *captureLogger) record(level, msg string, args []any) {
	l.events = append(l.events, capturedEvent{level: level, msg: msg, args: args})
}

func (l *captureLogger) argValue(event capturedEvent, key string) (any, bool) {
	for i := 0; i+1 < len(event.args); i += 2 {
		if event.args[i] == key {
			return event.args[i+1], true
		}
	}
	return nil, false
}

func TestDefaultTelemetryLogsCompletion(t *testing.T) {
	logger := &captureLogger{}
	telemetry := DefaultTelemetry[testMessage](logger)

	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Command:  "blog.test.message",
		Duration: 125 * time.Millisecond,
		Status:   TelemetryStatusSuccess,
	})

	require.Len(t, logger.events, 1)
	event := logger.events[0]
	assert.Equal(t, "info", event.level)
	assert.Equal(t, "site.command.completed", event.msg)

	status, ok := logger.argValue(event, "status")
	require.True(t, ok)
	assert.Equal(t, "success", status)

	duration, ok := logger.argValue(event, "duration_ms")
	require.True(t, ok)
	assert.Equal(t, int64(125), duration)
}

func TestDefaultTelemetryLogsFailureWithError(t *testing.T) {
	logger := &captureLogger{}
	telemetry := DefaultTelemetry[testMessage](logger)

	boom := errors.New("render failed")
	telemetry(context.Background(), testMessage{}, TelemetryInfo{
		Command: "blog.test.message",
		Status:  TelemetryStatusFailed,
		Error:   boom,
	})

	require.Len(t, logger.events, 1)
	event := logger.events[0]
	assert.Equal(t, "error", event.level)
	assert.Equal(t, "site.command.completed", event.msg)

	value, ok := logger.argValue(event, "error")
	require.True(t, ok)
	assert.Equal(t, boom, value)
}

func TestHandlerFallsBackToDefaultTelemetry(t *testing.T) {
	logger := &captureLogger{}
	handler := NewHandler(func(context.Context, testMessage) error {
		return nil
	}, WithLogger[testMessage](logger))

	require.NoError(t, handler.Execute(context.Background(), testMessage{Value: "x"}))

	var completed []capturedEvent
	for _, event := range logger.events {
		if event.msg == "site.command.completed" {
			completed = append(completed, event)
		}
	}
	require.Len(t, completed, 1)
	assert.Equal(t, "info", completed[0].level)
}
