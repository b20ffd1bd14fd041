package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type recordingLogger struct {
	interfaces.Logger
	fields map[string]any
}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := map[string]any{}
	for k, v := range r.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &recordingLogger{Logger: r.Logger, fields: merged}
}

type staticProvider struct {
	logger interfaces.Logger
}

func (p staticProvider) GetLogger(string) interfaces.Logger { return p.logger }

func TestModuleLoggerWithoutProvider(t *testing.T) {
	logger := ModuleLogger(nil, "blog.posts")
	if logger == nil {
		t.Fatal("expected a usable logger")
	}
	// Must not panic.
	logger.Info("noop")
	logger.WithContext(context.Background()).Debug("noop")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	base := &recordingLogger{Logger: NoOp()}
	logger := ModuleLogger(staticProvider{logger: base}, "blog.generator")

	recorded, ok := logger.(*recordingLogger)
	if !ok {
		t.Fatalf("expected recordingLogger, got %T", logger)
	}
	if recorded.fields["module"] != "blog.generator" {
		t.Fatalf("expected module field, got %v", recorded.fields)
	}
}

func TestWithFieldsSkipsPlainLoggers(t *testing.T) {
	logger := NoOp()
	if got := WithFields(logger, nil); got != logger {
		t.Fatal("expected original logger for empty fields")
	}
}

func TestWithFieldsCopiesInput(t *testing.T) {
	base := &recordingLogger{Logger: NoOp()}
	fields := map[string]any{"a": 1}
	enriched := WithFields(base, fields).(*recordingLogger)

	fields["a"] = 2
	if enriched.fields["a"] != 1 {
		t.Fatalf("expected copied fields, got %v", enriched.fields)
	}
}
