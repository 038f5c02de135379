package logging

import (
	"context"
	"testing"

	"github.com/goliatone/go-lessonlint/pkg/interfaces"
)

type recordingLogger struct {
	fields map[string]any
}

func newRecordingLogger() *recordingLogger {
	return &recordingLogger{}
}

func (r *recordingLogger) Trace(msg string, args ...any) {}
func (r *recordingLogger) Debug(msg string, args ...any) {}
func (r *recordingLogger) Info(msg string, args ...any)  {}
func (r *recordingLogger) Warn(msg string, args ...any)  {}
func (r *recordingLogger) Error(msg string, args ...any) {}
func (r *recordingLogger) Fatal(msg string, args ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	r.fields = fields
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	return r
}

type recordingProvider struct {
	logger    *recordingLogger
	requested []string
}

func (p *recordingProvider) GetLogger(name string) interfaces.Logger {
	p.requested = append(p.requested, name)
	return p.logger
}

func TestModuleLoggerNilProviderFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "lessonlint.engine")
	if logger == nil {
		t.Fatal("expected a logger")
	}
	logger.Info("must not panic")
}

func TestModuleLoggerAttachesModuleField(t *testing.T) {
	provider := &recordingProvider{logger: newRecordingLogger()}

	EngineLogger(provider)
	if len(provider.requested) != 1 || provider.requested[0] != "lessonlint.engine" {
		t.Fatalf("unexpected namespaces requested: %v", provider.requested)
	}
	if provider.logger.fields["module"] != "lessonlint.engine" {
		t.Fatalf("expected module field, got %v", provider.logger.fields)
	}
}

func TestModuleLoggerDefaultsModuleName(t *testing.T) {
	provider := &recordingProvider{logger: newRecordingLogger()}

	ModuleLogger(provider, "")
	if provider.requested[0] != "lessonlint" {
		t.Fatalf("expected root namespace, got %v", provider.requested)
	}
}

func TestWithFieldsCopiesInput(t *testing.T) {
	logger := newRecordingLogger()
	fields := map[string]any{"file": "index.md"}

	WithFields(logger, fields)
	fields["file"] = "mutated"

	if logger.fields["file"] != "index.md" {
		t.Fatalf("expected a defensive copy, got %v", logger.fields)
	}
}

func TestWithFieldsSkipsNonFieldLoggers(t *testing.T) {
	logger := NoOp()
	if got := WithFields(logger, map[string]any{"k": "v"}); got == nil {
		t.Fatal("expected the logger back")
	}
	if WithFields(nil, map[string]any{"k": "v"}) != nil {
		t.Fatal("expected nil logger to pass through")
	}
}
