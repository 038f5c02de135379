package checkcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-lessonlint/internal/commands"
	"github.com/goliatone/go-lessonlint/internal/engine"
	"github.com/goliatone/go-lessonlint/internal/logging"
	"github.com/goliatone/go-lessonlint/internal/runner"
	"github.com/goliatone/go-lessonlint/pkg/interfaces"
)

const (
	checkFileOperation      = "check.file"
	checkDirectoryOperation = "check.directory"
)

// ErrConformance signals that validation completed and at least one
// diagnostic was recorded. Callers distinguish it from operational
// failures when mapping command results to exit codes.
var ErrConformance = errors.New("check command: documents do not conform")

var (
	_ command.Commander[CheckFileCommand]      = (*CheckFileHandler)(nil)
	_ command.Commander[CheckDirectoryCommand] = (*CheckDirectoryHandler)(nil)
)

// FileReporter receives the per-document report produced by a file check.
type FileReporter func(*engine.Report)

// BatchReporter receives the aggregate report produced by a directory check.
type BatchReporter func(*runner.BatchReport)

// CheckFileHandler validates a single document via the shared command handler foundation.
type CheckFileHandler struct {
	inner *commands.Handler[CheckFileCommand]
}

// NewCheckFileHandler creates a handler bound to the supplied runner. The
// reporter callback, when non-nil, observes the report before the handler
// translates conformance failures into ErrConformance.
func NewCheckFileHandler(checks *runner.Runner, logger interfaces.Logger, reporter FileReporter, opts ...commands.HandlerOption[CheckFileCommand]) *CheckFileHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CheckFileCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		report, err := checks.ValidateFile(ctx, msg.Path, msg.Template)
		if err != nil {
			return err
		}
		if reporter != nil {
			reporter(report)
		}

		logging.WithFields(baseLogger, map[string]any{
			"file":        report.File,
			"template":    report.Template,
			"skipped":     report.Skipped,
			"diagnostics": len(report.Diagnostics),
			"valid":       report.Valid(),
		}).Info("check.command.file.completed")

		if !report.Valid() {
			return ErrConformance
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckFileCommand]{
		commands.WithLogger[CheckFileCommand](baseLogger),
		commands.WithOperation[CheckFileCommand](checkFileOperation),
		commands.WithMessageFields(func(msg CheckFileCommand) map[string]any {
			fields := map[string]any{
				"path": msg.Path,
			}
			if msg.Template != "" {
				fields["template"] = msg.Template
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CheckFileCommand].
func (h *CheckFileHandler) Execute(ctx context.Context, msg CheckFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CheckDirectoryHandler validates a lesson directory via the shared command handler foundation.
type CheckDirectoryHandler struct {
	inner *commands.Handler[CheckDirectoryCommand]
}

// NewCheckDirectoryHandler creates a handler bound to the supplied runner.
func NewCheckDirectoryHandler(checks *runner.Runner, logger interfaces.Logger, reporter BatchReporter, opts ...commands.HandlerOption[CheckDirectoryCommand]) *CheckDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg CheckDirectoryCommand) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch, err := checks.ValidateDirectory(ctx, msg.Directory, msg.Template)
		if err != nil {
			return err
		}
		if reporter != nil {
			reporter(batch)
		}

		invalid := 0
		skipped := 0
		for _, report := range batch.Reports {
			if report.Skipped {
				skipped++
				continue
			}
			if !report.Valid() {
				invalid++
			}
		}
		logging.WithFields(baseLogger, map[string]any{
			"run_id":      batch.RunID,
			"directory":   batch.Directory,
			"documents":   len(batch.Reports),
			"skipped":     skipped,
			"invalid":     invalid,
			"diagnostics": len(batch.Diagnostics),
			"valid":       batch.Valid(),
		}).Info("check.command.directory.completed")

		if !batch.Valid() {
			return ErrConformance
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[CheckDirectoryCommand]{
		commands.WithLogger[CheckDirectoryCommand](baseLogger),
		commands.WithOperation[CheckDirectoryCommand](checkDirectoryOperation),
		commands.WithMessageFields(func(msg CheckDirectoryCommand) map[string]any {
			fields := map[string]any{
				"directory": msg.Directory,
			}
			if msg.Template != "" {
				fields["template"] = msg.Template
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CheckDirectoryHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[CheckDirectoryCommand].
func (h *CheckDirectoryHandler) Execute(ctx context.Context, msg CheckDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
