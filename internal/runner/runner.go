package runner

import (
	"context"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-lessonlint/internal/document"
	"github.com/goliatone/go-lessonlint/internal/engine"
	"github.com/goliatone/go-lessonlint/internal/logging"
	"github.com/goliatone/go-lessonlint/internal/template"
	"github.com/goliatone/go-lessonlint/pkg/interfaces"
)

// Check identifiers for failures raised outside the engine.
const (
	CheckDispatch  = "dispatch"
	CheckDocument  = "document"
	CheckDirectory = "directory"
)

// Runner dispatches files to templates and drives the engine over single
// files or whole lesson directories. Each batch run shares one document
// cache so link targets referenced from several pages parse once.
type Runner struct {
	registry *template.Registry
	logger   interfaces.Logger
	marker   string
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger injects the runner logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMarker overrides the work-in-progress marker token passed to the
// engine.
func WithMarker(token string) Option {
	return func(r *Runner) {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			r.marker = trimmed
		}
	}
}

// New constructs a runner over the provided template registry.
func New(registry *template.Registry, opts ...Option) *Runner {
	r := &Runner{
		registry: registry,
		logger:   logging.NoOp(),
		marker:   engine.DefaultMarker,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// BatchReport aggregates one directory run: directory-level diagnostics
// (missing required files, empty directory) plus one report per document.
type BatchReport struct {
	RunID       uuid.UUID
	Directory   string
	Diagnostics []engine.Diagnostic
	Reports     []*engine.Report
}

// Valid reports the AND of every document result and directory check.
func (b *BatchReport) Valid() bool {
	if len(b.Diagnostics) > 0 {
		return false
	}
	for _, report := range b.Reports {
		if !report.Valid() {
			return false
		}
	}
	return true
}

// ValidateFile validates a single Markdown file. The template name is
// optional; when empty the registry dispatches by filename pattern. Only a
// cancelled context produces an error; every validation failure is
// reported through the returned report.
func (r *Runner) ValidateFile(ctx context.Context, path string, templateName string) (*engine.Report, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return r.validateFile(ctx, path, templateName, newDocumentCache()), nil
}

// ValidateDirectory validates every Markdown file in the directory,
// checking the required-file patterns first. One bad document never stops
// the rest of the batch.
func (r *Runner) ValidateDirectory(ctx context.Context, dir string, templateName string) (*BatchReport, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	batch := &BatchReport{RunID: uuid.New(), Directory: dir}
	logger := logging.WithFields(r.logger, map[string]any{
		"run_id":    batch.RunID.String(),
		"directory": dir,
	})
	logger.Debug("runner.directory.start")

	matches, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		batch.Diagnostics = append(batch.Diagnostics, directoryDiagnostic(dir, "could not scan directory: %v", err))
		return batch, nil
	}
	if len(matches) == 0 {
		batch.Diagnostics = append(batch.Diagnostics, directoryDiagnostic(dir, "no markdown files were found in %q", dir))
	}

	for _, pattern := range r.registry.RequiredFiles() {
		found, globErr := filepath.Glob(filepath.Join(dir, pattern))
		if globErr == nil && len(found) == 0 {
			batch.Diagnostics = append(batch.Diagnostics, directoryDiagnostic(dir, "missing required file %q", pattern))
		}
	}

	sort.Strings(matches)
	cache := newDocumentCache()
	for _, path := range matches {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return batch, ctxErr
		}
		batch.Reports = append(batch.Reports, r.validateFile(ctx, path, templateName, cache))
	}

	logger.Debug("runner.directory.done", "valid", batch.Valid(), "files", len(batch.Reports))
	return batch, nil
}

func (r *Runner) validateFile(ctx context.Context, path string, templateName string, cache *documentCache) *engine.Report {
	if r.registry.Skip(path) {
		r.logger.Debug("runner.file.skipped", "file", path)
		return engine.SkippedReport(path)
	}

	var spec *template.Spec
	var err error
	if templateName != "" {
		spec, err = r.registry.Lookup(templateName)
	} else {
		spec, err = r.registry.Identify(path)
	}
	if err != nil {
		report := engine.NewReport(path, templateName)
		report.AddError(CheckDispatch, "could not identify a template for %q: %v", filepath.Base(path), err)
		return report
	}

	r.logger.Debug("runner.file.start", "file", path, "template", spec.Name)

	doc, err := document.ParseFile(path)
	if err != nil {
		// Malformed documents abort that document's checks only; the
		// batch keeps going.
		report := engine.NewReport(path, spec.Name)
		report.AddError(CheckDocument, "could not parse document: %v", err)
		return report
	}

	eng := engine.New(
		engine.WithLogger(r.logger),
		engine.WithResolver(cache),
		engine.WithMarker(r.marker),
	)
	return eng.Validate(ctx, doc, spec)
}

func directoryDiagnostic(dir string, format string, args ...any) engine.Diagnostic {
	report := engine.NewReport(dir, "")
	report.AddError(CheckDirectory, format, args...)
	return report.Diagnostics[0]
}
