package lessonlint

import (
	"context"
	"fmt"

	checkcmd "github.com/goliatone/go-lessonlint/internal/commands/check"
	"github.com/goliatone/go-lessonlint/internal/engine"
	"github.com/goliatone/go-lessonlint/internal/logging"
	"github.com/goliatone/go-lessonlint/internal/logging/gologger"
	"github.com/goliatone/go-lessonlint/internal/runner"
	"github.com/goliatone/go-lessonlint/internal/template"
	"github.com/goliatone/go-lessonlint/pkg/interfaces"
)

// Report exports the per-document validation report.
type Report = engine.Report

// Diagnostic exports a single validation finding.
type Diagnostic = engine.Diagnostic

// Severity exports the diagnostic severity enum.
type Severity = engine.Severity

// BatchReport exports the directory-level aggregate report.
type BatchReport = runner.BatchReport

// Registry exports the template registry contract.
type Registry = template.Registry

// CheckFileCommand exports the single-document command message.
type CheckFileCommand = checkcmd.CheckFileCommand

// CheckDirectoryCommand exports the directory command message.
type CheckDirectoryCommand = checkcmd.CheckDirectoryCommand

// ErrConformance exports the sentinel returned when checked documents do not conform.
var ErrConformance = checkcmd.ErrConformance

// Module represents the top level lessonlint runtime façade.
type Module struct {
	cfg      Config
	logger   interfaces.Logger
	provider interfaces.LoggerProvider
	registry *template.Registry
	checks   *runner.Runner
}

// New constructs a lessonlint module using the provided configuration.
func New(cfg Config) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	provider, err := gologger.NewProvider(gologger.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.AddSource,
	})
	if err != nil {
		return nil, err
	}
	logger := logging.ModuleLogger(provider, "lessonlint")

	registryOpts := []template.RegistryOption{}
	if cfg.Checks.LicenseChecksum != "" {
		registryOpts = append(registryOpts, template.WithLicenseChecksum(cfg.Checks.LicenseChecksum))
	}
	registry := template.NewRegistry(registryOpts...)

	if path := cfg.Templates.Definitions; path != "" {
		defs, err := template.LoadDefinitions(path)
		if err != nil {
			return nil, fmt.Errorf("lessonlint: load template definitions: %w", err)
		}
		if err := registry.RegisterDefinitions(defs); err != nil {
			return nil, fmt.Errorf("lessonlint: register template definitions: %w", err)
		}
	}

	checks := runner.New(registry,
		runner.WithLogger(logging.RunnerLogger(provider)),
		runner.WithMarker(cfg.Checks.Marker),
	)

	return &Module{
		cfg:      cfg,
		logger:   logger,
		provider: provider,
		registry: registry,
		checks:   checks,
	}, nil
}

// Runner exposes the batch runner for direct use.
func (m *Module) Runner() *runner.Runner {
	return m.checks
}

// Registry exposes the template registry for inspection and extension.
func (m *Module) Registry() *template.Registry {
	return m.registry
}

// Logger exposes the module logger.
func (m *Module) Logger() interfaces.Logger {
	return m.logger
}

// CheckFile validates a single document, reporting through the optional
// callback. Conformance failures surface as ErrConformance.
func (m *Module) CheckFile(ctx context.Context, path, templateName string, report checkcmd.FileReporter) error {
	handler := checkcmd.NewCheckFileHandler(m.checks, m.logger, report)
	return handler.Execute(ctx, CheckFileCommand{Path: path, Template: templateName})
}

// CheckDirectory validates a lesson directory, reporting through the
// optional callback. Conformance failures surface as ErrConformance.
func (m *Module) CheckDirectory(ctx context.Context, dir, templateName string, report checkcmd.BatchReporter) error {
	handler := checkcmd.NewCheckDirectoryHandler(m.checks, m.logger, report)
	return handler.Execute(ctx, CheckDirectoryCommand{Directory: dir, Template: templateName})
}
