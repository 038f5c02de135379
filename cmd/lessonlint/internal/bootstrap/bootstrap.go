package bootstrap

import (
	"fmt"
	"strings"

	lessonlint "github.com/goliatone/go-lessonlint"
	"github.com/goliatone/go-lessonlint/pkg/interfaces"
)

// Options captures configuration for the lessonlint CLI bootstrap.
type Options struct {
	Marker          string
	LicenseChecksum string
	Definitions     string
	Debug           bool
}

// Module wraps the lessonlint module and its configured logger.
type Module struct {
	Module *lessonlint.Module
	Logger interfaces.Logger
}

// BuildModule constructs a lessonlint module configured for CLI checks.
func BuildModule(opts Options) (*Module, error) {
	cfg := lessonlint.DefaultConfig()
	if marker := strings.TrimSpace(opts.Marker); marker != "" {
		cfg.Checks.Marker = marker
	}
	if checksum := strings.TrimSpace(opts.LicenseChecksum); checksum != "" {
		cfg.Checks.LicenseChecksum = checksum
	}
	if defs := strings.TrimSpace(opts.Definitions); defs != "" {
		cfg.Templates.Definitions = defs
	}
	if opts.Debug {
		cfg.Logging.Level = "debug"
	}

	module, err := lessonlint.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("initialise lessonlint module: %w", err)
	}

	return &Module{
		Module: module,
		Logger: module.Logger(),
	}, nil
}
