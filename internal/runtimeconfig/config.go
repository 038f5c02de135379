package runtimeconfig

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// ErrMarkerTokenRequired indicates an empty in-progress marker token.
var ErrMarkerTokenRequired = errors.New("lessonlint config: marker token is required")

// ErrLicenseChecksumInvalid indicates a malformed license checksum override.
var ErrLicenseChecksumInvalid = errors.New("lessonlint config: license checksum must be a hex-encoded sha256 digest")

var ErrLoggingLevelInvalid = errors.New("lessonlint config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("lessonlint config: logging format is invalid")

// Config aggregates runtime options for the lessonlint module.
// Fields intentionally use simple types so host applications can extend them later.
type Config struct {
	Checks    ChecksConfig
	Templates TemplatesConfig
	Logging   LoggingConfig
}

// ChecksConfig tunes the validation engine shared by every template.
type ChecksConfig struct {
	// Marker is the token flagged as unfinished work anywhere in a document.
	Marker string
	// LicenseChecksum overrides the expected sha256 digest for LICENSE.md.
	LicenseChecksum string
}

// TemplatesConfig points at optional template customisation inputs.
type TemplatesConfig struct {
	// Definitions names a YAML file of additional template definitions
	// registered on top of the built-in set.
	Definitions string
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Level     string
	Format    string
	AddSource bool
}

// DefaultConfig returns opinionated defaults matching the built-in templates.
func DefaultConfig() Config {
	return Config{
		Checks: ChecksConfig{
			Marker: "FIXME",
		},
		Templates: TemplatesConfig{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Checks.Marker) == "" {
		return ErrMarkerTokenRequired
	}
	if checksum := strings.TrimSpace(cfg.Checks.LicenseChecksum); checksum != "" {
		raw, err := hex.DecodeString(checksum)
		if err != nil || len(raw) != 32 {
			return fmt.Errorf("%w: %s", ErrLicenseChecksumInvalid, checksum)
		}
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "console", "json", "pretty":
		return true
	default:
		return false
	}
}
