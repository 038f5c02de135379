package lessonlint

import "github.com/goliatone/go-lessonlint/internal/runtimeconfig"

var (
	ErrMarkerTokenRequired    = runtimeconfig.ErrMarkerTokenRequired
	ErrLicenseChecksumInvalid = runtimeconfig.ErrLicenseChecksumInvalid
	ErrLoggingLevelInvalid    = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid   = runtimeconfig.ErrLoggingFormatInvalid
)

type (
	Config          = runtimeconfig.Config
	ChecksConfig    = runtimeconfig.ChecksConfig
	TemplatesConfig = runtimeconfig.TemplatesConfig
	LoggingConfig   = runtimeconfig.LoggingConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
