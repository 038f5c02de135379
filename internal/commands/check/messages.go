package checkcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	checkFileMessageType      = "lessonlint.check.file"
	checkDirectoryMessageType = "lessonlint.check.directory"
)

// CheckFileCommand validates a single Markdown document against a lesson
// template. When Template is empty the template is inferred from the file
// name via the registry dispatch table.
type CheckFileCommand struct {
	// Path selects the Markdown file (relative or absolute) to validate.
	Path string `json:"path"`
	// Template forces a specific template name, bypassing filename dispatch.
	Template string `json:"template,omitempty"`
}

// Type implements command.Message.
func (CheckFileCommand) Type() string { return checkFileMessageType }

// Validate ensures path input is present before handlers execute.
func (cmd CheckFileCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("lessonlint.check.file.path_required", "path is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}

// CheckDirectoryCommand validates every Markdown document under Directory,
// reporting missing required files alongside per-document diagnostics.
type CheckDirectoryCommand struct {
	// Directory selects the lesson directory to validate.
	Directory string `json:"directory"`
	// Template forces one template for every document, bypassing filename dispatch.
	Template string `json:"template,omitempty"`
}

// Type implements command.Message.
func (CheckDirectoryCommand) Type() string { return checkDirectoryMessageType }

// Validate ensures directory input is present before handlers execute.
func (cmd CheckDirectoryCommand) Validate() error {
	err := validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("lessonlint.check.directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
	if err != nil {
		return err
	}
	return nil
}
