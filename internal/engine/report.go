package engine

import "fmt"

// Severity classifies a diagnostic. Every diagnostic represents a failed
// expectation; severity only selects the log level the CLI emits it at.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic is one failed expectation: the file, the construct, and what
// was expected instead.
type Diagnostic struct {
	Severity Severity
	File     string
	// Line is 1-based when the failure has a line position, zero otherwise.
	Line    int
	Check   string
	Message string
}

// String renders the diagnostic for log or terminal output.
func (d Diagnostic) String() string {
	location := d.File
	if location == "" {
		location = "<input>"
	}
	if d.Line > 0 {
		location = fmt.Sprintf("%s:%d", location, d.Line)
	}
	return fmt.Sprintf("%s: [%s] %s", location, d.Check, d.Message)
}

// Report accumulates the outcome of validating one document. The aggregate
// result is the AND of every sub-check: checks append diagnostics without
// short-circuiting so one run surfaces the complete defect list.
type Report struct {
	File        string
	Template    string
	Skipped     bool
	Diagnostics []Diagnostic

	valid bool
}

// NewReport starts a passing report for the given file and template.
func NewReport(file, template string) *Report {
	return &Report{File: file, Template: template, valid: true}
}

// SkippedReport marks a file that passed without inspection.
func SkippedReport(file string) *Report {
	return &Report{File: file, Skipped: true, valid: true}
}

// Valid reports the aggregate result after all checks have run.
func (r *Report) Valid() bool {
	return r.valid
}

// AddError records a failed expectation and fails the aggregate.
func (r *Report) AddError(check string, format string, args ...any) {
	r.add(SeverityError, check, 0, format, args...)
}

// AddErrorAt records a failed expectation at a specific line.
func (r *Report) AddErrorAt(check string, line int, format string, args ...any) {
	r.add(SeverityError, check, line, format, args...)
}

// AddWarning records a warning-severity diagnostic. A warning still fails
// the aggregate: the engine only warns about expectations it enforces.
func (r *Report) AddWarning(check string, format string, args ...any) {
	r.add(SeverityWarning, check, 0, format, args...)
}

func (r *Report) add(severity Severity, check string, line int, format string, args ...any) {
	r.valid = false
	r.Diagnostics = append(r.Diagnostics, Diagnostic{
		Severity: severity,
		File:     r.File,
		Line:     line,
		Check:    check,
		Message:  fmt.Sprintf(format, args...),
	})
}
