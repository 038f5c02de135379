package template

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrUnknownTemplate indicates an explicit template name that no
	// registered spec answers to.
	ErrUnknownTemplate = errors.New("template: unknown template name")
	// ErrNoTemplateMatch indicates dispatch failed: no filename pattern
	// matched and no explicit template was given.
	ErrNoTemplateMatch = errors.New("template: no template matches filename")
)

type dispatchEntry struct {
	pattern *regexp.Regexp
	name    string
}

// Registry holds the template specs and the ordered filename dispatch
// table. A registry is immutable after construction apart from Register,
// which callers use before any validation starts.
type Registry struct {
	specs    map[string]*Spec
	dispatch []dispatchEntry
	skip     map[string]struct{}
	required []string
}

// RegistryOption customises registry construction.
type RegistryOption func(*Registry)

// WithLicenseChecksum overrides the pinned license checksum, keeping the
// reference value in configuration rather than code.
func WithLicenseChecksum(checksum string) RegistryOption {
	return func(r *Registry) {
		if trimmed := strings.TrimSpace(checksum); trimmed != "" {
			if spec, ok := r.specs[TemplateLicense]; ok {
				spec.Checksum = trimmed
			}
		}
	}
}

// NewRegistry builds a registry seeded with the seven built-in templates
// and their dispatch patterns.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		specs:    map[string]*Spec{},
		skip:     map[string]struct{}{},
		required: append([]string(nil), requiredFiles...),
	}

	for _, spec := range builtinSpecs(DefaultLicenseChecksum) {
		r.specs[spec.Name] = spec
	}
	for _, entry := range dispatch {
		r.dispatch = append(r.dispatch, dispatchEntry{
			pattern: regexp.MustCompile(entry.pattern),
			name:    entry.name,
		})
	}
	for _, name := range skipFiles {
		r.skip[name] = struct{}{}
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds or replaces a template spec, prepending its dispatch
// patterns so custom definitions win over the built-in table.
func (r *Registry) Register(spec *Spec, patterns ...string) error {
	if spec == nil || strings.TrimSpace(spec.Name) == "" {
		return errors.New("template: spec name is required")
	}

	entries := make([]dispatchEntry, 0, len(patterns))
	for _, pattern := range patterns {
		compiled, err := regexp.Compile(pattern)
		if err != nil {
			return fmt.Errorf("template: invalid pattern %q for %s: %w", pattern, spec.Name, err)
		}
		entries = append(entries, dispatchEntry{pattern: compiled, name: spec.Name})
	}

	r.specs[spec.Name] = spec
	r.dispatch = append(entries, r.dispatch...)
	return nil
}

// Lookup resolves an explicitly named template.
func (r *Registry) Lookup(name string) (*Spec, error) {
	spec, ok := r.specs[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return spec, nil
}

// Identify dispatches a file path to a template by its base name using the
// ordered pattern table; the first match wins.
func (r *Registry) Identify(path string) (*Spec, error) {
	base := filepath.Base(path)
	for _, entry := range r.dispatch {
		if entry.pattern.MatchString(base) {
			return r.specs[entry.name], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNoTemplateMatch, base)
}

// Skip reports whether the file belongs to the fixed skip list and should
// pass without inspection.
func (r *Registry) Skip(path string) bool {
	_, ok := r.skip[filepath.Base(path)]
	return ok
}

// RequiredFiles returns the glob patterns a lesson directory must satisfy.
func (r *Registry) RequiredFiles() []string {
	return append([]string(nil), r.required...)
}

// Names lists the registered template names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.specs))
	for name := range r.specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
