package template

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Built-in template names.
const (
	TemplateIndex      = "index"
	TemplateTopic      = "topic"
	TemplateMotivation = "motivation"
	TemplateReference  = "reference"
	TemplateInstructor = "instructor"
	TemplateLicense    = "license"
	TemplateDiscussion = "discussion"
)

// DefaultLicenseChecksum is the sha256 of the canonical LICENSE.md text.
// It must be recomputed whenever the canonical license changes; deployments
// pin their own value through the runtime configuration.
const DefaultLicenseChecksum = "5a2ab1e42cf7eb8c0b77c80adcbdecff4dcd468a0a1f9a1a9a85bdcd930e6bce"

func builtinSpecs(licenseChecksum string) []*Spec {
	return []*Spec{
		{
			Name: TemplateIndex,
			FrontMatter: map[string]validation.Rule{
				"layout": NonEmptyString,
				"title":  NonEmptyString,
			},
			Headings:       []string{"Topics", "Other Resources"},
			StrictHeadings: true,
			Boxes: map[string]BoxRule{
				"prereq": {Title: "Prerequisites", Min: 1, Max: 1},
			},
			Extra: ExtraIndexIntro,
		},
		{
			Name: TemplateTopic,
			FrontMatter: map[string]validation.Rule{
				"layout":   NonEmptyString,
				"title":    NonEmptyString,
				"subtitle": NonEmptyString,
				"minutes":  NumericString,
			},
			// Topic pages may not introduce their own top-level sections,
			// which strict matching against an empty sequence enforces.
			StrictHeadings: true,
			Boxes: map[string]BoxRule{
				"objectives": {Title: "Learning Objectives", Min: 1, Max: 1},
				"callout":    {Min: 0, Max: Unbounded},
				"challenge":  {Min: 0, Max: Unbounded},
			},
		},
		{
			Name: TemplateMotivation,
			FrontMatter: map[string]validation.Rule{
				"layout":   NonEmptyString,
				"title":    NonEmptyString,
				"subtitle": NonEmptyString,
			},
		},
		{
			Name: TemplateReference,
			FrontMatter: map[string]validation.Rule{
				"layout":   NonEmptyString,
				"title":    NonEmptyString,
				"subtitle": NonEmptyString,
			},
			Headings: []string{"Glossary"},
			Extra:    ExtraReferenceGlossary,
		},
		{
			Name: TemplateInstructor,
			FrontMatter: map[string]validation.Rule{
				"layout":   NonEmptyString,
				"title":    NonEmptyString,
				"subtitle": NonEmptyString,
			},
			Headings: []string{"Legend", "Overall"},
		},
		{
			Name:     TemplateLicense,
			Extra:    ExtraLicenseChecksum,
			Checksum: licenseChecksum,
		},
		{
			Name: TemplateDiscussion,
			FrontMatter: map[string]validation.Rule{
				"layout":   NonEmptyString,
				"title":    NonEmptyString,
				"subtitle": NonEmptyString,
			},
		},
	}
}

// dispatch is the ordered filename pattern table; the first match wins.
var dispatch = []struct {
	pattern string
	name    string
}{
	{`^index`, TemplateIndex},
	{`^[0-9]{2}-.*`, TemplateTopic},
	{`^motivation`, TemplateMotivation},
	{`^reference`, TemplateReference},
	{`^instructors`, TemplateInstructor},
	{`^LICENSE`, TemplateLicense},
	{`^discussion`, TemplateDiscussion},
}

// skipFiles bypass validation entirely and report success uninspected.
var skipFiles = []string{
	"README.md",
	"CONTRIBUTING.md",
	"CONDUCT.md",
	"DESIGN.md",
	"FAQ.md",
	"LAYOUT.md",
}

// requiredFiles are the glob patterns every lesson directory must satisfy.
var requiredFiles = []string{
	"01-*.md",
	"discussion.md",
	"index.md",
	"instructors.md",
	"LICENSE.md",
	"motivation.md",
	"README.md",
	"reference.md",
}
