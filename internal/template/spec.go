package template

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Unbounded marks a box cardinality with no upper limit.
const Unbounded = -1

// ExtraCheck selects a template-specific rule the engine runs in addition
// to the declarative shape. Templates stay data-driven: the variants are a
// closed tag, not subclasses.
type ExtraCheck int

const (
	// ExtraNone runs only the shared checks.
	ExtraNone ExtraCheck = iota
	// ExtraIndexIntro verifies the index page opens with an introduction
	// paragraph followed by the prerequisites box.
	ExtraIndexIntro
	// ExtraReferenceGlossary verifies the glossary definition list closes
	// the reference page.
	ExtraReferenceGlossary
	// ExtraLicenseChecksum replaces structural validation with an exact
	// content checksum comparison.
	ExtraLicenseChecksum
)

// BoxRule constrains one box type within a template: an optional exact
// title and an inclusive cardinality range.
type BoxRule struct {
	// Title, when non-empty, is the exact heading text the box must carry.
	Title string
	Min   int
	// Max is the inclusive upper bound, or Unbounded.
	Max int
}

// Spec is the immutable, declarative shape one template enforces. Instances
// are constructed at process start and shared across validations.
type Spec struct {
	Name string
	// FrontMatter maps each expected label to the rule its value must pass.
	// The present key set must equal this key set exactly.
	FrontMatter map[string]validation.Rule
	// Headings is the expected top-level heading sequence.
	Headings []string
	// StrictHeadings requires the level-2 heading sequence to equal
	// Headings element for element; otherwise only presence is required
	// and extra headings are tolerated.
	StrictHeadings bool
	// Boxes declares the tolerated box inventory by type tag.
	Boxes map[string]BoxRule
	// Extra selects a template-specific check variant.
	Extra ExtraCheck
	// Checksum is the hex sha256 of the canonical document text. Only
	// consulted when Extra is ExtraLicenseChecksum; treat as versioned
	// configuration and recompute when the canonical text changes.
	Checksum string
}
