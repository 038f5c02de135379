package engine

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-lessonlint/internal/document"
	"github.com/goliatone/go-lessonlint/internal/logging"
	"github.com/goliatone/go-lessonlint/internal/template"
	"github.com/goliatone/go-lessonlint/pkg/interfaces"
)

// Check identifiers attached to diagnostics.
const (
	CheckMarker      = "marker"
	CheckFrontMatter = "front-matter"
	CheckHeadings    = "headings"
	CheckBoxes       = "boxes"
	CheckLinks       = "links"
	CheckIntro       = "intro"
	CheckGlossary    = "glossary"
	CheckLicense     = "license"
)

// DefaultMarker is the work-in-progress token the marker scan rejects.
const DefaultMarker = "FIXME"

// knownBoxTypes are the tolerated box type tags.
var knownBoxTypes = []string{"callout", "challenge", "objectives", "prereq"}

var (
	absoluteURL = regexp.MustCompile(`(?i)^(https?|ftp)://|^mailto:`)
	htmlTarget  = regexp.MustCompile(`(?i)\.html?$`)
)

// Resolver parses link-target documents so their anchor sets can be
// consulted. Implementations may memoize by resolved path; the engine never
// follows a target's own links, bounding recursion depth to one.
type Resolver interface {
	Resolve(path string) (*document.Document, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(path string) (*document.Document, error)

// Resolve satisfies Resolver.
func (f ResolverFunc) Resolve(path string) (*document.Document, error) {
	return f(path)
}

// Engine validates one document against a template spec. All checks run
// independently and their results are AND-combined; an earlier failure
// never suppresses a later check.
type Engine struct {
	logger    interfaces.Logger
	resolver  Resolver
	marker    *regexp.Regexp
	markerTok string
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger injects the logger used for debug traces.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithResolver overrides how link targets are parsed, typically to share a
// per-batch document cache.
func WithResolver(resolver Resolver) Option {
	return func(e *Engine) {
		if resolver != nil {
			e.resolver = resolver
		}
	}
}

// WithMarker overrides the work-in-progress marker token.
func WithMarker(token string) Option {
	return func(e *Engine) {
		if trimmed := strings.TrimSpace(token); trimmed != "" {
			e.markerTok = trimmed
		}
	}
}

// New constructs an engine with the default marker and a direct file
// resolver.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger:    logging.NoOp(),
		resolver:  ResolverFunc(document.ParseFile),
		markerTok: DefaultMarker,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.marker = regexp.MustCompile(`(?i)` + regexp.QuoteMeta(e.markerTok))
	return e
}

// Validate runs every check for the document and returns the accumulated
// report. The license template replaces structural validation with a
// checksum comparison; everything else runs the full battery.
func (e *Engine) Validate(ctx context.Context, doc *document.Document, spec *template.Spec) *Report {
	report := NewReport(doc.Path, spec.Name)

	select {
	case <-ctx.Done():
		report.AddError("engine", "validation cancelled: %v", ctx.Err())
		return report
	default:
	}

	if spec.Extra == template.ExtraLicenseChecksum {
		e.checkLicense(doc, spec, report)
		return report
	}

	e.checkMarkers(doc, report)
	e.checkFrontMatter(doc, spec, report)
	e.checkHeadings(doc, spec, report)
	e.checkBoxes(doc, spec, report)
	e.checkLinks(doc, report)

	switch spec.Extra {
	case template.ExtraIndexIntro:
		e.checkIntroSection(doc, report)
	case template.ExtraReferenceGlossary:
		e.checkGlossary(doc, report)
	}

	e.logger.Debug("engine.validate.done",
		"file", doc.Path,
		"template", spec.Name,
		"valid", report.Valid(),
		"diagnostics", len(report.Diagnostics))
	return report
}

// checkMarkers fails on any line containing the work-in-progress marker,
// case-insensitive, regardless of template.
func (e *Engine) checkMarkers(doc *document.Document, report *Report) {
	for i, line := range strings.Split(string(doc.Source), "\n") {
		if e.marker.MatchString(line) {
			report.AddErrorAt(CheckMarker, i+1, "work in progress marker %q found", e.markerTok)
		}
	}
}

// checkFrontMatter requires the present key set to equal the template's
// expected set exactly, and every present value to pass its key's rule.
func (e *Engine) checkFrontMatter(doc *document.Document, spec *template.Spec, report *Report) {
	if len(doc.FrontMatter) == 0 {
		report.AddError(CheckFrontMatter, "document must include a front matter block")
		return
	}

	for _, key := range doc.FrontMatterKeys() {
		rule, ok := spec.FrontMatter[key]
		if !ok {
			report.AddError(CheckFrontMatter, "front matter contains unrecognized label %q", key)
			continue
		}
		if err := validation.Validate(doc.FrontMatter[key], rule); err != nil {
			report.AddError(CheckFrontMatter, "front matter label %q does not follow the expected format: %v", key, err)
		}
	}

	expected := make([]string, 0, len(spec.FrontMatter))
	for key := range spec.FrontMatter {
		expected = append(expected, key)
	}
	sort.Strings(expected)
	for _, key := range expected {
		if _, ok := doc.FrontMatter[key]; !ok {
			report.AddError(CheckFrontMatter, "front matter is missing expected label %q", key)
		}
	}
}

// checkHeadings requires every top-level heading to be level 2 and the
// level-2 title sequence to satisfy the template: exact order under strict
// matching (ragged lengths and positional mismatches each produce one
// error), presence-only otherwise.
func (e *Engine) checkHeadings(doc *document.Document, spec *template.Spec, report *Report) {
	var titles []string
	for _, heading := range doc.Headings() {
		if heading.Level != 2 {
			report.AddError(CheckHeadings, "heading %q should be level 2", heading.Title)
			continue
		}
		titles = append(titles, heading.Title)
	}

	if !spec.StrictHeadings {
		for _, want := range spec.Headings {
			if !slices.Contains(titles, want) {
				report.AddError(CheckHeadings, "document is missing expected heading %q", want)
			}
		}
		return
	}

	limit := len(titles)
	if len(spec.Headings) > limit {
		limit = len(spec.Headings)
	}
	for i := 0; i < limit; i++ {
		switch {
		case i >= len(titles):
			report.AddError(CheckHeadings, "document is missing expected heading %q", spec.Headings[i])
		case i >= len(spec.Headings):
			report.AddError(CheckHeadings, "document contains a heading not specified in the template: %q", titles[i])
		case titles[i] != spec.Headings[i]:
			report.AddError(CheckHeadings, "heading %q should be %q", titles[i], spec.Headings[i])
		}
	}
}

// checkBoxes validates every box's level, type tag, title, and shape, then
// compares each declared type's tally against the template's cardinality
// range. Only boxes whose title and shape checks passed count toward the
// tally.
func (e *Engine) checkBoxes(doc *document.Document, spec *template.Spec, report *Report) {
	tally := map[string]int{}

	for _, box := range doc.Boxes() {
		if box.Level != 2 {
			report.AddError(CheckBoxes, "box %q heading should be level 2", box.Title)
		}

		if box.Type == "" {
			report.AddError(CheckBoxes, "box %q is missing a type tag", box.Title)
			continue
		}
		if !slices.Contains(knownBoxTypes, box.Type) {
			report.AddError(CheckBoxes, "box %q has unknown type %q", box.Title, box.Type)
			continue
		}

		clean := e.checkBoxShape(box, report)
		if rule, declared := spec.Boxes[box.Type]; declared && rule.Title != "" && box.Title != rule.Title {
			report.AddError(CheckBoxes, "box of type %q should be titled %q, found %q", box.Type, rule.Title, box.Title)
			clean = false
		}
		if clean {
			tally[box.Type]++
		}
	}

	boxTypes := make([]string, 0, len(spec.Boxes))
	for boxType := range spec.Boxes {
		boxTypes = append(boxTypes, boxType)
	}
	sort.Strings(boxTypes)
	for _, boxType := range boxTypes {
		rule := spec.Boxes[boxType]
		count := tally[boxType]
		if count < rule.Min {
			report.AddError(CheckBoxes, "expected at least %d %q box(es), found %d", rule.Min, boxType, count)
		}
		if rule.Max != template.Unbounded && count > rule.Max {
			report.AddError(CheckBoxes, "expected at most %d %q box(es), found %d", rule.Max, boxType, count)
		}
	}
}

func (e *Engine) checkBoxShape(box document.Box, report *Report) bool {
	switch box.Type {
	case "callout", "challenge":
		if len(box.Body) == 0 {
			report.AddError(CheckBoxes, "box %q should not be empty", box.Title)
			return false
		}
	case "objectives":
		if len(box.Body) != 1 {
			report.AddError(CheckBoxes, "objectives box %q should contain exactly one block after its heading", box.Title)
			return false
		}
		if _, ok := box.Body[0].(document.BulletList); !ok {
			report.AddError(CheckBoxes, "objectives box %q should list its objectives as a bulleted list", box.Title)
			return false
		}
	case "prereq":
		if len(box.Body) != 1 {
			report.AddError(CheckBoxes, "prerequisites box %q should contain exactly one block after its heading", box.Title)
			return false
		}
		if _, ok := box.Body[0].(document.Paragraph); !ok {
			report.AddError(CheckBoxes, "prerequisites box %q should describe its prerequisites in a paragraph", box.Title)
			return false
		}
	}
	return true
}

// checkLinks validates every link and image reference found anywhere in the
// body. Absolute URLs are skipped; everything else must resolve on disk,
// and fragment targets must exist in the destination's anchor set.
func (e *Engine) checkLinks(doc *document.Document, report *Report) {
	for _, link := range doc.Links() {
		e.checkLink(doc, link, report)
	}
}

func (e *Engine) checkLink(doc *document.Document, link document.LinkRef, report *Report) {
	if absoluteURL.MatchString(link.Target) {
		return
	}

	path, anchor, _ := strings.Cut(link.Target, "#")

	// An empty path addresses this same document.
	if path == "" {
		if anchor != "" && !doc.HasAnchor(anchor) {
			report.AddError(CheckLinks, "link %q references anchor %q, which does not exist in this document", link.Target, anchor)
		}
		return
	}

	resolved := filepath.Join(doc.Dir(), path)

	if htmlTarget.MatchString(resolved) {
		markdown := htmlTarget.ReplaceAllString(resolved, ".md")
		if !fileExists(markdown) {
			report.AddError(CheckLinks, "document links to %q but the expected markdown file %q does not exist", link.Target, markdown)
			return
		}
		if anchor == "" {
			return
		}
		dest, err := e.resolver.Resolve(markdown)
		if err != nil {
			report.AddError(CheckLinks, "document links to %q but %q could not be parsed: %v", link.Target, markdown, err)
			return
		}
		if !dest.HasAnchor(anchor) {
			report.AddError(CheckLinks, "document links to %q but anchor %q does not exist in %q", link.Target, anchor, markdown)
		}
		return
	}

	if !fileExists(resolved) {
		report.AddError(CheckLinks, "linked asset %q does not exist; remote URLs must be prefixed with http(s)://, ftp:// or mailto:", resolved)
	}
}

// checkIntroSection verifies the index page opens with an introduction
// paragraph followed by the prerequisites box. Failures are reported at
// warning severity but still fail the document.
func (e *Engine) checkIntroSection(doc *document.Document, report *Report) {
	if len(doc.Body) == 0 || !isParagraph(doc.Body[0]) {
		report.AddWarning(CheckIntro, "the first element should be a paragraph introducing the lesson")
	}
	if len(doc.Body) < 2 {
		report.AddWarning(CheckIntro, "the introduction should be followed by a prerequisites box")
		return
	}
	quote, ok := doc.Body[1].(document.BlockQuote)
	if !ok {
		report.AddWarning(CheckIntro, "the second element should be a blockquote holding the prerequisites")
		return
	}
	if len(quote.Children) == 0 || !isHeader(quote.Children[0]) {
		report.AddWarning(CheckIntro, "the first element of the prerequisites box should be a heading")
	}
	if len(quote.Children) < 2 || !isParagraph(quote.Children[1]) {
		report.AddWarning(CheckIntro, "the second element of the prerequisites box should be a paragraph")
	}
}

// checkGlossary requires exactly one top-level Glossary heading followed
// immediately by one definition list that closes the document.
func (e *Engine) checkGlossary(doc *document.Document, report *Report) {
	glossaryAt := -1
	glossaryCount := 0
	for i, n := range doc.Body {
		if header, ok := n.(document.Header); ok {
			if document.StripAttributes(document.PlainText(header.Content...)) == "Glossary" {
				glossaryCount++
				glossaryAt = i
			}
		}
	}

	if glossaryCount != 1 {
		report.AddError(CheckGlossary, "document should contain exactly one Glossary heading, found %d", glossaryCount)
	}
	if glossaryAt < 0 {
		if !containsDefinitionList(doc.Body) {
			report.AddError(CheckGlossary, "missing glossary entry: no definition list found")
		}
		return
	}

	rest := doc.Body[glossaryAt+1:]
	if len(rest) == 0 {
		report.AddError(CheckGlossary, "missing glossary entry: a definition list should follow the Glossary heading")
		return
	}
	if _, ok := rest[0].(document.DefinitionList); !ok {
		report.AddError(CheckGlossary, "missing glossary entry: the Glossary heading should be followed by a definition list")
		return
	}
	for range rest[1:] {
		report.AddError(CheckGlossary, "unexpected content after the glossary definition list")
	}
}

// checkLicense compares the exact document text against the pinned
// checksum; a single whitespace change fails the match.
func (e *Engine) checkLicense(doc *document.Document, spec *template.Spec, report *Report) {
	sum := sha256.Sum256(doc.Source)
	if !strings.EqualFold(hex.EncodeToString(sum[:]), spec.Checksum) {
		report.AddError(CheckLicense, "the provided license file must not be modified")
	}
}

func isParagraph(n document.Node) bool {
	_, ok := n.(document.Paragraph)
	return ok
}

func isHeader(n document.Node) bool {
	_, ok := n.(document.Header)
	return ok
}

func containsDefinitionList(nodes []document.Node) bool {
	for _, n := range nodes {
		if _, ok := n.(document.DefinitionList); ok {
			return true
		}
	}
	return false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
