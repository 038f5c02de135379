package document

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/frontmatter"
)

// ErrMalformedDocument indicates the converter could not produce a
// structural tree (for example, the front matter is not a mapping).
// Callers must treat it as a validation failure, never a crash.
var ErrMalformedDocument = errors.New("document: malformed markdown document")

// Document is the parsed, immutable view of one Markdown page. Anchors are
// derived once at construction and are a pure function of the body.
type Document struct {
	// Path is empty for in-memory documents.
	Path string
	// Source preserves the raw input for line scans and content checksums.
	Source []byte
	// FrontMatter holds the decoded metadata block. Key comparisons happen
	// over sorted key sets, so map ordering is not significant here.
	FrontMatter map[string]any
	// Body is the structural tree of the document, front matter excluded.
	Body []Node

	anchors map[string]struct{}
}

// Heading is the (level, title) projection used by the heading checks.
type Heading struct {
	Level int
	Title string
}

// LinkRef is one link or image reference discovered anywhere in the body.
type LinkRef struct {
	Text   string
	Target string
}

// Parse builds a Document from an in-memory Markdown string.
func Parse(source []byte) (*Document, error) {
	return build(source, "")
}

// ParseFile reads and parses a single Markdown file.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	return build(data, path)
}

func build(source []byte, path string) (*Document, error) {
	matter := map[string]any{}
	body, err := frontmatter.Parse(bytes.NewReader(source), &matter)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	doc := &Document{
		Path:        path,
		Source:      source,
		FrontMatter: matter,
		Body:        convertMarkdown(body),
	}
	doc.anchors = collectAnchors(doc.Body)
	return doc, nil
}

// Dir returns the directory link targets resolve against.
func (d *Document) Dir() string {
	if d.Path == "" {
		return "."
	}
	return filepath.Dir(d.Path)
}

// Headings returns the document's top-level headings only. Headings nested
// inside boxes are intentionally excluded.
func (d *Document) Headings() []Heading {
	var headings []Heading
	for _, n := range d.Body {
		if header, ok := n.(Header); ok {
			headings = append(headings, Heading{
				Level: header.Level,
				Title: StripAttributes(PlainText(header.Content...)),
			})
		}
	}
	return headings
}

// Boxes returns the top-level block quotes whose first child is a header.
func (d *Document) Boxes() []Box {
	var boxes []Box
	for _, n := range d.Body {
		if box, ok := AsBox(n); ok {
			boxes = append(boxes, box)
		}
	}
	return boxes
}

// FrontMatterKeys returns the present metadata keys in sorted order.
func (d *Document) FrontMatterKeys() []string {
	keys := make([]string, 0, len(d.FrontMatter))
	for key := range d.FrontMatter {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// HasAnchor reports whether the slug addresses a heading or glossary term
// in this document.
func (d *Document) HasAnchor(slug string) bool {
	_, ok := d.anchors[slug]
	return ok
}

// Anchors returns the document's anchor set in sorted order.
func (d *Document) Anchors() []string {
	anchors := make([]string, 0, len(d.anchors))
	for anchor := range d.anchors {
		anchors = append(anchors, anchor)
	}
	sort.Strings(anchors)
	return anchors
}

// Links gathers every link and image reference through a full recursive
// walk. Unlike headings and boxes, links nested inside boxes are found;
// the template shape relies on that asymmetry.
func (d *Document) Links() []LinkRef {
	var links []LinkRef
	walkNodes(d.Body, func(n Node) {
		switch node := n.(type) {
		case Link:
			links = append(links, LinkRef{Text: PlainText(node.Text...), Target: node.Target})
		case Image:
			links = append(links, LinkRef{Text: PlainText(node.Alt...), Target: node.Target})
		}
	})
	return links
}

// collectAnchors walks the whole body: headers anywhere (including inside
// boxes) and definition-list terms contribute anchors.
func collectAnchors(body []Node) map[string]struct{} {
	anchors := map[string]struct{}{}
	walkNodes(body, func(n Node) {
		switch node := n.(type) {
		case Header:
			anchors[Slugify(StripAttributes(PlainText(node.Content...)))] = struct{}{}
		case DefinitionList:
			for _, entry := range node.Entries {
				anchors[Slugify(PlainText(entry.Term...))] = struct{}{}
			}
		}
	})
	return anchors
}

func walkNodes(nodes []Node, visit func(Node)) {
	for _, n := range nodes {
		visit(n)
		switch node := n.(type) {
		case Header:
			walkNodes(node.Content, visit)
		case BlockQuote:
			walkNodes(node.Children, visit)
		case Paragraph:
			walkNodes(node.Content, visit)
		case BulletList:
			for _, item := range node.Items {
				walkNodes(item, visit)
			}
		case DefinitionList:
			for _, entry := range node.Entries {
				walkNodes(entry.Term, visit)
				for _, desc := range entry.Descriptions {
					walkNodes(desc, visit)
				}
			}
		case Link:
			walkNodes(node.Text, visit)
		case Image:
			walkNodes(node.Alt, visit)
		}
	}
}
