package document

import (
	"regexp"
	"strings"
)

var (
	attributeMarker  = regexp.MustCompile(`\s*\{\..*?\}`)
	attributeClasses = regexp.MustCompile(`\{\.(.*?)\}`)
)

// PlainText renders nodes to text with all markup stripped. It is used both
// for heading titles and for anchor slug derivation.
func PlainText(nodes ...Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		writePlainText(&sb, n)
	}
	return strings.TrimSpace(sb.String())
}

func writePlainText(sb *strings.Builder, n Node) {
	switch node := n.(type) {
	case Plain:
		sb.WriteString(node.Text)
	case Header:
		writeAll(sb, node.Content)
	case Paragraph:
		writeAll(sb, node.Content)
	case Link:
		writeAll(sb, node.Text)
	case Image:
		writeAll(sb, node.Alt)
	case BlockQuote:
		writeBlocks(sb, node.Children)
	case BulletList:
		for _, item := range node.Items {
			writeBlocks(sb, item)
		}
	case DefinitionList:
		for _, entry := range node.Entries {
			writeAll(sb, entry.Term)
			for _, desc := range entry.Descriptions {
				writeBlocks(sb, desc)
			}
		}
	}
}

func writeAll(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		writePlainText(sb, n)
	}
}

func writeBlocks(sb *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		if sb.Len() > 0 {
			sb.WriteString(" ")
		}
		writePlainText(sb, n)
	}
}

// StripAttributes removes trailing `{.class}` attribute markers from a
// rendered title string.
func StripAttributes(text string) string {
	return strings.TrimSpace(attributeMarker.ReplaceAllString(text, ""))
}

// AttributeClasses returns every CSS-like class tag present in the text
// (each `{.name}` suffix). The result is empty when no marker exists.
func AttributeClasses(text string) []string {
	matches := attributeClasses.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	classes := make([]string, 0, len(matches))
	for _, m := range matches {
		classes = append(classes, m[1])
	}
	return classes
}

// Slugify derives the anchor identifier used by the rendered lesson pages:
// lowercase, spaces become hyphens, quote characters are dropped. The rules
// must stay aligned with the site generator or anchor checks will misfire.
func Slugify(text string) string {
	slug := strings.ToLower(strings.TrimSpace(text))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = strings.ReplaceAll(slug, "'", "")
	slug = strings.ReplaceAll(slug, `"`, "")
	return slug
}
