package document

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	gtext "github.com/yuin/goldmark/text"
)

// engine is the shared goldmark instance used to materialize structural
// trees. It is stateless, so a single instance serves every parse without
// additional locking. Attribute parsing must stay enabled or the `{.class}`
// box tags are discarded before the checks can see them.
var engine = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.DefinitionList,
	),
	goldmark.WithParserOptions(
		parser.WithAttribute(),
	),
)

// convertMarkdown parses the Markdown body (front matter already removed)
// and folds the goldmark AST into the closed Node variant.
func convertMarkdown(body []byte) []Node {
	root := engine.Parser().Parse(gtext.NewReader(body))
	return convertChildren(root, body)
}

func convertChildren(n ast.Node, src []byte) []Node {
	var out []Node
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		out = append(out, convertNode(child, src)...)
	}
	return out
}

func convertNode(n ast.Node, src []byte) []Node {
	switch node := n.(type) {
	case *ast.Heading:
		return []Node{Header{
			Level:   node.Level,
			Content: convertChildren(node, src),
			Classes: headingClasses(node),
		}}
	case *ast.Blockquote:
		return []Node{BlockQuote{Children: convertChildren(node, src)}}
	case *ast.Paragraph:
		return []Node{Paragraph{Content: convertChildren(node, src)}}
	case *ast.TextBlock:
		// Tight list items hold their inline content in a text block.
		return []Node{Paragraph{Content: convertChildren(node, src)}}
	case *ast.List:
		items := make([][]Node, 0, node.ChildCount())
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			items = append(items, convertChildren(item, src))
		}
		return []Node{BulletList{Items: items}}
	case *east.DefinitionList:
		return []Node{convertDefinitionList(node, src)}
	case *ast.Link:
		return []Node{Link{
			Text:   convertChildren(node, src),
			Target: string(node.Destination),
		}}
	case *ast.Image:
		return []Node{Image{
			Alt:    convertChildren(node, src),
			Target: string(node.Destination),
		}}
	case *ast.AutoLink:
		url := string(node.URL(src))
		return []Node{Link{
			Text:   []Node{Plain{Text: url}},
			Target: url,
		}}
	case *ast.Text:
		text := string(node.Segment.Value(src))
		if node.SoftLineBreak() || node.HardLineBreak() {
			text += " "
		}
		return []Node{Plain{Text: text}}
	case *ast.String:
		return []Node{Plain{Text: string(node.Value)}}
	case *ast.CodeSpan, *ast.Emphasis:
		return convertChildren(n, src)
	case *ast.RawHTML:
		return nil
	default:
		if n.Type() == ast.TypeInline {
			return convertChildren(n, src)
		}
		// Block kinds the template shape never inspects (code blocks,
		// HTML blocks, thematic breaks) degrade to literal text.
		return []Node{Plain{Text: blockText(n, src)}}
	}
}

func convertDefinitionList(list *east.DefinitionList, src []byte) Node {
	var entries []Definition
	for child := list.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *east.DefinitionTerm:
			entries = append(entries, Definition{Term: convertChildren(child, src)})
		case *east.DefinitionDescription:
			if len(entries) == 0 {
				continue
			}
			last := &entries[len(entries)-1]
			last.Descriptions = append(last.Descriptions, convertChildren(child, src))
		}
	}
	return DefinitionList{Entries: entries}
}

func headingClasses(h *ast.Heading) []string {
	attr, ok := h.AttributeString("class")
	if !ok {
		return nil
	}
	switch value := attr.(type) {
	case []byte:
		return strings.Fields(string(value))
	case string:
		return strings.Fields(value)
	}
	return nil
}

func blockText(n ast.Node, src []byte) string {
	lines := n.Lines()
	var sb strings.Builder
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(src))
	}
	return strings.TrimSpace(sb.String())
}
