package document

// Node is the closed structural variant produced by the Markdown adapter.
// Every conformance check is a pattern match over these kinds, so documents
// with unexpected constructs degrade to Plain nodes instead of failing at
// runtime.
type Node interface {
	node()
}

// Header is a section heading with its rendered level and inline content.
// Classes carries any `{.class}` attribute tags attached to the heading.
type Header struct {
	Level   int
	Content []Node
	Classes []string
}

// BlockQuote is a quoted block. Boxes (callouts, challenges, objectives,
// prerequisites) are block quotes whose first child is a Header.
type BlockQuote struct {
	Children []Node
}

// Paragraph is a run of inline content.
type Paragraph struct {
	Content []Node
}

// BulletList is a list of items, each item a sequence of block nodes.
type BulletList struct {
	Items [][]Node
}

// DefinitionList holds glossary-style term/description entries.
type DefinitionList struct {
	Entries []Definition
}

// Definition is a single term with one or more descriptions.
type Definition struct {
	Term         []Node
	Descriptions [][]Node
}

// Link is an inline link with display text and a raw target.
type Link struct {
	Text   []Node
	Target string
}

// Image is an inline image reference.
type Image struct {
	Alt    []Node
	Target string
}

// Plain is literal text. It is also the catch-all for block constructs the
// template shape never inspects (code blocks, raw HTML, thematic breaks).
type Plain struct {
	Text string
}

func (Header) node()         {}
func (BlockQuote) node()     {}
func (Paragraph) node()      {}
func (BulletList) node()     {}
func (DefinitionList) node() {}
func (Link) node()           {}
func (Image) node()          {}
func (Plain) node()          {}

// Box is an ephemeral view over a BlockQuote whose first child is a Header.
// Title has any trailing attribute marker stripped; Type is the first
// attribute class, or empty when the heading carries none.
type Box struct {
	Level int
	Title string
	Type  string
	Body  []Node
}

// AsBox reports whether the node is a box and returns the derived view.
func AsBox(n Node) (Box, bool) {
	quote, ok := n.(BlockQuote)
	if !ok || len(quote.Children) == 0 {
		return Box{}, false
	}
	header, ok := quote.Children[0].(Header)
	if !ok {
		return Box{}, false
	}

	raw := PlainText(header.Content...)
	classes := header.Classes
	if len(classes) == 0 {
		classes = AttributeClasses(raw)
	}

	boxType := ""
	if len(classes) > 0 {
		boxType = classes[0]
	}

	return Box{
		Level: header.Level,
		Title: StripAttributes(raw),
		Type:  boxType,
		Body:  quote.Children[1:],
	}, true
}
