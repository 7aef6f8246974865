package md

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/open-cli-collective/zendown/pkg/pandoc"
)

// mdParser is a goldmark instance configured for zendown flavored Markdown.
var mdParser = goldmark.New(
	goldmark.WithExtensions(
		extension.Strikethrough,
		FencedDivs,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
		parser.WithHeadingAttribute(),
	),
)

// parse parses markdown into a goldmark AST.
func parse(markdown []byte) ast.Node {
	return mdParser.Parser().Parse(text.NewReader(markdown))
}

// ToPandoc converts markdown to a Pandoc document. Fenced divs become Div
// elements carrying their attributes, so callout filters can run on the result.
// HTML comments are dropped.
func ToPandoc(markdown []byte) *pandoc.Document {
	if len(markdown) == 0 {
		return pandoc.NewDocument()
	}

	c := &pandocConverter{source: markdown}
	return pandoc.NewDocument(c.convertChildren(parse(markdown))...)
}

// pandocConverter holds state during AST conversion.
type pandocConverter struct {
	source []byte
}

// convertChildren converts all block children of an AST node.
func (c *pandocConverter) convertChildren(n ast.Node) []pandoc.Element {
	var blocks []pandoc.Element
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if block, ok := c.convertNode(child); ok {
			blocks = append(blocks, block)
		}
	}
	return blocks
}

// convertNode converts a single block node.
func (c *pandocConverter) convertNode(n ast.Node) (pandoc.Element, bool) {
	switch node := n.(type) {
	case *ast.Paragraph:
		return pandoc.Para(c.convertInlines(node)...), true
	case *ast.TextBlock:
		return pandoc.Plain(c.convertInlines(node)...), true
	case *ast.Heading:
		return pandoc.Header(node.Level, c.headingAttr(node), c.convertInlines(node)...), true
	case *ast.FencedCodeBlock:
		attr := pandoc.Attr{}
		if lang := string(node.Language(c.source)); lang != "" {
			attr.Classes = []string{lang}
		}
		return pandoc.CodeBlock(attr, c.lines(node)), true
	case *ast.CodeBlock:
		return pandoc.CodeBlock(pandoc.Attr{}, c.lines(node)), true
	case *ast.Blockquote:
		return pandoc.BlockQuote(c.convertChildren(node)...), true
	case *ast.List:
		var items [][]pandoc.Element
		for item := node.FirstChild(); item != nil; item = item.NextSibling() {
			items = append(items, c.convertChildren(item))
		}
		if node.IsOrdered() {
			return pandoc.OrderedList(node.Start, pandoc.ListDelimFor(node.Marker), items...), true
		}
		return pandoc.BulletList(items...), true
	case *ast.ThematicBreak:
		return pandoc.HorizontalRule(), true
	case *ast.HTMLBlock:
		html := c.lines(node)
		if node.HasClosure() {
			html += "\n" + string(node.ClosureLine.Value(c.source))
		}
		html = strings.TrimSuffix(html, "\n")
		if isComment(html) {
			return pandoc.Element{}, false
		}
		return pandoc.RawBlock{Format: "html", Text: html}.Element(), true
	case *Div:
		div := &pandoc.Div{
			Attr:   pandoc.Attr{ID: node.ID, Classes: node.Classes},
			Blocks: c.convertChildren(node),
		}
		for _, kv := range node.KeyVals {
			div.Attr.KeyVals = append(div.Attr.KeyVals, pandoc.KeyVal{Key: kv[0], Value: kv[1]})
		}
		return div.Element(), true
	default:
		return pandoc.Element{}, false
	}
}

func (c *pandocConverter) headingAttr(n *ast.Heading) pandoc.Attr {
	attr := pandoc.Attr{}
	if id, ok := n.AttributeString("id"); ok {
		if b, ok := id.([]byte); ok {
			attr.ID = string(b)
		}
	}
	if class, ok := n.AttributeString("class"); ok {
		if b, ok := class.([]byte); ok {
			attr.Classes = strings.Fields(string(b))
		}
	}
	return attr
}

// lines joins the raw lines of a leaf block, without the final newline.
func (c *pandocConverter) lines(n ast.Node) string {
	var buf strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(c.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// convertInlines converts the inline children of a node.
func (c *pandocConverter) convertInlines(n ast.Node) []pandoc.Element {
	b := &inlineBuilder{}
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.convertInline(child, b)
	}
	return b.elements()
}

func (c *pandocConverter) convertInline(n ast.Node, b *inlineBuilder) {
	switch node := n.(type) {
	case *ast.Text:
		b.addText(string(unescape(node.Segment.Value(c.source))))
		if node.HardLineBreak() {
			b.lineBreak(pandoc.LineBreak())
		} else if node.SoftLineBreak() {
			b.lineBreak(pandoc.SoftBreak())
		}

	case *ast.String:
		b.addText(string(node.Value))

	case *ast.Emphasis:
		if node.Level == 2 {
			b.add(pandoc.Strong(c.convertInlines(node)...))
		} else {
			b.add(pandoc.Emph(c.convertInlines(node)...))
		}

	case *extast.Strikethrough:
		b.add(pandoc.Strikeout(c.convertInlines(node)...))

	case *ast.CodeSpan:
		var code strings.Builder
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if t, ok := child.(*ast.Text); ok {
				code.Write(t.Segment.Value(c.source))
			}
		}
		b.add(pandoc.Code(pandoc.Attr{}, code.String()))

	case *ast.Link:
		b.add(pandoc.Link(pandoc.Attr{}, c.convertInlines(node), string(node.Destination), string(node.Title)))

	case *ast.Image:
		b.add(pandoc.Image(pandoc.Attr{}, c.convertInlines(node), string(node.Destination), string(node.Title)))

	case *ast.AutoLink:
		label := string(node.Label(c.source))
		url := string(node.URL(c.source))
		class := "uri"
		if node.AutoLinkType == ast.AutoLinkEmail {
			class = "email"
		}
		b.add(pandoc.Link(pandoc.Attr{Classes: []string{class}}, []pandoc.Element{pandoc.Str(label)}, url, ""))

	case *ast.RawHTML:
		var raw strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			raw.Write(seg.Value(c.source))
		}
		if !isComment(raw.String()) {
			b.add(pandoc.RawInline("html", raw.String()))
		}

	default:
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			c.convertInline(child, b)
		}
	}
}

func unescape(v []byte) []byte {
	return util.ResolveEntityNames(util.ResolveNumericReferences(util.UnescapePunctuations(v)))
}

func isComment(html string) bool {
	return strings.HasPrefix(strings.TrimSpace(html), "<!--")
}

// inlineBuilder accumulates inlines, splitting text runs into Str and Space the
// way pandoc does. Adjacent text nodes from goldmark are merged into one run.
type inlineBuilder struct {
	out  []pandoc.Element
	text bytes.Buffer
}

func (b *inlineBuilder) addText(s string) {
	b.text.WriteString(s)
}

func (b *inlineBuilder) add(e pandoc.Element) {
	b.flush()
	b.out = append(b.out, e)
}

// lineBreak ends the current line; spaces before a break are dropped.
func (b *inlineBuilder) lineBreak(e pandoc.Element) {
	b.flush()
	b.trimTrailingSpace()
	b.out = append(b.out, e)
}

func (b *inlineBuilder) flush() {
	if b.text.Len() == 0 {
		return
	}
	s := b.text.String()
	b.text.Reset()

	start := -1
	for i, r := range s {
		if r == ' ' || r == '\t' || r == '\n' {
			if start >= 0 {
				b.out = append(b.out, pandoc.Str(s[start:i]))
				start = -1
			}
			if n := len(b.out); n == 0 || !isBreak(b.out[n-1]) {
				b.out = append(b.out, pandoc.Space())
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		b.out = append(b.out, pandoc.Str(s[start:]))
	}
}

func (b *inlineBuilder) trimTrailingSpace() {
	for len(b.out) > 0 && b.out[len(b.out)-1].Type == pandoc.TypeSpace {
		b.out = b.out[:len(b.out)-1]
	}
}

func (b *inlineBuilder) elements() []pandoc.Element {
	b.flush()
	b.trimTrailingSpace()
	for len(b.out) > 0 && b.out[0].Type == pandoc.TypeSpace {
		b.out = b.out[1:]
	}
	return b.out
}

// isBreak reports whether another Space after e would be redundant.
func isBreak(e pandoc.Element) bool {
	switch e.Type {
	case pandoc.TypeSpace, pandoc.TypeSoftBreak, pandoc.TypeLineBreak:
		return true
	}
	return false
}
