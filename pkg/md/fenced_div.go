// fenced_div.go adds Pandoc style fenced divs (::: {.class}) to goldmark.
package md

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// KindDiv is the goldmark node kind of a fenced div.
var KindDiv = ast.NewNodeKind("Div")

// Div is a fenced div block:
//
//	::: {.hs-callout-type-note #intro key=value}
//	content
//	:::
type Div struct {
	ast.BaseBlock
	ID      string
	Classes []string
	KeyVals [][2]string
	// Offset is the byte offset of the opening fence in the source.
	Offset int
}

// Kind implements ast.Node.
func (n *Div) Kind() ast.NodeKind {
	return KindDiv
}

// Dump implements ast.Node.
func (n *Div) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{
		"ID":      n.ID,
		"Classes": strings.Join(n.Classes, " "),
	}, nil)
}

// minFence is the shortest run of colons that opens or closes a div.
const minFence = 3

type divParser struct{}

// NewDivParser returns a block parser for fenced divs.
func NewDivParser() parser.BlockParser {
	return &divParser{}
}

func (p *divParser) Trigger() []byte {
	return []byte{':'}
}

func (p *divParser) Open(parent ast.Node, reader text.Reader, pc parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	pos := pc.BlockOffset()
	if pos < 0 {
		return nil, parser.NoChildren
	}

	rest, ok := fence(line[pos:])
	if !ok {
		return nil, parser.NoChildren
	}
	attrs := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(string(rest)), ":"))
	if attrs == "" {
		// A bare fence closes a div; it never opens one.
		return nil, parser.NoChildren
	}

	node := &Div{Offset: segment.Start}
	if !parseDivAttributes(attrs, node) {
		return nil, parser.NoChildren
	}

	consumeLine(reader, line, segment)
	return node, parser.HasChildren
}

func (p *divParser) Continue(node ast.Node, reader text.Reader, pc parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if !isClosingFence(line) || hasOpenFencedDescendant(node, pc) {
		return parser.Continue | parser.HasChildren
	}
	consumeLine(reader, line, segment)
	return parser.Close
}

func (p *divParser) Close(node ast.Node, reader text.Reader, pc parser.Context) {}

func (p *divParser) CanInterruptParagraph() bool {
	return true
}

func (p *divParser) CanAcceptIndentedLine() bool {
	return false
}

// fence strips a leading run of at least minFence colons and returns the remainder.
func fence(line []byte) ([]byte, bool) {
	i := 0
	for i < len(line) && line[i] == ':' {
		i++
	}
	if i < minFence {
		return nil, false
	}
	return line[i:], true
}

func isClosingFence(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " ")
	if len(line)-len(trimmed) > 3 {
		return false
	}
	rest, ok := fence(trimmed)
	return ok && util.IsBlank(rest)
}

// hasOpenFencedDescendant reports whether a block opened inside node would claim
// a closing fence first: a nested div, or a fenced code block whose content the
// fence belongs to.
func hasOpenFencedDescendant(node ast.Node, pc parser.Context) bool {
	found := false
	for _, b := range pc.OpenedBlocks() {
		if b.Node == node {
			found = true
			continue
		}
		if !found {
			continue
		}
		switch b.Node.(type) {
		case *Div, *ast.FencedCodeBlock:
			return true
		}
	}
	return false
}

func consumeLine(reader text.Reader, line []byte, segment text.Segment) {
	newline := 0
	if len(line) > 0 && line[len(line)-1] == '\n' {
		newline = 1
	}
	reader.Advance(segment.Len() - newline + segment.Padding)
}

// parseDivAttributes fills the div from either a bare class word ("note") or a
// Pandoc attribute block ("{.note #id key=value}").
func parseDivAttributes(attrs string, node *Div) bool {
	if !strings.HasPrefix(attrs, "{") {
		if strings.ContainsAny(attrs, " \t{}") {
			return false
		}
		node.Classes = []string{attrs}
		return true
	}
	if !strings.HasSuffix(attrs, "}") {
		return false
	}

	for _, param := range parseKeyValueParams(strings.TrimSpace(attrs[1 : len(attrs)-1])) {
		switch {
		case strings.HasPrefix(param, "."):
			node.Classes = append(node.Classes, param[1:])
		case strings.HasPrefix(param, "#"):
			node.ID = param[1:]
		case strings.Contains(param, "="):
			kv := strings.SplitN(param, "=", 2)
			node.KeyVals = append(node.KeyVals, [2]string{kv[0], kv[1]})
		default:
			node.Classes = append(node.Classes, param)
		}
	}
	return true
}

// parseKeyValueParams splits `key1=value1 key2="value with spaces"` on unquoted spaces.
func parseKeyValueParams(s string) []string {
	var params []string
	var current strings.Builder
	inQuotes := false
	quoteChar := rune(0)

	for _, r := range s {
		switch {
		case (r == '"' || r == '\'') && !inQuotes:
			inQuotes = true
			quoteChar = r
		case r == quoteChar && inQuotes:
			inQuotes = false
			quoteChar = 0
		case (r == ' ' || r == '\t') && !inQuotes:
			if current.Len() > 0 {
				params = append(params, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		params = append(params, current.String())
	}

	return params
}

type divHTMLRenderer struct{}

// RegisterFuncs implements renderer.NodeRenderer.
func (r *divHTMLRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindDiv, r.renderDiv)
}

func (r *divHTMLRenderer) renderDiv(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		_, _ = w.WriteString("</div>\n")
		return ast.WalkContinue, nil
	}

	n := node.(*Div)
	_, _ = w.WriteString("<div")
	if n.ID != "" {
		_, _ = w.WriteString(` id="`)
		_, _ = w.Write(util.EscapeHTML([]byte(n.ID)))
		_ = w.WriteByte('"')
	}
	if len(n.Classes) > 0 {
		_, _ = w.WriteString(` class="`)
		_, _ = w.Write(util.EscapeHTML([]byte(strings.Join(n.Classes, " "))))
		_ = w.WriteByte('"')
	}
	_, _ = w.WriteString(">\n")
	return ast.WalkContinue, nil
}

type fencedDivs struct{}

// FencedDivs is a goldmark extension that parses fenced divs and renders them as <div>.
var FencedDivs goldmark.Extender = &fencedDivs{}

func (e *fencedDivs) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithBlockParsers(
		util.Prioritized(NewDivParser(), 150),
	))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(
		util.Prioritized(&divHTMLRenderer{}, 500),
	))
}
