package md

import (
	"bytes"

	"github.com/yuin/goldmark/ast"

	"github.com/open-cli-collective/zendown/pkg/callout"
)

// CalloutRef describes one fenced div found in a Markdown document.
type CalloutRef struct {
	Line      int          // 1-based line of the opening fence
	Label     string       // first class label, empty if none
	Kind      callout.Kind // valid only when Known
	Known     bool         // label selects a callout kind
	Lookalike bool         // label resembles a callout label but is not one
	Depth     int          // 0 for top-level divs
}

// ScanCallouts lists every fenced div in document order, classified by its first label.
// This is an analysis API; the document is not transformed.
func ScanCallouts(markdown []byte) []CalloutRef {
	var refs []CalloutRef
	depth := 0

	_ = ast.Walk(parse(markdown), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		div, ok := n.(*Div)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !entering {
			depth--
			return ast.WalkContinue, nil
		}

		ref := CalloutRef{
			Line:  1 + bytes.Count(markdown[:div.Offset], []byte("\n")),
			Depth: depth,
		}
		if len(div.Classes) > 0 {
			ref.Label = div.Classes[0]
			ref.Kind, ref.Known = callout.Lookup(ref.Label)
			ref.Lookalike = callout.IsLookalike(ref.Label)
		}
		refs = append(refs, ref)
		depth++

		return ast.WalkContinue, nil
	})

	return refs
}
