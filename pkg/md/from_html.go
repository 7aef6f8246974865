package md

import (
	"bytes"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/open-cli-collective/zendown/pkg/callout"
)

// Placeholders survive the HTML to markdown conversion unescaped because they
// contain only letters and digits.
const (
	fenceOpenPrefix = "ZDFENCEOPEN"
	fenceOpenSuffix = "END"
	fenceClose      = "ZDFENCECLOSEEND"
)

// FromHTML converts HTML to markdown. Divs whose first class is a callout label,
// or looks like one, become fenced divs so the label survives the conversion:
//
//	<div class="hs-callout-type-note">...</div>  ->  ::: {.hs-callout-type-note}
//	                                                 ...
//	                                                 :::
func FromHTML(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	doc, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	var labels []string
	markCalloutDivs(doc, &labels)

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render html: %w", err)
	}

	markdown, err := htmltomarkdown.ConvertString(buf.String())
	if err != nil {
		return "", err
	}

	// Restore fences; placeholders may have been wrapped onto their own paragraph.
	for i, label := range labels {
		markdown = strings.Replace(markdown, fenceOpenPlaceholder(i), "::: {."+label+"}", 1)
	}
	markdown = strings.ReplaceAll(markdown, fenceClose, ":::")

	return strings.TrimSpace(markdown), nil
}

func fenceOpenPlaceholder(id int) string {
	return fmt.Sprintf("%s%d%s", fenceOpenPrefix, id, fenceOpenSuffix)
}

// markCalloutDivs inserts placeholder paragraphs as the first and last child of
// every callout div, outermost first so that ids follow document order.
func markCalloutDivs(n *html.Node, labels *[]string) {
	if n.Type == html.ElementNode && n.DataAtom == atom.Div {
		if label, ok := calloutClass(n); ok {
			id := len(*labels)
			*labels = append(*labels, label)
			n.InsertBefore(placeholderParagraph(fenceOpenPlaceholder(id)), n.FirstChild)
			n.AppendChild(placeholderParagraph(fenceClose))
		}
	}
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		markCalloutDivs(child, labels)
	}
}

// calloutClass returns the first class of a div if it is a callout label or a lookalike.
func calloutClass(n *html.Node) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		classes := strings.Fields(attr.Val)
		if len(classes) == 0 {
			return "", false
		}
		first := classes[0]
		if _, ok := callout.Lookup(first); ok || callout.IsLookalike(first) {
			return first, true
		}
		return "", false
	}
	return "", false
}

func placeholderParagraph(text string) *html.Node {
	p := &html.Node{Type: html.ElementNode, Data: "p", DataAtom: atom.P}
	p.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return p
}
