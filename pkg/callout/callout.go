// Package callout wraps callout blocks (Note, Tip, Caution, Warning) in LaTeX
// environment markers so that a template can style them.
package callout

import (
	"strings"

	"github.com/open-cli-collective/zendown/pkg/pandoc"
)

// Kind is one of the recognized callout kinds.
type Kind int

const (
	Note Kind = iota
	Tip
	Caution
	Warning
)

// Kinds lists every kind in lookup priority order.
var Kinds = []Kind{Note, Tip, Caution, Warning}

// LabelPrefix is shared by all callout class labels.
const LabelPrefix = "hs-callout-type-"

// RawFormat is the output format the markers are tagged with.
const RawFormat = "latex"

// labels maps each recognized class label to its kind.
// Adding a kind = adding one entry here and one constant above.
var labels = map[string]Kind{
	"hs-callout-type-note":    Note,
	"hs-callout-type-tip":     Tip,
	"hs-callout-type-caution": Caution,
	"hs-callout-type-warning": Warning,
}

// String returns the environment name of the kind, e.g. "Note".
func (k Kind) String() string {
	switch k {
	case Note:
		return "Note"
	case Tip:
		return "Tip"
	case Caution:
		return "Caution"
	case Warning:
		return "Warning"
	default:
		return "Unknown"
	}
}

// Label returns the class label that selects the kind.
func (k Kind) Label() string {
	return LabelPrefix + strings.ToLower(k.String())
}

// Begin returns the literal begin marker, e.g. \begin{Note}.
func (k Kind) Begin() string {
	return `\begin{` + k.String() + `}`
}

// End returns the literal end marker, e.g. \end{Note}.
func (k Kind) End() string {
	return `\end{` + k.String() + `}`
}

// Lookup returns the kind selected by a class label. Matching is exact and case-sensitive.
func Lookup(label string) (Kind, bool) {
	k, ok := labels[label]
	return k, ok
}

// IsLookalike reports whether a label resembles a callout label without being one,
// e.g. "hs-callout-type-notes" or "HS-Callout-Type-Note".
func IsLookalike(label string) bool {
	if _, ok := labels[label]; ok {
		return false
	}
	return strings.HasPrefix(strings.ToLower(label), LabelPrefix)
}

// Classify returns the kind selected by the div's first class label.
// Later labels are never inspected.
func Classify(div *pandoc.Div) (Kind, bool) {
	label, ok := div.Attr.FirstClass()
	if !ok {
		return 0, false
	}
	return Lookup(label)
}

// Wrap surrounds the content of a callout div with its begin and end markers.
// Divs whose first class is not a callout label are returned unmodified.
// Wrap is not idempotent: wrapping a wrapped div nests a second pair.
func Wrap(div *pandoc.Div) *pandoc.Div {
	kind, ok := Classify(div)
	if !ok {
		return div
	}

	blocks := make([]pandoc.Element, 0, len(div.Blocks)+2)
	blocks = append(blocks, kind.BeginMarker())
	blocks = append(blocks, div.Blocks...)
	blocks = append(blocks, kind.EndMarker())
	div.Blocks = blocks

	return div
}

// BeginMarker returns the raw block inserted before a callout's content.
func (k Kind) BeginMarker() pandoc.Element {
	return pandoc.RawBlock{Format: RawFormat, Text: k.Begin()}.Element()
}

// EndMarker returns the raw block appended after a callout's content.
func (k Kind) EndMarker() pandoc.Element {
	return pandoc.RawBlock{Format: RawFormat, Text: k.End()}.Element()
}
