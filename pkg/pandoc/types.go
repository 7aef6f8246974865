// Package pandoc models the subset of Pandoc's JSON AST that zendown reads and writes.
//
// Elements are kept as a tag plus raw JSON content so that element kinds zendown does
// not know about (tables, citations, figures, ...) round trip unchanged in meaning.
// Content the walker descends into is re-encoded compactly with object keys sorted;
// text is never altered and <, > and & stay unescaped. Typed views such as Div and
// RawBlock decode the content on demand.
package pandoc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Element tags used by zendown.
const (
	TypeDiv            = "Div"
	TypeRawBlock       = "RawBlock"
	TypePara           = "Para"
	TypePlain          = "Plain"
	TypeHeader         = "Header"
	TypeCodeBlock      = "CodeBlock"
	TypeBlockQuote     = "BlockQuote"
	TypeBulletList     = "BulletList"
	TypeOrderedList    = "OrderedList"
	TypeHorizontalRule = "HorizontalRule"

	TypeStr       = "Str"
	TypeSpace     = "Space"
	TypeSoftBreak = "SoftBreak"
	TypeLineBreak = "LineBreak"
	TypeEmph      = "Emph"
	TypeStrong    = "Strong"
	TypeStrikeout = "Strikeout"
	TypeCode      = "Code"
	TypeLink      = "Link"
	TypeImage     = "Image"
	TypeRawInline = "RawInline"
)

// Element is a single node of the AST: a block or an inline.
type Element struct {
	Type    string          `json:"t"`
	Content json.RawMessage `json:"c,omitempty"`
}

// KeyVal is one key/value attribute pair.
type KeyVal struct {
	Key   string
	Value string
}

// Attr holds an element's identifier, classes and key/value attributes.
// It is encoded as the tuple ["id", ["class", ...], [["key", "value"], ...]].
type Attr struct {
	ID      string
	Classes []string
	KeyVals []KeyVal
}

// HasClass reports whether the attribute carries the given class.
func (a Attr) HasClass(class string) bool {
	for _, c := range a.Classes {
		if c == class {
			return true
		}
	}
	return false
}

// FirstClass returns the first class label, or ok=false when there is none.
func (a Attr) FirstClass() (string, bool) {
	if len(a.Classes) == 0 {
		return "", false
	}
	return a.Classes[0], true
}

// MarshalJSON encodes the attribute in Pandoc's tuple form.
func (a Attr) MarshalJSON() ([]byte, error) {
	classes := a.Classes
	if classes == nil {
		classes = []string{}
	}
	kvs := make([][2]string, 0, len(a.KeyVals))
	for _, kv := range a.KeyVals {
		kvs = append(kvs, [2]string{kv.Key, kv.Value})
	}
	return json.Marshal([]interface{}{a.ID, classes, kvs})
}

// UnmarshalJSON decodes the attribute from Pandoc's tuple form.
func (a *Attr) UnmarshalJSON(data []byte) error {
	var (
		id      string
		classes []string
		kvs     [][2]string
	)
	if err := untuple(data, &id, &classes, &kvs); err != nil {
		return fmt.Errorf("invalid attr: %w", err)
	}
	a.ID = id
	a.Classes = classes
	a.KeyVals = nil
	for _, kv := range kvs {
		a.KeyVals = append(a.KeyVals, KeyVal{Key: kv[0], Value: kv[1]})
	}
	return nil
}

// Div is a generic block container with attributes.
type Div struct {
	Attr   Attr
	Blocks []Element
}

// DecodeDiv decodes the content of a Div element.
func DecodeDiv(e Element) (*Div, error) {
	if e.Type != TypeDiv {
		return nil, fmt.Errorf("expected %s, got %s", TypeDiv, e.Type)
	}
	div := &Div{}
	if err := untuple(e.Content, &div.Attr, &div.Blocks); err != nil {
		return nil, fmt.Errorf("invalid div: %w", err)
	}
	return div, nil
}

// Element encodes the div back into an AST element.
func (d *Div) Element() Element {
	return Element{Type: TypeDiv, Content: tuple(d.Attr, blocksOrEmpty(d.Blocks))}
}

// RawBlock is a block of output passed through to the writer of the named format verbatim.
type RawBlock struct {
	Format string
	Text   string
}

// DecodeRawBlock decodes the content of a RawBlock element.
func DecodeRawBlock(e Element) (RawBlock, error) {
	var rb RawBlock
	if e.Type != TypeRawBlock {
		return rb, fmt.Errorf("expected %s, got %s", TypeRawBlock, e.Type)
	}
	if err := untuple(e.Content, &rb.Format, &rb.Text); err != nil {
		return rb, fmt.Errorf("invalid raw block: %w", err)
	}
	return rb, nil
}

// Element encodes the raw block as an AST element.
func (r RawBlock) Element() Element {
	return Element{Type: TypeRawBlock, Content: tuple(r.Format, r.Text)}
}

// Children decodes the content of an element whose content is a plain element list
// (Para, Plain, BlockQuote, Emph, Strong, Strikeout).
func Children(e Element) ([]Element, error) {
	var children []Element
	if err := json.Unmarshal(e.Content, &children); err != nil {
		return nil, fmt.Errorf("invalid %s content: %w", e.Type, err)
	}
	return children, nil
}

var errTupleArity = errors.New("tuple arity mismatch")

// encode marshals a value built by this package. Those values are strings, ints,
// Attr and element slices, none of which can fail to marshal.
func encode(v interface{}) json.RawMessage {
	data, err := marshal(v)
	if err != nil {
		panic(fmt.Sprintf("pandoc: encoding %T: %v", v, err))
	}
	return data
}

// tuple encodes values as a JSON array, one position per value.
func tuple(values ...interface{}) json.RawMessage {
	return encode(values)
}

// untuple decodes a JSON array into the given targets, one per position.
func untuple(data []byte, targets ...interface{}) error {
	var parts []json.RawMessage
	if err := json.Unmarshal(data, &parts); err != nil {
		return err
	}
	if len(parts) != len(targets) {
		return fmt.Errorf("%w: want %d, got %d", errTupleArity, len(targets), len(parts))
	}
	for i, part := range parts {
		if err := json.Unmarshal(part, targets[i]); err != nil {
			return err
		}
	}
	return nil
}

func blocksOrEmpty(blocks []Element) []Element {
	if blocks == nil {
		return []Element{}
	}
	return blocks
}
