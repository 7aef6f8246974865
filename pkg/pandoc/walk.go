package pandoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Handler transforms one element. The walker replaces the element with the
// returned value.
type Handler func(Element) (Element, error)

// Filter maps element tags to handlers, e.g. Filter{"Div": wrapCallout}.
type Filter map[string]Handler

// Apply runs each filter over the whole document in turn. Within a filter the
// traversal is bottom-up: an element's children are transformed before the
// element itself is passed to its handler. Metadata is walked before the body,
// and every nested element is visited, including those inside lists, quotes,
// tables and notes.
func Apply(doc *Document, filters ...Filter) error {
	for _, f := range filters {
		if len(f) == 0 {
			continue
		}
		if len(doc.Meta) > 0 {
			meta, err := walkRaw(doc.Meta, f)
			if err != nil {
				return fmt.Errorf("in metadata: %w", err)
			}
			doc.Meta = meta
		}
		blocks, err := walkElements(doc.Blocks, f)
		if err != nil {
			return err
		}
		doc.Blocks = blocks
	}
	return nil
}

func walkElements(elements []Element, f Filter) ([]Element, error) {
	out := make([]Element, len(elements))
	for i, e := range elements {
		walked, err := walkElement(e, f)
		if err != nil {
			return nil, err
		}
		out[i] = walked
	}
	return out, nil
}

func walkElement(e Element, f Filter) (Element, error) {
	if len(e.Content) > 0 {
		content, err := walkRaw(e.Content, f)
		if err != nil {
			return e, fmt.Errorf("in %s: %w", e.Type, err)
		}
		e.Content = content
	}
	if h, ok := f[e.Type]; ok {
		return h(e)
	}
	return e, nil
}

// walkRaw descends into element content. Arrays are walked position by
// position. Objects carrying a string "t" tag are elements; any other object
// (a metadata map, a citation record) has its values walked in key order.
func walkRaw(raw json.RawMessage, f Filter) (json.RawMessage, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return raw, nil
	}

	switch trimmed[0] {
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		for i, item := range items {
			walked, err := walkRaw(item, f)
			if err != nil {
				return nil, err
			}
			items[i] = walked
		}
		return marshal(items)
	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, err
		}
		if tag, ok := elementTag(fields); ok {
			walked, err := walkElement(Element{Type: tag, Content: fields["c"]}, f)
			if err != nil {
				return nil, err
			}
			return marshal(walked)
		}

		keys := make([]string, 0, len(fields))
		for k := range fields {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			walked, err := walkRaw(fields[k], f)
			if err != nil {
				return nil, err
			}
			fields[k] = walked
		}
		return marshal(fields)
	default:
		return raw, nil
	}
}

// elementTag returns the tag of an AST element. A metadata map may have a
// key named "t", but its value is then an object, never a string.
func elementTag(fields map[string]json.RawMessage) (string, bool) {
	raw, ok := fields["t"]
	if !ok {
		return "", false
	}
	var tag string
	if err := json.Unmarshal(raw, &tag); err != nil || tag == "" {
		return "", false
	}
	return tag, true
}

// marshal encodes v the way Write does, leaving <, > and & unescaped.
func marshal(v interface{}) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
