package pandoc

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// APIVersion is the pandoc-types version written into new documents.
var APIVersion = []int{1, 23, 1}

// ErrUnsupportedVersion is returned for documents from an incompatible pandoc-types release.
var ErrUnsupportedVersion = errors.New("unsupported pandoc API version")

// Document is a complete Pandoc document.
type Document struct {
	APIVersion []int           `json:"pandoc-api-version"`
	Meta       json.RawMessage `json:"meta"`
	Blocks     []Element       `json:"blocks"`
}

// NewDocument creates a document with empty metadata.
func NewDocument(blocks ...Element) *Document {
	return &Document{
		APIVersion: append([]int(nil), APIVersion...),
		Meta:       json.RawMessage(`{}`),
		Blocks:     blocksOrEmpty(blocks),
	}
}

// Read decodes a JSON document, as produced by `pandoc -t json`.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode pandoc document: %w", err)
	}
	if len(doc.APIVersion) == 0 || doc.APIVersion[0] != APIVersion[0] {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedVersion, doc.APIVersion)
	}
	if len(doc.Meta) == 0 {
		doc.Meta = json.RawMessage(`{}`)
	}
	doc.Blocks = blocksOrEmpty(doc.Blocks)
	return &doc, nil
}

// Write encodes the document as JSON followed by a newline.
func Write(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode pandoc document: %w", err)
	}
	return nil
}
