package schema

import "errors"

// Document wraps raw section code and its origin.
type Document struct {
	source Source
	code   []byte
}

// NewDocument constructs a Document wrapper while validating the inputs.
func NewDocument(src Source, raw []byte) (Document, error) {
	if src == nil {
		return Document{}, errors.New("schema: source is required")
	}
	if len(raw) == 0 {
		return Document{}, errors.New("schema: section code is empty")
	}

	clone := append([]byte(nil), raw...)
	return Document{source: src, code: clone}, nil
}

// MustNewDocument panics if the document cannot be created. Useful for tests.
func MustNewDocument(src Source, raw []byte) Document {
	doc, err := NewDocument(src, raw)
	if err != nil {
		panic(err)
	}
	return doc
}

// Source returns the origin metadata for the document.
func (d Document) Source() Source {
	return d.source
}

// Code returns the section code as text.
func (d Document) Code() string {
	return string(d.code)
}

// Location returns the string identifier for the origin.
func (d Document) Location() string {
	if d.source == nil {
		return ""
	}
	return d.source.Location()
}

// Schema parses the embedded configuration block; nil when absent or
// malformed.
func (d Document) Schema() *Schema {
	return Parse(d.Code())
}
