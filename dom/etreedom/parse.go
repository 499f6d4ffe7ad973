package etreedom

import (
	"fmt"

	"github.com/beevik/etree"
)

// ParseBytes parses data as XML/XHTML and wraps its root element as a
// dom.Node. Callers diffing HTML fragments should pre-tidy them into
// well-formed XHTML first — this package, like the teacher's oxml layer,
// only speaks well-formed XML.
func ParseBytes(data []byte) (*Elem, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("etreedom: parse: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("etreedom: parse: document has no root element")
	}
	return NewDocument(root), nil
}

// Serialize renders n's subtree back to XML bytes.
func Serialize(n *Elem) ([]byte, error) {
	doc := etree.NewDocument()
	doc.SetRoot(n.Unwrap().Copy())
	return doc.WriteToBytes()
}
