// Package xmltree decodes XML into a schema-free element tree.
//
// The fetch and grid codecs both need to report unknown attributes and
// elements as warnings, which struct-tag decoding cannot do - encoding/xml
// silently drops anything without a matching field. Decoding into plain
// elements first lets each codec walk the document and account for every
// construct it sees.
package xmltree

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// Element is one XML element: tag name as written, attributes in
// document order, child elements in document order, and accumulated
// character data.
type Element struct {
	Name     string
	Attrs    []xml.Attr
	Children []*Element
	Text     string
}

// Attr returns the value of the named attribute, matching
// case-insensitively. The second result reports presence.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if strings.EqualFold(a.Name.Local, name) {
			return a.Value, true
		}
	}
	return "", false
}

// ChildrenNamed returns direct children whose tag matches name,
// case-insensitively, in document order.
func (e *Element) ChildrenNamed(name string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if strings.EqualFold(c.Name, name) {
			out = append(out, c)
		}
	}
	return out
}

// Decode tokenizes the text into an element tree. The document must
// contain exactly one root element. Any decoder error is returned as-is
// so callers can surface the diagnostic verbatim.
// Documents declaring a non-UTF-8 encoding are transcoded via the IANA
// charset index.
func Decode(text string) (*Element, error) {
	dec := xml.NewDecoder(strings.NewReader(text))
	dec.CharsetReader = charsetReader

	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if root != nil && len(stack) == 0 {
				return nil, errors.New("document contains multiple root elements")
			}
			start := t.Copy()
			el := &Element{Name: start.Name.Local, Attrs: start.Attr}
			if len(stack) == 0 {
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("document contains no root element")
	}
	return root, nil
}

// charsetReader transcodes documents whose XML declaration names a
// non-UTF-8 encoding. Hand-edited fetch documents saved by Windows
// tooling commonly declare windows-1252 or iso-8859-1; rejecting them
// outright would contradict the lenient parsing policy.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported document encoding %q: %w", label, err)
	}
	if enc == nil {
		// ianaindex returns a nil encoding for labels it recognizes but
		// has no table for.
		return nil, fmt.Errorf("unsupported document encoding %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}
