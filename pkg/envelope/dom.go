package envelope

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
)

// ErrNoRootElement is returned for input that is well formed but has no
// single document element, such as an empty file or plain text.
var ErrNoRootElement = errors.New("document has no single root element")

// ParseXML parses data into a document with exactly one root element
func ParseXML(data []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	if len(doc.ChildElements()) != 1 {
		return nil, ErrNoRootElement
	}
	return doc, nil
}

// ParseXMLFrom reads and parses a document from r
func ParseXMLFrom(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	if len(doc.ChildElements()) != 1 {
		return nil, ErrNoRootElement
	}
	return doc, nil
}

// DetachElement returns a deep copy of el that shares no nodes with el's
// tree. Namespace prefixes used inside el but declared on its ancestors are
// re-declared on the copy. Used prefixes include those of element and
// attribute names and QName-valued attributes such as xsi:type="cbc:Code".
// QNames in text content are not detected.
func DetachElement(el *etree.Element) *etree.Element {
	if el == nil {
		return nil
	}
	dup := el.Copy()
	parent := el.Parent()
	if parent == nil {
		return dup
	}

	declared := make(map[string]bool)
	for _, a := range dup.Attr {
		switch {
		case a.Space == "xmlns":
			declared[a.Key] = true
		case a.Space == "" && a.Key == "xmlns":
			declared[""] = true
		}
	}

	for _, prefix := range usedPrefixes(dup) {
		if declared[prefix] {
			continue
		}
		uri := lookupNamespace(parent, prefix)
		if uri == "" {
			continue
		}
		if prefix == "" {
			dup.CreateAttr("xmlns", uri)
		} else {
			dup.CreateAttr("xmlns:"+prefix, uri)
		}
		declared[prefix] = true
	}
	return dup
}

// usedPrefixes lists element, attribute and attribute-value QName prefixes
// in document order. The empty string stands for the default namespace of
// unprefixed elements.
func usedPrefixes(root *etree.Element) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(p string) {
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}

	var walk func(el *etree.Element)
	walk = func(el *etree.Element) {
		add(el.Space)
		for _, a := range el.Attr {
			if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
				continue
			}
			if a.Space != "" && a.Space != "xml" {
				add(a.Space)
			}
			if p, ok := valuePrefix(a.Value); ok {
				add(p)
			}
		}
		for _, child := range el.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return out
}

// valuePrefix returns the prefix of a QName-shaped attribute value.
// Candidates without an in-scope declaration are ignored by the caller.
func valuePrefix(v string) (string, bool) {
	p, local, found := strings.Cut(strings.TrimSpace(v), ":")
	if !found || p == "" || local == "" || p == "xml" || p == "xmlns" {
		return "", false
	}
	if strings.ContainsAny(p, " \t\n/#?") || strings.ContainsAny(local, ":/ ") {
		return "", false
	}
	return p, true
}

func lookupNamespace(el *etree.Element, prefix string) string {
	for e := el; e != nil; e = e.Parent() {
		for _, a := range e.Attr {
			if prefix == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if prefix != "" && a.Space == "xmlns" && a.Key == prefix {
				return a.Value
			}
		}
	}
	return ""
}

// ElementString serializes el on its own, without indentation
func ElementString(el *etree.Element) string {
	if el == nil {
		return ""
	}
	doc := etree.NewDocument()
	doc.SetRoot(el.Copy())
	s, err := doc.WriteToString()
	if err != nil {
		return ""
	}
	return s
}

// ElementsEqual reports whether a and b serialize identically
func ElementsEqual(a, b *etree.Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	return ElementString(a) == ElementString(b)
}

// Is reports whether el has the given namespace URI and local name
func Is(el *etree.Element, ns, local string) bool {
	return el != nil && el.Tag == local && el.NamespaceURI() == ns
}

// ChildElements returns the children of parent with the given namespace and local name
func ChildElements(parent *etree.Element, ns, local string) []*etree.Element {
	if parent == nil {
		return nil
	}
	var out []*etree.Element
	for _, child := range parent.ChildElements() {
		if Is(child, ns, local) {
			out = append(out, child)
		}
	}
	return out
}

// ChildElement returns the first matching child of parent, or nil
func ChildElement(parent *etree.Element, ns, local string) *etree.Element {
	if parent == nil {
		return nil
	}
	for _, child := range parent.ChildElements() {
		if Is(child, ns, local) {
			return child
		}
	}
	return nil
}

// ChildText returns the trimmed text of the first matching child, or ""
func ChildText(parent *etree.Element, ns, local string) string {
	return Text(ChildElement(parent, ns, local))
}

// Text returns the trimmed text content of el, or "" for nil
func Text(el *etree.Element) string {
	if el == nil {
		return ""
	}
	return strings.TrimSpace(el.Text())
}

// Attr returns the trimmed value of an unqualified attribute and whether it was present
func Attr(el *etree.Element, key string) (string, bool) {
	if el == nil {
		return "", false
	}
	for _, a := range el.Attr {
		if a.Space == "" && a.Key == key {
			return strings.TrimSpace(a.Value), true
		}
	}
	return "", false
}
