package feed

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
)

// Node is an element of a parsed feed document.
//
// Only elements are represented. Character data (including CDATA) that
// appears directly inside an element is collected into Text.
type Node struct {
	// Space is the resolved namespace URI; empty for un-namespaced elements.
	Space string

	// Name is the local element name.
	Name string

	// Attrs holds the element attributes in document order.
	Attrs []xml.Attr

	// Text is the element's own character data, trimmed of surrounding space.
	Text string

	// Children are the child elements in document order.
	Children []*Node
}

// LoadFile parses the feed document at path.
//
// A missing file and malformed XML are both returned as errors; there is
// no partial result.
func LoadFile(path string) (*Node, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open feed: %w", err)
	}
	defer file.Close()

	root, err := Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse feed %s: %w", path, err)
	}
	return root, nil
}

// Parse reads an XML document from r and returns its root element.
//
// Documents declaring a non UTF-8 encoding (ISO-8859-1, windows-1252, ...)
// are decoded through golang.org/x/text.
func Parse(r io.Reader) (*Node, error) {
	decoder := xml.NewDecoder(r)
	decoder.CharsetReader = charsetReader

	var (
		root  *Node
		stack []*Node
		text  []*strings.Builder
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{
				Space: t.Name.Space,
				Name:  t.Name.Local,
				Attrs: append([]xml.Attr(nil), t.Attr...),
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
			text = append(text, &strings.Builder{})

		case xml.CharData:
			if len(text) > 0 {
				text[len(text)-1].Write(t)
			}

		case xml.EndElement:
			node := stack[len(stack)-1]
			node.Text = strings.TrimSpace(text[len(text)-1].String())
			stack = stack[:len(stack)-1]
			text = text[:len(text)-1]
		}
	}

	if root == nil {
		return nil, errors.New("document has no root element")
	}
	return root, nil
}

func charsetReader(label string, input io.Reader) (io.Reader, error) {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, fmt.Errorf("unsupported charset %q: %w", label, err)
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// Child returns the first un-namespaced child element with the given name,
// or nil.
func (n *Node) Child(name string) *Node {
	return n.ChildNS("", name)
}

// ChildNS returns the first child element matching namespace and name,
// or nil.
func (n *Node) ChildNS(space, name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Space == space && c.Name == name {
			return c
		}
	}
	return nil
}

// Find follows a slash separated path of un-namespaced child names,
// e.g. "channel/title". It returns nil if any step is missing.
func (n *Node) Find(path string) *Node {
	cur := n
	for _, step := range strings.Split(path, "/") {
		cur = cur.Child(step)
		if cur == nil {
			return nil
		}
	}
	return cur
}

// ChildText returns the text of the first child with the given name, or ""
// when the child is missing.
func (n *Node) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.Text
	}
	return ""
}

// Attr returns the value of the un-namespaced attribute name, or "".
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attrs {
		if a.Name.Space == "" && a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// Descendants yields every un-namespaced element named name below n, in
// document order (pre-order). n itself is never yielded, and matches nested
// inside other matches are yielded too.
func (n *Node) Descendants(name string) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		walk(n, name, yield)
	}
}

// walk visits the children of n depth first. It returns false once yield
// asks to stop.
func walk(n *Node, name string, yield func(*Node) bool) bool {
	if n == nil {
		return true
	}
	for _, c := range n.Children {
		if c.Space == "" && c.Name == name {
			if !yield(c) {
				return false
			}
		}
		if !walk(c, name, yield) {
			return false
		}
	}
	return true
}
