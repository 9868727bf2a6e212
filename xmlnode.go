package pptxpack

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Node is one element of a part's document tree. Every higher
// component mutates part documents exclusively through this API; the
// tree enforces no schema validity of its own, so callers are
// responsible for emitting structurally complete, namespace-correct
// fragments.
type Node struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Node
}

// Attr is a single attribute on a Node. Attribute order is preserved
// as set, which keeps serialized output stable across runs.
type Attr struct {
	Name  string
	Value string
}

// NewNode creates a detached element with the given tag name.
func NewNode(tag string) *Node {
	return &Node{Tag: tag}
}

// CreateChild appends a new child element with the given tag name and
// returns it.
func (n *Node) CreateChild(tag string) *Node {
	child := &Node{Tag: tag}
	n.Children = append(n.Children, child)
	return child
}

// SetAttributes sets attribute name/value pairs on the node. An
// attribute that already exists is overwritten in place; new ones are
// appended in the order given.
func (n *Node) SetAttributes(pairs ...Attr) *Node {
	for _, p := range pairs {
		replaced := false
		for i := range n.Attrs {
			if n.Attrs[i].Name == p.Name {
				n.Attrs[i].Value = p.Value
				replaced = true
				break
			}
		}
		if !replaced {
			n.Attrs = append(n.Attrs, p)
		}
	}
	return n
}

// Attr returns the value of the named attribute, or "" if unset.
func (n *Node) Attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// AppendText appends to the node's character data.
func (n *Node) AppendText(s string) *Node {
	n.Text += s
	return n
}

// FindFirst returns the first node in the subtree (depth-first,
// document order, including n itself) whose tag matches. Tag matching
// ignores the namespace prefix when the search tag carries none.
func (n *Node) FindFirst(tag string) (*Node, error) {
	if found := findFirst(n, tag); found != nil {
		return found, nil
	}
	return nil, notFound(ErrNodeNotFound, tag)
}

func findFirst(n *Node, tag string) *Node {
	if tagMatches(n.Tag, tag) {
		return n
	}
	for _, c := range n.Children {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in the subtree whose tag matches, in
// document order. The result is empty, never nil-vs-error, when no
// node matches.
func (n *Node) FindAll(tag string) []*Node {
	var out []*Node
	var walk func(*Node)
	walk = func(cur *Node) {
		if tagMatches(cur.Tag, tag) {
			out = append(out, cur)
		}
		for _, c := range cur.Children {
			walk(c)
		}
	}
	walk(n)
	return out
}

// SetText replaces the character data of the first node matching tag.
func (n *Node) SetText(tag, value string) error {
	found, err := n.FindFirst(tag)
	if err != nil {
		return err
	}
	found.Text = value
	return nil
}

// tagMatches compares a node tag against a search tag. A search tag
// without a prefix matches both "tag" and "ns:tag".
func tagMatches(nodeTag, search string) bool {
	if nodeTag == search {
		return true
	}
	if !strings.Contains(search, ":") {
		if i := strings.IndexByte(nodeTag, ':'); i >= 0 {
			return nodeTag[i+1:] == search
		}
	}
	return false
}

// --- Serialization ---

// Marshal serializes the tree to a complete XML document with the
// standard declaration header.
func (n *Node) Marshal() []byte {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	buf.WriteByte('\n')
	n.write(&buf)
	return buf.Bytes()
}

func (n *Node) write(buf *bytes.Buffer) {
	buf.WriteByte('<')
	buf.WriteString(n.Tag)
	for _, a := range n.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(xmlEscape(a.Value))
		buf.WriteByte('"')
	}
	if n.Text == "" && len(n.Children) == 0 {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	if n.Text != "" {
		buf.WriteString(xmlEscape(n.Text))
	}
	for _, c := range n.Children {
		c.write(buf)
	}
	buf.WriteString("</")
	buf.WriteString(n.Tag)
	buf.WriteByte('>')
}

// xmlEscape escapes special XML characters using the standard library.
func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		// EscapeText writing to strings.Builder never fails, but handle gracefully.
		return s
	}
	return b.String()
}

// --- Parsing ---

// ParseNode parses an XML document into a Node tree. Namespace
// prefixes are preserved verbatim so a parsed tree serializes back to
// equivalent markup.
func ParseNode(data []byte) (*Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	var root *Node
	var stack []*Node
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("malformed xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			node := &Node{Tag: rawName(t.Name)}
			for _, a := range t.Attr {
				node.Attrs = append(node.Attrs, Attr{Name: rawName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, fmt.Errorf("malformed xml: multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("malformed xml: unbalanced end element %s", rawName(t.Name))
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				text := string(t)
				if strings.TrimSpace(text) != "" {
					stack[len(stack)-1].Text += text
				}
			}
		}
	}
	if root == nil {
		return nil, fmt.Errorf("malformed xml: no root element")
	}
	if len(stack) != 0 {
		return nil, fmt.Errorf("malformed xml: unclosed element %s", stack[len(stack)-1].Tag)
	}
	return root, nil
}

// rawName rebuilds a prefixed name from a RawToken name, where Space
// holds the prefix verbatim rather than a resolved namespace URL.
func rawName(name xml.Name) string {
	if name.Space != "" {
		return name.Space + ":" + name.Local
	}
	return name.Local
}

// sortedKeys is a small helper for deterministic map iteration.
func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
