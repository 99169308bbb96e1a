package parser

import (
	"strings"
)

// NodeType discriminates markup nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is a markup node consumed by the parser. It is not tied to any host
// tree; the htmlsrc and mdsrc packages build Node trees from HTML and
// Markdown.
type Node interface {
	Type() NodeType
	// Tag returns the lower case tag name of an element, or "" for text.
	Tag() string
	Attr(name string) (string, bool)
	Children() []Node
	// Text returns the payload of a text node, or "" for elements.
	Text() string
}

// Element is a generic element node.
type Element struct {
	Name  string
	Attrs map[string]string
	Nodes []Node
}

// NewElement creates an element with the given children.
func NewElement(name string, attrs map[string]string, children ...Node) *Element {
	return &Element{Name: strings.ToLower(name), Attrs: attrs, Nodes: children}
}

func (e *Element) Type() NodeType { return ElementNode }
func (e *Element) Tag() string    { return e.Name }
func (e *Element) Text() string   { return "" }

func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.Attrs[name]
	return v, ok
}

func (e *Element) Children() []Node {
	return e.Nodes
}

// Append adds children at the end of e.
func (e *Element) Append(children ...Node) {
	e.Nodes = append(e.Nodes, children...)
}

// Text is a text node.
type Text struct {
	Data string
}

func (t *Text) Type() NodeType             { return TextNode }
func (t *Text) Tag() string                { return "" }
func (t *Text) Attr(string) (string, bool) { return "", false }
func (t *Text) Children() []Node           { return nil }
func (t *Text) Text() string               { return t.Data }

// Style returns the value of an inline CSS property of n, read from its
// style attribute.
func Style(n Node, property string) (string, bool) {
	style, ok := n.Attr("style")
	if !ok {
		return "", false
	}
	for _, decl := range strings.Split(style, ";") {
		name, value, found := strings.Cut(decl, ":")
		if !found {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(name), property) {
			return strings.TrimSpace(value), true
		}
	}
	return "", false
}

// TextContent concatenates the text of every descendant of n.
func TextContent(n Node) string {
	if n.Type() == TextNode {
		return n.Text()
	}
	var b strings.Builder
	for _, c := range n.Children() {
		b.WriteString(TextContent(c))
	}
	return b.String()
}
