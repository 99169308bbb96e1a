// Package htmlsrc builds parser node trees from HTML markup.
package htmlsrc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/oligo/gvdoc/parser"
)

// Parse reads an HTML fragment, as found inside a body element, and returns
// a synthetic "body" element holding it.
func Parse(r io.Reader) (parser.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("htmlsrc: %w", err)
	}

	root := parser.NewElement("body", nil)
	for _, n := range nodes {
		if c := convert(n); c != nil {
			root.Append(c)
		}
	}
	return root, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(markup string) (parser.Node, error) {
	return Parse(strings.NewReader(markup))
}

// FromHTML converts an already parsed HTML node. Comments, doctypes and
// other non content nodes are dropped and nil is returned for them.
func FromHTML(n *html.Node) parser.Node {
	return convert(n)
}

func convert(n *html.Node) parser.Node {
	switch n.Type {
	case html.TextNode:
		return &parser.Text{Data: n.Data}
	case html.ElementNode:
		var attrs map[string]string
		if len(n.Attr) > 0 {
			attrs = make(map[string]string, len(n.Attr))
			for _, a := range n.Attr {
				attrs[a.Key] = a.Val
			}
		}
		el := parser.NewElement(n.Data, attrs)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if child := convert(c); child != nil {
				el.Append(child)
			}
		}
		return el
	case html.DocumentNode:
		el := parser.NewElement("body", nil)
		appendBody(el, n)
		return el
	default:
		return nil
	}
}

// appendBody converts the children of the body element found below n.
func appendBody(dst *parser.Element, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Body {
			for b := c.FirstChild; b != nil; b = b.NextSibling {
				if child := convert(b); child != nil {
					dst.Append(child)
				}
			}
			return
		}
		appendBody(dst, c)
	}
}
