// Package mdsrc builds parser node trees from Markdown. Markdown constructs
// are mapped onto the HTML element names the built in loaders and
// formatters understand.
package mdsrc

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/oligo/gvdoc/parser"
)

// Source converts Markdown documents. It is safe to reuse.
type Source struct {
	md goldmark.Markdown
}

// New creates a Source. With gfm the GitHub flavoured extensions (tables,
// strikethrough, task lists, autolinks) are enabled.
func New(gfm bool) *Source {
	var opts []goldmark.Option
	if gfm {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return &Source{md: goldmark.New(opts...)}
}

// Parse returns a "body" element holding the converted document.
func (s *Source) Parse(src []byte) parser.Node {
	doc := s.md.Parser().Parse(text.NewReader(src))
	c := converter{source: src}
	root := parser.NewElement("body", nil)
	c.appendChildren(root, doc)
	return root
}

type converter struct {
	source []byte
}

func (c *converter) appendChildren(dst *parser.Element, n ast.Node) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		c.appendNode(dst, child)
	}
}

func (c *converter) element(tag string, attrs map[string]string, n ast.Node) *parser.Element {
	el := parser.NewElement(tag, attrs)
	c.appendChildren(el, n)
	return el
}

func (c *converter) appendNode(dst *parser.Element, n ast.Node) {
	switch node := n.(type) {
	case *ast.Paragraph:
		dst.Append(c.element("p", nil, node))
	case *ast.TextBlock:
		// tight list items hold their inline content directly.
		c.appendChildren(dst, node)
	case *ast.Heading:
		dst.Append(c.element("h"+strconv.Itoa(node.Level), nil, node))
	case *ast.Blockquote:
		dst.Append(c.element("blockquote", nil, node))
	case *ast.ThematicBreak:
		dst.Append(parser.NewElement("hr", nil))
	case *ast.FencedCodeBlock:
		var attrs map[string]string
		if lang := node.Language(c.source); len(lang) > 0 {
			attrs = map[string]string{"lang": string(lang)}
		}
		dst.Append(parser.NewElement("pre", attrs, &parser.Text{Data: c.lines(node)}))
	case *ast.CodeBlock:
		dst.Append(parser.NewElement("pre", nil, &parser.Text{Data: c.lines(node)}))
	case *ast.List:
		tag := "ul"
		var attrs map[string]string
		if node.IsOrdered() {
			tag = "ol"
			if node.Start > 1 {
				attrs = map[string]string{"start": strconv.Itoa(node.Start)}
			}
		}
		dst.Append(c.element(tag, attrs, node))
	case *ast.ListItem:
		dst.Append(c.element("li", nil, node))
	case *ast.Text:
		dst.Append(&parser.Text{Data: string(node.Segment.Value(c.source))})
		if node.HardLineBreak() {
			dst.Append(parser.NewElement("br", nil))
		} else if node.SoftLineBreak() && node.NextSibling() != nil {
			dst.Append(&parser.Text{Data: " "})
		}
	case *ast.String:
		dst.Append(&parser.Text{Data: string(node.Value)})
	case *ast.Emphasis:
		tag := "em"
		if node.Level >= 2 {
			tag = "strong"
		}
		dst.Append(c.element(tag, nil, node))
	case *ast.CodeSpan:
		dst.Append(c.element("code", nil, node))
	case *ast.Link:
		attrs := map[string]string{"href": string(node.Destination)}
		if len(node.Title) > 0 {
			attrs["title"] = string(node.Title)
		}
		dst.Append(c.element("a", attrs, node))
	case *ast.AutoLink:
		url := string(node.URL(c.source))
		dst.Append(parser.NewElement("a", map[string]string{"href": url}, &parser.Text{Data: url}))
	case *ast.Image:
		attrs := map[string]string{
			"src": string(node.Destination),
			"alt": c.plainText(node),
		}
		dst.Append(parser.NewElement("img", attrs))
	case *extast.Strikethrough:
		dst.Append(c.element("del", nil, node))
	case *extast.TaskCheckBox:
		attrs := map[string]string{"type": "checkbox"}
		if node.IsChecked {
			attrs["checked"] = "checked"
		}
		dst.Append(parser.NewElement("input", attrs))
	case *extast.Table:
		c.appendTable(dst, node)
	case *ast.HTMLBlock, *ast.RawHTML:
		// raw markup is not interpreted.
	default:
		c.appendChildren(dst, node)
	}
}

var alignments = map[extast.Alignment]string{
	extast.AlignLeft:   "left",
	extast.AlignRight:  "right",
	extast.AlignCenter: "center",
}

func (c *converter) appendTable(dst *parser.Element, table *extast.Table) {
	el := parser.NewElement("table", nil)
	for row := table.FirstChild(); row != nil; row = row.NextSibling() {
		cellTag := "td"
		if row.Kind() == extast.KindTableHeader {
			cellTag = "th"
		}
		tr := parser.NewElement("tr", nil)
		for cell := row.FirstChild(); cell != nil; cell = cell.NextSibling() {
			tc, ok := cell.(*extast.TableCell)
			if !ok {
				continue
			}
			var attrs map[string]string
			if align, ok := alignments[tc.Alignment]; ok {
				attrs = map[string]string{"style": "text-align: " + align}
			}
			tr.Append(c.element(cellTag, attrs, tc))
		}
		el.Append(tr)
	}
	dst.Append(el)
}

func (c *converter) lines(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		segment := lines.At(i)
		b.Write(segment.Value(c.source))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (c *converter) plainText(n ast.Node) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := child.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(c.source))
		case *ast.String:
			b.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
