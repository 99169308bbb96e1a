package components

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/oligo/gvdoc/core"
	"github.com/oligo/gvdoc/parser"
)

// NewBr creates a line break.
func NewBr() *core.Component {
	return core.NewLeaf("br")
}

// IsBr reports whether c is a line break.
func IsBr(c *core.Component) bool {
	return c != nil && c.Variant() == core.Leaf && c.Tag == "br"
}

// NewImage creates an image leaf.
func NewImage(src, alt string) *core.Component {
	img := core.NewLeaf("img")
	img.Attrs = map[string]string{"src": src}
	if alt != "" {
		img.Attrs["alt"] = alt
	}
	return img
}

// leafLoader reads void elements as leaf components, keeping their
// attributes.
type leafLoader struct {
	tags []string
}

func (l *leafLoader) Match(n parser.Node) bool {
	return slices.Contains(l.tags, n.Tag())
}

func (l *leafLoader) Read(n parser.Node) parser.ViewData {
	leaf := core.NewLeaf(n.Tag())
	if el, ok := n.(*parser.Element); ok && len(el.Attrs) > 0 {
		leaf.Attrs = maps.Clone(el.Attrs)
	}
	return parser.ViewData{Component: leaf}
}
