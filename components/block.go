package components

import (
	"golang.org/x/exp/slices"

	"github.com/oligo/gvdoc/core"
	"github.com/oligo/gvdoc/parser"
)

// BlockTags lists the tags read as block components.
var BlockTags = []string{"p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "blockquote", "pre", "article", "section"}

// NewBlock creates a block component: a division with a single slot.
func NewBlock(tag string) *core.Component {
	return core.NewDivision(tag)
}

// IsBlock reports whether c is a block component.
func IsBlock(c *core.Component) bool {
	return c != nil && c.Variant() == core.Division && slices.Contains(BlockTags, c.Tag)
}

// IsHeading reports whether c is a h1 to h6 block.
func IsHeading(c *core.Component) bool {
	return IsBlock(c) && len(c.Tag) == 2 && c.Tag[0] == 'h' && c.Tag[1] >= '1' && c.Tag[1] <= '6'
}

type blockLoader struct {
	tags []string
}

func (l *blockLoader) Match(n parser.Node) bool {
	return slices.Contains(l.tags, n.Tag())
}

func (l *blockLoader) Read(n parser.Node) parser.ViewData {
	block := NewBlock(n.Tag())
	if lang, ok := n.Attr("lang"); ok && n.Tag() == "pre" {
		block.Attrs = map[string]string{"lang": lang}
	}
	return parser.ViewData{
		Component: block,
		Slots:     []parser.SlotMap{{From: n, To: block.Slot()}},
	}
}
