package components

import (
	"github.com/oligo/gvdoc/parser"
)

// DefaultLoaders returns the loaders of every built in component. Leaf
// elements come first so a void element is never read as a block.
func DefaultLoaders() []parser.Loader {
	return []parser.Loader{
		&leafLoader{tags: []string{"br", "img", "hr", "input"}},
		&listLoader{},
		&tableLoader{},
		&blockLoader{tags: BlockTags},
	}
}

// DefaultFormatters returns the built in formatters in the order they are
// matched.
func DefaultFormatters() []parser.Formatter {
	return []parser.Formatter{
		Bold, Italic, Underline, Strike, Code, Subscript, Superscript, Link, Color, Background, TextAlign,
	}
}

// NewParser returns a parser wired with the built in loaders and formatters.
func NewParser() *parser.Parser {
	return parser.New(DefaultLoaders(), DefaultFormatters())
}
