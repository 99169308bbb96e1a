package parser

import (
	"regexp"
	"strings"

	"github.com/oligo/gvdoc/core"
)

// SlotMap tells the parser which markup node fills which slot of a freshly
// read component.
type SlotMap struct {
	From Node
	To   *core.Fragment
}

// ViewData is what a Loader reads from a matched node.
type ViewData struct {
	Component *core.Component
	Slots     []SlotMap
}

// Loader recognises the markup of one kind of component.
type Loader interface {
	Match(n Node) bool
	Read(n Node) ViewData
}

// Formatter recognises formatting carried by an element. Match reports
// whether the element carries the format at all and with which effect.
type Formatter interface {
	core.Formatter
	Match(n Node) (core.Effect, bool)
	Read(n Node) *core.FormatData
}

// Parser builds a fragment tree from a markup tree. Loaders and formatters
// are tried in registration order; the first matching loader wins.
type Parser struct {
	loaders    []Loader
	formatters []Formatter
}

func New(loaders []Loader, formatters []Formatter) *Parser {
	return &Parser{loaders: loaders, formatters: formatters}
}

// Parse reads the children of root into a new fragment.
func (p *Parser) Parse(root Node) *core.Fragment {
	slot := core.NewFragment()
	p.ParseInto(root, slot)
	return slot
}

// ParseInto reads root and appends the result to slot.
func (p *Parser) ParseInto(root Node, slot *core.Fragment) {
	p.readComponent(root, slot)
}

var lineBreaksOnly = regexp.MustCompile(`^[\r\n]+$`)

var entities = strings.NewReplacer(
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
	"&nbsp;", " ",
)

// DecodeText decodes the entities the parser understands in a text payload.
func DecodeText(s string) string {
	return entities.Replace(s)
}

func (p *Parser) readComponent(n Node, slot *core.Fragment) {
	switch n.Type() {
	case TextNode:
		text := n.Text()
		if text == "" || lineBreaksOnly.MatchString(text) {
			return
		}
		slot.AppendText(DecodeText(text))
	case ElementNode:
		for _, loader := range p.loaders {
			if !loader.Match(n) {
				continue
			}
			view := loader.Read(n)
			slot.AppendComponent(view.Component)
			for _, m := range view.Slots {
				if m.From == nil || m.To == nil {
					continue
				}
				if view.Component.IsContainer() || m.From == n {
					p.readFormats(m.From, m.To)
				} else {
					p.readComponent(m.From, m.To)
				}
			}
			return
		}
		logger.Debug("no loader matched", "tag", n.Tag())
		p.readFormats(n, slot)
	}
}

type matchedFormat struct {
	formatter Formatter
	effect    core.Effect
	data      *core.FormatData
}

// readFormats parses the children of n into slot and applies the formats n
// carries over everything they produced. Formats of inner elements are
// applied first and are not overridden.
func (p *Parser) readFormats(n Node, slot *core.Fragment) {
	if n.Type() == TextNode {
		p.readComponent(n, slot)
		return
	}

	var matched []matchedFormat
	for _, f := range p.formatters {
		effect, ok := f.Match(n)
		if !ok {
			continue
		}
		matched = append(matched, matchedFormat{formatter: f, effect: effect, data: f.Read(n)})
	}

	start := slot.Len()
	for _, child := range n.Children() {
		p.readComponent(child, slot)
	}
	end := slot.Len()

	for _, m := range matched {
		// the bounds come from the slot itself and can not fail.
		_ = slot.ApplyWith(m.formatter, core.FormatRange{
			Start:  start,
			End:    end,
			Data:   m.data,
			Effect: m.effect,
		}, core.ApplyOptions{Important: false})
	}
}
