package components

import (
	"errors"
	"strings"

	"github.com/oligo/gvdoc/core"
	"github.com/oligo/gvdoc/parser"
)

// ErrOutside is returned by Enter handlers when the selection does not start
// inside the component they were given.
var ErrOutside = errors.New("components: selection is not inside the component")

// NewList creates an empty ul or ol list.
func NewList(tag string) *core.Component {
	return core.NewBranch(tag, "li")
}

// IsList reports whether c is a list component.
func IsList(c *core.Component) bool {
	return c != nil && c.Variant() == core.Branch && (c.Tag == "ul" || c.Tag == "ol")
}

type listLoader struct{}

func (l *listLoader) Match(n parser.Node) bool {
	return n.Tag() == "ul" || n.Tag() == "ol"
}

// Read maps every li child to a slot. Runs of other children between items
// are wrapped into a synthetic li of their own.
func (l *listLoader) Read(n parser.Node) parser.ViewData {
	list := NewList(n.Tag())
	var slots []parser.SlotMap
	var stray *parser.Element

	flush := func() {
		if stray == nil {
			return
		}
		slot := core.NewFragment()
		_ = list.AppendSlot(slot)
		slots = append(slots, parser.SlotMap{From: stray, To: slot})
		stray = nil
	}

	for _, child := range n.Children() {
		if child.Tag() == "li" {
			flush()
			slot := core.NewFragment()
			_ = list.AppendSlot(slot)
			slots = append(slots, parser.SlotMap{From: child, To: slot})
			continue
		}
		if child.Type() == parser.TextNode && strings.TrimSpace(child.Text()) == "" {
			continue
		}
		if stray == nil {
			stray = parser.NewElement("li", nil)
		}
		stray.Append(child)
	}
	flush()

	return parser.ViewData{Component: list, Slots: slots}
}

// isEmptyLine reports whether slot holds nothing but an optional single line
// break.
func isEmptyLine(slot *core.Fragment) bool {
	switch slot.Len() {
	case 0:
		return true
	case 1:
		return IsBr(slot.ComponentAt(0))
	default:
		return false
	}
}

// ListEnter handles Enter inside an item of list. On an empty trailing item
// the item is removed and a new block tagged exitTag is inserted after the
// list; otherwise the item is split at the caret. The selection is collapsed
// at the start of the new slot in both cases.
func ListEnter(sel *core.Selection, list *core.Component, exitTag string) error {
	r := sel.FirstRange()
	if r == nil {
		return ErrOutside
	}
	slot := r.Start.Fragment
	index := list.IndexOf(slot)
	if index < 0 {
		return ErrOutside
	}

	if index == list.SlotCount()-1 && isEmptyLine(slot) {
		parent := list.Parent()
		if parent == nil {
			return ErrOutside
		}
		if _, err := list.RemoveSlot(index); err != nil {
			return err
		}
		block := NewBlock(exitTag)
		block.Slot().AppendComponent(NewBr())
		if err := parent.InsertAfter(block, list); err != nil {
			return err
		}
		if list.SlotCount() == 0 {
			if err := parent.Delete(parent.IndexOf(list), parent.IndexOf(list)+1); err != nil {
				return err
			}
		}
		logger.Debug("leaving list", "tag", list.Tag, "block", exitTag)
		return collapseAt(r, block.Slot(), 0)
	}

	next, err := BreakLine(slot, r.Start.Index)
	if err != nil {
		return err
	}
	if err := list.InsertSlot(index+1, next); err != nil {
		return err
	}
	return collapseAt(r, next, 0)
}

func collapseAt(r *core.Range, f *core.Fragment, index int) error {
	if err := r.SetStart(f, index); err != nil {
		return err
	}
	r.Collapse(false)
	return nil
}
