package components

import (
	"github.com/oligo/gvdoc/core"
)

// BreakLine cuts the content of slot from index to its end into a new
// fragment. A side left without content receives a line break so that both
// lines stay visible.
func BreakLine(slot *core.Fragment, index int) (*core.Fragment, error) {
	next, err := slot.Cut(index, slot.Len())
	if err != nil {
		return nil, err
	}
	if slot.Len() == 0 {
		slot.AppendComponent(NewBr())
	}
	if next.Len() == 0 {
		next.AppendComponent(NewBr())
	}
	return next, nil
}

// BlockEnter splits block at the caret. The tail moves into a new block
// inserted right after it; headings continue as a paragraph.
func BlockEnter(sel *core.Selection, block *core.Component, continueTag string) error {
	r := sel.FirstRange()
	if r == nil || block.Slot() == nil || r.Start.Fragment != block.Slot() {
		return ErrOutside
	}
	parent := block.Parent()
	if parent == nil {
		return ErrOutside
	}

	tag := block.Tag
	if IsHeading(block) {
		tag = continueTag
	}
	tail, err := BreakLine(block.Slot(), r.Start.Index)
	if err != nil {
		return err
	}
	next := NewBlock(tag)
	next.Slot().From(tail)
	if err := parent.InsertAfter(next, block); err != nil {
		return err
	}
	return collapseAt(r, next.Slot(), 0)
}
