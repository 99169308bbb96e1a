package gvdoc

import (
	"github.com/oligo/gvdoc/components"
	"github.com/oligo/gvdoc/core"
)

// DeleteCommand deletes the selected content, or one grapheme cluster next
// to a collapsed caret. Deleting backward at the start of a block merges it
// into the previous block.
type DeleteCommand struct {
	Forward bool
}

func (c *DeleteCommand) Name() string {
	if c.Forward {
		return "deleteForward"
	}
	return "delete"
}

func (c *DeleteCommand) Execute(ctx *Context) (bool, error) {
	r := ctx.Selection.FirstRange()
	if r == nil {
		return false, ErrNoSelection
	}
	keepOnly(ctx.Selection, r)

	if !r.Collapsed() {
		return true, deleteRange(r)
	}

	f, index := r.Start.Fragment, r.Start.Index
	if c.Forward {
		if index >= f.Len() {
			return false, nil
		}
		return true, f.Delete(index, nextGrapheme(f, index))
	}
	if index == 0 {
		return mergeBackward(r)
	}
	start := prevGrapheme(f, index)
	if err := f.Delete(start, index); err != nil {
		return false, err
	}
	return true, collapseAt(r, f, start)
}

func keepOnly(sel *core.Selection, r *core.Range) {
	if sel.RangeCount() == 1 {
		return
	}
	sel.RemoveAllRanges(false)
	sel.AddRange(r)
}

// deleteRange removes the content of r and collapses it at its start. When
// both anchors sit in sibling blocks the end block is merged into the start
// block and the blocks between them are removed.
func deleteRange(r *core.Range) error {
	if r.Start.Fragment == r.End.Fragment {
		if err := r.Start.Fragment.Delete(r.Start.Index, r.End.Index); err != nil {
			return err
		}
		r.Collapse(false)
		return nil
	}

	ancestor := r.CommonAncestorFragment()
	startOwner, endOwner := r.Start.Fragment.Parent(), r.End.Fragment.Parent()
	merge := ancestor != nil && components.IsBlock(startOwner) && components.IsBlock(endOwner) &&
		startOwner.Parent() == ancestor && endOwner.Parent() == ancestor

	scopes := r.SuccessiveContents(nil)
	for i := len(scopes) - 1; i >= 0; i-- {
		s := scopes[i]
		if err := s.Fragment.Delete(s.StartIndex, s.EndIndex); err != nil {
			return err
		}
	}
	r.Collapse(false)
	if !merge {
		return nil
	}

	// the blocks between both owners were emptied, not removed.
	from, to := ancestor.IndexOf(startOwner), ancestor.IndexOf(endOwner)
	target := startOwner.Slot()
	if err := target.InsertFragment(endOwner.Slot(), target.Len()); err != nil {
		return err
	}
	return ancestor.Delete(from+1, to+1)
}

// mergeBackward joins the block holding the caret with the block right
// before it.
func mergeBackward(r *core.Range) (bool, error) {
	owner := r.Start.Fragment.Parent()
	if !components.IsBlock(owner) || owner.Parent() == nil {
		return false, nil
	}
	parent := owner.Parent()
	position := parent.IndexOf(owner)
	if position == 0 {
		return false, nil
	}
	prev := parent.ComponentAt(position - 1)
	if !components.IsBlock(prev) {
		return false, nil
	}

	target := prev.Slot()
	at := target.Len()
	if at > 0 && components.IsBr(target.ComponentAt(at-1)) {
		at--
		if err := target.Delete(at, at+1); err != nil {
			return false, err
		}
	}
	slot := owner.Slot()
	if err := parent.Delete(position, position+1); err != nil {
		return false, err
	}
	if err := target.InsertFragment(slot, at); err != nil {
		return false, err
	}
	return true, collapseAt(r, target, at)
}
