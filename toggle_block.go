package gvdoc

import (
	"errors"

	"golang.org/x/exp/slices"

	"github.com/oligo/gvdoc/components"
	"github.com/oligo/gvdoc/core"
)

// ToggleBlockCommand wraps the selection into a block tagged Tag, or unwraps
// the nearest enclosing block with that tag.
type ToggleBlockCommand struct {
	Tag string
}

func (c *ToggleBlockCommand) Name() string { return "toggleBlock:" + c.Tag }

// Execute decides once for the whole selection: when every range sits in a
// block tagged c.Tag those blocks are unwrapped, otherwise every range not yet
// inside such a block is wrapped.
func (c *ToggleBlockCommand) Execute(ctx *Context) (bool, error) {
	ranges := ctx.Selection.Ranges()
	var blocks []*core.Component
	for _, r := range ranges {
		block := c.enclosing(r)
		if block == nil {
			blocks = nil
			break
		}
		if !slices.Contains(blocks, block) {
			blocks = append(blocks, block)
		}
	}

	changed := false
	if len(blocks) > 0 {
		for _, block := range blocks {
			done, err := unwrapBlock(ctx.Selection, block)
			if err != nil {
				return changed, err
			}
			changed = changed || done
		}
		return changed, nil
	}

	for _, r := range ranges {
		if c.enclosing(r) != nil {
			continue
		}
		done, err := c.wrap(ctx.Selection, r)
		if err != nil {
			return changed, err
		}
		changed = changed || done
	}
	return changed, nil
}

// enclosing returns the nearest block tagged c.Tag containing the range.
func (c *ToggleBlockCommand) enclosing(r *core.Range) *core.Component {
	return closest(r.CommonAncestorFragment(), func(comp *core.Component) bool {
		return components.IsBlock(comp) && comp.Tag == c.Tag
	})
}

// unwrapBlock moves the content of block into its parent fragment in place
// of the block. Anchors inside the block follow the content.
func unwrapBlock(sel *core.Selection, block *core.Component) (bool, error) {
	parent := block.Parent()
	if parent == nil {
		return false, nil
	}
	slot := block.Slot()
	position := parent.IndexOf(block)
	if err := parent.Delete(position, position+1); err != nil {
		return false, err
	}
	for _, r := range sel.Ranges() {
		if r.Start.Fragment == slot {
			r.Start = core.Anchor{Fragment: parent, Index: r.Start.Index + position}
		}
		if r.End.Fragment == slot {
			r.End = core.Anchor{Fragment: parent, Index: r.End.Index + position}
		}
	}
	if err := parent.InsertFragment(slot, position); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ToggleBlockCommand) wrap(sel *core.Selection, r *core.Range) (bool, error) {
	block := components.NewBlock(c.Tag)

	if r.Start.Fragment == r.End.Fragment {
		owner := r.Start.Fragment.Parent()
		if owner == nil || owner.Parent() == nil {
			return c.wrapSpan(sel, r.Start.Fragment, block, r.Start.Index, r.End.Index)
		}
		parent := owner.Parent()
		position := parent.IndexOf(owner)
		block.Slot().AppendComponent(owner)
		if err := parent.InsertComponent(block, position); err != nil {
			return false, err
		}
		return true, nil
	}

	ancestor := r.CommonAncestorFragment()
	if ancestor == nil {
		return false, errors.New("range anchors belong to different documents")
	}
	start, _ := childIndex(r.Start, ancestor)
	end, inside := childIndex(r.End, ancestor)
	if inside {
		end++
	}
	return c.wrapSpan(sel, ancestor, block, start, end)
}

// wrapSpan moves atoms [start, end) of f into block and inserts the block in
// their place. Anchors in f that pointed into the span move with it.
func (c *ToggleBlockCommand) wrapSpan(sel *core.Selection, f *core.Fragment, block *core.Component, start, end int) (bool, error) {
	if start >= end {
		return false, nil
	}
	content, err := f.Cut(start, end)
	if err != nil {
		return false, err
	}
	block.Slot().From(content)
	if err := f.InsertComponent(block, start); err != nil {
		return false, err
	}
	move := func(a core.Anchor) core.Anchor {
		if a.Fragment != f || a.Index < start {
			return a
		}
		if a.Index <= end {
			return core.Anchor{Fragment: block.Slot(), Index: a.Index - start}
		}
		return core.Anchor{Fragment: f, Index: a.Index - (end - start) + 1}
	}
	for _, r := range sel.Ranges() {
		r.Start, r.End = move(r.Start), move(r.End)
	}
	return true, nil
}
