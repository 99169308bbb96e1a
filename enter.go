package gvdoc

import (
	"github.com/oligo/gvdoc/components"
)

// EnterCommand breaks the line at the caret. Inside a list the item is split,
// or the list is left on an empty last item. Inside a block the block is
// split. Anywhere else a line break is inserted.
type EnterCommand struct{}

func (c *EnterCommand) Name() string { return "enter" }

func (c *EnterCommand) Execute(ctx *Context) (bool, error) {
	r := ctx.Selection.FirstRange()
	if r == nil {
		return false, ErrNoSelection
	}
	keepOnly(ctx.Selection, r)
	if !r.Collapsed() {
		if err := deleteRange(r); err != nil {
			return false, err
		}
	}

	exitTag := "p"
	if ctx.Options != nil && ctx.Options.ListExitTag != "" {
		exitTag = ctx.Options.ListExitTag
	}

	f := r.Start.Fragment
	owner := f.Parent()
	switch {
	case components.IsList(owner):
		return true, components.ListEnter(ctx.Selection, owner, exitTag)
	case components.IsBlock(owner) && owner.Parent() != nil:
		return true, components.BlockEnter(ctx.Selection, owner, exitTag)
	}

	index := r.Start.Index
	if err := f.InsertComponent(components.NewBr(), index); err != nil {
		return false, err
	}
	// a trailing break renders no line of its own.
	if index+1 == f.Len() {
		f.AppendComponent(components.NewBr())
	}
	return true, collapseAt(r, f, index+1)
}
