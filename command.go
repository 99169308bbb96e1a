package gvdoc

import (
	"errors"

	"github.com/oligo/gvdoc/core"
)

// ErrNoSelection is returned by commands that need a range when the
// selection is empty.
var ErrNoSelection = errors.New("no selection")

// Context is what a command operates on.
type Context struct {
	Root      *core.Component
	Selection *core.Selection
	Options   *Options
}

// Command is an edit of the document driven by the selection.
type Command interface {
	Name() string
	// Execute mutates the document and the selection. It reports whether
	// the document changed.
	Execute(ctx *Context) (bool, error)
}

// closest returns the nearest component owning f, or one of its ancestors,
// for which pred holds.
func closest(f *core.Fragment, pred func(*core.Component) bool) *core.Component {
	for f != nil {
		c := f.Parent()
		if c == nil {
			return nil
		}
		if pred(c) {
			return c
		}
		f = c.Parent()
	}
	return nil
}

// childIndex returns the index, inside ancestor, of the atom that contains
// anchor a. An anchor sitting directly in ancestor is returned unchanged and
// inside reports false.
func childIndex(a core.Anchor, ancestor *core.Fragment) (index int, inside bool) {
	if a.Fragment == ancestor {
		return a.Index, false
	}
	f := a.Fragment
	for f != nil && f.Parent() != nil {
		owner := f.Parent()
		if owner.Parent() == ancestor {
			return ancestor.IndexOf(owner), true
		}
		f = owner.Parent()
	}
	return -1, false
}

func collapseAt(r *core.Range, f *core.Fragment, index int) error {
	if err := r.SetStart(f, index); err != nil {
		return err
	}
	r.Collapse(false)
	return nil
}
