package gvdoc

import (
	"golang.org/x/exp/slices"

	"github.com/oligo/gvdoc/components"
	"github.com/oligo/gvdoc/core"
)

// CleanCommand removes formatting from every range of the selection. Block
// formats are only removed when a scope covers its whole fragment, or the
// whole fragment except a trailing line break.
type CleanCommand struct {
	// Exclude lists formatter names left untouched. When nil the editor's
	// CleanExclude option is used.
	Exclude []string
}

func (c *CleanCommand) Name() string { return "clean" }

func (c *CleanCommand) Execute(ctx *Context) (bool, error) {
	exclude := c.Exclude
	if exclude == nil && ctx.Options != nil {
		exclude = ctx.Options.CleanExclude
	}

	changed := false
	for _, r := range ctx.Selection.Ranges() {
		for _, scope := range r.SuccessiveContents(nil) {
			if cleanScope(scope, exclude) {
				changed = true
			}
		}
	}
	return changed, nil
}

func cleanScope(scope core.Scope, exclude []string) bool {
	f := scope.Fragment
	if scope.StartIndex >= scope.EndIndex {
		return false
	}
	wholeBlock := scope.StartIndex == 0 && (scope.EndIndex == f.Len() ||
		(scope.EndIndex == f.Len()-1 && components.IsBr(f.ComponentAt(f.Len()-1))))

	changed := false
	for _, formatter := range f.FormatKeys() {
		if slices.Contains(exclude, formatter.Name()) {
			continue
		}
		hole := core.FormatRange{Start: scope.StartIndex, End: scope.EndIndex, Effect: core.Invalid}
		if formatter.Kind() == core.Block {
			if !wholeBlock {
				continue
			}
			hole.Start, hole.End = 0, f.Len()
		}
		if !overlaps(f.FormatRanges(formatter), hole.Start, hole.End) {
			continue
		}
		// the hole lies inside the fragment.
		_ = f.Apply(formatter, hole)
		changed = true
	}
	return changed
}

func overlaps(ranges []core.FormatRange, start, end int) bool {
	for _, r := range ranges {
		if r.Start < end && r.End > start {
			return true
		}
	}
	return false
}
