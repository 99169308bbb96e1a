package gvdoc

import (
	"github.com/oligo/gvdoc/core"
)

// HighlightState is the state of a formatter over the selection, as shown
// by a toolbar button.
type HighlightState uint8

const (
	// Normal means the formatter does not cover the selection.
	Normal HighlightState = iota
	// Highlight means every scope of the selection carries the formatter.
	Highlight
	// Disabled means there is nothing to format.
	Disabled
)

func (s HighlightState) String() string {
	switch s {
	case Normal:
		return "normal"
	case Highlight:
		return "highlight"
	case Disabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// FormatState is the result of matching a formatter against the selection.
type FormatState struct {
	State HighlightState
	// Data of the first matching range when State is Highlight.
	Data *core.FormatData
}

// QueryFormatState reports how formatter covers the selection. A collapsed
// range looks at the atom before the caret, or the first atom when the caret
// is at the start of its fragment. Block formatters are matched against the
// whole fragment of each scope.
func QueryFormatState(sel *core.Selection, formatter core.Formatter) FormatState {
	ranges := sel.Ranges()
	if len(ranges) == 0 {
		return FormatState{State: Disabled}
	}

	var data *core.FormatData
	for _, r := range ranges {
		for _, scope := range r.SuccessiveContents(nil) {
			start, end := scope.StartIndex, scope.EndIndex
			f := scope.Fragment
			if formatter.Kind() == core.Block {
				start, end = 0, f.Len()
			} else if start == end {
				if start > 0 {
					start--
				} else {
					end++
				}
			}
			if end > f.Len() || start == end {
				return FormatState{State: Normal}
			}
			covered, d := coverage(f.FormatsIn(start, end), formatter, start, end)
			if !covered {
				return FormatState{State: Normal}
			}
			if data == nil {
				data = d
			}
		}
	}
	return FormatState{State: Highlight, Data: data}
}

// coverage reports whether the valid ranges of formatter among spans cover
// [start, end) without a gap.
func coverage(spans []core.FormatSpan, formatter core.Formatter, start, end int) (bool, *core.FormatData) {
	var data *core.FormatData
	pos := start
	// spans of one formatter are ordered by start.
	for _, s := range spans {
		if s.Formatter != formatter || s.Range.Effect != core.Valid {
			continue
		}
		if s.Range.Start > pos {
			return false, nil
		}
		if data == nil {
			data = s.Range.Data
		}
		pos = max(pos, s.Range.End)
		if pos >= end {
			return true, data
		}
	}
	return false, nil
}

// FormatCommand applies, clears or toggles a formatter over every scope of
// the selection.
type FormatCommand struct {
	Formatter core.Formatter
	Data      *core.FormatData
	// Clear removes the formatter instead of applying it.
	Clear bool
	// Toggle clears the formatter when the selection is highlighted and
	// applies it otherwise. It overrides Clear.
	Toggle bool
}

func (c *FormatCommand) Name() string { return "format:" + c.Formatter.Name() }

func (c *FormatCommand) Execute(ctx *Context) (bool, error) {
	if ctx.Selection.RangeCount() == 0 {
		return false, ErrNoSelection
	}
	remove := c.Clear
	if c.Toggle {
		remove = QueryFormatState(ctx.Selection, c.Formatter).State == Highlight
	}
	effect := core.Valid
	if remove {
		effect = core.Invalid
	}

	changed := false
	for _, r := range ctx.Selection.Ranges() {
		for _, scope := range r.SuccessiveContents(nil) {
			start, end := scope.StartIndex, scope.EndIndex
			if c.Formatter.Kind() == core.Block {
				start, end = 0, scope.Fragment.Len()
			}
			if start >= end {
				continue
			}
			err := scope.Fragment.Apply(c.Formatter, core.FormatRange{
				Start:  start,
				End:    end,
				Data:   c.Data.Clone(),
				Effect: effect,
			})
			if err != nil {
				return changed, err
			}
			changed = true
		}
	}
	return changed, nil
}
