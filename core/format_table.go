package core

import (
	"cmp"

	"golang.org/x/exp/slices"
)

// formatTable stores format ranges per formatter. Keys keep the order in
// which formatters were first applied.
type formatTable struct {
	keys   []Formatter
	ranges map[Formatter][]FormatRange
}

func (t *formatTable) get(f Formatter) []FormatRange {
	return t.ranges[f]
}

// set replaces the ranges of f, dropping empty ones. A formatter without
// ranges is removed from the table.
func (t *formatTable) set(f Formatter, ranges []FormatRange) {
	kept := ranges[:0]
	for _, r := range ranges {
		if !r.empty() {
			kept = append(kept, r)
		}
	}

	if len(kept) == 0 {
		if _, ok := t.ranges[f]; ok {
			delete(t.ranges, f)
			t.keys = slices.DeleteFunc(t.keys, func(k Formatter) bool { return k == f })
		}
		return
	}

	if t.ranges == nil {
		t.ranges = make(map[Formatter][]FormatRange)
	}
	if _, ok := t.ranges[f]; !ok {
		t.keys = append(t.keys, f)
	}
	t.ranges[f] = kept
}

func (t *formatTable) clear() {
	t.keys = nil
	t.ranges = nil
}

func (t *formatTable) clone() formatTable {
	c := formatTable{}
	for _, k := range t.keys {
		ranges := make([]FormatRange, len(t.ranges[k]))
		for i, r := range t.ranges[k] {
			r.Data = r.Data.Clone()
			ranges[i] = r
		}
		c.set(k, ranges)
	}
	return c
}

// shiftForInsert moves ranges after an insertion of n atoms at pos. Ranges
// starting at or after pos are shifted, ranges straddling pos grow.
func (t *formatTable) shiftForInsert(pos, n int) {
	for _, k := range t.keys {
		for i, r := range t.ranges[k] {
			if r.Start >= pos {
				r.Start += n
				r.End += n
			} else if r.End > pos {
				r.End += n
			}
			t.ranges[k][i] = r
		}
	}
}

// cut removes [start, end) from every range and returns the removed parts
// re-based to 0.
func (t *formatTable) cut(start, end int) formatTable {
	removed := formatTable{}
	n := end - start
	if n <= 0 {
		return removed
	}

	mapPos := func(p int) int {
		switch {
		case p <= start:
			return p
		case p <= end:
			return start
		default:
			return p - n
		}
	}

	for _, k := range slices.Clone(t.keys) {
		var kept, taken []FormatRange
		for _, r := range t.ranges[k] {
			inStart, inEnd := max(r.Start, start), min(r.End, end)
			if inStart < inEnd {
				taken = append(taken, FormatRange{
					Start:  inStart - start,
					End:    inEnd - start,
					Data:   r.Data,
					Effect: r.Effect,
				})
			}
			r.Start, r.End = mapPos(r.Start), mapPos(r.End)
			kept = append(kept, r)
		}
		t.set(k, kept)
		if len(taken) > 0 {
			removed.set(k, taken)
		}
	}
	return removed
}

// apply merges r into the ranges of f.
func (t *formatTable) apply(f Formatter, r FormatRange, opts ApplyOptions) {
	existing := t.get(f)
	var result []FormatRange

	if r.Effect == Invalid {
		for _, old := range existing {
			result = append(result, subtract(old, r)...)
		}
		t.set(f, result)
		return
	}

	if opts.Important {
		for _, old := range existing {
			if old.Data.Equal(r.Data) {
				result = append(result, old)
				continue
			}
			result = append(result, subtract(old, r)...)
		}
		result = append(result, r)
	} else {
		pieces := []FormatRange{r}
		for _, old := range existing {
			result = append(result, old)
			if old.Data.Equal(r.Data) {
				continue
			}
			var next []FormatRange
			for _, p := range pieces {
				next = append(next, subtract(p, old)...)
			}
			pieces = next
		}
		result = append(result, pieces...)
	}

	t.set(f, normalize(result))
}

// subtract returns the parts of r lying outside hole.
func subtract(r, hole FormatRange) []FormatRange {
	if hole.End <= r.Start || hole.Start >= r.End {
		return []FormatRange{r}
	}

	var parts []FormatRange
	if r.Start < hole.Start {
		left := r
		left.End = hole.Start
		parts = append(parts, left)
	}
	if hole.End < r.End {
		right := r
		right.Start = hole.End
		parts = append(parts, right)
	}
	return parts
}

// normalize sorts ranges and coalesces overlapping or touching ranges
// carrying equal data.
func normalize(ranges []FormatRange) []FormatRange {
	slices.SortStableFunc(ranges, func(a, b FormatRange) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})

	var out []FormatRange
	for _, r := range ranges {
		if r.empty() {
			continue
		}
		merged := false
		for i := len(out) - 1; i >= 0; i-- {
			prev := out[i]
			if prev.End < r.Start {
				break
			}
			if prev.Data.Equal(r.Data) {
				out[i].End = max(prev.End, r.End)
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, r)
		}
	}
	return out
}
