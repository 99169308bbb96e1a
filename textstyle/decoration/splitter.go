package decoration

import (
	"golang.org/x/exp/slices"
)

// Run is a span [Start, End) whose atoms are all covered by the same
// decorations.
type Run struct {
	Start, End int
	// Decorations covering the run, ordered like QueryRange results.
	Decorations []Decoration
}

// Split partitions [start, end) into runs on behalf of a renderer. A new run
// starts wherever a decoration starts or ends, so adjacent runs never carry
// the same decorations. Atoms not covered by any decoration form runs with
// no decorations.
func Split(tree *Tree, start, end int) []Run {
	if start >= end {
		return nil
	}
	decos := tree.QueryRange(start, end)
	if len(decos) == 0 {
		return []Run{{Start: start, End: end}}
	}

	bounds := []int{start, end}
	for _, deco := range decos {
		s, e := deco.Range()
		if s > start {
			bounds = append(bounds, s)
		}
		if e < end {
			bounds = append(bounds, e)
		}
	}
	slices.Sort(bounds)
	bounds = slices.Compact(bounds)

	runs := make([]Run, 0, len(bounds)-1)
	for i := 0; i+1 < len(bounds); i++ {
		run := Run{Start: bounds[i], End: bounds[i+1]}
		for _, deco := range decos {
			s, e := deco.Range()
			if s <= run.Start && e >= run.End {
				run.Decorations = append(run.Decorations, deco)
			}
		}
		runs = append(runs, run)
	}
	return runs
}
