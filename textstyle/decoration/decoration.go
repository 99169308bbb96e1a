package decoration

import (
	"cmp"

	"github.com/rdleal/intervalst/interval"
	"golang.org/x/exp/slices"
)

// Tree leverages a interval tree to store overlapping decorations. Ranges
// are half open, [start, end), measured in atoms.
type Tree struct {
	tree *interval.MultiValueSearchTree[Decoration, int]
	// all decorations in insertion order, used to rebuild the tree on removal.
	all []Decoration
}

func NewTree() *Tree {
	return &Tree{tree: newSearchTree()}
}

func newSearchTree() *interval.MultiValueSearchTree[Decoration, int] {
	return interval.NewMultiValueSearchTree[Decoration](func(a, b int) int {
		return cmp.Compare(a, b)
	})
}

// Insert adds decorations to the tree. Empty decorations are ignored.
func (d *Tree) Insert(decos ...Decoration) {
	for _, deco := range decos {
		start, end := deco.Range()
		if start >= end {
			continue
		}
		// the search tree works on closed intervals.
		d.tree.Insert(start, end-1, deco)
		d.all = append(d.all, deco)
	}
}

// Len returns the number of decorations in the tree.
func (d *Tree) Len() int {
	return len(d.all)
}

// Query returns all decorations covering the atom at pos.
func (d *Tree) Query(pos int) []Decoration {
	return d.QueryRange(pos, pos+1)
}

// QueryRange returns all decorations overlapping [start, end), ordered by
// priority and then by start offset.
func (d *Tree) QueryRange(start, end int) []Decoration {
	if start >= end || len(d.all) == 0 {
		return nil
	}

	all, found := d.tree.AllIntersections(start, end-1)
	if !found {
		return nil
	}

	result := slices.Clone(all)
	slices.SortStableFunc(result, func(a, b Decoration) int {
		if c := cmp.Compare(a.GetPriority(), b.GetPriority()); c != 0 {
			return c
		}
		as, _ := a.Range()
		bs, _ := b.Range()
		return cmp.Compare(as, bs)
	})
	return result
}

// RemoveBySource removes every decoration whose source equals source and
// reports how many were removed.
func (d *Tree) RemoveBySource(source any) int {
	kept := d.all[:0]
	removed := 0
	for _, deco := range d.all {
		if deco.Source() == source {
			removed++
			continue
		}
		kept = append(kept, deco)
	}
	if removed == 0 {
		return 0
	}

	d.tree = newSearchTree()
	rest := slices.Clone(kept)
	d.all = d.all[:0]
	d.Insert(rest...)
	return removed
}

// Clear removes all decorations.
func (d *Tree) Clear() {
	d.tree = newSearchTree()
	d.all = nil
}
