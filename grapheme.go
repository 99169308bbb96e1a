package gvdoc

import (
	"github.com/go-text/typesetting/segmenter"
	"golang.org/x/exp/slices"

	"github.com/oligo/gvdoc/core"
)

// graphemeBounds returns the sorted atom offsets at which a grapheme cluster
// of f starts or ends, including 0 and f.Len(). Components count as a single
// rune.
func graphemeBounds(f *core.Fragment) []int {
	bounds := []int{0}
	text := []rune(f.Text())
	if len(text) == 0 {
		return bounds
	}
	var seg segmenter.Segmenter
	seg.Init(text)
	iter := seg.GraphemeIterator()
	for iter.Next() {
		g := iter.Grapheme()
		bounds = append(bounds, g.Offset+len(g.Text))
	}
	return bounds
}

// prevGrapheme returns the start of the cluster ending at or containing
// index.
func prevGrapheme(f *core.Fragment, index int) int {
	bounds := graphemeBounds(f)
	i, _ := slices.BinarySearch(bounds, index)
	if i == 0 {
		return 0
	}
	return bounds[i-1]
}

// nextGrapheme returns the end of the cluster starting at or containing
// index.
func nextGrapheme(f *core.Fragment, index int) int {
	bounds := graphemeBounds(f)
	i, found := slices.BinarySearch(bounds, index)
	if found {
		i++
	}
	if i >= len(bounds) {
		return f.Len()
	}
	return bounds[i]
}
