package core

import (
	"github.com/oligo/gvdoc/internal/codec"
	"golang.org/x/exp/slices"
)

// RangePath is the structural encoding of a range. Each path alternates a
// component index and a slot selector from the root fragment downwards and
// ends with the atom index inside the anchor fragment.
type RangePath struct {
	StartPaths []int `json:"startPaths" cbor:"s"`
	EndPaths   []int `json:"endPaths" cbor:"e"`
}

// AnchorPath encodes the position of a.
func AnchorPath(a Anchor) []int {
	var path []int
	f := a.Fragment
	for f != nil {
		owner := f.parent
		if owner == nil || owner.parent == nil {
			break
		}
		switch owner.variant {
		case Branch, Backbone:
			path = append(path, owner.IndexOf(f))
		default:
			path = append(path, 0)
		}
		f = owner.parent
		path = append(path, f.IndexOf(owner))
	}
	slices.Reverse(path)
	return append(path, a.Index)
}

// Paths returns the structural paths of both anchors. A collapsed range
// reports the same path twice.
func (r *Range) Paths() RangePath {
	start := AnchorPath(r.Start)
	if r.Collapsed() {
		return RangePath{StartPaths: start, EndPaths: start}
	}
	return RangePath{StartPaths: start, EndPaths: AnchorPath(r.End)}
}

// ResolvePath walks path from root and returns the anchor it names. It fails
// with a *PathResolutionError when the tree no longer has the recorded shape.
func ResolvePath(path []int, root *Fragment) (Anchor, error) {
	fail := func(step int, reason string) (Anchor, error) {
		return Anchor{}, &PathResolutionError{Path: slices.Clone(path), Step: step, Reason: reason}
	}
	if root == nil {
		return fail(0, "no root fragment")
	}
	if len(path)%2 == 0 {
		return fail(0, "malformed path")
	}

	f := root
	for step := 0; step+1 < len(path); step += 2 {
		c := f.ComponentAt(path[step])
		if c == nil {
			return fail(step, "no component at index")
		}
		selector := path[step+1]
		switch c.variant {
		case Division:
			if selector != 0 {
				return fail(step+1, "division accepts only slot 0")
			}
			f = c.slots[0]
		case Branch, Backbone:
			slot, err := c.SlotAt(selector)
			if err != nil {
				return fail(step+1, "slot index out of range")
			}
			f = slot
		default:
			return fail(step+1, c.variant.String()+" component has no slots")
		}
	}

	index := path[len(path)-1]
	if index < 0 || index > f.Len() {
		return fail(len(path)-1, "atom index out of range")
	}
	return Anchor{Fragment: f, Index: index}, nil
}

func equalPath(a, b []int) bool {
	return slices.Equal(a, b)
}

// EncodeRangePaths serializes paths for a history store.
func EncodeRangePaths(paths []RangePath) ([]byte, error) {
	return codec.Marshal(paths)
}

// DecodeRangePaths is the inverse of EncodeRangePaths.
func DecodeRangePaths(data []byte) ([]RangePath, error) {
	var paths []RangePath
	if err := codec.Unmarshal(data, &paths); err != nil {
		return nil, err
	}
	return paths, nil
}
