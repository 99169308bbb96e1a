package core

// Anchor is a position inside a fragment: the gap before the atom at Index.
type Anchor struct {
	Fragment *Fragment
	Index    int
}

// Range is a pair of anchors. It only references tree nodes and becomes
// stale after structural edits unless re-resolved.
type Range struct {
	Start Anchor
	End   Anchor
}

// NewRange creates a collapsed range at index of fragment.
func NewRange(fragment *Fragment, index int) *Range {
	a := Anchor{Fragment: fragment, Index: index}
	return &Range{Start: a, End: a}
}

func (r *Range) Collapsed() bool {
	return r.Start.Fragment == r.End.Fragment && r.Start.Index == r.End.Index
}

// SetStart moves the start anchor.
func (r *Range) SetStart(fragment *Fragment, index int) error {
	if index < 0 || index > fragment.Len() {
		return boundsErr("setStart", index, fragment.Len())
	}
	r.Start = Anchor{Fragment: fragment, Index: index}
	return nil
}

// SetEnd moves the end anchor.
func (r *Range) SetEnd(fragment *Fragment, index int) error {
	if index < 0 || index > fragment.Len() {
		return boundsErr("setEnd", index, fragment.Len())
	}
	r.End = Anchor{Fragment: fragment, Index: index}
	return nil
}

// Collapse moves one anchor onto the other. With toEnd the start anchor is
// moved to the end, otherwise the end is moved to the start.
func (r *Range) Collapse(toEnd bool) {
	if toEnd {
		r.Start = r.End
	} else {
		r.End = r.Start
	}
}

// Clone returns a new Range with the same anchors.
func (r *Range) Clone() *Range {
	c := *r
	return &c
}

// fragmentChain lists f and every fragment above it, leaf first.
func fragmentChain(f *Fragment) []*Fragment {
	var chain []*Fragment
	for f != nil {
		chain = append(chain, f)
		if f.parent == nil {
			break
		}
		f = f.parent.parent
	}
	return chain
}

// componentChain lists the component owning f and every component above it,
// leaf first.
func componentChain(f *Fragment) []*Component {
	var chain []*Component
	for f != nil && f.parent != nil {
		chain = append(chain, f.parent)
		f = f.parent.parent
	}
	return chain
}

// CommonAncestorFragment returns the nearest fragment containing both anchors.
func (r *Range) CommonAncestorFragment() *Fragment {
	if r.Start.Fragment == nil || r.End.Fragment == nil {
		return nil
	}
	if r.Start.Fragment == r.End.Fragment {
		return r.Start.Fragment
	}
	return firstShared(fragmentChain(r.Start.Fragment), fragmentChain(r.End.Fragment))
}

// CommonAncestorComponent returns the nearest component containing both
// anchors.
func (r *Range) CommonAncestorComponent() *Component {
	if r.Start.Fragment == nil || r.End.Fragment == nil {
		return nil
	}
	if r.Start.Fragment == r.End.Fragment {
		return r.Start.Fragment.parent
	}
	return firstShared(componentChain(r.Start.Fragment), componentChain(r.End.Fragment))
}

// firstShared returns the first element of b that also appears in a.
func firstShared[T comparable](a, b []T) T {
	seen := make(map[T]struct{}, len(a))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	for _, v := range b {
		if _, ok := seen[v]; ok {
			return v
		}
	}
	var zero T
	return zero
}

// SuccessiveContents returns the contiguous scopes covered by the range in
// document order. Components matching boundary split the scope they sit in
// and their slots are visited in place. Other containers stay inside the
// enclosing scope unless an anchor lies within them. A nil boundary splits at
// every container component. A collapsed range yields a single empty scope.
func (r *Range) SuccessiveContents(boundary func(*Component) bool) []Scope {
	if r.Collapsed() {
		return []Scope{{Fragment: r.Start.Fragment, StartIndex: r.Start.Index, EndIndex: r.Start.Index}}
	}
	root := r.CommonAncestorFragment()
	if root == nil {
		return nil
	}
	w := newScopeWalker(r.Start, r.End, boundary)
	w.walk(root)
	return w.scopes
}
