package core

// Scope is a contiguous span [StartIndex, EndIndex) of a single fragment.
type Scope struct {
	Fragment   *Fragment
	StartIndex int
	EndIndex   int
}

// SuccessiveContents partitions the whole fragment into scopes. See
// Range.SuccessiveContents.
func (f *Fragment) SuccessiveContents(boundary func(*Component) bool) []Scope {
	w := newScopeWalker(Anchor{Fragment: f, Index: 0}, Anchor{Fragment: f, Index: f.Len()}, boundary)
	w.walk(f)
	return w.scopes
}

// scopeWalker visits fragments in document order between two anchors and
// collects the non empty spans it passes.
type scopeWalker struct {
	start, end Anchor
	boundary   func(*Component) bool
	active     bool
	done       bool
	scopes     []Scope
}

func newScopeWalker(start, end Anchor, boundary func(*Component) bool) *scopeWalker {
	if boundary == nil {
		boundary = (*Component).IsContainer
	}
	return &scopeWalker{start: start, end: end, boundary: boundary}
}

func (w *scopeWalker) emit(f *Fragment, from, to int) {
	if from < to {
		w.scopes = append(w.scopes, Scope{Fragment: f, StartIndex: from, EndIndex: to})
	}
}

func (w *scopeWalker) walk(f *Fragment) {
	segStart := 0
	for i := 0; ; i++ {
		if f == w.start.Fragment && i == w.start.Index {
			w.active = true
			segStart = i
		}
		if f == w.end.Fragment && i == w.end.Index {
			if w.active {
				w.emit(f, segStart, i)
			}
			w.active = false
			w.done = true
			return
		}
		if i >= f.Len() {
			break
		}

		c := f.ComponentAt(i)
		if c == nil || !c.IsContainer() {
			continue
		}
		// a rejected container is still entered when the anchor the walk
		// waits for lies inside it.
		if !w.boundary(c) && !c.holds(w.pending()) {
			continue
		}
		if w.active {
			w.emit(f, segStart, i)
		}
		for _, slot := range c.slots {
			w.walk(slot)
			if w.done {
				return
			}
		}
		segStart = i + 1
	}
	if w.active {
		w.emit(f, segStart, f.Len())
	}
}

func (w *scopeWalker) pending() Anchor {
	if w.active {
		return w.end
	}
	return w.start
}

// holds reports whether a sits in a slot of c or of one of its descendants.
func (c *Component) holds(a Anchor) bool {
	f := a.Fragment
	for f != nil && f.parent != nil {
		if f.parent == c {
			return true
		}
		f = f.parent.parent
	}
	return false
}
