package core

// NativeRange is a range as reported by the external anchor layer, already
// mapped to fragment positions.
type NativeRange struct {
	Start Anchor
	End   Anchor
}

// AnchorLayer is the external collaborator owning native anchors, e.g. the
// caret and selection of a renderer.
type AnchorLayer interface {
	// NativeRanges returns the current native ranges in order.
	NativeRanges() []NativeRange
	// SetNativeRange replaces the native selection with a single range.
	SetNativeRange(start, end Anchor)
	RemoveAllRanges()
}

// Selection is an ordered list of ranges rebuilt from the anchor layer.
type Selection struct {
	ranges []*Range
	layer  AnchorLayer
	// isChanged is set when ranges are rebuilt from the layer, and reset
	// before Restore pushes ranges back to it.
	isChanged bool
	listeners []func()
}

// NewSelection creates a selection backed by layer. layer may be nil for a
// detached selection.
func NewSelection(layer AnchorLayer) *Selection {
	return &Selection{layer: layer}
}

func (s *Selection) RangeCount() int {
	return len(s.ranges)
}

// Ranges returns the ranges in order.
func (s *Selection) Ranges() []*Range {
	ranges := make([]*Range, len(s.ranges))
	copy(ranges, s.ranges)
	return ranges
}

func (s *Selection) FirstRange() *Range {
	if len(s.ranges) == 0 {
		return nil
	}
	return s.ranges[0]
}

func (s *Selection) LastRange() *Range {
	if len(s.ranges) == 0 {
		return nil
	}
	return s.ranges[len(s.ranges)-1]
}

// Collapsed reports whether the selection is empty or a single collapsed
// range.
func (s *Selection) Collapsed() bool {
	return len(s.ranges) == 0 || (len(s.ranges) == 1 && s.ranges[0].Collapsed())
}

// OnChange registers fn to be called every time the ranges are rebuilt.
func (s *Selection) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

func (s *Selection) emit() {
	s.isChanged = true
	// a detached selection keeps its own ranges.
	if s.layer != nil {
		s.ranges = s.ranges[:0]
		for _, nr := range s.layer.NativeRanges() {
			if nr.Start.Fragment == nil || nr.End.Fragment == nil {
				continue
			}
			s.ranges = append(s.ranges, &Range{Start: nr.Start, End: nr.End})
		}
	}
	for _, fn := range s.listeners {
		fn()
	}
}

// Refresh rebuilds the ranges from the anchor layer. It is the entry point
// for external anchor change notifications and is idempotent for an
// unchanged layer.
func (s *Selection) Refresh() {
	s.emit()
}

// Restore pushes the ranges back to the anchor layer: the native start is the
// first range's start and the native end the last range's end. Listeners are
// notified only when the layer did not report a change of its own while
// restoring.
func (s *Selection) Restore() {
	s.isChanged = false
	first, last := s.FirstRange(), s.LastRange()
	if first != nil && last != nil && s.layer != nil {
		s.layer.SetNativeRange(first.Start, last.End)
	}
	if !s.isChanged {
		s.emit()
	}
}

// RemoveAllRanges drops every range. With syncNative the anchor layer is
// cleared too.
func (s *Selection) RemoveAllRanges(syncNative bool) {
	if syncNative && s.layer != nil {
		s.layer.RemoveAllRanges()
	}
	s.ranges = nil
}

func (s *Selection) AddRange(r *Range) {
	s.ranges = append(s.ranges, r)
}

// CreateRange returns a new range collapsed at the start of fragment. The
// range is not added to the selection.
func (s *Selection) CreateRange(fragment *Fragment) *Range {
	return NewRange(fragment, 0)
}

// Clone returns a detached selection holding copies of the ranges. Anchors
// keep referencing the same fragments.
func (s *Selection) Clone() *Selection {
	c := &Selection{layer: s.layer}
	for _, r := range s.ranges {
		c.ranges = append(c.ranges, r.Clone())
	}
	return c
}

// CommonAncestorFragment returns the deepest fragment shared by the common
// ancestors of every range, or nil.
func (s *Selection) CommonAncestorFragment() *Fragment {
	switch len(s.ranges) {
	case 0:
		return nil
	case 1:
		return s.ranges[0].CommonAncestorFragment()
	}
	chains := make([][]*Fragment, len(s.ranges))
	for i, r := range s.ranges {
		chains[i] = fragmentChain(r.CommonAncestorFragment())
	}
	return commonTail(chains)
}

// CommonAncestorComponent returns the deepest component shared by the common
// ancestors of every range, or nil.
func (s *Selection) CommonAncestorComponent() *Component {
	switch len(s.ranges) {
	case 0:
		return nil
	case 1:
		return s.ranges[0].CommonAncestorComponent()
	}
	chains := make([][]*Component, len(s.ranges))
	for i, r := range s.ranges {
		c := r.CommonAncestorComponent()
		for c != nil {
			chains[i] = append(chains[i], c)
			if c.parent == nil {
				break
			}
			c = c.parent.parent
		}
	}
	return commonTail(chains)
}

// commonTail pops one element from the end of every leaf-first chain at a
// time and returns the last value all chains agreed on.
func commonTail[T comparable](chains [][]T) T {
	var result, zero T
	for depth := 1; ; depth++ {
		var candidate T
		for i, chain := range chains {
			if len(chain) < depth {
				return result
			}
			v := chain[len(chain)-depth]
			if v == zero {
				return result
			}
			if i == 0 {
				candidate = v
			} else if v != candidate {
				return result
			}
		}
		result = candidate
	}
}

// RangePaths returns the structural paths of every range.
func (s *Selection) RangePaths() []RangePath {
	paths := make([]RangePath, 0, len(s.ranges))
	for _, r := range s.ranges {
		paths = append(paths, r.Paths())
	}
	return paths
}

// UsePaths resolves paths against root and replaces the ranges with a single
// range from the first path's start to the last path's end.
func (s *Selection) UsePaths(paths []RangePath, root *Fragment) error {
	if len(paths) == 0 {
		return nil
	}
	startPaths := paths[0].StartPaths
	endPaths := paths[len(paths)-1].EndPaths

	start, err := ResolvePath(startPaths, root)
	if err != nil {
		return err
	}
	end := start
	if !equalPath(startPaths, endPaths) {
		if end, err = ResolvePath(endPaths, root); err != nil {
			return err
		}
	}

	s.RemoveAllRanges(false)
	s.AddRange(&Range{Start: start, End: end})
	return nil
}
