package core

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Variant is the structural capability of a component.
type Variant uint8

const (
	// Leaf components have no slots.
	Leaf Variant = iota
	// Division components own exactly one slot.
	Division
	// Branch components own an ordered, resizable list of slots.
	Branch
	// Backbone components own a grid of slots addressed by a flat,
	// row-major structural index.
	Backbone
)

func (v Variant) String() string {
	switch v {
	case Leaf:
		return "leaf"
	case Division:
		return "division"
	case Branch:
		return "branch"
	case Backbone:
		return "backbone"
	default:
		return "unknown"
	}
}

// Component is a structural node of the document tree. Its variant decides
// which slot operations it supports.
type Component struct {
	// Tag names the kind of component, e.g. "p", "ul" or "table".
	Tag   string
	Attrs map[string]string
	// SlotTag is the container hint passed to the slot render callback for
	// Branch slots and Backbone cells.
	SlotTag string

	variant Variant
	// slots owned by this component. Backbone slots are stored row-major.
	slots []*Fragment
	// number of columns of a Backbone.
	cols int
	// parent is the fragment containing this component. It is a navigation
	// link only.
	parent *Fragment
}

// NewLeaf creates a component without slots.
func NewLeaf(tag string) *Component {
	return &Component{Tag: tag, variant: Leaf}
}

// NewDivision creates a component owning a single empty slot.
func NewDivision(tag string) *Component {
	c := &Component{Tag: tag, variant: Division}
	c.adopt(NewFragment())
	return c
}

// NewBranch creates a component with an empty list of slots.
func NewBranch(tag, slotTag string) *Component {
	return &Component{Tag: tag, SlotTag: slotTag, variant: Branch}
}

// NewBackbone creates a rows x cols grid of empty slots.
func NewBackbone(tag, cellTag string, rows, cols int) *Component {
	c := &Component{Tag: tag, SlotTag: cellTag, variant: Backbone, cols: max(cols, 0)}
	if c.cols == 0 {
		return c
	}
	for i := 0; i < rows*c.cols; i++ {
		c.adopt(NewFragment())
	}
	return c
}

// NewRoot creates the root component of a document. Its slot is the root
// fragment.
func NewRoot() *Component {
	return NewDivision("root")
}

func (c *Component) Variant() Variant {
	return c.variant
}

// Parent returns the fragment containing c, or nil for the root.
func (c *Component) Parent() *Fragment {
	return c.parent
}

// IsContainer reports whether c owns slots.
func (c *Component) IsContainer() bool {
	return c.variant != Leaf
}

func (c *Component) adopt(f *Fragment) *Fragment {
	f.parent = c
	c.slots = append(c.slots, f)
	return f
}

// detach removes c from the fragment containing it.
func (c *Component) detach() {
	if c.parent == nil {
		return
	}
	if idx := c.parent.IndexOf(c); idx >= 0 {
		_ = c.parent.Delete(idx, idx+1)
	}
	c.parent = nil
}

// Slot returns the single slot of a Division, or nil for other variants.
func (c *Component) Slot() *Fragment {
	if c.variant != Division {
		return nil
	}
	return c.slots[0]
}

// Slots returns the slots in iteration order.
func (c *Component) Slots() []*Fragment {
	return slices.Clone(c.slots)
}

// SlotCount returns the number of slots.
func (c *Component) SlotCount() int {
	return len(c.slots)
}

// SlotAt returns the slot at structural index i.
func (c *Component) SlotAt(i int) (*Fragment, error) {
	if c.variant == Leaf {
		return nil, &UnsupportedVariantError{Op: "SlotAt", Variant: c.variant}
	}
	if i < 0 || i >= len(c.slots) {
		return nil, boundsErr("SlotAt", i, len(c.slots))
	}
	return c.slots[i], nil
}

// IndexOf returns the structural index of slot, or -1.
func (c *Component) IndexOf(slot *Fragment) int {
	return slices.Index(c.slots, slot)
}

// AppendSlot adds slot at the end of a Branch.
func (c *Component) AppendSlot(slot *Fragment) error {
	return c.InsertSlot(len(c.slots), slot)
}

// InsertSlot inserts slot at index i of a Branch.
func (c *Component) InsertSlot(i int, slot *Fragment) error {
	if c.variant != Branch {
		return &UnsupportedVariantError{Op: "InsertSlot", Variant: c.variant}
	}
	if i < 0 || i > len(c.slots) {
		return boundsErr("InsertSlot", i, len(c.slots))
	}
	slot.parent = c
	c.slots = slices.Insert(c.slots, i, slot)
	return nil
}

// RemoveSlot removes and returns the slot at index i of a Branch.
func (c *Component) RemoveSlot(i int) (*Fragment, error) {
	if c.variant != Branch {
		return nil, &UnsupportedVariantError{Op: "RemoveSlot", Variant: c.variant}
	}
	if i < 0 || i >= len(c.slots) {
		return nil, boundsErr("RemoveSlot", i, len(c.slots))
	}
	slot := c.slots[i]
	c.slots = slices.Delete(c.slots, i, i+1)
	slot.parent = nil
	return slot, nil
}

// SplitResult partitions the slots of a component.
type SplitResult struct {
	Before []*Fragment
	Center []*Fragment
	After  []*Fragment
}

// Split partitions the slots of a Branch or Backbone into those before
// startIndex, those in [startIndex, endIndex) and those after. The component
// is not modified.
func (c *Component) Split(startIndex, endIndex int) (SplitResult, error) {
	if c.variant != Branch && c.variant != Backbone {
		return SplitResult{}, &UnsupportedVariantError{Op: "Split", Variant: c.variant}
	}
	if startIndex < 0 || startIndex > len(c.slots) {
		return SplitResult{}, boundsErr("Split", startIndex, len(c.slots))
	}
	if endIndex < startIndex || endIndex > len(c.slots) {
		return SplitResult{}, boundsErr("Split", endIndex, len(c.slots))
	}
	return SplitResult{
		Before: slices.Clone(c.slots[:startIndex]),
		Center: slices.Clone(c.slots[startIndex:endIndex]),
		After:  slices.Clone(c.slots[endIndex:]),
	}, nil
}

// Clone deep copies the component and its slots. The copy has no parent.
func (c *Component) Clone() *Component {
	clone := &Component{
		Tag:     c.Tag,
		Attrs:   maps.Clone(c.Attrs),
		SlotTag: c.SlotTag,
		variant: c.variant,
		cols:    c.cols,
	}
	for _, slot := range c.slots {
		clone.adopt(slot.Clone())
	}
	return clone
}

// View is a presentation node built by an external renderer. The core never
// inspects it.
type View any

// ContainerHint describes the container a slot is rendered into.
type ContainerHint struct {
	Tag string
	// Row and Col locate Backbone cells; both are 0 otherwise.
	Row, Col int
}

// SlotRenderFunc builds the presentation of one slot.
type SlotRenderFunc func(slot *Fragment, hint ContainerHint) View

// Render invokes render once per slot in iteration order and returns the
// views it built. Leaf components render no slots.
func (c *Component) Render(render SlotRenderFunc) []View {
	var views []View
	switch c.variant {
	case Leaf:
		return nil
	case Division:
		views = append(views, render(c.slots[0], ContainerHint{Tag: c.Tag}))
	case Branch:
		for _, slot := range c.slots {
			views = append(views, render(slot, ContainerHint{Tag: c.SlotTag}))
		}
	case Backbone:
		for i, slot := range c.slots {
			views = append(views, render(slot, ContainerHint{Tag: c.SlotTag, Row: i / c.cols, Col: i % c.cols}))
		}
	}
	return views
}
