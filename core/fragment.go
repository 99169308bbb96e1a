package core

import (
	"strings"

	"golang.org/x/exp/slices"

	"github.com/oligo/gvdoc/buffer"
	"github.com/oligo/gvdoc/textstyle/decoration"
)

// ObjectReplacement stands in for a component in Fragment.Text.
const ObjectReplacement = '\uFFFC'

// Run is a piece of fragment content: coalesced text or a single component.
type Run = buffer.Run[*Component]

// Fragment is an ordered sequence of atoms plus a format table. It is the
// editable content of a component slot.
type Fragment struct {
	contents *buffer.Sequence[*Component]
	formats  formatTable
	// parent is the component owning this fragment as a slot. It is a
	// navigation link only.
	parent *Component
	// index is built on demand for format queries and dropped on mutation.
	index *decoration.Tree
}

func NewFragment() *Fragment {
	return &Fragment{contents: buffer.NewSequence[*Component]()}
}

// Len returns the number of atoms in the fragment.
func (f *Fragment) Len() int {
	return f.contents.Len()
}

// Parent returns the component owning the fragment, or nil for a detached
// fragment.
func (f *Fragment) Parent() *Component {
	return f.parent
}

func (f *Fragment) changed() {
	f.index = nil
}

// Text returns the text content with every component replaced by
// ObjectReplacement.
func (f *Fragment) Text() string {
	var b strings.Builder
	for _, r := range f.contents.Runs() {
		if r.IsEmbed() {
			b.WriteRune(ObjectReplacement)
			continue
		}
		b.WriteString(r.Text())
	}
	return b.String()
}

// Contents returns the runs of the fragment in order.
func (f *Fragment) Contents() []Run {
	return f.contents.Runs()
}

// Slice returns the runs covering atoms [start, end).
func (f *Fragment) Slice(start, end int) ([]Run, error) {
	if err := f.checkSpan("slice", start, end); err != nil {
		return nil, err
	}
	runs, _ := f.contents.Slice(start, end)
	return runs, nil
}

// ContentAt returns the atom at index as a run of length 1.
func (f *Fragment) ContentAt(index int) (Run, error) {
	r, ok := f.contents.At(index)
	if !ok {
		return Run{}, boundsErr("contentAt", index, f.Len())
	}
	return r, nil
}

// ComponentAt returns the component at index, or nil if the atom there is
// text or index is out of range.
func (f *Fragment) ComponentAt(index int) *Component {
	r, ok := f.contents.At(index)
	if !ok || !r.IsEmbed() {
		return nil
	}
	return r.Embed()
}

// IndexOf returns the atom index of c, or -1 if c is not a direct child.
func (f *Fragment) IndexOf(c *Component) int {
	return f.contents.IndexOf(c)
}

// Components returns the direct child components in order.
func (f *Fragment) Components() []*Component {
	return f.contents.Embeds()
}

func (f *Fragment) checkSpan(op string, start, end int) error {
	if start < 0 || start > f.Len() {
		return boundsErr(op, start, f.Len())
	}
	if end < start || end > f.Len() {
		return boundsErr(op, end, f.Len())
	}
	return nil
}

// AppendText adds text at the end of the fragment.
func (f *Fragment) AppendText(text string) {
	// appending can not be out of range.
	_ = f.InsertText(text, f.Len())
}

// AppendComponent adds c at the end of the fragment.
func (f *Fragment) AppendComponent(c *Component) {
	c.detach()
	_ = f.insertRuns(f.Len(), buffer.EmbedRun(c))
}

// InsertText inserts text at index.
func (f *Fragment) InsertText(text string, index int) error {
	if text == "" {
		if index < 0 || index > f.Len() {
			return boundsErr("insert", index, f.Len())
		}
		return nil
	}
	return f.insertRuns(index, buffer.TextRun[*Component](text))
}

// InsertComponent inserts c at index. A component already living in a
// fragment is moved: it is removed from its old place first, and index is
// interpreted after that removal. Nothing is changed when the insert fails.
func (f *Fragment) InsertComponent(c *Component, index int) error {
	if err := f.checkMove("insert", c, index); err != nil {
		return err
	}
	c.detach()
	return f.insertRuns(index, buffer.EmbedRun(c))
}

// InsertBefore inserts c right before ref.
func (f *Fragment) InsertBefore(c *Component, ref *Component) error {
	return f.insertBeside("insertBefore", c, ref, 0)
}

// InsertAfter inserts c right after ref.
func (f *Fragment) InsertAfter(c *Component, ref *Component) error {
	return f.insertBeside("insertAfter", c, ref, 1)
}

func (f *Fragment) insertBeside(op string, c, ref *Component, offset int) error {
	idx := f.IndexOf(ref)
	if idx < 0 {
		return boundsErr(op, idx, f.Len())
	}
	if c == ref {
		return ErrSelfInsert
	}
	if err := f.checkMove(op, c, idx); err != nil {
		return err
	}
	c.detach()
	return f.insertRuns(f.IndexOf(ref)+offset, buffer.EmbedRun(c))
}

// checkMove validates moving c to index of f, where index counts atoms after
// c left its current place.
func (f *Fragment) checkMove(op string, c *Component, index int) error {
	if c.holds(Anchor{Fragment: f}) {
		return ErrSelfInsert
	}
	limit := f.Len()
	if c.parent == f {
		limit--
	}
	if index < 0 || index > limit {
		return boundsErr(op, index, limit)
	}
	return nil
}

// InsertFragment inserts the content and formats of other at index. other is
// left empty.
func (f *Fragment) InsertFragment(other *Fragment, index int) error {
	if index < 0 || index > f.Len() {
		return boundsErr("insert", index, f.Len())
	}
	if f.within(other) {
		return ErrSelfInsert
	}
	runs := other.contents.Runs()
	formats := other.formats
	if err := f.insertRuns(index, runs...); err != nil {
		return err
	}
	other.contents = buffer.NewSequence[*Component]()
	other.formats = formatTable{}
	other.changed()

	for _, k := range formats.keys {
		for _, r := range formats.get(k) {
			r.Start += index
			r.End += index
			f.formats.apply(k, r, ApplyOptions{Important: true})
		}
	}
	return nil
}

// within reports whether f is other or lies inside a component of other.
func (f *Fragment) within(other *Fragment) bool {
	for g := f; g != nil; {
		if g == other {
			return true
		}
		if g.parent == nil {
			return false
		}
		g = g.parent.parent
	}
	return false
}

func (f *Fragment) insertRuns(index int, runs ...Run) error {
	n := 0
	for _, r := range runs {
		n += r.Len()
	}
	if !f.contents.Insert(index, runs...) {
		return boundsErr("insert", index, f.Len())
	}
	for _, r := range runs {
		if r.IsEmbed() {
			r.Embed().parent = f
		}
	}
	f.formats.shiftForInsert(index, n)
	f.changed()
	return nil
}

// Cut removes atoms [start, end) and returns them as a new fragment whose
// format ranges are re-based to 0.
func (f *Fragment) Cut(start, end int) (*Fragment, error) {
	if err := f.checkSpan("cut", start, end); err != nil {
		return nil, err
	}

	removed, _ := f.contents.Cut(start, end)
	result := &Fragment{contents: removed}
	for _, c := range removed.Embeds() {
		c.parent = result
	}
	result.formats = f.formats.cut(start, end)
	f.changed()
	return result, nil
}

// Delete removes atoms [start, end).
func (f *Fragment) Delete(start, end int) error {
	_, err := f.Cut(start, end)
	return err
}

// Apply merges r into the ranges of formatter. Inside overlaps with ranges of
// different data the most recently applied range wins.
func (f *Fragment) Apply(formatter Formatter, r FormatRange) error {
	return f.ApplyWith(formatter, r, ApplyOptions{Important: true})
}

// ApplyWith is like Apply with explicit overlap handling.
func (f *Fragment) ApplyWith(formatter Formatter, r FormatRange, opts ApplyOptions) error {
	if err := f.checkSpan("apply", r.Start, r.End); err != nil {
		return err
	}
	if r.empty() {
		return nil
	}
	keys := len(f.formats.keys)
	f.formats.apply(formatter, r, opts)
	f.reindex(formatter, keys)
	return nil
}

// FormatKeys returns the formatters having at least one range, in the order
// they were first applied.
func (f *Fragment) FormatKeys() []Formatter {
	keys := make([]Formatter, len(f.formats.keys))
	copy(keys, f.formats.keys)
	return keys
}

// FormatRanges returns a copy of the ranges of formatter.
func (f *Fragment) FormatRanges(formatter Formatter) []FormatRange {
	ranges := f.formats.get(formatter)
	if len(ranges) == 0 {
		return nil
	}
	result := make([]FormatRange, len(ranges))
	copy(result, ranges)
	return result
}

func (f *Fragment) formatIndex() *decoration.Tree {
	if f.index != nil {
		return f.index
	}
	tree := decoration.NewTree()
	for priority, k := range f.formats.keys {
		f.indexFormatter(tree, k, priority)
	}
	f.index = tree
	return tree
}

func (f *Fragment) indexFormatter(tree *decoration.Tree, k Formatter, priority int) {
	for _, r := range f.formats.get(k) {
		tree.Insert(decoration.Span{
			Src:      k,
			Priority: priority,
			Start:    r.Start,
			End:      r.End,
			Payload:  r,
		})
	}
}

// reindex refreshes the spans of k in a built index after its ranges changed.
// Dropping a formatter shifts the priority of later ones, so the index is
// rebuilt on demand instead.
func (f *Fragment) reindex(k Formatter, keysBefore int) {
	if f.index == nil {
		return
	}
	if len(f.formats.keys) < keysBefore {
		f.changed()
		return
	}
	f.index.RemoveBySource(k)
	if priority := slices.Index(f.formats.keys, k); priority >= 0 {
		f.indexFormatter(f.index, k, priority)
	}
}

// FormatsAt returns the format spans covering the atom at index.
func (f *Fragment) FormatsAt(index int) []FormatSpan {
	return formatSpans(f.formatIndex().Query(index))
}

// FormatsIn returns the format spans overlapping [start, end), ordered by
// formatter and then by start.
func (f *Fragment) FormatsIn(start, end int) []FormatSpan {
	return formatSpans(f.formatIndex().QueryRange(start, end))
}

func formatSpans(decos []decoration.Decoration) []FormatSpan {
	if len(decos) == 0 {
		return nil
	}
	spans := make([]FormatSpan, 0, len(decos))
	for _, d := range decos {
		span := d.(decoration.Span)
		spans = append(spans, FormatSpan{
			Formatter: span.Src.(Formatter),
			Range:     span.Payload.(FormatRange),
		})
	}
	return spans
}

// FormatRun is a span of atoms sharing the same formats.
type FormatRun struct {
	Start, End int
	Formats    []FormatSpan
}

// FormatRuns partitions the fragment into runs of uniform formatting for a
// renderer. Runs without formats are included, so the runs cover every atom.
func (f *Fragment) FormatRuns() []FormatRun {
	split := decoration.Split(f.formatIndex(), 0, f.Len())
	runs := make([]FormatRun, 0, len(split))
	for _, r := range split {
		run := FormatRun{Start: r.Start, End: r.End}
		for _, d := range r.Decorations {
			span := d.(decoration.Span)
			run.Formats = append(run.Formats, FormatSpan{
				Formatter: span.Src.(Formatter),
				Range:     span.Payload.(FormatRange),
			})
		}
		runs = append(runs, run)
	}
	return runs
}

// From replaces all content and formats of f with those of other. other is
// left empty.
func (f *Fragment) From(other *Fragment) {
	if other == f {
		return
	}
	f.contents = other.contents
	f.formats = other.formats
	for _, c := range f.contents.Embeds() {
		c.parent = f
	}
	other.contents = buffer.NewSequence[*Component]()
	other.formats = formatTable{}
	other.changed()
	f.changed()
}

// Clean empties content and format table.
func (f *Fragment) Clean() {
	for _, c := range f.contents.Embeds() {
		c.parent = nil
	}
	f.contents.Clear()
	f.formats.clear()
	f.changed()
}

// Clone deep copies the fragment. Child components are cloned as well; the
// copy has no parent.
func (f *Fragment) Clone() *Fragment {
	clone := NewFragment()
	for _, r := range f.contents.Runs() {
		if r.IsEmbed() {
			c := r.Embed().Clone()
			c.parent = clone
			clone.contents.Append(buffer.EmbedRun(c))
			continue
		}
		clone.contents.Append(r)
	}
	clone.formats = f.formats.clone()
	return clone
}
