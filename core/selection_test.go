package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// testDoc builds
//
//	root: "ab" <p>hello</p> <ul><li>one</li><li>two</li></ul> <table 2x2 a b c d> "z"
type testDoc struct {
	root  *Component
	frag  *Fragment
	p     *Component
	list  *Component
	table *Component
}

func newTestDoc() *testDoc {
	d := &testDoc{root: NewRoot()}
	d.frag = d.root.Slot()
	d.frag.AppendText("ab")

	d.p = NewDivision("p")
	d.p.Slot().AppendText("hello")
	d.frag.AppendComponent(d.p)

	d.list = newList("one", "two")
	d.frag.AppendComponent(d.list)

	d.table = NewBackbone("table", "td", 2, 2)
	for i, s := range d.table.Slots() {
		s.AppendText(string(rune('a' + i)))
	}
	d.frag.AppendComponent(d.table)
	d.frag.AppendText("z")
	return d
}

func (d *testDoc) item(i int) *Fragment {
	s, _ := d.list.SlotAt(i)
	return s
}

func (d *testDoc) cell(row, col int) *Fragment {
	s, _ := d.table.Cell(row, col)
	return s
}

func TestAnchorPath(t *testing.T) {
	d := newTestDoc()

	cases := []struct {
		anchor Anchor
		want   []int
	}{
		{anchor: Anchor{d.frag, 5}, want: []int{5}},
		{anchor: Anchor{d.p.Slot(), 3}, want: []int{2, 0, 3}},
		{anchor: Anchor{d.item(1), 1}, want: []int{3, 1, 1}},
		{anchor: Anchor{d.cell(1, 0), 0}, want: []int{4, 2, 0}},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			got := AnchorPath(tc.anchor)
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("path (-want +got):\n%s", diff)
			}

			resolved, err := ResolvePath(got, d.frag)
			if err != nil {
				t.Fatal(err)
			}
			if resolved != tc.anchor {
				t.Errorf("resolved %+v, want %+v", resolved, tc.anchor)
			}
		})
	}
}

func TestPathsAgainstClone(t *testing.T) {
	d := newTestDoc()
	r := &Range{Start: Anchor{d.p.Slot(), 1}, End: Anchor{d.cell(1, 1), 1}}
	paths := r.Paths()

	clone := d.root.Clone()
	start, err := ResolvePath(paths.StartPaths, clone.Slot())
	if err != nil {
		t.Fatal(err)
	}
	end, err := ResolvePath(paths.EndPaths, clone.Slot())
	if err != nil {
		t.Fatal(err)
	}
	if start.Fragment == d.p.Slot() || start.Fragment.Text() != "hello" || start.Index != 1 {
		t.Errorf("start resolved to %q@%d", start.Fragment.Text(), start.Index)
	}
	if end.Fragment.Text() != "d" || end.Index != 1 {
		t.Errorf("end resolved to %q@%d", end.Fragment.Text(), end.Index)
	}
}

func TestResolvePathErrors(t *testing.T) {
	d := newTestDoc()

	cases := []struct {
		path []int
		step int
	}{
		{path: []int{}, step: 0},
		{path: []int{3, 1}, step: 0},
		{path: []int{0, 0, 0}, step: 0},
		{path: []int{2, 1, 0}, step: 1},
		{path: []int{3, 5, 0}, step: 1},
		{path: []int{3, 0, 9}, step: 2},
		{path: []int{9, 0, 0}, step: 0},
	}

	for i, tc := range cases {
		t.Run(fmt.Sprintf("case_%d", i), func(t *testing.T) {
			_, err := ResolvePath(tc.path, d.frag)
			var pathErr *PathResolutionError
			if !errors.As(err, &pathErr) {
				t.Fatalf("got %v, want a path resolution error", err)
			}
			if pathErr.Step != tc.step {
				t.Errorf("failed at step %d, want %d: %v", pathErr.Step, tc.step, err)
			}
			if !errors.Is(err, ErrPathResolution) {
				t.Error("error does not match ErrPathResolution")
			}
		})
	}

	// the list was replaced by a leaf since the path was captured.
	paths := AnchorPath(Anchor{d.item(1), 1})
	_ = d.frag.Delete(3, 4)
	_ = d.frag.InsertComponent(NewLeaf("hr"), 3)
	if _, err := ResolvePath(paths, d.frag); !errors.Is(err, ErrPathResolution) {
		t.Errorf("stale path resolved: %v", err)
	}
}

func TestEncodeRangePaths(t *testing.T) {
	paths := []RangePath{
		{StartPaths: []int{2, 0, 3}, EndPaths: []int{2, 0, 3}},
		{StartPaths: []int{3, 1, 0}, EndPaths: []int{4, 3, 1}},
	}
	data, err := EncodeRangePaths(paths)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := DecodeRangePaths(data)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(paths, decoded); diff != "" {
		t.Errorf("decoded paths (-want +got):\n%s", diff)
	}
}

func TestRangeCommonAncestor(t *testing.T) {
	d := newTestDoc()

	same := &Range{Start: Anchor{d.item(0), 0}, End: Anchor{d.item(0), 2}}
	if same.CommonAncestorFragment() != d.item(0) || same.CommonAncestorComponent() != d.list {
		t.Error("range inside one fragment")
	}

	siblings := &Range{Start: Anchor{d.item(0), 0}, End: Anchor{d.item(1), 2}}
	if siblings.CommonAncestorFragment() != d.frag || siblings.CommonAncestorComponent() != d.list {
		t.Errorf("range across list items: %v", siblings.CommonAncestorComponent())
	}

	across := &Range{Start: Anchor{d.p.Slot(), 1}, End: Anchor{d.cell(0, 1), 0}}
	if across.CommonAncestorFragment() != d.frag || across.CommonAncestorComponent() != d.root {
		t.Error("range across blocks")
	}
}

func TestSelectionCommonAncestor(t *testing.T) {
	d := newTestDoc()

	sel := NewSelection(nil)
	if sel.CommonAncestorFragment() != nil || sel.CommonAncestorComponent() != nil {
		t.Error("empty selection has an ancestor")
	}

	sel.AddRange(&Range{Start: Anchor{d.p.Slot(), 0}, End: Anchor{d.p.Slot(), 2}})
	sel.AddRange(&Range{Start: Anchor{d.p.Slot(), 3}, End: Anchor{d.p.Slot(), 4}})
	if sel.CommonAncestorFragment() != d.p.Slot() {
		t.Error("ranges in one fragment should share it")
	}
	if sel.CommonAncestorComponent() != d.p {
		t.Error("ranges in one fragment should share its component")
	}

	sel.AddRange(NewRange(d.cell(1, 1), 0))
	if sel.CommonAncestorFragment() != d.frag {
		t.Error("ranges in disjoint subtrees should share the root fragment")
	}
	if sel.CommonAncestorComponent() != d.root {
		t.Error("ranges in disjoint subtrees should share the root component")
	}

	// chains of different roots agree on nothing.
	detached := newTextFragment("x")
	sel.AddRange(NewRange(detached, 0))
	if sel.CommonAncestorFragment() != nil {
		t.Error("unrelated trees share an ancestor")
	}
}

type fakeLayer struct {
	ranges []NativeRange
	sel    *Selection
	// echo makes SetNativeRange report a change synchronously.
	echo     bool
	setCalls int
}

func (l *fakeLayer) NativeRanges() []NativeRange { return l.ranges }

func (l *fakeLayer) SetNativeRange(start, end Anchor) {
	l.setCalls++
	l.ranges = []NativeRange{{Start: start, End: end}}
	if l.echo {
		l.sel.Refresh()
	}
}

func (l *fakeLayer) RemoveAllRanges() { l.ranges = nil }

func TestSelectionRestore(t *testing.T) {
	for _, echo := range []bool{false, true} {
		t.Run(fmt.Sprintf("echo_%v", echo), func(t *testing.T) {
			d := newTestDoc()
			layer := &fakeLayer{echo: echo}
			sel := NewSelection(layer)
			layer.sel = sel

			notified := 0
			sel.OnChange(func() { notified++ })

			sel.AddRange(&Range{Start: Anchor{d.item(0), 1}, End: Anchor{d.item(0), 2}})
			sel.AddRange(&Range{Start: Anchor{d.item(1), 0}, End: Anchor{d.item(1), 3}})
			sel.Restore()

			if layer.setCalls != 1 {
				t.Errorf("SetNativeRange called %d times", layer.setCalls)
			}
			if notified != 1 {
				t.Errorf("listeners notified %d times, want 1", notified)
			}
			want := NativeRange{Start: Anchor{d.item(0), 1}, End: Anchor{d.item(1), 3}}
			if len(layer.ranges) != 1 || layer.ranges[0] != want {
				t.Errorf("native range = %+v", layer.ranges)
			}
			// ranges are rebuilt from the native state.
			if sel.RangeCount() != 1 || sel.FirstRange().Start != want.Start || sel.FirstRange().End != want.End {
				t.Errorf("ranges after restore: %+v", sel.Ranges())
			}
		})
	}
}

func TestSelectionRefreshIdempotent(t *testing.T) {
	d := newTestDoc()
	layer := &fakeLayer{ranges: []NativeRange{
		{Start: Anchor{d.frag, 0}, End: Anchor{d.frag, 1}},
		{Start: Anchor{nil, 0}, End: Anchor{d.frag, 1}},
	}}
	sel := NewSelection(layer)

	sel.Refresh()
	first := sel.RangePaths()
	sel.Refresh()
	if diff := cmp.Diff(first, sel.RangePaths()); diff != "" {
		t.Errorf("second refresh differs (-first +second):\n%s", diff)
	}
	if sel.RangeCount() != 1 {
		t.Errorf("ranges without fragment should be skipped, got %d", sel.RangeCount())
	}

	sel.RemoveAllRanges(true)
	if sel.RangeCount() != 0 || layer.ranges != nil {
		t.Error("RemoveAllRanges did not clear")
	}
}

func TestSelectionUsePaths(t *testing.T) {
	d := newTestDoc()
	sel := NewSelection(nil)
	sel.AddRange(&Range{Start: Anchor{d.p.Slot(), 2}, End: Anchor{d.p.Slot(), 4}})
	sel.AddRange(&Range{Start: Anchor{d.item(1), 0}, End: Anchor{d.cell(0, 1), 1}})
	paths := sel.RangePaths()

	restored := NewSelection(nil)
	if err := restored.UsePaths(paths, d.frag); err != nil {
		t.Fatal(err)
	}
	r := restored.FirstRange()
	if restored.RangeCount() != 1 || r.Start != (Anchor{d.p.Slot(), 2}) || r.End != (Anchor{d.cell(0, 1), 1}) {
		t.Errorf("UsePaths produced %+v", restored.Ranges())
	}

	collapsed := NewSelection(nil)
	collapsed.AddRange(NewRange(d.item(0), 2))
	cp := collapsed.RangePaths()
	if err := restored.UsePaths(cp, d.frag); err != nil {
		t.Fatal(err)
	}
	if !restored.Collapsed() {
		t.Error("collapsed paths did not restore a collapsed range")
	}

	before := restored.FirstRange()
	if err := restored.UsePaths([]RangePath{{StartPaths: []int{1, 0, 0}, EndPaths: []int{1, 0, 0}}}, d.frag); !errors.Is(err, ErrPathResolution) {
		t.Errorf("UsePaths through text: %v", err)
	}
	if restored.FirstRange() != before {
		t.Error("failed UsePaths replaced the ranges")
	}
}

func TestSelectionClone(t *testing.T) {
	d := newTestDoc()
	sel := NewSelection(nil)
	sel.AddRange(NewRange(d.frag, 1))

	clone := sel.Clone()
	if clone.FirstRange() == sel.FirstRange() {
		t.Fatal("clone shares range objects")
	}
	if clone.FirstRange().Start.Fragment != d.frag {
		t.Error("clone does not share anchor fragments")
	}
	clone.FirstRange().Collapse(false)
	_ = clone.FirstRange().SetEnd(d.frag, 3)
	if sel.FirstRange().End.Index != 1 {
		t.Error("mutating the clone changed the original")
	}
}

func TestSuccessiveContents(t *testing.T) {
	d := newTestDoc()

	type span struct {
		Text       string
		Start, End int
	}
	flatten := func(scopes []Scope) []span {
		var out []span
		for _, s := range scopes {
			out = append(out, span{Text: s.Fragment.Text(), Start: s.StartIndex, End: s.EndIndex})
		}
		return out
	}

	r := &Range{Start: Anchor{d.p.Slot(), 2}, End: Anchor{d.item(1), 2}}
	want := []span{{"hello", 2, 5}, {"one", 0, 3}, {"two", 0, 2}}
	if diff := cmp.Diff(want, flatten(r.SuccessiveContents(nil))); diff != "" {
		t.Errorf("range scopes (-want +got):\n%s", diff)
	}

	all := d.frag.SuccessiveContents(nil)
	if len(all) != 9 {
		t.Errorf("got %d scopes for the whole document: %+v", len(all), flatten(all))
	}

	onlyLists := func(c *Component) bool { return c.Variant() == Branch }
	rootText := d.frag.Text()
	want = []span{{rootText, 0, 3}, {"one", 0, 3}, {"two", 0, 3}, {rootText, 4, 6}}
	if diff := cmp.Diff(want, flatten(d.frag.SuccessiveContents(onlyLists))); diff != "" {
		t.Errorf("list boundary scopes (-want +got):\n%s", diff)
	}

	never := func(*Component) bool { return false }
	want = []span{{"hello", 2, 5}, {"one", 0, 3}, {"two", 0, 2}}
	if diff := cmp.Diff(want, flatten(r.SuccessiveContents(never))); diff != "" {
		t.Errorf("anchors inside rejected containers (-want +got):\n%s", diff)
	}

	r = &Range{Start: Anchor{d.frag, 1}, End: Anchor{d.cell(1, 1), 1}}
	want = []span{{rootText, 1, 3}, {"one", 0, 3}, {"two", 0, 3}, {"a", 0, 1}, {"b", 0, 1}, {"c", 0, 1}, {"d", 0, 1}}
	if diff := cmp.Diff(want, flatten(r.SuccessiveContents(onlyLists))); diff != "" {
		t.Errorf("end inside rejected table (-want +got):\n%s", diff)
	}

	collapsed := NewRange(d.item(0), 1)
	if got := collapsed.SuccessiveContents(nil); len(got) != 1 || got[0].StartIndex != 1 || got[0].EndIndex != 1 {
		t.Errorf("collapsed range scopes: %+v", got)
	}
}
