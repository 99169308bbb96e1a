package gvdoc

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/oligo/gvdoc/components"
	"github.com/oligo/gvdoc/core"
)

type countingRenderer struct {
	calls int
}

func (r *countingRenderer) Render(root *core.Component) { r.calls++ }

type recorder struct {
	names     []string
	snapshots []Snapshot
}

func (r *recorder) Record(name string, s Snapshot) {
	r.names = append(r.names, name)
	r.snapshots = append(r.snapshots, s)
}

func newEditor(t *testing.T, markup string) (*Editor, *countingRenderer) {
	t.Helper()
	r := &countingRenderer{}
	e := NewEditor(nil, r, DefaultOptions())
	if err := e.LoadHTML(strings.NewReader(markup)); err != nil {
		t.Fatal(err)
	}
	e.Flush()
	r.calls = 0
	return e, r
}

func block(e *Editor, i int) *core.Fragment {
	return e.Document().ComponentAt(i).Slot()
}

func selectRange(e *Editor, start, end core.Anchor) {
	sel := e.Selection()
	sel.RemoveAllRanges(false)
	sel.AddRange(&core.Range{Start: start, End: end})
}

func TestExecCoalescesRender(t *testing.T) {
	e, r := newEditor(t, `<p>hello world</p>`)
	p := block(e, 0)
	if err := e.Select(p, 0, 5); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		err := e.Exec(&FormatCommand{Formatter: components.Bold, Data: components.Bold.Data(""), Toggle: true})
		if err != nil {
			t.Fatal(err)
		}
	}
	if r.calls != 0 {
		t.Fatalf("rendered before flush: %d", r.calls)
	}
	if !e.Flush() || r.calls != 1 {
		t.Fatalf("render calls after flush = %d", r.calls)
	}
	if e.Flush() {
		t.Error("second flush had pending work")
	}

	want := []core.FormatRange{{Start: 0, End: 5, Data: &core.FormatData{Tag: "strong"}}}
	if diff := cmp.Diff(want, p.FormatRanges(components.Bold)); diff != "" {
		t.Errorf("bold ranges (-want +got):\n%s", diff)
	}
	// the selection survives the restore after render.
	if got := e.Selection().FirstRange(); got == nil || got.Start != (core.Anchor{Fragment: p, Index: 0}) {
		t.Errorf("selection after flush: %+v", got)
	}
}

func TestSetOptionsRenderDelay(t *testing.T) {
	e, r := newEditor(t, `<p>hello</p>`)
	opts := e.Options()
	opts.RenderDelay = 5 * time.Millisecond
	e.SetOptions(opts)
	if e.Options().RenderDelay != opts.RenderDelay {
		t.Fatalf("RenderDelay = %v", e.Options().RenderDelay)
	}

	if err := e.Select(block(e, 0), 0, 5); err != nil {
		t.Fatal(err)
	}
	select {
	case <-e.Ready():
		if !e.Flush() || r.calls != 1 {
			t.Errorf("render calls = %d", r.calls)
		}
	case <-time.After(time.Second):
		t.Fatal("delayed render never became ready")
	}
}

func TestHistoryAndRestore(t *testing.T) {
	e, _ := newEditor(t, `<p>hello world</p>`)
	rec := &recorder{}
	e.SetHistory(rec)

	if err := e.Select(block(e, 0), 0, 5); err != nil {
		t.Fatal(err)
	}
	if err := e.Exec(&FormatCommand{Formatter: components.Bold}); err != nil {
		t.Fatal(err)
	}
	if err := e.Exec(&DeleteCommand{}); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"format:bold", "delete"}, rec.names); diff != "" {
		t.Fatalf("recorded commands (-want +got):\n%s", diff)
	}
	if got := block(e, 0).Text(); got != " world" {
		t.Fatalf("after delete: %q", got)
	}

	first := rec.snapshots[0]
	wantPaths := []core.RangePath{{StartPaths: []int{0, 0, 0}, EndPaths: []int{0, 0, 5}}}
	if diff := cmp.Diff(wantPaths, first.Paths); diff != "" {
		t.Errorf("snapshot paths (-want +got):\n%s", diff)
	}

	if !e.Restore(first) {
		t.Fatal("snapshot paths did not resolve")
	}
	p := block(e, 0)
	if p.Text() != "hello world" || len(p.FormatRanges(components.Bold)) != 1 {
		t.Errorf("restored document: %q %+v", p.Text(), p.FormatRanges(components.Bold))
	}
	r := e.Selection().FirstRange()
	if r.Start != (core.Anchor{Fragment: p, Index: 0}) || r.End != (core.Anchor{Fragment: p, Index: 5}) {
		t.Errorf("restored range: %+v", r)
	}
	// restoring must not alias the recorded snapshot.
	if first.Root.Slot().ComponentAt(0).Slot() == p {
		t.Error("document shares fragments with the snapshot")
	}
}

func TestHistoryDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.HistoryRecording = false
	e := NewEditor(nil, nil, opts)
	rec := &recorder{}
	e.SetHistory(rec)
	e.LoadMarkdown([]byte("hello\n"))

	if err := e.Select(block(e, 0), 0, 1); err != nil {
		t.Fatal(err)
	}
	if err := e.Exec(&DeleteCommand{}); err != nil {
		t.Fatal(err)
	}
	if len(rec.names) != 0 {
		t.Errorf("recorded %v with history disabled", rec.names)
	}
}

func TestRestorePathsDiscardsUnresolvable(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(slog.Default())

	e, _ := newEditor(t, `<p>ab</p>`)
	before := e.Selection().FirstRange()

	stale := []core.RangePath{{StartPaths: []int{3, 0, 0}, EndPaths: []int{3, 0, 0}}}
	if e.RestorePaths(stale) {
		t.Fatal("stale paths resolved")
	}
	if e.Selection().FirstRange() != before {
		t.Error("selection replaced by a failed restore")
	}
	if !strings.Contains(buf.String(), "discarding unresolvable range paths") {
		t.Errorf("no warning logged: %q", buf.String())
	}

	valid := []core.RangePath{{StartPaths: []int{0, 0, 1}, EndPaths: []int{0, 0, 2}}}
	if !e.RestorePaths(valid) {
		t.Fatal("valid paths rejected")
	}
	r := e.Selection().FirstRange()
	if r.Start.Fragment != block(e, 0) || r.Start.Index != 1 || r.End.Index != 2 {
		t.Errorf("restored range: %+v", r)
	}
}

func TestLoadMarkdown(t *testing.T) {
	e := NewEditor(nil, nil, DefaultOptions())
	e.LoadMarkdown([]byte("# Title\n\n- one\n- two\n"))

	var tags []string
	for _, c := range e.Document().Components() {
		tags = append(tags, c.Tag)
	}
	if diff := cmp.Diff([]string{"h1", "ul"}, tags); diff != "" {
		t.Fatalf("components (-want +got):\n%s", diff)
	}
	var items []string
	for _, s := range e.Document().ComponentAt(1).Slots() {
		items = append(items, s.Text())
	}
	if diff := cmp.Diff([]string{"one", "two"}, items); diff != "" {
		t.Errorf("items (-want +got):\n%s", diff)
	}
	if r := e.Selection().FirstRange(); r == nil || r.Start.Fragment != e.Document() {
		t.Errorf("selection after load: %+v", r)
	}
}

func TestExecWrapsErrors(t *testing.T) {
	e := NewEditor(nil, nil, DefaultOptions())
	e.Selection().RemoveAllRanges(false)
	err := e.Exec(&EnterCommand{})
	if err == nil || !strings.Contains(err.Error(), "enter") {
		t.Fatalf("err = %v", err)
	}
}
