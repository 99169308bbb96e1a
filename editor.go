// Package gvdoc is a structured rich text document model. An Editor holds a
// tree of components and fragments, a selection over it, and runs commands
// that edit the tree before a coalesced render.
package gvdoc

import (
	"errors"
	"fmt"
	"io"

	"github.com/oligo/gvdoc/components"
	"github.com/oligo/gvdoc/core"
	"github.com/oligo/gvdoc/internal/schedule"
	"github.com/oligo/gvdoc/parser"
	"github.com/oligo/gvdoc/parser/htmlsrc"
	"github.com/oligo/gvdoc/parser/mdsrc"
)

const renderKey = "render"

// Renderer builds the presentation of a document. It is only called from
// Editor.Flush.
type Renderer interface {
	Render(root *core.Component)
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(root *core.Component)

func (f RendererFunc) Render(root *core.Component) { f(root) }

// Snapshot is a detached copy of the document and the paths of the
// selection ranges taken after an edit.
type Snapshot struct {
	Root  *core.Component
	Paths []core.RangePath
}

// HistoryRecorder receives a snapshot after every command that changed the
// document.
type HistoryRecorder interface {
	Record(command string, s Snapshot)
}

// Editor owns a document and the selection over it. It is not safe for
// concurrent use; commands, flushes and anchor notifications are expected on
// a single goroutine.
type Editor struct {
	opts      Options
	root      *core.Component
	selection *core.Selection
	renderer  Renderer
	history   HistoryRecorder
	queue     *schedule.Queue
	parser    *parser.Parser
}

// NewEditor creates an editor with an empty document. layer supplies the
// native anchors and may be nil.
func NewEditor(layer core.AnchorLayer, renderer Renderer, opts Options) *Editor {
	e := &Editor{
		opts:      opts,
		root:      core.NewRoot(),
		selection: core.NewSelection(layer),
		renderer:  renderer,
		queue:     schedule.NewQueue(opts.RenderDelay),
		parser:    components.NewParser(),
	}
	e.selection.AddRange(core.NewRange(e.root.Slot(), 0))
	return e
}

func (e *Editor) Root() *core.Component {
	return e.root
}

// Document returns the root fragment.
func (e *Editor) Document() *core.Fragment {
	return e.root.Slot()
}

func (e *Editor) Selection() *core.Selection {
	return e.selection
}

func (e *Editor) Options() Options {
	return e.opts
}

// SetOptions replaces the options. A changed RenderDelay applies from the
// next scheduled render.
func (e *Editor) SetOptions(opts Options) {
	e.opts = opts
	e.queue.SetDelay(opts.RenderDelay)
}

func (e *Editor) SetHistory(h HistoryRecorder) {
	e.history = h
}

// LoadHTML replaces the document with the content of an HTML fragment.
func (e *Editor) LoadHTML(r io.Reader) error {
	node, err := htmlsrc.Parse(r)
	if err != nil {
		return fmt.Errorf("gvdoc: load html: %w", err)
	}
	e.load(node)
	return nil
}

// LoadMarkdown replaces the document with the content of a Markdown source.
func (e *Editor) LoadMarkdown(src []byte) {
	e.load(mdsrc.New(e.opts.Markdown.GFM).Parse(src))
}

func (e *Editor) load(n parser.Node) {
	doc := e.root.Slot()
	doc.Clean()
	e.parser.ParseInto(n, doc)
	e.selection.RemoveAllRanges(false)
	e.selection.AddRange(core.NewRange(doc, 0))
	logger.Debug("document loaded", "atoms", doc.Len())
	e.scheduleRender()
}

// Exec runs cmd synchronously. When the document changed a snapshot is
// handed to the history recorder and a render is scheduled.
func (e *Editor) Exec(cmd Command) error {
	logger.Debug("exec", "command", cmd.Name())
	changed, err := cmd.Execute(&Context{
		Root:      e.root,
		Selection: e.selection,
		Options:   &e.opts,
	})
	if err != nil {
		return fmt.Errorf("gvdoc: %s: %w", cmd.Name(), err)
	}
	if !changed {
		return nil
	}
	if e.history != nil && e.opts.HistoryRecording {
		e.history.Record(cmd.Name(), e.Snapshot())
	}
	e.scheduleRender()
	return nil
}

func (e *Editor) scheduleRender() {
	e.queue.Defer(renderKey, e.render)
}

func (e *Editor) render() {
	if e.renderer != nil {
		e.renderer.Render(e.root)
	}
	e.selection.Restore()
}

// Ready is signalled when a delayed render is due. Hosts call Flush on their
// own goroutine in response.
func (e *Editor) Ready() <-chan struct{} {
	return e.queue.Ready()
}

// Flush runs the pending render, if any, and pushes the selection back to
// the anchor layer afterwards. It reports whether a render happened.
func (e *Editor) Flush() bool {
	n := e.queue.Flush()
	if n > 0 {
		logger.Debug("render flushed", "tasks", n)
	}
	return n > 0
}

// Snapshot copies the document and records the selection paths.
func (e *Editor) Snapshot() Snapshot {
	return Snapshot{
		Root:  e.root.Clone(),
		Paths: e.selection.RangePaths(),
	}
}

// RestorePaths re-resolves paths against the current document and makes
// them the selection. Paths that no longer resolve are logged and false is
// returned so the caller can discard them; the selection is left untouched.
func (e *Editor) RestorePaths(paths []core.RangePath) bool {
	err := e.selection.UsePaths(paths, e.root.Slot())
	if err == nil {
		e.scheduleRender()
		return true
	}
	var pathErr *core.PathResolutionError
	if errors.As(err, &pathErr) {
		logger.Warn("discarding unresolvable range paths", "path", pathErr.Path, "step", pathErr.Step, "reason", pathErr.Reason)
		return false
	}
	logger.Error("restore range paths", "error", err)
	return false
}

// Restore replaces the document with a copy of the snapshot and re-resolves
// its paths. It reports whether the selection could be restored too.
func (e *Editor) Restore(s Snapshot) bool {
	doc := e.root.Slot()
	doc.Clean()
	if s.Root != nil && s.Root.Slot() != nil {
		doc.From(s.Root.Clone().Slot())
	}
	e.selection.RemoveAllRanges(false)
	e.selection.AddRange(core.NewRange(doc, 0))
	e.scheduleRender()
	return e.RestorePaths(s.Paths)
}

// Select replaces the selection with [start, end) of f. It is pushed to the
// anchor layer on the next flush.
func (e *Editor) Select(f *core.Fragment, start, end int) error {
	r := core.NewRange(f, start)
	if err := r.SetStart(f, start); err != nil {
		return err
	}
	if err := r.SetEnd(f, end); err != nil {
		return err
	}
	e.selection.RemoveAllRanges(false)
	e.selection.AddRange(r)
	e.scheduleRender()
	return nil
}
