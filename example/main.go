package main

import (
	_ "embed"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/oligo/gvdoc"
	"github.com/oligo/gvdoc/components"
	"github.com/oligo/gvdoc/core"
	"github.com/oligo/gvdoc/internal/codec"
)

//go:embed sample.md
var sample []byte

var (
	optionsFile = flag.String("options", "", "YAML options file")
	inputFile   = flag.String("input", "", "Markdown document, the built in sample when empty")
	verbose     = flag.Bool("v", false, "log editor activity")
)

// treePrinter renders the document as an indented outline.
type treePrinter struct {
	b strings.Builder
}

func (p *treePrinter) Render(root *core.Component) {
	p.b.Reset()
	p.fragment(root.Slot(), 0)
}

func (p *treePrinter) fragment(f *core.Fragment, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, run := range f.Contents() {
		if !run.IsEmbed() {
			fmt.Fprintf(&p.b, "%s%q\n", indent, run.Text())
			continue
		}
		c := run.Embed()
		fmt.Fprintf(&p.b, "%s<%s> %s\n", indent, c.Tag, c.Variant())
		c.Render(func(slot *core.Fragment, hint core.ContainerHint) core.View {
			fmt.Fprintf(&p.b, "%s  [%s]\n", indent, hint.Tag)
			p.fragment(slot, depth+2)
			return nil
		})
	}
	for _, run := range f.FormatRuns() {
		if len(run.Formats) == 0 {
			continue
		}
		names := make([]string, 0, len(run.Formats))
		for _, span := range run.Formats {
			names = append(names, span.Formatter.Name())
		}
		fmt.Fprintf(&p.b, "%s@%d-%d %s\n", indent, run.Start, run.End, strings.Join(names, ","))
	}
}

func loadOptions() gvdoc.Options {
	if *optionsFile == "" {
		return gvdoc.DefaultOptions()
	}
	f, err := os.Open(*optionsFile)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()
	opts, err := gvdoc.LoadOptions(f)
	if err != nil {
		log.Fatal(err)
	}
	return opts
}

func main() {
	flag.Parse()
	log.SetFlags(log.Flags() | log.Lshortfile)
	if *verbose {
		slog.SetLogLoggerLevel(slog.LevelDebug)
		gvdoc.SetLogger(slog.Default())
	}

	src := sample
	if *inputFile != "" {
		data, err := os.ReadFile(*inputFile)
		if err != nil {
			log.Fatal(err)
		}
		src = data
	}

	printer := &treePrinter{}
	editor := gvdoc.NewEditor(nil, printer, loadOptions())
	editor.LoadMarkdown(src)
	editor.Flush()
	fmt.Print(printer.b.String())

	finder := editor.NewFinder("gvdoc")
	if err := finder.Search(editor.Document()); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("\n%d matches for %q\n", len(finder.Results), finder.Term)
	if len(finder.Results) == 0 {
		return
	}

	if err := editor.SelectMatch(finder.Results[0]); err != nil {
		log.Fatal(err)
	}
	if err := editor.Exec(&gvdoc.FormatCommand{Formatter: components.Bold, Toggle: true}); err != nil {
		log.Fatal(err)
	}
	editor.Flush()

	paths := editor.Selection().RangePaths()
	encoded, err := core.EncodeRangePaths(paths)
	if err != nil {
		log.Fatal(err)
	}
	state := gvdoc.QueryFormatState(editor.Selection(), components.Bold)
	fmt.Printf("selection paths %v (%d bytes as CBOR), bold state %s\n", paths, len(encoded), state.State)
	if *verbose {
		diag, err := codec.Diagnose(encoded)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(diag)
	}
}
