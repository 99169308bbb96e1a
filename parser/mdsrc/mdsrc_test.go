package mdsrc

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/oligo/gvdoc/parser"
)

// outline renders the element structure of n as nested tag names.
func outline(n parser.Node) []string {
	var tags []string
	for _, c := range n.Children() {
		if c.Type() == parser.ElementNode {
			tags = append(tags, c.Tag())
		}
	}
	return tags
}

func TestBlocks(t *testing.T) {
	src := []byte("# Title\n\nSome *soft*\nwrapped **text**.\n\n- one\n- two\n\n> quote\n\n```go\nfmt.Println()\n```\n")
	root := New(true).Parse(src)

	if diff := cmp.Diff([]string{"h1", "p", "ul", "blockquote", "pre"}, outline(root)); diff != "" {
		t.Fatalf("blocks (-want +got):\n%s", diff)
	}

	p := root.Children()[1]
	if got := parser.TextContent(p); got != "Some soft wrapped text." {
		t.Errorf("paragraph text = %q", got)
	}
	if diff := cmp.Diff([]string{"em", "strong"}, outline(p)); diff != "" {
		t.Errorf("inline (-want +got):\n%s", diff)
	}

	list := root.Children()[2]
	if diff := cmp.Diff([]string{"li", "li"}, outline(list)); diff != "" {
		t.Errorf("list (-want +got):\n%s", diff)
	}
	// tight items hold their text directly.
	if item := list.Children()[0]; len(item.Children()) != 1 || item.Children()[0].Text() != "one" {
		t.Errorf("list item: %+v", item.Children())
	}

	pre := root.Children()[4]
	if lang, _ := pre.Attr("lang"); lang != "go" || parser.TextContent(pre) != "fmt.Println()" {
		t.Errorf("code block: lang %q text %q", lang, parser.TextContent(pre))
	}
}

func TestTable(t *testing.T) {
	src := []byte("| a | b |\n|---|:-:|\n| 1 | 2 |\n")

	root := New(true).Parse(src)
	if diff := cmp.Diff([]string{"table"}, outline(root)); diff != "" {
		t.Fatalf("blocks (-want +got):\n%s", diff)
	}
	table := root.Children()[0]
	if len(table.Children()) != 2 {
		t.Fatalf("rows = %d", len(table.Children()))
	}
	header, body := table.Children()[0], table.Children()[1]
	if diff := cmp.Diff([]string{"th", "th"}, outline(header)); diff != "" {
		t.Errorf("header (-want +got):\n%s", diff)
	}
	if align, _ := parser.Style(body.Children()[1], "text-align"); align != "center" {
		t.Errorf("cell alignment = %q", align)
	}

	// without GFM the table stays a paragraph.
	plain := New(false).Parse(src)
	if diff := cmp.Diff([]string{"p"}, outline(plain)); diff != "" {
		t.Errorf("plain blocks (-want +got):\n%s", diff)
	}
}

func TestInlineLinks(t *testing.T) {
	root := New(true).Parse([]byte("see [docs](https://example.com \"Docs\") and ~~old~~ ![logo](logo.png)\n"))
	p := root.Children()[0]
	if diff := cmp.Diff([]string{"a", "del", "img"}, outline(p)); diff != "" {
		t.Fatalf("inline (-want +got):\n%s", diff)
	}
	a := p.Children()[1]
	if href, _ := a.Attr("href"); href != "https://example.com" {
		t.Errorf("href = %q", href)
	}
	img := p.Children()[len(p.Children())-1]
	if alt, _ := img.Attr("alt"); alt != "logo" {
		t.Errorf("alt = %q", alt)
	}
}
