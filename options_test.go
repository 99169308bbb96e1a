package gvdoc

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadOptions(t *testing.T) {
	src := `
listExitTag: div
findSkipTags: [pre, code]
cleanExclude: [link]
historyRecording: false
renderDelay: 20ms
markdown:
  gfm: false
`
	opts, err := LoadOptions(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	want := Options{
		ListExitTag:  "div",
		FindSkipTags: []string{"pre", "code"},
		CleanExclude: []string{"link"},
		RenderDelay:  20 * time.Millisecond,
	}
	if diff := cmp.Diff(want, opts); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}
}

func TestLoadOptionsDefaults(t *testing.T) {
	opts, err := LoadOptions(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(DefaultOptions(), opts); diff != "" {
		t.Errorf("options (-want +got):\n%s", diff)
	}

	opts, err = LoadOptions(strings.NewReader("cleanExclude: [color]\n"))
	if err != nil {
		t.Fatal(err)
	}
	if opts.ListExitTag != "p" || !opts.HistoryRecording || opts.CleanExclude[0] != "color" {
		t.Errorf("partial options = %+v", opts)
	}
}

func TestLoadOptionsUnknownKey(t *testing.T) {
	if _, err := LoadOptions(strings.NewReader("listExit: p\n")); err == nil {
		t.Error("unknown key accepted")
	}
}
