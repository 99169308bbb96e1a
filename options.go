package gvdoc

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Options configures an Editor.
type Options struct {
	// ListExitTag is the block tag created when Enter leaves a list or
	// continues after a heading.
	ListExitTag string `yaml:"listExitTag"`
	// FindSkipTags lists component tags whose content is not searched.
	FindSkipTags []string `yaml:"findSkipTags"`
	// CleanExclude lists formatter names the clean command leaves alone.
	CleanExclude []string `yaml:"cleanExclude"`
	// HistoryRecording enables snapshots for the history recorder.
	HistoryRecording bool `yaml:"historyRecording"`
	// RenderDelay is how long a render waits for further edits. Zero renders
	// on the next explicit flush.
	RenderDelay time.Duration  `yaml:"renderDelay"`
	Markdown    MarkdownOption `yaml:"markdown"`
}

type MarkdownOption struct {
	// GFM enables tables, strikethrough, task lists and autolinks.
	GFM bool `yaml:"gfm"`
}

func DefaultOptions() Options {
	return Options{
		ListExitTag:      "p",
		FindSkipTags:     []string{"pre"},
		HistoryRecording: true,
		Markdown:         MarkdownOption{GFM: true},
	}
}

// LoadOptions reads YAML options from r. Keys missing from the document
// keep their default value and unknown keys are rejected.
func LoadOptions(r io.Reader) (Options, error) {
	opts := DefaultOptions()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&opts); err != nil && !errors.Is(err, io.EOF) {
		return Options{}, fmt.Errorf("gvdoc: load options: %w", err)
	}
	if opts.ListExitTag == "" {
		opts.ListExitTag = "p"
	}
	return opts, nil
}
