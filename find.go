package gvdoc

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"

	"github.com/oligo/gvdoc/core"
)

// Match is a search result: atoms [Start, End) of Fragment.
type Match struct {
	Fragment *core.Fragment
	Start    int
	End      int
}

// Finder searches the text of a document. Matches never span a component,
// and components tagged with one of SkipTags are not searched.
type Finder struct {
	// Term is the text or pattern to search for.
	Term string
	// CaseSensitive controls case sensitivity for the search
	CaseSensitive bool
	// Regex makes Term a regular expression.
	Regex    bool
	SkipTags []string
	// Results stores the matches from the last search in document order.
	Results []Match
	// Current is the index of the current match.
	Current int
}

// NewFinder returns a finder honouring the FindSkipTags option.
func (e *Editor) NewFinder(term string) *Finder {
	return &Finder{Term: term, SkipTags: slices.Clone(e.opts.FindSkipTags)}
}

// Search runs the search over root and resets the current match.
func (fd *Finder) Search(root *core.Fragment) error {
	fd.Results = fd.Results[:0]
	fd.Current = 0
	if fd.Term == "" {
		return nil
	}

	var re *regexp.Regexp
	if fd.Regex || !fd.CaseSensitive {
		pattern := fd.Term
		if !fd.Regex {
			pattern = regexp.QuoteMeta(pattern)
		}
		var regexFlags string
		if !fd.CaseSensitive {
			regexFlags = "(?i)"
		}
		var err error
		if re, err = regexp.Compile(regexFlags + pattern); err != nil {
			return fmt.Errorf("gvdoc: find: %w", err)
		}
	}

	locate := func(text string) [][]int {
		if re != nil {
			return re.FindAllStringIndex(text, -1)
		}
		return searchWithString(text, fd.Term)
	}
	fd.search(root, locate)
	return nil
}

// searchWithString returns the byte offsets of the non overlapping
// occurrences of term in text.
func searchWithString(text, term string) [][]int {
	var matches [][]int
	var pos int
	for {
		found := strings.Index(text[pos:], term)
		if found == -1 {
			break
		}
		matchPos := pos + found
		matches = append(matches, []int{matchPos, matchPos + len(term)})
		pos = matchPos + len(term)
	}
	return matches
}

func (fd *Finder) search(f *core.Fragment, locate func(string) [][]int) {
	text := f.Text()
	var local []Match
	for _, loc := range locate(text) {
		found := text[loc[0]:loc[1]]
		if found == "" || strings.ContainsRune(found, core.ObjectReplacement) {
			continue
		}
		start := utf8.RuneCountInString(text[:loc[0]])
		local = append(local, Match{Fragment: f, Start: start, End: start + utf8.RuneCountInString(found)})
	}

	next := 0
	for _, c := range f.Components() {
		if !c.IsContainer() || slices.Contains(fd.SkipTags, c.Tag) {
			continue
		}
		at := f.IndexOf(c)
		for next < len(local) && local[next].Start < at {
			fd.Results = append(fd.Results, local[next])
			next++
		}
		for _, slot := range c.Slots() {
			fd.search(slot, locate)
		}
	}
	fd.Results = append(fd.Results, local[next:]...)
}

// NextMatch moves to the next match, wrapping around.
func (fd *Finder) NextMatch() (Match, bool) {
	if len(fd.Results) == 0 {
		return Match{}, false
	}
	fd.Current = (fd.Current + 1) % len(fd.Results)
	return fd.Results[fd.Current], true
}

// PrevMatch moves to the previous match, wrapping around.
func (fd *Finder) PrevMatch() (Match, bool) {
	if len(fd.Results) == 0 {
		return Match{}, false
	}
	fd.Current = (fd.Current - 1 + len(fd.Results)) % len(fd.Results)
	return fd.Results[fd.Current], true
}

// SelectMatch makes m the selection.
func (e *Editor) SelectMatch(m Match) error {
	return e.Select(m.Fragment, m.Start, m.End)
}

// ReplaceCommand replaces the current match of Finder, or every match with
// All. The finder is searched again afterwards.
type ReplaceCommand struct {
	Finder      *Finder
	Replacement string
	All         bool
}

func (c *ReplaceCommand) Name() string {
	if c.All {
		return "replaceAll"
	}
	return "replace"
}

func (c *ReplaceCommand) Execute(ctx *Context) (bool, error) {
	fd := c.Finder
	if len(fd.Results) == 0 {
		return false, nil
	}
	matches := fd.Results
	if !c.All {
		matches = matches[fd.Current : fd.Current+1]
	}
	// later matches first so earlier offsets stay valid.
	for i := len(matches) - 1; i >= 0; i-- {
		if err := replace(matches[i], c.Replacement); err != nil {
			return true, err
		}
	}
	current := fd.Current
	if err := fd.Search(ctx.Root.Slot()); err != nil {
		return true, err
	}
	if !c.All && len(fd.Results) > 0 {
		fd.Current = current % len(fd.Results)
	}
	return true, nil
}

func replace(m Match, replacement string) error {
	if err := m.Fragment.Delete(m.Start, m.End); err != nil {
		return err
	}
	if replacement == "" {
		return nil
	}
	return m.Fragment.InsertText(replacement, m.Start)
}
