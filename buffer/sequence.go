package buffer

import (
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Run is a single piece of content in a Sequence. A text run covers one atom
// per rune, an embed run covers exactly one atom regardless of what the
// embedded element contains.
type Run[E any] struct {
	text string
	// length is the rune length of text.
	length  int
	embed   E
	isEmbed bool
}

// TextRun creates a run of text atoms.
func TextRun[E any](text string) Run[E] {
	return Run[E]{text: text, length: utf8.RuneCountInString(text)}
}

// EmbedRun creates a run holding a single embedded element.
func EmbedRun[E any](e E) Run[E] {
	return Run[E]{embed: e, isEmbed: true}
}

// Len returns the number of atoms covered by the run.
func (r Run[E]) Len() int {
	if r.isEmbed {
		return 1
	}
	return r.length
}

func (r Run[E]) IsEmbed() bool {
	return r.isEmbed
}

// Text returns the text of a text run, or an empty string for embeds.
func (r Run[E]) Text() string {
	return r.text
}

// Embed returns the embedded element. The zero value is returned for text runs.
func (r Run[E]) Embed() E {
	return r.embed
}

// slice returns the sub run covering atoms [from, to) of a text run.
func (r Run[E]) slice(from, to int) Run[E] {
	if r.isEmbed {
		return r
	}
	if from == 0 && to == r.length {
		return r
	}
	startByte := runeOffset(r.text, from)
	endByte := startByte + runeOffset(r.text[startByte:], to-from)
	return Run[E]{text: r.text[startByte:endByte], length: to - from}
}

// runeOffset converts a rune offset in s to a byte offset.
func runeOffset(s string, runes int) int {
	off := 0
	for i := 0; i < runes && off < len(s); i++ {
		_, size := utf8.DecodeRuneInString(s[off:])
		off += size
	}
	return off
}

// Sequence is an ordered list of atoms stored as runs. Adjacent text runs are
// always coalesced, so the run list stays as short as the content allows.
// All offsets are measured in atoms.
type Sequence[E comparable] struct {
	runs []Run[E]
	// total number of atoms.
	length int
}

func NewSequence[E comparable]() *Sequence[E] {
	return &Sequence[E]{}
}

// Len returns the number of atoms in the sequence.
func (s *Sequence[E]) Len() int {
	return s.length
}

// Runs returns a copy of the runs in order.
func (s *Sequence[E]) Runs() []Run[E] {
	return slices.Clone(s.runs)
}

// Clear removes all content.
func (s *Sequence[E]) Clear() {
	s.runs = s.runs[:0]
	s.length = 0
}

// findRun locates the run containing atom pos.
// Returns (runIndex, offsetWithinRun). When pos == Len, returns (len(runs), 0).
func (s *Sequence[E]) findRun(pos int) (int, int) {
	accum := 0
	for i, r := range s.runs {
		if pos < accum+r.Len() {
			return i, pos - accum
		}
		accum += r.Len()
	}
	return len(s.runs), 0
}

// splitAt makes sure a run boundary exists at pos and returns the index of
// the first run starting at pos.
func (s *Sequence[E]) splitAt(pos int) int {
	idx, off := s.findRun(pos)
	if off == 0 {
		return idx
	}

	// Only text runs can be split in the middle.
	r := s.runs[idx]
	left := r.slice(0, off)
	right := r.slice(off, r.length)
	s.runs[idx] = left
	s.runs = slices.Insert(s.runs, idx+1, right)
	return idx + 1
}

// coalesce merges adjacent text runs and drops empty ones.
func (s *Sequence[E]) coalesce() {
	if len(s.runs) == 0 {
		return
	}
	out := s.runs[:0]
	for _, r := range s.runs {
		if !r.isEmbed && r.length == 0 {
			continue
		}
		if n := len(out); n > 0 && !r.isEmbed && !out[n-1].isEmbed {
			prev := out[n-1]
			out[n-1] = Run[E]{text: prev.text + r.text, length: prev.length + r.length}
			continue
		}
		out = append(out, r)
	}
	s.runs = out
}

// Insert inserts runs at atom position pos. It returns false if pos is
// outside [0, Len].
func (s *Sequence[E]) Insert(pos int, runs ...Run[E]) bool {
	if pos < 0 || pos > s.length {
		return false
	}

	added := 0
	for _, r := range runs {
		added += r.Len()
	}
	if added == 0 {
		return true
	}

	idx := s.splitAt(pos)
	s.runs = slices.Insert(s.runs, idx, runs...)
	s.length += added
	s.coalesce()
	return true
}

// Append adds runs at the end of the sequence.
func (s *Sequence[E]) Append(runs ...Run[E]) {
	s.Insert(s.length, runs...)
}

// Cut removes atoms [start, end) and returns them as a new sequence. It
// returns false if the range is not inside [0, Len].
func (s *Sequence[E]) Cut(start, end int) (*Sequence[E], bool) {
	if start < 0 || end > s.length || start > end {
		return nil, false
	}

	removed := NewSequence[E]()
	if start == end {
		return removed, true
	}

	first := s.splitAt(start)
	last := s.splitAt(end)
	removed.runs = slices.Clone(s.runs[first:last])
	removed.length = end - start

	s.runs = slices.Delete(s.runs, first, last)
	s.length -= end - start
	s.coalesce()
	removed.coalesce()
	return removed, true
}

// Slice returns a copy of the runs covering atoms [start, end) without
// modifying the sequence.
func (s *Sequence[E]) Slice(start, end int) ([]Run[E], bool) {
	if start < 0 || end > s.length || start > end {
		return nil, false
	}

	var result []Run[E]
	accum := 0
	for _, r := range s.runs {
		rStart, rEnd := accum, accum+r.Len()
		accum = rEnd
		if rEnd <= start {
			continue
		}
		if rStart >= end {
			break
		}
		from := max(start, rStart) - rStart
		to := min(end, rEnd) - rStart
		result = append(result, r.slice(from, to))
	}
	return result, true
}

// At returns the single atom at pos as a run of length 1.
func (s *Sequence[E]) At(pos int) (Run[E], bool) {
	if pos < 0 || pos >= s.length {
		return Run[E]{}, false
	}
	idx, off := s.findRun(pos)
	return s.runs[idx].slice(off, off+1), true
}

// IndexOf returns the atom offset of the embedded element e, or -1.
func (s *Sequence[E]) IndexOf(e E) int {
	accum := 0
	for _, r := range s.runs {
		if r.isEmbed && r.embed == e {
			return accum
		}
		accum += r.Len()
	}
	return -1
}

// Embeds returns all embedded elements in order.
func (s *Sequence[E]) Embeds() []E {
	var result []E
	for _, r := range s.runs {
		if r.isEmbed {
			result = append(result, r.embed)
		}
	}
	return result
}
