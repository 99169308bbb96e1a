package core

import (
	"golang.org/x/exp/maps"
)

// Effect is the outcome of matching or applying a format.
type Effect uint8

const (
	// Valid applies the format to the range.
	Valid Effect = iota
	// Invalid explicitly clears the format from the range.
	Invalid
)

func (e Effect) String() string {
	if e == Invalid {
		return "invalid"
	}
	return "valid"
}

// FormatterKind tells whether a formatter applies to a whole fragment or to
// arbitrary spans of it.
type FormatterKind uint8

const (
	// Inline formatters apply to arbitrary sub spans.
	Inline FormatterKind = iota
	// Block formatters semantically apply to an entire fragment.
	Block
)

func (k FormatterKind) String() string {
	if k == Block {
		return "block"
	}
	return "inline"
}

// Formatter identifies a kind of formatting. Formatters are compared by
// identity, so implementations should be pointer types and the same
// instance must be reused across apply and query calls.
type Formatter interface {
	Name() string
	Kind() FormatterKind
}

// FormatData is the payload of a format range. It is treated as immutable
// once applied to a fragment.
type FormatData struct {
	Tag    string
	Attrs  map[string]string
	Styles map[string]string
}

// Equal reports whether d and o carry the same formatting. Two nil values are
// equal, and a nil value equals an empty one.
func (d *FormatData) Equal(o *FormatData) bool {
	if d == nil {
		d = &FormatData{}
	}
	if o == nil {
		o = &FormatData{}
	}
	return d.Tag == o.Tag &&
		maps.Equal(d.Attrs, o.Attrs) &&
		maps.Equal(d.Styles, o.Styles)
}

func (d *FormatData) Clone() *FormatData {
	if d == nil {
		return nil
	}
	return &FormatData{
		Tag:    d.Tag,
		Attrs:  maps.Clone(d.Attrs),
		Styles: maps.Clone(d.Styles),
	}
}

// FormatRange is a half open interval [Start, End) of atoms carrying Data.
type FormatRange struct {
	Start  int
	End    int
	Data   *FormatData
	Effect Effect
}

func (r FormatRange) empty() bool {
	return r.Start >= r.End
}

// ApplyOptions tunes how Apply resolves overlaps with existing ranges of
// different data.
type ApplyOptions struct {
	// Important makes the new range win inside overlaps. When false the
	// existing ranges are kept and the new range only fills the gaps.
	Important bool
}

// FormatSpan is a format range together with the formatter owning it.
type FormatSpan struct {
	Formatter Formatter
	Range     FormatRange
}
