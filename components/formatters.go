package components

import (
	"strconv"
	"strings"

	"golang.org/x/exp/slices"

	"github.com/oligo/gvdoc/core"
	"github.com/oligo/gvdoc/parser"
)

// StyleFormatter recognises a format by element tag or by an inline CSS
// property. It implements parser.Formatter.
type StyleFormatter struct {
	name string
	kind core.FormatterKind
	// tag written into the format data, also the first recognised tag.
	tags []string
	// attrs copied from the element into the format data.
	attrs []string
	// property is the CSS property carrying the format, if any.
	property string
	// classify maps a property value to an effect. A nil classify accepts
	// any non empty value.
	classify func(value string) (core.Effect, bool)
}

func (f *StyleFormatter) Name() string             { return f.name }
func (f *StyleFormatter) Kind() core.FormatterKind { return f.kind }

// Tag returns the tag used when the format is written out.
func (f *StyleFormatter) Tag() string {
	if len(f.tags) == 0 {
		return ""
	}
	return f.tags[0]
}

func (f *StyleFormatter) Match(n parser.Node) (core.Effect, bool) {
	if slices.Contains(f.tags, n.Tag()) {
		return core.Valid, true
	}
	if f.property == "" {
		return core.Valid, false
	}
	value, ok := parser.Style(n, f.property)
	if !ok || value == "" {
		return core.Valid, false
	}
	if f.classify == nil {
		return core.Valid, true
	}
	return f.classify(strings.ToLower(value))
}

func (f *StyleFormatter) Read(n parser.Node) *core.FormatData {
	data := &core.FormatData{Tag: f.Tag()}
	for _, a := range f.attrs {
		if v, ok := n.Attr(a); ok {
			if data.Attrs == nil {
				data.Attrs = make(map[string]string)
			}
			data.Attrs[a] = v
		}
	}
	// tag based formats are canonical; only pure style formats keep the
	// property value.
	if f.property != "" && len(f.tags) == 0 {
		if v, ok := parser.Style(n, f.property); ok {
			data.Styles = map[string]string{f.property: v}
		}
	}
	return data
}

// Data returns format data for applying the format from code.
func (f *StyleFormatter) Data(styleValue string) *core.FormatData {
	data := &core.FormatData{Tag: f.Tag()}
	if styleValue != "" && f.property != "" && len(f.tags) == 0 {
		data.Styles = map[string]string{f.property: styleValue}
	}
	return data
}

func fontWeight(value string) (core.Effect, bool) {
	switch value {
	case "bold", "bolder":
		return core.Valid, true
	case "normal", "lighter":
		return core.Invalid, true
	}
	if w, err := strconv.Atoi(value); err == nil {
		if w >= 600 {
			return core.Valid, true
		}
		return core.Invalid, true
	}
	return core.Valid, false
}

func keyword(valid string, invalid ...string) func(string) (core.Effect, bool) {
	return func(value string) (core.Effect, bool) {
		if strings.Contains(value, valid) {
			return core.Valid, true
		}
		if slices.Contains(invalid, value) {
			return core.Invalid, true
		}
		return core.Valid, false
	}
}

func alignment(value string) (core.Effect, bool) {
	switch value {
	case "left", "start":
		return core.Invalid, true
	case "right", "center", "justify", "end":
		return core.Valid, true
	}
	return core.Valid, false
}

var (
	Bold = &StyleFormatter{
		name: "bold", tags: []string{"strong", "b"},
		property: "font-weight", classify: fontWeight,
	}
	Italic = &StyleFormatter{
		name: "italic", tags: []string{"em", "i"},
		property: "font-style", classify: keyword("italic", "normal"),
	}
	Underline = &StyleFormatter{
		name: "underline", tags: []string{"u"},
		property: "text-decoration", classify: keyword("underline"),
	}
	Strike = &StyleFormatter{
		name: "strike", tags: []string{"del", "s", "strike"},
		property: "text-decoration", classify: keyword("line-through"),
	}
	Code        = &StyleFormatter{name: "code", tags: []string{"code"}}
	Subscript   = &StyleFormatter{name: "subscript", tags: []string{"sub"}}
	Superscript = &StyleFormatter{name: "superscript", tags: []string{"sup"}}
	Link        = &StyleFormatter{name: "link", tags: []string{"a"}, attrs: []string{"href", "title", "target"}}
	Color       = &StyleFormatter{name: "color", property: "color"}
	Background  = &StyleFormatter{name: "background", property: "background-color"}
	// TextAlign is a block formatter. It covers whole slots.
	TextAlign = &StyleFormatter{
		name: "text-align", kind: core.Block,
		property: "text-align", classify: alignment,
	}
)
