package components

import (
	"github.com/oligo/gvdoc/core"
	"github.com/oligo/gvdoc/parser"
)

// NewTable creates a rows x cols table.
func NewTable(rows, cols int) *core.Component {
	return core.NewBackbone("table", "td", rows, cols)
}

// IsTable reports whether c is a table component.
func IsTable(c *core.Component) bool {
	return c != nil && c.Variant() == core.Backbone && c.Tag == "table"
}

type tableLoader struct{}

func (l *tableLoader) Match(n parser.Node) bool {
	return n.Tag() == "table"
}

func tableRows(n parser.Node) [][]parser.Node {
	var rows [][]parser.Node
	for _, child := range n.Children() {
		switch child.Tag() {
		case "thead", "tbody", "tfoot":
			rows = append(rows, tableRows(child)...)
		case "tr":
			var cells []parser.Node
			for _, c := range child.Children() {
				if c.Tag() == "td" || c.Tag() == "th" {
					cells = append(cells, c)
				}
			}
			rows = append(rows, cells)
		}
	}
	return rows
}

// Read lays the cells out on a rectangular grid. Short rows are padded with
// empty cells.
func (l *tableLoader) Read(n parser.Node) parser.ViewData {
	rows := tableRows(n)
	cols := 0
	for _, r := range rows {
		cols = max(cols, len(r))
	}

	table := NewTable(len(rows), cols)
	var slots []parser.SlotMap
	for i, r := range rows {
		for j, cell := range r {
			slot, err := table.Cell(i, j)
			if err != nil {
				continue
			}
			slots = append(slots, parser.SlotMap{From: cell, To: slot})
		}
	}

	if len(rows) > 0 && len(rows[0]) > 0 {
		header := true
		for _, c := range rows[0] {
			header = header && c.Tag() == "th"
		}
		if header {
			table.Attrs = map[string]string{"header": "true"}
		}
	}
	return parser.ViewData{Component: table, Slots: slots}
}
