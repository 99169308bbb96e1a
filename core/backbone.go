package core

import (
	"golang.org/x/exp/slices"
)

// Backbone components keep their slots as a grid. Rows and columns are
// inserted and removed as a whole so the grid stays rectangular.

func (c *Component) checkBackbone(op string) error {
	if c.variant != Backbone {
		return &UnsupportedVariantError{Op: op, Variant: c.variant}
	}
	return nil
}

// Rows returns the number of rows of a Backbone, 0 for other variants.
func (c *Component) Rows() int {
	if c.variant != Backbone || c.cols == 0 {
		return 0
	}
	return len(c.slots) / c.cols
}

// Cols returns the number of columns of a Backbone, 0 for other variants.
func (c *Component) Cols() int {
	if c.variant != Backbone {
		return 0
	}
	return c.cols
}

// Cell returns the slot at row and col.
func (c *Component) Cell(row, col int) (*Fragment, error) {
	if err := c.checkBackbone("Cell"); err != nil {
		return nil, err
	}
	if row < 0 || row >= c.Rows() {
		return nil, boundsErr("Cell", row, c.Rows())
	}
	if col < 0 || col >= c.cols {
		return nil, boundsErr("Cell", col, c.cols)
	}
	return c.slots[row*c.cols+col], nil
}

// CellPosition returns the row and column of slot.
func (c *Component) CellPosition(slot *Fragment) (row, col int, ok bool) {
	if c.variant != Backbone {
		return 0, 0, false
	}
	idx := c.IndexOf(slot)
	if idx < 0 {
		return 0, 0, false
	}
	return idx / c.cols, idx % c.cols, true
}

// InsertRow inserts a row of empty cells before row at.
func (c *Component) InsertRow(at int) error {
	if err := c.checkBackbone("InsertRow"); err != nil {
		return err
	}
	if at < 0 || at > c.Rows() {
		return boundsErr("InsertRow", at, c.Rows())
	}
	row := make([]*Fragment, c.cols)
	for i := range row {
		row[i] = NewFragment()
		row[i].parent = c
	}
	c.slots = slices.Insert(c.slots, at*c.cols, row...)
	return nil
}

// RemoveRow removes the row at index at and returns its cells.
func (c *Component) RemoveRow(at int) ([]*Fragment, error) {
	if err := c.checkBackbone("RemoveRow"); err != nil {
		return nil, err
	}
	if at < 0 || at >= c.Rows() {
		return nil, boundsErr("RemoveRow", at, c.Rows())
	}
	start := at * c.cols
	removed := slices.Clone(c.slots[start : start+c.cols])
	c.slots = slices.Delete(c.slots, start, start+c.cols)
	for _, f := range removed {
		f.parent = nil
	}
	return removed, nil
}

// InsertColumn inserts a column of empty cells before column at.
func (c *Component) InsertColumn(at int) error {
	if err := c.checkBackbone("InsertColumn"); err != nil {
		return err
	}
	if at < 0 || at > c.cols {
		return boundsErr("InsertColumn", at, c.cols)
	}
	rows := c.Rows()
	if c.cols == 0 {
		// an empty grid gets a single row.
		rows = 1
	}
	slots := make([]*Fragment, 0, rows*(c.cols+1))
	for r := 0; r < rows; r++ {
		for col := 0; col <= c.cols; col++ {
			switch {
			case col < at:
				slots = append(slots, c.slots[r*c.cols+col])
			case col == at:
				f := NewFragment()
				f.parent = c
				slots = append(slots, f)
			default:
				slots = append(slots, c.slots[r*c.cols+col-1])
			}
		}
	}
	c.slots = slots
	c.cols++
	return nil
}

// RemoveColumn removes the column at index at and returns its cells.
func (c *Component) RemoveColumn(at int) ([]*Fragment, error) {
	if err := c.checkBackbone("RemoveColumn"); err != nil {
		return nil, err
	}
	if at < 0 || at >= c.cols {
		return nil, boundsErr("RemoveColumn", at, c.cols)
	}
	var removed []*Fragment
	kept := make([]*Fragment, 0, len(c.slots))
	for i, f := range c.slots {
		if i%c.cols == at {
			f.parent = nil
			removed = append(removed, f)
			continue
		}
		kept = append(kept, f)
	}
	c.slots = kept
	c.cols--
	if c.cols == 0 {
		c.slots = nil
	}
	return removed, nil
}
