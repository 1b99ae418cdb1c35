package editor

import (
	"github.com/vinodismyname/mdsheet/core/cellops"
	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/pkg/editorerr"
)

// table returns a pointer to the addressed Table for in-place mutation, or
// an InvalidIndex error when sheetIdx/tableIdx is out of range.
func (c *Context) table(sheetIdx, tableIdx int) (*model.Table, *editorerr.Error) {
	if sheetIdx < 0 || sheetIdx >= len(c.wb.Sheets) {
		return nil, editorerr.InvalidIndexf("Invalid sheet index %d", sheetIdx)
	}
	s := &c.wb.Sheets[sheetIdx]
	if tableIdx < 0 || tableIdx >= len(s.Tables) {
		return nil, editorerr.InvalidIndexf("Invalid table index %d", tableIdx)
	}
	return &s.Tables[tableIdx], nil
}

func (c *Context) mutateTable(sheetIdx, tableIdx int, fn func(model.Table) model.Table) Result {
	t, err := c.table(sheetIdx, tableIdx)
	if err != nil {
		return errResult(err.Message)
	}
	*t = fn(*t)
	return c.generateRange()
}

// UpdateCell sets the cell at (r,c), growing the table when needed.
func (c *Context) UpdateCell(sheetIdx, tableIdx, r, cIdx int, v string) Result {
	t, err := c.table(sheetIdx, tableIdx)
	if err != nil {
		return errResult(err.Message)
	}
	nt, uerr := cellops.UpdateCell(*t, r, cIdx, v)
	if uerr != nil {
		return errResult(editorerr.AsResult(uerr))
	}
	*t = nt
	return c.generateRange()
}

// InsertRow inserts a blank row before index r.
func (c *Context) InsertRow(sheetIdx, tableIdx, r int) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.InsertRow(t, r)
	})
}

// DeleteRows removes the rows at indices.
func (c *Context) DeleteRows(sheetIdx, tableIdx int, indices []int) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.DeleteRows(t, indices)
	})
}

// MoveRows relocates the rows at indices to just before target.
func (c *Context) MoveRows(sheetIdx, tableIdx int, indices []int, target int) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.MoveRows(t, indices, target)
	})
}

// SortRows reorders rows by column c.
func (c *Context) SortRows(sheetIdx, tableIdx, cIdx int, ascending bool) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.SortRows(t, cIdx, ascending)
	})
}

// InsertColumn inserts a new column named name before index c, preserving
// column-indexed metadata per core/metaremap.
func (c *Context) InsertColumn(sheetIdx, tableIdx, cIdx int, name string) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.InsertColumn(t, cIdx, name)
	})
}

// DeleteColumns removes the columns at indices.
func (c *Context) DeleteColumns(sheetIdx, tableIdx int, indices []int) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.DeleteColumns(t, indices)
	})
}

// MoveColumns relocates the columns at indices to just before target.
func (c *Context) MoveColumns(sheetIdx, tableIdx int, indices []int, target int) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.MoveColumns(t, indices, target)
	})
}

// ClearColumns blanks the cell contents of the columns at indices without
// removing them.
func (c *Context) ClearColumns(sheetIdx, tableIdx int, indices []int) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.ClearColumns(t, indices)
	})
}

// UpdateColumnWidth sets display width metadata for column c.
func (c *Context) UpdateColumnWidth(sheetIdx, tableIdx, cIdx, width int) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.UpdateColumnWidth(t, cIdx, width)
	})
}

// UpdateColumnFormat sets display format metadata for column c.
func (c *Context) UpdateColumnFormat(sheetIdx, tableIdx, cIdx int, format string) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.UpdateColumnFormat(t, cIdx, format)
	})
}

// UpdateColumnAlign sets the GFM alignment for column c.
func (c *Context) UpdateColumnAlign(sheetIdx, tableIdx, cIdx int, align model.Alignment) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.UpdateColumnAlign(t, cIdx, align)
	})
}

// UpdateColumnFilter sets the hidden-values filter for column c.
func (c *Context) UpdateColumnFilter(sheetIdx, tableIdx, cIdx int, hidden []string) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.UpdateColumnFilter(t, cIdx, hidden)
	})
}

// PasteCells overwrites a block of cells starting at (startRow,startCol)
// with data, optionally skipping the first row as a header match.
func (c *Context) PasteCells(sheetIdx, tableIdx, startRow, startCol int, data [][]string, includeHeaders bool) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.PasteCells(t, startRow, startCol, data, includeHeaders)
	})
}

// MoveCells relocates a rectangular block of cells to a new origin.
func (c *Context) MoveCells(sheetIdx, tableIdx int, r cellops.Rect, destRow, destCol int) Result {
	return c.mutateTable(sheetIdx, tableIdx, func(t model.Table) model.Table {
		return cellops.MoveCells(t, r, destRow, destCol)
	})
}
