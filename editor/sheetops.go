package editor

import (
	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/sheetops"
	"github.com/vinodismyname/mdsheet/pkg/editorerr"
)

func (c *Context) sheet(sheetIdx int) (*model.Sheet, *editorerr.Error) {
	if sheetIdx < 0 || sheetIdx >= len(c.wb.Sheets) {
		return nil, editorerr.InvalidIndexf("Invalid sheet index %d", sheetIdx)
	}
	return &c.wb.Sheets[sheetIdx], nil
}

// AddTable inserts a new table named name with headers into sheetIdx,
// placed just after afterIdx, or appended when afterIdx is out of range
// (e.g. -1).
func (c *Context) AddTable(sheetIdx int, name string, headers []string, afterIdx int) Result {
	s, err := c.sheet(sheetIdx)
	if err != nil {
		return errResult(err.Message)
	}
	t := model.Table{Name: name, Headers: append([]string(nil), headers...)}
	t.Alignments = make([]model.Alignment, len(headers))
	for i := range t.Alignments {
		t.Alignments[i] = model.AlignLeft
	}
	*s = sheetops.AddTable(*s, t, afterIdx)
	return c.generateRange()
}

// DeleteTable removes table tableIdx from sheetIdx.
func (c *Context) DeleteTable(sheetIdx, tableIdx int) Result {
	s, err := c.sheet(sheetIdx)
	if err != nil {
		return errResult(err.Message)
	}
	ns, derr := sheetops.DeleteTable(*s, tableIdx)
	if derr != nil {
		return errResult(editorerr.AsResult(derr))
	}
	*s = ns
	return c.generateRange()
}

// RenameTable renames table tableIdx within sheetIdx.
func (c *Context) RenameTable(sheetIdx, tableIdx int, name string) Result {
	s, err := c.sheet(sheetIdx)
	if err != nil {
		return errResult(err.Message)
	}
	ns, rerr := sheetops.RenameTable(*s, tableIdx, name)
	if rerr != nil {
		return errResult(editorerr.AsResult(rerr))
	}
	*s = ns
	return c.generateRange()
}

// UpdateTableMetadata merges kv into table tableIdx's free-form metadata.
func (c *Context) UpdateTableMetadata(sheetIdx, tableIdx int, kv map[string]any) Result {
	s, err := c.sheet(sheetIdx)
	if err != nil {
		return errResult(err.Message)
	}
	ns, uerr := sheetops.UpdateTableMetadata(*s, tableIdx, kv)
	if uerr != nil {
		return errResult(editorerr.AsResult(uerr))
	}
	*s = ns
	return c.generateRange()
}

// UpdateVisualMetadata replaces table tableIdx's visual metadata sub-tree.
func (c *Context) UpdateVisualMetadata(sheetIdx, tableIdx int, visual model.VisualMetadata) Result {
	s, err := c.sheet(sheetIdx)
	if err != nil {
		return errResult(err.Message)
	}
	ns, uerr := sheetops.UpdateVisualMetadata(*s, tableIdx, visual)
	if uerr != nil {
		return errResult(editorerr.AsResult(uerr))
	}
	*s = ns
	return c.generateRange()
}

// AddSheet appends a new sheet named name (or a default name when empty)
// with an optional starting table of columns, placed after afterIdx.
func (c *Context) AddSheet(name string, columns []string, afterIdx int) Result {
	if name == "" {
		name = sheetops.DefaultSheetName(c.wb)
	}
	c.wb = sheetops.AddSheet(c.wb, name, columns, afterIdx)
	return c.generateRange()
}

// DeleteSheet removes sheet i.
func (c *Context) DeleteSheet(i int) Result {
	nwb, err := sheetops.DeleteSheet(c.wb, i)
	if err != nil {
		return errResult(editorerr.AsResult(err))
	}
	c.wb = nwb
	return c.generateRange()
}

// MoveSheet relocates sheet `from` to `to`, optionally updating an
// explicit tab_order entry at targetTabOrderIdx, or clearing tab_order
// entirely when clearTabOrder is set.
func (c *Context) MoveSheet(from, to, targetTabOrderIdx int, clearTabOrder bool) Result {
	nwb, err := sheetops.MoveSheet(c.wb, from, to, targetTabOrderIdx, clearTabOrder)
	if err != nil {
		return errResult(editorerr.AsResult(err))
	}
	c.wb = nwb
	return c.generateRange()
}
