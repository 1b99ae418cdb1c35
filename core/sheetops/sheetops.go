// Package sheetops implements the pure Sheet/Table/Workbook transforms:
// addTable/deleteTable/renameTable/updateTableMetadata/
// updateVisualMetadata on a Sheet, and addSheet/deleteSheet/moveSheet on a
// Workbook, including tab-order bookkeeping side effects.
package sheetops

import (
	"fmt"

	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/pkg/editorerr"
)

// AddTable appends table to the sheet, or inserts it at afterIdx+1 when
// afterIdx is in range.
func AddTable(s model.Sheet, t model.Table, afterIdx int) model.Sheet {
	out := s.Clone()
	if afterIdx >= 0 && afterIdx < len(out.Tables) {
		pos := afterIdx + 1
		out.Tables = append(out.Tables[:pos:pos], append([]model.Table{t}, out.Tables[pos:]...)...)
		return out
	}
	out.Tables = append(out.Tables, t)
	return out
}

// DeleteTable removes the table at tableIdx.
func DeleteTable(s model.Sheet, tableIdx int) (model.Sheet, error) {
	if tableIdx < 0 || tableIdx >= len(s.Tables) {
		return s, editorerr.InvalidIndexf("Invalid table index")
	}
	out := s.Clone()
	out.Tables = append(out.Tables[:tableIdx], out.Tables[tableIdx+1:]...)
	return out, nil
}

// RenameTable sets the Name of the table at tableIdx.
func RenameTable(s model.Sheet, tableIdx int, name string) (model.Sheet, error) {
	if tableIdx < 0 || tableIdx >= len(s.Tables) {
		return s, editorerr.InvalidIndexf("Invalid table index")
	}
	out := s.Clone()
	out.Tables[tableIdx].Name = name
	return out, nil
}

// UpdateTableMetadata replaces the table's free-form Extra metadata bag at
// tableIdx with the supplied key/value pairs merged in.
func UpdateTableMetadata(s model.Sheet, tableIdx int, kv map[string]any) (model.Sheet, error) {
	if tableIdx < 0 || tableIdx >= len(s.Tables) {
		return s, editorerr.InvalidIndexf("Invalid table index")
	}
	out := s.Clone()
	t := out.Tables[tableIdx]
	if t.Metadata.Extra == nil {
		t.Metadata.Extra = map[string]any{}
	}
	for k, v := range kv {
		t.Metadata.Extra[k] = v
	}
	out.Tables[tableIdx] = t
	return out, nil
}

// UpdateVisualMetadata replaces the table's visual metadata at tableIdx.
func UpdateVisualMetadata(s model.Sheet, tableIdx int, visual model.VisualMetadata) (model.Sheet, error) {
	if tableIdx < 0 || tableIdx >= len(s.Tables) {
		return s, editorerr.InvalidIndexf("Invalid table index")
	}
	out := s.Clone()
	out.Tables[tableIdx].Metadata.Visual = visual
	return out, nil
}

// DefaultSheetName returns "Sheet i" for the smallest positive i such that
// no existing sheet has that name.
func DefaultSheetName(w model.Workbook) string {
	taken := make(map[string]struct{}, len(w.Sheets))
	for _, s := range w.Sheets {
		taken[s.Name] = struct{}{}
	}
	for i := 1; ; i++ {
		name := fmt.Sprintf("Sheet %d", i)
		if _, ok := taken[name]; !ok {
			return name
		}
	}
}

// DefaultColumns is used when AddSheet is called without explicit columns.
var DefaultColumns = []string{"Column 1", "Column 2", "Column 3"}

// AddSheet inserts a new Sheet with one Table (one blank row) containing
// columns, at afterIdx+1 when in range, else appended. name defaults via
// DefaultSheetName and columns via DefaultColumns when empty.
func AddSheet(w model.Workbook, name string, columns []string, afterIdx int) model.Workbook {
	out := w.Clone()
	if name == "" {
		name = DefaultSheetName(out)
	}
	if len(columns) == 0 {
		columns = append([]string(nil), DefaultColumns...)
	}
	align := make([]model.Alignment, len(columns))
	for i := range align {
		align[i] = model.AlignLeft
	}
	table := model.Table{
		Name:       name,
		Headers:    append([]string(nil), columns...),
		Alignments: align,
		Rows:       [][]string{make([]string, len(columns))},
	}
	sheet := model.Sheet{Name: name, Tables: []model.Table{table}}

	if afterIdx >= 0 && afterIdx < len(out.Sheets) {
		pos := afterIdx + 1
		out.Sheets = append(out.Sheets[:pos:pos], append([]model.Sheet{sheet}, out.Sheets[pos:]...)...)
	} else {
		out.Sheets = append(out.Sheets, sheet)
	}
	return out
}

// DeleteSheet drops the sheet at i; if tab_order exists, the matching entry
// is dropped and remaining sheet indices greater than i are decremented.
func DeleteSheet(w model.Workbook, i int) (model.Workbook, error) {
	if i < 0 || i >= len(w.Sheets) {
		return w, editorerr.InvalidIndexf("Invalid sheet index")
	}
	out := w.Clone()
	out.Sheets = append(out.Sheets[:i], out.Sheets[i+1:]...)

	if len(out.Metadata.TabOrder) > 0 {
		var newOrder []model.TabOrderItem
		for _, item := range out.Metadata.TabOrder {
			if item.Kind == model.KindSheet {
				if item.Index == i {
					continue
				}
				if item.Index > i {
					item.Index--
				}
			}
			newOrder = append(newOrder, item)
		}
		out.Metadata.TabOrder = newOrder
	}
	return out, nil
}

// MoveSheet validates from, clamps to into [0,len-1 after removal], and
// splices. When targetTabOrderIdx >= 0, the tab order is re-keyed via
// ReorderTabOrder; when clearTabOrder is true, tab_order is deleted so it
// regenerates from the natural order.
func MoveSheet(w model.Workbook, from, to int, targetTabOrderIdx int, clearTabOrder bool) (model.Workbook, error) {
	if from < 0 || from >= len(w.Sheets) {
		return w, editorerr.InvalidIndexf("Invalid sheet index")
	}
	out := w.Clone()
	moved := out.Sheets[from]
	out.Sheets = append(out.Sheets[:from], out.Sheets[from+1:]...)
	to = clampIntLocal(to, 0, len(out.Sheets))
	out.Sheets = append(out.Sheets[:to:to], append([]model.Sheet{moved}, out.Sheets[to:]...)...)

	if clearTabOrder {
		out.Metadata.TabOrder = nil
	} else if targetTabOrderIdx >= 0 {
		out.Metadata.TabOrder = ReorderTabOrder(out.Metadata.TabOrder, model.KindSheet, from, to, targetTabOrderIdx)
	}
	return out, nil
}

func clampIntLocal(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ReorderTabOrder re-keys the kind's indices using a permutation derived
// from moving position from to position to inside a dummy [0..max+1)
// sequence, then optionally removes and reinserts the moved entry at
// targetTabOrderIdx, with off-by-one correction when the removal
// preceded the target.
func ReorderTabOrder(order []model.TabOrderItem, kind model.TabKind, from, to, targetTabOrderIdx int) []model.TabOrderItem {
	max := -1
	for _, item := range order {
		if item.Kind == kind && item.Index > max {
			max = item.Index
		}
	}
	if max < from {
		max = from
	}
	if max < to {
		max = to
	}
	n := max + 1

	dummy := make([]int, n)
	for i := range dummy {
		dummy[i] = i
	}
	moved := dummy[from]
	dummy = append(dummy[:from], dummy[from+1:]...)
	toClamped := clampIntLocal(to, 0, len(dummy))
	dummy = append(dummy[:toClamped:toClamped], append([]int{moved}, dummy[toClamped:]...)...)

	// dummy[newPos] = oldIdx; invert to oldIdx -> newPos
	remap := make(map[int]int, n)
	for newPos, oldIdx := range dummy {
		remap[oldIdx] = newPos
	}

	out := make([]model.TabOrderItem, len(order))
	copy(out, order)
	for i, item := range out {
		if item.Kind == kind {
			if np, ok := remap[item.Index]; ok {
				out[i].Index = np
			}
		}
	}

	if targetTabOrderIdx >= 0 {
		// Find and remove the moved entry (now at Index == toClamped), reinsert
		// at targetTabOrderIdx with off-by-one correction when removal preceded
		// the target.
		removeAt := -1
		for i, item := range out {
			if item.Kind == kind && item.Index == toClamped {
				removeAt = i
				break
			}
		}
		if removeAt >= 0 {
			entry := out[removeAt]
			out = append(out[:removeAt], out[removeAt+1:]...)
			insertAt := targetTabOrderIdx
			if removeAt < insertAt {
				insertAt--
			}
			insertAt = clampIntLocal(insertAt, 0, len(out))
			out = append(out[:insertAt:insertAt], append([]model.TabOrderItem{entry}, out[insertAt:]...)...)
		}
	}
	return out
}
