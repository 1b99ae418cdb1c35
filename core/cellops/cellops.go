// Package cellops implements the pure cell/row/column transforms over a
// Table: updateCell, insertRow/deleteRows/moveRows/sortRows,
// insertColumn/deleteColumns/moveColumns/clearColumns, the column-metadata
// write helpers, pasteCells, and moveCells. //
// Every exported function returns a new model.Table; none mutate their
// input. UpdateCell rejects a negative row or column with an
// *editorerr.Error of code InvalidIndex; the other transforms clamp or
// skip out-of-range indices instead of failing.
package cellops

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/vinodismyname/mdsheet/core/metaremap"
	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/pkg/editorerr"
)

// EscapePipe scans v left-to-right tracking whether the cursor is inside
// inline code (delimited by backticks); every '|' outside inline code is
// emitted as '\|', all other characters pass through unchanged.
func EscapePipe(v string) string {
	var b strings.Builder
	b.Grow(len(v) + 4)
	inCode := false
	for _, r := range v {
		switch r {
		case '`':
			inCode = !inCode
			b.WriteRune(r)
		case '|':
			if inCode {
				b.WriteRune(r)
			} else {
				b.WriteString(`\|`)
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func blankRow(width int) []string {
	return make([]string, width)
}

// growRows right-grows rows with header-width blank rows until
// len(rows) > upto (i.e. rows[upto] exists).
func growRows(rows [][]string, width, upto int) [][]string {
	for len(rows) <= upto {
		rows = append(rows, blankRow(width))
	}
	return rows
}

func growRow(row []string, upto int) []string {
	for len(row) <= upto {
		row = append(row, "")
	}
	return row
}

// UpdateCell right-grows rows/row as needed, then writes the pipe-escaped
// value at (r,c). r and c must be non-negative.
func UpdateCell(t model.Table, r, c int, v string) (model.Table, error) {
	if r < 0 || c < 0 {
		return t, editorerr.InvalidIndexf("Invalid cell index")
	}
	out := t.Clone()
	out.Rows = growRows(out.Rows, len(out.Headers), r)
	out.Rows[r] = growRow(out.Rows[r], c)
	out.Rows[r][c] = EscapePipe(v)
	return out, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// InsertRow splices a blank row of len(headers) at clamp(r, 0, len(rows)).
func InsertRow(t model.Table, r int) model.Table {
	out := t.Clone()
	r = clampInt(r, 0, len(out.Rows))
	blank := blankRow(len(out.Headers))
	out.Rows = append(out.Rows[:r:r], append([][]string{blank}, out.Rows[r:]...)...)
	return out
}

// DeleteRows drops the rows at indices (sorted descending, out-of-range
// ignored).
func DeleteRows(t model.Table, indices []int) model.Table {
	out := t.Clone()
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, idx := range sorted {
		if idx < 0 || idx >= len(out.Rows) {
			continue
		}
		out.Rows = append(out.Rows[:idx], out.Rows[idx+1:]...)
	}
	return out
}

// moveInsertionPoint returns the insertion point within the staying
// sequence: the count of staying indices strictly less than target.
func moveInsertionPoint(stayIdx []int, target int) int {
	n := 0
	for _, idx := range stayIdx {
		if idx < target {
			n++
		}
	}
	return n
}

func dedupSortAsc(indices []int) []int {
	seen := make(map[int]struct{}, len(indices))
	var out []int
	for _, i := range indices {
		if _, ok := seen[i]; ok {
			continue
		}
		seen[i] = struct{}{}
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// reorderByMove applies the moveRows/moveColumns algorithm generically
// over n positions: dedup+sort moving ascending, partition into
// moving/staying preserving original relative order, and splice moving (in
// ascending order) at the count of staying indices strictly less than
// target.
func reorderByMove(n int, indices []int, target int) []int {
	moving := dedupSortAsc(indices)
	movingSet := make(map[int]struct{}, len(moving))
	for _, m := range moving {
		movingSet[m] = struct{}{}
	}
	var staying []int
	for i := 0; i < n; i++ {
		if _, ok := movingSet[i]; !ok {
			staying = append(staying, i)
		}
	}
	at := moveInsertionPoint(staying, target)
	result := make([]int, 0, n)
	result = append(result, staying[:at]...)
	result = append(result, moving...)
	result = append(result, staying[at:]...)
	return result
}

// MoveRows reorders rows per the moveRows algorithm: dedup indices,
// sort ascending, partition into moving/staying, splice moving (ascending)
// at the point equal to the count of staying indices strictly before
// target.
func MoveRows(t model.Table, indices []int, target int) model.Table {
	out := t.Clone()
	order := reorderByMove(len(out.Rows), indices, target)
	newRows := make([][]string, len(order))
	for i, oldIdx := range order {
		newRows[i] = out.Rows[oldIdx]
	}
	out.Rows = newRows
	return out
}

// inferNumeric reports whether every non-empty, comma-stripped, trimmed
// cell in column c parses as a finite number.
func inferNumeric(t model.Table, c int) bool {
	any := false
	for _, row := range t.Rows {
		var v string
		if c < len(row) {
			v = row[c]
		}
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		any = true
		v = strings.ReplaceAll(v, ",", "")
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
			return false
		}
	}
	return any
}

func columnType(t model.Table, c int) string {
	key := strconv.Itoa(c)
	if cm, ok := t.Metadata.Visual.Columns[key]; ok && cm.Type != "" {
		return cm.Type
	}
	if inferNumeric(t, c) {
		return "number"
	}
	return "string"
}

// SortRows sorts rows by column c, ascending when ascending is true. Sort
// is stable; numeric columns use the parsed float (empty cells -> -Inf);
// string columns use case-folded text.
func SortRows(t model.Table, c int, ascending bool) model.Table {
	out := t.Clone()
	numeric := columnType(out, c) == "number"

	keyOf := func(row []string) (float64, string) {
		var v string
		if c < len(row) {
			v = row[c]
		}
		if numeric {
			trimmed := strings.ReplaceAll(strings.TrimSpace(v), ",", "")
			if trimmed == "" {
				return math.Inf(-1), ""
			}
			f, err := strconv.ParseFloat(trimmed, 64)
			if err != nil {
				return math.Inf(-1), ""
			}
			return f, ""
		}
		return 0, strings.ToLower(v)
	}

	idx := make([]int, len(out.Rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		fi, si := keyOf(out.Rows[idx[i]])
		fj, sj := keyOf(out.Rows[idx[j]])
		var less bool
		if numeric {
			less = fi < fj
		} else {
			less = si < sj
		}
		if ascending {
			return less
		}
		return !less && (numeric && fi != fj || !numeric && si != sj)
	})
	newRows := make([][]string, len(out.Rows))
	for i, oi := range idx {
		newRows[i] = out.Rows[oi]
	}
	out.Rows = newRows
	return out
}

func padRow(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	out := make([]string, n)
	copy(out, row)
	return out
}

// InsertColumn clamps c into [0,len(headers)], splices a header at c (right
// padding every row to len(headers) first so alignment is preserved), and
// remaps column metadata via the shift map.
func InsertColumn(t model.Table, c int, name string) model.Table {
	out := t.Clone()
	c = clampInt(c, 0, len(out.Headers))

	for i, row := range out.Rows {
		out.Rows[i] = padRow(row, len(out.Headers))
	}

	out.Headers = append(out.Headers[:c:c], append([]string{name}, out.Headers[c:]...)...)
	for i, row := range out.Rows {
		row = padRow(row, c)
		row = append(row[:c:c], append([]string{""}, row[c:]...)...)
		out.Rows[i] = row
	}
	if len(out.Alignments) > c {
		out.Alignments = append(out.Alignments[:c:c], append([]model.Alignment{model.AlignLeft}, out.Alignments[c:]...)...)
	}

	shift := make(map[int]metaremap.Target, len(out.Headers)-1)
	for old := 0; old < len(out.Headers)-1; old++ {
		if old >= c {
			shift[old] = metaremap.To(old + 1)
		} else {
			shift[old] = metaremap.To(old)
		}
	}
	out.Metadata = metaremap.Apply(out.Metadata, shift)
	return out
}

// DeleteColumns drops headers/rows at indices (sorted descending) and
// remaps column metadata, dropping keys for deleted columns.
func DeleteColumns(t model.Table, indices []int) model.Table {
	out := t.Clone()
	origLen := len(out.Headers)
	sorted := append([]int(nil), indices...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))

	deleted := make(map[int]struct{}, len(sorted))
	for _, idx := range sorted {
		if idx < 0 || idx >= origLen {
			continue
		}
		deleted[idx] = struct{}{}
	}

	for i, row := range out.Rows {
		row = padRow(row, origLen)
		for _, idx := range sorted {
			if idx < 0 || idx >= len(row) {
				continue
			}
			row = append(row[:idx], row[idx+1:]...)
		}
		out.Rows[i] = row
	}
	for _, idx := range sorted {
		if idx < 0 || idx >= len(out.Headers) {
			continue
		}
		out.Headers = append(out.Headers[:idx], out.Headers[idx+1:]...)
	}
	for _, idx := range sorted {
		if idx >= 0 && idx < len(out.Alignments) {
			out.Alignments = append(out.Alignments[:idx], out.Alignments[idx+1:]...)
		}
	}

	shift := make(map[int]metaremap.Target, origLen)
	newIdx := 0
	for old := 0; old < origLen; old++ {
		if _, gone := deleted[old]; gone {
			shift[old] = metaremap.Tombstone()
			continue
		}
		shift[old] = metaremap.To(newIdx)
		newIdx++
	}
	out.Metadata = metaremap.Apply(out.Metadata, shift)
	return out
}

// MoveColumns reorders headers/rows/alignments per the row-move
// algorithm and remaps column metadata with the resulting permutation.
func MoveColumns(t model.Table, indices []int, target int) model.Table {
	out := t.Clone()
	n := len(out.Headers)
	order := reorderByMove(n, indices, target)

	newHeaders := make([]string, n)
	for i, oldIdx := range order {
		newHeaders[i] = out.Headers[oldIdx]
	}
	out.Headers = newHeaders

	for i, row := range out.Rows {
		row = padRow(row, n)
		newRow := make([]string, n)
		for j, oldIdx := range order {
			newRow[j] = row[oldIdx]
		}
		out.Rows[i] = newRow
	}

	if len(out.Alignments) > 0 {
		padded := make([]model.Alignment, n)
		for i := range padded {
			padded[i] = out.AlignmentAt(i)
		}
		newAlign := make([]model.Alignment, n)
		for i, oldIdx := range order {
			newAlign[i] = padded[oldIdx]
		}
		out.Alignments = newAlign
	}

	shift := make(map[int]metaremap.Target, n)
	for newPos, oldIdx := range order {
		shift[oldIdx] = metaremap.To(newPos)
	}
	out.Metadata = metaremap.Apply(out.Metadata, shift)
	return out
}

// ClearColumns sets every cell in the targeted columns to empty string.
// Shape and metadata are unchanged.
func ClearColumns(t model.Table, indices []int) model.Table {
	out := t.Clone()
	for i, row := range out.Rows {
		for _, c := range indices {
			if c >= 0 && c < len(row) {
				row[c] = ""
			}
		}
		out.Rows[i] = row
	}
	return out
}

func ensureColumnMeta(t *model.Table, c int) model.ColumnMeta {
	if t.Metadata.Visual.Columns == nil {
		t.Metadata.Visual.Columns = map[string]model.ColumnMeta{}
	}
	key := strconv.Itoa(c)
	return t.Metadata.Visual.Columns[key]
}

// UpdateColumnWidth writes metadata.visual.columns[c].width.
func UpdateColumnWidth(t model.Table, c int, width int) model.Table {
	out := t.Clone()
	cm := ensureColumnMeta(&out, c)
	cm.Width = width
	out.Metadata.Visual.Columns[strconv.Itoa(c)] = cm
	return out
}

// UpdateColumnFormat writes metadata.visual.columns[c].format.
func UpdateColumnFormat(t model.Table, c int, format string) model.Table {
	out := t.Clone()
	cm := ensureColumnMeta(&out, c)
	cm.Format = format
	out.Metadata.Visual.Columns[strconv.Itoa(c)] = cm
	return out
}

// UpdateColumnAlign writes alignments[c], right-extending alignments to
// len(headers) with AlignLeft as needed.
func UpdateColumnAlign(t model.Table, c int, align model.Alignment) model.Table {
	out := t.Clone()
	for len(out.Alignments) < len(out.Headers) {
		out.Alignments = append(out.Alignments, model.AlignLeft)
	}
	if c >= 0 && c < len(out.Alignments) {
		out.Alignments[c] = align
	}
	return out
}

// UpdateColumnFilter writes metadata.visual.filters[c] to hidden, the list
// of hidden values for that column.
func UpdateColumnFilter(t model.Table, c int, hidden []string) model.Table {
	out := t.Clone()
	if out.Metadata.Visual.Filters == nil {
		out.Metadata.Visual.Filters = map[string][]string{}
	}
	out.Metadata.Visual.Filters[strconv.Itoa(c)] = append([]string(nil), hidden...)
	return out
}

// PasteCells writes a rectangle of data starting at (startRow,startCol),
// optionally consuming the first row as headers, then homogenizes all row
// lengths and the header length to the global max.
func PasteCells(t model.Table, startRow, startCol int, data [][]string, includeHeaders bool) model.Table {
	out := t.Clone()

	rowData := data
	if includeHeaders && len(data) > 0 {
		headerRow := data[0]
		rowData = data[1:]
		needed := startCol + len(headerRow)
		for len(out.Headers) < needed {
			out.Headers = append(out.Headers, "Col "+strconv.Itoa(len(out.Headers)+1))
		}
		for i, v := range headerRow {
			out.Headers[startCol+i] = v
		}
	}

	maxRowWidth := 0
	for _, r := range rowData {
		if len(r) > maxRowWidth {
			maxRowWidth = len(r)
		}
	}

	out.Rows = growRows(out.Rows, len(out.Headers), startRow+len(rowData)-1)
	neededCol := startCol + maxRowWidth
	for i, r := range rowData {
		rowIdx := startRow + i
		out.Rows[rowIdx] = growRow(out.Rows[rowIdx], neededCol-1)
		for j, v := range r {
			out.Rows[rowIdx][startCol+j] = EscapePipe(v)
		}
	}

	globalMax := len(out.Headers)
	for _, r := range out.Rows {
		if len(r) > globalMax {
			globalMax = len(r)
		}
	}
	for len(out.Headers) < globalMax {
		out.Headers = append(out.Headers, "Col "+strconv.Itoa(len(out.Headers)+1))
	}
	for i, r := range out.Rows {
		out.Rows[i] = padRow(r, globalMax)
	}
	return out
}

// Rect is a cell rectangle by inclusive row/col bounds.
type Rect struct {
	MinR, MaxR, MinC, MaxC int
}

// MoveCells extracts the source rectangle (missing cells read as empty),
// grows the destination to fit, clears the source rectangle, and writes the
// destination rectangle. A no-op when the destination equals the source
// origin.
func MoveCells(t model.Table, r Rect, destRow, destCol int) model.Table {
	if r.MinR == destRow && r.MinC == destCol {
		return t.Clone()
	}
	out := t.Clone()
	height := r.MaxR - r.MinR + 1
	width := r.MaxC - r.MinC + 1

	extracted := make([][]string, height)
	for i := 0; i < height; i++ {
		row := make([]string, width)
		srcR := r.MinR + i
		if srcR >= 0 && srcR < len(out.Rows) {
			srcRow := out.Rows[srcR]
			for j := 0; j < width; j++ {
				srcC := r.MinC + j
				if srcC >= 0 && srcC < len(srcRow) {
					row[j] = srcRow[srcC]
				}
			}
		}
		extracted[i] = row
	}

	for i := 0; i < height; i++ {
		srcR := r.MinR + i
		if srcR < 0 || srcR >= len(out.Rows) {
			continue
		}
		srcRow := out.Rows[srcR]
		for j := 0; j < width; j++ {
			srcC := r.MinC + j
			if srcC >= 0 && srcC < len(srcRow) {
				srcRow[srcC] = ""
			}
		}
		out.Rows[srcR] = srcRow
	}

	out.Rows = growRows(out.Rows, len(out.Headers), destRow+height-1)
	for i := 0; i < height; i++ {
		destR := destRow + i
		out.Rows[destR] = growRow(out.Rows[destR], destCol+width-1)
		for j := 0; j < width; j++ {
			out.Rows[destR][destCol+j] = extracted[i][j]
		}
	}
	return out
}
