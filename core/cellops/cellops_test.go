package cellops

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/model"
)

func tableWithColumns(headers []string, cols map[string]model.ColumnMeta) model.Table {
	return model.Table{
		Headers: headers,
		Metadata: model.TableMetadata{
			Visual: model.VisualMetadata{Columns: cols},
		},
	}
}

// Scenario A — insertColumn preserves metadata.
func TestInsertColumn_PreservesMetadata(t *testing.T) {
	t0 := tableWithColumns([]string{"A", "B", "C"}, map[string]model.ColumnMeta{
		"0": {Width: 100},
		"2": {Width: 300},
	})

	got := InsertColumn(t0, 1, "X")

	require.Equal(t, []string{"A", "X", "B", "C"}, got.Headers)
	require.Equal(t, map[string]model.ColumnMeta{
		"0": {Width: 100},
		"3": {Width: 300},
	}, got.Metadata.Visual.Columns)
}

// Scenario B — deleteColumns drops tombstones.
func TestDeleteColumns_DropsTombstones(t *testing.T) {
	t0 := tableWithColumns([]string{"A", "B", "C", "D"}, map[string]model.ColumnMeta{
		"1": {Width: 50},
		"3": {Width: 200},
	})

	got := DeleteColumns(t0, []int{1})

	require.Equal(t, []string{"A", "C", "D"}, got.Headers)
	require.Equal(t, map[string]model.ColumnMeta{
		"2": {Width: 200},
	}, got.Metadata.Visual.Columns)
}

// Scenario C — pipe escape in updateCell.
func TestUpdateCell_EscapesPipeOutsideInlineCode(t *testing.T) {
	t0 := model.Table{Headers: []string{"X"}, Rows: [][]string{{""}}}

	got, err := UpdateCell(t0, 0, 0, "a|b `c|d` e|f")
	require.NoError(t, err)
	require.Equal(t, "a\\|b `c|d` e\\|f", got.Rows[0][0])
}

// Scenario G — moveCells clears source.
func TestMoveCells_ClearsSource(t *testing.T) {
	t0 := model.Table{
		Headers: []string{"A", "B", "C"},
		Rows:    [][]string{{"1", "2", "3"}, {"4", "5", "6"}},
	}

	got := MoveCells(t0, Rect{MinR: 0, MaxR: 0, MinC: 0, MaxC: 1}, 1, 1)

	require.Equal(t, [][]string{
		{"", "", "3"},
		{"4", "1", "2"},
	}, got.Rows)
}

func TestMoveCells_NoOpWhenDestEqualsSource(t *testing.T) {
	t0 := model.Table{
		Headers: []string{"A"},
		Rows:    [][]string{{"1"}},
	}
	got := MoveCells(t0, Rect{MinR: 0, MaxR: 0, MinC: 0, MaxC: 0}, 0, 0)
	require.Equal(t, t0.Rows, got.Rows)
}

func TestMoveRows_PreservesRelativeOrderOfStaying(t *testing.T) {
	t0 := model.Table{
		Headers: []string{"A"},
		Rows:    [][]string{{"r0"}, {"r1"}, {"r2"}, {"r3"}},
	}
	got := MoveRows(t0, []int{0, 2}, 1)
	require.Equal(t, [][]string{{"r0"}, {"r2"}, {"r1"}, {"r3"}}, got.Rows)
}

func TestSortRows_NumericAscending(t *testing.T) {
	t0 := model.Table{
		Headers: []string{"N"},
		Rows:    [][]string{{"10"}, {"2"}, {"1"}},
	}
	got := SortRows(t0, 0, true)
	require.Equal(t, [][]string{{"1"}, {"2"}, {"10"}}, got.Rows)
}

func TestDeleteRows_IgnoresOutOfRange(t *testing.T) {
	t0 := model.Table{Headers: []string{"A"}, Rows: [][]string{{"0"}, {"1"}}}
	got := DeleteRows(t0, []int{5, 0})
	require.Equal(t, [][]string{{"1"}}, got.Rows)
}

func TestUpdateCell_GrowsRowsAndColumns(t *testing.T) {
	t0 := model.Table{Headers: []string{"A"}, Rows: nil}
	got, err := UpdateCell(t0, 2, 0, "v")
	require.NoError(t, err)
	require.Len(t, got.Rows, 3)
	require.Equal(t, "v", got.Rows[2][0])
}

func TestEscapePipe_PreservesInlineCode(t *testing.T) {
	require.Equal(t, "x\\|y `a|b` z", EscapePipe("x|y `a|b` z"))
}
