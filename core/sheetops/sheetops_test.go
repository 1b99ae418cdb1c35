package sheetops

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/model"
)

func TestAddTable_InsertsAfterIndex(t *testing.T) {
	s := model.Sheet{Tables: []model.Table{{Name: "T0"}, {Name: "T1"}}}
	got := AddTable(s, model.Table{Name: "NEW"}, 0)
	require.Equal(t, []string{"T0", "NEW", "T1"}, tableNames(got))
}

func TestAddTable_AppendsWhenAfterIdxOutOfRange(t *testing.T) {
	s := model.Sheet{Tables: []model.Table{{Name: "T0"}}}
	got := AddTable(s, model.Table{Name: "NEW"}, -1)
	require.Equal(t, []string{"T0", "NEW"}, tableNames(got))
}

func tableNames(s model.Sheet) []string {
	out := make([]string, len(s.Tables))
	for i, t := range s.Tables {
		out[i] = t.Name
	}
	return out
}

func TestDeleteTable_InvalidIndex(t *testing.T) {
	s := model.Sheet{Tables: []model.Table{{Name: "T0"}}}
	_, err := DeleteTable(s, 5)
	require.Error(t, err)
}

func TestDefaultSheetName_SkipsTaken(t *testing.T) {
	w := model.Workbook{Sheets: []model.Sheet{{Name: "Sheet 1"}, {Name: "Sheet 2"}}}
	require.Equal(t, "Sheet 3", DefaultSheetName(w))
}

func TestAddSheet_DefaultsNameAndColumns(t *testing.T) {
	w := model.Workbook{}
	got := AddSheet(w, "", nil, -1)
	require.Len(t, got.Sheets, 1)
	require.Equal(t, "Sheet 1", got.Sheets[0].Name)
	require.Equal(t, DefaultColumns, got.Sheets[0].Tables[0].Headers)
}

func TestDeleteSheet_DecrementsTabOrder(t *testing.T) {
	w := model.Workbook{
		Sheets: []model.Sheet{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		Metadata: model.WorkbookMetadata{TabOrder: []model.TabOrderItem{
			{Kind: model.KindSheet, Index: 0},
			{Kind: model.KindSheet, Index: 1},
			{Kind: model.KindSheet, Index: 2},
		}},
	}
	got, err := DeleteSheet(w, 1)
	require.NoError(t, err)
	require.Equal(t, []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindSheet, Index: 1},
	}, got.Metadata.TabOrder)
}

func TestMoveSheet_PhysicallyReorders(t *testing.T) {
	w := model.Workbook{Sheets: []model.Sheet{{Name: "A"}, {Name: "B"}, {Name: "C"}}}
	got, err := MoveSheet(w, 0, 2, -1, false)
	require.NoError(t, err)
	require.Equal(t, []string{"B", "C", "A"}, sheetNames(got))
}

func sheetNames(w model.Workbook) []string {
	out := make([]string, len(w.Sheets))
	for i, s := range w.Sheets {
		out[i] = s.Name
	}
	return out
}

func TestMoveSheet_ClearTabOrder(t *testing.T) {
	w := model.Workbook{
		Sheets:   []model.Sheet{{Name: "A"}, {Name: "B"}},
		Metadata: model.WorkbookMetadata{TabOrder: []model.TabOrderItem{{Kind: model.KindSheet, Index: 0}}},
	}
	got, err := MoveSheet(w, 0, 1, -1, true)
	require.NoError(t, err)
	require.Nil(t, got.Metadata.TabOrder)
}

func TestReorderTabOrder_MovesAndReinsertsAtTarget(t *testing.T) {
	order := []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindDocument, Index: 0},
		{Kind: model.KindSheet, Index: 1},
	}
	got := ReorderTabOrder(order, model.KindSheet, 0, 1, 2)
	// Sheet(0) moves to physical slot 1; reinserted at tab-order position 2.
	require.Len(t, got, 3)
	require.Equal(t, model.TabOrderItem{Kind: model.KindSheet, Index: 1}, got[2])
}
