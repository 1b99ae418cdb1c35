package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTable_CellOutOfRangeReadsEmpty(t *testing.T) {
	tbl := Table{Rows: [][]string{{"a", "b"}}}
	require.Equal(t, "a", tbl.Cell(0, 0))
	require.Equal(t, "", tbl.Cell(1, 0))
	require.Equal(t, "", tbl.Cell(0, 5))
	require.Equal(t, "", tbl.Cell(-1, 0))
}

func TestTable_AlignmentAtDefaultsLeft(t *testing.T) {
	tbl := Table{Alignments: []Alignment{AlignRight}}
	require.Equal(t, AlignRight, tbl.AlignmentAt(0))
	require.Equal(t, AlignLeft, tbl.AlignmentAt(1))
}

func TestTable_CloneIsIndependent(t *testing.T) {
	tbl := Table{Headers: []string{"A"}, Rows: [][]string{{"1"}}}
	clone := tbl.Clone()
	clone.Headers[0] = "Z"
	clone.Rows[0][0] = "9"
	require.Equal(t, "A", tbl.Headers[0])
	require.Equal(t, "1", tbl.Rows[0][0])
}

func TestTableMetadata_AmbiguousDetectsDisagreement(t *testing.T) {
	m := TableMetadata{
		Validation: map[string]ValidationRule{"0": {Kind: "integer"}},
		Visual:     VisualMetadata{Validation: map[string]ValidationRule{"0": {Kind: "email"}}},
	}
	require.True(t, m.Ambiguous())

	agree := TableMetadata{
		Validation: map[string]ValidationRule{"0": {Kind: "integer"}},
		Visual:     VisualMetadata{Validation: map[string]ValidationRule{"0": {Kind: "integer"}}},
	}
	require.False(t, agree.Ambiguous())
}

func TestTableMetadata_AmbiguousFalseWhenOneSideEmpty(t *testing.T) {
	m := TableMetadata{Validation: map[string]ValidationRule{"0": {Kind: "integer"}}}
	require.False(t, m.Ambiguous())
}

func TestTabOrderItem_Equal(t *testing.T) {
	a := TabOrderItem{Kind: KindSheet, Index: 1}
	b := TabOrderItem{Kind: KindSheet, Index: 1}
	c := TabOrderItem{Kind: KindDocument, Index: 1}
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestWorkbookMetadata_EmptyAndClone(t *testing.T) {
	var m WorkbookMetadata
	require.True(t, m.Empty())

	m.TabOrder = []TabOrderItem{{Kind: KindSheet, Index: 0}}
	require.False(t, m.Empty())

	clone := m.Clone()
	clone.TabOrder[0].Index = 9
	require.Equal(t, 0, m.TabOrder[0].Index)
}

func TestFileStructure_NumDocsAndNumSheets(t *testing.T) {
	fs := FileStructure{DocsBeforeWB: []int{0}, DocsAfterWB: []int{1, 2}, Sheets: []int{0, 1, 2}}
	require.Equal(t, 3, fs.NumDocs())
	require.Equal(t, 3, fs.NumSheets())
}
