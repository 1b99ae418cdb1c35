package executor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/classifier"
	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/parser"
	"github.com/vinodismyname/mdsheet/core/structure"
)

func TestApply_NoOpReturnsTextUnchanged(t *testing.T) {
	text := "# Tables\n\n## S0\n\n## S1\n"
	schema := parser.DefaultSchema()
	fs := structure.FileStructureOf(text, schema.RootMarker, schema.SheetHeaderLevel)
	wb := parser.ParseWorkbook(text, schema)

	got, err := Apply(text, wb, schema, fs, classifier.Action{Type: classifier.NoOp})
	require.NoError(t, err)
	require.Equal(t, text, got)
}

func TestApply_PhysicalReordersSheetsWithoutTabOrder(t *testing.T) {
	text := "# Tables\n\n## S0\n\n## S1\n"
	schema := parser.DefaultSchema()
	fs := structure.FileStructureOf(text, schema.RootMarker, schema.SheetHeaderLevel)
	wb := parser.ParseWorkbook(text, schema)

	action := classifier.Action{
		Type: classifier.Physical,
		PhysicalMove: &classifier.PhysicalMove{
			Kind:      classifier.MoveSheetKind,
			SheetFrom: 0,
			SheetTo:   1,
		},
	}
	got, err := Apply(text, wb, schema, fs, action)
	require.NoError(t, err)

	s1Pos := indexOf(got, "## S1")
	s0Pos := indexOf(got, "## S0")
	require.Greater(t, s0Pos, s1Pos)
	require.NotContains(t, got, "tab_order")
}

func TestApply_MetadataWritesTabOrderWithoutTouchingDocuments(t *testing.T) {
	text := "# D1\n\nkeep me\n\n# Tables\n\n## S0\n\n## S1\n"
	schema := parser.DefaultSchema()
	fs := structure.FileStructureOf(text, schema.RootMarker, schema.SheetHeaderLevel)
	wb := parser.ParseWorkbook(text, schema)

	action := classifier.Action{
		Type: classifier.Metadata,
		NewTabOrder: []model.TabOrderItem{
			{Kind: model.KindSheet, Index: 1},
			{Kind: model.KindSheet, Index: 0},
		},
		MetadataRequired: true,
	}
	got, err := Apply(text, wb, schema, fs, action)
	require.NoError(t, err)

	require.Contains(t, got, "keep me")
	require.Contains(t, got, "tab_order")
	require.Contains(t, got, "## S0")
	require.Contains(t, got, "## S1")
}

func TestApply_PhysicalMetadataMovesWorkbookAndKeepsTabOrder(t *testing.T) {
	text := "# Tables\n\n## S0\n\n## S1\n\n# D0\n\nkeep me\n"
	schema := parser.DefaultSchema()
	fs := structure.FileStructureOf(text, schema.RootMarker, schema.SheetHeaderLevel)
	wb := parser.ParseWorkbook(text, schema)

	action := classifier.Action{
		Type: classifier.PhysicalMetadata,
		PhysicalMove: &classifier.PhysicalMove{
			Kind:           classifier.MoveWorkbookKind,
			Direction:      classifier.WorkbookAfterDoc,
			TargetDocIndex: 0,
		},
		NewTabOrder: []model.TabOrderItem{
			{Kind: model.KindSheet, Index: 1},
			{Kind: model.KindDocument, Index: 0},
			{Kind: model.KindSheet, Index: 0},
		},
		MetadataRequired: true,
	}
	got, err := Apply(text, wb, schema, fs, action)
	require.NoError(t, err)

	require.Contains(t, got, "keep me")
	require.Contains(t, got, "tab_order")
	d0Pos := indexOf(got, "# D0")
	tablesPos := indexOf(got, "# Tables")
	require.Greater(t, tablesPos, d0Pos)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
