package generator

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/parser"
	"github.com/vinodismyname/mdsheet/core/structure"
)

// Scenario D: an explicit tab_order equal to the natural order is pruned
// away entirely rather than rendered as a metadata comment.
func TestGenerate_PrunesRedundantTabOrder(t *testing.T) {
	text := "# D1\n\nintro\n\n# Tables\n\n## S1\n\n## S2\n\n# D2\n\nbody\n"
	schema := parser.DefaultSchema()
	fs := structure.FileStructureOf(text, schema.RootMarker, schema.SheetHeaderLevel)

	wb := parser.ParseWorkbook(text, schema)
	wb.Metadata.TabOrder = []model.TabOrderItem{
		{Kind: model.KindDocument, Index: 0},
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindSheet, Index: 1},
		{Kind: model.KindDocument, Index: 1},
	}

	rep := Generate(text, wb, schema, fs)
	require.NotContains(t, rep.Content, "tab_order")
}

func TestGenerate_KeepsTabOrderWhenItDiffersFromNatural(t *testing.T) {
	text := "# Tables\n\n## S1\n\n## S2\n"
	schema := parser.DefaultSchema()
	fs := structure.FileStructureOf(text, schema.RootMarker, schema.SheetHeaderLevel)

	wb := parser.ParseWorkbook(text, schema)
	wb.Metadata.TabOrder = []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 1},
		{Kind: model.KindSheet, Index: 0},
	}

	rep := Generate(text, wb, schema, fs)
	require.Contains(t, rep.Content, "tab_order")
}

// Invariant 6: regenerating the Workbook region never touches Document
// region text outside its own line span.
func TestGenerate_ApplyLeavesDocumentRegionsUntouched(t *testing.T) {
	text := "# D1\n\nintro unchanged\n\n# Tables\n\n## S1\n\n## S2\n\n# D2\n\nbody unchanged\n"
	schema := parser.DefaultSchema()
	fs := structure.FileStructureOf(text, schema.RootMarker, schema.SheetHeaderLevel)

	wb := parser.ParseWorkbook(text, schema)
	wb.Sheets[0].Name = "Renamed"

	rep := Generate(text, wb, schema, fs)
	newText := Apply(text, rep)

	require.Contains(t, newText, "intro unchanged")
	require.Contains(t, newText, "body unchanged")
	require.Contains(t, newText, "## Renamed")
	require.NotContains(t, newText, "## S1")
}

func TestApply_PreservesAbsenceOfTrailingNewline(t *testing.T) {
	text := "# Tables\n\n## S1"
	schema := parser.DefaultSchema()
	fs := structure.FileStructureOf(text, schema.RootMarker, schema.SheetHeaderLevel)
	wb := parser.ParseWorkbook(text, schema)

	rep := Generate(text, wb, schema, fs)
	newText := Apply(text, rep)
	require.False(t, len(newText) > 0 && newText[len(newText)-1] == '\n')
}
