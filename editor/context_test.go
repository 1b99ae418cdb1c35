package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/parser"
)

const doc = "# Tables\n\n## Sheet1\n\n### T1\n\n| A | B |\n| - | - |\n| 1 | 2 |\n"

func TestNewContext_ParsesOnConstruction(t *testing.T) {
	c := NewContext(doc, parser.DefaultSchema())
	wb := c.Workbook()
	require.Len(t, wb.Sheets, 1)
	require.Equal(t, "Sheet1", wb.Sheets[0].Name)
}

func TestGetState_IncludesHeaderLineAndStructure(t *testing.T) {
	c := NewContext(doc, parser.DefaultSchema())
	state := c.GetState()

	structureMap, ok := state["structure"].(map[string]any)
	require.True(t, ok)
	require.Equal(t, true, structureMap["hasWorkbook"])

	wbMap, ok := state["workbook"].(map[string]any)
	require.True(t, ok)
	sheets, ok := wbMap["sheets"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, sheets, 1)
	require.Equal(t, 2, sheets[0]["header_line"])
}

func TestInsertColumn_ThenGenerateRange_ReparsesUpdatedTable(t *testing.T) {
	c := NewContext(doc, parser.DefaultSchema())
	res := c.InsertColumn(0, 0, 1, "NEW")
	require.True(t, res.FileChanged)
	require.Empty(t, res.Error)

	wb := c.Workbook()
	require.Equal(t, []string{"A", "NEW", "B"}, wb.Sheets[0].Tables[0].Headers)
	require.Contains(t, c.Text(), "NEW")
}

func TestUpdateCell_InvalidSheetIndexSurfacesError(t *testing.T) {
	c := NewContext(doc, parser.DefaultSchema())
	res := c.UpdateCell(9, 0, 0, 0, "x")
	require.NotEmpty(t, res.Error)
	require.False(t, res.FileChanged)
}

func TestReset_ReparsesFromNewText(t *testing.T) {
	c := NewContext(doc, parser.DefaultSchema())
	c.Reset("# Tables\n\n## Other\n")
	wb := c.Workbook()
	require.Len(t, wb.Sheets, 1)
	require.Equal(t, "Other", wb.Sheets[0].Name)
}

func TestReorderTabs_NoOpWhenDropIsSelfGap(t *testing.T) {
	text := "# Tables\n\n## S0\n\n## S1\n"
	c := NewContext(text, parser.DefaultSchema())
	res := c.ReorderTabs(0, 0)
	require.False(t, res.FileChanged)
	require.Empty(t, res.Error)
}

func TestReorderTabs_PhysicalSwapReordersSheetsInText(t *testing.T) {
	text := "# Tables\n\n## S0\n\n## S1\n"
	c := NewContext(text, parser.DefaultSchema())
	res := c.ReorderTabs(0, 2)
	require.True(t, res.FileChanged)
	wb := c.Workbook()
	require.Equal(t, "S1", wb.Sheets[0].Name)
	require.Equal(t, "S0", wb.Sheets[1].Name)
}

func TestReorderTabs_EmptyTabStripErrors(t *testing.T) {
	text := "# Tables\n"
	c := NewContext(text, parser.DefaultSchema())
	res := c.ReorderTabs(0, 1)
	require.NotEmpty(t, res.Error)
}
