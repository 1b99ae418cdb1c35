package parser

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/model"
)

const fixture = "# Tables\n\n## Sheet1\n\n### T1\n\n| A | B |\n| - | - |\n| 1 | 2 |\n"

func TestParseWorkbook_ExtractsSheetsTablesAndRows(t *testing.T) {
	wb := ParseWorkbook(fixture, DefaultSchema())
	require.Len(t, wb.Sheets, 1)
	require.Equal(t, "Sheet1", wb.Sheets[0].Name)
	require.Len(t, wb.Sheets[0].Tables, 1)
	tbl := wb.Sheets[0].Tables[0]
	require.Equal(t, "T1", tbl.Name)
	require.Equal(t, []string{"A", "B"}, tbl.Headers)
	require.Equal(t, [][]string{{"1", "2"}}, tbl.Rows)
	require.Equal(t, []model.Alignment{model.AlignLeft, model.AlignLeft}, tbl.Alignments)
}

// Invariant 1 / 5: render then reparse reproduces the same logical tree, and
// a second render/reparse cycle is a fixed point.
func TestParseThenRender_RoundTripsAndIsIdempotent(t *testing.T) {
	schema := DefaultSchema()
	wb1 := ParseWorkbook(fixture, schema)
	md2 := ToMarkdown(wb1, schema)
	wb2 := ParseWorkbook(md2, schema)
	require.Equal(t, wb1, wb2)

	md3 := ToMarkdown(wb2, schema)
	require.Equal(t, md2, md3)
}

func TestToMarkdown_OmitsEmptyMetadataComments(t *testing.T) {
	wb := ParseWorkbook(fixture, DefaultSchema())
	md := ToMarkdown(wb, DefaultSchema())
	require.NotContains(t, md, workbookMetaMarker)
	require.NotContains(t, md, tableMetaMarker)
}

func TestToMarkdown_EmitsWorkbookMetadataWhenTabOrderSet(t *testing.T) {
	wb := ParseWorkbook(fixture, DefaultSchema())
	wb.Metadata.TabOrder = []model.TabOrderItem{{Kind: model.KindSheet, Index: 0}}
	md := ToMarkdown(wb, DefaultSchema())
	require.Contains(t, md, workbookMetaMarker)
	require.Contains(t, md, `"tab_order"`)
}

func TestJSON_ProjectsSheetsAndTables(t *testing.T) {
	wb := ParseWorkbook(fixture, DefaultSchema())
	out := JSON(wb)
	require.Equal(t, "Tables", out["name"])
	sheets, ok := out["sheets"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, sheets, 1)
	require.Equal(t, "Sheet1", sheets[0]["name"])
}

func TestParseWorkbook_PipeEscapeSurvivesSplit(t *testing.T) {
	text := "# Tables\n\n## S1\n\n### T1\n\n| A |\n| - |\n| a\\|b |\n"
	wb := ParseWorkbook(text, DefaultSchema())
	require.Equal(t, "a\\|b", wb.Sheets[0].Tables[0].Rows[0][0])
}
