package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/parser"
)

func TestAddTable_AppendsToSheetAndRegeneratesText(t *testing.T) {
	c := NewContext(doc, parser.DefaultSchema())
	res := c.AddTable(0, "T2", []string{"X", "Y"}, 0)
	require.True(t, res.FileChanged)
	wb := c.Workbook()
	require.Len(t, wb.Sheets[0].Tables, 2)
	require.Equal(t, "T2", wb.Sheets[0].Tables[1].Name)
}

func TestDeleteTable_InvalidIndexErrors(t *testing.T) {
	c := NewContext(doc, parser.DefaultSchema())
	res := c.DeleteTable(0, 9)
	require.NotEmpty(t, res.Error)
}

func TestAddSheet_DefaultsNameWhenEmpty(t *testing.T) {
	c := NewContext(doc, parser.DefaultSchema())
	res := c.AddSheet("", []string{"A"}, -1)
	require.True(t, res.FileChanged)
	wb := c.Workbook()
	require.Len(t, wb.Sheets, 2)
	require.NotEmpty(t, wb.Sheets[1].Name)
}

func TestDeleteSheet_RemovesSheetFromWorkbook(t *testing.T) {
	c := NewContext("# Tables\n\n## S0\n\n## S1\n", parser.DefaultSchema())
	res := c.DeleteSheet(0)
	require.True(t, res.FileChanged)
	wb := c.Workbook()
	require.Len(t, wb.Sheets, 1)
	require.Equal(t, "S1", wb.Sheets[0].Name)
}

func TestMoveSheet_ReordersSheets(t *testing.T) {
	c := NewContext("# Tables\n\n## S0\n\n## S1\n", parser.DefaultSchema())
	res := c.MoveSheet(0, 1, -1, false)
	require.True(t, res.FileChanged)
	wb := c.Workbook()
	require.Equal(t, "S1", wb.Sheets[0].Name)
	require.Equal(t, "S0", wb.Sheets[1].Name)
}
