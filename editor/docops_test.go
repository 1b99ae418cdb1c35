package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/parser"
)

func TestAddDocument_InsertsHeadingAndReturnsFileChanged(t *testing.T) {
	c := NewContext("# D1\n\n# Tables\n\n## S1\n", parser.DefaultSchema())
	res := c.AddDocument("New", 0, false, -1)
	require.True(t, res.FileChanged)
	require.Contains(t, c.Text(), "# New")
}

func TestRenameDocument_UpdatesHeadingText(t *testing.T) {
	c := NewContext("# D1\n\nbody\n", parser.DefaultSchema())
	res := c.RenameDocument(0, "Renamed")
	require.True(t, res.FileChanged)
	require.Contains(t, c.Text(), "# Renamed")
}

func TestRenameDocument_InvalidIndexSurfacesError(t *testing.T) {
	c := NewContext("# D1\n\nbody\n", parser.DefaultSchema())
	res := c.RenameDocument(5, "X")
	require.NotEmpty(t, res.Error)
}

func TestDeleteDocument_RemovesSection(t *testing.T) {
	c := NewContext("# D1\n\nbody1\n\n# D2\n\nbody2\n", parser.DefaultSchema())
	res := c.DeleteDocument(0)
	require.True(t, res.FileChanged)
	require.NotContains(t, c.Text(), "# D1")
	require.Contains(t, c.Text(), "# D2")
}

func TestMoveDocumentSection_RelocatesToEnd(t *testing.T) {
	c := NewContext("# D1\n\nbody1\n\n# D2\n\nbody2\n", parser.DefaultSchema())
	res := c.MoveDocumentSection(0, 2, false, false)
	require.True(t, res.FileChanged)
	text := c.Text()
	require.Greater(t, indexOf(text, "# D1"), indexOf(text, "# D2"))
}

func TestMoveWorkbookSection_NoWorkbookErrors(t *testing.T) {
	c := NewContext("# D1\n\nbody\n", parser.DefaultSchema())
	res := c.MoveWorkbookSection(0, true, false)
	require.NotEmpty(t, res.Error)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
