package structure

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/scan"
)

const sample = "# D1\n\nintro text\n\n# Tables\n\n## S1\n\n### T1\n\n| A |\n| - |\n| 1 |\n\n## S2\n\n# D2\n\nbody\n"

func TestWorkbookRange_LocatesMarkerAndEnd(t *testing.T) {
	r := WorkbookRange(sample, "# Tables", 2)
	require.Equal(t, 4, r.Start)
	// ends right before "# D2"
	require.Less(t, r.Start, r.End)
}

func TestWorkbookRange_AbsentMarker(t *testing.T) {
	r := WorkbookRange("# D1\nbody\n", "# Tables", 2)
	require.Equal(t, r.Start, r.End)
}

func TestDocumentSectionRange_SkipsMarker(t *testing.T) {
	r0, err := DocumentSectionRange(sample, "# Tables", 0)
	require.NoError(t, err)
	require.Equal(t, 0, r0.Start)

	r1, err := DocumentSectionRange(sample, "# Tables", 1)
	require.NoError(t, err)
	require.Greater(t, r1.Start, r0.Start)

	_, err = DocumentSectionRange(sample, "# Tables", 2)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestExtract_FlatSectionSequence(t *testing.T) {
	sections := Extract(sample, "# Tables")
	require.Len(t, sections, 3)
	require.Equal(t, model.SectionDocument, sections[0].Kind)
	require.Equal(t, "D1", sections[0].Title)
	require.Equal(t, model.SectionWorkbook, sections[1].Kind)
	require.Equal(t, model.SectionDocument, sections[2].Kind)
	require.Equal(t, "D2", sections[2].Title)
}

func TestFileStructureOf_CountsZonesAndSheets(t *testing.T) {
	fs := FileStructureOf(sample, "# Tables", 2)
	require.Equal(t, []int{0}, fs.DocsBeforeWB)
	require.Equal(t, []int{1}, fs.DocsAfterWB)
	require.Equal(t, []int{0, 1}, fs.Sheets)
	require.True(t, fs.HasWorkbook)
}

// Invariant 7: heading-like lines inside fenced code blocks are never
// structural boundaries.
func TestWorkbookRange_IgnoresHeadingsInsideFence(t *testing.T) {
	text := "# Tables\n\n## S1\n\n```\n# Tables\n## fake\n```\n\n## S2\n"
	r := WorkbookRange(text, "# Tables", 2)
	require.Equal(t, 0, r.Start)
	require.Equal(t, len(scan.Lines(text)), r.End)
}
