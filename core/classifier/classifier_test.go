package classifier

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/model"
)

func TestClassify_NoOpWhenDropIsSelfOrNeighborGap(t *testing.T) {
	fs := model.FileStructure{Sheets: []int{0, 1}}
	tabs := []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindSheet, Index: 1},
	}

	require.Equal(t, NoOp, Classify(tabs, 0, 0, fs).Type)
	require.Equal(t, NoOp, Classify(tabs, 0, 1, fs).Type)
}

func TestClassify_PureSheetReorderIsPhysicalOnly(t *testing.T) {
	fs := model.FileStructure{Sheets: []int{0, 1}}
	tabs := []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindSheet, Index: 1},
	}

	got := Classify(tabs, 0, 2, fs)
	require.Equal(t, Physical, got.Type)
	require.NotNil(t, got.PhysicalMove)
	require.Equal(t, MoveSheetKind, got.PhysicalMove.Kind)
	require.Equal(t, 0, got.PhysicalMove.SheetFrom)
	require.Equal(t, 1, got.PhysicalMove.SheetTo)
	require.Nil(t, got.SecondaryMove)
	require.False(t, got.MetadataRequired)
	require.Nil(t, got.NewTabOrder)
}

func TestClassify_PureDocumentReorderWithinSameZone(t *testing.T) {
	fs := model.FileStructure{DocsBeforeWB: []int{0, 1}, Sheets: []int{0}, HasWorkbook: true}
	tabs := []model.TabOrderItem{
		{Kind: model.KindDocument, Index: 0},
		{Kind: model.KindDocument, Index: 1},
		{Kind: model.KindSheet, Index: 0},
	}

	got := Classify(tabs, 0, 2, fs)
	require.Equal(t, Physical, got.Type)
	require.NotNil(t, got.PhysicalMove)
	require.Equal(t, MoveDocumentKind, got.PhysicalMove.Kind)
	require.Equal(t, 0, got.PhysicalMove.DocFrom)
	require.Equal(t, 2, got.PhysicalMove.DocTo)
	require.False(t, got.PhysicalMove.DocToAfterWB)
	require.False(t, got.PhysicalMove.DocToBeforeWB)
	require.False(t, got.MetadataRequired)
}

// Scenario E: dragging Sheet 0 from index 0 to gap 2 across the interleaved
// strip [Sheet0, Doc0, Sheet1, Doc1] normalizes by relocating the Workbook
// immediately after Doc0, rather than moving Doc0 itself, because the
// dragged tab is a Sheet.
func TestClassify_WorkbookNormalizationForSheetCrossingDocument(t *testing.T) {
	fs := model.FileStructure{Sheets: []int{0, 1}, DocsAfterWB: []int{0, 1}, HasWorkbook: true}
	tabs := []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindDocument, Index: 0},
		{Kind: model.KindSheet, Index: 1},
		{Kind: model.KindDocument, Index: 1},
	}

	got := Classify(tabs, 0, 2, fs)
	require.Equal(t, Physical, got.Type)
	require.NotNil(t, got.PhysicalMove)
	require.Equal(t, MoveWorkbookKind, got.PhysicalMove.Kind)
	require.Equal(t, WorkbookAfterDoc, got.PhysicalMove.Direction)
	require.Equal(t, 0, got.PhysicalMove.TargetDocIndex)
	require.Nil(t, got.SecondaryMove)
	require.False(t, got.MetadataRequired)
	require.Nil(t, got.NewTabOrder)
}

// Dragging a Sheet past every Document to the very end of the strip
// rescues with the compound plan: the Workbook settles after the last
// Document and the dragged Sheet moves to the end of the block, with the
// remaining interleaving (one Sheet before the Documents, one after)
// carried by tab_order.
func TestClassify_SheetDraggedPastAllDocumentsUsesCompoundPlan(t *testing.T) {
	fs := model.FileStructure{Sheets: []int{0, 1}, DocsAfterWB: []int{0, 1}, HasWorkbook: true}
	tabs := []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindSheet, Index: 1},
		{Kind: model.KindDocument, Index: 0},
		{Kind: model.KindDocument, Index: 1},
	}

	got := Classify(tabs, 0, 4, fs)
	require.Equal(t, PhysicalMetadata, got.Type)
	require.NotNil(t, got.PhysicalMove)
	require.Equal(t, MoveWorkbookKind, got.PhysicalMove.Kind)
	require.Equal(t, WorkbookAfterDoc, got.PhysicalMove.Direction)
	require.Equal(t, 1, got.PhysicalMove.TargetDocIndex)
	require.NotNil(t, got.SecondaryMove)
	require.Equal(t, MoveSheetKind, got.SecondaryMove.Kind)
	require.Equal(t, 0, got.SecondaryMove.SheetFrom)
	require.Equal(t, 1, got.SecondaryMove.SheetTo)
	require.True(t, got.MetadataRequired)
	require.Equal(t, []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 1},
		{Kind: model.KindDocument, Index: 0},
		{Kind: model.KindDocument, Index: 1},
		{Kind: model.KindSheet, Index: 0},
	}, got.NewTabOrder)
}

// Dragging a Document to sit between two Sheets can never be realized
// physically (Sheets occupy one contiguous Workbook block), so it falls
// back to tab_order metadata.
func TestClassify_DocumentBetweenSheetsRequiresMetadata(t *testing.T) {
	fs := model.FileStructure{Sheets: []int{0, 1}, DocsAfterWB: []int{0}, HasWorkbook: true}
	tabs := []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindSheet, Index: 1},
		{Kind: model.KindDocument, Index: 0},
	}

	got := Classify(tabs, 2, 1, fs)
	require.Equal(t, Metadata, got.Type)
	require.Nil(t, got.PhysicalMove)
	require.True(t, got.MetadataRequired)
	require.Equal(t, []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindDocument, Index: 0},
		{Kind: model.KindSheet, Index: 1},
	}, got.NewTabOrder)
}

// A drag that lands back on the natural order drops tab_order entirely,
// even though the strip being dragged from still carried an explicit
// (non-natural) override.
func TestClassify_RestoresNaturalOrderDropsTabOrder(t *testing.T) {
	fs := model.FileStructure{Sheets: []int{0, 1}, DocsAfterWB: []int{0, 1}, HasWorkbook: true}
	tabs := []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 1},
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindDocument, Index: 0},
		{Kind: model.KindDocument, Index: 1},
	}

	got := Classify(tabs, 0, 2, fs)
	require.Equal(t, Physical, got.Type)
	require.False(t, got.MetadataRequired)
	require.Nil(t, got.NewTabOrder)
}
