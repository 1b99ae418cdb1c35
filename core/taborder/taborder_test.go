package taborder

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/model"
)

func TestNatural_OrdersDocsBeforeSheetsThenDocsAfter(t *testing.T) {
	fs := model.FileStructure{
		DocsBeforeWB: []int{0},
		Sheets:       []int{0, 1},
		DocsAfterWB:  []int{1},
	}
	got := Natural(fs)
	require.Equal(t, []model.TabOrderItem{
		{Kind: model.KindDocument, Index: 0},
		{Kind: model.KindSheet, Index: 0},
		{Kind: model.KindSheet, Index: 1},
		{Kind: model.KindDocument, Index: 1},
	}, got)
}

func TestEqual_LengthAndElementwiseMismatch(t *testing.T) {
	a := []model.TabOrderItem{{Kind: model.KindSheet, Index: 0}}
	b := []model.TabOrderItem{{Kind: model.KindSheet, Index: 0}}
	require.True(t, Equal(a, b))

	c := []model.TabOrderItem{{Kind: model.KindDocument, Index: 0}}
	require.False(t, Equal(a, c))

	d := append(b, model.TabOrderItem{Kind: model.KindSheet, Index: 1})
	require.False(t, Equal(a, d))
}

// Invariant 3/4 groundwork: a candidate order equal to natural order never
// requires explicit tab_order metadata.
func TestIsMetadataRequired_FalseWhenCandidateMatchesNatural(t *testing.T) {
	fs := model.FileStructure{Sheets: []int{0, 1}}
	candidate := Natural(fs)
	require.False(t, IsMetadataRequired(candidate, fs))
}

func TestIsMetadataRequired_TrueWhenCandidateDiffers(t *testing.T) {
	fs := model.FileStructure{Sheets: []int{0, 1}}
	candidate := []model.TabOrderItem{
		{Kind: model.KindSheet, Index: 1},
		{Kind: model.KindSheet, Index: 0},
	}
	require.True(t, IsMetadataRequired(candidate, fs))
}
