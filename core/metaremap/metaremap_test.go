package metaremap

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vinodismyname/mdsheet/core/model"
)

func TestApply_ColumnsFormulasUntouched(t *testing.T) {
	m := model.TableMetadata{
		Visual: model.VisualMetadata{
			Columns: map[string]model.ColumnMeta{"0": {Width: 1}, "1": {Width: 2}},
			Formulas: map[string]model.FormulaDef{
				"1": {Kind: "arithmetic", Arithmetic: &model.ArithmeticFormula{FunctionType: "sum"}},
			},
		},
	}
	shift := Shift{0: To(1), 1: Tombstone()}
	got := Apply(m, shift)

	require.Equal(t, map[string]model.ColumnMeta{"1": {Width: 1}}, got.Visual.Columns)
	// Formulas are carried verbatim, never rekeyed.
	require.Equal(t, m.Visual.Formulas, got.Visual.Formulas)
}

func TestApply_TombstoneDropsLegacyAndNestedValidation(t *testing.T) {
	m := model.TableMetadata{
		Validation: map[string]model.ValidationRule{"0": {Kind: "integer"}},
		Visual: model.VisualMetadata{
			Validation: map[string]model.ValidationRule{"0": {Kind: "integer"}},
		},
	}
	shift := Shift{0: Tombstone()}
	got := Apply(m, shift)

	require.Nil(t, got.Validation)
	require.Nil(t, got.Visual.Validation)
}

func TestApply_NonIntegerKeysPassThroughUnchanged(t *testing.T) {
	m := model.TableMetadata{
		Visual: model.VisualMetadata{
			Filters: map[string][]string{"note": {"x"}},
		},
	}
	got := Apply(m, Shift{})
	require.Equal(t, map[string][]string{"note": {"x"}}, got.Visual.Filters)
}

// Invariant 2: every key of every remapped sub-map lies in [0, width).
func TestApply_KeyClosureAfterShift(t *testing.T) {
	m := model.TableMetadata{
		Visual: model.VisualMetadata{
			Columns: map[string]model.ColumnMeta{"0": {}, "1": {}, "2": {}},
		},
	}
	// Simulate deleting column 1 from a 3-wide table: 0->0, 1->tombstone, 2->1.
	shift := Shift{0: To(0), 1: Tombstone(), 2: To(1)}
	got := Apply(m, shift)

	width := 2
	for k := range got.Visual.Columns {
		n, ok := parseIntKey(k)
		require.True(t, ok)
		require.GreaterOrEqual(t, n, 0)
		require.Less(t, n, width)
	}
}
