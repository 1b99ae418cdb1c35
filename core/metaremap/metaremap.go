// Package metaremap implements the column-indexed metadata remap: on
// every row/column mutation, every column-indexed sub-map under a Table's
// metadata is rekeyed in lock-step with a shift map so that keys continue
// to refer to the same columns.
package metaremap

import (
	"strconv"

	"github.com/vinodismyname/mdsheet/core/model"
)

// Target is the result of mapping one old column index: either a new index
// or a tombstone meaning "drop this key".
type Target struct {
	index     int
	tombstone bool
}

// To returns a Target that rekeys to newIndex.
func To(newIndex int) Target { return Target{index: newIndex} }

// Tombstone returns a Target that drops the key.
func Tombstone() Target { return Target{tombstone: true} }

// Shift is a function from old column index to Target. Non-integer keys
// never consult it and pass through unchanged; an integer key with no
// entry is dropped, like a tombstone (callers build Shift maps with one
// entry per current column).
type Shift map[int]Target

// applyColumns rekeys the integer-parsed keys of m using shift, dropping
// tombstone targets and preserving non-integer keys unchanged.
func applyColumns(m map[string]model.ColumnMeta, shift Shift) map[string]model.ColumnMeta {
	if m == nil {
		return nil
	}
	out := make(map[string]model.ColumnMeta, len(m))
	for k, v := range m {
		if n, ok := parseIntKey(k); ok {
			if t, has := shift[n]; has {
				if t.tombstone {
					continue
				}
				out[strconv.Itoa(t.index)] = v
				continue
			}
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func applyValidation(m map[string]model.ValidationRule, shift Shift) map[string]model.ValidationRule {
	if m == nil {
		return nil
	}
	out := make(map[string]model.ValidationRule, len(m))
	for k, v := range m {
		if n, ok := parseIntKey(k); ok {
			if t, has := shift[n]; has {
				if t.tombstone {
					continue
				}
				out[strconv.Itoa(t.index)] = v
				continue
			}
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func applyFilters(m map[string][]string, shift Shift) map[string][]string {
	if m == nil {
		return nil
	}
	out := make(map[string][]string, len(m))
	for k, v := range m {
		if n, ok := parseIntKey(k); ok {
			if t, has := shift[n]; has {
				if t.tombstone {
					continue
				}
				out[strconv.Itoa(t.index)] = v
				continue
			}
			continue
		}
		out[k] = v
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func parseIntKey(k string) (int, bool) {
	n, err := strconv.Atoi(k)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// Apply rekeys every column-indexed sub-map of m per shift: visual.columns,
// visual.validation, visual.filters, and the legacy top-level validation
// alias. visual.formulas is carried verbatim (formula definitions are
// never rekeyed by this function).
func Apply(m model.TableMetadata, shift Shift) model.TableMetadata {
	out := m.Clone()
	out.Visual.Columns = applyColumns(out.Visual.Columns, shift)
	out.Visual.Validation = applyValidation(out.Visual.Validation, shift)
	out.Visual.Filters = applyFilters(out.Visual.Filters, shift)
	out.Validation = applyValidation(out.Validation, shift)
	return out
}
