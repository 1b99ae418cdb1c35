// Package taborder derives the natural tab order from a FileStructure
// and decides whether an explicit tab_order override is required.
package taborder

import "github.com/vinodismyname/mdsheet/core/model"

// Natural returns the natural visual sequence: documents before the
// Workbook, then every Sheet, then documents after the Workbook, each in
// file order.
func Natural(fs model.FileStructure) []model.TabOrderItem {
	out := make([]model.TabOrderItem, 0, fs.NumDocs()+fs.NumSheets())
	for _, i := range fs.DocsBeforeWB {
		out = append(out, model.TabOrderItem{Kind: model.KindDocument, Index: i})
	}
	for _, i := range fs.Sheets {
		out = append(out, model.TabOrderItem{Kind: model.KindSheet, Index: i})
	}
	for _, i := range fs.DocsAfterWB {
		out = append(out, model.TabOrderItem{Kind: model.KindDocument, Index: i})
	}
	return out
}

// Equal reports element-wise (kind,index) equality between two orders.
func Equal(a, b []model.TabOrderItem) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// IsMetadataRequired reports whether candidate differs from the natural
// order derived from fs, under element-wise (kind,index) equality.
func IsMetadataRequired(candidate []model.TabOrderItem, fs model.FileStructure) bool {
	return !Equal(candidate, Natural(fs))
}
