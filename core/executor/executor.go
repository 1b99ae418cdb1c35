// Package executor carries out a classifier.Action against a document:
// any Sheet reorder and tab_order bookkeeping is folded into the
// Workbook region first, via sheetops and a regenerated Workbook slice,
// and only then is the relocated Document or Workbook block moved as a
// contiguous text range, so the move primitive always operates on
// already-current content.
package executor

import (
	"github.com/vinodismyname/mdsheet/core/classifier"
	"github.com/vinodismyname/mdsheet/core/docops"
	"github.com/vinodismyname/mdsheet/core/generator"
	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/parser"
	"github.com/vinodismyname/mdsheet/core/sheetops"
)

// Apply realizes action against originalText and returns the new text.
func Apply(originalText string, wb model.Workbook, schema parser.Schema, fs model.FileStructure, action classifier.Action) (string, error) {
	schema = schema.Normalize()
	switch action.Type {
	case classifier.NoOp:
		return originalText, nil
	case classifier.Metadata:
		return writeTabOrder(originalText, wb, schema, fs, action.NewTabOrder)
	case classifier.Physical, classifier.PhysicalMetadata:
		return applyPhysical(originalText, wb, schema, fs, action)
	default:
		return originalText, nil
	}
}

// writeTabOrder regenerates the Workbook region with order written as its
// tab_order (or cleared, when order is nil).
func writeTabOrder(text string, wb model.Workbook, schema parser.Schema, fs model.FileStructure, order []model.TabOrderItem) (string, error) {
	newWB := wb.Clone()
	if order == nil {
		newWB.Metadata.TabOrder = nil
	} else {
		newWB.Metadata.TabOrder = append([]model.TabOrderItem(nil), order...)
	}
	rep := generator.Generate(text, newWB, schema, fs)
	return generator.Apply(text, rep), nil
}

// applyPhysical folds any Sheet move(s) and tab_order bookkeeping into one
// Workbook regeneration, then dispatches the primary move to the
// moveDocument or moveWorkbook text primitive when the dragged tab or the
// Workbook normalization crossed a Document boundary.
func applyPhysical(text string, wb model.Workbook, schema parser.Schema, fs model.FileStructure, action classifier.Action) (string, error) {
	newWB, err := applySheetMoves(wb, action.PhysicalMove, action.SecondaryMove)
	if err != nil {
		return text, err
	}
	if action.MetadataRequired {
		newWB.Metadata.TabOrder = append([]model.TabOrderItem(nil), action.NewTabOrder...)
	} else {
		newWB.Metadata.TabOrder = nil
	}

	rep := generator.Generate(text, newWB, schema, fs)
	text = generator.Apply(text, rep)

	move := action.PhysicalMove
	if move == nil {
		return text, nil
	}
	switch move.Kind {
	case classifier.MoveDocumentKind:
		return docops.MoveDocumentSection(text, schema.RootMarker, schema.SheetHeaderLevel, move.DocFrom, move.DocTo, move.DocToAfterWB, move.DocToBeforeWB)
	case classifier.MoveWorkbookKind:
		toAfterDoc := move.Direction == classifier.WorkbookAfterDoc
		toBeforeDoc := move.Direction == classifier.WorkbookBeforeDoc
		return docops.MoveWorkbookSection(text, schema.RootMarker, schema.SheetHeaderLevel, move.TargetDocIndex, toAfterDoc, toBeforeDoc)
	default:
		return text, nil
	}
}

// applySheetMoves runs sheetops.MoveSheet for each move that targets the
// Sheet list, leaving tab_order untouched (the caller writes it once,
// computed by the classifier, rather than via MoveSheet's own
// bookkeeping).
func applySheetMoves(wb model.Workbook, moves ...*classifier.PhysicalMove) (model.Workbook, error) {
	out := wb
	for _, m := range moves {
		if m == nil || m.Kind != classifier.MoveSheetKind {
			continue
		}
		var err error
		out, err = sheetops.MoveSheet(out, m.SheetFrom, m.SheetTo, -1, false)
		if err != nil {
			return out, err
		}
	}
	return out, nil
}
