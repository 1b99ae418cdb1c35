// Package docops implements the text-level Document operations:
// addDocument, renameDocument, deleteDocument, moveDocumentSection, and
// moveWorkbookSection. These operate directly on the Markdown string; the
// Workbook tree is not re-parsed here.
package docops

import (
	"strings"

	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/scan"
	"github.com/vinodismyname/mdsheet/core/structure"
	"github.com/vinodismyname/mdsheet/pkg/editorerr"
)

// insertAtLine inserts literal at the character offset where lineIdx begins
// (or at EOF when lineIdx >= len(lines)).
func insertAtLine(text string, lineIdx int, literal string) string {
	lines := scan.Lines(text)
	if lineIdx >= len(lines) {
		return text + literal
	}
	if lineIdx < 0 {
		lineIdx = 0
	}
	off := 0
	for i := 0; i < lineIdx; i++ {
		off += len(lines[i]) + 1
	}
	return text[:off] + literal + text[off:]
}

// AddDocumentResult is the outcome of AddDocument.
type AddDocumentResult struct {
	Text     string
	TabOrder []model.TabOrderItem
}

// AddDocument inserts "\n# "+title+"\n\n" at the computed line and returns
// the updated text plus tab_order with the new Document entry spliced in.
// tabOrder may be nil when no explicit tab_order is tracked, in
// which case it is left nil (natural order already reflects the physical
// insertion).
func AddDocument(text, rootMarker string, sheetHeaderLevel int, title string, afterDocIdx int, afterWorkbook bool, insertAfterTabOrderIdx int, tabOrder []model.TabOrderItem) AddDocumentResult {
	var insertLine int
	switch {
	case afterDocIdx >= 0:
		if r, err := structure.DocumentSectionRange(text, rootMarker, afterDocIdx); err == nil {
			insertLine = r.End
		} else {
			insertLine = len(scan.Lines(text))
		}
	case afterWorkbook:
		insertLine = structure.WorkbookRange(text, rootMarker, sheetHeaderLevel).End
	default:
		insertLine = 0
	}

	newText := insertAtLine(text, insertLine, "\n# "+title+"\n\n")

	if tabOrder == nil {
		return AddDocumentResult{Text: newText, TabOrder: nil}
	}

	fs := structure.FileStructureOf(text, rootMarker, sheetHeaderLevel)
	totalDocs := fs.NumDocs()

	var newDocIndex int
	switch {
	case afterDocIdx >= 0:
		newDocIndex = afterDocIdx + 1
	case insertAfterTabOrderIdx >= 0 && insertAfterTabOrderIdx < len(tabOrder):
		cnt := 0
		for i := 0; i <= insertAfterTabOrderIdx; i++ {
			if tabOrder[i].Kind == model.KindDocument {
				cnt++
			}
		}
		newDocIndex = cnt
	default:
		newDocIndex = totalDocs
	}

	newOrder := make([]model.TabOrderItem, len(tabOrder))
	copy(newOrder, tabOrder)
	for i := range newOrder {
		if newOrder[i].Kind == model.KindDocument && newOrder[i].Index >= newDocIndex {
			newOrder[i].Index++
		}
	}
	newEntry := model.TabOrderItem{Kind: model.KindDocument, Index: newDocIndex}
	if insertAfterTabOrderIdx >= 0 && insertAfterTabOrderIdx < len(newOrder) {
		at := insertAfterTabOrderIdx + 1
		newOrder = append(newOrder[:at:at], append([]model.TabOrderItem{newEntry}, newOrder[at:]...)...)
	} else {
		newOrder = append(newOrder, newEntry)
	}

	return AddDocumentResult{Text: newText, TabOrder: newOrder}
}

// RenameDocument replaces the heading line of Document i with "# "+title.
func RenameDocument(text, rootMarker string, i int, title string) (string, error) {
	r, err := structure.DocumentSectionRange(text, rootMarker, i)
	if err != nil {
		return text, editorerr.NotFoundf("Document section %d not found", i)
	}
	lines := scan.Lines(text)
	lines[r.Start] = "# " + title
	return strings.Join(lines, "\n"), nil
}

// DeleteDocumentResult is the outcome of DeleteDocument.
type DeleteDocumentResult struct {
	Text     string
	TabOrder []model.TabOrderItem
}

// DeleteDocument splices out Document i's line range and drops/decrements
// its tab_order bookkeeping.
func DeleteDocument(text, rootMarker string, i int, tabOrder []model.TabOrderItem) (DeleteDocumentResult, error) {
	r, err := structure.DocumentSectionRange(text, rootMarker, i)
	if err != nil {
		return DeleteDocumentResult{}, editorerr.NotFoundf("Document section %d not found", i)
	}
	lines := scan.Lines(text)
	newLines := append(append([]string(nil), lines[:r.Start]...), lines[r.End:]...)
	newText := strings.Join(newLines, "\n")

	var newOrder []model.TabOrderItem
	if tabOrder != nil {
		for _, item := range tabOrder {
			if item.Kind == model.KindDocument {
				if item.Index == i {
					continue
				}
				if item.Index > i {
					item.Index--
				}
			}
			newOrder = append(newOrder, item)
		}
	}
	return DeleteDocumentResult{Text: newText, TabOrder: newOrder}, nil
}

// allDocumentHeadingLines scans for every level-1 heading
// outside a fenced code block that is not the Workbook marker, i.e. every
// "document-kind" heading.
func allDocumentHeadingLines(text, rootMarker string) []int {
	lines := scan.Lines(text)
	var out []int
	var sc scan.Scanner
	for i, line := range lines {
		inCode := sc.InCodeBlock()
		sc.Step(line)
		if inCode || !scan.IsLevel1Heading(line) {
			continue
		}
		if strings.TrimSpace(line) == rootMarker {
			continue
		}
		out = append(out, i)
	}
	return out
}

func endOfHeadingAt(lines []string, headingLine int) int {
	var sc scan.Scanner
	for i := 0; i <= headingLine && i < len(lines); i++ {
		sc.Step(lines[i])
	}
	for j := headingLine + 1; j < len(lines); j++ {
		inCode := sc.InCodeBlock()
		isH1 := scan.IsLevel1Heading(lines[j])
		sc.Step(lines[j])
		if !inCode && isH1 {
			return j
		}
	}
	return len(lines)
}

func contains(s []int, v int) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// MoveDocumentSection extracts Document `from`'s range, removes it, and
// reinserts it at a line computed from the destination flags. It
// returns the new text; tab-order metadata is the caller's responsibility.
func MoveDocumentSection(text, rootMarker string, sheetHeaderLevel int, from int, to int, toAfterWorkbook, toBeforeWorkbook bool) (string, error) {
	origFS := structure.FileStructureOf(text, rootMarker, sheetHeaderLevel)
	wasBeforeWB := contains(origFS.DocsBeforeWB, from)

	r, err := structure.DocumentSectionRange(text, rootMarker, from)
	if err != nil {
		return text, editorerr.NotFoundf("Document section %d not found", from)
	}
	lines := scan.Lines(text)
	extracted := append([]string(nil), lines[r.Start:r.End]...)
	remaining := append(append([]string(nil), lines[:r.Start]...), lines[r.End:]...)
	removedText := strings.Join(remaining, "\n")

	var insertLine int
	switch {
	case toAfterWorkbook:
		insertLine = structure.WorkbookRange(removedText, rootMarker, sheetHeaderLevel).End

	case toBeforeWorkbook:
		if to <= 0 {
			insertLine = 0
		} else {
			fs2 := structure.FileStructureOf(removedText, rootMarker, sheetHeaderLevel)
			if to-1 < len(fs2.DocsBeforeWB) {
				if rr, err2 := structure.DocumentSectionRange(removedText, rootMarker, fs2.DocsBeforeWB[to-1]); err2 == nil {
					insertLine = rr.Start
				} else {
					insertLine = structure.WorkbookRange(removedText, rootMarker, sheetHeaderLevel).Start
				}
			} else {
				insertLine = structure.WorkbookRange(removedText, rootMarker, sheetHeaderLevel).Start
			}
		}

	default:
		adjusted := to
		if from < to {
			adjusted--
		}
		if adjusted <= 0 {
			if wasBeforeWB {
				insertLine = 0
			} else {
				insertLine = structure.WorkbookRange(removedText, rootMarker, sheetHeaderLevel).End
			}
		} else {
			headings := allDocumentHeadingLines(removedText, rootMarker)
			idx := adjusted - 1
			if idx >= 0 && idx < len(headings) {
				remLines := scan.Lines(removedText)
				insertLine = endOfHeadingAt(remLines, headings[idx])
			} else {
				insertLine = len(scan.Lines(removedText))
			}
		}
	}

	removedLines := scan.Lines(removedText)
	var newLines []string
	if insertLine >= len(removedLines) {
		newLines = append(append([]string(nil), removedLines...), extracted...)
	} else {
		newLines = append(append([]string(nil), removedLines[:insertLine]...), append(append([]string(nil), extracted...), removedLines[insertLine:]...)...)
	}
	return strings.Join(newLines, "\n"), nil
}

// MoveWorkbookSection extracts the Workbook slice and splices it before or
// after the target document (found by document-kind index in the removed
// text), symmetric to MoveDocumentSection.
func MoveWorkbookSection(text, rootMarker string, sheetHeaderLevel int, toDocIndex int, toAfterDoc, toBeforeDoc bool) (string, error) {
	wb := structure.WorkbookRange(text, rootMarker, sheetHeaderLevel)
	if wb.Start >= wb.End {
		return text, editorerr.NoWorkbook()
	}
	lines := scan.Lines(text)
	extracted := append([]string(nil), lines[wb.Start:wb.End]...)
	remaining := append(append([]string(nil), lines[:wb.Start]...), lines[wb.End:]...)
	removedText := strings.Join(remaining, "\n")

	headings := allDocumentHeadingLines(removedText, rootMarker)
	var insertLine int
	switch {
	case toAfterDoc:
		if toDocIndex >= 0 && toDocIndex < len(headings) {
			remLines := scan.Lines(removedText)
			insertLine = endOfHeadingAt(remLines, headings[toDocIndex])
		} else {
			insertLine = len(scan.Lines(removedText))
		}
	case toBeforeDoc:
		if toDocIndex >= 0 && toDocIndex < len(headings) {
			insertLine = headings[toDocIndex]
		} else {
			insertLine = 0
		}
	default:
		insertLine = len(scan.Lines(removedText))
	}

	removedLines := scan.Lines(removedText)
	var newLines []string
	if insertLine >= len(removedLines) {
		newLines = append(append([]string(nil), removedLines...), extracted...)
	} else {
		newLines = append(append([]string(nil), removedLines[:insertLine]...), append(append([]string(nil), extracted...), removedLines[insertLine:]...)...)
	}
	return strings.Join(newLines, "\n"), nil
}
