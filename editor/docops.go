package editor

import (
	"github.com/vinodismyname/mdsheet/core/docops"
	"github.com/vinodismyname/mdsheet/pkg/editorerr"
)

// AddDocument inserts a new level-1 Document heading titled title: after
// Document afterDocIdx when afterDocIdx >= 0, else at the end of the
// Workbook region when afterWorkbook is set, else at the top of the file.
func (c *Context) AddDocument(title string, afterDocIdx int, afterWorkbook bool, insertAfterTabOrderIdx int) Result {
	res := docops.AddDocument(c.text, c.schema.RootMarker, c.schema.SheetHeaderLevel, title, afterDocIdx, afterWorkbook, insertAfterTabOrderIdx, c.wb.Metadata.TabOrder)
	return c.applyDocTextAndTabOrder(res.Text, res.TabOrder)
}

// RenameDocument replaces Document i's heading text with title.
func (c *Context) RenameDocument(i int, title string) Result {
	newText, err := docops.RenameDocument(c.text, c.schema.RootMarker, i, title)
	if err != nil {
		return errResult(editorerr.AsResult(err))
	}
	return c.wholeFileResult(newText)
}

// DeleteDocument removes Document i's heading and body.
func (c *Context) DeleteDocument(i int) Result {
	res, err := docops.DeleteDocument(c.text, c.schema.RootMarker, i, c.wb.Metadata.TabOrder)
	if err != nil {
		return errResult(editorerr.AsResult(err))
	}
	return c.applyDocTextAndTabOrder(res.Text, res.TabOrder)
}

// MoveDocumentSection relocates Document `from` to position `to`, or
// immediately before/after the Workbook region when toBeforeWorkbook /
// toAfterWorkbook is set.
func (c *Context) MoveDocumentSection(from, to int, toAfterWorkbook, toBeforeWorkbook bool) Result {
	newText, err := docops.MoveDocumentSection(c.text, c.schema.RootMarker, c.schema.SheetHeaderLevel, from, to, toAfterWorkbook, toBeforeWorkbook)
	if err != nil {
		return errResult(editorerr.AsResult(err))
	}
	return c.wholeFileResult(newText)
}

// MoveWorkbookSection relocates the Workbook region immediately before or
// after the Document at toDocIndex.
func (c *Context) MoveWorkbookSection(toDocIndex int, toAfterDoc, toBeforeDoc bool) Result {
	newText, err := docops.MoveWorkbookSection(c.text, c.schema.RootMarker, c.schema.SheetHeaderLevel, toDocIndex, toAfterDoc, toBeforeDoc)
	if err != nil {
		return errResult(editorerr.AsResult(err))
	}
	return c.wholeFileResult(newText)
}
