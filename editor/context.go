package editor

import (
	"github.com/vinodismyname/mdsheet/core/classifier"
	"github.com/vinodismyname/mdsheet/core/executor"
	"github.com/vinodismyname/mdsheet/core/generator"
	"github.com/vinodismyname/mdsheet/core/model"
	"github.com/vinodismyname/mdsheet/core/parser"
	"github.com/vinodismyname/mdsheet/core/scan"
	"github.com/vinodismyname/mdsheet/core/structure"
	"github.com/vinodismyname/mdsheet/core/taborder"
	"github.com/vinodismyname/mdsheet/pkg/editorerr"
)

// Context holds one open document's Markdown text, its parsed Workbook
// tree, and the schema it was parsed with. It is not safe for concurrent
// use; editor.Manager serializes access to each Context through its
// handle's lock (WithRead/WithWrite), while runtime.Controller only bounds
// how many documents are open at once.
type Context struct {
	text   string
	schema parser.Schema
	wb     model.Workbook
	fs     model.FileStructure
}

// NewContext initializes a Context by parsing text under schema.
func NewContext(text string, schema parser.Schema) *Context {
	schema = schema.Normalize()
	c := &Context{text: text, schema: schema}
	c.reparse()
	return c
}

func (c *Context) reparse() {
	c.wb = parser.ParseWorkbook(c.text, c.schema)
	c.fs = structure.FileStructureOf(c.text, c.schema.RootMarker, c.schema.SheetHeaderLevel)
}

// Reset replaces the Context's text, re-deriving the Workbook tree and
// FileStructure from scratch.
func (c *Context) Reset(text string) {
	c.text = text
	c.reparse()
}

// Text returns the current document text.
func (c *Context) Text() string { return c.text }

// Workbook returns the current parsed Workbook tree.
func (c *Context) Workbook() model.Workbook { return c.wb }

// GetState returns the snapshot: the parsed tree (plus a header_line
// per sheet) and the derived FileStructure, as plain data suitable for
// JSON serialization.
func (c *Context) GetState() map[string]any {
	wbJSON := parser.JSON(c.wb)

	sheetsRaw, _ := wbJSON["sheets"].([]map[string]any)
	headerLines := sheetHeaderLines(c.text, c.schema)
	for i, s := range sheetsRaw {
		if i < len(headerLines) {
			s["header_line"] = headerLines[i]
		}
	}
	wbJSON["sheets"] = sheetsRaw

	return map[string]any{
		"workbook":  wbJSON,
		"structure": structureJSON(c.fs),
	}
}

func structureJSON(fs model.FileStructure) map[string]any {
	return map[string]any{
		"docsBeforeWorkbook": fs.DocsBeforeWB,
		"sheets":             fs.Sheets,
		"docsAfterWorkbook":  fs.DocsAfterWB,
		"hasWorkbook":        fs.HasWorkbook,
	}
}

// sheetHeaderLines locates each sheet heading's 0-based line in text by
// walking the Workbook region the same way the structure extractor does.
func sheetHeaderLines(text string, schema parser.Schema) []int {
	wbRange := structure.WorkbookRange(text, schema.RootMarker, schema.SheetHeaderLevel)
	lines := scan.Lines(text)
	var out []int
	scan.Walk(lines, func(idx int, line string, level int, inCode bool) {
		if inCode || idx < wbRange.Start || idx >= wbRange.End {
			return
		}
		if level == schema.SheetHeaderLevel {
			out = append(out, idx)
		}
	})
	return out
}

// generateRange re-renders the Workbook region from the current wb/schema,
// splices it into text, and returns the Result describing the change.
// Every tree-mutating operation funnels through this after editing wb.
func (c *Context) generateRange() Result {
	if !c.fs.HasWorkbook {
		c.reparse()
		return errResult("No workbook")
	}
	rep := generator.Generate(c.text, c.wb, c.schema, c.fs)
	newText := generator.Apply(c.text, rep)
	c.text = newText
	c.reparse()
	return Result{
		Content:     rep.Content,
		StartLine:   rep.StartLine,
		EndLine:     rep.EndLine,
		EndCol:      rep.EndCol,
		FileChanged: true,
	}
}

// wholeFileResult wraps a docops-style whole-file rewrite into a Result.
func (c *Context) wholeFileResult(newText string) Result {
	c.text = newText
	c.reparse()
	return Result{Content: c.text, StartLine: 0, EndLine: len(scan.Lines(c.text)), FileChanged: true}
}

// applyDocTextAndTabOrder splices a docops-produced whole-file rewrite in,
// then, when tabOrder is non-nil (an explicit override was tracked before
// the edit), re-renders the Workbook region's metadata comment so the
// updated tab_order is persisted in the same document mutation.
func (c *Context) applyDocTextAndTabOrder(newText string, tabOrder []model.TabOrderItem) Result {
	c.text = newText
	c.reparse()
	if tabOrder == nil {
		return Result{Content: c.text, StartLine: 0, EndLine: len(scan.Lines(c.text)), FileChanged: true}
	}
	c.wb.Metadata.TabOrder = tabOrder
	c.generateRange()
	return Result{Content: c.text, StartLine: 0, EndLine: len(scan.Lines(c.text)), FileChanged: true}
}

// currentTabOrder returns the visual order currently in effect: the
// tracked tab_order override when one is set, else the natural order
// derived from the FileStructure.
func (c *Context) currentTabOrder() []model.TabOrderItem {
	if len(c.wb.Metadata.TabOrder) > 0 {
		return c.wb.Metadata.TabOrder
	}
	return taborder.Natural(c.fs)
}

// ReorderTabs classifies dragging the tab at fromTabIndex to land at the
// gap toTabIndex within the current visual tab strip, and applies
// whichever reorder strategy (no-op, metadata-only, physical, or
// physical-plus-metadata) the classifier decides is required.
func (c *Context) ReorderTabs(fromTabIndex, toTabIndex int) Result {
	tabs := c.currentTabOrder()
	if len(tabs) == 0 {
		return errResult("Invalid tab order: no tabs to reorder")
	}
	action := classifier.Classify(tabs, fromTabIndex, toTabIndex, c.fs)
	if action.Type == classifier.NoOp {
		return Result{Content: c.text, FileChanged: false}
	}
	newText, err := executor.Apply(c.text, c.wb, c.schema, c.fs, action)
	if err != nil {
		return errResult(editorerr.AsResult(err))
	}
	return c.wholeFileResult(newText)
}
